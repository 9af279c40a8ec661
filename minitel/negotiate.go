package minitel

import (
	"fmt"

	"github.com/arloliu/go-minitel/sequence"
	"github.com/arloliu/go-minitel/videotex"
)

// SpeedUndetected is returned by DetectSpeed when no rate got an answer.
const SpeedUndetected = -1

// modeStep is one call of a mode transition and its expected reply.
type modeStep struct {
	command  sequence.Value
	replyLen int
	ack      []byte
}

var (
	stepTeleinfoToVideotex = modeStep{sequence.Bytes(videotex.ToVideotexFromTeleinfo), 2, videotex.AckVideotexFromTeleinfo}
	stepVideotexToMixed    = modeStep{sequence.List{sequence.Bytes(videotex.PRO2), sequence.Bytes(videotex.Mixte1)}, 2, videotex.AckMixed}
	stepMixedToVideotex    = modeStep{sequence.List{sequence.Bytes(videotex.PRO2), sequence.Bytes(videotex.Mixte2)}, 2, videotex.AckVideotex}
	stepToTeleinfo         = modeStep{sequence.List{sequence.Bytes(videotex.PRO2), sequence.Bytes(videotex.Telinfo)}, 4, videotex.AckTeleinfo}
)

// modeTransitions lists the calls switching from one mode to another.
// There is no direct path from Teleinformatic to Mixed; it goes through
// Videotex.
var modeTransitions = map[[2]Mode][]modeStep{
	{Teleinformatic, Videotex}: {stepTeleinfoToVideotex},
	{Teleinformatic, Mixed}:    {stepTeleinfoToVideotex, stepVideotexToMixed},
	{Videotex, Mixed}:          {stepVideotexToMixed},
	{Videotex, Teleinformatic}: {stepToTeleinfo},
	{Mixed, Videotex}:          {stepMixedToVideotex},
	{Mixed, Teleinformatic}:    {stepToTeleinfo},
}

// SetMode switches the terminal to mode. It reports whether the terminal
// acknowledged every step; the current mode only changes on success.
// Requesting the current mode succeeds without any exchange.
func (m *Minitel) SetMode(mode Mode) (bool, error) {
	if !mode.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}

	m.callMu.Lock()
	defer m.callMu.Unlock()

	current := m.Mode()
	if current == mode {
		return true, nil
	}

	for _, step := range modeTransitions[[2]Mode{current, mode}] {
		reply := m.call(step.command, step.replyLen)
		if !reply.Equal(sequence.Bytes(step.ack)) {
			m.logger.Debug("mode switch rejected", "from", current, "to", mode, "reply", reply.String())
			return false, nil
		}
	}

	m.setMode(mode)

	return true, nil
}

// DetectSpeed finds the line rate of the terminal by probing 9600, 4800,
// 1200 and 300 bauds in turn with a status request. The first rate
// getting a complete answer is kept and returned; SpeedUndetected is
// returned when none did.
func (m *Minitel) DetectSpeed() int {
	m.callMu.Lock()
	defer m.callMu.Unlock()

	probe := sequence.List{sequence.Bytes(videotex.PRO1), sequence.Byte(videotex.StatusTerminal)}

	for _, baud := range videotex.SupportedSpeeds {
		if err := m.channel.SetBaudRate(baud); err != nil {
			m.logger.Warn("minitel: cannot set line rate", "baud", baud, "error", err)
			continue
		}

		reply := m.call(probe, videotex.ReplyLenPRO2)
		if reply.Len() == videotex.ReplyLenPRO2 {
			m.setSpeed(baud)
			return baud
		}
	}

	m.logger.Info("terminal speed not detected")

	return SpeedUndetected
}

// SetSpeed programs the terminal and the line to run at baud.
//
// baud must be a Minitel rate not above the identified capability. The
// terminal answers a speed programming command only when it refuses the
// rate: a complete acknowledgement means failure, silence means the
// terminal switched and the line follows.
func (m *Minitel) SetSpeed(baud int) (bool, error) {
	code, ok := videotex.SpeedCode(baud)
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrUnsupportedSpeed, baud)
	}
	if maxBaud := m.Capability().MaxBaud; baud > maxBaud {
		return false, fmt.Errorf("%w: %d > %d", ErrSpeedAboveCapability, baud, maxBaud)
	}

	m.callMu.Lock()
	defer m.callMu.Unlock()

	reply := m.call(sequence.List{sequence.Bytes(videotex.PRO2), sequence.Byte(videotex.PROG), sequence.Byte(code)}, videotex.ReplyLenPRO2)
	if reply.Len() == videotex.ReplyLenPRO2 {
		m.logger.Info("terminal refused speed", "baud", baud)
		return false, nil
	}

	if err := m.channel.SetBaudRate(baud); err != nil {
		return false, fmt.Errorf("minitel: set line rate: %w", err)
	}
	m.setSpeed(baud)

	return true, nil
}

func (m *Minitel) setSpeed(baud int) {
	m.stateMu.Lock()
	prev := m.speed
	m.speed = baud
	m.stateMu.Unlock()

	if prev != baud {
		m.metrics.incSpeedChangeCount()
		m.logger.Info("line speed changed", "from", prev, "to", baud)
	}
}

// Identify asks the terminal for its identity and operating status.
//
// The capability is reset to UnknownCapability first and stays so when
// the identity reply is not a well-formed SOH ... EOT envelope. On
// success the current mode is also updated from the operating status:
// no answer means Teleinformatic, bit 0 of the status byte means Mixed,
// Videotex otherwise.
func (m *Minitel) Identify() Capability {
	m.callMu.Lock()
	defer m.callMu.Unlock()

	m.stateMu.Lock()
	m.capability = UnknownCapability
	m.stateMu.Unlock()

	reply := m.call(sequence.List{sequence.Bytes(videotex.PRO1), sequence.Byte(videotex.ENQROM)}, 5)
	if reply.Len() != 5 || reply.At(0) != videotex.SOH || reply.At(4) != videotex.EOT {
		m.logger.Info("terminal identification failed", "reply", reply.String())
		return UnknownCapability
	}

	c := decodeIdentity(reply.At(1), reply.At(2), reply.At(3))

	m.stateMu.Lock()
	m.capability = c
	m.stateMu.Unlock()

	m.logger.Info("terminal identified",
		"name", c.Name,
		"manufacturer", c.Manufacturer,
		"version", string(c.Version),
		"max_baud", c.MaxBaud)

	status := m.call(sequence.List{sequence.Bytes(videotex.PRO1), sequence.Byte(videotex.StatusFunction)}, videotex.ReplyLenPRO2)
	switch {
	case status.Len() != videotex.ReplyLenPRO2:
		m.setMode(Teleinformatic)
	case status.At(3)&1 == 1:
		m.setMode(Mixed)
	default:
		m.setMode(Videotex)
	}

	return c
}

// KeyboardOptions selects the keyboard behaviors set by ConfigureKeyboard.
type KeyboardOptions struct {
	// Extended enables the extended keyboard (function keys as escape
	// sequences).
	Extended bool
	// CursorKeys sends cursor keys as C0 codes.
	CursorKeys bool
	// Lowercase makes unshifted letters lower case.
	Lowercase bool
}

func toggle(on bool) byte {
	if on {
		return videotex.Start
	}

	return videotex.Stop
}

// ConfigureKeyboard applies opts with three calls and reports whether the
// terminal acknowledged all of them. It stops at the first failure.
func (m *Minitel) ConfigureKeyboard(opts KeyboardOptions) bool {
	calls := []struct {
		command  sequence.Value
		replyLen int
	}{
		{sequence.List{sequence.Bytes(videotex.PRO3), sequence.Byte(toggle(opts.Extended)), sequence.Byte(videotex.RcptKeyboard), sequence.Byte(videotex.Eten)}, videotex.ReplyLenPRO3},
		{sequence.List{sequence.Bytes(videotex.PRO3), sequence.Byte(toggle(opts.CursorKeys)), sequence.Byte(videotex.RcptKeyboard), sequence.Byte(videotex.C0)}, videotex.ReplyLenPRO3},
		{sequence.List{sequence.Bytes(videotex.PRO2), sequence.Byte(toggle(opts.Lowercase)), sequence.Byte(videotex.Minuscules)}, videotex.ReplyLenPRO2},
	}

	m.callMu.Lock()
	defer m.callMu.Unlock()

	for _, c := range calls {
		if reply := m.call(c.command, c.replyLen); reply.Len() != c.replyLen {
			return false
		}
	}

	return true
}

// Echo turns the local echo of typed characters on the screen on or off.
// It reports whether the terminal acknowledged the switch.
func (m *Minitel) Echo(on bool) bool {
	verb := videotex.SwitchOff
	if on {
		verb = videotex.SwitchOn
	}

	reply := m.Call(sequence.List{
		sequence.Bytes(videotex.PRO3),
		sequence.Byte(verb),
		sequence.Byte(videotex.RcptScreen),
		sequence.Byte(videotex.EmitModem),
	}, videotex.ReplyLenPRO3)

	return reply.Len() == videotex.ReplyLenPRO3
}
