package simterm

import (
	"github.com/arloliu/go-minitel/videotex"
)

// process interprets the pending host bytes. Incomplete commands stay
// pending until more bytes arrive. Must be called with t.mu held.
func (t *Terminal) process() {
	for len(t.pending) > 0 {
		n := t.step(t.pending)
		if n == 0 {
			return
		}
		t.pending = t.pending[n:]
	}
	t.pending = t.pending[:0]
}

// step handles the command at the head of p and returns the number of
// bytes consumed, or 0 when p holds an incomplete command.
func (t *Terminal) step(p []byte) int {
	if p[0] != videotex.ESC || t.mute {
		t.display.WriteByte(p[0])
		return 1
	}
	if len(p) < 2 {
		return 0
	}

	// the identification ROM answers in every mode, other protocol
	// commands are text in teleinformatic mode
	if t.mode == Teleinformatic && p[1] != 0x5b && !(p[1] == 0x39 && len(p) > 2 && p[2] == videotex.ENQROM) {
		if p[1] == 0x39 && len(p) < 3 {
			return 0
		}
		t.display.Write(p[:2])
		return 2
	}

	switch p[1] {
	case videotex.PRO1[1]:
		return t.pro1(p)
	case videotex.PRO2[1]:
		return t.pro2(p)
	case videotex.PRO3[1]:
		return t.pro3(p)
	case videotex.CSI[1]:
		return t.csi(p)
	default:
		t.display.Write(p[:2])
		return 2
	}
}

func (t *Terminal) reply(b ...byte) {
	t.commands++
	t.toHost.Put(b...)
}

func (t *Terminal) pro1(p []byte) int {
	if len(p) < 3 {
		return 0
	}

	switch p[2] {
	case videotex.ENQROM:
		t.reply(videotex.SOH, t.manufacturer, t.kind, t.version, videotex.EOT)
	case videotex.StatusTerminal:
		t.reply(videotex.ESC, videotex.PRO2[1], repStatusTerminal, 0x40)
	case videotex.StatusFunction:
		status := byte(0x40)
		if t.mode == Mixed {
			status |= 1
		}
		t.reply(videotex.ESC, videotex.PRO2[1], repStatusFunction, status)
	default:
		t.display.Write(p[:3])
	}

	return 3
}

func (t *Terminal) pro2(p []byte) int {
	if len(p) < 4 {
		return 0
	}

	switch {
	case p[2] == videotex.PROG:
		t.program(p[3])
	case p[2] == videotex.Mixte1[0] && p[3] == videotex.Mixte1[1]:
		t.mode = Mixed
		t.reply(videotex.AckMixed...)
	case p[2] == videotex.Mixte2[0] && p[3] == videotex.Mixte2[1]:
		t.mode = Videotex
		t.reply(videotex.AckVideotex...)
	case p[2] == videotex.Telinfo[0] && p[3] == videotex.Telinfo[1]:
		t.mode = Teleinformatic
		t.reply(videotex.AckTeleinfo...)
	case (p[2] == videotex.Start || p[2] == videotex.Stop) && p[3] == videotex.Minuscules:
		t.lowercase = p[2] == videotex.Start
		t.reply(videotex.ESC, videotex.PRO2[1], repStatusKeyboard, t.keyboardStatus())
	default:
		t.display.Write(p[:4])
	}

	return 4
}

// program handles a speed programming request. An accepted rate is
// switched to silently, the host hears the acknowledgement as noise.
func (t *Terminal) program(code byte) {
	for _, baud := range videotex.SupportedSpeeds {
		if c, _ := videotex.SpeedCode(baud); c != code {
			continue
		}
		if baud <= t.maxBaud && !t.refused[baud] {
			t.commands++
			t.baud = baud
			return
		}
		break
	}

	speed, _ := videotex.SpeedCode(t.baud)
	t.reply(videotex.ESC, videotex.PRO2[1], repStatusSpeed, speed)
}

func (t *Terminal) pro3(p []byte) int {
	if len(p) < 5 {
		return 0
	}

	verb, module, code := p[2], p[3], p[4]
	switch {
	case module == videotex.RcptKeyboard && (verb == videotex.Start || verb == videotex.Stop) && (code == videotex.Eten || code == videotex.C0):
		on := verb == videotex.Start
		if code == videotex.Eten {
			t.extended = on
		} else {
			t.cursor = on
		}
		t.reply(videotex.ESC, videotex.PRO3[1], repStatusKeyboard, videotex.RcptKeyboard, t.keyboardStatus())
	case module == videotex.RcptScreen && code == videotex.EmitModem && (verb == videotex.SwitchOn || verb == videotex.SwitchOff):
		t.echo = verb == videotex.SwitchOn
		t.reply(videotex.ESC, videotex.PRO3[1], repStatusScreen, videotex.RcptScreen, 0x40)
	default:
		t.display.Write(p[:5])
	}

	return 5
}

func (t *Terminal) csi(p []byte) int {
	if len(p) < 3 {
		return 0
	}
	if p[2] != '?' {
		t.display.Write(p[:2])
		return 2
	}
	if len(p) < 4 {
		return 0
	}

	if p[3] == videotex.ToVideotexFromTeleinfo[3] && t.mode == Teleinformatic {
		t.mode = Videotex
		t.reply(videotex.AckVideotexFromTeleinfo...)
	} else {
		t.display.Write(p[:4])
	}

	return 4
}

func (t *Terminal) keyboardStatus() byte {
	status := byte(0x40)
	if t.extended {
		status |= 1
	}
	if t.cursor {
		status |= 4
	}
	if t.lowercase {
		status |= 8
	}

	return status
}
