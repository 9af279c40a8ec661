package simterm

import (
	"testing"
	"time"

	"github.com/arloliu/go-minitel/serial"
	"github.com/arloliu/go-minitel/videotex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readN(t *testing.T, term *Terminal, n int) []byte {
	t.Helper()

	out := make([]byte, 0, n)
	for len(out) < n {
		b, err := term.ReadByte()
		require.NoError(t, err)
		out = append(out, b)
	}

	return out
}

func write(t *testing.T, term *Terminal, p ...byte) {
	t.Helper()

	n, err := term.Write(p)
	require.NoError(t, err)
	require.Equal(t, len(p), n)
}

func TestTerminal_Identify(t *testing.T) {
	term := New(WithIdentity('C', 'u', '5'))

	write(t, term, videotex.ESC, 0x39, videotex.ENQROM)
	assert.Equal(t, []byte{videotex.SOH, 'C', 'u', '5', videotex.EOT}, readN(t, term, 5))
	assert.Empty(t, term.Display())
	assert.Equal(t, 1, term.Commands())
}

func TestTerminal_SplitCommand(t *testing.T) {
	term := New()

	write(t, term, videotex.ESC)
	write(t, term, 0x39)
	_, err := term.ReadByte()
	require.ErrorIs(t, err, serial.ErrTimeout)

	write(t, term, videotex.StatusTerminal)
	assert.Equal(t, []byte{videotex.ESC, 0x3a, 0x71, 0x40}, readN(t, term, 4))
}

func TestTerminal_RateMismatch(t *testing.T) {
	term := New(WithBaud(4800))

	write(t, term, videotex.ESC, 0x39, videotex.StatusTerminal)
	_, err := term.ReadByte()
	require.ErrorIs(t, err, serial.ErrTimeout)

	require.NoError(t, term.SetBaudRate(4800))
	write(t, term, videotex.ESC, 0x39, videotex.StatusTerminal)
	assert.Len(t, readN(t, term, 4), 4)
	assert.Equal(t, []int{4800}, term.RateHistory())
	assert.Equal(t, 4800, term.BaudRate())
}

func TestTerminal_SetBaudRateInvalid(t *testing.T) {
	term := New()

	require.ErrorIs(t, term.SetBaudRate(2400), serial.ErrInvalidBaudRate)
	assert.Equal(t, 1200, term.BaudRate())
}

func TestTerminal_ProgramSpeed(t *testing.T) {
	term := New(WithMaxBaud(4800))

	// above capability: refused with the current rate
	write(t, term, videotex.ESC, 0x3a, videotex.PROG, videotex.B9600)
	assert.Equal(t, []byte{videotex.ESC, 0x3a, 0x75, videotex.B1200}, readN(t, term, 4))
	assert.Equal(t, 1200, term.Baud())

	// accepted: silent switch
	write(t, term, videotex.ESC, 0x3a, videotex.PROG, videotex.B4800)
	_, err := term.ReadByte()
	require.ErrorIs(t, err, serial.ErrTimeout)
	assert.Equal(t, 4800, term.Baud())
}

func TestTerminal_RefusedSpeed(t *testing.T) {
	term := New(WithRefusedSpeeds(300))

	write(t, term, videotex.ESC, 0x3a, videotex.PROG, videotex.B300)
	assert.Len(t, readN(t, term, 4), 4)
	assert.Equal(t, 1200, term.Baud())
}

func TestTerminal_Modes(t *testing.T) {
	term := New()

	write(t, term, videotex.ESC, 0x3a, 0x32, 0x7d)
	assert.Equal(t, videotex.AckMixed, readN(t, term, 2))
	assert.Equal(t, Mixed, term.Mode())

	write(t, term, videotex.ESC, 0x39, videotex.StatusFunction)
	assert.Equal(t, []byte{videotex.ESC, 0x3a, 0x73, 0x41}, readN(t, term, 4))

	write(t, term, videotex.ESC, 0x3a, 0x31, 0x7d)
	assert.Equal(t, videotex.AckTeleinfo, readN(t, term, 4))
	assert.Equal(t, Teleinformatic, term.Mode())

	// protocol commands are text in teleinformatic mode
	write(t, term, videotex.ESC, 0x39, videotex.StatusFunction)
	_, err := term.ReadByte()
	require.ErrorIs(t, err, serial.ErrTimeout)
	assert.Equal(t, []byte{videotex.ESC, 0x39, videotex.StatusFunction}, term.Display())

	write(t, term, videotex.ToVideotexFromTeleinfo...)
	assert.Equal(t, videotex.AckVideotexFromTeleinfo, readN(t, term, 2))
	assert.Equal(t, Videotex, term.Mode())
}

func TestTerminal_KeyboardAndEcho(t *testing.T) {
	term := New()

	write(t, term, videotex.ESC, 0x3b, videotex.Start, videotex.RcptKeyboard, videotex.Eten)
	assert.Len(t, readN(t, term, 5), 5)
	write(t, term, videotex.ESC, 0x3a, videotex.Start, videotex.Minuscules)
	assert.Len(t, readN(t, term, 4), 4)

	extended, cursor, lowercase := term.Keyboard()
	assert.True(t, extended)
	assert.False(t, cursor)
	assert.True(t, lowercase)

	write(t, term, videotex.ESC, 0x3b, videotex.SwitchOn, videotex.RcptScreen, videotex.EmitModem)
	assert.Len(t, readN(t, term, 5), 5)
	assert.True(t, term.Echo())
}

func TestTerminal_DisplayAndType(t *testing.T) {
	term := New()

	write(t, term, 'A', videotex.ESC, videotex.AttrBlink, 'B')
	assert.Equal(t, []byte{'A', videotex.ESC, videotex.AttrBlink, 'B'}, term.Display())

	term.ResetDisplay()
	assert.Empty(t, term.Display())

	term.Type(videotex.SEP, 0x41)
	assert.Equal(t, []byte{videotex.SEP, 0x41}, readN(t, term, 2))
}

func TestTerminal_Mute(t *testing.T) {
	term := New(Mute())

	write(t, term, videotex.ESC, 0x39, videotex.ENQROM)
	_, err := term.ReadByte()
	require.ErrorIs(t, err, serial.ErrTimeout)
	assert.Equal(t, []byte{videotex.ESC, 0x39, videotex.ENQROM}, term.Display())
}

func TestTerminal_Close(t *testing.T) {
	term := New(WithReadTimeout(5 * time.Millisecond))

	require.NoError(t, term.Close())
	_, err := term.ReadByte()
	require.ErrorIs(t, err, serial.ErrClosed)
	_, err = term.Write([]byte{'A'})
	require.ErrorIs(t, err, serial.ErrClosed)
	require.ErrorIs(t, term.Flush(), serial.ErrClosed)
}
