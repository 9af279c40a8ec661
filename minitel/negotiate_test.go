package minitel

import (
	"testing"

	"github.com/arloliu/go-minitel/internal/simterm"
	"github.com/arloliu/go-minitel/logger"
	"github.com/arloliu/go-minitel/videotex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMode(t *testing.T) {
	term := simterm.New()
	m := newTestLink(t, term)

	ok, err := m.SetMode(Videotex)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, term.Commands(), "current mode needs no exchange")

	steps := []struct {
		mode Mode
		want simterm.Mode
	}{
		{Mixed, simterm.Mixed},
		{Teleinformatic, simterm.Teleinformatic},
		{Videotex, simterm.Videotex},
		{Teleinformatic, simterm.Teleinformatic},
		{Mixed, simterm.Mixed}, // through videotex
		{Videotex, simterm.Videotex},
	}

	for _, s := range steps {
		ok, err := m.SetMode(s.mode)
		require.NoError(t, err)
		require.True(t, ok, "switch to %s", s.mode)
		assert.Equal(t, s.mode, m.Mode())
		assert.Equal(t, s.want, term.Mode())
	}
}

func TestSetMode_SingleCall(t *testing.T) {
	m := newTestLink(t, simterm.New())

	ok, err := m.SetMode(Mixed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), m.GetMetrics().CallCount.Load())
}

func TestSetMode_Rejected(t *testing.T) {
	m := newTestLink(t, simterm.New(simterm.Mute()))

	ok, err := m.SetMode(Mixed)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Videotex, m.Mode())
}

func TestSetMode_WrongAck(t *testing.T) {
	ch := newScriptedChannel().
		answer([]byte{videotex.SEP, 0x71}, videotex.PRO2, videotex.Mixte1)
	m, l := newScriptedLink(t, ch)

	ok, err := m.SetMode(Mixed)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Videotex, m.Mode())
	assert.Contains(t, l.Messages(logger.DebugLevel), "mode switch rejected")
}

func TestSetMode_PartialChain(t *testing.T) {
	ch := newScriptedChannel().
		answer(videotex.AckVideotexFromTeleinfo, videotex.ToVideotexFromTeleinfo).
		answer([]byte{videotex.SEP, 0x71}, videotex.PRO2, videotex.Mixte1)
	m, _ := newScriptedLink(t, ch, WithInitialMode(Teleinformatic))

	ok, err := m.SetMode(Mixed)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Teleinformatic, m.Mode(), "first step alone changes nothing")
	assert.Equal(t, uint64(2), m.GetMetrics().CallCount.Load())
}

func TestSetMode_Invalid(t *testing.T) {
	m := newTestLink(t, simterm.New())

	_, err := m.SetMode(Mode(5))
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestDetectSpeed(t *testing.T) {
	term := simterm.New(simterm.WithBaud(4800))
	m := newTestLink(t, term)

	assert.Equal(t, 4800, m.DetectSpeed())
	assert.Equal(t, 4800, m.Speed())
	assert.Equal(t, []int{9600, 4800}, term.RateHistory())
	assert.Equal(t, uint32(1), m.GetMetrics().SpeedChangeCount.Load())
}

func TestDetectSpeed_Default(t *testing.T) {
	term := simterm.New()
	m := newTestLink(t, term)

	assert.Equal(t, 1200, m.DetectSpeed())
	assert.Equal(t, []int{9600, 4800, 1200}, term.RateHistory())
	assert.Zero(t, m.GetMetrics().SpeedChangeCount.Load())
}

func TestDetectSpeed_Slowest(t *testing.T) {
	term := simterm.New(simterm.WithBaud(300))
	m := newTestLink(t, term)

	assert.Equal(t, 300, m.DetectSpeed())
	assert.Equal(t, []int{9600, 4800, 1200, 300}, term.RateHistory())
}

func TestDetectSpeed_Undetected(t *testing.T) {
	m := newTestLink(t, simterm.New(simterm.Mute()))

	assert.Equal(t, SpeedUndetected, m.DetectSpeed())
	assert.Equal(t, 1200, m.Speed())
}

func TestSetSpeed(t *testing.T) {
	term := simterm.New()
	m := newTestLink(t, term)
	require.True(t, m.Identify().Identified())

	ok, err := m.SetSpeed(9600)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9600, m.Speed())
	assert.Equal(t, 9600, term.Baud())
	assert.Equal(t, 9600, term.BaudRate())

	// the link keeps talking at the new rate
	assert.True(t, m.Identify().Identified())
}

func TestSetSpeed_Refused(t *testing.T) {
	term := simterm.New(simterm.WithRefusedSpeeds(4800))
	m := newTestLink(t, term)
	require.True(t, m.Identify().Identified())

	ok, err := m.SetSpeed(4800)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1200, m.Speed())
	assert.Equal(t, 1200, term.BaudRate())
}

func TestSetSpeed_Invalid(t *testing.T) {
	m := newTestLink(t, simterm.New())

	_, err := m.SetSpeed(2400)
	require.ErrorIs(t, err, ErrUnsupportedSpeed)

	// unidentified terminals are assumed to stop at 1200 bauds
	_, err = m.SetSpeed(4800)
	require.ErrorIs(t, err, ErrSpeedAboveCapability)

	ok, err := m.SetSpeed(300)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 300, m.Speed())
}

func TestIdentify(t *testing.T) {
	term := simterm.New()
	m := newTestLink(t, term)

	c := m.Identify()
	assert.Equal(t, "Minitel 2", c.Name)
	assert.Equal(t, "Philips", c.Manufacturer)
	assert.Equal(t, 9600, c.MaxBaud)
	assert.True(t, c.Columns80)
	assert.True(t, c.Redefinable)
	assert.Equal(t, byte('4'), c.Version)
	assert.Equal(t, c, m.Capability())
	assert.Equal(t, Videotex, m.Mode())
}

func TestIdentify_Mode(t *testing.T) {
	tests := []struct {
		name string
		term simterm.Mode
		want Mode
	}{
		{"videotex", simterm.Videotex, Videotex},
		{"mixed", simterm.Mixed, Mixed},
		{"teleinformatic", simterm.Teleinformatic, Teleinformatic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestLink(t, simterm.New(simterm.WithMode(tt.term)))

			require.True(t, m.Identify().Identified())
			assert.Equal(t, tt.want, m.Mode())
		})
	}
}

func TestIdentify_NoAnswer(t *testing.T) {
	m := newTestLink(t, simterm.New(simterm.Mute()))

	c := m.Identify()
	assert.Equal(t, UnknownCapability, c)
	assert.False(t, c.Identified())
	assert.Equal(t, Videotex, m.Mode())
}

func TestIdentify_MalformedReply(t *testing.T) {
	tests := []struct {
		name  string
		reply []byte
	}{
		{"bad terminator", []byte{videotex.SOH, 'B', 'v', '4', 0x05}},
		{"bad header", []byte{0x02, 'B', 'v', '4', videotex.EOT}},
		{"short", []byte{videotex.SOH, 'B', 'v'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := newScriptedChannel().
				answer(tt.reply, videotex.PRO1, []byte{videotex.ENQROM})
			m, l := newScriptedLink(t, ch, WithInitialMode(Mixed))

			c := m.Identify()
			assert.Equal(t, UnknownCapability, c)
			assert.Equal(t, UnknownCapability, m.Capability())
			assert.Equal(t, Mixed, m.Mode())
			assert.Equal(t, uint64(1), m.GetMetrics().CallCount.Load(), "no status request")
			assert.Contains(t, l.Messages(logger.InfoLevel), "terminal identification failed")
		})
	}
}

func TestIdentify_ResetsCapability(t *testing.T) {
	term := simterm.New(simterm.WithBaud(4800))
	m := newTestLink(t, term)

	require.Equal(t, 4800, m.DetectSpeed())
	require.True(t, m.Identify().Identified())

	// the line rate no longer matches: identification fails
	require.NoError(t, m.channel.SetBaudRate(1200))
	assert.Equal(t, UnknownCapability, m.Identify())
	assert.Equal(t, UnknownCapability, m.Capability())
}

func TestConfigureKeyboard(t *testing.T) {
	term := simterm.New()
	m := newTestLink(t, term)

	require.True(t, m.ConfigureKeyboard(KeyboardOptions{Extended: true, Lowercase: true}))
	extended, cursor, lowercase := term.Keyboard()
	assert.True(t, extended)
	assert.False(t, cursor)
	assert.True(t, lowercase)

	require.True(t, m.ConfigureKeyboard(KeyboardOptions{CursorKeys: true}))
	extended, cursor, lowercase = term.Keyboard()
	assert.False(t, extended)
	assert.True(t, cursor)
	assert.False(t, lowercase)
}

func TestConfigureKeyboard_NoAnswer(t *testing.T) {
	term := simterm.New(simterm.Mute())
	m := newTestLink(t, term)

	assert.False(t, m.ConfigureKeyboard(KeyboardOptions{Extended: true}))
	// stopped after the first call
	assert.Equal(t, uint64(1), m.GetMetrics().CallCount.Load())
}

func TestEcho(t *testing.T) {
	term := simterm.New()
	m := newTestLink(t, term)

	require.True(t, m.Echo(true))
	assert.True(t, term.Echo())
	require.True(t, m.Echo(false))
	assert.False(t, term.Echo())

	assert.False(t, newTestLink(t, simterm.New(simterm.Mute())).Echo(true))
}
