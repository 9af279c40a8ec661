package minitel

import (
	"testing"

	"github.com/arloliu/go-minitel/internal/simterm"
	"github.com/arloliu/go-minitel/sequence"
	"github.com/arloliu/go-minitel/videotex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const esc = videotex.ESC

func TestScreenCommands(t *testing.T) {
	tests := []struct {
		name string
		run  func(m *Minitel) error
		want []byte
	}{
		{"foreground", func(m *Minitel) error { return m.Foreground(videotex.Cyan) }, []byte{esc, 0x46}},
		{"background", func(m *Minitel) error { return m.Background(videotex.Red) }, []byte{esc, 0x51}},
		{"home", func(m *Minitel) error { return m.MoveTo(1, 1) }, []byte{videotex.RS}},
		{"move to", func(m *Minitel) error { return m.MoveTo(10, 5) }, []byte{videotex.US, 0x45, 0x4a}},
		{"status line", func(m *Minitel) error { return m.MoveTo(1, 0) }, []byte{videotex.US, 0x40, 0x41}},
		{"short move", func(m *Minitel) error { return m.Move(2, -1) }, []byte{videotex.VT, videotex.TAB, videotex.TAB}},
		{"short move back", func(m *Minitel) error { return m.Move(-3, 4) }, []byte{videotex.LF, videotex.LF, videotex.LF, videotex.LF, videotex.BS, videotex.BS, videotex.BS}},
		{"long move", func(m *Minitel) error { return m.Move(-10, 6) }, []byte{esc, 0x5b, '6', 'B', esc, 0x5b, '1', '0', 'D'}},
		{"long move up", func(m *Minitel) error { return m.Move(12, -5) }, []byte{esc, 0x5b, '5', 'A', esc, 0x5b, '1', '2', 'C'}},
		{"no move", func(m *Minitel) error { return m.Move(0, 0) }, []byte{}},
		{"double size", func(m *Minitel) error { return m.Size(2, 2) }, []byte{esc, 0x4f}},
		{"double width", func(m *Minitel) error { return m.Size(2, 1) }, []byte{esc, 0x4e}},
		{"double height", func(m *Minitel) error { return m.Size(1, 2) }, []byte{esc, 0x4d}},
		{"underline", func(m *Minitel) error { return m.Underline(true) }, []byte{esc, 0x5a}},
		{"no underline", func(m *Minitel) error { return m.Underline(false) }, []byte{esc, 0x59}},
		{"blink", func(m *Minitel) error { return m.Blink(true) }, []byte{esc, 0x48}},
		{"steady", func(m *Minitel) error { return m.Blink(false) }, []byte{esc, 0x49}},
		{"inverse", func(m *Minitel) error { return m.Inverse(true) }, []byte{esc, 0x5d}},
		{"normal video", func(m *Minitel) error { return m.Inverse(false) }, []byte{esc, 0x5c}},
		{"cursor on", func(m *Minitel) error { return m.Cursor(true) }, []byte{videotex.CON}},
		{"cursor off", func(m *Minitel) error { return m.Cursor(false) }, []byte{videotex.COF}},
		{"clear all", func(m *Minitel) error { return m.Clear(ClearAll) }, []byte{videotex.FF}},
		{"clear end of line", func(m *Minitel) error { return m.Clear(ClearEndOfLine) }, []byte{videotex.CAN}},
		{"clear end of screen", func(m *Minitel) error { return m.Clear(ClearEndOfScreen) }, []byte{esc, 0x5b, 0x4a}},
		{"clear start of screen", func(m *Minitel) error { return m.Clear(ClearStartOfScreen) }, []byte{esc, 0x5b, 0x31, 0x4a}},
		{"clear start of line", func(m *Minitel) error { return m.Clear(ClearStartOfLine) }, []byte{esc, 0x5b, 0x31, 0x4b}},
		{"clear line", func(m *Minitel) error { return m.Clear(ClearLine) }, []byte{esc, 0x5b, 0x32, 0x4b}},
		{"repeat", func(m *Minitel) error { return m.Repeat(sequence.Text("a"), 5) }, []byte{'a', videotex.REP, 0x44}},
		{"repeat max", func(m *Minitel) error { return m.Repeat(sequence.Byte('-'), 40) }, []byte{'-', videotex.REP, 0x67}},
		{"beep", func(m *Minitel) error { return m.Beep() }, []byte{videotex.BEL}},
		{"carriage return", func(m *Minitel) error { return m.CarriageReturn() }, []byte{videotex.CR}},
		{"delete lines", func(m *Minitel) error { return m.DeleteLines(3) }, []byte{esc, 0x5b, '3', 'M'}},
		{"insert lines", func(m *Minitel) error { return m.InsertLines(12) }, []byte{esc, 0x5b, '1', '2', 'L'}},
		{"semigraphic", func(m *Minitel) error { return m.Semigraphic(true) }, []byte{videotex.SO}},
		{"text", func(m *Minitel) error { return m.Semigraphic(false) }, []byte{videotex.SI}},
	}

	term := simterm.New()
	m := newTestLink(t, term)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.run(m))
			assert.Equal(t, tt.want, displayed(t, m, term))
		})
	}
}

func TestMoveTo_Mixed(t *testing.T) {
	term := simterm.New(simterm.WithMode(simterm.Mixed))
	m := newTestLink(t, term, WithInitialMode(Mixed))

	require.NoError(t, m.MoveTo(70, 3))
	assert.Equal(t, []byte{esc, 0x5b, '3', ';', '7', '0', 'H'}, displayed(t, m, term))

	require.NoError(t, m.MoveTo(1, 1))
	assert.Equal(t, []byte{esc, 0x5b, '1', ';', '1', 'H'}, displayed(t, m, term))

	require.ErrorIs(t, m.MoveTo(81, 1), ErrInvalidArgument)
}

func TestScreenCommands_Invalid(t *testing.T) {
	term := simterm.New()
	m := newTestLink(t, term)

	tests := []struct {
		name string
		err  error
	}{
		{"foreground", m.Foreground(videotex.Color(8))},
		{"background", m.Background(videotex.Color(9))},
		{"column beyond 40", m.MoveTo(41, 1)},
		{"column zero", m.MoveTo(0, 1)},
		{"row beyond 24", m.MoveTo(1, 25)},
		{"negative row", m.MoveTo(1, -1)},
		{"size", m.Size(3, 1)},
		{"size zero", m.Size(1, 0)},
		{"clear scope", m.Clear(ClearScope(42))},
		{"repeat zero", m.Repeat(sequence.Byte('a'), 0)},
		{"repeat too many", m.Repeat(sequence.Byte('a'), 41)},
		{"repeat nothing", m.Repeat(sequence.List{}, 3)},
		{"delete none", m.DeleteLines(0)},
		{"insert too many", m.InsertLines(25)},
	}

	for _, tt := range tests {
		assert.ErrorIs(t, tt.err, ErrInvalidArgument, tt.name)
	}
	assert.Empty(t, displayed(t, m, term))
}
