package minitel

import (
	"fmt"
	"strconv"

	"github.com/arloliu/go-minitel/sequence"
	"github.com/arloliu/go-minitel/videotex"
)

// Screen geometry.
const (
	Rows         = 24
	Columns      = 40
	ColumnsMixed = 80
	MaxRepeat    = 40
)

// ClearScope selects what Clear erases.
type ClearScope uint8

const (
	ClearAll ClearScope = iota
	ClearEndOfLine
	ClearEndOfScreen
	ClearStartOfScreen
	ClearStartOfLine
	ClearLine
)

var clearSequences = map[ClearScope]sequence.Value{
	ClearAll:           sequence.Byte(videotex.FF),
	ClearEndOfLine:     sequence.Byte(videotex.CAN),
	ClearEndOfScreen:   sequence.List{sequence.Bytes(videotex.CSI), sequence.Byte(0x4a)},
	ClearStartOfScreen: sequence.List{sequence.Bytes(videotex.CSI), sequence.Byte(0x31), sequence.Byte(0x4a)},
	ClearStartOfLine:   sequence.List{sequence.Bytes(videotex.CSI), sequence.Byte(0x31), sequence.Byte(0x4b)},
	ClearLine:          sequence.List{sequence.Bytes(videotex.CSI), sequence.Byte(0x32), sequence.Byte(0x4b)},
}

func escape(b byte) sequence.Value {
	return sequence.Bytes{videotex.ESC, b}
}

func csi(n int, final byte) sequence.Value {
	return sequence.List{sequence.Bytes(videotex.CSI), sequence.Raw(strconv.Itoa(n)), sequence.Byte(final)}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// Foreground sets the character colour.
func (m *Minitel) Foreground(c videotex.Color) error {
	if !c.Valid() {
		return invalid("color %d", c)
	}

	return m.Send(escape(videotex.AttrForeground + byte(c)))
}

// Background sets the background colour.
func (m *Minitel) Background(c videotex.Color) error {
	if !c.Valid() {
		return invalid("color %d", c)
	}

	return m.Send(escape(videotex.AttrBackground + byte(c)))
}

// MoveTo moves the cursor to column col and row row, both starting at 1.
// Row 0 is the status line. In Videotex mode (1,1) is reached with RS.
func (m *Minitel) MoveTo(col, row int) error {
	maxCol := Columns
	mode := m.Mode()
	if mode != Videotex {
		maxCol = ColumnsMixed
	}
	if col < 1 || col > maxCol || row < 0 || row > Rows {
		return invalid("position (%d, %d)", col, row)
	}

	switch {
	case mode != Videotex:
		return m.Send(sequence.Bytes(videotex.CSI), sequence.Raw(strconv.Itoa(row)+";"+strconv.Itoa(col)), sequence.Byte('H'))
	case col == 1 && row == 1:
		return m.Send(sequence.Byte(videotex.RS))
	default:
		return m.Send(sequence.Bytes{videotex.US, 0x40 + byte(row), 0x40 + byte(col)})
	}
}

// Move moves the cursor relatively: positive cols go right, positive rows
// go down. Moves of up to four cells use the C0 cursor codes, longer ones
// a CSI sequence.
func (m *Minitel) Move(cols, rows int) error {
	seq := sequence.New()

	switch {
	case rows == 0:
	case rows >= -4 && rows <= -1:
		seq.Append(sequence.Bytes(repeatByte(videotex.VT, -rows)))
	case rows >= 1 && rows <= 4:
		seq.Append(sequence.Bytes(repeatByte(videotex.LF, rows)))
	case rows < 0:
		seq.Append(csi(-rows, 'A'))
	default:
		seq.Append(csi(rows, 'B'))
	}

	switch {
	case cols == 0:
	case cols >= -4 && cols <= -1:
		seq.Append(sequence.Bytes(repeatByte(videotex.BS, -cols)))
	case cols >= 1 && cols <= 4:
		seq.Append(sequence.Bytes(repeatByte(videotex.TAB, cols)))
	case cols < 0:
		seq.Append(csi(-cols, 'D'))
	default:
		seq.Append(csi(cols, 'C'))
	}

	if seq.Len() == 0 {
		return nil
	}

	return m.Send(seq)
}

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}

	return out
}

// Size sets the character size: width and height are 1 (normal) or 2
// (double).
func (m *Minitel) Size(width, height int) error {
	if width < 1 || width > 2 || height < 1 || height > 2 {
		return invalid("size %dx%d", width, height)
	}

	return m.Send(escape(videotex.AttrSize + byte(height-1) + byte(width-1)*2))
}

// Underline turns underlining (or disjoint mosaic in semigraphic mode) on or off.
func (m *Minitel) Underline(on bool) error {
	if on {
		return m.Send(escape(videotex.AttrUnderlineOn))
	}

	return m.Send(escape(videotex.AttrUnderlineOff))
}

// Blink turns blinking on or off.
func (m *Minitel) Blink(on bool) error {
	if on {
		return m.Send(escape(videotex.AttrBlink))
	}

	return m.Send(escape(videotex.AttrSteady))
}

// Inverse turns video inversion on or off.
func (m *Minitel) Inverse(on bool) error {
	if on {
		return m.Send(escape(videotex.AttrInverseOn))
	}

	return m.Send(escape(videotex.AttrInverseOff))
}

// Cursor shows or hides the cursor.
func (m *Minitel) Cursor(visible bool) error {
	if visible {
		return m.Send(sequence.Byte(videotex.CON))
	}

	return m.Send(sequence.Byte(videotex.COF))
}

// Clear erases part of the screen.
func (m *Minitel) Clear(scope ClearScope) error {
	seq, ok := clearSequences[scope]
	if !ok {
		return invalid("clear scope %d", scope)
	}

	return m.Send(seq)
}

// Repeat displays ch n times, n in [1, 40], using the repeat code.
func (m *Minitel) Repeat(ch sequence.Value, n int) error {
	if n < 1 || n > MaxRepeat {
		return invalid("repeat count %d", n)
	}
	if len(sequence.Canonicalize(ch, m.Mode().Charset())) == 0 {
		return invalid("empty character to repeat")
	}

	return m.Send(ch, sequence.Bytes{videotex.REP, 0x40 + byte(n-1)})
}

// Beep rings the bell.
func (m *Minitel) Beep() error {
	return m.Send(sequence.Byte(videotex.BEL))
}

// CarriageReturn moves the cursor to the start of the line.
func (m *Minitel) CarriageReturn() error {
	return m.Send(sequence.Byte(videotex.CR))
}

// DeleteLines deletes n lines from the cursor row.
func (m *Minitel) DeleteLines(n int) error {
	if n < 1 || n > Rows {
		return invalid("line count %d", n)
	}

	return m.Send(csi(n, 'M'))
}

// InsertLines inserts n blank lines at the cursor row.
func (m *Minitel) InsertLines(n int) error {
	if n < 1 || n > Rows {
		return invalid("line count %d", n)
	}

	return m.Send(csi(n, 'L'))
}

// Semigraphic switches between the mosaic (G1) and text (G0) character sets.
func (m *Minitel) Semigraphic(on bool) error {
	if on {
		return m.Send(sequence.Byte(videotex.SO))
	}

	return m.Send(sequence.Byte(videotex.SI))
}
