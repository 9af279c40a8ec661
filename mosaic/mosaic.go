package mosaic

import (
	"errors"
	"fmt"
	"image"

	"github.com/arloliu/go-minitel/sequence"
	"github.com/arloliu/go-minitel/videotex"
)

// Geometry of a mosaic character and of the screen in mosaic pixels.
const (
	CellWidth  = 2
	CellHeight = 3
	MaxWidth   = 80
	MaxHeight  = 72
)

// ErrInvalidSize is returned for images the encoder cannot cover with
// whole mosaic characters.
var ErrInvalidSize = errors.New("mosaic: invalid image size")

// cellOrder lists the pixels of a cell in bit order.
var cellOrder = [6]image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}, {1, 2}}

// Escapes opening and closing disjoint mosaic rows.
var (
	disjointOn  = sequence.Bytes{videotex.ESC, videotex.AttrUnderlineOn}
	disjointOff = sequence.Bytes{videotex.ESC, videotex.AttrUnderlineOff}
)

// Screen is where a picture is drawn. *minitel.Minitel satisfies it.
type Screen interface {
	MoveTo(col, row int) error
	Send(values ...sequence.Value) error
}

// Picture is an encoded image: one sequence per character row.
type Picture struct {
	Rows []*sequence.Sequence
	// Width and Height are the size in characters.
	Width  int
	Height int
}

// Draw sends the picture with its top left corner at column col and row
// row. Each row is positioned explicitly so the picture can be drawn
// anywhere on the screen.
func (p *Picture) Draw(s Screen, col, row int) error {
	for i, seq := range p.Rows {
		if err := s.MoveTo(col, row+i); err != nil {
			return fmt.Errorf("mosaic: draw row %d: %w", i, err)
		}
		if err := s.Send(seq); err != nil {
			return fmt.Errorf("mosaic: draw row %d: %w", i, err)
		}
	}

	return nil
}

// Encoder converts images to pictures.
type Encoder struct {
	// Disjoint draws separated mosaic pixels on a black background.
	Disjoint bool
}

// Encode converts img. Its width must be even and at most 80, its height
// a multiple of 3 and at most 72.
func (e Encoder) Encode(img image.Image) (*Picture, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || w > MaxWidth || h > MaxHeight || w%CellWidth != 0 || h%CellHeight != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	levelOf := levelFunc(img)
	pic := &Picture{
		Rows:   make([]*sequence.Sequence, 0, h/CellHeight),
		Width:  w / CellWidth,
		Height: h / CellHeight,
	}

	for cy := 0; cy < pic.Height; cy++ {
		rw := newRowWriter(e.Disjoint)
		for cx := 0; cx < pic.Width; cx++ {
			var levels [6]int
			for i, p := range cellOrder {
				levels[i] = levelOf(b.Min.X+cx*CellWidth+p.X, b.Min.Y+cy*CellHeight+p.Y)
			}
			rw.cell(levels)
		}
		pic.Rows = append(pic.Rows, rw.finish())
	}

	return pic, nil
}

// rowWriter accumulates the codes of one character row.
type rowWriter struct {
	seq      *sequence.Sequence
	disjoint bool

	bg, fg int
	alpha  byte
	count  int
}

func newRowWriter(disjoint bool) *rowWriter {
	rw := &rowWriter{
		seq:      sequence.New(sequence.Byte(videotex.SO)),
		disjoint: disjoint,
		bg:       -1,
		fg:       -1,
	}
	if disjoint {
		rw.seq.Append(disjointOn)
	}

	return rw
}

func (rw *rowWriter) cell(levels [6]int) {
	bg, fg := twoColors(levels)
	if rw.disjoint && bg != 0 {
		bg, fg = 0, bg
	}

	var alpha byte = 0x20
	for i, shift := range [6]uint{0, 1, 2, 3, 4, 6} {
		if !closer(levels[i], bg, fg) {
			alpha |= 1 << shift
		}
	}

	// a cell with the previous colours swapped is the inverted code
	if !rw.disjoint && rw.bg == fg && rw.fg == bg {
		alpha ^= 0x5f
		bg, fg = fg, bg
	}

	if bg == rw.bg && fg == rw.fg && alpha == rw.alpha {
		rw.count++
		return
	}

	rw.flush()
	if bg != rw.bg {
		rw.seq.AppendByte(videotex.ESC, videotex.AttrBackground+colorOf(bg))
		rw.bg = bg
	}
	if fg != rw.fg {
		rw.seq.AppendByte(videotex.ESC, videotex.AttrForeground+colorOf(fg))
		rw.fg = fg
	}
	rw.seq.AppendByte(alpha)
	rw.alpha = alpha
}

// flush emits the pending repetitions of the last code.
func (rw *rowWriter) flush() {
	switch {
	case rw.count == 1:
		rw.seq.AppendByte(rw.alpha)
	case rw.count > 1:
		rw.seq.AppendByte(videotex.REP, 0x40+byte(rw.count))
	}
	rw.count = 0
}

func (rw *rowWriter) finish() *sequence.Sequence {
	rw.flush()
	if rw.disjoint {
		rw.seq.Append(disjointOff)
	}

	return rw.seq
}
