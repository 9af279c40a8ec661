package minitel

import (
	"fmt"

	"github.com/arloliu/go-minitel/sequence"
	"github.com/arloliu/go-minitel/videotex"
)

// Bank is a redefinable character set.
type Bank uint8

const (
	// BankG0 is G'0, the redefinable alphanumeric set.
	BankG0 Bank = iota
	// BankG1 is G'1, the redefinable mosaic set.
	BankG1
)

func (b Bank) String() string {
	switch b {
	case BankG0:
		return "G'0"
	case BankG1:
		return "G'1"
	default:
		return fmt.Sprintf("Bank(%d)", uint8(b))
	}
}

// Character matrix geometry: 8 columns by 10 rows, sent 6 bits at a time.
const (
	charPixels     = 8 * 10
	bitsPerByte    = 6
	firstRedefChar = 0x20
	lastRedefChar  = 0x7f
)

var bankPreambles = map[Bank][]byte{
	BankG0: {videotex.US, 0x23, 0x20, 0x20, 0x20, 0x42, 0x49},
	BankG1: {videotex.US, 0x23, 0x20, 0x20, 0x20, 0x43, 0x49},
}

var bankActivations = map[Bank][]byte{
	BankG0: {videotex.ESC, 0x28, 0x20, 0x42},
	BankG1: {videotex.ESC, 0x29, 0x20, 0x43},
}

// RedefineSequence builds the upload of character drawings into bank,
// starting at character code first.
//
// drawing holds 80 pixels per character, row by row, as '0' and '1';
// every other rune is ignored so drawings can be laid out freely:
//
//	00011000
//	00100100
//	...
//
// Each character is packed 6 pixels per byte (0x40 + bits), the last byte
// padded with zeros, and terminated by 0x30.
func RedefineSequence(first byte, bank Bank, drawing string) (*sequence.Sequence, error) {
	preamble, ok := bankPreambles[bank]
	if !ok {
		return nil, fmt.Errorf("%w: unknown bank %d", ErrInvalidRedefinition, bank)
	}

	pixels := make([]byte, 0, len(drawing))
	for _, r := range drawing {
		switch r {
		case '0':
			pixels = append(pixels, 0)
		case '1':
			pixels = append(pixels, 1)
		}
	}

	count := len(pixels) / charPixels
	switch {
	case len(pixels) == 0:
		return nil, fmt.Errorf("%w: empty drawing", ErrInvalidRedefinition)
	case len(pixels)%charPixels != 0:
		return nil, fmt.Errorf("%w: %d pixels is not a multiple of %d", ErrInvalidRedefinition, len(pixels), charPixels)
	case first < firstRedefChar || int(first)+count-1 > lastRedefChar:
		return nil, fmt.Errorf("%w: characters 0x%02x..0x%02x out of range", ErrInvalidRedefinition, first, int(first)+count-1)
	}

	seq := sequence.New(
		sequence.Bytes(preamble),
		sequence.Bytes{videotex.US, 0x23, first, 0x30},
	)

	for c := 0; c < count; c++ {
		seq.AppendByte(packPixels(pixels[c*charPixels : (c+1)*charPixels])...)
		seq.AppendByte(0x30)
	}

	// positioning the cursor leaves the definition mode
	seq.AppendByte(videotex.US, 0x41, 0x41)
	seq.AppendByte(bankActivations[bank]...)

	return seq, nil
}

// packPixels packs pixels 6 per byte, offset by 0x40, zero padding the
// last group.
func packPixels(pixels []byte) []byte {
	out := make([]byte, 0, (len(pixels)+bitsPerByte-1)/bitsPerByte)
	for i := 0; i < len(pixels); i += bitsPerByte {
		var v byte
		for j := 0; j < bitsPerByte; j++ {
			v <<= 1
			if i+j < len(pixels) {
				v |= pixels[i+j]
			}
		}
		out = append(out, 0x40+v)
	}

	return out
}

// Redefine uploads character drawings into bank and selects the bank.
// See RedefineSequence for the drawing format.
func (m *Minitel) Redefine(first byte, bank Bank, drawing string) error {
	seq, err := RedefineSequence(first, bank, drawing)
	if err != nil {
		return err
	}

	return m.Send(seq)
}
