package minitel

import (
	"fmt"
	"strings"

	"github.com/arloliu/go-minitel/sequence"
)

// Mode is the display mode of the terminal.
type Mode uint8

const (
	// Videotex is the 40 column mode a Minitel powers on in.
	Videotex Mode = iota
	// Mixed is the 80 column mode answering to both protocol commands and
	// ASCII text.
	Mixed
	// Teleinformatic is the ASCII terminal mode. The terminal ignores
	// protocol commands in this mode except the escape back to Videotex.
	Teleinformatic
)

func (m Mode) String() string {
	switch m {
	case Videotex:
		return "videotex"
	case Mixed:
		return "mixed"
	case Teleinformatic:
		return "teleinformatic"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Valid reports whether m is one of the three modes.
func (m Mode) Valid() bool {
	return m <= Teleinformatic
}

// Charset returns the transliteration charset of text sent in mode m.
func (m Mode) Charset() sequence.Charset {
	switch m {
	case Mixed:
		return sequence.Mixed
	case Teleinformatic:
		return sequence.Teleinformatic
	default:
		return sequence.Videotex
	}
}

// ParseMode parses a mode name, in English or in the terminal's French
// naming (VIDEOTEX, MIXTE, TELEINFORMATIQUE).
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "videotex":
		return Videotex, nil
	case "mixed", "mixte":
		return Mixed, nil
	case "teleinformatic", "teleinformatique":
		return Teleinformatic, nil
	default:
		return Videotex, fmt.Errorf("%w: %q", ErrInvalidMode, name)
	}
}
