package sequence

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCharset is returned when a charset name cannot be parsed.
var ErrUnknownCharset = errors.New("sequence: unknown charset")

// Charset selects the transliteration table used for Unicode text.
type Charset uint8

const (
	Videotex Charset = iota
	Mixed
	Teleinformatic
)

func (cs Charset) String() string {
	switch cs {
	case Videotex:
		return "videotex"
	case Mixed:
		return "mixed"
	case Teleinformatic:
		return "teleinformatic"
	default:
		return fmt.Sprintf("Charset(%d)", uint8(cs))
	}
}

// Valid reports whether cs is one of the three charsets.
func (cs Charset) Valid() bool {
	return cs <= Teleinformatic
}

// ParseCharset parses a charset name. Both the English names and the
// terminal's own French names (VIDEOTEX, MIXTE, TELEINFORMATIQUE) are
// accepted, case-insensitively.
func ParseCharset(name string) (Charset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "videotex":
		return Videotex, nil
	case "mixed", "mixte":
		return Mixed, nil
	case "teleinformatic", "teleinformatique":
		return Teleinformatic, nil
	default:
		return Videotex, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
}
