package videotex

import (
	"fmt"
	"strings"
)

// Color is one of the eight Minitel colours.
type Color uint8

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

var colorNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// grayColors maps a gray level (0 darkest, 7 brightest) to the colour a
// monochrome Minitel renders with that luminance.
var grayColors = [8]Color{Black, Blue, Red, Magenta, Green, Cyan, Yellow, White}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}

	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Valid reports whether c is one of the eight colours.
func (c Color) Valid() bool {
	return c <= White
}

// GrayLevel returns the colour rendered as gray level n, n in [0, 7].
func GrayLevel(n int) (Color, error) {
	if n < 0 || n > 7 {
		return Black, fmt.Errorf("videotex: gray level %d out of range [0, 7]", n)
	}

	return grayColors[n], nil
}

// ParseColor accepts a colour name (English, case-insensitive) or a digit.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range colorNames {
		if s == name {
			return Color(i), nil
		}
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '7' {
		return Color(s[0] - '0'), nil
	}

	return Black, fmt.Errorf("videotex: unknown color %q", s)
}
