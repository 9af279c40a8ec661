package sequence

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// videotexTable composes accented and symbolic characters with SS2 (0x19).
var videotexTable = map[rune][]byte{
	'£': {0x19, 0x23}, '°': {0x19, 0x30}, '±': {0x19, 0x31},
	'←': {0x19, 0x2c}, '↑': {0x19, 0x2d}, '→': {0x19, 0x2e}, '↓': {0x19, 0x2f},
	'¼': {0x19, 0x3c}, '½': {0x19, 0x3d}, '¾': {0x19, 0x3e},
	'ç': {0x19, 0x4b, 0x63}, '’': {0x19, 0x4b, 0x27},
	'à': {0x19, 0x41, 0x61}, 'á': {0x19, 0x42, 0x61}, 'â': {0x19, 0x43, 0x61}, 'ä': {0x19, 0x48, 0x61},
	'è': {0x19, 0x41, 0x65}, 'é': {0x19, 0x42, 0x65}, 'ê': {0x19, 0x43, 0x65}, 'ë': {0x19, 0x48, 0x65},
	'ì': {0x19, 0x41, 0x69}, 'í': {0x19, 0x42, 0x69}, 'î': {0x19, 0x43, 0x69}, 'ï': {0x19, 0x48, 0x69},
	'ò': {0x19, 0x41, 0x6f}, 'ó': {0x19, 0x42, 0x6f}, 'ô': {0x19, 0x43, 0x6f}, 'ö': {0x19, 0x48, 0x6f},
	'ù': {0x19, 0x41, 0x75}, 'ú': {0x19, 0x42, 0x75}, 'û': {0x19, 0x43, 0x75}, 'ü': {0x19, 0x48, 0x75},
	'Œ': {0x19, 0x6a}, 'œ': {0x19, 0x7a},
	'ß': {0x19, 0x7b}, 'β': {0x19, 0x7b},
}

// nationalTable holds the SO/SI framed substitutions of the mixed and
// teleinformatic modes.
var nationalTable = map[rune][]byte{
	'£': {0x0e, 0x23, 0x0f},
	'°': {0x0e, 0x5b, 0x0f}, 'ç': {0x0e, 0x5c, 0x0f}, '’': {0x27}, '`': {0x60}, '§': {0x0e, 0x5d, 0x0f},
	'à': {0x0e, 0x40, 0x0f}, 'è': {0x0e, 0x7f, 0x0f}, 'é': {0x0e, 0x7b, 0x0f}, 'ù': {0x0e, 0x7c, 0x0f},
}

const placeholder = '?'

func asciiOnly(r rune) rune {
	if r > unicode.MaxASCII {
		return placeholder
	}

	return r
}

// appendRune appends the terminal encoding of r under cs.
func appendRune(dst []byte, r rune, cs Charset) []byte {
	table := nationalTable
	if cs == Videotex {
		table = videotexTable
	}
	if enc, ok := table[r]; ok {
		return append(dst, enc...)
	}
	if r <= unicode.MaxASCII {
		return append(dst, byte(r))
	}

	return append(dst, fold(string(r))...)
}

// fold approximates s in ASCII: compatibility decomposition, combining
// marks dropped, everything else outside ASCII replaced by '?'.
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Map(asciiOnly))
	out, _, err := transform.String(t, s)
	if err != nil || out == "" {
		return string(placeholder)
	}

	return out
}
