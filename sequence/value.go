package sequence

// Value is anything that can be flattened into terminal bytes.
//
// The set of implementations is closed: Byte, Raw, Text, Bytes, List and
// *Sequence.
type Value interface {
	appendTo(dst []byte, cs Charset) []byte
}

// Byte is a single byte value.
type Byte byte

// Raw is a string copied byte for byte, without transliteration.
type Raw string

// Text is Unicode text, transliterated rune by rune.
type Text string

// Bytes is a slice of byte values.
type Bytes []byte

// List groups values. Lists may nest to any depth; nil entries are skipped.
type List []Value

var (
	_ Value = Byte(0)
	_ Value = Raw("")
	_ Value = Text("")
	_ Value = Bytes(nil)
	_ Value = List(nil)
	_ Value = (*Sequence)(nil)
)

func (b Byte) appendTo(dst []byte, _ Charset) []byte {
	return append(dst, byte(b))
}

func (r Raw) appendTo(dst []byte, _ Charset) []byte {
	return append(dst, r...)
}

func (t Text) appendTo(dst []byte, cs Charset) []byte {
	for _, r := range string(t) {
		dst = appendRune(dst, r, cs)
	}

	return dst
}

func (b Bytes) appendTo(dst []byte, _ Charset) []byte {
	return append(dst, b...)
}

func (l List) appendTo(dst []byte, cs Charset) []byte {
	for _, v := range l {
		if v == nil {
			continue
		}
		dst = v.appendTo(dst, cs)
	}

	return dst
}

// Canonicalize flattens v into bytes, transliterating text with cs.
// A nil value yields an empty slice.
func Canonicalize(v Value, cs Charset) []byte {
	if v == nil {
		return []byte{}
	}

	return v.appendTo(make([]byte, 0, 8), cs)
}
