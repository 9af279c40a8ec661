package sequence

import (
	"bytes"
	"encoding/hex"
)

// Sequence is an ordered list of bytes together with the charset used
// for its most recent transliteration.
//
// A Sequence is not safe for concurrent mutation.
type Sequence struct {
	items   []byte
	charset Charset
}

// New creates a Videotex sequence seeded with values.
func New(values ...Value) *Sequence {
	return NewWithCharset(Videotex, values...)
}

// NewWithCharset creates a sequence that transliterates text with cs.
func NewWithCharset(cs Charset, values ...Value) *Sequence {
	s := &Sequence{charset: cs}
	s.Append(values...)

	return s
}

// FromBytes creates a Videotex sequence holding a copy of b.
func FromBytes(b []byte) *Sequence {
	return &Sequence{items: bytes.Clone(b)}
}

// Append flattens values onto the end of s and returns s.
func (s *Sequence) Append(values ...Value) *Sequence {
	for _, v := range values {
		if v == nil {
			continue
		}
		s.items = v.appendTo(s.items, s.charset)
	}

	return s
}

// AppendByte appends raw bytes without going through a Value.
func (s *Sequence) AppendByte(b ...byte) *Sequence {
	s.items = append(s.items, b...)
	return s
}

// Bytes returns a copy of the bytes in s.
func (s *Sequence) Bytes() []byte {
	if s == nil {
		return []byte{}
	}

	return bytes.Clone(s.items)
}

// Len returns the number of bytes in s.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// At returns the i-th byte of s. It panics if i is out of range.
func (s *Sequence) At(i int) byte {
	return s.items[i]
}

// Charset returns the charset used to transliterate text appended to s.
func (s *Sequence) Charset() Charset {
	if s == nil {
		return Videotex
	}

	return s.charset
}

// Equal reports whether s and v flatten to the same bytes. Text in v is
// transliterated with the charset of s. Neither operand is modified.
func (s *Sequence) Equal(v Value) bool {
	return bytes.Equal(s.Bytes(), Canonicalize(v, s.Charset()))
}

// HasPrefix reports whether s starts with the bytes of v.
func (s *Sequence) HasPrefix(v Value) bool {
	return bytes.HasPrefix(s.Bytes(), Canonicalize(v, s.Charset()))
}

// String returns the bytes of s in hexadecimal, as used in log records.
func (s *Sequence) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *Sequence) appendTo(dst []byte, _ Charset) []byte {
	if s == nil {
		return dst
	}

	return append(dst, s.items...)
}

// Equal reports whether a and b flatten to the same bytes under the
// Videotex charset.
func Equal(a, b Value) bool {
	return bytes.Equal(Canonicalize(a, Videotex), Canonicalize(b, Videotex))
}
