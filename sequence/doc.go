// Package sequence builds the byte sequences exchanged with a Minitel.
//
// A Sequence is a flat, ordered list of bytes. It is assembled from Values:
// single bytes, raw strings copied byte for byte, Unicode text transliterated
// to the terminal character set, byte slices, nested lists and other
// sequences. Nested values are flattened regardless of depth, which lets
// callers write commands and expected replies declaratively:
//
//	seq := sequence.New(videotex.PRO2, sequence.Byte(videotex.PROG), sequence.Byte(videotex.B4800))
//	ok := reply.Equal(sequence.List{sequence.Byte(videotex.SEP), sequence.Byte(0x70)})
//
// Transliteration depends on the Charset. In Videotex mode accented letters
// are composed with SS2 and a diacritic code; in Mixed and Teleinformatic
// modes a national substitution table framed by SO/SI is used. Runes in
// neither table are decomposed, stripped of their combining marks, and
// replaced by '?' if they are still outside ASCII.
package sequence
