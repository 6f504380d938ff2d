// Package utf8stats validates UTF-8 byte sequences and summarizes them.
//
// Validation follows the syntax of RFC 3629, which is the same as the one
// given in The Unicode Standard, Version 6.0:
//   - All code points U+0000..U+10FFFF may be encoded, except for
//     U+D800..U+DFFF, which are reserved for UTF-16 surrogate pairs.
//   - Sequences longer than 4 bytes are not permitted.
//   - Overlong encodings are rejected.
//   - The sixty-six Unicode non-characters are permitted.
//
// This package defines two families of functions:
//   - DecodeSequence() and SequenceLength() look at a single sequence.
//   - Scan()/Validate() and their Bytes/String variants walk a whole buffer
//     and stop at the first sequence that is not well-formed.
//
// Rejection is an ordinary outcome reported through return values. Nothing
// in this package panics on malformed input or retains the buffers it is
// given, so every function is safe for concurrent use. Only Check
// allocates, and only for its error.
package utf8stats

// Byte boundaries of the UTF-8 decision table.
const (
	maxASCII = 0x7F // highest single-byte sequence
	maxLead2 = 0xDF // C2..DF start 2-byte sequences
	maxLead3 = 0xEF // E0..EF start 3-byte sequences
	maxLead4 = 0xF4 // F0..F4 start 4-byte sequences

	// minLead2 is the first 2-byte lead; C0 and C1 could only encode
	// overlong forms of ASCII.
	minLead2 = 0xC2

	lead3Overlong  = 0xE0 // second byte must be >= 0xA0
	lead3Surrogate = 0xED // second byte must be <= 0x9F
	lead4Overlong  = 0xF0 // second byte must be >= 0x90
	lead4MaxRune   = 0xF4 // second byte must be <= 0x8F

	// Continuation bytes have the form 10xxxxxx.
	contMask = 0xC0
	contBits = 0x80
	locb     = 0x80 // lowest continuation byte
	hicb     = 0xBF // highest continuation byte

	// MaxSequenceLen is the longest well-formed UTF-8 sequence.
	MaxSequenceLen = 4
)

// Stats summarizes a scan over a byte buffer.
//
// When Valid is false the counters still describe the bytes decoded before
// the first rejected sequence; they are not reset.
type Stats struct {
	// Valid reports whether every byte was consumed by a well-formed
	// sequence.
	Valid bool `json:"valid" cbor:"valid" msg:"valid"`

	// ParsedLength is the number of bytes consumed before the first
	// failure, or the full length when Valid is true.
	ParsedLength int `json:"parsed_length" cbor:"parsed_length" msg:"parsed_length"`

	// TotalCodePoints counts every decoded sequence.
	TotalCodePoints int `json:"total_code_points" cbor:"total_code_points" msg:"total_code_points"`

	// WideCodePoints counts decoded sequences longer than one byte, i.e.
	// every code point outside U+0000..U+007F. It is not a display width.
	WideCodePoints int `json:"wide_code_points" cbor:"wide_code_points" msg:"wide_code_points"`
}

// NarrowCodePoints returns the number of single-byte (ASCII) code points.
func (s Stats) NarrowCodePoints() int { return s.TotalCodePoints - s.WideCodePoints }

// Prefix returns the well-formed prefix b[:ParsedLength] of the buffer the
// statistics were computed for. It never allocates and returns b unchanged
// when ParsedLength exceeds len(b).
func (s Stats) Prefix(b []byte) []byte {
	if s.ParsedLength < 0 || s.ParsedLength > len(b) {
		return b
	}
	return b[:s.ParsedLength]
}

// Add returns the field-wise sum of s and o. The result is valid only when
// both inputs are.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Valid:           s.Valid && o.Valid,
		ParsedLength:    s.ParsedLength + o.ParsedLength,
		TotalCodePoints: s.TotalCodePoints + o.TotalCodePoints,
		WideCodePoints:  s.WideCodePoints + o.WideCodePoints,
	}
}
