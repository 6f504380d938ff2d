package utf8stats

// DecodeSequence returns the length in bytes of the well-formed UTF-8
// sequence that begins at b[start], or 0 if none does.
//
// Only b[start:end] is examined. A sequence that would need bytes at or
// past end is reported as 0 (truncated) without reading them. Callers are
// expected to pass 0 <= start < end <= len(b); any other combination also
// yields 0.
func DecodeSequence(b []byte, start, end int) int {
	if start < 0 || start >= end || end > len(b) {
		return 0
	}

	c := b[start]
	switch {
	case c <= maxASCII: // 00..7F
		return 1

	case c < minLead2: // 80..C1
		return 0

	case c <= maxLead2: // C2..DF
		if end-start < 2 {
			return 0
		}
		if !isContinuation(b[start+1]) {
			return 0
		}
		return 2

	case c <= maxLead3: // E0..EF
		if end-start < 3 {
			return 0
		}
		c1 := b[start+1]
		// Overlong 3-byte form.
		if c == lead3Overlong && c1 < 0xA0 {
			return 0
		}
		// U+D800..U+DFFF.
		if c == lead3Surrogate && c1 > 0x9F {
			return 0
		}
		if !isContinuation(c1) || !isContinuation(b[start+2]) {
			return 0
		}
		return 3

	case c <= maxLead4: // F0..F4
		if end-start < 4 {
			return 0
		}
		c1 := b[start+1]
		// Overlong 4-byte form.
		if c == lead4Overlong && c1 < 0x90 {
			return 0
		}
		// Beyond U+10FFFF.
		if c == lead4MaxRune && c1 > 0x8F {
			return 0
		}
		if !isContinuation(c1) || !isContinuation(b[start+2]) || !isContinuation(b[start+3]) {
			return 0
		}
		return 4

	default: // F5..FF
		return 0
	}
}

// SequenceLength returns the length of the sequence announced by a lead
// byte, or 0 for bytes that can never start a well-formed sequence.
func SequenceLength(lead byte) int {
	switch {
	case lead <= maxASCII:
		return 1
	case lead < minLead2:
		return 0
	case lead <= maxLead2:
		return 2
	case lead <= maxLead3:
		return 3
	case lead <= maxLead4:
		return 4
	default:
		return 0
	}
}

func isContinuation(c byte) bool { return c&contMask == contBits }

// secondByteRange returns the accepted range for the byte following a
// multi-byte lead.
func secondByteRange(lead byte) (lo, hi byte) {
	switch lead {
	case lead3Overlong:
		return 0xA0, hicb
	case lead3Surrogate:
		return locb, 0x9F
	case lead4Overlong:
		return 0x90, hicb
	case lead4MaxRune:
		return locb, 0x8F
	default:
		return locb, hicb
	}
}

// isTruncated reports whether tail begins with a sequence that is cut off
// by the end of the input and whose present bytes are all acceptable.
func isTruncated(tail []byte) bool {
	if len(tail) == 0 {
		return false
	}
	need := SequenceLength(tail[0])
	if need < 2 || len(tail) >= need {
		return false
	}
	if len(tail) > 1 {
		lo, hi := secondByteRange(tail[0])
		if tail[1] < lo || tail[1] > hi {
			return false
		}
	}
	for _, c := range tail[min(len(tail), 2):] {
		if !isContinuation(c) {
			return false
		}
	}
	return true
}
