package utf8stats

import "encoding/binary"

// asciiMask selects the high bit of each byte in a little-endian word.
const asciiMask = 0x8080808080808080

// Scan walks b[:byteLength] one sequence at a time and returns the
// accumulated statistics. It stops at the first sequence DecodeSequence
// rejects; the counters then describe the bytes before it.
//
// byteLength is clamped to [0, len(b)]. An empty range is valid.
func Scan(b []byte, byteLength int) Stats {
	end := clampLength(b, byteLength)

	var st Stats
	for i := 0; i < end; {
		if b[i] <= maxASCII {
			n := asciiRun(b[i:end])
			st.TotalCodePoints += n
			st.ParsedLength += n
			i += n
			continue
		}

		n := DecodeSequence(b, i, end)
		if n == 0 {
			return st
		}
		if n > 1 {
			st.WideCodePoints++
		}
		st.TotalCodePoints++
		st.ParsedLength += n
		i += n
	}

	st.Valid = true
	return st
}

// Validate reports whether b[:byteLength] is well-formed UTF-8.
// It is equivalent to Scan(b, byteLength).Valid.
func Validate(b []byte, byteLength int) bool {
	return Scan(b, byteLength).Valid
}

// ScanBytes is Scan over the whole of b.
func ScanBytes(b []byte) Stats { return Scan(b, len(b)) }

// ValidBytes reports whether all of b is well-formed UTF-8.
func ValidBytes(b []byte) bool { return Scan(b, len(b)).Valid }

// ScanString is Scan over the bytes of s. It does not copy s.
func ScanString(s string) Stats {
	b := unsafeBytes(s)
	return Scan(b, len(b))
}

// ValidString reports whether s is well-formed UTF-8.
func ValidString(s string) bool { return ScanString(s).Valid }

func clampLength(b []byte, byteLength int) int {
	switch {
	case byteLength < 0:
		return 0
	case byteLength > len(b):
		return len(b)
	default:
		return byteLength
	}
}

// asciiRun returns the number of leading bytes of b below 0x80, testing
// eight bytes at a time while it can.
func asciiRun(b []byte) int {
	n := 0
	for len(b)-n >= 8 {
		if binary.LittleEndian.Uint64(b[n:])&asciiMask != 0 {
			break
		}
		n += 8
	}
	for n < len(b) && b[n] <= maxASCII {
		n++
	}
	return n
}
