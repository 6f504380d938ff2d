package cbortext

import (
	utf8stats "github.com/synadia-labs/utf8stats/runtime"
)

// ValidateWellFormedBytes validates that the next CBOR data item in b is well-formed per RFC 8949
// and returns the remaining bytes after that item.
// Checks performed:
// - Structural correctness of arrays, maps, tags, simple values
// - String UTF-8 validity (for major type 3)
// - Prohibits reserved additional info values 28,29,30
func ValidateWellFormedBytes(b []byte) (rest []byte, err error) {
	w := walker{doc: b}
	return w.item(b, 0)
}

// ValidateDocument validates that all items in b are well-formed until input is exhausted.
func ValidateDocument(b []byte) error {
	_, err := walkSequence(b, nil)
	return err
}

// TextStats validates every item in b like ValidateDocument and summarizes
// the text strings it contains. On error the returned statistics cover the
// text decoded before the failure.
func TextStats(b []byte) (DocumentStats, error) {
	var ds DocumentStats
	_, err := walkSequence(b, &ds)
	return ds, err
}

func walkSequence(b []byte, ds *DocumentStats) ([]byte, error) {
	w := walker{doc: b, stats: ds}
	var err error
	for len(b) > 0 {
		b, err = w.item(b, 0)
		if err != nil {
			return b, err
		}
		if ds != nil {
			ds.Items++
		}
	}
	return b, nil
}

// walker carries the whole input so text failures can be reported at
// absolute offsets.
type walker struct {
	doc   []byte
	stats *DocumentStats
}

func (w *walker) offset(p []byte) int { return len(w.doc) - len(p) }

// text scans one definite-length text payload that ends where rest begins.
// ctx names the chunk of an indefinite-length string.
func (w *walker) text(payload, rest []byte, ctx ...any) error {
	st := utf8stats.ScanBytes(payload)
	if w.stats != nil {
		w.stats.TextBytes += st.ParsedLength
		w.stats.CodePoints += st.TotalCodePoints
		w.stats.WideCodePoints += st.WideCodePoints
	}
	if st.Valid {
		return nil
	}
	start := w.offset(rest) - len(payload)
	cause := utf8stats.Check(payload)
	if len(ctx) > 0 {
		cause = utf8stats.WrapError(cause, ctx...)
	}
	return &TextError{Offset: start + st.ParsedLength, Cause: cause}
}

func (w *walker) item(b []byte, depth int) ([]byte, error) {
	if depth > recursionLimit {
		return b, ErrMaxDepthExceeded
	}
	if len(b) < 1 {
		return b, ErrShortBytes
	}
	lead := b[0]
	major := getMajorType(lead)
	add := getAddInfo(lead)

	// Reserved additional info values 28, 29, 30 are not well-formed
	if add == 28 || add == 29 || add == 30 {
		return b, ErrReservedAdditionalInfo
	}

	switch major {
	case majorTypeUint, majorTypeNegInt, majorTypeTag:
		_, o, err := readUintCore(b, major)
		if err != nil {
			return b, err
		}
		if major == majorTypeTag {
			return w.item(o, depth+1)
		}
		return o, nil

	case majorTypeBytes:
		if add == addInfoIndefinite {
			// indefinite bytes: series of definite byte strings terminated by break
			p := b[1:]
			for {
				if len(p) < 1 {
					return b, ErrShortBytes
				}
				if p[0] == breakByte {
					return p[1:], nil
				}
				_, o, err := readStringZC(p, majorTypeBytes)
				if err != nil {
					return b, err
				}
				p = o
			}
		}
		_, o, err := readStringZC(b, majorTypeBytes)
		if err != nil {
			return b, err
		}
		return o, nil

	case majorTypeText:
		if w.stats != nil {
			w.stats.TextStrings++
		}
		if add == addInfoIndefinite {
			// every chunk must be a definite text string holding complete UTF-8
			p := b[1:]
			for i := 0; ; i++ {
				if len(p) < 1 {
					return b, ErrShortBytes
				}
				if p[0] == breakByte {
					return p[1:], nil
				}
				chunk, o, err := readStringZC(p, majorTypeText)
				if err != nil {
					return b, err
				}
				if err := w.text(chunk, o, "chunk", i); err != nil {
					return b, err
				}
				p = o
			}
		}
		s, o, err := readStringZC(b, majorTypeText)
		if err != nil {
			return b, err
		}
		if err := w.text(s, o); err != nil {
			return b, err
		}
		return o, nil

	case majorTypeArray, majorTypeMap:
		// a map holds two items per entry
		per := uint64(1)
		if major == majorTypeMap {
			per = 2
		}
		if add == addInfoIndefinite {
			p := b[1:]
			for {
				if len(p) < 1 {
					return b, ErrShortBytes
				}
				if p[0] == breakByte {
					return p[1:], nil
				}
				for i := uint64(0); i < per; i++ {
					var err error
					p, err = w.item(p, depth+1)
					if err != nil {
						return b, err
					}
				}
			}
		}
		sz, p, err := readUintCore(b, major)
		if err != nil {
			return b, err
		}
		// Every item needs at least one byte.
		if sz > uint64(len(p)) {
			return b, ErrShortBytes
		}
		for i := uint64(0); i < sz*per; i++ {
			p, err = w.item(p, depth+1)
			if err != nil {
				return b, err
			}
		}
		return p, nil

	default: // majorTypeSimple
		switch add {
		case simpleFloat16:
			if len(b) < 3 {
				return b, ErrShortBytes
			}
			return b[3:], nil
		case simpleFloat32:
			if len(b) < 5 {
				return b, ErrShortBytes
			}
			return b[5:], nil
		case simpleFloat64:
			if len(b) < 9 {
				return b, ErrShortBytes
			}
			return b[9:], nil
		case addInfoUint8: // one-byte simple value (0xf8 xx)
			if len(b) < 2 {
				return b, ErrShortBytes
			}
			if b[1] < minExtendedSimple {
				return b, ErrInvalidSimpleValue
			}
			return b[2:], nil
		case simpleBreak:
			return b, ErrUnexpectedBreak
		default:
			// 0..23, including false/true/null/undefined; unassigned values are still well-formed
			return b[1:], nil
		}
	}
}
