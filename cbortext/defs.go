// Package cbortext checks that CBOR (RFC 8949) data items are well-formed
// and that every text string they carry is well-formed UTF-8.
//
// Text strings are scanned with the utf8stats runtime, so a failure
// reports the absolute offset of the first rejected byte in the document
// and TextStats can summarize the code points of every string at once.
// Each chunk of an indefinite-length text string must be complete UTF-8
// on its own; a code point split across chunks is rejected.
package cbortext

const (
	// recursionLimit bounds the nesting of arrays, maps and tags.
	recursionLimit = 1024
)

// CBOR major types (3 bits)
const (
	majorTypeUint   = 0 // unsigned integer
	majorTypeNegInt = 1 // negative integer
	majorTypeBytes  = 2 // byte string
	majorTypeText   = 3 // text string (UTF-8)
	majorTypeArray  = 4 // array
	majorTypeMap    = 5 // map
	majorTypeTag    = 6 // semantic tag
	majorTypeSimple = 7 // float, simple values, break
)

// Additional info values (5 bits)
const (
	addInfoDirect     = 23 // max direct value
	addInfoUint8      = 24 // 1-byte uint8 follows
	addInfoUint16     = 25 // 2-byte uint16 follows
	addInfoUint32     = 26 // 4-byte uint32 follows
	addInfoUint64     = 27 // 8-byte uint64 follows
	addInfoIndefinite = 31 // indefinite length (for bytes, text, array, map)
)

// Simple values in major type 7
const (
	simpleFloat16 = 25
	simpleFloat32 = 26
	simpleFloat64 = 27
	simpleBreak   = 31

	// minExtendedSimple is the lowest value allowed after a 0xf8 prefix.
	minExtendedSimple = 32
)

// makeByte creates a CBOR initial byte from major type and additional info
func makeByte(majorType, addInfo uint8) byte {
	return byte((majorType << 5) | addInfo)
}

// getMajorType extracts the major type from a CBOR initial byte
func getMajorType(b byte) uint8 {
	return (b >> 5) & 0x07
}

// getAddInfo extracts the additional info from a CBOR initial byte
func getAddInfo(b byte) uint8 {
	return b & 0x1f
}

var breakByte = makeByte(majorTypeSimple, simpleBreak)

// DocumentStats summarizes the text strings of a CBOR sequence.
type DocumentStats struct {
	// Items counts top-level data items.
	Items int `json:"items" cbor:"items" msg:"items"`
	// TextStrings counts text strings, map keys included. An
	// indefinite-length string counts once.
	TextStrings int `json:"text_strings" cbor:"text_strings" msg:"text_strings"`
	// TextBytes is the payload size of all text strings.
	TextBytes int `json:"text_bytes" cbor:"text_bytes" msg:"text_bytes"`
	// CodePoints and WideCodePoints add up the utf8stats counters of
	// every scanned string payload.
	CodePoints     int `json:"code_points" cbor:"code_points" msg:"code_points"`
	WideCodePoints int `json:"wide_code_points" cbor:"wide_code_points" msg:"wide_code_points"`
}
