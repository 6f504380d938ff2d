package cbortext

import "encoding/binary"

var be = binary.BigEndian

// readUintCore reads the argument of an item with the given expected major type
func readUintCore(b []byte, expectedMajor uint8) (uint64, []byte, error) {
	if len(b) < 1 {
		return 0, b, ErrShortBytes
	}

	major := getMajorType(b[0])
	if major != expectedMajor {
		return 0, b, badPrefix(expectedMajor, major)
	}

	addInfo := getAddInfo(b[0])

	switch {
	case addInfo <= addInfoDirect:
		return uint64(addInfo), b[1:], nil
	case addInfo == addInfoUint8:
		if len(b) < 2 {
			return 0, b, ErrShortBytes
		}
		return uint64(b[1]), b[2:], nil
	case addInfo == addInfoUint16:
		if len(b) < 3 {
			return 0, b, ErrShortBytes
		}
		return uint64(be.Uint16(b[1:])), b[3:], nil
	case addInfo == addInfoUint32:
		if len(b) < 5 {
			return 0, b, ErrShortBytes
		}
		return uint64(be.Uint32(b[1:])), b[5:], nil
	case addInfo == addInfoUint64:
		if len(b) < 9 {
			return 0, b, ErrShortBytes
		}
		return be.Uint64(b[1:]), b[9:], nil
	case addInfo == addInfoIndefinite:
		return 0, b, ErrUnexpectedIndefinite
	default:
		return 0, b, ErrReservedAdditionalInfo
	}
}

// readStringZC reads a definite-length byte or text string and returns its
// payload as a slice of b.
func readStringZC(b []byte, major uint8) (v []byte, o []byte, err error) {
	sz, o, err := readUintCore(b, major)
	if err != nil {
		return nil, b, err
	}
	// Compare in uint64 so huge lengths cannot overflow int.
	if sz > uint64(len(o)) {
		return nil, b, ErrShortBytes
	}
	return o[:sz], o[sz:], nil
}
