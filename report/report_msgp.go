package report

import (
	"github.com/tinylib/msgp/msgp"

	"github.com/synadia-labs/utf8stats/cbortext"
)

var (
	_ msgp.Marshaler   = (*Report)(nil)
	_ msgp.Unmarshaler = (*Report)(nil)
	_ msgp.Sizer       = (*Report)(nil)
)

// MarshalMsg implements msgp.Marshaler
func (z *Report) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	n := uint32(8)
	if z.Document == nil {
		n--
	}
	if z.Error == "" {
		n--
	}
	o = msgp.AppendMapHeader(o, n)
	// string "name"
	o = msgp.AppendString(o, "name")
	o = msgp.AppendString(o, z.Name)
	// string "size"
	o = msgp.AppendString(o, "size")
	o = msgp.AppendInt(o, z.Size)
	// string "valid"
	o = msgp.AppendString(o, "valid")
	o = msgp.AppendBool(o, z.Valid)
	// string "parsed_length"
	o = msgp.AppendString(o, "parsed_length")
	o = msgp.AppendInt(o, z.ParsedLength)
	// string "total_code_points"
	o = msgp.AppendString(o, "total_code_points")
	o = msgp.AppendInt(o, z.TotalCodePoints)
	// string "wide_code_points"
	o = msgp.AppendString(o, "wide_code_points")
	o = msgp.AppendInt(o, z.WideCodePoints)
	if z.Document != nil {
		// string "document"
		o = msgp.AppendString(o, "document")
		o = appendDocument(o, z.Document)
	}
	if z.Error != "" {
		// string "error"
		o = msgp.AppendString(o, "error")
		o = msgp.AppendString(o, z.Error)
	}
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Report) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "name":
			z.Name, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Name")
				return
			}
		case "size":
			z.Size, bts, err = msgp.ReadIntBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Size")
				return
			}
		case "valid":
			z.Valid, bts, err = msgp.ReadBoolBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Valid")
				return
			}
		case "parsed_length":
			z.ParsedLength, bts, err = msgp.ReadIntBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "ParsedLength")
				return
			}
		case "total_code_points":
			z.TotalCodePoints, bts, err = msgp.ReadIntBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "TotalCodePoints")
				return
			}
		case "wide_code_points":
			z.WideCodePoints, bts, err = msgp.ReadIntBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "WideCodePoints")
				return
			}
		case "document":
			if msgp.IsNil(bts) {
				bts, err = msgp.ReadNilBytes(bts)
				if err != nil {
					return
				}
				z.Document = nil
			} else {
				if z.Document == nil {
					z.Document = new(cbortext.DocumentStats)
				}
				bts, err = unmarshalDocument(z.Document, bts)
				if err != nil {
					err = msgp.WrapError(err, "Document")
					return
				}
			}
		case "error":
			z.Error, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Error")
				return
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				err = msgp.WrapError(err)
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Report) Msgsize() (s int) {
	s = 1 + 5 + msgp.StringPrefixSize + len(z.Name) + 5 + msgp.IntSize + 6 + msgp.BoolSize +
		14 + msgp.IntSize + 18 + msgp.IntSize + 17 + msgp.IntSize
	if z.Document != nil {
		s += 9 + documentMsgsize
	}
	if z.Error != "" {
		s += 6 + msgp.StringPrefixSize + len(z.Error)
	}
	return
}

const documentMsgsize = 1 + 6 + msgp.IntSize + 13 + msgp.IntSize + 11 + msgp.IntSize +
	12 + msgp.IntSize + 17 + msgp.IntSize

func appendDocument(o []byte, d *cbortext.DocumentStats) []byte {
	o = msgp.AppendMapHeader(o, 5)
	o = msgp.AppendString(o, "items")
	o = msgp.AppendInt(o, d.Items)
	o = msgp.AppendString(o, "text_strings")
	o = msgp.AppendInt(o, d.TextStrings)
	o = msgp.AppendString(o, "text_bytes")
	o = msgp.AppendInt(o, d.TextBytes)
	o = msgp.AppendString(o, "code_points")
	o = msgp.AppendInt(o, d.CodePoints)
	o = msgp.AppendString(o, "wide_code_points")
	o = msgp.AppendInt(o, d.WideCodePoints)
	return o
}

func unmarshalDocument(d *cbortext.DocumentStats, bts []byte) (o []byte, err error) {
	var field []byte
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			return
		}
		var dst *int
		switch msgp.UnsafeString(field) {
		case "items":
			dst = &d.Items
		case "text_strings":
			dst = &d.TextStrings
		case "text_bytes":
			dst = &d.TextBytes
		case "code_points":
			dst = &d.CodePoints
		case "wide_code_points":
			dst = &d.WideCodePoints
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				return
			}
			continue
		}
		*dst, bts, err = msgp.ReadIntBytes(bts)
		if err != nil {
			err = msgp.WrapError(err, string(field))
			return
		}
	}
	o = bts
	return
}
