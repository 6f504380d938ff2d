package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	fxcbor "github.com/fxamacker/cbor/v2"
	"github.com/tinylib/msgp/msgp"
)

// cborEncMode emits the shortest form with sorted map keys so identical
// reports always encode to identical bytes.
var cborEncMode = func() fxcbor.EncMode {
	em, err := fxcbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Write encodes reports to w in format f.
func Write(w io.Writer, f Format, reports []Report) error {
	var (
		out []byte
		err error
	)
	switch f {
	case FormatText:
		out = AppendText(nil, reports)
	case FormatJSON:
		out, err = json.MarshalIndent(reports, "", "  ")
		out = append(out, '\n')
	case FormatCBOR:
		out, err = cborEncMode.Marshal(reports)
	case FormatMsgpack:
		out, err = AppendMsgpack(nil, reports)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s report: %w", f, err)
	}
	_, err = w.Write(out)
	return err
}

// DecodeCBOR decodes reports written with FormatCBOR.
func DecodeCBOR(b []byte) ([]Report, error) {
	var reports []Report
	if err := fxcbor.Unmarshal(b, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// AppendMsgpack appends reports as a MessagePack array.
func AppendMsgpack(b []byte, reports []Report) ([]byte, error) {
	sz := msgp.ArrayHeaderSize
	for i := range reports {
		sz += reports[i].Msgsize()
	}
	o := msgp.Require(b, sz)
	o = msgp.AppendArrayHeader(o, uint32(len(reports)))
	var err error
	for i := range reports {
		o, err = reports[i].MarshalMsg(o)
		if err != nil {
			return b, msgp.WrapError(err, i)
		}
	}
	return o, nil
}

// DecodeMsgpack decodes reports written with FormatMsgpack.
func DecodeMsgpack(b []byte) ([]Report, error) {
	n, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return nil, err
	}
	reports := make([]Report, n)
	for i := range reports {
		b, err = reports[i].UnmarshalMsg(b)
		if err != nil {
			return nil, msgp.WrapError(err, i)
		}
	}
	return reports, nil
}

// AppendText appends a human-readable rendering of reports.
func AppendText(b []byte, reports []Report) []byte {
	var sb strings.Builder
	for i, r := range reports {
		if i > 0 {
			sb.WriteByte('\n')
		}
		status := "valid"
		if !r.Valid {
			status = "invalid"
		}
		fmt.Fprintf(&sb, "%s: %s\n", r.Name, status)
		fmt.Fprintf(&sb, "  size:         %s (%s bytes)\n", humanize.Bytes(uint64(r.Size)), humanize.Comma(int64(r.Size)))
		fmt.Fprintf(&sb, "  parsed:       %s bytes\n", humanize.Comma(int64(r.ParsedLength)))
		fmt.Fprintf(&sb, "  code points:  %s (%s wide)\n", humanize.Comma(int64(r.TotalCodePoints)), humanize.Comma(int64(r.WideCodePoints)))
		if d := r.Document; d != nil {
			fmt.Fprintf(&sb, "  cbor items:   %s\n", humanize.Comma(int64(d.Items)))
			fmt.Fprintf(&sb, "  text strings: %s (%s)\n", humanize.Comma(int64(d.TextStrings)), humanize.Bytes(uint64(d.TextBytes)))
		}
		if r.Error != "" {
			fmt.Fprintf(&sb, "  error:        %s\n", r.Error)
		}
	}
	return append(b, sb.String()...)
}
