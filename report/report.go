// Package report turns scan results into reports and encodes them as
// text, JSON, CBOR or MessagePack.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/synadia-labs/utf8stats/cbortext"
	utf8stats "github.com/synadia-labs/utf8stats/runtime"
)

// Report describes one scanned input.
type Report struct {
	Name string `json:"name" cbor:"name" msg:"name"`
	Size int    `json:"size" cbor:"size" msg:"size"`

	utf8stats.Stats

	// Document is set for inputs checked as CBOR.
	Document *cbortext.DocumentStats `json:"document,omitempty" cbor:"document,omitempty" msg:"document,omitempty"`

	// Error describes the first failure; empty when Valid.
	Error string `json:"error,omitempty" cbor:"error,omitempty" msg:"error,omitempty"`
}

// FromBytes scans b as UTF-8 text.
func FromBytes(name string, b []byte) Report {
	r := Report{Name: name, Size: len(b), Stats: utf8stats.ScanBytes(b)}
	if !r.Valid {
		r.Error = utf8stats.Check(b).Error()
	}
	return r
}

// FromCBOR checks the text strings of the CBOR sequence in b.
//
// The embedded Stats then describe the text strings: the counters are the
// document totals and ParsedLength is len(b) when valid, the offset of the
// first rejected byte for a text failure, or 0 when the document is not
// well-formed.
func FromCBOR(name string, b []byte) Report {
	ds, err := cbortext.TextStats(b)
	r := Report{
		Name:     name,
		Size:     len(b),
		Document: &ds,
		Stats: utf8stats.Stats{
			TotalCodePoints: ds.CodePoints,
			WideCodePoints:  ds.WideCodePoints,
		},
	}
	if err == nil {
		r.Valid = true
		r.ParsedLength = len(b)
		return r
	}
	r.Error = err.Error()
	var te *cbortext.TextError
	if errors.As(err, &te) {
		r.ParsedLength = te.Offset
	}
	return r
}

// Format selects an output encoding.
type Format string

// Output formats.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatCBOR    Format = "cbor"
	FormatMsgpack Format = "msgpack"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatText, FormatJSON, FormatCBOR, FormatMsgpack}

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q", s)
}
