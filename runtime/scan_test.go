package utf8stats_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	utf8stats "github.com/synadia-labs/utf8stats/runtime"
)

// referenceStats computes the expected statistics with unicode/utf8.
func referenceStats(b []byte) utf8stats.Stats {
	var st utf8stats.Stats
	for p := b; len(p) > 0; {
		r, size := utf8.DecodeRune(p)
		if r == utf8.RuneError && size == 1 {
			return st
		}
		if size > 1 {
			st.WideCodePoints++
		}
		st.TotalCodePoints++
		st.ParsedLength += size
		p = p[size:]
	}
	st.Valid = true
	return st
}

func TestScanEmpty(t *testing.T) {
	want := utf8stats.Stats{Valid: true}
	if diff := cmp.Diff(want, utf8stats.Scan(nil, 0)); diff != "" {
		t.Fatalf("nil buffer (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, utf8stats.Scan([]byte("\xff"), 0)); diff != "" {
		t.Fatalf("zero length (-want +got):\n%s", diff)
	}
}

// TestScanASCII covers lengths on both sides of the eight-byte fast path.
func TestScanASCII(t *testing.T) {
	for n := 0; n <= 40; n++ {
		b := []byte(strings.Repeat("x", n))
		want := utf8stats.Stats{Valid: true, ParsedLength: n, TotalCodePoints: n}
		if diff := cmp.Diff(want, utf8stats.ScanBytes(b)); diff != "" {
			t.Fatalf("n=%d (-want +got):\n%s", n, diff)
		}
	}
}

func TestScanMixed(t *testing.T) {
	s := "héllo, 世界 🎉"
	want := utf8stats.Stats{Valid: true, ParsedLength: 19, TotalCodePoints: 11, WideCodePoints: 4}
	if diff := cmp.Diff(want, utf8stats.ScanString(s)); diff != "" {
		t.Fatalf("ScanString (-want +got):\n%s", diff)
	}
	if got := want.NarrowCodePoints(); got != 7 {
		t.Fatalf("NarrowCodePoints: got %d want 7", got)
	}
}

func TestScanOnlyWide(t *testing.T) {
	b := []byte(strings.Repeat("é世🎉", 5))
	want := utf8stats.Stats{Valid: true, ParsedLength: len(b), TotalCodePoints: 15, WideCodePoints: 15}
	if diff := cmp.Diff(want, utf8stats.ScanBytes(b)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestScanTruncated(t *testing.T) {
	cases := []struct {
		name string
		hex  string
		want utf8stats.Stats
	}{
		{"lead-only", "e2", utf8stats.Stats{}},
		{"after-ascii", "6162e282", utf8stats.Stats{ParsedLength: 2, TotalCodePoints: 2}},
		{"after-wide", "c3a9f09f98", utf8stats.Stats{ParsedLength: 2, TotalCodePoints: 1, WideCodePoints: 1}},
		{"two-byte", "414243c2", utf8stats.Stats{ParsedLength: 3, TotalCodePoints: 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := mustHex(t, c.hex)
			if diff := cmp.Diff(c.want, utf8stats.ScanBytes(b)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

// TestScanRetainsPartialResults verifies that counters cover exactly the
// code points before the first rejected byte.
func TestScanRetainsPartialResults(t *testing.T) {
	b := []byte("abé世\xffzz")
	want := utf8stats.Stats{ParsedLength: 7, TotalCodePoints: 4, WideCodePoints: 2}
	got := utf8stats.ScanBytes(b)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if p := got.Prefix(b); string(p) != "abé世" {
		t.Fatalf("Prefix: got %q", p)
	}
}

func TestScanRejects(t *testing.T) {
	cases := []struct {
		name string
		hex  string
	}{
		{"overlong-nul", "c080"},
		{"surrogate", "eda080"},
		{"beyond-max-code-point", "f4908080"},
		{"lone-continuation", "80"},
		{"lead-ff", "ff"},
	}
	for _, c := range cases {
		b := mustHex(t, c.hex)
		st := utf8stats.ScanBytes(b)
		if st.Valid || st.ParsedLength != 0 || st.TotalCodePoints != 0 {
			t.Fatalf("%s: got %+v want rejection at 0", c.name, st)
		}
	}

	st := utf8stats.ScanBytes(mustHex(t, "f48fbfbf"))
	want := utf8stats.Stats{Valid: true, ParsedLength: 4, TotalCodePoints: 1, WideCodePoints: 1}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Fatalf("U+10FFFF (-want +got):\n%s", diff)
	}
}

func TestScanByteLength(t *testing.T) {
	b := []byte("abc\xff")
	if !utf8stats.Validate(b, 3) {
		t.Fatalf("Validate(b, 3): got false want true")
	}
	if utf8stats.Validate(b, 4) {
		t.Fatalf("Validate(b, 4): got true want false")
	}

	// A length that splits a sequence truncates it.
	b = []byte("a€")
	want := utf8stats.Stats{ParsedLength: 1, TotalCodePoints: 1}
	if diff := cmp.Diff(want, utf8stats.Scan(b, 3)); diff != "" {
		t.Fatalf("split sequence (-want +got):\n%s", diff)
	}

	// Out of range lengths are clamped.
	want = utf8stats.Stats{Valid: true, ParsedLength: 2, TotalCodePoints: 2}
	if diff := cmp.Diff(want, utf8stats.Scan([]byte("ab"), 10)); diff != "" {
		t.Fatalf("long length (-want +got):\n%s", diff)
	}
	want = utf8stats.Stats{Valid: true}
	if diff := cmp.Diff(want, utf8stats.Scan([]byte("ab"), -1)); diff != "" {
		t.Fatalf("negative length (-want +got):\n%s", diff)
	}
}

func TestScanIsIdempotent(t *testing.T) {
	b := []byte("ok éé \xed\xa0\x80 tail")
	orig := append([]byte(nil), b...)
	first := utf8stats.ScanBytes(b)
	second := utf8stats.ScanBytes(b)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second scan differs (-first +second):\n%s", diff)
	}
	if !bytes.Equal(b, orig) {
		t.Fatalf("input modified: got % x want % x", b, orig)
	}
}

func TestStatsHelpers(t *testing.T) {
	a := utf8stats.Stats{Valid: true, ParsedLength: 3, TotalCodePoints: 2, WideCodePoints: 1}
	b := utf8stats.Stats{Valid: false, ParsedLength: 1, TotalCodePoints: 1}
	want := utf8stats.Stats{Valid: false, ParsedLength: 4, TotalCodePoints: 3, WideCodePoints: 1}
	if diff := cmp.Diff(want, a.Add(b)); diff != "" {
		t.Fatalf("Add (-want +got):\n%s", diff)
	}

	buf := []byte("ab")
	if got := (utf8stats.Stats{ParsedLength: 5}).Prefix(buf); !bytes.Equal(got, buf) {
		t.Fatalf("Prefix past end: got %q", got)
	}
	if got := (utf8stats.Stats{}).Prefix(buf); len(got) != 0 {
		t.Fatalf("empty Prefix: got %q", got)
	}
}

// TestScanMatchesReference compares Scan against unicode/utf8 on random
// buffers biased towards bytes that start or continue sequences.
func TestScanMatchesReference(t *testing.T) {
	alphabet := []byte{'a', 0x7f, 0x80, 0x8f, 0x90, 0x9f, 0xa0, 0xbf, 0xc0, 0xc2, 0xdf, 0xe0, 0xe2, 0xed, 0xef, 0xf0, 0xf4, 0xf5, 0xff}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		b := make([]byte, rng.Intn(24))
		for j := range b {
			b[j] = alphabet[rng.Intn(len(alphabet))]
		}
		want := referenceStats(b)
		got := utf8stats.ScanBytes(b)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("% x (-want +got):\n%s", b, diff)
		}
		if v := utf8stats.ValidBytes(b); v != got.Valid || v != utf8.Valid(b) {
			t.Fatalf("% x: ValidBytes=%v Scan=%v utf8.Valid=%v", b, v, got.Valid, utf8.Valid(b))
		}
	}
}

func TestValidString(t *testing.T) {
	if !utf8stats.ValidString("") {
		t.Fatalf("empty string should be valid")
	}
	if !utf8stats.ValidString("plain ascii and ünïcödé") {
		t.Fatalf("expected valid")
	}
	if utf8stats.ValidString("bad \xc0\x80") {
		t.Fatalf("expected overlong rejection")
	}
}
