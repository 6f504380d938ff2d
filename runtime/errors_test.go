package utf8stats_test

import (
	"errors"
	"testing"

	utf8stats "github.com/synadia-labs/utf8stats/runtime"
)

func TestCheck(t *testing.T) {
	cases := []struct {
		name      string
		hex       string
		offset    int
		lead      byte
		truncated bool
	}{
		{"truncated-three-byte", "6162e282", 2, 0xe2, true},
		{"truncated-max-code-point", "f48fbf", 0, 0xf4, true},
		{"overlong", "61c080", 1, 0xc0, false},
		{"bad-continuation-at-end", "e241", 0, 0xe2, false},
		{"overlong-prefix-at-end", "e080", 0, 0xe0, false},
		{"surrogate-prefix-at-end", "eda0", 0, 0xed, false},
		{"lead-ff", "ff", 0, 0xff, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := utf8stats.Check(mustHex(t, c.hex))
			var ise *utf8stats.InvalidSequenceError
			if !errors.As(err, &ise) {
				t.Fatalf("expected *InvalidSequenceError, got %v", err)
			}
			if ise.Offset != c.offset || ise.Lead != c.lead || ise.Truncated != c.truncated {
				t.Fatalf("got offset=%d lead=0x%02x truncated=%v want offset=%d lead=0x%02x truncated=%v",
					ise.Offset, ise.Lead, ise.Truncated, c.offset, c.lead, c.truncated)
			}
			if !errors.Is(err, utf8stats.ErrInvalidUTF8) {
				t.Fatalf("expected errors.Is(err, ErrInvalidUTF8)")
			}
			if got := errors.Is(err, utf8stats.ErrTruncated); got != c.truncated {
				t.Fatalf("errors.Is(err, ErrTruncated): got %v want %v", got, c.truncated)
			}
		})
	}

	if err := utf8stats.Check([]byte("fine ✓")); err != nil {
		t.Fatalf("valid input: unexpected error %v", err)
	}
	if err := utf8stats.Check(nil); err != nil {
		t.Fatalf("nil input: unexpected error %v", err)
	}
}

func TestInvalidSequenceErrorMessage(t *testing.T) {
	err := utf8stats.Check(mustHex(t, "6162e282"))
	want := "utf8stats: truncated UTF-8 sequence at offset 2 (lead byte 0xe2)"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}

	wrapped := utf8stats.WrapError(err, "payload", "name")
	want += " at payload/name"
	if wrapped.Error() != want {
		t.Fatalf("wrapped: got %q want %q", wrapped.Error(), want)
	}
	if !errors.Is(wrapped, utf8stats.ErrTruncated) {
		t.Fatalf("wrapped error lost ErrTruncated")
	}
	if !utf8stats.Resumable(wrapped) {
		t.Fatalf("invalid sequence errors should be resumable")
	}
}

func TestWrapErrorForeign(t *testing.T) {
	base := errors.New("read failed")
	wrapped := utf8stats.WrapError(base, "stdin")
	if wrapped.Error() != "read failed at stdin" {
		t.Fatalf("got %q", wrapped.Error())
	}
	if utf8stats.Cause(wrapped) != base {
		t.Fatalf("Cause did not return the original error")
	}
	if !errors.Is(wrapped, base) {
		t.Fatalf("errors.Is should see through the wrapper")
	}
	if utf8stats.Resumable(wrapped) {
		t.Fatalf("foreign errors are not resumable")
	}
	if utf8stats.WrapError(nil, "x") != nil {
		t.Fatalf("WrapError(nil) should be nil")
	}
}
