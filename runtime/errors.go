package utf8stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const resumableDefault = false

var (
	// ErrInvalidUTF8 is matched by every error reporting a sequence that is
	// not well-formed UTF-8.
	ErrInvalidUTF8 error = errors.New("utf8stats: invalid UTF-8")

	// ErrTruncated is matched by errors for inputs that end partway through
	// an otherwise acceptable multi-byte sequence.
	ErrTruncated error = errors.New("utf8stats: truncated UTF-8 sequence")
)

// Error is the interface satisfied
// by all of the errors that originate
// from this package.
type Error interface {
	error

	// Resumable returns whether the bytes before the failure are still
	// usable as text.
	Resumable() bool
}

// contextError allows Error instances to be enhanced with additional
// context about their origin.
type contextError interface {
	Error

	// withContext must not modify the error instance - it must clone and
	// return a new error with the context added.
	withContext(ctx string) error
}

// InvalidSequenceError reports the first byte at which a buffer stops being
// well-formed UTF-8.
type InvalidSequenceError struct {
	Offset    int  // offset of the rejected sequence; equals Stats.ParsedLength
	Lead      byte // first byte of the rejected sequence
	Truncated bool // the input ends inside an otherwise acceptable sequence
	ctx       string
}

// Error implements the error interface
func (e *InvalidSequenceError) Error() string {
	kind := "invalid"
	if e.Truncated {
		kind = "truncated"
	}
	out := "utf8stats: " + kind + " UTF-8 sequence at offset " + strconv.Itoa(e.Offset) +
		" (lead byte 0x" + strconv.FormatUint(uint64(e.Lead), 16) + ")"
	if e.ctx != "" {
		out += " at " + e.ctx
	}
	return out
}

// Is matches ErrInvalidUTF8, and ErrTruncated for truncations.
func (e *InvalidSequenceError) Is(target error) bool {
	return target == ErrInvalidUTF8 || (e.Truncated && target == ErrTruncated)
}

// Resumable is always 'true': the prefix before Offset is well-formed.
func (e *InvalidSequenceError) Resumable() bool { return true }

func (e *InvalidSequenceError) withContext(ctx string) error {
	o := *e
	o.ctx = addCtx(o.ctx, ctx)
	return &o
}

// Check returns nil if b is well-formed UTF-8 and an *InvalidSequenceError
// describing the first rejected sequence otherwise.
func Check(b []byte) error {
	st := Scan(b, len(b))
	if st.Valid {
		return nil
	}
	off := st.ParsedLength
	return &InvalidSequenceError{
		Offset:    off,
		Lead:      b[off],
		Truncated: isTruncated(b[off:]),
	}
}

// Cause returns the underlying cause of an error that has been wrapped
// with additional context.
func Cause(e error) error {
	out := e
	if e, ok := e.(errWrapped); ok && e.cause != nil {
		out = e.cause
	}
	return out
}

// Resumable returns whether or not the error leaves a usable prefix.
func Resumable(e error) bool {
	var ue Error
	if errors.As(e, &ue) {
		return ue.Resumable()
	}
	return resumableDefault
}

// WrapError wraps an error with additional context, such as the name of the
// field or file the bytes came from. Underlying errors can be retrieved
// using Cause() or errors.Is/As.
//
// The input error is not modified - a new error is returned.
func WrapError(err error, ctx ...any) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case contextError:
		return e.withContext(ctxString(ctx))
	default:
		return errWrapped{cause: err, ctx: ctxString(ctx)}
	}
}

func ctxString(ctx []any) string {
	parts := make([]string, 0, len(ctx))
	for _, c := range ctx {
		parts = append(parts, fmt.Sprint(c))
	}
	return strings.Join(parts, "/")
}

func addCtx(ctx, add string) string {
	if ctx != "" {
		return add + "/" + ctx
	}
	return add
}

// errWrapped allows arbitrary errors passed to WrapError to be enhanced with
// context and unwrapped with Cause()
type errWrapped struct {
	cause error
	ctx   string
}

func (e errWrapped) Error() string {
	if e.ctx != "" {
		return e.cause.Error() + " at " + e.ctx
	}
	return e.cause.Error()
}

func (e errWrapped) Resumable() bool {
	if e, ok := e.cause.(Error); ok {
		return e.Resumable()
	}
	return resumableDefault
}

// Unwrap returns the cause.
func (e errWrapped) Unwrap() error { return e.cause }
