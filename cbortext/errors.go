package cbortext

import (
	"errors"
	"strconv"

	utf8stats "github.com/synadia-labs/utf8stats/runtime"
)

var (
	// ErrShortBytes is returned when the
	// slice being validated is too short to
	// contain the item its header announces.
	ErrShortBytes error = errShort{}

	// ErrMaxDepthExceeded is returned when nesting exceeds the recursion limit.
	// This should only realistically be seen on adversarial data trying to exhaust the stack.
	ErrMaxDepthExceeded error = errors.New("cbortext: max depth exceeded")

	// ErrReservedAdditionalInfo is returned for the reserved additional info values 28, 29 and 30.
	ErrReservedAdditionalInfo error = errors.New("cbortext: reserved additional info value")

	// ErrUnexpectedIndefinite is returned when an indefinite length appears where
	// only a definite length is allowed (integers, tags, string chunks).
	ErrUnexpectedIndefinite error = errors.New("cbortext: unexpected indefinite length")

	// ErrUnexpectedBreak is returned for a break stop code outside an indefinite-length item.
	ErrUnexpectedBreak error = errors.New("cbortext: unexpected break")

	// ErrInvalidSimpleValue is returned for a two-byte simple value below 32.
	ErrInvalidSimpleValue error = errors.New("cbortext: invalid two-byte simple value")
)

type errShort struct{}

func (e errShort) Error() string   { return "cbortext: too few bytes left to read object" }
func (e errShort) Resumable() bool { return false }

// InvalidPrefixError is returned when an item
// uses a major type that is not expected, e.g.
// a byte string chunk inside an indefinite text string.
// This kind of error is unrecoverable.
type InvalidPrefixError struct {
	Want uint8
	Got  uint8
}

// Error implements the error interface
func (i InvalidPrefixError) Error() string {
	return "cbortext: expected major type " + strconv.Itoa(int(i.Want)) + " but got " + strconv.Itoa(int(i.Got))
}

// Resumable returns 'false' for InvalidPrefixErrors
func (i InvalidPrefixError) Resumable() bool { return false }

func badPrefix(want, got uint8) error {
	return InvalidPrefixError{Want: want, Got: got}
}

// TextError reports a text string that is not well-formed UTF-8.
type TextError struct {
	// Offset is the position of the first rejected byte, counted from
	// the start of the validated input.
	Offset int
	// Cause is the *utf8stats.InvalidSequenceError for the string payload.
	Cause error
}

// Error implements the error interface
func (t *TextError) Error() string {
	return "cbortext: text string byte " + strconv.Itoa(t.Offset) + ": " + t.Cause.Error()
}

// Unwrap returns the cause.
func (t *TextError) Unwrap() error { return t.Cause }

// Resumable is 'true': the document structure itself is intact.
func (t *TextError) Resumable() bool { return true }

var _ utf8stats.Error = (*TextError)(nil)
