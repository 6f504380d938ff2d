// Package bufpool pools the buffers that hold whole inputs while they are
// scanned.
//
// Guidelines:
//   - A buffer must not be used after Put; slices returned by Bytes share
//     its memory.
//   - Use GetMinSize when the input size is known up front (regular files)
//     to avoid repeated growth in ReadFrom.
package bufpool

import (
	"io"
	"sync"
)

const (
	defaultSize = 1024
	readChunk   = 32 * 1024

	// maxPooledSize keeps one huge input from pinning memory in the pool.
	maxPooledSize = 4 << 20
)

// ByteBuffer is a growable byte slice.
type ByteBuffer struct {
	b []byte
}

var pool = sync.Pool{New: func() any { return &ByteBuffer{b: make([]byte, 0, defaultSize)} }}

// Get obtains a pooled, empty ByteBuffer.
func Get() *ByteBuffer {
	bb := pool.Get().(*ByteBuffer)
	bb.Reset()
	return bb
}

// GetMinSize obtains a pooled, empty ByteBuffer with capacity for at least
// size bytes.
func GetMinSize(size int) *ByteBuffer {
	bb := Get()
	if size > 0 {
		bb.Ensure(size)
	}
	return bb
}

// Put returns the buffer to the pool.
func Put(bb *ByteBuffer) {
	if cap(bb.b) > maxPooledSize {
		return
	}
	bb.Reset()
	pool.Put(bb)
}

// Bytes returns the underlying bytes.
func (bb *ByteBuffer) Bytes() []byte { return bb.b }

// Len returns length.
func (bb *ByteBuffer) Len() int { return len(bb.b) }

// Reset resets the length to zero; capacity is unchanged.
func (bb *ByteBuffer) Reset() { bb.b = bb.b[:0] }

// Ensure ensures there is room for at least n more bytes without reallocation.
func (bb *ByteBuffer) Ensure(n int) {
	need := len(bb.b) + n
	if cap(bb.b) >= need {
		return
	}
	// Grow: double until enough, then allocate
	c := cap(bb.b)
	if c == 0 {
		c = defaultSize
	}
	for c < need {
		c <<= 1
	}
	nb := make([]byte, len(bb.b), c)
	copy(nb, bb.b)
	bb.b = nb
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(p []byte) (int, error) {
	bb.b = append(bb.b, p...)
	return len(p), nil
}

// ReadFrom implements io.ReaderFrom, reading r until EOF.
func (bb *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		if cap(bb.b)-len(bb.b) < readChunk {
			bb.Ensure(readChunk)
		}
		n, err := r.Read(bb.b[len(bb.b):cap(bb.b)])
		if n > 0 {
			bb.b = bb.b[:len(bb.b)+n]
			total += int64(n)
		}
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
	}
}
