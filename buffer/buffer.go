// SPDX-License-Identifier: ISC

// Package buffer implements the append-only Writer and cursor-based
// Reader of spec.md §4.A, grounded on the teacher's storage/cursor.go
// (a cursor that advances over a byte range and fails predictably when it
// runs past the end) and storage/handle.go's copy-out-don't-alias
// discipline ("contents of the returned slice must not be modified").
package buffer

import (
	"github.com/hychain/core/dispose"
	"github.com/hychain/core/fault"
)

// Writer accumulates chunks and reports the accumulated byte length.
type Writer struct {
	dispose.Guard
	chunks [][]byte
	length int
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write appends a chunk. The chunk is not retained by reference beyond
// Drain; callers may reuse their slice afterwards.
func (w *Writer) Write(chunk []byte) error {
	if err := w.Check(); err != nil {
		return err
	}
	copied := make([]byte, len(chunk))
	copy(copied, chunk)
	w.chunks = append(w.chunks, copied)
	w.length += len(copied)
	return nil
}

// Len reports the number of bytes accumulated so far.
func (w *Writer) Len() (int, error) {
	if err := w.Check(); err != nil {
		return 0, err
	}
	return w.length, nil
}

// Drain returns the concatenation of every written chunk and disposes
// the Writer.
func (w *Writer) Drain() ([]byte, error) {
	if err := w.Check(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, w.length)
	for _, c := range w.chunks {
		out = append(out, c...)
	}
	w.Dispose()
	return out, nil
}

// Reader owns a byte sequence and a read cursor.
type Reader struct {
	dispose.Guard
	data   []byte
	cursor int
}

// NewReader wraps data (copied) in a Reader positioned at offset 0.
func NewReader(data []byte) *Reader {
	copied := make([]byte, len(data))
	copy(copied, data)
	return &Reader{data: copied}
}

// Read returns exactly n bytes from the cursor and advances it; fewer
// than n remaining fails with ERR_END_OF_STREAM. n < 0 fails with
// ERR_INVALID_ARGUMENT. A negative n is never produced by
// callers inside this module; it is only reachable via a direct call
// from outside with a bad value, per spec.md §4.A.
func (r *Reader) Read(n int) ([]byte, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fault.ErrInvalidArgument.WithContext("n", n)
	}
	remaining := len(r.data) - r.cursor
	if n > remaining {
		return nil, fault.ErrEndOfStream.WithContext("requested", n, "remaining", remaining)
	}
	out := make([]byte, n)
	copy(out, r.data[r.cursor:r.cursor+n])
	r.cursor += n
	return out, nil
}

// ReadAll returns every remaining byte and advances the cursor to the end.
func (r *Reader) ReadAll() ([]byte, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}
	return r.Read(len(r.data) - r.cursor)
}

// Remaining reports how many unread bytes are left.
func (r *Reader) Remaining() (int, error) {
	if err := r.Check(); err != nil {
		return 0, err
	}
	return len(r.data) - r.cursor, nil
}
