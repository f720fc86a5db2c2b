// SPDX-License-Identifier: ISC

// Package hashentity implements spec.md §3's HashEntity: an immutable
// byte sequence representing a digest or signature, with hex/base64
// rendering and a cursor-based partial reader. Grounded on
// _examples/bitmark-inc-bitmarkd/blockdigest (removed; was a fixed-size
// [32]byte wrapper with hex/hash-string accessors) generalized here to
// an arbitrary-length, disposable byte owner since this core's digests
// and signatures vary in length by algorithm.
package hashentity

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"

	"github.com/hychain/core/dispose"
	"github.com/hychain/core/fault"
)

// HashEntity owns an immutable byte sequence. Its bytes are never
// mutated after construction; copies are taken on construction and on
// every read so callers cannot alias the internal buffer.
type HashEntity struct {
	dispose.Guard
	data   []byte
	cursor int
}

// New constructs a HashEntity over a defensive copy of data.
func New(data []byte) *HashEntity {
	return &HashEntity{data: append([]byte(nil), data...)}
}

// ByteLength returns the number of bytes owned by the entity.
func (h *HashEntity) ByteLength() (int, error) {
	if err := h.Check(); err != nil {
		return 0, err
	}
	return len(h.data), nil
}

// Buffer returns a defensive copy of the raw bytes.
func (h *HashEntity) Buffer() ([]byte, error) {
	if err := h.Check(); err != nil {
		return nil, err
	}
	return append([]byte(nil), h.data...), nil
}

// Hex returns the lowercase hex digest.
func (h *HashEntity) Hex() (string, error) {
	if err := h.Check(); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.data), nil
}

// Base64 returns the standard base64 digest.
func (h *HashEntity) Base64() (string, error) {
	if err := h.Check(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(h.data), nil
}

// Read returns the next n bytes from the cursor and advances it;
// negative n fails with ErrInvalidArgument, reading past the end fails
// with ErrEndOfStream.
func (h *HashEntity) Read(n int) ([]byte, error) {
	if err := h.Check(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fault.ErrInvalidArgument
	}
	if h.cursor+n > len(h.data) {
		return nil, fault.ErrEndOfStream
	}
	out := append([]byte(nil), h.data[h.cursor:h.cursor+n]...)
	h.cursor += n
	return out, nil
}

// Equal reports byte-exact equality, per spec.md §3.
func (h *HashEntity) Equal(other *HashEntity) (bool, error) {
	if err := h.Check(); err != nil {
		return false, err
	}
	if err := other.Check(); err != nil {
		return false, err
	}
	return bytes.Equal(h.data, other.data), nil
}
