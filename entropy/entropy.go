// SPDX-License-Identifier: ISC

// Package entropy defines the ambient random-bytes provider contract
// spec.md §1 names as external ("produce N uniformly random bytes,
// cancellable") and supplies the default crypto/rand-backed
// implementation every factory in keymaterial uses unless a caller
// substitutes their own Source (e.g. a deterministic one in tests).
package entropy

import (
	"crypto/rand"
	"io"

	"github.com/hychain/core/fault"
	"github.com/hychain/core/token"
)

// Source produces uniformly random bytes, checking the token before and
// after acquisition per spec.md §5's "Cancellation is checked before and
// after every random-bytes acquisition."
type Source interface {
	GenerateRandomBytes(n int, t token.Source) ([]byte, error)
}

// CryptoRand is the default Source, grounded on the teacher's own
// account/seed.go idiom of reading from crypto/rand. A short read is
// returned to the caller as an error.
type CryptoRand struct{}

// New returns the default crypto/rand-backed Source.
func New() Source { return CryptoRand{} }

func (CryptoRand) GenerateRandomBytes(n int, t token.Source) ([]byte, error) {
	if n < 0 {
		return nil, fault.ErrInvalidArgument.WithContext("n", n)
	}
	if token.Check(t) {
		return nil, fault.ErrTokenCancelled
	}
	buffer := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
		return nil, err
	}
	if token.Check(t) {
		return nil, fault.ErrTokenCancelled
	}
	return buffer, nil
}
