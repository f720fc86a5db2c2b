// SPDX-License-Identifier: ISC

package keymaterial

import (
	"github.com/bitmark-inc/go-argon2"

	"github.com/hychain/core/fault"
)

// argon2Context mirrors the teacher's own
// command/bitmark-cli/encrypt/encrypt.go parameters for deriving a
// symmetric key from a passphrase, reused here for the one passphrase
// surface this core has: deriving an armor-wrapping secret when a
// caller only has a human passphrase instead of 32 raw bytes.
var argon2Context = &argon2.Context{
	Iterations:  5,
	Memory:      1 << 16,
	Parallelism: 4,
	HashLen:     32,
	Mode:        argon2.ModeArgon2i,
	Version:     argon2.Version13,
}

// DeriveArmorKey derives a 32-byte armor-wrapping key from a passphrase
// and salt using argon2i, for callers who want to protect key material
// at rest with a passphrase rather than managing raw key bytes
// themselves.
func DeriveArmorKey(passphrase string, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, fault.ErrInvalidArgument.WithContext("reason", "empty salt")
	}
	key, err := argon2.Hash(argon2Context, []byte(passphrase), salt)
	if err != nil {
		return nil, err
	}
	return key, nil
}
