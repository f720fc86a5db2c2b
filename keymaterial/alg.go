// SPDX-License-Identifier: ISC

package keymaterial

import "golang.org/x/crypto/chacha20poly1305"

// Kind classifies what an Alg's underlying buffer holds.
type Kind int

const (
	KindSecret Kind = iota
	KindPublic
	KindPrivate
)

func (k Kind) String() string {
	switch k {
	case KindSecret:
		return "secret"
	case KindPublic:
		return "public"
	case KindPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Alg is the algorithm descriptor of spec.md §4.F: it describes how to
// slice a secret key's underlying buffer into master/IV/authTag/left
// regions. For public/private kinds the buffer is opaque DER material
// and only Name/Kind are meaningful.
type Alg struct {
	Kind          Kind
	Length        int
	IVLength      int
	AuthTagLength int
	Name          string
}

// Named algorithm descriptors, per spec.md §4.F's length table.
var (
	AlgSHA256       = Alg{Kind: KindSecret, Length: 64, Name: "SHA256"}
	AlgSHA384       = Alg{Kind: KindSecret, Length: 64, Name: "SHA384"}
	AlgSHA512       = Alg{Kind: KindSecret, Length: 64, Name: "SHA512"}
	AlgAESCBC128    = Alg{Kind: KindSecret, Length: 16, IVLength: 16, Name: "AES-CBC-128"}
	AlgAESCBC256    = Alg{Kind: KindSecret, Length: 32, IVLength: 16, Name: "AES-CBC-256"}
	AlgAESGCM128    = Alg{Kind: KindSecret, Length: 16, IVLength: 12, AuthTagLength: 16, Name: "AES-GCM-128"}
	AlgAESCCM128    = Alg{Kind: KindSecret, Length: 16, IVLength: 12, AuthTagLength: 16, Name: "AES-CCM-128"}
	AlgAESGCM256    = Alg{Kind: KindSecret, Length: 32, IVLength: 12, AuthTagLength: 16, Name: "AES-GCM-256"}
	AlgAESCCM256    = Alg{Kind: KindSecret, Length: 32, IVLength: 12, AuthTagLength: 16, Name: "AES-CCM-256"}
	// AlgChaCha20's length/IV sizing is pinned to
	// golang.org/x/crypto/chacha20poly1305's own constants rather than
	// restated literals, so a mismatch in that package's sizing would
	// surface here instead of silently drifting.
	AlgChaCha20 = Alg{Kind: KindSecret, Length: chacha20poly1305.KeySize, IVLength: chacha20poly1305.NonceSize, Name: "CHACHA20"}
)

// AlgByName looks up one of the named descriptors above.
func AlgByName(name string) (Alg, bool) {
	switch name {
	case "SHA256":
		return AlgSHA256, true
	case "SHA384":
		return AlgSHA384, true
	case "SHA512":
		return AlgSHA512, true
	case "AES-CBC-128":
		return AlgAESCBC128, true
	case "AES-CBC-256":
		return AlgAESCBC256, true
	case "AES-GCM-128":
		return AlgAESGCM128, true
	case "AES-CCM-128":
		return AlgAESCCM128, true
	case "AES-GCM-256":
		return AlgAESGCM256, true
	case "AES-CCM-256":
		return AlgAESCCM256, true
	case "CHACHA20":
		return AlgChaCha20, true
	default:
		return Alg{}, false
	}
}
