// SPDX-License-Identifier: ISC

package keymaterial

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/ed25519"

	"github.com/hychain/core/entropy"
	"github.com/hychain/core/fault"
	"github.com/hychain/core/token"
)

// GenerateSymmetricKey computes finalLength = length + ivLength +
// authTagLength + 8 (8 trailing bytes reserved for a caller-defined
// tail), requests that many random bytes from src (with token
// propagation), generates an additional 40 random bytes as the per-key
// armor secret, and constructs the object. Cancellation is checked
// before and after every random-bytes acquisition.
func GenerateSymmetricKey(algorithm Alg, src entropy.Source, t token.Source) (*KeyObject, error) {
	if token.Check(t) {
		return nil, fault.ErrTokenCancelled
	}
	finalLength := algorithm.Length + algorithm.IVLength + algorithm.AuthTagLength + 8

	keyBytes, err := src.GenerateRandomBytes(finalLength, t)
	if err != nil {
		return nil, err
	}
	if token.Check(t) {
		return nil, fault.ErrTokenCancelled
	}

	armorSecret, err := src.GenerateRandomBytes(40, t)
	if err != nil {
		return nil, err
	}
	if token.Check(t) {
		return nil, fault.ErrTokenCancelled
	}

	return &KeyObject{
		raw:       keyBytes,
		format:    FormatRaw,
		algorithm: algorithm,
		armorKey:  armorSecret,
	}, nil
}

// AsymmetricAlgorithm names the key-pair algorithms GenerateAsymmetricKeyPair
// supports.
type AsymmetricAlgorithm string

const (
	RSA     AsymmetricAlgorithm = "RSA"
	ECDSA   AsymmetricAlgorithm = "ECDSA"
	Ed25519 AsymmetricAlgorithm = "Ed25519"
)

// AsymmetricOpts configures key-pair generation; a zero value selects
// the documented defaults.
type AsymmetricOpts struct {
	// RSAModulusBits must be 2048 or 4096; zero defaults to 2048.
	RSAModulusBits int
}

// GenerateAsymmetricKeyPair returns (public, private) KeyObjects. RSA's
// modulus is coerced to 2048 or 4096 (default 2048). ECDSA uses curve
// secp256k1. Public key bytes are DER SPKI (RSA: PKCS#1); private key
// bytes are DER PKCS#8 (RSA: PKCS#1; EC: SEC1).
func GenerateAsymmetricKeyPair(algorithm AsymmetricAlgorithm, opts AsymmetricOpts) (public, private *KeyObject, err error) {
	switch algorithm {
	case RSA:
		return generateRSAKeyPair(opts)
	case ECDSA:
		return generateECDSAKeyPair()
	case Ed25519:
		return generateEd25519KeyPair()
	default:
		return nil, nil, fault.ErrInvalidType.WithContext("algorithm", string(algorithm))
	}
}

func generateRSAKeyPair(opts AsymmetricOpts) (*KeyObject, *KeyObject, error) {
	bits := opts.RSAModulusBits
	if bits != 4096 {
		bits = 2048
	}
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, err
	}

	publicDER := x509.MarshalPKCS1PublicKey(&priv.PublicKey)
	privateDER := x509.MarshalPKCS1PrivateKey(priv)

	meta := &AsymmetricMeta{PublicExponent: big.NewInt(int64(priv.PublicKey.E))}

	public := &KeyObject{raw: publicDER, format: FormatRaw, algorithm: Alg{Kind: KindPublic, Name: "RSA"}, asymmetricMeta: meta}
	private := &KeyObject{raw: privateDER, format: FormatRaw, algorithm: Alg{Kind: KindPrivate, Name: "RSA"}, asymmetricMeta: meta}
	return public, private, nil
}

func generateECDSAKeyPair() (*KeyObject, *KeyObject, error) {
	curve := btcec.S256()
	priv, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	publicDER, err := marshalSecp256k1PublicKey(&priv.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	privateDER, err := marshalSecp256k1PrivateKey(priv)
	if err != nil {
		return nil, nil, err
	}

	meta := &AsymmetricMeta{Curve: "secp256k1"}

	public := &KeyObject{raw: publicDER, format: FormatRaw, algorithm: Alg{Kind: KindPublic, Name: "ECDSA"}, asymmetricMeta: meta}
	private := &KeyObject{raw: privateDER, format: FormatRaw, algorithm: Alg{Kind: KindPrivate, Name: "ECDSA"}, asymmetricMeta: meta}
	return public, private, nil
}

func generateEd25519KeyPair() (*KeyObject, *KeyObject, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	publicDER, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, nil, err
	}
	privateDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, nil, err
	}

	public := &KeyObject{raw: publicDER, format: FormatRaw, algorithm: Alg{Kind: KindPublic, Name: "Ed25519"}}
	private := &KeyObject{raw: privateDER, format: FormatRaw, algorithm: Alg{Kind: KindPrivate, Name: "Ed25519"}}
	return public, private, nil
}
