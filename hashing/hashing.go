// SPDX-License-Identifier: ISC

// Package hashing implements spec.md §4.C: one-shot digests, HMAC, and
// the asymmetric signing dispatcher. Grounded on
// _examples/bitmark-inc-bitmarkd/keypair.go's ed25519/AES key handling
// and golang.org/x/crypto usage, generalized from a fixed
// ed25519-only keypair tool into a multi-algorithm signer dispatcher.
package hashing

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/asn1"
	"hash"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/ed25519"

	"github.com/hychain/core/fault"
	"github.com/hychain/core/hashentity"
	"github.com/hychain/core/token"
)

// Algorithm names hashData accepts.
const (
	SHA256 = "SHA256"
	SHA384 = "SHA384"
	SHA512 = "SHA512"
)

func newHash(algorithm string) (func() hash.Hash, error) {
	switch algorithm {
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fault.ErrInvalidType.WithContext("algorithm", algorithm)
	}
}

// HashData returns the digest of data under algorithm. With no key: a
// plain digest. With a key: HMAC using the first 64 bytes of the key.
// The zero value for algorithm selects SHA-384, per spec.md §4.C.
func HashData(data []byte, algorithm string, key []byte) (*hashentity.HashEntity, error) {
	if algorithm == "" {
		algorithm = SHA384
	}
	newH, err := newHash(algorithm)
	if err != nil {
		return nil, err
	}

	if key == nil {
		h := newH()
		h.Write(data)
		return hashentity.New(h.Sum(nil)), nil
	}

	hmacKey := key
	if len(hmacKey) > 64 {
		hmacKey = hmacKey[:64]
	}
	mac := hmac.New(newH, hmacKey)
	mac.Write(data)
	return hashentity.New(mac.Sum(nil)), nil
}

// cryptoHashFor maps a SHA variant name to crypto.Hash, for use with
// asymmetric signers that take a pre-hashed digest.
func cryptoHashFor(shaVariant string) (crypto.Hash, func() hash.Hash, error) {
	switch shaVariant {
	case SHA256:
		return crypto.SHA256, sha256.New, nil
	case SHA384:
		return crypto.SHA384, sha512.New384, nil
	case SHA512:
		return crypto.SHA512, sha512.New, nil
	default:
		return 0, nil, fault.ErrInvalidType.WithContext("algorithm", shaVariant)
	}
}

// Sign drains source (already a contiguous buffer by the time it
// reaches this package; polymorphic-source draining happens in the
// caller, per spec.md §9) and dispatches to the algorithm's signer.
// optimizeForEd25519 has no effect on Ed25519 signatures, which are
// natively R‖S; it is honored for ECDSA, where it selects IEEE P1363
// (r‖s, fixed width) over ASN.1 DER.
func Sign(algorithm string, source []byte, key []byte, optimizeForEd25519 bool, t token.Source) (*hashentity.HashEntity, error) {
	if token.Check(t) {
		return nil, fault.ErrTokenCancelled
	}

	sig, err := dispatchSign(algorithm, source, key, optimizeForEd25519)
	if err != nil {
		return nil, err
	}

	if token.Check(t) {
		return nil, fault.ErrTokenCancelled
	}
	return hashentity.New(sig), nil
}

func dispatchSign(algorithm string, source, key []byte, p1363 bool) ([]byte, error) {
	switch {
	case algorithm == "Ed25519":
		return signEd25519(source, key)
	case hasPrefix(algorithm, "HMAC-SHA"):
		return signHMAC(algorithm[len("HMAC-"):], source, key)
	case hasPrefix(algorithm, "ECDSA-SHA"):
		return signECDSA(algorithm[len("ECDSA-"):], source, key, p1363)
	case hasPrefix(algorithm, "RSA-SHA"):
		return signRSA(algorithm[len("RSA-"):], source, key)
	default:
		return nil, fault.ErrInvalidType.WithContext("algorithm", algorithm)
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func signHMAC(shaVariant string, source, key []byte) ([]byte, error) {
	_, newH, err := cryptoHashFor(shaVariant)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(newH, key)
	mac.Write(source)
	return mac.Sum(nil), nil
}

func signEd25519(source, key []byte) ([]byte, error) {
	priv, err := parseEd25519PrivateKey(key)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(priv, source), nil
}

func parseEd25519PrivateKey(key []byte) (ed25519.PrivateKey, error) {
	if len(key) == ed25519.PrivateKeySize {
		return ed25519.PrivateKey(key), nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(key)
	if err != nil {
		return nil, fault.ErrInvalidType.WithContext("reason", "unrecognized ed25519 key encoding")
	}
	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, fault.ErrInvalidType.WithContext("reason", "PKCS8 key is not Ed25519")
	}
	return priv, nil
}

func signECDSA(shaVariant string, source, key []byte, p1363 bool) ([]byte, error) {
	cryptoHash, newH, err := cryptoHashFor(shaVariant)
	if err != nil {
		return nil, err
	}
	priv, err := parseECDSAPrivateKey(key)
	if err != nil {
		return nil, err
	}

	h := newH()
	h.Write(source)
	digest := h.Sum(nil)

	r, s, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, err
	}
	_ = cryptoHash

	if p1363 {
		return encodeP1363(r, s, priv.Curve.Params().BitSize), nil
	}
	return encodeECDSADER(r, s)
}

func parseECDSAPrivateKey(key []byte) (*ecdsa.PrivateKey, error) {
	if priv, err := x509.ParsePKCS8PrivateKey(key); err == nil {
		if ecPriv, ok := priv.(*ecdsa.PrivateKey); ok {
			return ecPriv, nil
		}
	}
	if ecPriv, err := x509.ParseECPrivateKey(key); err == nil {
		return ecPriv, nil
	}
	// crypto/x509 rejects secp256k1, so SEC1 keys on that curve are parsed here.
	var sec1 struct {
		Version       int
		PrivateKey    []byte
		NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
		PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
	}
	if _, err := asn1.Unmarshal(key, &sec1); err == nil && sec1.NamedCurveOID.Equal(asn1.ObjectIdentifier{1, 3, 132, 0, 10}) {
		curve := btcec.S256()
		ecPriv := &ecdsa.PrivateKey{D: new(big.Int).SetBytes(sec1.PrivateKey)}
		ecPriv.Curve = curve
		ecPriv.X, ecPriv.Y = curve.ScalarBaseMult(sec1.PrivateKey)
		return ecPriv, nil
	}
	return nil, fault.ErrInvalidType.WithContext("reason", "unrecognized ECDSA key encoding")
}

func signRSA(shaVariant string, source, key []byte) ([]byte, error) {
	cryptoHash, newH, err := cryptoHashFor(shaVariant)
	if err != nil {
		return nil, err
	}
	priv, err := parseRSAPrivateKey(key)
	if err != nil {
		return nil, err
	}

	h := newH()
	h.Write(source)
	digest := h.Sum(nil)

	return rsa.SignPKCS1v15(rand.Reader, priv, cryptoHash, digest)
}

func parseRSAPrivateKey(key []byte) (*rsa.PrivateKey, error) {
	if priv, err := x509.ParsePKCS1PrivateKey(key); err == nil {
		return priv, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(key)
	if err != nil {
		return nil, fault.ErrInvalidType.WithContext("reason", "unrecognized RSA key encoding")
	}
	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fault.ErrInvalidType.WithContext("reason", "PKCS8 key is not RSA")
	}
	return priv, nil
}

type ecdsaSignature struct {
	R, S *big.Int
}

func encodeECDSADER(r, s *big.Int) ([]byte, error) {
	return asn1.Marshal(ecdsaSignature{R: r, S: s})
}

// encodeP1363 emits a fixed-width r‖s encoding, each half padded to the
// curve's coordinate width.
func encodeP1363(r, s *big.Int, bitSize int) []byte {
	width := (bitSize + 7) / 8
	out := make([]byte, 2*width)
	r.FillBytes(out[:width])
	s.FillBytes(out[width:])
	return out
}
