// SPDX-License-Identifier: ISC

package keymaterial

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/asn1"
	"math/big"
)

// secp256k1 is not among the named curves crypto/x509 knows how to
// marshal (it only recognizes the NIST P-curves), so ECDSA keys on this
// curve need their own SEC1/SPKI DER encoders rather than
// x509.MarshalECPrivateKey/MarshalPKIXPublicKey.
var oidSecp256k1 = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
var oidPublicKeyECDSA = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

type ecPrivateKeyASN1 struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

type pkixAlgorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.ObjectIdentifier
}

type pkixPublicKeyASN1 struct {
	Algorithm pkixAlgorithmIdentifier
	PublicKey asn1.BitString
}

// marshalSecp256k1PrivateKey emits a SEC1 (RFC 5915) DER private key
// over the given secp256k1 point.
func marshalSecp256k1PrivateKey(priv *ecdsa.PrivateKey) ([]byte, error) {
	width := (priv.Curve.Params().BitSize + 7) / 8
	privBytes := priv.D.FillBytes(make([]byte, width))
	pubBytes := elliptic.Marshal(priv.Curve, priv.X, priv.Y)
	return asn1.Marshal(ecPrivateKeyASN1{
		Version:       1,
		PrivateKey:    privBytes,
		NamedCurveOID: oidSecp256k1,
		PublicKey:     asn1.BitString{Bytes: pubBytes, BitLength: len(pubBytes) * 8},
	})
}

// marshalSecp256k1PublicKey emits a SubjectPublicKeyInfo DER public key
// over the given secp256k1 point.
func marshalSecp256k1PublicKey(pub *ecdsa.PublicKey) ([]byte, error) {
	pubBytes := elliptic.Marshal(pub.Curve, pub.X, pub.Y)
	return asn1.Marshal(pkixPublicKeyASN1{
		Algorithm: pkixAlgorithmIdentifier{
			Algorithm:  oidPublicKeyECDSA,
			Parameters: oidSecp256k1,
		},
		PublicKey: asn1.BitString{Bytes: pubBytes, BitLength: len(pubBytes) * 8},
	})
}

// parseSecp256k1PrivateKey is the inverse of marshalSecp256k1PrivateKey.
// No code in this module calls it.
func parseSecp256k1PrivateKey(curve elliptic.Curve, der []byte) (*ecdsa.PrivateKey, error) {
	var parsed ecPrivateKeyASN1
	if _, err := asn1.Unmarshal(der, &parsed); err != nil {
		return nil, err
	}
	priv := new(ecdsa.PrivateKey)
	priv.Curve = curve
	priv.D = new(big.Int).SetBytes(parsed.PrivateKey)
	priv.X, priv.Y = curve.ScalarBaseMult(parsed.PrivateKey)
	return priv, nil
}
