// SPDX-License-Identifier: ISC

package hashing_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/hychain/core/fault"
	"github.com/hychain/core/hashing"
	"github.com/hychain/core/token"
)

func TestHashDataDefaultAlgorithmIsSHA384(t *testing.T) {
	h, err := hashing.HashData([]byte("a"), "", nil)
	require.NoError(t, err)
	n, err := h.ByteLength()
	require.NoError(t, err)
	assert.Equal(t, 48, n)
}

func TestHashDataHMACUsesFirst64BytesOfKey(t *testing.T) {
	longKey := make([]byte, 128)
	for i := range longKey {
		longKey[i] = byte(i)
	}
	truncated := longKey[:64]

	a, err := hashing.HashData([]byte("payload"), hashing.SHA256, longKey)
	require.NoError(t, err)
	b, err := hashing.HashData([]byte("payload"), hashing.SHA256, truncated)
	require.NoError(t, err)

	eq, err := a.Equal(b)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestSignHMACSHA256ProducesExpectedLength(t *testing.T) {
	key := make([]byte, 32)
	sig, err := hashing.Sign("HMAC-SHA256", []byte("Test content"), key, false, token.Never)
	require.NoError(t, err)
	n, err := sig.ByteLength()
	require.NoError(t, err)
	assert.Equal(t, 32, n)
}

func TestSignPreCancelledTokenFailsBeforeSigning(t *testing.T) {
	key := make([]byte, 32)
	_, err := hashing.Sign("HMAC-SHA256", []byte("Test content"), key, false, token.Cancelled)
	assert.ErrorIs(t, err, fault.ErrTokenCancelled)
}

func TestSignEd25519(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig, err := hashing.Sign("Ed25519", []byte("message"), priv, true, token.Never)
	require.NoError(t, err)
	n, err := sig.ByteLength()
	require.NoError(t, err)
	assert.Equal(t, ed25519.SignatureSize, n)
}

func TestSignECDSADEREncoding(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	sig, err := hashing.Sign("ECDSA-SHA512", []byte("block bytes"), der, false, token.Never)
	require.NoError(t, err)
	n, err := sig.ByteLength()
	require.NoError(t, err)
	assert.Greater(t, n, 0)
}

func TestSignUnknownAlgorithmFails(t *testing.T) {
	_, err := hashing.Sign("ROT13", []byte("x"), nil, false, token.Never)
	assert.ErrorIs(t, err, fault.ErrInvalidType)
}
