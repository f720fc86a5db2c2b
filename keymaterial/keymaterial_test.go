// SPDX-License-Identifier: ISC

package keymaterial_test

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hychain/core/entropy"
	"github.com/hychain/core/fault"
	"github.com/hychain/core/keymaterial"
	"github.com/hychain/core/token"
)

func TestKeyRegionLayoutRoundTrip(t *testing.T) {
	alg := keymaterial.AlgAESGCM128 // length 16, iv 12, authTag 16
	raw := make([]byte, alg.Length+alg.IVLength+alg.AuthTagLength+4)
	for i := range raw {
		raw[i] = byte(i)
	}

	k := keymaterial.FromEncoded(raw, keymaterial.FormatRaw, alg, keymaterial.KeyDetails{}, nil)

	master, err := k.Master()
	require.NoError(t, err)
	iv, err := k.IV()
	require.NoError(t, err)
	authTag, err := k.AuthTag()
	require.NoError(t, err)
	left, err := k.LeftBuffer()
	require.NoError(t, err)

	reassembled := append(append(append(append([]byte{}, master...), iv...), authTag...), left...)
	assert.Equal(t, raw, reassembled)
}

func TestIVAndAuthTagNilWhenBufferShort(t *testing.T) {
	alg := keymaterial.AlgAESGCM128
	raw := make([]byte, 10) // shorter than length alone
	k := keymaterial.FromEncoded(raw, keymaterial.FormatRaw, alg, keymaterial.KeyDetails{}, nil)

	iv, err := k.IV()
	require.NoError(t, err)
	assert.Nil(t, iv)

	authTag, err := k.AuthTag()
	require.NoError(t, err)
	assert.Nil(t, authTag)
}

func TestBase64FormatTransitionsToRaw(t *testing.T) {
	raw := []byte("some key bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)
	k := keymaterial.FromEncoded([]byte(encoded), keymaterial.FormatBase64, keymaterial.AlgSHA256, keymaterial.KeyDetails{}, nil)

	out, err := k.Read(-1)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestHexFormatTransitionsToRaw(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef}
	encoded := hex.EncodeToString(raw)
	k := keymaterial.FromEncoded([]byte(encoded), keymaterial.FormatHex, keymaterial.AlgSHA256, keymaterial.KeyDetails{}, nil)

	out, err := k.Read(-1)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestPEMFormatFailsNotImplemented(t *testing.T) {
	k := keymaterial.FromEncoded([]byte("whatever"), keymaterial.FormatPEM, keymaterial.AlgSHA256, keymaterial.KeyDetails{}, nil)
	_, err := k.Read(-1)
	assert.ErrorIs(t, err, fault.ErrNotImplemented)
}

func TestCollectAuthTagFailsForNonSecretKind(t *testing.T) {
	k := keymaterial.FromEncoded([]byte("opaque"), keymaterial.FormatRaw, keymaterial.Alg{Kind: keymaterial.KindPublic}, keymaterial.KeyDetails{}, nil)
	err := k.CollectAuthTag([]byte("tag"))
	assert.ErrorIs(t, err, fault.ErrUnsupportedOperation)
}

func TestSetDetailsMergesPartial(t *testing.T) {
	k := keymaterial.FromEncoded([]byte("x"), keymaterial.FormatRaw, keymaterial.AlgSHA256, keymaterial.KeyDetails{Label: "a", UserID: "u1"}, nil)
	newLabel := "b"
	require.NoError(t, k.SetDetails(keymaterial.KeyDetailsPatch{Label: &newLabel}))

	details, err := k.GetDetails()
	require.NoError(t, err)
	assert.Equal(t, "b", details.Label)
	assert.Equal(t, "u1", details.UserID)
}

func TestGenerateSymmetricKeyLength(t *testing.T) {
	k, err := keymaterial.GenerateSymmetricKey(keymaterial.AlgAESGCM128, entropy.New(), token.Never)
	require.NoError(t, err)

	master, err := k.Master()
	require.NoError(t, err)
	iv, err := k.IV()
	require.NoError(t, err)
	authTag, err := k.AuthTag()
	require.NoError(t, err)
	left, err := k.LeftBuffer()
	require.NoError(t, err)

	assert.Len(t, master, 16)
	assert.Len(t, iv, 12)
	assert.Len(t, authTag, 16)
	assert.Len(t, left, 8)
}

func TestGenerateSymmetricKeyPreCancelledFails(t *testing.T) {
	_, err := keymaterial.GenerateSymmetricKey(keymaterial.AlgAESCBC128, entropy.New(), token.Cancelled)
	assert.ErrorIs(t, err, fault.ErrTokenCancelled)
}

func TestGenerateAsymmetricKeyPairRSA(t *testing.T) {
	public, private, err := keymaterial.GenerateAsymmetricKeyPair(keymaterial.RSA, keymaterial.AsymmetricOpts{})
	require.NoError(t, err)

	pub, err := public.Read(-1)
	require.NoError(t, err)
	assert.NotEmpty(t, pub)

	priv, err := private.Read(-1)
	require.NoError(t, err)
	assert.NotEmpty(t, priv)

	info, err := public.GetInfo()
	require.NoError(t, err)
	assert.Contains(t, info["publicExponent"], "bigint:")
}

func TestGenerateAsymmetricKeyPairECDSA(t *testing.T) {
	public, private, err := keymaterial.GenerateAsymmetricKeyPair(keymaterial.ECDSA, keymaterial.AsymmetricOpts{})
	require.NoError(t, err)

	pub, err := public.Read(-1)
	require.NoError(t, err)
	assert.NotEmpty(t, pub)

	priv, err := private.Read(-1)
	require.NoError(t, err)
	assert.NotEmpty(t, priv)

	info, err := public.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "secp256k1", info["curve"])
}

func TestGenerateAsymmetricKeyPairEd25519(t *testing.T) {
	public, private, err := keymaterial.GenerateAsymmetricKeyPair(keymaterial.Ed25519, keymaterial.AsymmetricOpts{})
	require.NoError(t, err)

	pub, err := public.Read(-1)
	require.NoError(t, err)
	assert.NotEmpty(t, pub)

	priv, err := private.Read(-1)
	require.NoError(t, err)
	assert.NotEmpty(t, priv)
}

func TestArmorWrapsWithArmorKeyWhenPresent(t *testing.T) {
	k, err := keymaterial.GenerateSymmetricKey(keymaterial.AlgAESCBC128, entropy.New(), token.Never)
	require.NoError(t, err)

	armored, err := k.Armor("")
	require.NoError(t, err)
	assert.NotEmpty(t, armored)
}

func TestPostDisposeAccessFails(t *testing.T) {
	k := keymaterial.FromEncoded([]byte("x"), keymaterial.FormatRaw, keymaterial.AlgSHA256, keymaterial.KeyDetails{}, nil)
	k.Dispose()
	_, err := k.Master()
	assert.ErrorIs(t, err, fault.ErrResourceDisposed)
}
