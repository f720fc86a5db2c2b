// SPDX-License-Identifier: ISC

package merkle_test

import (
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hychain/core/fault"
	"github.com/hychain/core/merkle"
)

func sha384(b []byte) []byte {
	h := sha512.New384()
	h.Write(b)
	return h.Sum(nil)
}

func TestComputeRootSingleLeafDuplicates(t *testing.T) {
	leaf := sha384([]byte("a"))
	root, err := merkle.ComputeRoot([][]byte{leaf})
	require.NoError(t, err)

	buf, err := root.Buffer()
	require.NoError(t, err)

	expected := sha384(append(append([]byte(nil), leaf...), leaf...))
	assert.Equal(t, expected, buf)
}

func TestComputeRootIsDeterministic(t *testing.T) {
	leaves := [][]byte{sha384([]byte("a")), sha384([]byte("b")), sha384([]byte("c"))}

	first, err := merkle.ComputeRoot(leaves)
	require.NoError(t, err)
	second, err := merkle.ComputeRoot(leaves)
	require.NoError(t, err)

	a, err := first.Buffer()
	require.NoError(t, err)
	b, err := second.Buffer()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeRootEmptyIsSHA384OfEmptyString(t *testing.T) {
	root, err := merkle.ComputeRoot(nil)
	require.NoError(t, err)
	buf, err := root.Buffer()
	require.NoError(t, err)
	assert.Equal(t, sha384(nil), buf)
}

func TestCreateRootEmptyStringYieldsSHA384Root(t *testing.T) {
	root, err := merkle.CreateRoot("")
	require.NoError(t, err)
	n, err := root.ByteLength()
	require.NoError(t, err)
	assert.Equal(t, 48, n)
}

func TestGenerateAndVerifyProofRoundTrip(t *testing.T) {
	leaves := [][]byte{
		sha384([]byte("a")),
		sha384([]byte("b")),
		sha384([]byte("c")),
		sha384([]byte("d")),
		sha384([]byte("e")),
	}
	target := leaves[2]

	proof, err := merkle.GenerateProof(leaves, target)
	require.NoError(t, err)

	root, err := merkle.ComputeRoot(leaves)
	require.NoError(t, err)
	rootBytes, err := root.Buffer()
	require.NoError(t, err)

	ok, err := merkle.VerifyProof(target, proof, rootBytes)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyProofRejectsTamperedByte(t *testing.T) {
	leaves := [][]byte{sha384([]byte("a")), sha384([]byte("b")), sha384([]byte("c"))}
	target := leaves[0]

	proof, err := merkle.GenerateProof(leaves, target)
	require.NoError(t, err)
	proof[0][0] ^= 0xFF

	root, err := merkle.ComputeRoot(leaves)
	require.NoError(t, err)
	rootBytes, err := root.Buffer()
	require.NoError(t, err)

	ok, err := merkle.VerifyProof(target, proof, rootBytes)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateProofMissingLeafFails(t *testing.T) {
	leaves := [][]byte{sha384([]byte("a")), sha384([]byte("b"))}
	_, err := merkle.GenerateProof(leaves, sha384([]byte("missing")))
	assert.ErrorIs(t, err, fault.ErrMissingObject)
}

func TestGenerateProofSingleLeaf(t *testing.T) {
	leaf := sha384([]byte("solo"))
	proof, err := merkle.GenerateProof([][]byte{leaf}, leaf)
	require.NoError(t, err)

	root, err := merkle.ComputeRoot([][]byte{leaf})
	require.NoError(t, err)
	rootBytes, err := root.Buffer()
	require.NoError(t, err)

	ok, err := merkle.VerifyProof(leaf, proof, rootBytes)
	require.NoError(t, err)
	assert.True(t, ok)
}
