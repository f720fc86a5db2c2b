// SPDX-License-Identifier: ISC

package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hychain/core/codec"
)

func TestWriteInt32VQLKnownValues(t *testing.T) {
	assert.Equal(t, []byte{0x00}, codec.WriteInt32VQL(0))
	assert.Equal(t, []byte{0x7F}, codec.WriteInt32VQL(127))
	assert.Equal(t, []byte{0x80, 0x01}, codec.WriteInt32VQL(128))
	assert.Equal(t, []byte{0x80, 0x80, 0x01}, codec.WriteInt32VQL(16384))
}

func TestReadInt32VQLKnownValues(t *testing.T) {
	cases := []struct {
		encoded  []byte
		value    uint32
		consumed int
	}{
		{[]byte{0x00}, 0, 1},
		{[]byte{0x7F}, 127, 1},
		{[]byte{0x80, 0x01}, 128, 2},
		{[]byte{0x80, 0x80, 0x01}, 16384, 3},
	}
	for _, c := range cases {
		value, n, err := codec.ReadInt32VQL(c.encoded)
		require.NoError(t, err)
		assert.Equal(t, c.value, value)
		assert.Equal(t, c.consumed, n)
	}
}

func TestReadInt32VQLTruncatedFails(t *testing.T) {
	_, _, err := codec.ReadInt32VQL([]byte{0x80, 0x80})
	assert.Error(t, err)
}

func TestVQLRoundTripProperty(t *testing.T) {
	values := []uint32{0, 1, 63, 64, 127, 128, 255, 16383, 16384, 1 << 20, 1<<32 - 1}
	for _, v := range values {
		encoded := codec.WriteInt32VQL(v)
		decoded, n, err := codec.ReadInt32VQL(encoded)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Equal(t, len(encoded), n)
	}
}

func TestReadInt32VQLLeavesTrailingBytesUnconsumed(t *testing.T) {
	data := append(codec.WriteInt32VQL(128), 0xFF, 0xFE)
	value, n, err := codec.ReadInt32VQL(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(128), value)
	assert.Equal(t, 2, n)
}
