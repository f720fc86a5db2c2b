// SPDX-License-Identifier: ISC

package ids_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hychain/core/ids"
)

func TestUUIDv7HasVersionAndVariantNibbles(t *testing.T) {
	id, err := ids.UUIDv7(1700000000000)
	require.NoError(t, err)

	parts := strings.Split(id, "-")
	require.Len(t, parts, 5)
	assert.Equal(t, byte('7'), parts[2][0])
	assert.Contains(t, "89ab", string(parts[3][0]))
}

func TestUUIDv7NoHyphensRemovesHyphens(t *testing.T) {
	id, err := ids.UUIDv7NoHyphens(1700000000000)
	require.NoError(t, err)
	assert.NotContains(t, id, "-")
	assert.Len(t, id, 32)
}

func TestLongIDHasHexTimestampPrefix(t *testing.T) {
	id, err := ids.LongID(0xABCDEF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "000000abcdef"))
	assert.Equal(t, 12+32, len(id))
}

func TestLongIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := ids.LongID(1700000000000)
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
