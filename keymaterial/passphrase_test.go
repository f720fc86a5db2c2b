// SPDX-License-Identifier: ISC

package keymaterial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hychain/core/keymaterial"
)

func TestDeriveArmorKeyIsDeterministic(t *testing.T) {
	salt := []byte("fixed-salt-for-test-purposes-32")

	a, err := keymaterial.DeriveArmorKey("correct horse battery staple", salt)
	require.NoError(t, err)
	b, err := keymaterial.DeriveArmorKey("correct horse battery staple", salt)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestDeriveArmorKeyDiffersByPassphrase(t *testing.T) {
	salt := []byte("fixed-salt-for-test-purposes-32")

	a, err := keymaterial.DeriveArmorKey("passphrase-one", salt)
	require.NoError(t, err)
	b, err := keymaterial.DeriveArmorKey("passphrase-two", salt)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDeriveArmorKeyRejectsEmptySalt(t *testing.T) {
	_, err := keymaterial.DeriveArmorKey("x", nil)
	assert.Error(t, err)
}
