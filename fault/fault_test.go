// SPDX-License-Identifier: ISC

package fault_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hychain/core/fault"
)

func TestWireRepresentationIsNegativeAbsolute(t *testing.T) {
	assert.Equal(t, int32(-1087), fault.CodeUnknown.Wire())
	assert.Equal(t, int32(-10392), fault.CodeEndOfStream.Wire())
}

func TestErrorsIsMatchesByCodeNotIdentity(t *testing.T) {
	wrapped := fault.ErrTokenCancelled.WithContext("step", "sign")
	require.True(t, errors.Is(wrapped, fault.ErrTokenCancelled))
	require.False(t, errors.Is(wrapped, fault.ErrResourceDisposed))
}

func TestErrorMessageFormat(t *testing.T) {
	err := fault.New(fault.CodeInvalidArgument, "ERR_INVALID_ARGUMENT", "n must be non-negative")
	assert.Equal(t, "ERR_INVALID_ARGUMENT: n must be non-negative", err.Error())
}

func TestWithContextDoesNotMutateSentinel(t *testing.T) {
	fault.ErrMissingObject.WithContext("leaf", "abc")
	assert.Nil(t, fault.ErrMissingObject.Context)
}

func TestWithContextDropsTrailingOddArgument(t *testing.T) {
	err := fault.ErrMissingObject.WithContext("leaf", "abc", "dangling")
	assert.Equal(t, map[string]interface{}{"leaf": "abc"}, err.Context)
}

func TestWithContextSkipsNonStringKeys(t *testing.T) {
	err := fault.ErrMissingObject.WithContext(42, "ignored", "leaf", "abc")
	assert.Equal(t, map[string]interface{}{"leaf": "abc"}, err.Context)
}

func TestNewBuildsContextFromKVPairs(t *testing.T) {
	err := fault.New(fault.CodeInvalidArgument, "ERR_INVALID_ARGUMENT", "bad", "field", "sequence", "value", 7)
	assert.Equal(t, map[string]interface{}{"field": "sequence", "value": 7}, err.Context)
}
