// SPDX-License-Identifier: ISC

package mutex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hychain/core/mutex"
)

func TestLockUnlockByName(t *testing.T) {
	r := mutex.New()
	r.Lock("chain")
	r.Unlock("chain")
}

func TestUnlockUnknownNamePanics(t *testing.T) {
	r := mutex.New()
	assert.Panics(t, func() { r.Unlock("never-locked") })
}

func TestTeardownResetsRegistry(t *testing.T) {
	r := mutex.New()
	r.Lock("a")
	r.Unlock("a")
	r.Teardown()
	r.Lock("a")
	r.Unlock("a")
}
