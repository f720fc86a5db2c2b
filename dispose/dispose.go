// SPDX-License-Identifier: ISC

// Package dispose gives every scoped resource in this module (buffers,
// hash entities, key objects, storage handles) an idempotent Dispose and
// a Check that turns post-dispose access into fault.ErrResourceDisposed,
// generalizing the teacher's guard-before-use idiom
// (storage/handle.go's poolData sync.RWMutex) from shared package state
// to a single resource's lifecycle.
package dispose

import (
	"sync/atomic"

	"github.com/hychain/core/fault"
)

// Guard is embedded by value in resource types.
type Guard struct {
	disposed atomic.Bool
}

// Dispose marks the resource disposed. Safe to call more than once.
func (g *Guard) Dispose() {
	g.disposed.Store(true)
}

// Disposed reports whether Dispose has been called.
func (g *Guard) Disposed() bool {
	return g.disposed.Load()
}

// Check returns fault.ErrResourceDisposed once Dispose has been called,
// otherwise nil.
func (g *Guard) Check() error {
	if g.disposed.Load() {
		return fault.ErrResourceDisposed
	}
	return nil
}
