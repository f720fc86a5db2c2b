// SPDX-License-Identifier: ISC

// Package mutex implements the named-mutex registry spec.md §5 allows as
// the one piece of required process-wide state ("a mapping from name to
// mutex... a boolean debug flag for lock tracing"), grounded on the
// teacher's fault package doc comment ("provides a single instance...")
// generalized from errors to named locks, and on the teacher's habit of
// logging lock acquisition around storage.poolData.
package mutex

import (
	"sync"

	"github.com/bitmark-inc/logger"
)

// Registry is a mapping from name to *sync.Mutex, created explicitly
// rather than relying on package-level state, per spec.md §9's design
// note that global registries should be "gated behind explicit
// initialization and a clear teardown".
type Registry struct {
	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	debug   bool
	log     *logger.L
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{locks: make(map[string]*sync.Mutex)}
}

// SetDebug toggles lock-acquisition tracing.
func (r *Registry) SetDebug(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = on
	if on && r.log == nil {
		r.log = logger.New("mutex")
	}
}

// Lock acquires the named mutex, creating it on first use.
func (r *Registry) Lock(name string) {
	r.mu.Lock()
	m, ok := r.locks[name]
	if !ok {
		m = &sync.Mutex{}
		r.locks[name] = m
	}
	debug := r.debug
	log := r.log
	r.mu.Unlock()

	if debug && log != nil {
		log.Debugf("lock: %s", name)
	}
	m.Lock()
}

// Unlock releases the named mutex. Unlocking a name that was never
// locked panics, matching sync.Mutex's own contract.
func (r *Registry) Unlock(name string) {
	r.mu.Lock()
	m, ok := r.locks[name]
	debug := r.debug
	log := r.log
	r.mu.Unlock()

	if !ok {
		panic("mutex: unlock of unlocked name " + name)
	}
	if debug && log != nil {
		log.Debugf("unlock: %s", name)
	}
	m.Unlock()
}

// Teardown drops every named lock. Any lock still held by a caller when
// Teardown runs becomes an orphaned *sync.Mutex the caller still holds a
// reference to via its own stack frame; Teardown only clears the
// registry's bookkeeping.
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks = make(map[string]*sync.Mutex)
}
