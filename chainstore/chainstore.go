// SPDX-License-Identifier: ISC

// Package chainstore implements spec.md §4.G's storage interface and
// in-memory reference backend: a dual-indexed (by id, by sequence)
// block store with a disposal lifecycle and a patrickmn/go-cache
// lookaside cache in front of the id lookup. Grounded on
// _examples/bitmark-inc-bitmarkd/storage/handle.go's RWMutex-guarded
// access pattern and _examples/bitmark-inc-bitmarkd/storage/cache.go's
// go-cache lookaside idiom, generalized from a leveldb-backed,
// byte-keyed pool to an in-memory, generically-typed dual index —
// persistent-disk backends are out of scope (spec.md §1).
//
// Storage is deliberately unaware of the block record shape: it stores
// any Record, a small contract a caller's block type implements, so
// this package has no dependency on the block package.
package chainstore

import (
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	gocache "github.com/patrickmn/go-cache"

	"github.com/hychain/core/dispose"
)

var log = logger.New("chainstore")

// Record is the minimal contract a value must satisfy to be stored: an
// opaque id, a monotonic sequence, and a self-check the storage layer
// delegates to rather than inspecting block-specific fields itself.
type Record interface {
	RecordID() string
	RecordSequence() uint32
	Validate() error
}

// Storage is spec.md §4.G's interface. After disposal every put and
// get operation fails with fault.ErrResourceDisposed; Dispose itself is
// idempotent and returns nil again.
type Storage[T Record] interface {
	PutBlock(b T) (bool, error)
	GetBlock(id string) (T, bool, error)
	HasBlock(id string) (bool, error)
	GetBlockBySequence(seq uint32) (T, bool, error)
	GetLatestBlock() (T, bool, error)
	GetAllBlocks() ([]T, error)
	Dispose() error
	OnDispose(cb func())
}

const (
	cacheExpiration = 2 * time.Minute
	cacheCleanup    = 1 * time.Minute
)

// Memory is the reference in-memory Storage backend. byId and
// bySequence must remain in lock-step; putBlock is the only writer and
// keeps both updated atomically under mu.
type Memory[T Record] struct {
	dispose.Guard
	mu           sync.RWMutex
	byId         map[string]T
	bySequence   map[uint32]T
	lookaside    *gocache.Cache
	onDisposeCbs []func()
}

// NewMemory constructs an empty in-memory Storage.
func NewMemory[T Record]() *Memory[T] {
	log.Debug("opened in-memory chainstore")
	return &Memory[T]{
		byId:       make(map[string]T),
		bySequence: make(map[uint32]T),
		lookaside:  gocache.New(cacheExpiration, cacheCleanup),
	}
}

// PutBlock returns true if newly inserted, false if the id or the
// sequence already exists or validation fails — per spec.md §7, the
// false return is not an error, it is an explicit rejection signal.
func (m *Memory[T]) PutBlock(b T) (bool, error) {
	if err := m.Check(); err != nil {
		return false, err
	}
	if err := b.Validate(); err != nil {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := b.RecordID()
	if _, exists := m.byId[id]; exists {
		return false, nil
	}
	if _, exists := m.bySequence[b.RecordSequence()]; exists {
		return false, nil
	}

	m.byId[id] = b
	m.bySequence[b.RecordSequence()] = b
	m.lookaside.Set(id, b, cacheExpiration)
	return true, nil
}

// GetBlock looks up by id, consulting the lookaside cache first.
func (m *Memory[T]) GetBlock(id string) (T, bool, error) {
	var zero T
	if err := m.Check(); err != nil {
		return zero, false, err
	}

	if cached, found := m.lookaside.Get(id); found {
		return cached.(T), true, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.byId[id]
	if ok {
		m.lookaside.Set(id, b, cacheExpiration)
	}
	return b, ok, nil
}

// HasBlock reports whether id is present.
func (m *Memory[T]) HasBlock(id string) (bool, error) {
	if err := m.Check(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byId[id]
	return ok, nil
}

// GetBlockBySequence looks up by sequence number.
func (m *Memory[T]) GetBlockBySequence(seq uint32) (T, bool, error) {
	var zero T
	if err := m.Check(); err != nil {
		return zero, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bySequence[seq]
	return b, ok, nil
}

// GetLatestBlock returns the entry with the maximum sequence key.
func (m *Memory[T]) GetLatestBlock() (T, bool, error) {
	var zero T
	if err := m.Check(); err != nil {
		return zero, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.bySequence) == 0 {
		return zero, false, nil
	}
	var maxSeq uint32
	first := true
	for seq := range m.bySequence {
		if first || seq > maxSeq {
			maxSeq = seq
			first = false
		}
	}
	return m.bySequence[maxSeq], true, nil
}

// GetAllBlocks returns every stored block ordered by ascending
// sequence.
func (m *Memory[T]) GetAllBlocks() ([]T, error) {
	if err := m.Check(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	sequences := make([]uint32, 0, len(m.bySequence))
	for seq := range m.bySequence {
		sequences = append(sequences, seq)
	}
	sort.Slice(sequences, func(i, j int) bool { return sequences[i] < sequences[j] })

	out := make([]T, 0, len(sequences))
	for _, seq := range sequences {
		out = append(out, m.bySequence[seq])
	}
	return out, nil
}

// OnDispose registers a callback run best-effort on Dispose; panics
// from callbacks are swallowed.
func (m *Memory[T]) OnDispose(cb func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDisposeCbs = append(m.onDisposeCbs, cb)
}

// Dispose is idempotent; registered callbacks run best-effort.
func (m *Memory[T]) Dispose() error {
	if m.Disposed() {
		return nil
	}
	m.Guard.Dispose()
	log.Debug("disposed in-memory chainstore")

	m.mu.RLock()
	cbs := append([]func(){}, m.onDisposeCbs...)
	m.mu.RUnlock()

	for _, cb := range cbs {
		runCallback(cb)
	}
	return nil
}

func runCallback(cb func()) {
	defer func() { recover() }()
	cb()
}
