// SPDX-License-Identifier: ISC

// Package token defines the cancellation-token contract spec.md §5 says
// this core consumes but does not own: "an observable boolean +
// notification". No teacher file builds this abstraction — the teacher is
// synchronous throughout — so this is grounded directly on spec.md's own
// wording, using context.Context as the idiomatic Go realization since
// the ecosystem's cancellation libraries are themselves context-shaped.
package token

import "context"

// Source is the cancellation-token contract. hashing.Sign,
// entropy.Source.GenerateRandomBytes, keymaterial.GenerateSymmetricKey
// and the block pipeline accept a Source and check it before and after
// their work. Storage.PutBlock and the merkle functions take no Source;
// the block pipeline checks its token before computing the Merkle root
// and again before storing the block.
type Source interface {
	// IsCancellationRequested reports the current cancellation state
	// without blocking.
	IsCancellationRequested() bool
	// Done is closed once cancellation has been requested, mirroring
	// context.Context.Done for callers that want to select on it.
	Done() <-chan struct{}
}

// FromContext adapts a context.Context to a Source.
func FromContext(ctx context.Context) Source {
	return ctxSource{ctx}
}

type ctxSource struct{ ctx context.Context }

func (c ctxSource) IsCancellationRequested() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

func (c ctxSource) Done() <-chan struct{} { return c.ctx.Done() }

// Never is a Source that is never cancelled.
var Never Source = neverSource{}

type neverSource struct{}

func (neverSource) IsCancellationRequested() bool { return false }
func (neverSource) Done() <-chan struct{}         { return nil }

// Cancelled is a Source that reports as already cancelled, useful for
// tests exercising the TOKENCANCELLED checkpoints.
var Cancelled Source = cancelledSource{}

type cancelledSource struct{}

func (cancelledSource) IsCancellationRequested() bool { return true }

func (cancelledSource) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// Check reports whether t has been cancelled (a nil t never is); callers
// turn true into fault.ErrTokenCancelled themselves, which keeps this
// package free of a dependency on fault.
func Check(t Source) bool {
	if t == nil {
		return false
	}
	return t.IsCancellationRequested()
}
