// SPDX-License-Identifier: ISC

// Package block implements spec.md §3's Block<P>/Transaction<P> record
// shapes and §4.H's assembly pipeline: compute the Merkle root of a
// transaction's payload, sign the content, assemble the record, sign
// the canonicalized record, and commit it to a chainstore.Storage under
// the single-writer invariant. Grounded on
// _examples/bitmark-inc-bitmarkd/blockrecord/header.go's typed record
// struct with explicit field-by-field construction, generalized from a
// fixed packed-byte header to a generic record over an arbitrary
// payload type, since this core's transactions carry caller-defined
// data rather than one fixed Bitcoin-style header.
package block

import (
	"strings"

	"github.com/hychain/core/fault"
	"github.com/hychain/core/hashentity"
)

// BlockHeaders is spec.md §3's header record.
type BlockHeaders struct {
	Ts            uint64
	Timestamp     string
	ContentLength uint32
	MerkleRoot    *hashentity.HashEntity
	Version       uint32
	Nonce         uint32
}

// Transaction is spec.md §3's Transaction<P>: immutable once
// constructed by the pipeline.
type Transaction[P any] struct {
	Payload  P
	Sequence uint32
}

// Block is spec.md §3's Block<P>.
type Block[P any] struct {
	ID               string
	PublicBlockID    string
	PreviousHash     *hashentity.HashEntity
	Sequence         uint32
	Transaction      Transaction[P]
	Headers          BlockHeaders
	Metadata         map[string]interface{}
	ContentSignature *hashentity.HashEntity
	BlockSignature   *hashentity.HashEntity
}

// genesisPreviousHashASCIILength is the length of spec.md §6's genesis
// marker: the literal ASCII digit "0" repeated 64 times, not a zeroed
// byte array.
const genesisPreviousHashASCIILength = 64

// GenesisPreviousHash returns the fixed previousHash value every
// genesis block carries.
func GenesisPreviousHash() *hashentity.HashEntity {
	return hashentity.New([]byte(strings.Repeat("0", genesisPreviousHashASCIILength)))
}

// RecordID satisfies chainstore.Record.
func (b *Block[P]) RecordID() string { return b.ID }

// RecordSequence satisfies chainstore.Record.
func (b *Block[P]) RecordSequence() uint32 { return b.Sequence }

// Validate is the structural validator spec.md §9's open question
// asks every implementer to supply: presence of required fields and
// non-empty signatures. It does not re-verify cryptographic validity —
// that is the caller's concern via the hashing package — only that the
// record is shaped like a block.
func (b *Block[P]) Validate() error {
	if b == nil {
		return fault.ErrInvalidArgument.WithContext("reason", "nil block")
	}
	if b.ID == "" {
		return fault.ErrInvalidArgument.WithContext("reason", "missing _id")
	}
	if b.PublicBlockID == "" {
		return fault.ErrInvalidArgument.WithContext("reason", "missing publicBlockId")
	}
	if b.PreviousHash == nil {
		return fault.ErrInvalidArgument.WithContext("reason", "missing previousHash")
	}
	if b.Headers.MerkleRoot == nil {
		return fault.ErrInvalidArgument.WithContext("reason", "missing headers.merkleRoot")
	}
	if err := requireNonEmptySignature(b.ContentSignature); err != nil {
		return err
	}
	if err := requireNonEmptySignature(b.BlockSignature); err != nil {
		return err
	}
	return nil
}

func requireNonEmptySignature(h *hashentity.HashEntity) error {
	if h == nil {
		return fault.ErrInvalidArgument.WithContext("reason", "missing signature")
	}
	length, err := h.ByteLength()
	if err != nil {
		return err
	}
	if length == 0 {
		return fault.ErrInvalidArgument.WithContext("reason", "empty signature")
	}
	return nil
}
