// SPDX-License-Identifier: ISC

package block

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/hychain/core/chainstore"
	"github.com/hychain/core/codec"
	"github.com/hychain/core/fault"
	"github.com/hychain/core/hashentity"
	"github.com/hychain/core/hashing"
	"github.com/hychain/core/ids"
	"github.com/hychain/core/keymaterial"
	"github.com/hychain/core/merkle"
	"github.com/hychain/core/metrics"
	"github.com/hychain/core/token"
)

var log = logger.New("block")

// Keys is the pair of signing keys a pipeline consumes. spec.md
// §4.H step 3 says "extract signing-key bytes from the key object"
// (singular) and reuses it for both the Ed25519 content signature
// (step 7) and the ECDSA-SHA512 block signature (step 10); one raw
// buffer cannot serve as private-key material for two distinct
// algorithms, so this core resolves that as two keys, one per
// algorithm, each supplied as its own keymaterial.KeyObject.
type Keys struct {
	ContentKey *keymaterial.KeyObject
	BlockKey   *keymaterial.KeyObject
}

// Pipeline is the end-to-end block assembler of spec.md §4.H, bound to
// one payload type and one chainstore.Storage.
type Pipeline[P any] struct {
	Storage chainstore.Storage[*Block[P]]
	Keys    Keys
}

// NewPipeline constructs a Pipeline over storage and keys.
func NewPipeline[P any](storage chainstore.Storage[*Block[P]], keys Keys) *Pipeline[P] {
	return &Pipeline[P]{Storage: storage, Keys: keys}
}

// AssembleGenesis runs the §4.H pipeline for sequence 0, using
// GenesisPreviousHash() as the chain anchor.
func (p *Pipeline[P]) AssembleGenesis(payload P, metadata map[string]interface{}, t token.Source) (*Block[P], error) {
	return p.assemble(payload, 0, GenesisPreviousHash(), metadata, t)
}

// AssembleNext runs the §4.H pipeline for the block following
// previous: sequence = previous.Sequence+1, previousHash =
// previous.BlockSignature.
func (p *Pipeline[P]) AssembleNext(previous *Block[P], payload P, metadata map[string]interface{}, t token.Source) (*Block[P], error) {
	return p.assemble(payload, previous.Sequence+1, previous.BlockSignature, metadata, t)
}

func (p *Pipeline[P]) assemble(payload P, sequence uint32, previousHash *hashentity.HashEntity, metadata map[string]interface{}, t token.Source) (b *Block[P], err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveAssemblyDuration(time.Since(start).Seconds(), err == nil)
	}()

	// step 1
	if token.Check(t) {
		return nil, fault.ErrTokenCancelled
	}

	// step 2
	now := time.Now().UTC()
	ts := uint64(now.UnixMilli())
	timestamp := now.Format(time.RFC3339)

	// step 3: Master() reads without advancing the KeyObject's cursor, so
	// a Pipeline's Keys survive repeated AssembleNext calls — Read(-1)
	// would exhaust the cursor on the first block and return an empty
	// slice on every block after.
	contentKeyBytes, err := p.Keys.ContentKey.Master()
	if err != nil {
		return nil, err
	}
	blockKeyBytes, err := p.Keys.BlockKey.Master()
	if err != nil {
		return nil, err
	}

	transaction := Transaction[P]{Payload: payload, Sequence: sequence}

	// step 4
	merkleRoot, err := merkle.CreateRoot(transaction)
	if err != nil {
		return nil, err
	}

	// step 5
	headers := BlockHeaders{
		Ts:         ts,
		Timestamp:  timestamp,
		Version:    1,
		Nonce:      0,
		MerkleRoot: merkleRoot,
	}

	// step 6
	serializedPayload, err := codec.Serialize(payload)
	if err != nil {
		return nil, err
	}
	headers.ContentLength = uint32(len(serializedPayload))

	// step 7
	contentSignature, err := hashing.Sign("Ed25519", serializedPayload, contentKeyBytes, true, t)
	if err != nil {
		return nil, err
	}

	// step 8
	id, err := ids.LongID(now.UnixMilli())
	if err != nil {
		return nil, err
	}
	publicBlockID, err := ids.UUIDv7NoHyphens(now.UnixMilli())
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	b = &Block[P]{
		ID:               id,
		PublicBlockID:    publicBlockID,
		PreviousHash:     previousHash,
		Sequence:         sequence,
		Transaction:      transaction,
		Headers:          headers,
		Metadata:         metadata,
		ContentSignature: contentSignature,
	}

	// step 9
	toSign, err := serializeForSigning(b)
	if err != nil {
		return nil, err
	}

	// step 10
	blockSignature, err := hashing.Sign("ECDSA-SHA512", toSign, blockKeyBytes, false, t)
	if err != nil {
		return nil, err
	}
	b.BlockSignature = blockSignature

	// step 11
	if token.Check(t) {
		return nil, fault.ErrTokenCancelled
	}

	// step 12
	inserted, err := p.Storage.PutBlock(b)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fault.ErrUnknown.WithContext("reason", "chain storage rejected block", "_id", b.ID)
	}
	log.Infof("assembled block sequence=%d id=%s contentLength=%d", b.Sequence, b.ID, b.Headers.ContentLength)
	if all, sizeErr := p.Storage.GetAllBlocks(); sizeErr == nil {
		metrics.SetStorageSize(len(all))
	}

	// step 13: the source disposes "the storage handle" here, which this
	// core treats as a resource scoped to a single call (e.g. a
	// transaction handle a disk-backed implementation might acquire),
	// not the long-lived Storage the whole chain shares — disposing the
	// latter on every block would make the chain unusable past its
	// first write. A caller-visible Storage is disposed by its owner
	// when the chain itself is done, not by the pipeline.
	return b, nil
}
