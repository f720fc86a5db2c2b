// SPDX-License-Identifier: ISC

package block

import (
	"github.com/hychain/core/codec"
)

// serializeForSigning produces the byte stream blockSignature covers:
// every field of the block except blockSignature itself, under the
// canonical codec. Field order is resolved per spec.md §9's open
// question as lexicographic by field name — enforced here for free,
// since Go's encoding/json always emits map[string]interface{} keys
// in sorted order, which is exactly the canonicalization the codec's
// generic-object fallback tag relies on.
func serializeForSigning[P any](b *Block[P]) ([]byte, error) {
	rep, err := canonicalRepresentation(b)
	if err != nil {
		return nil, err
	}
	return codec.Serialize(rep)
}

func canonicalRepresentation[P any](b *Block[P]) (map[string]interface{}, error) {
	previousHashHex, err := b.PreviousHash.Hex()
	if err != nil {
		return nil, err
	}
	merkleRootHex, err := b.Headers.MerkleRoot.Hex()
	if err != nil {
		return nil, err
	}
	contentSignatureHex, err := b.ContentSignature.Hex()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"_id":              b.ID,
		"contentSignature": contentSignatureHex,
		"headers": map[string]interface{}{
			"contentLength": b.Headers.ContentLength,
			"merkleRoot":    merkleRootHex,
			"nonce":         b.Headers.Nonce,
			"timestamp":     b.Headers.Timestamp,
			"ts":            b.Headers.Ts,
			"version":       b.Headers.Version,
		},
		"metadata":      b.Metadata,
		"previousHash":  previousHashHex,
		"publicBlockId": b.PublicBlockID,
		"sequence":      b.Sequence,
		"transaction": map[string]interface{}{
			"payload":  b.Transaction.Payload,
			"sequence": b.Transaction.Sequence,
		},
	}, nil
}
