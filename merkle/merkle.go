// SPDX-License-Identifier: ISC

// Package merkle implements spec.md §4.D's Merkle digest engine: root
// construction over chunked payloads, proof generation, and proof
// verification. Grounded on
// _examples/bitmark-inc-bitmarkd/merkle/merkle.go's pairwise-hash,
// odd-leaf-duplication tree builder, re-expressed over HashEntity
// digests and the canonical codec's chunking rule instead of
// fixed-size Bitcoin block digests.
package merkle

import (
	"bytes"

	"github.com/hychain/core/codec"
	"github.com/hychain/core/fault"
	"github.com/hychain/core/hashentity"
	"github.com/hychain/core/hashing"
)

// chunkSize is the fixed chunk length createRoot splits a serialized
// payload into, per spec.md §4.D.
const chunkSize = 1024

// ComputeRoot runs the pairwise-hash-with-odd-leaf-duplication
// construction described in spec.md §4.D over an ordered list of leaf
// digests, returning the single root HashEntity.
func ComputeRoot(leaves [][]byte) (*hashentity.HashEntity, error) {
	if len(leaves) == 0 {
		return hashing.HashData(nil, "", nil)
	}

	level := make([][]byte, len(leaves))
	for i, l := range leaves {
		level[i] = append([]byte(nil), l...)
	}

	// A single leaf is itself an odd-length level and is duplicated and
	// hashed once before the general loop below can even run (spec.md
	// §8 scenario 4: computeRoot([h]) == SHA-384(h ‖ h)).
	if len(level) == 1 {
		pair := append(append([]byte(nil), level[0]...), level[0]...)
		h, err := hashing.HashData(pair, "", nil)
		if err != nil {
			return nil, err
		}
		digest, err := h.Buffer()
		if err != nil {
			return nil, err
		}
		return hashentity.New(digest), nil
	}

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			pair := append(append([]byte(nil), left...), right...)
			h, err := hashing.HashData(pair, "", nil)
			if err != nil {
				return nil, err
			}
			digest, err := h.Buffer()
			if err != nil {
				return nil, err
			}
			next = append(next, digest)
		}
		level = next
	}

	return hashentity.New(level[0]), nil
}

// CreateRoot serializes payload under the canonical codec, chunks the
// resulting bytes into fixed 1024-byte segments (a sole empty chunk
// when the payload serializes to zero bytes), hashes each chunk, and
// runs ComputeRoot over the chunk digests.
func CreateRoot(payload interface{}) (*hashentity.HashEntity, error) {
	serialized, err := codec.Serialize(payload)
	if err != nil {
		return nil, err
	}

	chunks := chunk(serialized)
	leaves := make([][]byte, 0, len(chunks))
	for _, c := range chunks {
		h, err := hashing.HashData(c, "", nil)
		if err != nil {
			return nil, err
		}
		digest, err := h.Buffer()
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, digest)
	}
	return ComputeRoot(leaves)
}

func chunk(data []byte) [][]byte {
	if len(data) == 0 {
		return [][]byte{{}}
	}
	out := make([][]byte, 0, (len(data)+chunkSize-1)/chunkSize)
	for offset := 0; offset < len(data); offset += chunkSize {
		end := offset + chunkSize
		if end > len(data) {
			end = len(data)
		}
		out = append(out, data[offset:end])
	}
	return out
}

// GenerateProof locates target among leaves and emits, level by level,
// the sibling of the current position — falling back to the current
// element itself when no right sibling exists — updating the position
// to the next level's index after each step. Failure to locate target
// fails with fault.ErrMissingObject.
func GenerateProof(leaves [][]byte, target []byte) ([][]byte, error) {
	index := -1
	for i, l := range leaves {
		if bytes.Equal(l, target) {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fault.ErrMissingObject
	}

	level := make([][]byte, len(leaves))
	for i, l := range leaves {
		level[i] = append([]byte(nil), l...)
	}

	proof := make([][]byte, 0)
	pos := index

	// A lone leaf is an odd-length level duplicated against itself, as
	// in ComputeRoot; there is no second level to loop into.
	if len(level) == 1 {
		proof = append(proof, append([]byte(nil), level[0]...))
		return proof, nil
	}

	for len(level) > 1 {
		siblingIndex := pos ^ 1
		var sibling []byte
		if siblingIndex < len(level) {
			sibling = level[siblingIndex]
		} else {
			sibling = level[pos]
		}
		proof = append(proof, append([]byte(nil), sibling...))

		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			pair := append(append([]byte(nil), left...), right...)
			h, err := hashing.HashData(pair, "", nil)
			if err != nil {
				return nil, err
			}
			digest, err := h.Buffer()
			if err != nil {
				return nil, err
			}
			next = append(next, digest)
		}
		level = next
		pos = pos / 2
	}

	return proof, nil
}

// VerifyProof folds hash ← hashData(hash ‖ sibling) across proof in
// order and compares to root byte-for-byte. It never fails for a
// mismatch — it returns false.
func VerifyProof(target []byte, proof [][]byte, root []byte) (bool, error) {
	running := append([]byte(nil), target...)
	for _, sibling := range proof {
		pair := append(append([]byte(nil), running...), sibling...)
		h, err := hashing.HashData(pair, "", nil)
		if err != nil {
			return false, err
		}
		digest, err := h.Buffer()
		if err != nil {
			return false, err
		}
		running = digest
	}
	return bytes.Equal(running, root), nil
}
