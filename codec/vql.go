// SPDX-License-Identifier: ISC

package codec

import (
	"math"

	"github.com/hychain/core/fault"
	"github.com/hychain/core/util"
)

// maximumVQLBytes bounds a single VQL encoding to the 32-bit range
// this codec's length/value fields need (spec.md §4.B: "no bound
// beyond 32-bit is required") — smaller than util.Varint64MaximumBytes,
// which covers the full 64-bit range util's own callers need.
const maximumVQLBytes = 5

// WriteInt32VQL encodes a non-negative integer as a little-endian
// base-128 variable-length quantity, delegating to util.ToVarint64
// (the teacher's own varint encoder) widened to a uint64 and narrowed
// back on decode.
func WriteInt32VQL(value uint32) []byte {
	return util.ToVarint64(uint64(value))
}

// ReadInt32VQL decodes a VQL-encoded value from the front of data,
// returning the value and the number of bytes consumed. Rejects
// encodings util.FromVarint64 would happily decode but that overflow
// this codec's 32-bit value space.
func ReadInt32VQL(data []byte) (uint32, int, error) {
	value, count := util.FromVarint64(data)
	if count == 0 {
		return 0, 0, fault.ErrEndOfStream.WithContext("reason", "truncated VQL")
	}
	if count > maximumVQLBytes || value > math.MaxUint32 {
		return 0, 0, fault.ErrInvalidChunk.WithContext("reason", "VQL exceeds 32 bits")
	}
	return uint32(value), count, nil
}
