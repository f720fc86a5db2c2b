// SPDX-License-Identifier: ISC

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hychain/core/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{137, []byte{0x89, 0x01}},
	{255, []byte{0xff, 0x01}},
	{256, []byte{0x80, 0x02}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
	{0xfffffffffffffffe, []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

var varint64TruncatedTests = [][]byte{
	{},
	{0x80},
	{0xff},
	{0x80, 0x80},
	{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
}

func TestToVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		result := util.ToVarint64(item.value)
		assert.Equalf(t, item.encoded, result, "case %d: ToVarint64(%x)", i, item.value)
	}
}

func TestFromVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		result, count := util.FromVarint64(item.encoded)
		assert.Equalf(t, item.value, result, "case %d: FromVarint64(%x) value", i, item.encoded)
		assert.Equalf(t, len(item.encoded), count, "case %d: FromVarint64(%x) count", i, item.encoded)
	}

	for i, item := range varint64Tests {
		buf := append(append([]byte{}, item.encoded...), 0xff, 0x97, 0x23)
		result, count := util.FromVarint64(buf)
		assert.Equalf(t, item.value, result, "case %d: with suffix, value", i)
		assert.Equal(t, []byte{0xff, 0x97, 0x23}, buf[count:], "case %d: leftover suffix", i)
	}

	for i, item := range varint64TruncatedTests {
		result, count := util.FromVarint64(item)
		assert.Zerof(t, result, "case %d: truncated value", i)
		assert.Zerof(t, count, "case %d: truncated count", i)
	}
}
