// SPDX-License-Identifier: ISC

// Package codec implements the canonical tag-length-value wire codec of
// spec.md §4.B: a self-describing serialization whose determinism is
// what makes block signatures reproducible. Grounded on the teacher's
// util/varint.go (the VQL bit layout, see vql.go) and on the general
// "pack records as a flat byte buffer, validate on unpack" idiom of
// blockrecord/header.go, generalized from a fixed-layout header to a
// tagged, recursive value model since this codec must serialize
// arbitrary user payloads rather than one fixed record shape.
package codec

import (
	"encoding/json"
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/hychain/core/fault"
	"github.com/hychain/core/marshal"
)

// log is this package's diagnostic channel, acquired once at package
// load per the teacher's "one channel per package" convention.
var log = logger.New("codec")

// Tag identifies the shape of the value that follows it on the wire.
type Tag byte

const (
	TagNull      Tag = 0
	TagString    Tag = 1
	TagUint      Tag = 2
	TagObject    Tag = 3
	TagArray     Tag = 4
	TagMarshal   Tag = 5
	TagByteArray Tag = 6
)

// Serialize encodes v under the canonical wire form. v must be one of:
// nil, string, []byte, an integer type whose value fits in [0, 2^32),
// []interface{} (an array of any of these, recursively), marshal.Value,
// or anything else JSON-marshalable (encoded as a generic object).
//
// Dispatch order matters and is part of the canonical contract (spec.md
// §4.B): null/absent, then string, then byte buffer, then in-range
// unsigned integer, then array, then marshalled envelope, then fallback
// JSON object.
func Serialize(v interface{}) ([]byte, error) {
	switch value := v.(type) {
	case nil:
		return []byte{byte(TagNull)}, nil
	case string:
		return serializeString(value), nil
	case []byte:
		return serializeByteArray(value), nil
	case marshal.Value:
		return serializeMarshalled(value)
	}

	if u, ok := asCanonicalUint32(v); ok {
		return serializeUint(u), nil
	}

	if arr, ok := asAnySlice(v); ok {
		return serializeArray(arr)
	}

	return serializeGenericObject(v)
}

func serializeString(s string) []byte {
	body := []byte(s)
	out := make([]byte, 0, 1+maximumVQLBytes+len(body))
	out = append(out, byte(TagString))
	out = append(out, WriteInt32VQL(uint32(len(body)))...)
	out = append(out, body...)
	return out
}

func serializeByteArray(b []byte) []byte {
	out := make([]byte, 0, 1+maximumVQLBytes+len(b))
	out = append(out, byte(TagByteArray))
	out = append(out, WriteInt32VQL(uint32(len(b)))...)
	out = append(out, b...)
	return out
}

func serializeUint(u uint32) []byte {
	out := make([]byte, 0, 1+maximumVQLBytes)
	out = append(out, byte(TagUint))
	out = append(out, WriteInt32VQL(u)...)
	return out
}

func serializeArray(arr []interface{}) ([]byte, error) {
	encodedElements := make([]byte, 0)
	for _, el := range arr {
		encoded, err := Serialize(el)
		if err != nil {
			return nil, err
		}
		encodedElements = append(encodedElements, encoded...)
	}
	out := make([]byte, 0, 1+maximumVQLBytes+len(encodedElements))
	out = append(out, byte(TagArray))
	out = append(out, WriteInt32VQL(uint32(len(encodedElements)))...)
	out = append(out, encodedElements...)
	return out, nil
}

func serializeMarshalled(v marshal.Value) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+maximumVQLBytes+len(body))
	out = append(out, byte(TagMarshal))
	out = append(out, WriteInt32VQL(uint32(len(body)))...)
	out = append(out, body...)
	return out, nil
}

func serializeGenericObject(v interface{}) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+maximumVQLBytes+len(body))
	out = append(out, byte(TagObject))
	out = append(out, WriteInt32VQL(uint32(len(body)))...)
	out = append(out, body...)
	return out, nil
}

// Deserialize decodes a value previously produced by Serialize.
// Deserialization is strictly tag-driven; an unrecognized tag fails with
// fault.ErrUnsupportedOperation.
func Deserialize(data []byte) (interface{}, error) {
	v, _, err := deserializeOne(data)
	return v, err
}

func deserializeOne(data []byte) (interface{}, int, error) {
	if len(data) < 1 {
		return nil, 0, fault.ErrEndOfStream.WithContext("reason", "empty buffer")
	}
	tag := Tag(data[0])
	rest := data[1:]

	switch tag {
	case TagNull:
		return nil, 1, nil

	case TagString:
		length, n, err := ReadInt32VQL(rest)
		if err != nil {
			return nil, 0, err
		}
		start := 1 + n
		end := start + int(length)
		if end > len(data) {
			return nil, 0, fault.ErrEndOfStream
		}
		return string(data[start:end]), end, nil

	case TagByteArray:
		length, n, err := ReadInt32VQL(rest)
		if err != nil {
			return nil, 0, err
		}
		start := 1 + n
		end := start + int(length)
		if end > len(data) {
			return nil, 0, fault.ErrEndOfStream
		}
		b := make([]byte, length)
		copy(b, data[start:end])
		return b, end, nil

	case TagUint:
		value, n, err := ReadInt32VQL(rest)
		if err != nil {
			return nil, 0, err
		}
		return value, 1 + n, nil

	case TagArray:
		length, n, err := ReadInt32VQL(rest)
		if err != nil {
			return nil, 0, err
		}
		start := 1 + n
		end := start + int(length)
		if end > len(data) {
			return nil, 0, fault.ErrEndOfStream
		}
		elements := make([]interface{}, 0)
		offset := start
		for offset < end {
			el, consumed, err := deserializeOne(data[offset:])
			if err != nil {
				return nil, 0, err
			}
			elements = append(elements, el)
			offset += consumed
		}
		return elements, end, nil

	case TagMarshal:
		length, n, err := ReadInt32VQL(rest)
		if err != nil {
			return nil, 0, err
		}
		start := 1 + n
		end := start + int(length)
		if end > len(data) {
			return nil, 0, fault.ErrEndOfStream
		}
		var value marshal.Value
		if err := json.Unmarshal(data[start:end], &value); err != nil {
			return nil, 0, err
		}
		return value, end, nil

	case TagObject:
		length, n, err := ReadInt32VQL(rest)
		if err != nil {
			return nil, 0, err
		}
		start := 1 + n
		end := start + int(length)
		if end > len(data) {
			return nil, 0, fault.ErrEndOfStream
		}
		var value interface{}
		if err := json.Unmarshal(data[start:end], &value); err != nil {
			return nil, 0, err
		}
		return value, end, nil

	default:
		log.Warnf("unsupported tag %d on decode", byte(tag))
		return nil, 0, fault.ErrUnsupportedOperation.WithContext("tag", byte(tag))
	}
}

// asCanonicalUint32 reports whether v is an integer type whose value is
// representable as a non-negative value fitting in 32 bits — the "value
// === value|0" test of spec.md §4.B, generalized across Go's integer
// kinds.
func asCanonicalUint32(v interface{}) (uint32, bool) {
	switch n := v.(type) {
	case uint32:
		return n, true
	case int:
		if n >= 0 && n <= math.MaxUint32 {
			return uint32(n), true
		}
	case int32:
		if n >= 0 {
			return uint32(n), true
		}
	case int64:
		if n >= 0 && n <= math.MaxUint32 {
			return uint32(n), true
		}
	case uint:
		if n <= math.MaxUint32 {
			return uint32(n), true
		}
	case uint64:
		if n <= math.MaxUint32 {
			return uint32(n), true
		}
	}
	return 0, false
}

// asAnySlice reports whether v is a generic array of values this codec
// should recurse into, as opposed to a byte slice (handled earlier) or a
// struct/map that should fall through to the generic JSON object tag.
func asAnySlice(v interface{}) ([]interface{}, bool) {
	arr, ok := v.([]interface{})
	return arr, ok
}
