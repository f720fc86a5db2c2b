// SPDX-License-Identifier: ISC

// Package marshal implements the tagged-union "marshalled object"
// envelope of spec.md §4.B/§9: a JSON value {$mid: int, value?: ...} used
// when the wire codec's native tag set cannot discriminate a type on its
// own (Binary and Date, principally). spec.md §9 asks for exactly this
// shape: "a target language should model it as an algebraic data type
// with explicit variants". No teacher file needs this — bitmarkd's wire
// formats are all fixed-layout binary records — so the variant set and
// $mid assignment follow spec.md's own enumeration order.
package marshal

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/hychain/core/fault"
)

// Kind enumerates the marshalled variants, in spec.md §4.B's order. The
// numeric value of Kind is also the $mid written on the wire.
type Kind int

const (
	KindBinary Kind = iota
	KindString
	KindInteger
	KindDecimal
	KindBoolean
	KindNull
	KindObject
	KindArray
	KindDate
)

// Value is the algebraic-data-type realization of the envelope; exactly
// one payload field is meaningful for a given Kind.
type Value struct {
	Kind    Kind
	Binary  []byte
	String  string
	Integer int64
	Decimal float64
	Boolean bool
	Object  map[string]Value
	Array   []Value
	Date    time.Time
}

// constructors, one per variant, mirroring spec.md §4.B's list.

func NewBinary(b []byte) Value   { return Value{Kind: KindBinary, Binary: append([]byte(nil), b...)} }
func NewString(s string) Value   { return Value{Kind: KindString, String: s} }
func NewInteger(i int64) Value   { return Value{Kind: KindInteger, Integer: i} }
func NewDecimal(d float64) Value { return Value{Kind: KindDecimal, Decimal: d} }
func NewBoolean(b bool) Value    { return Value{Kind: KindBoolean, Boolean: b} }
func NewNull() Value             { return Value{Kind: KindNull} }
func NewObject(m map[string]Value) Value {
	copied := make(map[string]Value, len(m))
	for k, v := range m {
		copied[k] = v
	}
	return Value{Kind: KindObject, Object: copied}
}
func NewArray(a []Value) Value {
	return Value{Kind: KindArray, Array: append([]Value(nil), a...)}
}
func NewDate(t time.Time) Value { return Value{Kind: KindDate, Date: t} }

// wireEnvelope is the {$mid, value} JSON shape actually written.
type wireEnvelope struct {
	Mid   int             `json:"$mid"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON implements the {$mid, value} wire envelope.
func (v Value) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	var err error

	switch v.Kind {
	case KindBinary:
		raw, err = json.Marshal(base64.StdEncoding.EncodeToString(v.Binary))
	case KindString:
		raw, err = json.Marshal(v.String)
	case KindInteger:
		raw, err = json.Marshal(v.Integer)
	case KindDecimal:
		raw, err = json.Marshal(v.Decimal)
	case KindBoolean:
		raw, err = json.Marshal(v.Boolean)
	case KindNull:
		// no value field
	case KindObject:
		raw, err = json.Marshal(v.Object)
	case KindArray:
		raw, err = json.Marshal(v.Array)
	case KindDate:
		raw, err = json.Marshal(v.Date.UTC().Format(time.RFC3339Nano))
	default:
		return nil, fault.ErrInvalidType.WithContext("kind", int(v.Kind))
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireEnvelope{Mid: int(v.Kind), Value: raw})
}

// UnmarshalJSON is the inverse of MarshalJSON; an invalid Date string
// fails with fault.ErrInvalidType per spec.md §4.B.
func (v *Value) UnmarshalJSON(data []byte) error {
	var env wireEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	kind := Kind(env.Mid)

	switch kind {
	case KindBinary:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fault.ErrInvalidType.WithContext("reason", "bad base64")
		}
		*v = Value{Kind: KindBinary, Binary: b}
	case KindString:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return err
		}
		*v = Value{Kind: KindString, String: s}
	case KindInteger:
		var i int64
		if err := json.Unmarshal(env.Value, &i); err != nil {
			return err
		}
		*v = Value{Kind: KindInteger, Integer: i}
	case KindDecimal:
		var d float64
		if err := json.Unmarshal(env.Value, &d); err != nil {
			return err
		}
		*v = Value{Kind: KindDecimal, Decimal: d}
	case KindBoolean:
		var b bool
		if err := json.Unmarshal(env.Value, &b); err != nil {
			return err
		}
		*v = Value{Kind: KindBoolean, Boolean: b}
	case KindNull:
		*v = Value{Kind: KindNull}
	case KindObject:
		var m map[string]Value
		if err := json.Unmarshal(env.Value, &m); err != nil {
			return err
		}
		*v = Value{Kind: KindObject, Object: m}
	case KindArray:
		var a []Value
		if err := json.Unmarshal(env.Value, &a); err != nil {
			return err
		}
		*v = Value{Kind: KindArray, Array: a}
	case KindDate:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fault.ErrInvalidType.WithContext("reason", "bad date", "value", s)
		}
		*v = Value{Kind: KindDate, Date: t}
	default:
		return fault.ErrInvalidType.WithContext("mid", env.Mid)
	}
	return nil
}
