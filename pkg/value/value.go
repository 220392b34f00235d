// Package value defines the tagged variant returned by every tag
// decoder in internal/misb0601, internal/misb0102, and internal/misb0903.
//
// Hosts that need a dynamically-typed rendering (JSON, CSV, a table
// widget) convert a Value at the serialization boundary via Interface,
// rather than the core leaking an untyped bag of interface{} values.
package value

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind discriminates the variant carried by a Value.
type Kind int

const (
	// KindInt is a signed 64-bit integer, e.g. Outside Air Temperature
	// (ST 0601 tag 39).
	KindInt Kind = iota
	// KindUint is an unsigned 64-bit integer, e.g. the checksum field.
	KindUint
	// KindFloat is a 64-bit float produced by a fixed-point scaling.
	KindFloat
	// KindBool is a single boolean.
	KindBool
	// KindString is a UTF-8 string, an enum label, a hex dump with a
	// descriptive prefix, or a sentinel ("IMAPB", "DEPRECATED", ...).
	KindString
	// KindFlags is a named-bit record, e.g. Generic Flag Data.
	KindFlags
	// KindBytes is an opaque byte sequence that was not otherwise
	// interpreted (e.g. the VMTI series tags or an unknown tag).
	KindBytes
	// KindList is a bare ordered list of decoded values with no field
	// names attached, the shape a nested Security or VMTI Local Set
	// decodes to (spec.md §8 scenario 6).
	KindList
)

// Value is a tagged union over the carriers spec.md §3 enumerates.
// The zero Value is KindInt with the value 0.
type Value struct {
	kind   Kind
	i      int64
	u      uint64
	f      float64
	b      bool
	s      string
	flags  []Flag
	bytes  []byte
	list   []Value
}

// Field is one entry of a packet's ordered field list (name, Value),
// used by the top-level ST 0601 result tree (spec.md §3 "Result tree").
type Field struct {
	Name  string
	Value Value
}

// Flag is one named bit of a flags variant.
type Flag struct {
	Name string
	Set  bool
}

// Int wraps a signed integer.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Uint wraps an unsigned integer.
func Uint(v uint64) Value { return Value{kind: KindUint, u: v} }

// Float wraps a float64, including NaN sentinels.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Bool wraps a boolean.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// String wraps a UTF-8 string, an enum label, or a sentinel marker.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Bytes wraps an opaque byte sequence.
func Bytes(v []byte) Value {
	return Value{kind: KindBytes, bytes: append([]byte(nil), v...)}
}

// Flags wraps a named-bit record. The slice is copied.
func Flags(flags []Flag) Value {
	return Value{kind: KindFlags, flags: append([]Flag(nil), flags...)}
}

// List wraps a bare ordered list of values with no field names attached,
// in item order — the shape a decoded nested Security or VMTI Local Set
// takes (spec.md §8 scenario 6).
func List(items []Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// Kind reports the variant carried by v.
func (v Value) Kind() Kind { return v.kind }

// Int returns the wrapped signed integer and whether v is KindInt.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Uint returns the wrapped unsigned integer and whether v is KindUint.
func (v Value) Uint() (uint64, bool) { return v.u, v.kind == KindUint }

// Float returns the wrapped float and whether v is KindFloat.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Bool returns the wrapped boolean and whether v is KindBool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// String returns the wrapped string and whether v is KindString.
func (v Value) String() (string, bool) { return v.s, v.kind == KindString }

// Bytes returns the wrapped bytes and whether v is KindBytes.
func (v Value) Bytes() ([]byte, bool) { return v.bytes, v.kind == KindBytes }

// FlagList returns the wrapped flags and whether v is KindFlags.
func (v Value) FlagList() ([]Flag, bool) { return v.flags, v.kind == KindFlags }

// ListItems returns the wrapped list items and whether v is KindList.
func (v Value) ListItems() ([]Value, bool) { return v.list, v.kind == KindList }

// Interface converts v to a plain Go value suitable for
// encoding/json: float64/uint64/bool/string, map[string]bool for
// flags, []interface{} for a nested Local Set's bare value list, and a
// lowercase hex string for raw bytes. NaN floats become nil, matching
// spec.md §6's "null is acceptable" rendering rule.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		if math.IsNaN(v.f) {
			return nil
		}
		return v.f
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindBytes:
		return fmt.Sprintf("%x", v.bytes)
	case KindFlags:
		m := make(map[string]bool, len(v.flags))
		for _, fl := range v.flags {
			m[fl.Name] = fl.Set
		}
		return m
	case KindList:
		l := make([]interface{}, len(v.list))
		for i, item := range v.list {
			l[i] = item.Interface()
		}
		return l
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler via Interface.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// GoString renders v for logging/debugging (%#v); not used for
// serialization (see MarshalJSON / Interface for that).
func (v Value) GoString() string {
	return fmt.Sprintf("value.Value{kind:%v, repr:%v}", v.kind, v.Interface())
}
