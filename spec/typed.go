// Package spec implements the declarative field combinators that describe a
// message's wire layout. A TypedSpec describes one scalar's wire shape and
// Go type; a field combinator lifts a TypedSpec into a full field
// description (singular, optional, required, repeated, map, oneof).
//
// Two parallel combinator families are exported: DecodeField for the
// deserialize-side field list, and EncodeField[M] for the serialize-side
// one. Generated code (out of scope here) builds both lists from the same
// tag numbers and TypedSpecs, which is what makes round-tripping total.
package spec

import (
	"fmt"
	"math"

	"github.com/crackcomm/protoc-plugin-go/wire"
)

// TypedSpec describes one protobuf scalar type: how to recognize and decode
// its WireField, how to encode a Go value of type T back into one, and T's
// proto3 zero value.
type TypedSpec[T any] struct {
	FieldKind wire.Kind
	Zero      T
	DecodeWF  func(wf wire.WireField) (T, error)
	EncodeWF  func(v T) wire.WireField
}

func wrongType(fk wire.Kind, wf wire.WireField) error {
	return wire.NewFieldError(wire.KindWrongFieldType,
		fmt.Errorf("expected %s field, got %s", fk, wf.Kind))
}

// Double is the TypedSpec for protobuf `double`.
func Double() TypedSpec[float64] {
	return TypedSpec[float64]{
		FieldKind: wire.KindFixed64,
		DecodeWF: func(wf wire.WireField) (float64, error) {
			if wf.Kind != wire.KindFixed64 {
				return 0, wrongType(wire.KindFixed64, wf)
			}
			return wire.Float64frombits(wf.Fixed64), nil
		},
		EncodeWF: func(v float64) wire.WireField {
			return wire.WireField{Kind: wire.KindFixed64, Fixed64: wire.Float64bits(v)}
		},
	}
}

// Float is the TypedSpec for protobuf `float`.
func Float() TypedSpec[float32] {
	return TypedSpec[float32]{
		FieldKind: wire.KindFixed32,
		DecodeWF: func(wf wire.WireField) (float32, error) {
			if wf.Kind != wire.KindFixed32 {
				return 0, wrongType(wire.KindFixed32, wf)
			}
			return wire.Float32frombits(wf.Fixed32), nil
		},
		EncodeWF: func(v float32) wire.WireField {
			return wire.WireField{Kind: wire.KindFixed32, Fixed32: wire.Float32bits(v)}
		},
	}
}

func varintSpec[T ~int32 | ~int64 | ~uint32 | ~uint64](
	decode func(uint64) T, encode func(T) uint64,
) TypedSpec[T] {
	return TypedSpec[T]{
		FieldKind: wire.KindVarint,
		DecodeWF: func(wf wire.WireField) (T, error) {
			if wf.Kind != wire.KindVarint {
				var zero T
				return zero, wrongType(wire.KindVarint, wf)
			}
			return decode(wf.Varint), nil
		},
		EncodeWF: func(v T) wire.WireField {
			return wire.WireField{Kind: wire.KindVarint, Varint: encode(v)}
		},
	}
}

// Int32 is the TypedSpec for protobuf `int32` (plain varint, sign-extended).
func Int32() TypedSpec[int32] {
	return varintSpec(func(v uint64) int32 { return int32(v) }, func(v int32) uint64 { return uint64(v) })
}

// Int64 is the TypedSpec for protobuf `int64` (plain varint).
func Int64() TypedSpec[int64] {
	return varintSpec(func(v uint64) int64 { return int64(v) }, func(v int64) uint64 { return uint64(v) })
}

// UInt32 is the TypedSpec for protobuf `uint32`.
func UInt32() TypedSpec[uint32] {
	return varintSpec(func(v uint64) uint32 { return uint32(v) }, func(v uint32) uint64 { return uint64(v) })
}

// UInt64 is the TypedSpec for protobuf `uint64`.
func UInt64() TypedSpec[uint64] {
	return varintSpec(func(v uint64) uint64 { return v }, func(v uint64) uint64 { return v })
}

// SInt32 is the TypedSpec for protobuf `sint32` (zigzag varint).
func SInt32() TypedSpec[int32] {
	return varintSpec(wire.DecodeZigZag32, wire.EncodeZigZag32)
}

// SInt64 is the TypedSpec for protobuf `sint64` (zigzag varint).
func SInt64() TypedSpec[int64] {
	return varintSpec(wire.DecodeZigZag64, wire.EncodeZigZag64)
}

// Bool is the TypedSpec for protobuf `bool`.
func Bool() TypedSpec[bool] {
	return TypedSpec[bool]{
		FieldKind: wire.KindVarint,
		DecodeWF: func(wf wire.WireField) (bool, error) {
			if wf.Kind != wire.KindVarint {
				return false, wrongType(wire.KindVarint, wf)
			}
			return wf.Varint != 0, nil
		},
		EncodeWF: func(v bool) wire.WireField {
			var n uint64
			if v {
				n = 1
			}
			return wire.WireField{Kind: wire.KindVarint, Varint: n}
		},
	}
}

func fixed32Spec[T ~int32 | ~uint32](decode func(uint32) T, encode func(T) uint32) TypedSpec[T] {
	return TypedSpec[T]{
		FieldKind: wire.KindFixed32,
		DecodeWF: func(wf wire.WireField) (T, error) {
			if wf.Kind != wire.KindFixed32 {
				var zero T
				return zero, wrongType(wire.KindFixed32, wf)
			}
			return decode(wf.Fixed32), nil
		},
		EncodeWF: func(v T) wire.WireField {
			return wire.WireField{Kind: wire.KindFixed32, Fixed32: encode(v)}
		},
	}
}

func fixed64Spec[T ~int64 | ~uint64](decode func(uint64) T, encode func(T) uint64) TypedSpec[T] {
	return TypedSpec[T]{
		FieldKind: wire.KindFixed64,
		DecodeWF: func(wf wire.WireField) (T, error) {
			if wf.Kind != wire.KindFixed64 {
				var zero T
				return zero, wrongType(wire.KindFixed64, wf)
			}
			return decode(wf.Fixed64), nil
		},
		EncodeWF: func(v T) wire.WireField {
			return wire.WireField{Kind: wire.KindFixed64, Fixed64: encode(v)}
		},
	}
}

// Fixed32 is the TypedSpec for protobuf `fixed32`.
func Fixed32() TypedSpec[uint32] {
	return fixed32Spec(func(v uint32) uint32 { return v }, func(v uint32) uint32 { return v })
}

// Fixed64 is the TypedSpec for protobuf `fixed64`.
func Fixed64() TypedSpec[uint64] {
	return fixed64Spec(func(v uint64) uint64 { return v }, func(v uint64) uint64 { return v })
}

// SFixed32 is the TypedSpec for protobuf `sfixed32`.
func SFixed32() TypedSpec[int32] {
	return fixed32Spec(func(v uint32) int32 { return int32(v) }, func(v int32) uint32 { return uint32(v) })
}

// SFixed64 is the TypedSpec for protobuf `sfixed64`.
func SFixed64() TypedSpec[int64] {
	return fixed64Spec(func(v uint64) int64 { return int64(v) }, func(v int64) uint64 { return uint64(v) })
}

// String is the TypedSpec for protobuf `string`. Malformed UTF-8 is passed
// through unchanged on decode rather than rejected.
func String() TypedSpec[string] {
	return TypedSpec[string]{
		FieldKind: wire.KindLengthDelimited,
		DecodeWF: func(wf wire.WireField) (string, error) {
			if wf.Kind != wire.KindLengthDelimited {
				return "", wrongType(wire.KindLengthDelimited, wf)
			}
			// Copy out: the message value must outlive the input buffer.
			return string(append([]byte(nil), wf.Bytes...)), nil
		},
		EncodeWF: func(v string) wire.WireField {
			return wire.WireField{Kind: wire.KindLengthDelimited, Bytes: []byte(v)}
		},
	}
}

// Bytes is the TypedSpec for protobuf `bytes`.
func Bytes() TypedSpec[[]byte] {
	return TypedSpec[[]byte]{
		FieldKind: wire.KindLengthDelimited,
		DecodeWF: func(wf wire.WireField) ([]byte, error) {
			if wf.Kind != wire.KindLengthDelimited {
				return nil, wrongType(wire.KindLengthDelimited, wf)
			}
			return append([]byte(nil), wf.Bytes...), nil
		},
		EncodeWF: func(v []byte) wire.WireField {
			return wire.WireField{Kind: wire.KindLengthDelimited, Bytes: v}
		},
	}
}

// Enum builds the TypedSpec for a generated enum type E backed by int32,
// given its decoder (wire number -> (E, ok)) and encoder (E -> wire number).
// When decode reports !ok and AllowUnknownEnumNumberDecode is unset, decode
// fails with KindUnknownEnumValue.
func Enum[E ~int32](decode func(int32) (E, bool), encode func(E) int32) TypedSpec[E] {
	return TypedSpec[E]{
		FieldKind: wire.KindVarint,
		DecodeWF: func(wf wire.WireField) (E, error) {
			var zero E
			if wf.Kind != wire.KindVarint {
				return zero, wrongType(wire.KindVarint, wf)
			}
			// Negative enum numbers arrive sign-extended to 64 bits, as for int32.
			raw := int64(wf.Varint)
			if raw < math.MinInt32 || raw > math.MaxInt32 {
				return zero, wire.NewFieldError(wire.KindIllegalValue, fmt.Errorf("enum value %d out of int32 range", wf.Varint))
			}
			n := int32(raw)
			e, ok := decode(n)
			if !ok {
				if AllowUnknownEnumNumberDecode {
					return E(n), nil
				}
				return zero, wire.NewFieldError(wire.KindUnknownEnumValue, fmt.Errorf("unknown enum value %d", n))
			}
			return e, nil
		},
		EncodeWF: func(v E) wire.WireField {
			return wire.WireField{Kind: wire.KindVarint, Varint: uint64(int64(encode(v)))}
		},
	}
}

// Message builds the TypedSpec for a nested message type M, given its
// from_proto/to_proto pair. Singular message fields are always optional in
// proto3 (nil means absent); there is no separate "optional message"
// TypedSpec because a pointer already carries that distinction.
func Message[M any](decodeBytes func([]byte) (*M, error), encodeBytes func(*M) []byte) TypedSpec[*M] {
	return TypedSpec[*M]{
		FieldKind: wire.KindLengthDelimited,
		DecodeWF: func(wf wire.WireField) (*M, error) {
			if wf.Kind != wire.KindLengthDelimited {
				return nil, wrongType(wire.KindLengthDelimited, wf)
			}
			return decodeBytes(wf.Bytes)
		},
		EncodeWF: func(v *M) wire.WireField {
			return wire.WireField{Kind: wire.KindLengthDelimited, Bytes: encodeBytes(v)}
		},
	}
}

// AllowUnknownEnumNumberDecode is a package-level compatibility toggle:
// when true, decoding an enum number absent from the generated mapping
// yields that raw number cast to E instead of failing. Default false:
// unknown enum values are an error. The toggle applies to every Enum
// TypedSpec; there is no per-field setting.
var AllowUnknownEnumNumberDecode = false
