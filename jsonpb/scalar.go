package jsonpb

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/crackcomm/protoc-plugin-go/wire"
)

// ScalarSpec describes one protobuf scalar's JSON mapping: converting a Go
// value of type T to a generic JSON value (string/float64/bool/etc, as
// encoding/json would decode it) and back.
type ScalarSpec[T any] struct {
	Zero     T
	ToJSON   func(v T) any
	FromJSON func(v any) (T, error)
}

func typeErr(want string, v any) error {
	return wire.NewFieldError(wire.KindWrongFieldType, fmt.Errorf("expected JSON %s, got %T", want, v))
}

// Int32JSON covers int32/sint32/sfixed32: plain JSON numbers.
func Int32JSON() ScalarSpec[int32] {
	return ScalarSpec[int32]{
		ToJSON: func(v int32) any { return float64(v) },
		FromJSON: func(v any) (int32, error) {
			n, err := jsonNumber(v)
			return int32(n), err
		},
	}
}

// UInt32JSON covers uint32/fixed32: plain JSON numbers.
func UInt32JSON() ScalarSpec[uint32] {
	return ScalarSpec[uint32]{
		ToJSON: func(v uint32) any { return float64(v) },
		FromJSON: func(v any) (uint32, error) {
			n, err := jsonNumber(v)
			return uint32(n), err
		},
	}
}

// Int64JSON covers int64/sint64/sfixed64: JSON strings, to preserve
// precision a float64 can't.
func Int64JSON() ScalarSpec[int64] {
	return ScalarSpec[int64]{
		ToJSON: func(v int64) any { return strconv.FormatInt(v, 10) },
		FromJSON: func(v any) (int64, error) {
			switch t := v.(type) {
			case string:
				n, err := strconv.ParseInt(t, 10, 64)
				return n, err
			case float64:
				return int64(t), nil
			default:
				return 0, typeErr("string or number", v)
			}
		},
	}
}

// UInt64JSON covers uint64/fixed64: JSON strings.
func UInt64JSON() ScalarSpec[uint64] {
	return ScalarSpec[uint64]{
		ToJSON: func(v uint64) any { return strconv.FormatUint(v, 10) },
		FromJSON: func(v any) (uint64, error) {
			switch t := v.(type) {
			case string:
				n, err := strconv.ParseUint(t, 10, 64)
				return n, err
			case float64:
				return uint64(t), nil
			default:
				return 0, typeErr("string or number", v)
			}
		},
	}
}

// Float32JSON/Float64JSON serialize as JSON numbers; Go's
// encoding/json already renders an integral float without a fraction.
func Float32JSON() ScalarSpec[float32] {
	return ScalarSpec[float32]{
		ToJSON: func(v float32) any { return float64(v) },
		FromJSON: func(v any) (float32, error) {
			n, err := jsonNumber(v)
			return float32(n), err
		},
	}
}

func Float64JSON() ScalarSpec[float64] {
	return ScalarSpec[float64]{
		ToJSON:   func(v float64) any { return v },
		FromJSON: jsonNumber,
	}
}

// BoolJSON accepts a JSON boolean, or the strings "true"/"false", on parse.
func BoolJSON() ScalarSpec[bool] {
	return ScalarSpec[bool]{
		ToJSON: func(v bool) any { return v },
		FromJSON: func(v any) (bool, error) {
			switch t := v.(type) {
			case bool:
				return t, nil
			case string:
				switch t {
				case "true":
					return true, nil
				case "false":
					return false, nil
				}
			}
			return false, typeErr("bool", v)
		},
	}
}

// StringJSON is the identity mapping for protobuf `string`.
func StringJSON() ScalarSpec[string] {
	return ScalarSpec[string]{
		ToJSON: func(v string) any { return v },
		FromJSON: func(v any) (string, error) {
			s, ok := v.(string)
			if !ok {
				return "", typeErr("string", v)
			}
			return s, nil
		},
	}
}

// BytesJSON serializes as standard padded base64.
func BytesJSON() ScalarSpec[[]byte] {
	return ScalarSpec[[]byte]{
		ToJSON: func(v []byte) any { return base64.StdEncoding.EncodeToString(v) },
		FromJSON: func(v any) ([]byte, error) {
			s, ok := v.(string)
			if !ok {
				return nil, typeErr("base64 string", v)
			}
			return base64.StdEncoding.DecodeString(s)
		},
	}
}

// EnumJSON builds the ScalarSpec for a generated enum type E, serializing
// per opts.EnumNames and accepting both the string name and the integer
// number on parse regardless of Options.
func EnumJSON[E ~int32](name func(E) (string, bool), byName func(string) (E, bool), opts Options) ScalarSpec[E] {
	return ScalarSpec[E]{
		ToJSON: func(v E) any {
			if opts.EnumNames {
				if n, ok := name(v); ok {
					return n
				}
			}
			return float64(v)
		},
		FromJSON: func(v any) (E, error) {
			var zero E
			switch t := v.(type) {
			case string:
				if e, ok := byName(t); ok {
					return e, nil
				}
				return zero, wire.NewFieldError(wire.KindUnknownEnumValue, fmt.Errorf("unknown enum name %q", t))
			case float64:
				return E(int32(t)), nil
			default:
				return zero, typeErr("string or number", v)
			}
		},
	}
}

func jsonNumber(v any) (float64, error) {
	n, ok := v.(float64)
	if !ok {
		return 0, typeErr("number", v)
	}
	return n, nil
}
