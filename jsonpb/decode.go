package jsonpb

import (
	"github.com/crackcomm/protoc-plugin-go/spec"
	"github.com/crackcomm/protoc-plugin-go/wire"
)

// DecodeField is one entry of a deserialize-side field list, addressed by
// name instead of wire tag, traversing a JSON tree instead of a wire Reader.
// Like spec.DecodeField, it produces a plain `any` per field in list order
// for a generated constructor to type-assert back out.
type DecodeField struct {
	name, jsonName string
	read           func(obj map[string]any) (any, error)
}

// lookup resolves a field's value by trying its jsonName first, then its
// proto name, independent of Options, since parse always accepts either
// spelling.
func lookup(obj map[string]any, name, jsonName string) (any, bool) {
	if v, ok := obj[jsonName]; ok {
		return v, true
	}
	if v, ok := obj[name]; ok {
		return v, true
	}
	return nil, false
}

// MessageSpec describes a nested message type's JSON mapping, analogous to
// spec.TypedSpec's Message constructor but JSON-facing.
type MessageSpec[M any] struct {
	FromJSON func(v any, opts Options) (*M, error)
	ToJSON   func(m *M, opts Options) (any, error)
}

// Basic decodes a singular scalar/enum field, filling T's zero value when
// absent or explicit JSON null (proto3 semantics: there is no distinction
// between absent and default).
func Basic[T any](name, jsonName string, sc ScalarSpec[T]) DecodeField {
	return DecodeField{name: name, jsonName: jsonName, read: func(obj map[string]any) (any, error) {
		raw, ok := lookup(obj, name, jsonName)
		if !ok || raw == nil {
			return sc.Zero, nil
		}
		return sc.FromJSON(raw)
	}}
}

// BasicOpt decodes a proto2/proto3 `optional` field, returning *T so
// absence is distinguishable from an explicit zero value.
func BasicOpt[T any](name, jsonName string, sc ScalarSpec[T]) DecodeField {
	return DecodeField{name: name, jsonName: jsonName, read: func(obj map[string]any) (any, error) {
		raw, ok := lookup(obj, name, jsonName)
		if !ok || raw == nil {
			return (*T)(nil), nil
		}
		v, err := sc.FromJSON(raw)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}}
}

// Repeated decodes a JSON array into []T, or an empty (non-nil) slice when
// the key is absent or null.
func Repeated[T any](name, jsonName string, sc ScalarSpec[T]) DecodeField {
	return DecodeField{name: name, jsonName: jsonName, read: func(obj map[string]any) (any, error) {
		raw, ok := lookup(obj, name, jsonName)
		if !ok || raw == nil {
			return []T{}, nil
		}
		arr, ok := raw.([]any)
		if !ok {
			return nil, typeErr("array", raw)
		}
		out := make([]T, len(arr))
		for i, elem := range arr {
			v, err := sc.FromJSON(elem)
			if err != nil {
				return nil, wire.WrapField(err, name)
			}
			out[i] = v
		}
		return out, nil
	}}
}

// Message decodes a singular sub-message field, returning nil when absent.
func Message[M any](name, jsonName string, ms MessageSpec[M], opts Options) DecodeField {
	return DecodeField{name: name, jsonName: jsonName, read: func(obj map[string]any) (any, error) {
		raw, ok := lookup(obj, name, jsonName)
		if !ok || raw == nil {
			return (*M)(nil), nil
		}
		return ms.FromJSON(raw, opts)
	}}
}

// RepeatedMessage decodes a JSON array of sub-messages.
func RepeatedMessage[M any](name, jsonName string, ms MessageSpec[M], opts Options) DecodeField {
	return DecodeField{name: name, jsonName: jsonName, read: func(obj map[string]any) (any, error) {
		raw, ok := lookup(obj, name, jsonName)
		if !ok || raw == nil {
			return []*M{}, nil
		}
		arr, ok := raw.([]any)
		if !ok {
			return nil, typeErr("array", raw)
		}
		out := make([]*M, len(arr))
		for i, elem := range arr {
			v, err := ms.FromJSON(elem, opts)
			if err != nil {
				return nil, wire.WrapField(err, name)
			}
			out[i] = v
		}
		return out, nil
	}}
}

// Map decodes a JSON object into a []spec.Pair[K, V]. The pairs follow Go's
// map iteration over the decoded object, so their order is not defined and
// need not match the key order of the input. Map keys are always JSON
// strings regardless of K's declared scalar type, matching the canonical
// proto3 JSON mapping; keyFromString converts the string key back to K.
func Map[K comparable, V any](name, jsonName string, keyFromString func(string) (K, error), valueSpec ScalarSpec[V]) DecodeField {
	return DecodeField{name: name, jsonName: jsonName, read: func(obj map[string]any) (any, error) {
		raw, ok := lookup(obj, name, jsonName)
		if !ok || raw == nil {
			return []spec.Pair[K, V]{}, nil
		}
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, typeErr("object", raw)
		}
		out := make([]spec.Pair[K, V], 0, len(m))
		for k, v := range m {
			key, err := keyFromString(k)
			if err != nil {
				return nil, wire.WrapField(err, name+"[key]")
			}
			val, err := valueSpec.FromJSON(v)
			if err != nil {
				return nil, wire.WrapField(err, name+"["+k+"]")
			}
			out = append(out, spec.Pair[K, V]{Key: key, Value: val})
		}
		return out, nil
	}}
}

// OneofValue is the decode result of a Oneof field, mirroring
// spec.OneofValue: Case is the index of the active variant (-1 if none),
// and Value is that variant's decoded payload.
type OneofValue struct {
	Case  int
	Value any
}

// OneofVariant is one member of a JSON Oneof, built by OneofElem.
type OneofVariant struct {
	name, jsonName string
	fromJSON       func(v any) (any, error)
}

// OneofElem builds one Oneof variant from its names and ScalarSpec.
func OneofElem[T any](name, jsonName string, sc ScalarSpec[T]) OneofVariant {
	return OneofVariant{name: name, jsonName: jsonName, fromJSON: func(v any) (any, error) { return sc.FromJSON(v) }}
}

// OneofElemMessage builds a message-valued Oneof variant.
func OneofElemMessage[M any](name, jsonName string, ms MessageSpec[M], opts Options) OneofVariant {
	return OneofVariant{name: name, jsonName: jsonName, fromJSON: func(v any) (any, error) { return ms.FromJSON(v, opts) }}
}

// Oneof decodes whichever declared variant key is present first in list
// order. At most one variant should be present in well-formed JSON; if
// more than one key is present, the first in variant order wins.
func Oneof(variants ...OneofVariant) DecodeField {
	return DecodeField{read: func(obj map[string]any) (any, error) {
		for i, v := range variants {
			raw, ok := lookup(obj, v.name, v.jsonName)
			if !ok || raw == nil {
				continue
			}
			val, err := v.fromJSON(raw)
			if err != nil {
				return nil, wire.WrapField(err, v.name)
			}
			return OneofValue{Case: i, Value: val}, nil
		}
		return OneofValue{Case: -1}, nil
	}}
}
