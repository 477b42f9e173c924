package jsonpb

import "github.com/crackcomm/protoc-plugin-go/spec"

// EncodeField is one entry of a serialize-side field list for message type
// M, mirroring spec.EncodeField[M] but writing into a generic JSON object
// instead of a wire.Writer.
type EncodeField[M any] struct {
	write func(obj map[string]any, m M, opts Options) error
}

// Write emits this field's key/value into obj, or nothing if its emission
// rule elides it.
func (f EncodeField[M]) Write(obj map[string]any, m M, opts Options) error { return f.write(obj, m, opts) }

func keyFor(name, jsonName string, opts Options) string {
	if opts.JSONNames {
		return jsonName
	}
	return name
}

// BasicField emits a singular scalar/enum field, eliding it when
// opts.OmitDefaultValues and the value equals the scalar's zero.
func BasicField[M any, T comparable](name, jsonName string, get func(M) T, sc ScalarSpec[T]) EncodeField[M] {
	return EncodeField[M]{write: func(obj map[string]any, m M, opts Options) error {
		v := get(m)
		if opts.OmitDefaultValues && v == sc.Zero {
			return nil
		}
		obj[keyFor(name, jsonName, opts)] = sc.ToJSON(v)
		return nil
	}}
}

// BasicOptField emits a proto2/proto3 `optional` field iff present.
func BasicOptField[M any, T any](name, jsonName string, get func(M) (T, bool), sc ScalarSpec[T]) EncodeField[M] {
	return EncodeField[M]{write: func(obj map[string]any, m M, opts Options) error {
		v, ok := get(m)
		if !ok {
			return nil
		}
		obj[keyFor(name, jsonName, opts)] = sc.ToJSON(v)
		return nil
	}}
}

// RepeatedField emits a JSON array, or nothing for an empty slice.
func RepeatedField[M any, T any](name, jsonName string, get func(M) []T, sc ScalarSpec[T]) EncodeField[M] {
	return EncodeField[M]{write: func(obj map[string]any, m M, opts Options) error {
		elems := get(m)
		if len(elems) == 0 {
			return nil
		}
		arr := make([]any, len(elems))
		for i, e := range elems {
			arr[i] = sc.ToJSON(e)
		}
		obj[keyFor(name, jsonName, opts)] = arr
		return nil
	}}
}

// MessageField emits a singular sub-message field iff get(m) is non-nil.
// Presence, not value-equality, governs elision (mirrors spec.MessageField).
func MessageField[M any, N any](name, jsonName string, get func(M) *N, ms MessageSpec[N]) EncodeField[M] {
	return EncodeField[M]{write: func(obj map[string]any, m M, opts Options) error {
		v := get(m)
		if v == nil {
			return nil
		}
		j, err := ms.ToJSON(v, opts)
		if err != nil {
			return err
		}
		obj[keyFor(name, jsonName, opts)] = j
		return nil
	}}
}

// RepeatedMessage emits a JSON array of sub-messages.
func RepeatedMessageField[M any, N any](name, jsonName string, get func(M) []*N, ms MessageSpec[N]) EncodeField[M] {
	return EncodeField[M]{write: func(obj map[string]any, m M, opts Options) error {
		elems := get(m)
		if len(elems) == 0 {
			return nil
		}
		arr := make([]any, len(elems))
		for i, e := range elems {
			j, err := ms.ToJSON(e, opts)
			if err != nil {
				return err
			}
			arr[i] = j
		}
		obj[keyFor(name, jsonName, opts)] = arr
		return nil
	}}
}

// MapField emits a JSON object keyed by keyToString(p.Key).
func MapField[M any, K comparable, V any](name, jsonName string, get func(M) []spec.Pair[K, V], keyToString func(K) string, valueSpec ScalarSpec[V]) EncodeField[M] {
	return EncodeField[M]{write: func(obj map[string]any, m M, opts Options) error {
		pairs := get(m)
		if len(pairs) == 0 {
			return nil
		}
		out := make(map[string]any, len(pairs))
		for _, p := range pairs {
			out[keyToString(p.Key)] = valueSpec.ToJSON(p.Value)
		}
		obj[keyFor(name, jsonName, opts)] = out
		return nil
	}}
}

// EncodeOneofVariant is one emittable case of an encode-side Oneof.
type EncodeOneofVariant[M any] struct {
	write func(obj map[string]any, m M, opts Options) (bool, error)
}

// EncodeOneofElem builds one Oneof emission case for a scalar variant.
func EncodeOneofElem[M any, T any](name, jsonName string, get func(M) (T, bool), sc ScalarSpec[T]) EncodeOneofVariant[M] {
	return EncodeOneofVariant[M]{write: func(obj map[string]any, m M, opts Options) (bool, error) {
		v, ok := get(m)
		if !ok {
			return false, nil
		}
		obj[keyFor(name, jsonName, opts)] = sc.ToJSON(v)
		return true, nil
	}}
}

// EncodeOneofElemMessage builds a message-valued Oneof emission case.
func EncodeOneofElemMessage[M any, N any](name, jsonName string, get func(M) (*N, bool), ms MessageSpec[N]) EncodeOneofVariant[M] {
	return EncodeOneofVariant[M]{write: func(obj map[string]any, m M, opts Options) (bool, error) {
		v, ok := get(m)
		if !ok || v == nil {
			return false, nil
		}
		j, err := ms.ToJSON(v, opts)
		if err != nil {
			return false, err
		}
		obj[keyFor(name, jsonName, opts)] = j
		return true, nil
	}}
}

// OneofField emits exactly the active variant's key/value, or nothing if none
// report themselves active.
func OneofField[M any](variants ...EncodeOneofVariant[M]) EncodeField[M] {
	return EncodeField[M]{write: func(obj map[string]any, m M, opts Options) error {
		for _, v := range variants {
			ok, err := v.write(obj, m, opts)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
		return nil
	}}
}
