// Package merge implements protobuf's field-wise merge semantics: merging
// b into a must be equivalent to decoding the concatenation of a's and b's
// wire-format encodings. It reuses the same per-field,
// declarative-list shape as packages spec and jsonpb, addressed by a plain
// getter closure instead of a wire tag or JSON name.
package merge

import "github.com/crackcomm/protoc-plugin-go/spec"

// Field describes how to merge one field of message type M.
type Field[M any] struct {
	merge func(a, b M) any
}

// Merge combines a and b field by field and feeds the results, in list
// order, to ctor.
func Merge[M any](a, b M, fields []Field[M], ctor func(vals []any) (M, error)) (M, error) {
	vals := make([]any, len(fields))
	for i, f := range fields {
		vals[i] = f.merge(a, b)
	}
	return ctor(vals)
}

// Basic merges a scalar/enum field: b's value wins if it differs from the
// type's zero value (a proto3 approximation of "set on the wire"),
// otherwise a's value is kept.
func Basic[M any, T comparable](get func(M) T, zero T) Field[M] {
	return Field[M]{merge: func(a, b M) any {
		if v := get(b); v != zero {
			return v
		}
		return get(a)
	}}
}

// MessageField merges a singular sub-message field: nil on one side yields
// the other side verbatim; both present recursively merges via mergeSub.
func MessageField[M any, N any](get func(M) *N, mergeSub func(a, b *N) *N) Field[M] {
	return Field[M]{merge: func(a, b M) any {
		av, bv := get(a), get(b)
		switch {
		case bv == nil:
			return av
		case av == nil:
			return bv
		default:
			return mergeSub(av, bv)
		}
	}}
}

// Repeated merges by concatenation: a's elements followed by b's.
func Repeated[M any, T any](get func(M) []T) Field[M] {
	return Field[M]{merge: func(a, b M) any {
		av, bv := get(a), get(b)
		out := make([]T, 0, len(av)+len(bv))
		out = append(out, av...)
		out = append(out, bv...)
		return out
	}}
}

// MapField merges by key: a's pairs first, then b's entries overwrite
// matching keys in place or append new keys in b's order.
func MapField[M any, K comparable, V any](get func(M) []spec.Pair[K, V]) Field[M] {
	return Field[M]{merge: func(a, b M) any {
		av, bv := get(a), get(b)
		out := make([]spec.Pair[K, V], len(av), len(av)+len(bv))
		copy(out, av)
		index := make(map[K]int, len(out))
		for i, p := range out {
			index[p.Key] = i
		}
		for _, p := range bv {
			if i, ok := index[p.Key]; ok {
				out[i].Value = p.Value
				continue
			}
			index[p.Key] = len(out)
			out = append(out, p)
		}
		return out
	}}
}

// Oneof merges a oneof group: b's set variant replaces a's entirely;
// isSet reports whether m has any variant active.
func Oneof[M any, T any](get func(M) T, isSet func(M) bool) Field[M] {
	return Field[M]{merge: func(a, b M) any {
		if isSet(b) {
			return get(b)
		}
		return get(a)
	}}
}
