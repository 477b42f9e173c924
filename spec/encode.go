package spec

import "github.com/crackcomm/protoc-plugin-go/wire"

// EncodeField is one entry of a serialize-side field list for message type
// M. Unlike DecodeField it is parameterized on M because its extractor
// closure must know the concrete message type to pull a field's value out
// of it; tag numbers, defaults, and TypedSpecs are shared with the matching
// DecodeField so encode/decode round-trip totally.
type EncodeField[M any] struct {
	write func(w *wire.Writer, m M)
}

// Write emits this field's tag(s) and payload for m, or nothing if the
// field's emission rule says to omit it.
func (f EncodeField[M]) Write(w *wire.Writer, m M) { f.write(w, m) }

// WriteWireField emits tag+payload for an already-decoded WireField
// verbatim. Extensions storage (package ext) uses this to re-emit captured
// unknown fields byte-for-byte without redecoding them.
func WriteWireField(w *wire.Writer, tag int32, wf wire.WireField) { writeScalar(w, tag, wf) }

func writeScalar(w *wire.Writer, tag int32, wf wire.WireField) {
	w.WriteTag(wire.FieldNumber(tag), wf.Kind.WireTypeOf())
	switch wf.Kind {
	case wire.KindVarint:
		w.WriteVarint(wf.Varint)
	case wire.KindFixed32:
		w.WriteFixed32(wf.Fixed32)
	case wire.KindFixed64:
		w.WriteFixed64(wf.Fixed64)
	case wire.KindLengthDelimited:
		w.WriteLengthDelimited(wf.Bytes)
	}
}

// BasicField emits a singular scalar/enum field, eliding it when the message is
// proto3 and the value equals the TypedSpec's zero. Sub-message fields use
// MessageField instead, which is presence-based rather than
// equality-based.
func BasicField[M any, T comparable](tag int32, get func(M) T, ts TypedSpec[T], def Default[T]) EncodeField[M] {
	return EncodeField[M]{write: func(w *wire.Writer, m M) {
		v := get(m)
		if def.IsProto3() && v == ts.Zero {
			return
		}
		writeScalar(w, tag, ts.EncodeWF(v))
	}}
}

// BasicReqField always emits a proto2 required field.
func BasicReqField[M any, T any](tag int32, get func(M) T, ts TypedSpec[T]) EncodeField[M] {
	return EncodeField[M]{write: func(w *wire.Writer, m M) {
		writeScalar(w, tag, ts.EncodeWF(get(m)))
	}}
}

// BasicOptField emits a proto2/proto3 `optional` field iff present.
func BasicOptField[M any, T any](tag int32, get func(M) (T, bool), ts TypedSpec[T]) EncodeField[M] {
	return EncodeField[M]{write: func(w *wire.Writer, m M) {
		v, ok := get(m)
		if !ok {
			return
		}
		writeScalar(w, tag, ts.EncodeWF(v))
	}}
}

// MessageField emits a singular sub-message field iff get(m) is non-nil.
// Message presence is never elided by value-equality, only by nil-ness.
func MessageField[M any, N any](tag int32, get func(M) *N, ts TypedSpec[*N]) EncodeField[M] {
	return EncodeField[M]{write: func(w *wire.Writer, m M) {
		v := get(m)
		if v == nil {
			return
		}
		writeScalar(w, tag, ts.EncodeWF(v))
	}}
}

// RepeatedField emits a repeated field. Packed mode concatenates every element's
// raw payload into a single length-delimited occurrence (only valid for
// scalar element kinds); NotPacked mode — and any non-scalar element kind —
// emits one tagged occurrence per element.
func RepeatedField[M any, T any](tag int32, get func(M) []T, ts TypedSpec[T], mode PackedMode) EncodeField[M] {
	scalar := ts.FieldKind != wire.KindLengthDelimited
	return EncodeField[M]{write: func(w *wire.Writer, m M) {
		elems := get(m)
		if len(elems) == 0 {
			return
		}
		if mode == Packed && scalar {
			scratch := wire.NewWriter(w.Mode())
			for _, e := range elems {
				wf := ts.EncodeWF(e)
				switch wf.Kind {
				case wire.KindVarint:
					scratch.WriteVarint(wf.Varint)
				case wire.KindFixed32:
					scratch.WriteFixed32(wf.Fixed32)
				case wire.KindFixed64:
					scratch.WriteFixed64(wf.Fixed64)
				}
			}
			w.WriteTag(wire.FieldNumber(tag), wire.Bytes)
			w.WriteLengthDelimited(scratch.Contents())
			return
		}
		for _, e := range elems {
			writeScalar(w, tag, ts.EncodeWF(e))
		}
	}}
}

// MapField emits one tagged length-delimited entry per pair, each entry a
// two-field sub-message with tag 1 (key) and tag 2 (value).
func MapField[M any, K comparable, V any](tag int32, get func(M) []Pair[K, V], keySpec TypedSpec[K], valueSpec TypedSpec[V]) EncodeField[M] {
	return EncodeField[M]{write: func(w *wire.Writer, m M) {
		for _, p := range get(m) {
			entry := wire.NewWriter(w.Mode())
			writeScalar(entry, 1, keySpec.EncodeWF(p.Key))
			writeScalar(entry, 2, valueSpec.EncodeWF(p.Value))
			w.WriteTag(wire.FieldNumber(tag), wire.Bytes)
			w.WriteLengthDelimited(entry.Contents())
		}
	}}
}

// EncodeOneofVariant is one emittable case of an encode-side Oneof, paired
// with the matching decode-side OneofElem by position.
type EncodeOneofVariant[M any] struct {
	write func(w *wire.Writer, m M) bool // returns true iff this is the active case
}

// EncodeOneofElem builds one Oneof emission case: get must report whether m
// is in this case (ok) and, if so, its value.
func EncodeOneofElem[M any, T any](tag int32, get func(M) (T, bool), ts TypedSpec[T]) EncodeOneofVariant[M] {
	return EncodeOneofVariant[M]{write: func(w *wire.Writer, m M) bool {
		v, ok := get(m)
		if !ok {
			return false
		}
		writeScalar(w, tag, ts.EncodeWF(v))
		return true
	}}
}

// OneofField emits exactly the active variant's tag+value, or nothing if none of
// the variants report themselves active.
func OneofField[M any](variants ...EncodeOneofVariant[M]) EncodeField[M] {
	return EncodeField[M]{write: func(w *wire.Writer, m M) {
		for _, v := range variants {
			if v.write(w, m) {
				return
			}
		}
	}}
}
