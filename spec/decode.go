package spec

import (
	"fmt"

	"github.com/crackcomm/protoc-plugin-go/wire"
)

// Slot is a sentinel: a single-field accumulator created, written, and
// read within one deserialize call.
// receive is invoked once per wire occurrence of one of the owning
// DecodeField's tags; get finalizes the slot once the message is exhausted.
type Slot interface {
	Receive(tag int32, wf wire.WireField) error
	Get() (any, error)
}

// DecodeField is one entry of a deserialize-side field list. It is untyped
// at this level: decoding produces a plain `any` per field, in list order,
// which generated code's constructor (Ctor) then type-asserts back out.
// That constructor is the final shape check for a heterogeneous typed list
// in a language without higher-kinded generics.
type DecodeField struct {
	tags    []int32
	newSlot func() Slot
}

// Tags returns every wire tag this field owns. Singular/repeated/map fields
// own exactly one; a Oneof owns one per variant.
func (f DecodeField) Tags() []int32 { return f.tags }

// NewSlot creates a fresh Slot for one deserialize call. Package codec calls
// this at most once per field per Unmarshal: when the first wire occurrence
// of an owned tag arrives (routing that and every later occurrence to the
// Slot's Receive), or at finalization if none arrived.
func (f DecodeField) NewSlot() Slot { return f.newSlot() }

func single(tag int32, newSlot func() Slot) DecodeField {
	return DecodeField{tags: []int32{tag}, newSlot: newSlot}
}

// --- Basic / BasicOpt / BasicReq ---

type basicSlot[T any] struct {
	ts    TypedSpec[T]
	def   Default[T]
	value T
	set   bool
}

func (s *basicSlot[T]) Receive(_ int32, wf wire.WireField) error {
	v, err := s.ts.DecodeWF(wf)
	if err != nil {
		return err
	}
	s.value, s.set = v, true
	return nil
}

func (s *basicSlot[T]) Get() (any, error) {
	if s.set {
		return s.value, nil
	}
	val, required := s.def.fill(s.ts.Zero)
	if required {
		return nil, wire.NewFieldError(wire.KindRequiredFieldMissing, fmt.Errorf("required field missing"))
	}
	return val, nil
}

// Basic decodes a singular scalar/message field, filling T's default or
// failing with RequiredFieldMissing per def when absent.
func Basic[T any](tag int32, ts TypedSpec[T], def Default[T]) DecodeField {
	return single(tag, func() Slot { return &basicSlot[T]{ts: ts, def: def} })
}

// BasicReq decodes a proto2 required field; convenience for Basic with a
// Required default.
func BasicReq[T any](tag int32, ts TypedSpec[T]) DecodeField {
	return Basic(tag, ts, Required[T]())
}

type basicOptSlot[T any] struct {
	ts    TypedSpec[T]
	value T
	set   bool
}

func (s *basicOptSlot[T]) Receive(_ int32, wf wire.WireField) error {
	v, err := s.ts.DecodeWF(wf)
	if err != nil {
		return err
	}
	s.value, s.set = v, true
	return nil
}

func (s *basicOptSlot[T]) Get() (any, error) {
	if !s.set {
		return (*T)(nil), nil
	}
	v := s.value
	return &v, nil
}

// BasicOpt decodes a proto2/proto3 `optional` field, returning a *T so
// absence is distinguishable from the zero value.
func BasicOpt[T any](tag int32, ts TypedSpec[T]) DecodeField {
	return single(tag, func() Slot { return &basicOptSlot[T]{ts: ts} })
}

// --- Repeated ---

type repeatedSlot[T any] struct {
	ts     TypedSpec[T]
	values []T
}

func (s *repeatedSlot[T]) Receive(_ int32, wf wire.WireField) error {
	// A packed encoding of a scalar repeated field arrives as a single
	// LengthDelimited occurrence even though the element kind is
	// Varint/Fixed32/Fixed64; re-read its inner buffer as a stream of that
	// kind.
	if wf.Kind == wire.KindLengthDelimited && s.ts.FieldKind != wire.KindLengthDelimited {
		r := wire.NewReader(wf.Bytes)
		for r.HasMore() {
			elem, err := decodeBarePrimitive(r, s.ts)
			if err != nil {
				return err
			}
			s.values = append(s.values, elem)
		}
		return nil
	}
	v, err := s.ts.DecodeWF(wf)
	if err != nil {
		return err
	}
	s.values = append(s.values, v)
	return nil
}

func (s *repeatedSlot[T]) Get() (any, error) {
	if s.values == nil {
		return []T{}, nil
	}
	return s.values, nil
}

// decodeBarePrimitive reads one element of a packed repeated scalar from r:
// the wire framing for a packed element carries no tag, only the kind's
// raw payload, so it is read directly rather than via Reader.ReadField.
func decodeBarePrimitive[T any](r *wire.Reader, ts TypedSpec[T]) (T, error) {
	var zero T
	switch ts.FieldKind {
	case wire.KindVarint:
		v, err := r.ReadVarint()
		if err != nil {
			return zero, err
		}
		return ts.DecodeWF(wire.WireField{Kind: wire.KindVarint, Varint: v})
	case wire.KindFixed32:
		v, err := r.ReadFixed32()
		if err != nil {
			return zero, err
		}
		return ts.DecodeWF(wire.WireField{Kind: wire.KindFixed32, Fixed32: v})
	case wire.KindFixed64:
		v, err := r.ReadFixed64()
		if err != nil {
			return zero, err
		}
		return ts.DecodeWF(wire.WireField{Kind: wire.KindFixed64, Fixed64: v})
	default:
		return zero, wire.NewFieldError(wire.KindIllegalValue, fmt.Errorf("%s is not packable", ts.FieldKind))
	}
}

// Repeated decodes a repeated scalar, enum, or message field. Packed and
// unpacked wire occurrences of the same tag concatenate in wire order; the
// caller does not choose a mode on the decode side since both are always
// accepted.
func Repeated[T any](tag int32, ts TypedSpec[T]) DecodeField {
	return single(tag, func() Slot { return &repeatedSlot[T]{ts: ts} })
}

// --- Map ---

type mapSlot[K comparable, V any] struct {
	keySpec   TypedSpec[K]
	valueSpec TypedSpec[V]
	pairs     []Pair[K, V]
	index     map[K]int
}

func (s *mapSlot[K, V]) Receive(_ int32, wf wire.WireField) error {
	if wf.Kind != wire.KindLengthDelimited {
		return wrongType(wire.KindLengthDelimited, wf)
	}
	r := wire.NewReader(wf.Bytes)
	key := s.keySpec.Zero
	val := s.valueSpec.Zero
	for r.HasMore() {
		fieldNumber, ewf, err := r.ReadField()
		if err != nil {
			return err
		}
		switch fieldNumber {
		case 1:
			if key, err = s.keySpec.DecodeWF(ewf); err != nil {
				return wire.WrapField(err, "key")
			}
		case 2:
			if val, err = s.valueSpec.DecodeWF(ewf); err != nil {
				return wire.WrapField(err, "value")
			}
		default:
			// Already consumed by ReadField; unknown entry fields are
			// skipped silently, matching message-level unknown handling.
		}
	}
	if s.index == nil {
		s.index = make(map[K]int)
	}
	if idx, ok := s.index[key]; ok {
		s.pairs[idx].Value = val
	} else {
		s.index[key] = len(s.pairs)
		s.pairs = append(s.pairs, Pair[K, V]{Key: key, Value: val})
	}
	return nil
}

func (s *mapSlot[K, V]) Get() (any, error) {
	if s.pairs == nil {
		return []Pair[K, V]{}, nil
	}
	return s.pairs, nil
}

// Map decodes a map field, modeled as Repeated over a synthetic two-field
// entry message (key=tag 1, value=tag 2), collapsing duplicate keys to the
// last occurrence while preserving first-seen order.
func Map[K comparable, V any](tag int32, keySpec TypedSpec[K], valueSpec TypedSpec[V]) DecodeField {
	return single(tag, func() Slot { return &mapSlot[K, V]{keySpec: keySpec, valueSpec: valueSpec} })
}

// --- Oneof ---

// OneofValue is the decode result of a Oneof field: Case is the index into
// the variant list passed to Oneof (or -1 if no variant was present on the
// wire), and Value is that variant's decoded payload. Generated code turns
// this into a closed tagged union with a NotSet case.
type OneofValue struct {
	Case  int
	Value any
}

// OneofVariant is one member of a Oneof, built by OneofElem.
type OneofVariant struct {
	tag    int32
	decode func(wf wire.WireField) (any, error)
}

// OneofElem builds one Oneof variant from its tag and TypedSpec.
func OneofElem[T any](tag int32, ts TypedSpec[T]) OneofVariant {
	return OneofVariant{tag: tag, decode: func(wf wire.WireField) (any, error) { return ts.DecodeWF(wf) }}
}

type oneofSlot struct {
	variants []OneofVariant
	caseIdx  int
	value    any
}

func (s *oneofSlot) Receive(tag int32, wf wire.WireField) error {
	for i, v := range s.variants {
		if v.tag == tag {
			val, err := v.decode(wf)
			if err != nil {
				return err
			}
			// Last-wins: a later occurrence of any variant (same or
			// different) overwrites whatever was set before it.
			s.caseIdx, s.value = i, val
			return nil
		}
	}
	return wire.NewFieldError(wire.KindWrongFieldType, fmt.Errorf("tag %d is not a declared oneof variant", tag))
}

func (s *oneofSlot) Get() (any, error) {
	return OneofValue{Case: s.caseIdx, Value: s.value}, nil
}

// Oneof decodes a group of fields of which at most one may be set,
// last-occurrence-wins across all variants.
func Oneof(variants ...OneofVariant) DecodeField {
	tags := make([]int32, len(variants))
	for i, v := range variants {
		tags[i] = v.tag
	}
	return DecodeField{
		tags:    tags,
		newSlot: func() Slot { return &oneofSlot{variants: variants, caseIdx: -1} },
	}
}
