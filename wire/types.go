// Package wire implements the protobuf binary wire format: tags, varints,
// fixed-width integers, length-delimited payloads, and the low-level
// Reader/Writer cursors that sit under the spec-driven codec.
package wire

// WireType is the 3-bit wire type carried in every protobuf tag.
type WireType uint8

const (
	Varint    WireType = 0
	Fixed64   WireType = 1
	Bytes     WireType = 2
	StartGrp  WireType = 3 // unsupported: proto2 groups
	EndGrp    WireType = 4 // unsupported: proto2 groups
	Fixed32   WireType = 5
)

// Kind is the field model's type tag for a decoded WireField. Every
// protobuf scalar maps to exactly one Kind, which in turn determines
// how the Reader frames its bytes and whether the field may be packed.
type Kind uint8

const (
	KindVarint Kind = iota
	KindFixed32
	KindFixed64
	KindLengthDelimited
)

// WireTypeOf returns the wire type a Kind is framed with on the wire.
func (k Kind) WireTypeOf() WireType {
	switch k {
	case KindVarint:
		return Varint
	case KindFixed32:
		return Fixed32
	case KindFixed64:
		return Fixed64
	default:
		return Bytes
	}
}

func (k Kind) String() string {
	switch k {
	case KindVarint:
		return "varint"
	case KindFixed32:
		return "fixed32"
	case KindFixed64:
		return "fixed64"
	case KindLengthDelimited:
		return "length-delimited"
	default:
		return "unknown"
	}
}

// FieldNumber is a protobuf field number (the upper bits of a Tag).
type FieldNumber int32

// Tag combines a field number and wire type, as it appears on the wire.
type Tag uint64

// MakeTag builds a Tag from a field number and wire type.
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType))
}

// ParseTag decomposes a Tag into its field number and wire type.
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}

// WireField is the transient, tagged value produced by Reader.ReadField and
// consumed by typed decoders. It lives only within one field-decoding
// step.
type WireField struct {
	Kind Kind

	Varint  uint64
	Fixed32 uint32
	Fixed64 uint64

	// Bytes is the borrowed payload of a LengthDelimited field: a slice into
	// the Reader's underlying buffer (offset, length, data are encoded by
	// the slice header itself). Callers that need to retain data past the
	// Reader's lifetime must copy it out.
	Bytes []byte
}

// RawField is a (tag, value) pair as produced by Reader.ToList, independent
// of any message spec. It exists for debugging.
type RawField struct {
	FieldNumber FieldNumber
	WireField   WireField
}
