package example

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crackcomm/protoc-plugin-go/jsonpb"
	"github.com/crackcomm/protoc-plugin-go/spec"
	"github.com/crackcomm/protoc-plugin-go/wire"
)

func samplePerson() *Person {
	return &Person{
		Name: "Ada",
		Age:  36,
		Tags: []int32{1, 2, 3},
		Home: &Address{Street: "Main", Number: 42, Planet: PlanetMars},
		Metadata: []spec.Pair[string, string]{
			{Key: "role", Value: "engineer"},
		},
		Contact: ContactEmail,
		Email:   "ada@example.com",
	}
}

// TestPersonBinaryRoundTrip exercises a binary round-trip across every
// field-combinator variant at once: scalar, repeated, nested message, map,
// oneof.
func TestPersonBinaryRoundTrip(t *testing.T) {
	in := samplePerson()
	data := PersonToProto(in, wire.Balanced)
	out, err := PersonFromProto(data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

// TestPersonPackedUnpackedEquivalence checks that decoding a packed and a
// non-packed encoding of the same repeated scalar field yields equal
// values.
func TestPersonPackedUnpackedEquivalence(t *testing.T) {
	packed := wire.NewWriter(wire.Balanced)
	packed.WriteTag(3, wire.Bytes)
	inner := wire.NewWriter(wire.Balanced)
	inner.WriteVarint(1)
	inner.WriteVarint(2)
	inner.WriteVarint(3)
	packed.WriteLengthDelimited(inner.Contents())

	unpacked := wire.NewWriter(wire.Balanced)
	for _, v := range []uint64{1, 2, 3} {
		unpacked.WriteTag(3, wire.Varint)
		unpacked.WriteVarint(v)
	}

	fromPacked, err := PersonFromProto(packed.Contents())
	require.NoError(t, err)
	fromUnpacked, err := PersonFromProto(unpacked.Contents())
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, fromPacked.Tags)
	require.Equal(t, fromUnpacked.Tags, fromPacked.Tags)
}

// TestPersonMixedPackedAndUnpackedConcatenate checks that mixing packed
// and unpacked occurrences of the same tag is legal and all elements
// concatenate.
func TestPersonMixedPackedAndUnpackedConcatenate(t *testing.T) {
	w := wire.NewWriter(wire.Balanced)
	w.WriteTag(3, wire.Varint)
	w.WriteVarint(9)
	inner := wire.NewWriter(wire.Balanced)
	inner.WriteVarint(1)
	inner.WriteVarint(2)
	w.WriteTag(3, wire.Bytes)
	w.WriteLengthDelimited(inner.Contents())

	out, err := PersonFromProto(w.Contents())
	require.NoError(t, err)
	require.Equal(t, []int32{9, 1, 2}, out.Tags)
}

// TestPersonOneofExclusivity checks that if two variants of the same
// oneof appear on the wire, only the last is retained.
func TestPersonOneofExclusivity(t *testing.T) {
	w := wire.NewWriter(wire.Balanced)
	w.WriteTag(6, wire.Bytes)
	w.WriteLengthDelimited([]byte("first@example.com"))
	w.WriteTag(7, wire.Bytes)
	w.WriteLengthDelimited([]byte("555-1234"))

	out, err := PersonFromProto(w.Contents())
	require.NoError(t, err)
	require.Equal(t, ContactPhone, out.Contact)
	require.Equal(t, "555-1234", out.PhoneNumber)
	require.Empty(t, out.Email)
}

// TestPersonUnknownFieldTolerance checks that appending a synthetic
// unknown tag to valid bytes does not change the decoded message's known
// fields; within the declared extension range it is instead preserved in
// Extensions.
func TestPersonUnknownFieldTolerance(t *testing.T) {
	in := samplePerson()
	data := PersonToProto(in, wire.Balanced)

	w := wire.NewWriter(wire.Balanced)
	w.WriteTag(50, wire.Varint) // outside the declared extension range
	w.WriteVarint(999)
	data = append(data, w.Contents()...)

	out, err := PersonFromProto(data)
	require.NoError(t, err)
	require.Equal(t, in.Name, out.Name)
	require.Equal(t, in.Age, out.Age)
	require.Equal(t, in.Tags, out.Tags)
	require.Equal(t, 0, out.Extensions.Len())
}

// TestPersonExtensionRoundTrip checks that a tag within the declared
// extension range round-trips through preserved Extensions, and the typed
// accessor decodes it.
func TestPersonExtensionRoundTrip(t *testing.T) {
	in := samplePerson()
	SetExtraNote(in, "handle with care")

	data := PersonToProto(in, wire.Balanced)
	out, err := PersonFromProto(data)
	require.NoError(t, err)

	note, ok, err := GetExtraNote(out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "handle with care", note)

	// Known fields are unaffected by the extension's presence.
	require.Equal(t, in.Name, out.Name)
}

// TestPersonMergeConcatEquivalence checks, including the extension
// sideband, that merge(a, b) == from_proto(to_proto(a) ++ to_proto(b)).
func TestPersonMergeConcatEquivalence(t *testing.T) {
	a := samplePerson()
	SetExtraNote(a, "from a")
	b := &Person{Name: "", Age: 1, Tags: []int32{4}, Contact: ContactPhone, PhoneNumber: "555-0000"}

	merged, err := MergePerson(a, b)
	require.NoError(t, err)

	concat := append(PersonToProto(a, wire.Balanced), PersonToProto(b, wire.Balanced)...)
	decoded, err := PersonFromProto(concat)
	require.NoError(t, err)

	require.Equal(t, decoded.Name, merged.Name)
	require.Equal(t, decoded.Age, merged.Age)
	require.Equal(t, decoded.Tags, merged.Tags)
	require.Equal(t, decoded.Contact, merged.Contact)
	require.Equal(t, decoded.PhoneNumber, merged.PhoneNumber)
}

// TestPersonJSONRoundTrip exercises a JSON round-trip across the message
// that combines every JSON-side combinator (map, repeated, nested message,
// oneof) together.
func TestPersonJSONRoundTrip(t *testing.T) {
	in := samplePerson()
	opts := jsonpb.Canonical()
	data, err := PersonToJSON(in, opts)
	require.NoError(t, err)
	out, err := PersonFromJSON(data, opts)
	require.NoError(t, err)
	require.Equal(t, in.Name, out.Name)
	require.Equal(t, in.Age, out.Age)
	require.Equal(t, in.Tags, out.Tags)
	require.Equal(t, in.Home, out.Home)
	require.Equal(t, in.Metadata, out.Metadata)
	require.Equal(t, in.Contact, out.Contact)
	require.Equal(t, in.Email, out.Email)
}
