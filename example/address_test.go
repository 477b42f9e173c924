package example

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crackcomm/protoc-plugin-go/jsonpb"
	"github.com/crackcomm/protoc-plugin-go/wire"
)

// TestAddressBinaryRoundTrip checks the glossary's worked example round-trips
// through the wire format: from_proto(to_proto(m)) == m.
func TestAddressBinaryRoundTrip(t *testing.T) {
	in := &Address{Street: "Main", Number: 42, Planet: PlanetMars}
	data := AddressToProto(in, wire.Balanced)
	out, err := AddressFromProto(data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

// TestAddressProto3DefaultsEncodeToZeroBytes checks that an all-default
// proto3 Address elides every field.
func TestAddressProto3DefaultsEncodeToZeroBytes(t *testing.T) {
	in := &Address{Street: "", Number: 0, Planet: PlanetEarth}
	data := AddressToProto(in, wire.Balanced)
	require.Empty(t, data)

	out, err := AddressFromProto(data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

// TestAddressWriterModeEquivalence checks that all three Writer modes
// produce byte-identical output.
func TestAddressWriterModeEquivalence(t *testing.T) {
	in := &Address{Street: "Baker Street", Number: 221, Planet: PlanetVenus}
	speed := AddressToProto(in, wire.Speed)
	space := AddressToProto(in, wire.Space)
	balanced := AddressToProto(in, wire.Balanced)
	require.Equal(t, speed, space)
	require.Equal(t, space, balanced)
}

// TestAddressJSONRoundTrip checks JSON round-tripping with no Options set,
// with each Options flag set on its own (camelCase/proto names, enum
// names/numbers, default elision), and with all of them (Canonical).
func TestAddressJSONRoundTrip(t *testing.T) {
	in := &Address{Street: "Main", Number: 42, Planet: PlanetMars}

	optionSets := []jsonpb.Options{
		{},
		{JSONNames: true},
		{EnumNames: true},
		{OmitDefaultValues: true},
		jsonpb.Canonical(),
	}
	for _, opts := range optionSets {
		data, err := AddressToJSON(in, opts)
		require.NoError(t, err)
		out, err := AddressFromJSON(data, opts)
		require.NoError(t, err)
		require.Equal(t, in, out)
	}
}

// TestAddressMergeConcatEquivalence checks that merging two values equals
// decoding the concatenation of their wire encodings.
func TestAddressMergeConcatEquivalence(t *testing.T) {
	a := &Address{Street: "First Ave", Number: 1}
	b := &Address{Number: 2, Planet: PlanetMars}

	merged, err := MergeAddress(a, b)
	require.NoError(t, err)

	concat := append(AddressToProto(a, wire.Balanced), AddressToProto(b, wire.Balanced)...)
	decoded, err := AddressFromProto(concat)
	require.NoError(t, err)

	require.Equal(t, decoded, merged)
}

// TestAddressMergeIdentity checks that merging with a zero-valued message
// is an identity operation on either side.
func TestAddressMergeIdentity(t *testing.T) {
	m := &Address{Street: "Elm", Number: 9, Planet: PlanetVenus}
	zero := &Address{}

	out, err := MergeAddress(m, zero)
	require.NoError(t, err)
	require.Equal(t, m, out)

	out, err = MergeAddress(zero, m)
	require.NoError(t, err)
	require.Equal(t, m, out)
}
