package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crackcomm/protoc-plugin-go/ext"
	"github.com/crackcomm/protoc-plugin-go/spec"
	"github.com/crackcomm/protoc-plugin-go/wire"
)

// point stands in for generated code: a small message with a scalar, a
// repeated field, and a nested message, enough to exercise dispatch, the
// ctor's final shape check, and extension capture end to end.
type point struct {
	X        int32
	Y        int32
	Tags     []string
	Children []*point
}

func pointDecodeFields() []spec.DecodeField {
	return []spec.DecodeField{
		spec.Basic(1, spec.Int32(), spec.Proto3[int32]()),
		spec.Basic(2, spec.Int32(), spec.Proto3[int32]()),
		spec.Repeated(3, spec.String()),
		spec.Repeated(4, decodePointSpec()),
	}
}

func decodePointSpec() spec.TypedSpec[*point] {
	return spec.Message(
		func(b []byte) (*point, error) {
			p, _, err := Unmarshal(wire.NewReader(b), pointDecodeFields(), NoExtensions, pointCtor)
			return p, err
		},
		func(p *point) []byte {
			return Marshal(p, pointEncodeFields(), ext.Extensions{}, wire.Balanced)
		},
	)
}

func pointCtor(vals []any) (*point, error) {
	return &point{
		X:        vals[0].(int32),
		Y:        vals[1].(int32),
		Tags:     vals[2].([]string),
		Children: vals[3].([]*point),
	}, nil
}

func pointEncodeFields() []spec.EncodeField[*point] {
	return []spec.EncodeField[*point]{
		spec.BasicField(1, func(p *point) int32 { return p.X }, spec.Int32(), spec.Proto3[int32]()),
		spec.BasicField(2, func(p *point) int32 { return p.Y }, spec.Int32(), spec.Proto3[int32]()),
		spec.RepeatedField(3, func(p *point) []string { return p.Tags }, spec.String(), spec.NotPacked),
		spec.RepeatedField(4, func(p *point) []*point { return p.Children }, decodePointSpec(), spec.NotPacked),
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &point{
		X:    7,
		Y:    -3,
		Tags: []string{"a", "b"},
		Children: []*point{
			{X: 1, Y: 2},
		},
	}

	data := Marshal(in, pointEncodeFields(), ext.Extensions{}, wire.Balanced)

	out, extensions, err := Unmarshal(wire.NewReader(data), pointDecodeFields(), NoExtensions, pointCtor)
	require.NoError(t, err)
	require.Equal(t, 0, extensions.Len())
	require.Equal(t, in, out)
}

func TestMarshalElidesProto3Defaults(t *testing.T) {
	in := &point{}
	data := Marshal(in, pointEncodeFields(), ext.Extensions{}, wire.Balanced)
	require.Empty(t, data)
}

func TestUnmarshalFillsDefaultsAndEmptySlices(t *testing.T) {
	out, _, err := Unmarshal(wire.NewReader(nil), pointDecodeFields(), NoExtensions, pointCtor)
	require.NoError(t, err)
	require.Equal(t, int32(0), out.X)
	require.Equal(t, []string{}, out.Tags)
	require.Equal(t, []*point{}, out.Children)
}

func TestUnmarshalCapturesExtensionRange(t *testing.T) {
	w := wire.NewWriter(wire.Balanced)
	w.WriteTag(1, wire.Varint)
	w.WriteVarint(5)
	w.WriteTag(100, wire.Varint)
	w.WriteVarint(42)

	out, extensions, err := Unmarshal(wire.NewReader(w.Contents()), pointDecodeFields(), func(tag int32) bool { return tag >= 100 }, pointCtor)
	require.NoError(t, err)
	require.Equal(t, int32(5), out.X)
	require.Equal(t, 1, extensions.Len())
	require.Equal(t, int32(100), extensions.Entries()[0].Tag)
}

func TestUnmarshalSkipsUnrecognizedTagOutsideExtensionRange(t *testing.T) {
	w := wire.NewWriter(wire.Balanced)
	w.WriteTag(99, wire.Varint)
	w.WriteVarint(1)

	out, extensions, err := Unmarshal(wire.NewReader(w.Contents()), pointDecodeFields(), NoExtensions, pointCtor)
	require.NoError(t, err)
	require.Equal(t, 0, extensions.Len())
	require.Equal(t, int32(0), out.X)
}

func TestDispatchUsesMapAboveThreshold(t *testing.T) {
	orig := GetConfig()
	defer SetConfig(orig)
	SetConfig(Config{DispatchArrayThreshold: 2})

	fields := []spec.DecodeField{spec.Basic(1000, spec.Int32(), spec.Proto3[int32]())}
	idx := newTagIndex(fields, GetConfig().DispatchArrayThreshold)
	require.NotNil(t, idx.table)
	require.Nil(t, idx.array)

	fieldIdx, ok := idx.lookup(1000)
	require.True(t, ok)
	require.Equal(t, int32(0), fieldIdx)
}
