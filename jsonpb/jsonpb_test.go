package jsonpb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type coord struct {
	X     int32
	Y     int32
	Tags  []string
	Child *coord
}

func coordEncodeFields() []EncodeField[*coord] {
	return []EncodeField[*coord]{
		BasicField[*coord]("x", "x", func(c *coord) int32 { return c.X }, Int32JSON()),
		BasicField[*coord]("y", "y", func(c *coord) int32 { return c.Y }, Int32JSON()),
		RepeatedField[*coord]("tags", "tags", func(c *coord) []string { return c.Tags }, StringJSON()),
		MessageField[*coord]("child", "child", func(c *coord) *coord { return c.Child }, coordMessageSpec()),
	}
}

func coordDecodeFields(opts Options) []DecodeField {
	return []DecodeField{
		Basic("x", "x", Int32JSON()),
		Basic("y", "y", Int32JSON()),
		Repeated("tags", "tags", StringJSON()),
		Message("child", "child", coordMessageSpec(), opts),
	}
}

func coordCtor(vals []any) (*coord, error) {
	return &coord{
		X:     vals[0].(int32),
		Y:     vals[1].(int32),
		Tags:  vals[2].([]string),
		Child: vals[3].(*coord),
	}, nil
}

func coordMessageSpec() MessageSpec[coord] {
	return MessageSpec[coord]{
		FromJSON: func(v any, opts Options) (*coord, error) {
			obj, ok := v.(map[string]any)
			if !ok {
				return nil, typeErr("object", v)
			}
			return UnmarshalObject(obj, coordDecodeFields(opts), coordCtor)
		},
		ToJSON: func(c *coord, opts Options) (any, error) {
			data, err := Marshal(c, coordEncodeFields(), opts)
			if err != nil {
				return nil, err
			}
			var out any
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}
			return out, nil
		},
	}
}

func TestJSONRoundTripCanonical(t *testing.T) {
	opts := Canonical()
	in := &coord{X: 1, Y: 2, Tags: []string{"a", "b"}, Child: &coord{X: 3}}

	data, err := Marshal(in, coordEncodeFields(), opts)
	require.NoError(t, err)

	out, err := Unmarshal(data, coordDecodeFields(opts), coordCtor)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestJSONOmitsProto3Defaults(t *testing.T) {
	opts := Options{OmitDefaultValues: true}
	in := &coord{}
	data, err := Marshal(in, coordEncodeFields(), opts)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(data))
}

func TestJSONIncludesDefaultsWhenRequested(t *testing.T) {
	opts := Options{OmitDefaultValues: false}
	in := &coord{}
	data, err := Marshal(in, coordEncodeFields(), opts)
	require.NoError(t, err)
	require.JSONEq(t, `{"x":0,"y":0}`, string(data))
}

func TestInt64JSONAcceptsStringAndNumber(t *testing.T) {
	sc := Int64JSON()
	v, err := sc.FromJSON("42")
	require.NoError(t, err)
	require.Equal(t, int64(42), v)

	v, err = sc.FromJSON(float64(7))
	require.NoError(t, err)
	require.Equal(t, int64(7), v)

	require.Equal(t, "42", sc.ToJSON(42))
}

func TestBoolJSONAcceptsStringForm(t *testing.T) {
	sc := BoolJSON()
	v, err := sc.FromJSON("true")
	require.NoError(t, err)
	require.True(t, v)
}

func TestBytesJSONBase64(t *testing.T) {
	sc := BytesJSON()
	got := sc.ToJSON([]byte("hi"))
	require.Equal(t, "aGk=", got)
	v, err := sc.FromJSON("aGk=")
	require.NoError(t, err)
	require.Equal(t, []byte("hi"), v)
}
