package wellknown

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDurationJSONRoundTrip(t *testing.T) {
	cases := []struct {
		d    Duration
		want string
	}{
		{Duration{Seconds: 1000, Nanos: 123456}, `"1000.000123456s"`},
		{Duration{Seconds: -1000, Nanos: -123456}, `"-1000.000123456s"`},
		{Duration{}, `"0s"`},
		{Duration{Seconds: -1}, `"-1s"`},
	}
	for _, c := range cases {
		got, err := c.d.MarshalJSON()
		require.NoError(t, err)
		require.Equal(t, c.want, string(got))

		var back Duration
		require.NoError(t, back.UnmarshalJSON(got))
		require.Equal(t, c.d, back)
	}
}

func TestDurationParseShortForms(t *testing.T) {
	sec, nanos, err := ParseDuration("1.5s")
	require.NoError(t, err)
	require.Equal(t, int64(1), sec)
	require.Equal(t, int32(500000000), nanos)

	sec, nanos, err = ParseDuration("-1.5s")
	require.NoError(t, err)
	require.Equal(t, int64(-1), sec)
	require.Equal(t, int32(-500000000), nanos)
}

func TestTimestampJSONRoundTrip(t *testing.T) {
	ts := Timestamp{Seconds: 1709931283, Nanos: 500000001}
	got, err := ts.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"2024-03-08T20:54:43.500000001Z"`, string(got))

	var back Timestamp
	require.NoError(t, back.UnmarshalJSON(got))
	require.Equal(t, ts, back)
}

func TestFieldMaskJSONRoundTrip(t *testing.T) {
	fm := FieldMask{Paths: []string{"foo_bar", "baz"}}
	got, err := fm.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"fooBar,baz"`, string(got))

	var back FieldMask
	require.NoError(t, back.UnmarshalJSON(got))
	require.Equal(t, fm, back)
}

func TestWrapperUnwrapsToBareScalar(t *testing.T) {
	sv := StringValue{Value: "hi"}
	got, err := sv.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"hi"`, string(got))

	var back StringValue
	require.NoError(t, back.UnmarshalJSON(got))
	require.Equal(t, sv, back)
}

func TestInt64ValueUsesStringMapping(t *testing.T) {
	iv := Int64Value{Value: 9223372036854775807}
	got, err := iv.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"9223372036854775807"`, string(got))

	var back Int64Value
	require.NoError(t, back.UnmarshalJSON(got))
	require.Equal(t, iv, back)

	// also accepts a bare JSON number on parse
	var fromNumber Int64Value
	require.NoError(t, fromNumber.UnmarshalJSON([]byte("42")))
	require.Equal(t, int64(42), fromNumber.Value)
}

func TestEmptyMarshalsToEmptyObject(t *testing.T) {
	got, err := Empty{}.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, "{}", string(got))
}

func TestValueUnwrapsActiveOneofVariant(t *testing.T) {
	v := Value{Kind: ValueKindString, StringValue: "hi"}
	got, err := v.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"hi"`, string(got))

	var back Value
	require.NoError(t, back.UnmarshalJSON(got))
	require.Equal(t, v, back)

	null := Value{Kind: ValueKindNull}
	got, err = null.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, "null", string(got))
}

func TestStructRoundTrip(t *testing.T) {
	s := Struct{Fields: map[string]*Value{
		"a": {Kind: ValueKindNumber, NumberValue: 1},
	}}
	got, err := json.Marshal(s)
	require.NoError(t, err)

	var back Struct
	require.NoError(t, json.Unmarshal(got, &back))
	require.Equal(t, s, back)
}

type stubResolver struct{}

func (stubResolver) ToJSON(typeName string, binary []byte) (map[string]any, error) {
	return map[string]any{"raw": string(binary)}, nil
}

func (stubResolver) FromJSON(typeName string, obj map[string]any) ([]byte, error) {
	s, _ := obj["raw"].(string)
	return []byte(s), nil
}

func TestAnyJSONRoundTripWithResolver(t *testing.T) {
	a := Any{TypeURL: "type.googleapis.com/demo.Point", Value: []byte("payload")}
	got, err := a.MarshalJSONWith(stubResolver{})
	require.NoError(t, err)

	var back Any
	require.NoError(t, back.UnmarshalJSONWith(got, stubResolver{}))
	require.Equal(t, a, back)
}
