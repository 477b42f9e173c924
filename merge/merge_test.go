package merge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crackcomm/protoc-plugin-go/spec"
)

type box struct {
	X      int32
	Tags   []string
	Attrs  []spec.Pair[string, int32]
	Nested *box
}

func boxFields() []Field[*box] {
	return []Field[*box]{
		Basic(func(b *box) int32 { return b.X }, 0),
		Repeated(func(b *box) []string { return b.Tags }),
		MapField(func(b *box) []spec.Pair[string, int32] { return b.Attrs }),
		MessageField(func(b *box) *box { return b.Nested }, func(a, b *box) *box {
			m, _ := Merge(a, b, boxFields(), boxCtor)
			return m
		}),
	}
}

func boxCtor(vals []any) (*box, error) {
	return &box{
		X:      vals[0].(int32),
		Tags:   vals[1].([]string),
		Attrs:  vals[2].([]spec.Pair[string, int32]),
		Nested: vals[3].(*box),
	}, nil
}

func TestMergeScalarBOverwritesWhenNonZero(t *testing.T) {
	a := &box{X: 1}
	b := &box{X: 0}
	out, err := Merge(a, b, boxFields(), boxCtor)
	require.NoError(t, err)
	require.Equal(t, int32(1), out.X)

	b.X = 5
	out, err = Merge(a, b, boxFields(), boxCtor)
	require.NoError(t, err)
	require.Equal(t, int32(5), out.X)
}

func TestMergeRepeatedConcatenates(t *testing.T) {
	a := &box{Tags: []string{"a", "b"}}
	b := &box{Tags: []string{"c"}}
	out, err := Merge(a, b, boxFields(), boxCtor)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, out.Tags)
}

func TestMergeMapOverwritesByKeyPreservingOrder(t *testing.T) {
	a := &box{Attrs: []spec.Pair[string, int32]{{Key: "k1", Value: 1}, {Key: "k2", Value: 2}}}
	b := &box{Attrs: []spec.Pair[string, int32]{{Key: "k1", Value: 9}, {Key: "k3", Value: 3}}}
	out, err := Merge(a, b, boxFields(), boxCtor)
	require.NoError(t, err)
	require.Equal(t, []spec.Pair[string, int32]{
		{Key: "k1", Value: 9},
		{Key: "k2", Value: 2},
		{Key: "k3", Value: 3},
	}, out.Attrs)
}

func TestMergeNestedMessageRecurses(t *testing.T) {
	a := &box{Nested: &box{X: 1, Tags: []string{"x"}}}
	b := &box{Nested: &box{Tags: []string{"y"}}}
	out, err := Merge(a, b, boxFields(), boxCtor)
	require.NoError(t, err)
	require.Equal(t, int32(1), out.Nested.X)
	require.Equal(t, []string{"x", "y"}, out.Nested.Tags)
}

func TestMergeIdempotentWithZeroValue(t *testing.T) {
	a := &box{X: 7, Tags: []string{"a"}}
	zero := &box{}

	out, err := Merge(a, zero, boxFields(), boxCtor)
	require.NoError(t, err)
	require.Equal(t, a.X, out.X)
	require.Equal(t, a.Tags, out.Tags)

	out, err = Merge(zero, a, boxFields(), boxCtor)
	require.NoError(t, err)
	require.Equal(t, a.X, out.X)
	require.Equal(t, a.Tags, out.Tags)
}
