package example

import (
	"fmt"

	"github.com/crackcomm/protoc-plugin-go/codec"
	"github.com/crackcomm/protoc-plugin-go/ext"
	"github.com/crackcomm/protoc-plugin-go/jsonpb"
	"github.com/crackcomm/protoc-plugin-go/merge"
	"github.com/crackcomm/protoc-plugin-go/spec"
	"github.com/crackcomm/protoc-plugin-go/wire"
)

// Address is a worked example message: a street address on a named Planet.
type Address struct {
	Street string
	Number int32
	Planet Planet
}

const addressFullName = "example.Address"

func addressDecodeFields() []spec.DecodeField {
	return []spec.DecodeField{
		spec.Basic(1, spec.String(), spec.Proto3[string]()),
		spec.Basic(2, spec.Int32(), spec.Proto3[int32]()),
		spec.Basic(3, PlanetSpec(), spec.Proto3[Planet]()),
	}
}

func addressCtor(vals []any) (*Address, error) {
	return &Address{
		Street: vals[0].(string),
		Number: vals[1].(int32),
		Planet: vals[2].(Planet),
	}, nil
}

func addressEncodeFields() []spec.EncodeField[*Address] {
	return []spec.EncodeField[*Address]{
		spec.BasicField(1, func(a *Address) string { return a.Street }, spec.String(), spec.Proto3[string]()),
		spec.BasicField(2, func(a *Address) int32 { return a.Number }, spec.Int32(), spec.Proto3[int32]()),
		spec.BasicField(3, func(a *Address) Planet { return a.Planet }, PlanetSpec(), spec.Proto3[Planet]()),
	}
}

// AddressToProto serializes a into mode's wire bytes.
func AddressToProto(a *Address, mode wire.Mode) []byte {
	return codec.Marshal(a, addressEncodeFields(), ext.Extensions{}, mode)
}

// AddressFromProto deserializes b into an Address.
func AddressFromProto(b []byte) (*Address, error) {
	a, _, err := codec.Unmarshal(wire.NewReader(b), addressDecodeFields(), codec.NoExtensions, addressCtor)
	return a, err
}

// AddressFromProtoExn is AddressFromProto but panics on error.
func AddressFromProtoExn(b []byte) *Address {
	a, err := AddressFromProto(b)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressSpec is the wire TypedSpec generated code uses to nest Address as
// a sub-message field.
func AddressSpec() spec.TypedSpec[*Address] {
	return spec.Message(AddressFromProto, func(a *Address) []byte { return AddressToProto(a, wire.Balanced) })
}

func addressJSONEncodeFields(opts jsonpb.Options) []jsonpb.EncodeField[*Address] {
	return []jsonpb.EncodeField[*Address]{
		jsonpb.BasicField("street", "street", func(a *Address) string { return a.Street }, jsonpb.StringJSON()),
		jsonpb.BasicField("number", "number", func(a *Address) int32 { return a.Number }, jsonpb.Int32JSON()),
		jsonpb.BasicField("planet", "planet", func(a *Address) Planet { return a.Planet },
			jsonpb.EnumJSON(PlanetName, PlanetByName, opts)),
	}
}

func addressJSONDecodeFields(opts jsonpb.Options) []jsonpb.DecodeField {
	return []jsonpb.DecodeField{
		jsonpb.Basic("street", "street", jsonpb.StringJSON()),
		jsonpb.Basic("number", "number", jsonpb.Int32JSON()),
		jsonpb.Basic("planet", "planet", jsonpb.EnumJSON(PlanetName, PlanetByName, opts)),
	}
}

// AddressToJSON renders a per opts, including the canonical proto3 JSON
// default-value elision.
func AddressToJSON(a *Address, opts jsonpb.Options) ([]byte, error) {
	return jsonpb.Marshal(a, addressJSONEncodeFields(opts), opts)
}

// AddressFromJSON parses data, accepting either name/enum spelling
// regardless of opts.
func AddressFromJSON(data []byte, opts jsonpb.Options) (*Address, error) {
	return jsonpb.Unmarshal(data, addressJSONDecodeFields(opts), addressCtor)
}

// AddressJSONSpec is the MessageSpec generated code uses to nest Address
// inside another message's JSON mapping.
func AddressJSONSpec() jsonpb.MessageSpec[Address] {
	return jsonpb.MessageSpec[Address]{
		FromJSON: func(v any, opts jsonpb.Options) (*Address, error) {
			obj, ok := v.(map[string]any)
			if !ok {
				return nil, wire.NewFieldError(wire.KindWrongFieldType, fmt.Errorf("Address: expected JSON object"))
			}
			return jsonpb.UnmarshalObject(obj, addressJSONDecodeFields(opts), addressCtor)
		},
		ToJSON: func(a *Address, opts jsonpb.Options) (any, error) {
			obj := make(map[string]any, 3)
			for _, f := range addressJSONEncodeFields(opts) {
				if err := f.Write(obj, a, opts); err != nil {
					return nil, err
				}
			}
			return obj, nil
		},
	}
}

// MergeAddress merges a and b field by field.
func MergeAddress(a, b *Address) (*Address, error) {
	fields := []merge.Field[*Address]{
		merge.Basic(func(a *Address) string { return a.Street }, ""),
		merge.Basic(func(a *Address) int32 { return a.Number }, 0),
		merge.Basic(func(a *Address) Planet { return a.Planet }, PlanetEarth),
	}
	return merge.Merge(a, b, fields, addressCtor)
}
