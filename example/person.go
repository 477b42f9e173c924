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

// ContactCase discriminates Person's "contact" oneof.
type ContactCase int

const (
	ContactNotSet ContactCase = iota
	ContactEmail
	ContactPhone
)

// Person is the glossary's second worked example message: it nests Address,
// carries a repeated scalar (packable), a string-keyed map, and a oneof, so
// that every field-combinator variant is exercised end to end by one
// message pair alongside Address's plain scalars.
type Person struct {
	Name     string
	Age      int32
	Tags     []int32 // packed repeated int32
	Home     *Address
	Metadata []spec.Pair[string, string]

	Contact      ContactCase
	Email        string
	PhoneNumber  string

	Extensions ext.Extensions
}

const personFullName = "example.Person"

// personExtensionRangeStart..End mirrors a proto2 `extensions 100 to 199`
// declaration; tags in this range that aren't one of the fields above are
// preserved rather than dropped.
const (
	personExtensionRangeStart = 100
	personExtensionRangeEnd   = 199
)

func personIsExtension(tag int32) bool {
	return tag >= personExtensionRangeStart && tag <= personExtensionRangeEnd
}

func personDecodeFields() []spec.DecodeField {
	return []spec.DecodeField{
		spec.Basic(1, spec.String(), spec.Proto3[string]()),
		spec.Basic(2, spec.Int32(), spec.Proto3[int32]()),
		spec.Repeated(3, spec.Int32()),
		spec.Basic(4, AddressSpec(), spec.Proto3[*Address]()),
		spec.Map(5, spec.String(), spec.String()),
		spec.Oneof(
			spec.OneofElem(6, spec.String()),
			spec.OneofElem(7, spec.String()),
		),
	}
}

func personCtor(vals []any) (*Person, error) {
	p := &Person{
		Name:     vals[0].(string),
		Age:      vals[1].(int32),
		Tags:     vals[2].([]int32),
		Home:     vals[3].(*Address),
		Metadata: vals[4].([]spec.Pair[string, string]),
	}
	oneof := vals[5].(spec.OneofValue)
	switch oneof.Case {
	case 0:
		p.Contact = ContactEmail
		p.Email = oneof.Value.(string)
	case 1:
		p.Contact = ContactPhone
		p.PhoneNumber = oneof.Value.(string)
	default:
		p.Contact = ContactNotSet
	}
	return p, nil
}

func personEncodeFields() []spec.EncodeField[*Person] {
	return []spec.EncodeField[*Person]{
		spec.BasicField(1, func(p *Person) string { return p.Name }, spec.String(), spec.Proto3[string]()),
		spec.BasicField(2, func(p *Person) int32 { return p.Age }, spec.Int32(), spec.Proto3[int32]()),
		spec.RepeatedField(3, func(p *Person) []int32 { return p.Tags }, spec.Int32(), spec.Packed),
		spec.MessageField(4, func(p *Person) *Address { return p.Home }, AddressSpec()),
		spec.MapField(5, func(p *Person) []spec.Pair[string, string] { return p.Metadata }, spec.String(), spec.String()),
		spec.OneofField(
			spec.EncodeOneofElem(6, func(p *Person) (string, bool) { return p.Email, p.Contact == ContactEmail }, spec.String()),
			spec.EncodeOneofElem(7, func(p *Person) (string, bool) { return p.PhoneNumber, p.Contact == ContactPhone }, spec.String()),
		),
	}
}

// PersonToProto serializes p into mode's wire bytes, re-emitting any
// preserved extensions after the declared fields.
func PersonToProto(p *Person, mode wire.Mode) []byte {
	return codec.Marshal(p, personEncodeFields(), p.Extensions, mode)
}

// PersonFromProto deserializes b into a Person, capturing any tag within
// the declared extension range that isn't one of its own fields.
func PersonFromProto(b []byte) (*Person, error) {
	p, extensions, err := codec.Unmarshal(wire.NewReader(b), personDecodeFields(), personIsExtension, personCtor)
	if err != nil {
		return nil, err
	}
	p.Extensions = extensions
	return p, nil
}

// PersonFromProtoExn is PersonFromProto but panics on error.
func PersonFromProtoExn(b []byte) *Person {
	p, err := PersonFromProto(b)
	if err != nil {
		panic(err)
	}
	return p
}

// PersonSpec is the wire TypedSpec generated code uses to nest Person as a
// sub-message field.
func PersonSpec() spec.TypedSpec[*Person] {
	return spec.Message(PersonFromProto, func(p *Person) []byte { return PersonToProto(p, wire.Balanced) })
}

func personJSONEncodeFields() []jsonpb.EncodeField[*Person] {
	return []jsonpb.EncodeField[*Person]{
		jsonpb.BasicField("name", "name", func(p *Person) string { return p.Name }, jsonpb.StringJSON()),
		jsonpb.BasicField("age", "age", func(p *Person) int32 { return p.Age }, jsonpb.Int32JSON()),
		jsonpb.RepeatedField("tags", "tags", func(p *Person) []int32 { return p.Tags }, jsonpb.Int32JSON()),
		jsonpb.MessageField("home", "home", func(p *Person) *Address { return p.Home }, AddressJSONSpec()),
		jsonpb.MapField("metadata", "metadata", func(p *Person) []spec.Pair[string, string] { return p.Metadata },
			func(k string) string { return k }, jsonpb.StringJSON()),
		jsonpb.OneofField(
			jsonpb.EncodeOneofElem("email", "email", func(p *Person) (string, bool) { return p.Email, p.Contact == ContactEmail }, jsonpb.StringJSON()),
			jsonpb.EncodeOneofElem("phone_number", "phoneNumber", func(p *Person) (string, bool) { return p.PhoneNumber, p.Contact == ContactPhone }, jsonpb.StringJSON()),
		),
	}
}

func personJSONDecodeFields(opts jsonpb.Options) []jsonpb.DecodeField {
	return []jsonpb.DecodeField{
		jsonpb.Basic("name", "name", jsonpb.StringJSON()),
		jsonpb.Basic("age", "age", jsonpb.Int32JSON()),
		jsonpb.Repeated("tags", "tags", jsonpb.Int32JSON()),
		jsonpb.Message("home", "home", AddressJSONSpec(), opts),
		jsonpb.Map("metadata", "metadata", func(k string) (string, error) { return k, nil }, jsonpb.StringJSON()),
		jsonpb.Oneof(
			jsonpb.OneofElem("email", "email", jsonpb.StringJSON()),
			jsonpb.OneofElem("phone_number", "phoneNumber", jsonpb.StringJSON()),
		),
	}
}

func personJSONCtor(vals []any) (*Person, error) {
	p := &Person{
		Name:     vals[0].(string),
		Age:      vals[1].(int32),
		Tags:     vals[2].([]int32),
		Home:     vals[3].(*Address),
		Metadata: vals[4].([]spec.Pair[string, string]),
	}
	oneof := vals[5].(jsonpb.OneofValue)
	switch oneof.Case {
	case 0:
		p.Contact = ContactEmail
		p.Email = oneof.Value.(string)
	case 1:
		p.Contact = ContactPhone
		p.PhoneNumber = oneof.Value.(string)
	default:
		p.Contact = ContactNotSet
	}
	return p, nil
}

// PersonToJSON renders p per opts.
func PersonToJSON(p *Person, opts jsonpb.Options) ([]byte, error) {
	return jsonpb.Marshal(p, personJSONEncodeFields(), opts)
}

// PersonFromJSON parses data, accepting either name/enum spelling regardless
// of opts.
func PersonFromJSON(data []byte, opts jsonpb.Options) (*Person, error) {
	return jsonpb.Unmarshal(data, personJSONDecodeFields(opts), personJSONCtor)
}

// PersonJSONSpec is the MessageSpec generated code uses to nest Person
// inside another message's JSON mapping.
func PersonJSONSpec() jsonpb.MessageSpec[Person] {
	return jsonpb.MessageSpec[Person]{
		FromJSON: func(v any, opts jsonpb.Options) (*Person, error) {
			obj, ok := v.(map[string]any)
			if !ok {
				return nil, wire.NewFieldError(wire.KindWrongFieldType, fmt.Errorf("Person: expected JSON object"))
			}
			return jsonpb.UnmarshalObject(obj, personJSONDecodeFields(opts), personJSONCtor)
		},
		ToJSON: func(p *Person, opts jsonpb.Options) (any, error) {
			obj := make(map[string]any, 6)
			for _, f := range personJSONEncodeFields() {
				if err := f.Write(obj, p, opts); err != nil {
					return nil, err
				}
			}
			return obj, nil
		},
	}
}

// GetExtraNote reads a proto2-style extension field (tag 150, a string)
// attached to p's preserved Extensions sideband, the generated accessor
// pattern.
func GetExtraNote(p *Person) (string, bool, error) {
	return ext.Get(p.Extensions, 150, spec.String())
}

// SetExtraNote sets the tag-150 string extension on p.
func SetExtraNote(p *Person, note string) {
	ext.Set(&p.Extensions, 150, spec.String(), note)
}

// MergePerson merges a and b field by field, including their preserved
// extensions: b's entries are appended after a's, as decoding the
// concatenated encodings would capture them, so ext.Get (which reads the
// last entry for a tag) returns b's value where both carry the same tag.
func MergePerson(a, b *Person) (*Person, error) {
	fields := []merge.Field[*Person]{
		merge.Basic(func(p *Person) string { return p.Name }, ""),
		merge.Basic(func(p *Person) int32 { return p.Age }, 0),
		merge.Repeated(func(p *Person) []int32 { return p.Tags }),
		merge.MessageField(func(p *Person) *Address { return p.Home }, func(a, b *Address) *Address {
			m, _ := MergeAddress(a, b)
			return m
		}),
		merge.MapField(func(p *Person) []spec.Pair[string, string] { return p.Metadata }),
		merge.Oneof(func(p *Person) ContactCase { return p.Contact }, func(p *Person) bool { return p.Contact != ContactNotSet }),
	}
	out, err := merge.Merge(a, b, fields, func(vals []any) (*Person, error) {
		p := &Person{
			Name: vals[0].(string),
			Age:  vals[1].(int32),
			Tags: vals[2].([]int32),
			Home: vals[3].(*Address),
			Metadata: vals[4].([]spec.Pair[string, string]),
		}
		p.Contact = vals[5].(ContactCase)
		switch p.Contact {
		case ContactEmail:
			if b.Contact == ContactEmail {
				p.Email = b.Email
			} else {
				p.Email = a.Email
			}
		case ContactPhone:
			if b.Contact == ContactPhone {
				p.PhoneNumber = b.PhoneNumber
			} else {
				p.PhoneNumber = a.PhoneNumber
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	mergedExt := a.Extensions
	for _, e := range b.Extensions.Entries() {
		mergedExt.Append(e.Tag, e.WireField)
	}
	out.Extensions = mergedExt
	return out, nil
}
