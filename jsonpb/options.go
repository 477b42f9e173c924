// Package jsonpb implements the canonical proto3 JSON mapping: the same
// declarative field-list shape as package spec, but traversing a generic
// JSON tree instead of the binary wire format.
package jsonpb

// Options configures both directions of the JSON codec.
// Unmarshal always accepts whichever name/enum form Options doesn't prefer,
// in addition to the preferred one, so that peers configured differently
// still interoperate.
type Options struct {
	// JSONNames selects camelCase jsonName keys on output; false selects
	// the proto (snake_case) name.
	JSONNames bool
	// EnumNames selects the declared string name for enums on output;
	// false selects the integer value.
	EnumNames bool
	// OmitDefaultValues elides proto3-default-valued fields on output.
	OmitDefaultValues bool
}

// Canonical returns proto3's canonical JSON options: camelCase names,
// string enum names, default-value elision.
func Canonical() Options {
	return Options{JSONNames: true, EnumNames: true, OmitDefaultValues: true}
}
