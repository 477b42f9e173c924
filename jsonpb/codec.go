package jsonpb

import (
	"encoding/json"

	"github.com/crackcomm/protoc-plugin-go/wire"
)

// Marshal renders m as a JSON object by writing every declared field in
// list order. WKT hooks are applied by the caller's
// MessageSpec.ToJSON, not here; Marshal always produces the default object
// mapping for the message it's called on directly.
func Marshal[M any](m M, fields []EncodeField[M], opts Options) ([]byte, error) {
	obj := make(map[string]any, len(fields))
	for _, f := range fields {
		if err := f.Write(obj, m, opts); err != nil {
			return nil, err
		}
	}
	return json.Marshal(obj)
}

// Unmarshal parses data as a JSON object and feeds each declared field's
// decoded value, in list order, to ctor.
func Unmarshal[Out any](data []byte, fields []DecodeField, ctor func(vals []any) (Out, error)) (Out, error) {
	var zero Out
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return zero, wire.NewFieldError(wire.KindWrongFieldType, err)
	}
	return UnmarshalObject(obj, fields, ctor)
}

// UnmarshalObject is Unmarshal for a JSON value already decoded into a
// generic tree (as encoding/json would decode it into `any`), rather than
// raw bytes. A nested message field's MessageSpec.FromJSON is handed its
// sub-object this way, without a redundant marshal/unmarshal round trip.
func UnmarshalObject[Out any](obj map[string]any, fields []DecodeField, ctor func(vals []any) (Out, error)) (Out, error) {
	var zero Out
	vals := make([]any, len(fields))
	for i, f := range fields {
		v, err := f.read(obj)
		if err != nil {
			name := f.jsonName
			if name == "" {
				name = f.name
			}
			return zero, wire.WrapField(err, name)
		}
		vals[i] = v
	}
	return ctor(vals)
}
