package wellknown

import (
	"encoding/json"
	"fmt"
)

// NullValue mirrors google.protobuf.NullValue, the singleton enum used as
// Value's "unset" case. Its only declared value serializes to JSON null.
type NullValue int32

const NullValueNullValue NullValue = 0

func (NullValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (n *NullValue) UnmarshalJSON(data []byte) error {
	if string(data) != "null" {
		return fmt.Errorf("NullValue: expected JSON null, got %s", data)
	}
	*n = NullValueNullValue
	return nil
}

// ValueKind discriminates Value's oneof case.
type ValueKind int

const (
	ValueKindNull ValueKind = iota
	ValueKindNumber
	ValueKindString
	ValueKindBool
	ValueKindStruct
	ValueKindList
)

// Value mirrors google.protobuf.Value: a dynamically typed JSON-like value,
// modeled as a closed oneof over its five alternatives plus null: the
// single active variant unwraps directly into the JSON value.
type Value struct {
	Kind        ValueKind
	NumberValue float64
	StringValue string
	BoolValue   bool
	StructValue *Struct
	ListValue   *ListValue
}

// Struct mirrors google.protobuf.Struct: a JSON object of Values keyed by
// field name. Fields is a Go map, so key order is not preserved.
type Struct struct {
	Fields map[string]*Value
}

// ListValue mirrors google.protobuf.ListValue: a JSON array of Values.
type ListValue struct {
	Values []*Value
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueKindNull:
		return []byte("null"), nil
	case ValueKindNumber:
		return json.Marshal(v.NumberValue)
	case ValueKindString:
		return json.Marshal(v.StringValue)
	case ValueKindBool:
		return json.Marshal(v.BoolValue)
	case ValueKindStruct:
		return json.Marshal(v.StructValue)
	case ValueKindList:
		return json.Marshal(v.ListValue)
	default:
		return nil, fmt.Errorf("Value: unknown kind %d", v.Kind)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromJSONAny(raw)
	return nil
}

// FromJSONAny converts a generic decoded JSON value (as produced by
// json.Unmarshal into `any`) into a Value, recursively wrapping nested
// objects/arrays as Struct/ListValue.
func FromJSONAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Value{Kind: ValueKindNull}
	case bool:
		return Value{Kind: ValueKindBool, BoolValue: t}
	case string:
		return Value{Kind: ValueKindString, StringValue: t}
	case float64:
		return Value{Kind: ValueKindNumber, NumberValue: t}
	case map[string]any:
		fields := make(map[string]*Value, len(t))
		for k, v := range t {
			vv := FromJSONAny(v)
			fields[k] = &vv
		}
		return Value{Kind: ValueKindStruct, StructValue: &Struct{Fields: fields}}
	case []any:
		values := make([]*Value, len(t))
		for i, v := range t {
			vv := FromJSONAny(v)
			values[i] = &vv
		}
		return Value{Kind: ValueKindList, ListValue: &ListValue{Values: values}}
	default:
		return Value{Kind: ValueKindNull}
	}
}

func (s Struct) MarshalJSON() ([]byte, error) {
	if s.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.Fields)
}

func (s *Struct) UnmarshalJSON(data []byte) error {
	var raw map[string]*Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		raw = map[string]*Value{}
	}
	s.Fields = raw
	return nil
}

func (l ListValue) MarshalJSON() ([]byte, error) {
	if l.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Values)
}

func (l *ListValue) UnmarshalJSON(data []byte) error {
	var raw []*Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		raw = []*Value{}
	}
	l.Values = raw
	return nil
}
