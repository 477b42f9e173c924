package wellknown

import (
	"encoding/json"
	"strconv"
)

// Wrapper is the shared shape of most google.protobuf.*Value wrapper
// messages: a single field (tag 1, named "value") whose JSON mapping
// unwraps to the bare scalar instead of an object. Int64Value/UInt64Value
// use their own type instead, since the 64-bit
// scalar mapping is a JSON string, not Wrapper's bare encoding/json form.
type Wrapper[T any] struct {
	Value T
}

// MarshalJSON emits the bare inner value, not `{"value": ...}`.
func (w Wrapper[T]) MarshalJSON() ([]byte, error) { return json.Marshal(w.Value) }

// UnmarshalJSON accepts the bare inner value.
func (w *Wrapper[T]) UnmarshalJSON(data []byte) error { return json.Unmarshal(data, &w.Value) }

type (
	DoubleValue = Wrapper[float64]
	FloatValue  = Wrapper[float32]
	Int32Value  = Wrapper[int32]
	UInt32Value = Wrapper[uint32]
	BoolValue   = Wrapper[bool]
	StringValue = Wrapper[string]
	BytesValue  = Wrapper[[]byte]
)

// Int64Value mirrors google.protobuf.Int64Value: unwraps to a bare JSON
// string, matching the int64 scalar mapping.
type Int64Value struct{ Value int64 }

func (w Int64Value) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(w.Value, 10))), nil
}

func (w *Int64Value) UnmarshalJSON(data []byte) error {
	v, err := parseInt64JSON(data)
	if err != nil {
		return err
	}
	w.Value = v
	return nil
}

// UInt64Value mirrors google.protobuf.UInt64Value: unwraps to a bare JSON
// string, matching the uint64 scalar mapping.
type UInt64Value struct{ Value uint64 }

func (w UInt64Value) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatUint(w.Value, 10))), nil
}

func (w *UInt64Value) UnmarshalJSON(data []byte) error {
	v, err := parseUint64JSON(data)
	if err != nil {
		return err
	}
	w.Value = v
	return nil
}

func parseInt64JSON(data []byte) (int64, error) {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return 0, err
		}
		s = unquoted
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseUint64JSON(data []byte) (uint64, error) {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return 0, err
		}
		s = unquoted
	}
	return strconv.ParseUint(s, 10, 64)
}
