package wellknown

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Any mirrors google.protobuf.Any: an opaque TypeURL-tagged binary payload.
// Unlike the other well-known types, rendering or parsing Any's canonical
// JSON form (`{"@type": ..., ...payload}`) requires resolving TypeURL to a
// concrete message's own JSON codec, so Any carries no MarshalJSON of its
// own; callers use MarshalJSONWith/UnmarshalJSONWith with a Resolver.
type Any struct {
	TypeURL string
	Value   []byte
}

// Resolver looks up, by type name (the part of a TypeURL after the last
// "/"), the JSON<->binary conversions for one message type.
type Resolver interface {
	// ToJSON decodes binary into that type's canonical JSON object.
	ToJSON(typeName string, binary []byte) (map[string]any, error)
	// FromJSON encodes a JSON object (the Any's fields besides "@type")
	// back into that type's binary form.
	FromJSON(typeName string, obj map[string]any) ([]byte, error)
}

// TypeName returns the part of TypeURL after its last "/".
func (a Any) TypeName() string {
	if i := strings.LastIndex(a.TypeURL, "/"); i >= 0 {
		return a.TypeURL[i+1:]
	}
	return a.TypeURL
}

// MarshalJSONWith renders {"@type": a.TypeURL, ...fields} by asking r to
// decode a.Value into its declared type's JSON fields.
func (a Any) MarshalJSONWith(r Resolver) ([]byte, error) {
	fields, err := r.ToJSON(a.TypeName(), a.Value)
	if err != nil {
		return nil, fmt.Errorf("Any: %w", err)
	}
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["@type"] = a.TypeURL
	return json.Marshal(out)
}

// UnmarshalJSONWith parses {"@type": ..., ...payload} (or the
// {"type_url":..., "value": base64} wire-shaped form) using r to re-encode
// the payload to binary.
func (a *Any) UnmarshalJSONWith(data []byte, r Resolver) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("Any: %w", err)
	}

	typeURL, _ := obj["@type"].(string)
	if typeURL == "" {
		typeURL, _ = obj["type_url"].(string)
	}
	if typeURL == "" {
		return fmt.Errorf("Any: missing @type")
	}
	if !strings.Contains(typeURL, "/") {
		typeURL = "type.googleapis.com/" + typeURL
	}
	a.TypeURL = typeURL

	if raw, ok := obj["value"]; ok {
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("Any: value must be base64 string")
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("Any: value not base64: %w", err)
		}
		a.Value = b
		return nil
	}

	payload := make(map[string]any, len(obj))
	for k, v := range obj {
		if k == "@type" || k == "type_url" {
			continue
		}
		payload[k] = v
	}
	b, err := r.FromJSON(a.TypeName(), payload)
	if err != nil {
		return fmt.Errorf("Any: %w", err)
	}
	a.Value = b
	return nil
}
