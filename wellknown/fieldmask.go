package wellknown

import "strings"

// FieldMask mirrors google.protobuf.FieldMask: an ordered set of field
// paths, each in snake_case.
type FieldMask struct {
	Paths []string
}

// MarshalJSON renders Paths as a single comma-joined camelCase string.
func (m FieldMask) MarshalJSON() ([]byte, error) {
	camel := make([]string, len(m.Paths))
	for i, p := range m.Paths {
		camel[i] = snakeToCamel(p)
	}
	return []byte(`"` + strings.Join(camel, ",") + `"`), nil
}

// UnmarshalJSON parses the comma-joined camelCase string back into Paths,
// converting each back to snake_case.
func (m *FieldMask) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" {
		m.Paths = []string{}
		return nil
	}
	parts := strings.Split(s, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paths = append(paths, camelToSnake(p))
	}
	m.Paths = paths
	return nil
}

func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i != 0 {
				b.WriteByte('_')
			}
			b.WriteByte(c - 'A' + 'a')
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func snakeToCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upperNext := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		upperNext = false
		b.WriteByte(c)
	}
	return b.String()
}
