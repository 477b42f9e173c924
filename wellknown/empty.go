package wellknown

// Empty mirrors google.protobuf.Empty: a message with no fields.
type Empty struct{}

// MarshalJSON always renders "{}".
func (Empty) MarshalJSON() ([]byte, error) { return []byte("{}"), nil }

// UnmarshalJSON accepts any object, discarding its contents.
func (*Empty) UnmarshalJSON([]byte) error { return nil }
