package wire

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the error taxonomy attached to every *FieldError returned
// from the wire, spec, codec, jsonpb, ext, and merge packages so callers
// can errors.As into a specific failure class.
type ErrorKind uint8

const (
	KindUnspecified ErrorKind = iota
	KindTruncated
	KindIllegalWireType
	KindVarintOverflow
	KindWrongFieldType
	KindIllegalValue
	KindUnknownEnumValue
	KindOneofMissing
	KindRequiredFieldMissing
	KindNotImplemented
)

func (k ErrorKind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindIllegalWireType:
		return "illegal wire type"
	case KindVarintOverflow:
		return "varint overflow"
	case KindWrongFieldType:
		return "wrong field type"
	case KindIllegalValue:
		return "illegal value"
	case KindUnknownEnumValue:
		return "unknown enum value"
	case KindOneofMissing:
		return "oneof missing"
	case KindRequiredFieldMissing:
		return "required field missing"
	case KindNotImplemented:
		return "not implemented"
	default:
		return "unspecified"
	}
}

// Sentinel base errors, for plain errors.Is checks against a Kind without a
// field path.
var (
	ErrTruncated        = &FieldError{Kind: KindTruncated, Err: errors.New("truncated input")}
	ErrIllegalWireType   = &FieldError{Kind: KindIllegalWireType, Err: errors.New("illegal or unsupported wire type")}
	ErrVarintOverflow    = &FieldError{Kind: KindVarintOverflow, Err: errors.New("varint overflow")}
	ErrNotImplemented    = &FieldError{Kind: KindNotImplemented, Err: errors.New("not implemented")}
)

// FieldError is an encoding/decoding error carrying a taxonomy Kind plus
// the dotted field path accumulated as the error propagates
// out through nested messages (e.g. "input.target_location.latitude").
type FieldError struct {
	Kind      ErrorKind
	FieldPath []string
	Err       error
}

func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("error at proto path %s: %v", strings.Join(e.FieldPath, "."), e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, wire.ErrTruncated) match regardless of field path,
// by comparing kinds instead of pointer identity.
func (e *FieldError) Is(target error) bool {
	t, ok := target.(*FieldError)
	if !ok {
		return false
	}
	if t.Kind == KindUnspecified {
		return true
	}
	return e.Kind == t.Kind
}

// NewFieldError builds a FieldError of the given kind wrapping err.
func NewFieldError(kind ErrorKind, err error) *FieldError {
	return &FieldError{Kind: kind, Err: err}
}

// WrapField prefixes err's field path with fieldName. If err is not already
// a *FieldError it is wrapped as KindUnspecified first.
func WrapField(err error, fieldName string) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		path := make([]string, 0, len(fe.FieldPath)+1)
		path = append(path, fieldName)
		path = append(path, fe.FieldPath...)
		return &FieldError{Kind: fe.Kind, FieldPath: path, Err: fe.Err}
	}
	return &FieldError{Kind: KindUnspecified, FieldPath: []string{fieldName}, Err: err}
}
