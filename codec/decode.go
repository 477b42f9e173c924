package codec

import (
	"fmt"

	"github.com/crackcomm/protoc-plugin-go/ext"
	"github.com/crackcomm/protoc-plugin-go/spec"
	"github.com/crackcomm/protoc-plugin-go/wire"
)

// ExtensionRange reports whether tag falls within a message's declared
// extension range. Generated code supplies one per message; messages with
// no declared range pass NoExtensions.
type ExtensionRange func(tag int32) bool

// NoExtensions is the ExtensionRange for a message with no extension range:
// every tag it doesn't recognize is skipped rather than captured.
func NoExtensions(int32) bool { return false }

// Unmarshal drives one message's deserialize pass. It streams tagged fields
// off r, routes each wire occurrence to the spec.DecodeField
// that owns its tag via a tagIndex, captures tags accepted by isExtension
// into an Extensions sideband, silently skips every other unrecognized tag,
// and finally calls ctor with each field's finalized value in spec order.
func Unmarshal[Out any](r *wire.Reader, fields []spec.DecodeField, isExtension ExtensionRange, ctor func(vals []any) (Out, error)) (Out, ext.Extensions, error) {
	var zero Out
	var extensions ext.Extensions

	idx := newTagIndex(fields, GetConfig().DispatchArrayThreshold)
	slots := make([]spec.Slot, len(fields))

	for r.HasMore() {
		fieldNumber, wf, err := r.ReadField()
		if err != nil {
			return zero, extensions, err
		}
		tag := int32(fieldNumber)
		fieldIdx, ok := idx.lookup(tag)
		if !ok {
			if isExtension != nil && isExtension(tag) {
				extensions.Append(tag, wf)
			}
			continue
		}
		if slots[fieldIdx] == nil {
			slots[fieldIdx] = fields[fieldIdx].NewSlot()
		}
		if err := slots[fieldIdx].Receive(tag, wf); err != nil {
			return zero, extensions, wire.WrapField(err, fmt.Sprintf("tag(%d)", tag))
		}
	}

	vals := make([]any, len(fields))
	for i, f := range fields {
		s := slots[i]
		if s == nil {
			// Tag never appeared on the wire; the slot still finalizes to a
			// default or reports RequiredFieldMissing.
			s = f.NewSlot()
		}
		v, err := s.Get()
		if err != nil {
			return zero, extensions, wire.WrapField(err, fmt.Sprintf("field(%d)", i))
		}
		vals[i] = v
	}

	out, err := ctor(vals)
	if err != nil {
		return zero, extensions, err
	}
	return out, extensions, nil
}
