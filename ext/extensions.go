// Package ext implements proto2 extension storage: the sideband list of
// unknown (tag, WireField) pairs a message preserves across a decode→encode
// round-trip, and the typed get/set accessors generated code builds for
// each declared extension field.
package ext

import (
	"fmt"

	"github.com/crackcomm/protoc-plugin-go/spec"
	"github.com/crackcomm/protoc-plugin-go/wire"
)

// Entry is one preserved (tag, WireField) pair.
type Entry struct {
	Tag       int32
	WireField wire.WireField
}

// Extensions is the ordered sideband a message carries for every wire tag
// that was neither a declared field nor consumed by this decode pass but
// fell within a declared extension range. Order is preserved verbatim so
// that re-encoding is byte-stable for fields this message doesn't interpret.
type Extensions struct {
	entries []Entry
}

// Append records a captured (tag, wf) pair, in wire order.
func (e *Extensions) Append(tag int32, wf wire.WireField) {
	e.entries = append(e.entries, Entry{Tag: tag, WireField: wf})
}

// Entries returns the preserved pairs in capture order.
func (e Extensions) Entries() []Entry { return e.entries }

// Len reports how many extension entries are stored.
func (e Extensions) Len() int { return len(e.entries) }

// WriteTo re-emits every captured entry's tag and payload verbatim, in
// capture order, onto w. A message's encoder calls this after writing its
// regular fields, so extensions always trail declared fields on the wire.
func (e Extensions) WriteTo(w *wire.Writer) {
	for _, ent := range e.entries {
		spec.WriteWireField(w, ent.Tag, ent.WireField)
	}
}

// Get scans the extensions list for tag and decodes its payload with ts,
// returning the zero value and false if tag was never captured.
func Get[T any](e Extensions, tag int32, ts spec.TypedSpec[T]) (T, bool, error) {
	for i := len(e.entries) - 1; i >= 0; i-- {
		if e.entries[i].Tag == tag {
			v, err := ts.DecodeWF(e.entries[i].WireField)
			if err != nil {
				var zero T
				return zero, false, err
			}
			return v, true, nil
		}
	}
	var zero T
	return zero, false, nil
}

// GetExn is Get but panics on a decode error or missing tag, for callers
// that have already established the extension must be present and valid.
func GetExn[T any](e Extensions, tag int32, ts spec.TypedSpec[T]) T {
	v, ok, err := Get(e, tag, ts)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic(wire.NewFieldError(wire.KindRequiredFieldMissing, errExtensionNotSet(tag)))
	}
	return v
}

// Set replaces (or appends, if absent) the extension at tag with value,
// encoded via ts. Where tag occurs more than once, the last entry (the one
// Get reads) is replaced.
func Set[T any](e *Extensions, tag int32, ts spec.TypedSpec[T], value T) {
	wf := ts.EncodeWF(value)
	for i := len(e.entries) - 1; i >= 0; i-- {
		if e.entries[i].Tag == tag {
			e.entries[i].WireField = wf
			return
		}
	}
	e.Append(tag, wf)
}

func errExtensionNotSet(tag int32) error {
	return fmt.Errorf("extension not set: tag %d", tag)
}
