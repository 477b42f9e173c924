package codec

import (
	"github.com/crackcomm/protoc-plugin-go/ext"
	"github.com/crackcomm/protoc-plugin-go/spec"
	"github.com/crackcomm/protoc-plugin-go/wire"
)

// Marshal drives one message's serialize pass: it writes every declared
// field in order, then re-emits any preserved extensions verbatim in their
// captured order. mode controls only the Writer's allocation strategy; the
// emitted bytes are identical across modes.
func Marshal[M any](m M, fields []spec.EncodeField[M], extensions ext.Extensions, mode wire.Mode) []byte {
	w := wire.NewWriter(mode)
	for _, f := range fields {
		f.Write(w, m)
	}
	extensions.WriteTo(w)
	return w.Contents()
}
