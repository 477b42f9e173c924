// Package rpc implements a thin service-stub surface: a value pairing a
// request/response message pair with a fully qualified method name. The
// core supplies no transport of its own; a caller provides a byte-in/
// byte-out function and the stub drives the request's encode and the
// response's decode around it.
package rpc

import "context"

// Method describes one RPC declaration: its fully qualified name
// ("package.Service/Method", matching gRPC's convention) and how to encode
// a request / decode a response of this method's declared types.
type Method[Req any, Resp any] struct {
	FullName string
	Encode   func(Req) []byte
	Decode   func([]byte) (Resp, error)
}

// Transport is the byte-in/byte-out function a caller supplies; it alone
// knows how to reach the service named by fullName.
type Transport func(ctx context.Context, fullName string, reqBytes []byte) ([]byte, error)

// Invoke encodes req with m's encoder, calls transport with m's full name,
// and decodes the response with m's decoder.
func Invoke[Req any, Resp any](ctx context.Context, m Method[Req, Resp], transport Transport, req Req) (Resp, error) {
	var zero Resp
	reqBytes := m.Encode(req)
	respBytes, err := transport(ctx, m.FullName, reqBytes)
	if err != nil {
		return zero, err
	}
	return m.Decode(respBytes)
}

// Service is a named group of Methods, as the generator would emit one per
// `service` declaration. It exists purely as an organizational convenience;
// nothing in this package requires a Method to belong to one.
type Service struct {
	Name    string
	Methods []string
}
