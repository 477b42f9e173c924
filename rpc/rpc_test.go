package rpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type getRequest struct{ ID int32 }
type getResponse struct{ Name string }

func getMethod() Method[getRequest, getResponse] {
	return Method[getRequest, getResponse]{
		FullName: "demo.Directory/Get",
		Encode:   func(r getRequest) []byte { return []byte{byte(r.ID)} },
		Decode:   func(b []byte) (getResponse, error) { return getResponse{Name: string(b)}, nil },
	}
}

func TestInvokeRoundTripsThroughTransport(t *testing.T) {
	var gotName string
	var gotReq []byte
	transport := func(_ context.Context, fullName string, reqBytes []byte) ([]byte, error) {
		gotName = fullName
		gotReq = reqBytes
		return []byte("alice"), nil
	}

	resp, err := Invoke(context.Background(), getMethod(), transport, getRequest{ID: 7})
	require.NoError(t, err)
	require.Equal(t, "demo.Directory/Get", gotName)
	require.Equal(t, []byte{7}, gotReq)
	require.Equal(t, getResponse{Name: "alice"}, resp)
}

func TestInvokePropagatesTransportError(t *testing.T) {
	boom := errTransport("boom")
	transport := func(_ context.Context, _ string, _ []byte) ([]byte, error) { return nil, boom }

	_, err := Invoke(context.Background(), getMethod(), transport, getRequest{ID: 1})
	require.ErrorIs(t, err, boom)
}

type errTransport string

func (e errTransport) Error() string { return string(e) }
