package httpclient

import (
	"context"
	"io"
)

// ClientInterface is the surface the domain facades program against.
// Implementations must handle authentication, request building, and
// response error decoding.
type ClientInterface interface {
	// DoRequest makes an HTTP request with the given options and returns
	// the response body.
	DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error)

	// StreamRequest makes an HTTP request with the given options and
	// returns a reader over the raw response body. The caller is
	// responsible for closing the returned reader.
	StreamRequest(ctx context.Context, opts RequestOptions) (io.ReadCloser, error)
}

// Compile-time check that HTTPClient satisfies the interface.
var _ ClientInterface = &HTTPClient{}
