package driven

import (
	"context"
	"net/http"
)

// HTTPRequest is a fully resolved outbound request
type HTTPRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// HTTPResponse is whatever the upstream answered, whatever the status
type HTTPResponse struct {
	StatusCode int
	StatusText string
	Header     http.Header
	Body       []byte
}

// Transport executes outbound HTTP requests.
// A non-nil error means no response was received (network, timeout, cancel).
type Transport interface {
	Do(ctx context.Context, req *HTTPRequest) (*HTTPResponse, error)
}
