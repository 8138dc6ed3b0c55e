package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
)

// Ensure HTTPTransport implements Transport
var _ driven.Transport = (*HTTPTransport)(nil)

// maxResponseBytes caps how much of an upstream body is buffered
const maxResponseBytes = 10 << 20

// HTTPTransport implements Transport using net/http
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport whose requests time out after timeout.
// A zero timeout means no client-level limit.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewHTTPTransportWithClient wraps an existing client
func NewHTTPTransportWithClient(client *http.Client) *HTTPTransport {
	return &HTTPTransport{client: client}
}

// Do sends req and returns the upstream response for any status code
func (t *HTTPTransport) Do(ctx context.Context, req *driven.HTTPRequest) (*driven.HTTPResponse, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(respBody) > maxResponseBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxResponseBytes)
	}

	return &driven.HTTPResponse{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp.Status, resp.StatusCode),
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// statusText extracts the reason phrase from a status line like "503 Service Unavailable"
func statusText(status string, code int) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return http.StatusText(code)
	}
	return text
}
