package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
)

// Ensure MockTransport implements Transport
var _ driven.Transport = (*MockTransport)(nil)

// MockTransport returns a canned response or error and records requests
type MockTransport struct {
	mu       sync.Mutex
	requests []*driven.HTTPRequest

	Response *driven.HTTPResponse
	Err      error

	// DoFn, when set, overrides Response and Err
	DoFn func(ctx context.Context, req *driven.HTTPRequest) (*driven.HTTPResponse, error)
}

// NewMockTransport creates a MockTransport answering with resp
func NewMockTransport(resp *driven.HTTPResponse) *MockTransport {
	return &MockTransport{Response: resp}
}

func (m *MockTransport) Do(ctx context.Context, req *driven.HTTPRequest) (*driven.HTTPResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.DoFn != nil {
		return m.DoFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

// Requests returns every request seen so far
func (m *MockTransport) Requests() []*driven.HTTPRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*driven.HTTPRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or nil
func (m *MockTransport) LastRequest() *driven.HTTPRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}
