package domain

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Defaults for failures that carry no status of their own
const (
	DefaultErrorStatus     = http.StatusInternalServerError
	DefaultErrorStatusText = "Internal Server Error"
	DefaultErrorMessage    = "An error occurred."
)

// RequestSpec describes one call to the upstream API
type RequestSpec struct {
	// Path is appended to the configured base URL as-is
	Path string

	// Token overrides the configured upstream token when non-empty
	Token string

	// Body is JSON-encoded when non-nil
	Body any

	Options *RequestOptions
}

// RequestOptions are per-request transport overrides
type RequestOptions struct {
	Headers map[string]string
	Query   url.Values
	Timeout time.Duration
}

// NormalizedError is the single shape every outbound failure converges to
type NormalizedError struct {
	Status          int    `json:"status"`
	StatusText      string `json:"statusText"`
	DetailedMessage string `json:"detailedMessage"`
}

func (e *NormalizedError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.StatusText, e.DetailedMessage)
}
