package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-gateway/internal/core/result"
)

// Ensure gateway implements Gateway
var _ driving.Gateway = (*gateway)(nil)

// GatewayConfig holds upstream API settings
type GatewayConfig struct {
	// BaseURL is prepended verbatim to every request path
	BaseURL string

	// Token is the bearer token used when a request does not supply one
	Token string
}

// gateway implements the Gateway interface on top of a Transport
type gateway struct {
	transport driven.Transport
	baseURL   string
	token     string
	logger    *slog.Logger
}

// NewGateway creates a new Gateway
func NewGateway(transport driven.Transport, cfg GatewayConfig, logger *slog.Logger) driving.Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &gateway{
		transport: transport,
		baseURL:   cfg.BaseURL,
		token:     cfg.Token,
		logger:    logger.With("service", "gateway"),
	}
}

// Get makes a GET request to the upstream API
func (g *gateway) Get(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte] {
	return g.Request(ctx, http.MethodGet, spec)
}

// Post makes a POST request to the upstream API
func (g *gateway) Post(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte] {
	return g.Request(ctx, http.MethodPost, spec)
}

// Put makes a PUT request to the upstream API
func (g *gateway) Put(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte] {
	return g.Request(ctx, http.MethodPut, spec)
}

// Patch makes a PATCH request to the upstream API
func (g *gateway) Patch(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte] {
	return g.Request(ctx, http.MethodPatch, spec)
}

// Delete makes a DELETE request to the upstream API
func (g *gateway) Delete(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte] {
	return g.Request(ctx, http.MethodDelete, spec)
}

// Request makes an authenticated request to the upstream API.
// Every failure is folded into a *domain.NormalizedError.
func (g *gateway) Request(ctx context.Context, method string, spec domain.RequestSpec) result.Result[[]byte] {
	req, err := g.buildRequest(method, spec)
	if err != nil {
		return g.fail(ctx, method, spec.Path, nil, err)
	}

	if spec.Options != nil && spec.Options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Options.Timeout)
		defer cancel()
	}

	g.logger.DebugContext(ctx, "upstream request", "method", method, "url", req.URL)

	resp, err := g.transport.Do(ctx, req)
	if err != nil {
		return g.fail(ctx, method, req.URL, nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return g.fail(ctx, method, req.URL, resp, fmt.Errorf("request failed with status code %d", resp.StatusCode))
	}

	return result.Ok(resp.Body)
}

func (g *gateway) buildRequest(method string, spec domain.RequestSpec) (*driven.HTTPRequest, error) {
	url := g.baseURL + spec.Path
	header := http.Header{}

	if spec.Options != nil {
		for k, v := range spec.Options.Headers {
			header.Set(k, v)
		}
		if len(spec.Options.Query) > 0 {
			url += "?" + spec.Options.Query.Encode()
		}
	}

	token := spec.Token
	if token == "" {
		token = g.token
	}
	header.Set("Authorization", "Bearer "+token)

	var body []byte
	if spec.Body != nil {
		var err error
		body, err = json.Marshal(spec.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		header.Set("Content-Type", "application/json")
	}

	return &driven.HTTPRequest{
		Method: method,
		URL:    url,
		Header: header,
		Body:   body,
	}, nil
}

func (g *gateway) fail(ctx context.Context, method, url string, resp *driven.HTTPResponse, cause error) result.Result[[]byte] {
	nerr := normalizeError(resp, cause)
	g.logger.ErrorContext(ctx, "upstream request failed",
		"method", method,
		"url", url,
		"status", nerr.Status,
		"error", cause,
		"detail", nerr.DetailedMessage,
	)
	return result.Fail[[]byte](nerr)
}

// normalizeError folds a transport error and an optional response into
// the one error shape callers branch on.
func normalizeError(resp *driven.HTTPResponse, cause error) *domain.NormalizedError {
	nerr := &domain.NormalizedError{
		Status:     domain.DefaultErrorStatus,
		StatusText: domain.DefaultErrorStatusText,
	}

	var detail string
	if resp != nil {
		if resp.StatusCode != 0 {
			nerr.Status = resp.StatusCode
		}
		if resp.StatusText != "" {
			nerr.StatusText = resp.StatusText
		}
		detail = messageField(resp.Body)
	}

	switch {
	case detail != "":
		nerr.DetailedMessage = detail
	case cause != nil && cause.Error() != "":
		nerr.DetailedMessage = cause.Error()
	default:
		nerr.DetailedMessage = domain.DefaultErrorMessage
	}

	return nerr
}

// messageField extracts an application-level "message" string from a JSON body
func messageField(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	msg, _ := payload.Message.(string)
	return msg
}

// DecodeJSON decodes a successful gateway body into T. Decode failures
// are reported in the same normalized shape as transport failures.
func DecodeJSON[T any](r result.Result[[]byte]) result.Result[T] {
	return result.Map(r, func(body []byte) (T, error) {
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			return v, &domain.NormalizedError{
				Status:          domain.DefaultErrorStatus,
				StatusText:      domain.DefaultErrorStatusText,
				DetailedMessage: fmt.Sprintf("failed to decode response: %v", err),
			}
		}
		return v, nil
	})
}

// AsNormalizedError extracts the normalized error from a failed gateway result
func AsNormalizedError(err error) *domain.NormalizedError {
	if err == nil {
		return nil
	}
	var nerr *domain.NormalizedError
	if errors.As(err, &nerr) {
		return nerr
	}
	return normalizeError(nil, err)
}
