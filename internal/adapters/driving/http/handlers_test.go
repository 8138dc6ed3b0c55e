package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-gateway/internal/core/result"
)

// Mock services for testing

type mockAuthService struct {
	authenticateFn  func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	registerFn      func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)
	validateTokenFn func(ctx context.Context, token string) (*domain.AuthContext, error)
}

func (m *mockAuthService) ValidateCredentials(ctx context.Context, username, password string) (driving.CredentialCheck, error) {
	return result.Left[domain.Rejection, *domain.UserPublic](domain.Rejection{}), nil
}

func (m *mockAuthService) Login(ctx context.Context, user *domain.UserPublic) (*domain.LoginResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, token)
	}
	return nil, errors.New("not implemented")
}

type mockUserService struct {
	getByIDFn func(ctx context.Context, id string) (*domain.UserPublic, error)
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*domain.UserPublic, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) GetByUsername(ctx context.Context, username string) (*domain.UserPublic, error) {
	return nil, errors.New("not implemented")
}

type mockProductService struct {
	listFn       func(ctx context.Context, query url.Values) result.Result[json.RawMessage]
	invalidateFn func(ctx context.Context) (int, error)
}

func (m *mockProductService) List(ctx context.Context, query url.Values) result.Result[json.RawMessage] {
	if m.listFn != nil {
		return m.listFn(ctx, query)
	}
	return result.Fail[json.RawMessage](errors.New("not implemented"))
}

func (m *mockProductService) InvalidateCache(ctx context.Context) (int, error) {
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx)
	}
	return 0, errors.New("not implemented")
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

// validToken accepts "good-token" as user-1
func validToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "good-token" {
		return &domain.AuthContext{UserID: "user-1", Username: "alice"}, nil
	}
	return nil, domain.ErrTokenInvalid
}

func newRoutedServer(auth *mockAuthService, users *mockUserService, products *mockProductService) *Server {
	if auth.validateTokenFn == nil {
		auth.validateTokenFn = validToken
	}
	return NewServer(DefaultConfig(), auth, users, products, &mockPinger{}, nil, slog.New(slog.DiscardHandler))
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

// Health endpoints

func TestHandleHealth(t *testing.T) {
	server := &Server{}

	rr := httptest.NewRecorder()
	server.handleHealth(rr, httptest.NewRequest("GET", "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if resp := decodeBody[StatusResponse](t, rr); resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
}

func TestHandleReady(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		cache      Pinger
		wantStatus int
	}{
		{"all up", &mockPinger{}, &mockPinger{}, http.StatusOK},
		{"no cache configured", &mockPinger{}, nil, http.StatusOK},
		{"database down", &mockPinger{err: errors.New("refused")}, nil, http.StatusServiceUnavailable},
		{"cache down", &mockPinger{}, &mockPinger{err: errors.New("refused")}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &Server{db: tt.db, cache: tt.cache, logger: slog.New(slog.DiscardHandler)}

			rr := httptest.NewRecorder()
			server.handleReady(rr, httptest.NewRequest("GET", "/ready", nil))

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	server := &Server{version: "1.2.3"}

	rr := httptest.NewRecorder()
	server.handleVersion(rr, httptest.NewRequest("GET", "/version", nil))

	if resp := decodeBody[VersionResponse](t, rr); resp.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", resp.Version)
	}
}

// Auth endpoints

func TestHandleLogin_InvalidJSON(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString("invalid json"))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"missing fields", domain.ErrInvalidInput, http.StatusBadRequest},
		{"rejected", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"directory failure", domain.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := &mockAuthService{
				authenticateFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					if req.Username != "alice" || req.Password != "correct" {
						t.Errorf("unexpected request: %+v", req)
					}
					return &domain.LoginResponse{AccessToken: "jwt"}, nil
				},
			}
			server := &Server{authService: mockAuth}

			body, _ := json.Marshal(domain.LoginRequest{Username: "alice", Password: "correct"})
			rr := httptest.NewRecorder()
			server.handleLogin(rr, httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body)))

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.err == nil {
				if resp := decodeBody[domain.LoginResponse](t, rr); resp.AccessToken != "jwt" {
					t.Errorf("expected access token jwt, got %q", resp.AccessToken)
				}
			}
		})
	}
}

func TestHandleRegister(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"created", nil, http.StatusCreated, ""},
		{"missing fields", domain.ErrInvalidInput, http.StatusBadRequest, ""},
		{"conflict", domain.ErrRegistrationConflict, http.StatusConflict, "Username or email already exists"},
		{"failure", domain.ErrRegistrationFailed, http.StatusInternalServerError, "Error occurred during registration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := &mockAuthService{
				registerFn: func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.RegisterResponse{Message: "User successfully registered"}, nil
				},
			}
			server := &Server{authService: mockAuth}

			body, _ := json.Marshal(domain.RegisterRequest{Username: "bob", Email: "bob@x.com", Password: "pw"})
			rr := httptest.NewRecorder()
			server.handleRegister(rr, httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body)))

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantMessage != "" {
				if resp := decodeBody[ErrorResponse](t, rr); resp.Error != tt.wantMessage {
					t.Errorf("expected error %q, got %q", tt.wantMessage, resp.Error)
				}
			}
		})
	}
}

func TestHandleRegister_InvalidJSON(t *testing.T) {
	server := &Server{}

	rr := httptest.NewRecorder()
	server.handleRegister(rr, httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBufferString("{")))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestDecodeRequest_BodyTooLarge(t *testing.T) {
	called := false
	mockAuth := &mockAuthService{
		authenticateFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
			called = true
			return &domain.LoginResponse{AccessToken: "jwt"}, nil
		},
		registerFn: func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
			called = true
			return &domain.RegisterResponse{Message: "User successfully registered"}, nil
		},
	}
	server := &Server{authService: mockAuth}

	oversized := `{"username":"alice","password":"` + strings.Repeat("a", maxRequestBodyBytes) + `"}`
	handlers := map[string]http.HandlerFunc{
		"/api/v1/auth/login":    server.handleLogin,
		"/api/v1/auth/register": server.handleRegister,
	}

	for target, handler := range handlers {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest("POST", target, bytes.NewBufferString(oversized)))

		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("%s: expected status 413, got %d", target, rr.Code)
		}
	}
	if called {
		t.Error("oversized bodies must not reach the auth service")
	}
}

// Routed endpoints

func TestRoutes_RequireBearerToken(t *testing.T) {
	server := newRoutedServer(&mockAuthService{}, &mockUserService{}, &mockProductService{})

	for _, target := range []string{"/api/v1/me", "/api/v1/users/user-1", "/api/v1/products"} {
		for _, header := range []string{"", "Bearer bad-token"} {
			req := httptest.NewRequest("GET", target, nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()
			server.Handler().ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("%s with %q: expected 401, got %d", target, header, rr.Code)
			}
		}
	}
}

func TestRoutes_GetMe(t *testing.T) {
	users := &mockUserService{
		getByIDFn: func(ctx context.Context, id string) (*domain.UserPublic, error) {
			if id != "user-1" {
				return nil, domain.ErrNotFound
			}
			return &domain.UserPublic{ID: "user-1", Username: "alice", Email: "alice@example.com"}, nil
		},
	}
	server := newRoutedServer(&mockAuthService{}, users, &mockProductService{})

	req := httptest.NewRequest("GET", "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body map[string]any
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body["username"] != "alice" {
		t.Errorf("unexpected body: %v", body)
	}
	if _, ok := body["password_hash"]; ok {
		t.Error("password hash must never be served")
	}
}

func TestRoutes_GetUser(t *testing.T) {
	users := &mockUserService{
		getByIDFn: func(ctx context.Context, id string) (*domain.UserPublic, error) {
			switch id {
			case "user-2":
				return &domain.UserPublic{ID: "user-2", Username: "bob"}, nil
			case "broken":
				return nil, domain.ErrInternal
			default:
				return nil, domain.ErrNotFound
			}
		},
	}
	server := newRoutedServer(&mockAuthService{}, users, &mockProductService{})

	tests := map[string]int{
		"/api/v1/users/user-2":  http.StatusOK,
		"/api/v1/users/missing": http.StatusNotFound,
		"/api/v1/users/broken":  http.StatusInternalServerError,
	}

	for target, want := range tests {
		req := httptest.NewRequest("GET", target, nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rr := httptest.NewRecorder()
		server.Handler().ServeHTTP(rr, req)

		if rr.Code != want {
			t.Errorf("%s: expected %d, got %d", target, want, rr.Code)
		}
	}
}

func TestRoutes_GetUser_HidesOtherUsersDetails(t *testing.T) {
	users := &mockUserService{
		getByIDFn: func(ctx context.Context, id string) (*domain.UserPublic, error) {
			return &domain.UserPublic{ID: id, Username: "user " + id, Email: id + "@example.com"}, nil
		},
	}
	server := newRoutedServer(&mockAuthService{}, users, &mockProductService{})

	tests := []struct {
		target    string
		wantEmail bool
	}{
		{"/api/v1/users/user-1", true},
		{"/api/v1/users/user-2", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.target, nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rr := httptest.NewRecorder()
		server.Handler().ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", tt.target, rr.Code)
		}
		body := decodeBody[map[string]any](t, rr)
		if body["username"] == nil || body["id"] == nil {
			t.Errorf("%s: expected id and username, got %v", tt.target, body)
		}
		if _, ok := body["email"]; ok != tt.wantEmail {
			t.Errorf("%s: email present = %v, want %v", tt.target, ok, tt.wantEmail)
		}
	}
}

func TestRoutes_ListProducts(t *testing.T) {
	var gotQuery url.Values
	products := &mockProductService{
		listFn: func(ctx context.Context, query url.Values) result.Result[json.RawMessage] {
			gotQuery = query
			return result.Ok(json.RawMessage(`[{"id":1}]`))
		},
	}
	server := newRoutedServer(&mockAuthService{}, &mockUserService{}, products)

	req := httptest.NewRequest("GET", "/api/v1/products?page=2", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if rr.Body.String() != `[{"id":1}]` {
		t.Errorf("expected upstream body passed through, got %s", rr.Body.String())
	}
	if gotQuery.Get("page") != "2" {
		t.Errorf("expected query forwarded, got %v", gotQuery)
	}
}

func TestRoutes_ListProducts_UpstreamFailure(t *testing.T) {
	products := &mockProductService{
		listFn: func(ctx context.Context, query url.Values) result.Result[json.RawMessage] {
			return result.Fail[json.RawMessage](&domain.NormalizedError{
				Status:          503,
				StatusText:      "Service Unavailable",
				DetailedMessage: "upstream down",
			})
		},
	}
	server := newRoutedServer(&mockAuthService{}, &mockUserService{}, products)

	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
	resp := decodeBody[domain.NormalizedError](t, rr)
	if resp.Status != 503 || resp.StatusText != "Service Unavailable" || resp.DetailedMessage != "upstream down" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestWriteUpstreamError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"normalized", &domain.NormalizedError{Status: 404, StatusText: "Not Found"}, http.StatusNotFound},
		{"out of range status", &domain.NormalizedError{Status: 302}, http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeUpstreamError(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestRoutes_ClearProductCache(t *testing.T) {
	products := &mockProductService{
		invalidateFn: func(ctx context.Context) (int, error) { return 3, nil },
	}
	server := newRoutedServer(&mockAuthService{}, &mockUserService{}, products)

	req := httptest.NewRequest("DELETE", "/api/v1/products/cache", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if resp := decodeBody[DeletedResponse](t, rr); resp.Deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", resp.Deleted)
	}

	products.invalidateFn = func(ctx context.Context) (int, error) { return 0, errors.New("redis down") }
	rr = httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
}
