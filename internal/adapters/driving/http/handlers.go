package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
)

// maxRequestBodyBytes caps JSON request bodies
const maxRequestBodyBytes = 1 << 20

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// DeletedResponse reports how many cache entries were removed
// @Description Cache invalidation result
type DeletedResponse struct {
	Deleted int `json:"deleted" example:"3"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Pings PostgreSQL and, when configured, Redis
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.logger.WarnContext(r.Context(), "readiness check failed", "dependency", "postgres", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.cache != nil {
		if err := s.cache.Ping(r.Context()); err != nil {
			s.logger.WarnContext(r.Context(), "readiness check failed", "dependency", "redis", "error", err)
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with username and password to receive a JWT
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      413      {object}  ErrorResponse  "Request body too large"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "username and password are required")
		case domain.ErrInvalidCredentials:
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRegister godoc
// @Summary      Register user
// @Description  Create a new account with a unique username and email
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RegisterRequest  true  "New account"
// @Success      201      {object}  domain.RegisterResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      413      {object}  ErrorResponse  "Request body too large"
// @Failure      409      {object}  ErrorResponse  "Username or email already exists"
// @Failure      500      {object}  ErrorResponse  "Error occurred during registration"
// @Router       /auth/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindInvalidInput:
			writeError(w, http.StatusBadRequest, "username, email and password are required")
		case domain.KindConflict:
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, domain.ErrRegistrationFailed.Message)
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// User endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Description  Returns the profile of the authenticated user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserPublic
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	s.writeUser(w, r, authCtx.UserID, true)
}

// handleGetUser godoc
// @Summary      Get user
// @Description  Returns the caller's full profile, or only id and username for other users
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.UserSummary
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /users/{id} [get]
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	authCtx := GetAuthContext(r.Context())
	s.writeUser(w, r, id, authCtx != nil && authCtx.UserID == id)
}

// writeUser serves the full profile only when self is set
func (s *Server) writeUser(w http.ResponseWriter, r *http.Request, id string, self bool) {
	user, err := s.userService.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "user not found")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "user id is required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get user")
		}
		return
	}

	if !self {
		writeJSON(w, http.StatusOK, user.Summary())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Product endpoints

// handleListProducts godoc
// @Summary      List products
// @Description  Proxies the upstream product list; query parameters are forwarded
// @Tags         Products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   object
// @Failure      500  {object}  domain.NormalizedError  "Upstream failure, status mirrors upstream"
// @Router       /products [get]
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	res := s.productService.List(r.Context(), r.URL.Query())
	if res.IsFailure() {
		writeUpstreamError(w, res.Err())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Value())
}

// handleClearProductCache godoc
// @Summary      Clear product cache
// @Description  Drops every cached product list
// @Tags         Products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DeletedResponse
// @Failure      500  {object}  ErrorResponse  "Cache unavailable"
// @Router       /products/cache [delete]
func (s *Server) handleClearProductCache(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.productService.InvalidateCache(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear product cache")
		return
	}

	writeJSON(w, http.StatusOK, DeletedResponse{Deleted: deleted})
}

// Helper functions

// decodeRequest reads a size-limited JSON body into v, writing the error response on failure
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeUpstreamError writes a gateway failure with the status it normalized to
func writeUpstreamError(w http.ResponseWriter, err error) {
	var nerr *domain.NormalizedError
	if !errors.As(err, &nerr) {
		nerr = &domain.NormalizedError{
			Status:          domain.DefaultErrorStatus,
			StatusText:      domain.DefaultErrorStatusText,
			DetailedMessage: domain.DefaultErrorMessage,
		}
	}

	status := nerr.Status
	if status < 400 || status > 599 {
		status = domain.DefaultErrorStatus
	}
	writeJSON(w, status, nerr)
}
