package domain

// Rejection is the outcome of a credential check that did not match.
// It deliberately carries nothing, so an unknown username and a wrong
// password look the same to callers.
type Rejection struct{}

// TokenClaims is everything embedded in an issued session token
type TokenClaims struct {
	Subject  string `json:"sub"`
	Username string `json:"username"`
}

// AuthContext contains authenticated user info for request context
type AuthContext struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful authentication
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// RegisterRequest represents a sign-up attempt
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Message string `json:"message"`
}
