package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness constraint was violated
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates a wrong username/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid indicates the auth token is malformed, expired or forged
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInternal hides an infrastructure failure from the caller
	ErrInternal = errors.New("internal error")
)

// ErrorKind classifies errors surfaced to callers of the auth core
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindConflict
	KindInvalidInput
	KindUnauthorized
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// AuthError is a caller-safe failure. Message never includes the cause.
type AuthError struct {
	Kind    ErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Registration errors. The conflict message does not say which field collided.
var (
	ErrRegistrationConflict = &AuthError{Kind: KindConflict, Message: "Username or email already exists"}
	ErrRegistrationFailed   = &AuthError{Kind: KindInternal, Message: "Error occurred during registration"}
)

// KindOf maps any error to the kind a caller should act on.
func KindOf(err error) ErrorKind {
	var authErr *AuthError
	switch {
	case errors.As(err, &authErr):
		return authErr.Kind
	case errors.Is(err, ErrAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrTokenInvalid):
		return KindUnauthorized
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
