// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}

// Sentinel errors for the service layer. Handlers map these onto HTTP status
// codes; anything unrecognized becomes a 500.
var (
	// ErrNotFound: a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState: an operation attempted against the wrong lifecycle state.
	ErrInvalidState = errors.New("invalid state")
	// ErrInsufficientStock: a decrement would push on-hand quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicate: a unique key (email, phone) is already taken.
	ErrDuplicate = errors.New("duplicate")
	// ErrUnauthorized: bad credentials or an invalid or revoked token.
	ErrUnauthorized = errors.New("unauthorized")
)
