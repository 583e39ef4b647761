package domain

import (
	"errors"
	"sort"
	"strings"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication is missing for a protected resource
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the auth token has a valid signature but is past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed, badly signed or issued for someone else
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries per-field messages for rejected client input.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns nil when fields is empty.
func NewValidationError(fields map[string]string) *ValidationError {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
