package common

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer. Handlers map them to HTTP status codes
// with errors.Is, so services and repositories must wrap rather than replace them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)

// DomainError pairs one of the error kinds above with a message that is safe
// to show to the caller.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// Validation builds an ErrValidation with a caller-facing message.
func Validation(format string, args ...any) error {
	return &DomainError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound for the named resource.
func NotFound(resource string) error {
	return &DomainError{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Conflict builds an ErrConflict with a caller-facing message.
func Conflict(format string, args ...any) error {
	return &DomainError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds an ErrUnauthorized with a caller-facing message.
func Unauthorized(message string) error {
	return &DomainError{Kind: ErrUnauthorized, Message: message}
}

// InvalidToken wraps a token decoding failure. The cause is kept for logging
// but never becomes part of the message.
func InvalidToken(cause error) error {
	return fmt.Errorf("%w: %w", &DomainError{Kind: ErrInvalidToken, Message: "invalid token"}, cause)
}

// PublicMessage returns the caller-facing message carried by err, or fallback
// when err carries none.
func PublicMessage(err error, fallback string) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return fallback
}
