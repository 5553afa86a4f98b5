// Package apperr defines the error taxonomy the service layer surfaces to
// HTTP handlers. Every store access is wrapped into one of these kinds so
// handlers can map errors to status codes with errors.Is instead of string
// matching, and so raw driver errors never leak to clients.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a user, product, clip or article ID that does not
	// resolve to an existing record.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a rejected duplicate, e.g. adding a product that is
	// already in the cart.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated marks a missing, invalid, expired or revoked
	// session, and failed OTP verification.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrStore marks an underlying store failure (query error, connection
	// loss). Its message is elided in production responses.
	ErrStore = errors.New("store failure")
)

// NotFound builds an ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Conflict builds an ErrConflict with a formatted message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// Unauthenticated builds an ErrUnauthenticated with a formatted message.
func Unauthenticated(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnauthenticated)
}

// Store wraps a raw store error, keeping the cause in the chain.
func Store(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, err, ErrStore)
}
