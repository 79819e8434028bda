// Package domain contains the core business entities for the catalog service.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors and are always recoverable:
// the caller picks a different key, fixes its input, or uses an existing
// identifier.

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername indicates a user with the same username exists.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrDuplicateEmail indicates a user with the same email exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUserInactive indicates the user account is not active.
	ErrUserInactive = errors.New("user account is inactive")

	// ErrInvalidCredentials indicates the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateProductCode indicates a product with the same code exists.
	ErrDuplicateProductCode = errors.New("product code already registered")

	// ErrNegativeStock indicates a stock adjustment would go below zero.
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// ValidationError carries the full, ordered list of field-level rule
// violations found in one validation pass. Every rule is evaluated; nothing
// short-circuits, so the caller sees all problems at once.
type ValidationError struct {
	// Violations holds one human-readable message per failed rule, in
	// rule-evaluation order.
	Violations []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, ", ")
}

// NewValidationError wraps a non-empty violation list.
func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// AsValidation extracts the ValidationError from err, if it is (or wraps)
// one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// DuplicateValueError attaches the colliding value to a duplicate-key
// sentinel, so the caller can see which email, username or code was
// already taken. errors.Is against the sentinel matches through Unwrap.
type DuplicateValueError struct {
	// Err is the duplicate-key sentinel.
	Err error

	// Value is the value that collided.
	Value string
}

// Error implements the error interface.
func (e *DuplicateValueError) Error() string {
	if e.Value == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Value)
}

// Unwrap returns the sentinel for errors.Is/errors.As.
func (e *DuplicateValueError) Unwrap() error {
	return e.Err
}

// NewDuplicateValueError wraps sentinel with the colliding value.
func NewDuplicateValueError(sentinel error, value string) *DuplicateValueError {
	return &DuplicateValueError{Err: sentinel, Value: value}
}
