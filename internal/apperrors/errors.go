// Package apperrors defines the error taxonomy shared by the service and
// HTTP layers. Handlers map these onto status codes; anything unrecognized
// is treated as an internal failure and never shown to the client in detail.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both codes that never existed and codes that have
// expired. The two cases are deliberately indistinguishable so that probing
// cannot reveal whether a message ever existed.
var ErrNotFound = errors.New("message not found")

// ErrUnauthorized is returned when the admin shared secret does not match.
var ErrUnauthorized = errors.New("unauthorized")

// ErrCollisionExhausted is returned when code generation failed to find a
// free code within the attempt budget. With a 62^7 keyspace this indicates
// an operational problem, not normal load.
var ErrCollisionExhausted = errors.New("could not generate a unique code")

// ValidationError reports client-correctable input problems.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for a field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StoreError wraps any failure talking to the backing store. The wrapped
// detail is for server-side logs only.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError.
func Store(err error) error {
	return &StoreError{Err: err}
}
