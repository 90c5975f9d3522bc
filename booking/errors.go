/*
errors.go - Centralized error types for the booking engine

PURPOSE:
  All domain error types in one place. Callers branch on sentinels with
  errors.Is(); the API layer maps them to HTTP statuses.

ERROR CATEGORIES:
  1. NotFound    - booking / report / user absent
  2. Permission  - role or ownership check failed
  3. Validation  - caller-supplied input rejected

DEGRADATION RULE:
  Reconciliation and history lookups never surface NotFound for an absent
  ledger; they degrade to empty/zero results. Hard failures are reserved for
  destructive or identity-bound operations: delete, user management, and
  installment processing against an unknown booking.

SEE ALSO:
  - resolver.go, installment.go, access.go: producers of these errors
*/
package booking

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrBookingNotFound is returned when no record carries the requested
	// booking ID. Callers must branch on it; it is never a panic path.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrReportNotFound is returned when a store ID does not exist.
	ErrReportNotFound = errors.New("report not found")

	// ErrUserNotFound is returned when a referenced user doesn't exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPermissionDenied is returned when the acting user is neither the
	// record owner nor a supervisor.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotAuthenticated is returned when an operation requires a logged-in
	// user and none is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrDuplicateUsername is returned when creating a user whose username
	// is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrValidation is the base error for rejected caller input.
	ErrValidation = errors.New("validation failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// PermissionError carries who was denied what.
type PermissionError struct {
	UserID UserID
	Action string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s", e.UserID, e.Action)
}

func (e *PermissionError) Unwrap() error {
	return ErrPermissionDenied
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrReportNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsClientError returns true if the error is due to invalid client input or
// a denied action, as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrDuplicateUsername)
}
