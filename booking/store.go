/*
store.go - Persistence interfaces for reports, users, and sessions

PURPOSE:
  Defines the interface between the domain logic and storage. Callers obtain
  a store by injection; nothing in the engine reaches into ambient global
  state. Two implementations exist: booking/store (in-memory) and
  store/sqlite (durable, device-local).

APPEND-BY-CONVENTION:
  Reports are immutable once inserted. The only mutation the ReportStore
  offers besides Insert is Delete, which exists for the explicit,
  permission-gated delete operation. "Editing" a payment is modeled as
  inserting a new installment record, never rewriting an existing one.

ORDERING CONTRACT:
  Insert prepends: List returns records newest-first in insertion order.
  Booking lookups depend on this - the first match for a booking ID is the
  most recently written record for it.

SEE ALSO:
  - store/memory.go: In-memory implementation
  - store/sqlite/sqlite.go: SQLite implementation
*/
package booking

import "context"

// =============================================================================
// REPORT STORE
// =============================================================================

// ReportStore persists Report records.
//
// Insert prepends, so List and ByBookingID return records in newest-first
// insertion order. There is no Update: records are immutable.
type ReportStore interface {
	// Insert persists a fully-populated record at the head of the store.
	Insert(ctx context.Context, r Report) error

	// List returns every record, newest-first.
	List(ctx context.Context) ([]Report, error)

	// Get returns the record with the given store ID, or ErrReportNotFound.
	Get(ctx context.Context, id ReportID) (*Report, error)

	// ByBookingID returns every record carrying the booking ID,
	// newest-first. Empty slice when none match.
	ByBookingID(ctx context.Context, bookingID BookingID) ([]Report, error)

	// Delete removes the record with the given store ID.
	// Returns ErrReportNotFound when the ID does not exist.
	// Permission checks happen above the store; see access.go.
	Delete(ctx context.Context, id ReportID) error

	// Reset removes every report record. Users and sessions survive; demo
	// scenario loads call this before inserting their dataset.
	Reset(ctx context.Context) error
}

// =============================================================================
// USER STORE
// =============================================================================

// UserStore persists user accounts.
type UserStore interface {
	ListUsers(ctx context.Context) ([]User, error)

	// GetUser returns the user with the given ID, or ErrUserNotFound.
	GetUser(ctx context.Context, id UserID) (*User, error)

	// GetUserByUsername returns the user with the given username, or
	// ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// CreateUser persists a new user. Returns ErrDuplicateUsername when the
	// username is already taken.
	CreateUser(ctx context.Context, u User) error

	// UpdateUser replaces the stored user with the same ID.
	// Returns ErrUserNotFound when the ID does not exist.
	UpdateUser(ctx context.Context, u User) error

	// DeleteUser removes the user. Returns ErrUserNotFound when absent.
	DeleteUser(ctx context.Context, id UserID) error
}

// =============================================================================
// SESSION STORE
// =============================================================================

// SessionStore maps opaque session tokens to the authenticated user's
// profile. The stored profile never includes the credential; the auth
// service blanks the password before handing the user over.
type SessionStore interface {
	PutSession(ctx context.Context, token string, u User) error

	// GetSession returns the profile bound to the token, or
	// ErrNotAuthenticated when the token is unknown.
	GetSession(ctx context.Context, token string) (*User, error)

	DeleteSession(ctx context.Context, token string) error
}

// =============================================================================
// COMBINED STORE
// =============================================================================

// Store is the full persistence surface the server wires up. Both provided
// implementations satisfy it.
type Store interface {
	ReportStore
	UserStore
	SessionStore
}
