/*
Package auth provides login, sessions, and user management.

PURPOSE:
  The identity/session provider for the sales engine. Users authenticate
  with username/password, receive an opaque session token, and the session
  binds the token to the user's profile with the credential stripped.

SECURITY MODEL:
  Passwords are stored and compared in plaintext. This tool runs on a single
  operator's machine with a seeded demo user set; it is bookkeeping, not a
  security boundary. Anything touching real credentials would need hashing
  and a real session scheme first.

USER MANAGEMENT:
  Listing, creating, updating, and deleting users is supervisor-only and
  routes through booking.RequireSupervisor. Listings never expose stored
  passwords.
*/
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/traveldesk/sales-engine/booking"
)

// ErrInvalidCredentials is returned by Login when the username/password pair
// matches no user.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Store is the persistence surface the auth service needs.
type Store interface {
	booking.UserStore
	booking.SessionStore
}

// Service implements authentication and user management over a store.
type Service struct {
	Store Store
}

// NewService creates an auth service over the given store.
func NewService(store Store) *Service {
	return &Service{Store: store}
}

// =============================================================================
// SESSIONS
// =============================================================================

// Login authenticates the credentials and opens a session. The returned
// profile and the stored session never carry the password.
func (s *Service) Login(ctx context.Context, username, password string) (*booking.User, string, error) {
	u, err := s.Store.GetUserByUsername(ctx, username)
	if err != nil {
		if booking.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if u.Password != password {
		return nil, "", ErrInvalidCredentials
	}

	profile := *u
	profile.Password = ""

	token := uuid.NewString()
	if err := s.Store.PutSession(ctx, token, profile); err != nil {
		return nil, "", err
	}
	return &profile, token, nil
}

// Logout closes the session. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.Store.DeleteSession(ctx, token)
}

// CurrentUser resolves a session token to the authenticated profile.
// Returns booking.ErrNotAuthenticated for unknown tokens.
func (s *Service) CurrentUser(ctx context.Context, token string) (*booking.User, error) {
	return s.Store.GetSession(ctx, token)
}

// =============================================================================
// USER MANAGEMENT (supervisor-only)
// =============================================================================

// ListUsers returns every user with passwords stripped.
func (s *Service) ListUsers(ctx context.Context, actor *booking.User) ([]booking.User, error) {
	if err := booking.RequireSupervisor(actor, "list users"); err != nil {
		return nil, err
	}
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// CreateUser adds a new user account. Duplicate usernames are rejected.
func (s *Service) CreateUser(ctx context.Context, actor *booking.User, u booking.User) (*booking.User, error) {
	if err := booking.RequireSupervisor(actor, "create user"); err != nil {
		return nil, err
	}
	if u.Username == "" || u.Password == "" || u.Name == "" {
		return nil, &booking.ValidationError{Field: "user", Message: "username, password, and name are required"}
	}
	if !u.Role.Valid() {
		return nil, &booking.ValidationError{Field: "role", Message: "must be agent or supervisor"}
	}

	u.ID = booking.UserID(uuid.NewString())
	if err := s.Store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	created := u
	created.Password = ""
	return &created, nil
}

// UpdateUser replaces a user's profile, preserving the ID. An empty password
// keeps the existing credential.
func (s *Service) UpdateUser(ctx context.Context, actor *booking.User, id booking.UserID, u booking.User) error {
	if err := booking.RequireSupervisor(actor, "update user"); err != nil {
		return err
	}
	existing, err := s.Store.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.Username == "" || u.Name == "" {
		return &booking.ValidationError{Field: "user", Message: "username and name are required"}
	}
	if !u.Role.Valid() {
		return &booking.ValidationError{Field: "role", Message: "must be agent or supervisor"}
	}

	u.ID = id
	if u.Password == "" {
		u.Password = existing.Password
	}
	return s.Store.UpdateUser(ctx, u)
}

// DeleteUser removes a user account.
func (s *Service) DeleteUser(ctx context.Context, actor *booking.User, id booking.UserID) error {
	if err := booking.RequireSupervisor(actor, "delete user"); err != nil {
		return err
	}
	return s.Store.DeleteUser(ctx, id)
}

// =============================================================================
// DEMO USERS
// =============================================================================

// DemoUsers is the seeded account set a fresh installation starts with.
func DemoUsers() []booking.User {
	return []booking.User{
		{ID: "admin-uuid", Username: "Remon", Password: "admin123", Name: "Admin User", Role: booking.RoleSupervisor, Region: booking.RegionAll},
		{ID: "agent1-uuid", Username: "agent1", Password: "agent123", Name: "Remon", Role: booking.RoleAgent, Region: "Egypt"},
		{ID: "agent2-uuid", Username: "agent2", Password: "agent123", Name: "Sarah Johnson", Role: booking.RoleAgent, Region: "UAE"},
		{ID: "agent3-uuid", Username: "agent3", Password: "agent123", Name: "Mohammed Al-Fayed", Role: booking.RoleAgent, Region: "Saudi Arabia"},
	}
}

// SeedDemoUsers creates the demo accounts when the user table is empty.
func (s *Service) SeedDemoUsers(ctx context.Context) error {
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	for _, u := range DemoUsers() {
		if err := s.Store.CreateUser(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
