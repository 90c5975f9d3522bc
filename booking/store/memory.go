// Package store provides an in-memory booking.Store implementation.
package store

import (
	"context"
	"sync"

	"github.com/traveldesk/sales-engine/booking"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps reports, users, and sessions in process memory. Reports are
// held newest-first; Insert prepends, matching the durable store's ordering
// contract.
type Memory struct {
	mu       sync.RWMutex
	reports  []booking.Report
	users    map[booking.UserID]booking.User
	sessions map[string]booking.User
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[booking.UserID]booking.User),
		sessions: make(map[string]booking.User),
	}
}

// =============================================================================
// REPORT STORE
// =============================================================================

// Insert prepends the record; the store reads newest-first.
func (m *Memory) Insert(_ context.Context, r booking.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append([]booking.Report{r}, m.reports...)
	return nil
}

func (m *Memory) List(_ context.Context) ([]booking.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]booking.Report, len(m.reports))
	copy(out, m.reports)
	return out, nil
}

func (m *Memory) Get(_ context.Context, id booking.ReportID) (*booking.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reports {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, booking.ErrReportNotFound
}

func (m *Memory) ByBookingID(_ context.Context, bookingID booking.BookingID) ([]booking.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []booking.Report
	for _, r := range m.reports {
		if r.BookingID == bookingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id booking.ReportID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reports {
		if r.ID == id {
			m.reports = append(m.reports[:i], m.reports[i+1:]...)
			return nil
		}
	}
	return booking.ErrReportNotFound
}

// Reset drops every report. Users and sessions are untouched.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = nil
	return nil
}

// =============================================================================
// USER STORE
// =============================================================================

func (m *Memory) ListUsers(_ context.Context) ([]booking.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]booking.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *Memory) GetUser(_ context.Context, id booking.UserID) (*booking.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, booking.ErrUserNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*booking.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, booking.ErrUserNotFound
}

func (m *Memory) CreateUser(_ context.Context, u booking.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return booking.ErrDuplicateUsername
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *Memory) UpdateUser(_ context.Context, u booking.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return booking.ErrUserNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *Memory) DeleteUser(_ context.Context, id booking.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return booking.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// =============================================================================
// SESSION STORE
// =============================================================================

func (m *Memory) PutSession(_ context.Context, token string, u booking.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = u
	return nil
}

func (m *Memory) GetSession(_ context.Context, token string) (*booking.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.sessions[token]
	if !ok {
		return nil, booking.ErrNotAuthenticated
	}
	return &u, nil
}

func (m *Memory) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}
