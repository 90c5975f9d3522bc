/*
Package sqlite provides the SQLite-backed implementation of booking.Store.

PURPOSE:
  All persisted state - reports, user accounts, active sessions - lives in a
  single device-local SQLite file. There is no database server and no
  network dependency; the file is the installation.

INTERFACES IMPLEMENTED:
  booking.ReportStore:  the report records (the payment ledger)
  booking.UserStore:    user accounts
  booking.SessionStore: token -> profile bindings

ORDERING:
  Reports carry a monotonically increasing seq assigned on insert. Reads
  order by seq DESC, which reproduces the newest-first insertion order the
  resolver depends on.

IMMUTABILITY:
  There is no UPDATE statement on the reports table. The only destructive
  operation is the explicit, permission-gated delete.

CONCURRENCY:
  Uses sync.RWMutex for in-process thread-safety; SQLite is opened in WAL
  mode. A second process writing the same file is last-writer-wins, which is
  accepted behavior for a single-operator tool.

USAGE:
  st, err := sqlite.New("./sales.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - booking/store.go: Interface definitions
  - booking/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/traveldesk/sales-engine/booking"
)

// Store implements booking.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Reports (immutable once written; seq preserves insertion order)
	CREATE TABLE IF NOT EXISTS reports (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		booking_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		agent_name TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		region TEXT,
		booking_type TEXT,
		date TEXT,
		source TEXT,
		customer_name TEXT,
		customer_nationality TEXT,
		customer_mobile TEXT,
		service TEXT,
		provider TEXT,
		destination TEXT,
		check_in TEXT,
		pax_number TEXT,
		currency TEXT,
		net_rate TEXT,
		selling_rate TEXT,
		payment_method TEXT,
		payment_link TEXT,
		installment TEXT,
		installment_paid TEXT,
		due_date TEXT,
		remarks TEXT,
		bank_file_name TEXT,
		voucher_file_name TEXT,
		invoice_file_name TEXT,
		original_booking_id TEXT
	);

	-- Booking lookups and ledger retrieval (hot path)
	CREATE INDEX IF NOT EXISTS idx_reports_booking_id
		ON reports(booking_id, seq DESC);
	CREATE INDEX IF NOT EXISTS idx_reports_user
		ON reports(user_id);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp
		ON reports(timestamp);

	-- Users
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		region TEXT NOT NULL
	);

	-- Sessions (token -> profile sans credential)
	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		username TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		region TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// REPORT STORE (booking.ReportStore interface)
// =============================================================================

const reportColumns = `id, booking_id, user_id, agent_name, timestamp, region,
	booking_type, date, source, customer_name, customer_nationality,
	customer_mobile, service, provider, destination, check_in, pax_number,
	currency, net_rate, selling_rate, payment_method, payment_link,
	installment, installment_paid, due_date, remarks, bank_file_name,
	voucher_file_name, invoice_file_name, original_booking_id`

// Insert persists a record. Newer records get a higher seq, so seq DESC
// reads reproduce prepend order.
func (s *Store) Insert(ctx context.Context, r booking.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.BookingID,
		r.UserID,
		r.AgentName,
		r.Timestamp.UTC().Format(time.RFC3339Nano),
		r.Region,
		r.BookingType,
		r.Date,
		r.Source,
		r.CustomerName,
		r.CustomerNationality,
		r.CustomerMobile,
		r.Service,
		r.Provider,
		r.Destination,
		r.CheckIn,
		r.PaxNumber,
		r.Currency,
		r.NetRate,
		r.SellingRate,
		r.PaymentMethod,
		r.PaymentLink,
		r.Installment,
		r.InstallmentPaid,
		r.DueDate,
		r.Remarks,
		r.BankFileName,
		r.VoucherFileName,
		r.InvoiceFileName,
		r.OriginalBookingID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// List returns every report, newest-first.
func (s *Store) List(ctx context.Context) ([]booking.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY seq DESC`
	return s.queryReports(ctx, query)
}

// Get returns the report with the given store ID.
func (s *Store) Get(ctx context.Context, id booking.ReportID) (*booking.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`
	reports, err := s.queryReports(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, booking.ErrReportNotFound
	}
	return &reports[0], nil
}

// ByBookingID returns every record for the booking, newest-first.
func (s *Store) ByBookingID(ctx context.Context, bookingID booking.BookingID) ([]booking.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + reportColumns + ` FROM reports WHERE booking_id = ? ORDER BY seq DESC`
	return s.queryReports(ctx, query, bookingID)
}

// Delete removes a record by store ID.
func (s *Store) Delete(ctx context.Context, id booking.ReportID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.ErrReportNotFound
	}
	return nil
}

// Reset drops every report row. Users and sessions are untouched.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM reports`); err != nil {
		return fmt.Errorf("failed to reset reports: %w", err)
	}
	return nil
}

func (s *Store) queryReports(ctx context.Context, query string, args ...any) ([]booking.Report, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []booking.Report
	for rows.Next() {
		var r booking.Report
		var ts string
		if err := rows.Scan(
			&r.ID,
			&r.BookingID,
			&r.UserID,
			&r.AgentName,
			&ts,
			&r.Region,
			&r.BookingType,
			&r.Date,
			&r.Source,
			&r.CustomerName,
			&r.CustomerNationality,
			&r.CustomerMobile,
			&r.Service,
			&r.Provider,
			&r.Destination,
			&r.CheckIn,
			&r.PaxNumber,
			&r.Currency,
			&r.NetRate,
			&r.SellingRate,
			&r.PaymentMethod,
			&r.PaymentLink,
			&r.Installment,
			&r.InstallmentPaid,
			&r.DueDate,
			&r.Remarks,
			&r.BankFileName,
			&r.VoucherFileName,
			&r.InvoiceFileName,
			&r.OriginalBookingID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			r.Timestamp = t
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// =============================================================================
// USER STORE (booking.UserStore interface)
// =============================================================================

func (s *Store) ListUsers(ctx context.Context) ([]booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, password, name, role, region FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []booking.User
	for rows.Next() {
		var u booking.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Name, &u.Role, &u.Region); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) GetUser(ctx context.Context, id booking.UserID) (*booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryUser(ctx, `SELECT id, username, password, name, role, region FROM users WHERE id = ?`, string(id))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryUser(ctx, `SELECT id, username, password, name, role, region FROM users WHERE username = ?`, username)
}

func (s *Store) queryUser(ctx context.Context, query string, arg any) (*booking.User, error) {
	var u booking.User
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Password, &u.Name, &u.Role, &u.Region)
	if err == sql.ErrNoRows {
		return nil, booking.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u booking.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, name, role, region) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Password, u.Name, u.Role, u.Region)
	if err != nil {
		if isUniqueConstraintError(err) {
			return booking.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, u booking.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, password = ?, name = ?, role = ?, region = ? WHERE id = ?`,
		u.Username, u.Password, u.Name, u.Role, u.Region, u.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return booking.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.ErrUserNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id booking.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.ErrUserNotFound
	}
	return nil
}

// =============================================================================
// SESSION STORE (booking.SessionStore interface)
// =============================================================================

func (s *Store) PutSession(ctx context.Context, token string, u booking.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (token, user_id, username, name, role, region, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		token, u.ID, u.Username, u.Name, u.Role, u.Region,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, token string) (*booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u booking.User
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, username, name, role, region FROM sessions WHERE token = ?`, token).
		Scan(&u.ID, &u.Username, &u.Name, &u.Role, &u.Region)
	if err == sql.ErrNoRows {
		return nil, booking.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &u, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
