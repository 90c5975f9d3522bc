/*
Package booking provides the core sales-report and installment engine.

PURPOSE:
  This package contains the domain types and algorithms for tracking travel
  bookings and the partial payments made against them. A booking sale and
  every installment paid toward it are recorded as immutable Report records;
  how much of a booking has been paid is always computed by replaying those
  records, never stored.

KEY CONCEPTS IN THIS FILE (types.go):
  - Report: An immutable record of a sale or an installment payment
  - User / Role: The acting identity and its closed role variant
  - ReportID / BookingID / UserID: Type-safe identifiers
  - Amount parsing: lenient decimal parsing for money fields

DESIGN PRINCIPLES:
  1. Immutability: Reports are never modified; corrections append new records
  2. Precision: Uses decimal.Decimal to avoid floating-point money errors
  3. Copy-through: SellingRate is fixed at sale time and copied verbatim onto
     every installment record derived from the original booking
  4. Lenient amounts: money fields arrive as free text from the form; a value
     that does not parse counts as zero, never as an error

SEE ALSO:
  - store.go: Persistence interfaces
  - resolver.go: Booking lookup and ledger retrieval
  - reconcile.go: Paid/remaining calculation
  - installment.go: Installment record construction
*/
package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// ReportID is the store identity of a single persisted record.
type ReportID string

// BookingID is the business identifier of a booking. It is shared by the
// original sale record and every installment record paid against it, so it
// is NOT unique across the store.
type BookingID string

// UserID identifies the user that created a record.
type UserID string

// =============================================================================
// MONEY
// =============================================================================

// ParseAmount parses a money field captured as free text. Missing or
// unparsable values count as zero.
func ParseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders a money value the way it is displayed throughout the
// system: two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// =============================================================================
// REPORT - The only persisted business entity
// =============================================================================

// Installment flag values. The original form captures this as a literal
// Yes/No choice and every downstream decision compares against it.
const (
	InstallmentYes = "Yes"
	InstallmentNo  = "No"
)

// BookingTypeInstallment marks records created by the installment writer, as
// opposed to types chosen on the sales form (e.g. "New", "Amendment").
const BookingTypeInstallment = "Installment"

// Report records either an original booking sale or a subsequent installment
// payment against one.
//
// The set of all Reports sharing a BookingID forms that booking's payment
// ledger. Booking-descriptive fields are owned by the original sale record
// and copied verbatim onto every installment record; the payment fields
// describe only the transaction captured by this record.
type Report struct {
	ID        ReportID
	BookingID BookingID

	// Provenance
	UserID    UserID
	AgentName string
	Timestamp time.Time // creation instant, immutable, ordering key
	Region    string

	// Booking-descriptive fields (copied through to installments)
	BookingType         string
	Date                string // sale/payment date as entered, YYYY-MM-DD
	Source              string
	CustomerName        string
	CustomerNationality string
	CustomerMobile      string
	Service             string
	Provider            string
	Destination         string
	CheckIn             string
	PaxNumber           string
	Currency            string
	NetRate             string
	SellingRate         string // authoritative total owed for the BookingID

	// Payment fields (this record only)
	PaymentMethod   string
	PaymentLink     string
	Installment     string // "Yes" or "No"
	InstallmentPaid string // amount captured by THIS record, a delta
	DueDate         string
	Remarks         string

	// File references (names only, files never stored)
	BankFileName    string
	VoucherFileName string
	InvoiceFileName string

	// Back-reference from an installment record to the store ID of the
	// original booking record. Empty on original sale records.
	OriginalBookingID ReportID
}

// SellingRateAmount returns the authoritative total owed, parsed leniently.
func (r *Report) SellingRateAmount() decimal.Decimal {
	return ParseAmount(r.SellingRate)
}

// InstallmentPaidAmount returns the amount captured by this record.
func (r *Report) InstallmentPaidAmount() decimal.Decimal {
	return ParseAmount(r.InstallmentPaid)
}

// IsInstallment reports whether this record represents a partial payment.
func (r *Report) IsInstallment() bool {
	return r.Installment == InstallmentYes
}

// =============================================================================
// USER & ROLE
// =============================================================================

// Role is a closed variant: every user is exactly one of these. Permission
// decisions route through the capability checks in access.go rather than
// comparing role strings at call sites.
type Role string

const (
	RoleAgent      Role = "agent"
	RoleSupervisor Role = "supervisor"
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	return r == RoleAgent || r == RoleSupervisor
}

// RegionAll is the region assigned to supervisors, who are not scoped to any
// single region.
const RegionAll = "All"

// User is an operating identity: an agent scoped to a region, or a
// supervisor with full visibility.
type User struct {
	ID       UserID
	Username string
	Password string // stored and compared in plaintext; see auth package
	Name     string
	Role     Role
	Region   string
}

// IsSupervisor reports whether the user holds the supervisor role.
func (u *User) IsSupervisor() bool {
	return u != nil && u.Role == RoleSupervisor
}
