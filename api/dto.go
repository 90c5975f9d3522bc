/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model from
  the wire contract. Field keys are camelCase to match the record shape the
  browser frontend stores and submits.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request structs carry validator/v10 tags; handlers run them through the
  shared validator before touching domain logic. Money amounts arrive as
  strings and get their numeric checks in the handler (the one that matters:
  installment amounts must be strictly positive).

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/traveldesk/sales-engine/booking"
)

// =============================================================================
// AUTH
// =============================================================================

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the opened session and the authenticated profile.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO represents a user in API responses. Never carries the password.
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Region   string `json:"region"`
}

// CreateUserRequest is the request to create a user (supervisor only).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=agent supervisor"`
	Region   string `json:"region" validate:"required"`
}

// UpdateUserRequest is the request to update a user. An empty password
// keeps the current one.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=agent supervisor"`
	Region   string `json:"region" validate:"required"`
}

// =============================================================================
// REPORTS
// =============================================================================

// ReportDTO is the full record shape returned to clients.
type ReportDTO struct {
	ID                  string `json:"id"`
	BookingID           string `json:"bookingId"`
	UserID              string `json:"userId"`
	AgentName           string `json:"agentName"`
	Timestamp           string `json:"timestamp"`
	Region              string `json:"region"`
	BookingType         string `json:"bookingType"`
	Date                string `json:"date"`
	Source              string `json:"source"`
	CustomerName        string `json:"customerName"`
	CustomerNationality string `json:"customerNationality"`
	CustomerMobile      string `json:"customerMobile"`
	Service             string `json:"service"`
	Provider            string `json:"provider"`
	Destination         string `json:"destination"`
	CheckIn             string `json:"checkIn"`
	PaxNumber           string `json:"paxNumber"`
	Currency            string `json:"currency"`
	NetRate             string `json:"netRate"`
	SellingRate         string `json:"sellingRate"`
	PaymentMethod       string `json:"paymentMethod"`
	PaymentLink         string `json:"paymentLink,omitempty"`
	Installment         string `json:"installment"`
	InstallmentPaid     string `json:"installmentPaid,omitempty"`
	DueDate             string `json:"dueDate,omitempty"`
	Remarks             string `json:"remarks,omitempty"`
	BankFileName        string `json:"bankFileName,omitempty"`
	VoucherFileName     string `json:"voucherFileName,omitempty"`
	InvoiceFileName     string `json:"invoiceFileName,omitempty"`
	OriginalBookingID   string `json:"originalBookingId,omitempty"`
}

// CreateReportRequest is a submitted sales report. Identity fields (id,
// timestamp, userId) are system-assigned and not accepted from the client.
type CreateReportRequest struct {
	BookingID           string `json:"bookingId" validate:"required"`
	AgentName           string `json:"agentName"`
	Region              string `json:"region"`
	BookingType         string `json:"bookingType"`
	Date                string `json:"date"`
	Source              string `json:"source"`
	CustomerName        string `json:"customerName" validate:"required"`
	CustomerNationality string `json:"customerNationality"`
	CustomerMobile      string `json:"customerMobile"`
	Service             string `json:"service" validate:"required"`
	Provider            string `json:"provider"`
	Destination         string `json:"destination"`
	CheckIn             string `json:"checkIn"`
	PaxNumber           string `json:"paxNumber"`
	Currency            string `json:"currency"`
	NetRate             string `json:"netRate"`
	SellingRate         string `json:"sellingRate" validate:"required"`
	PaymentMethod       string `json:"paymentMethod"`
	PaymentLink         string `json:"paymentLink"`
	Installment         string `json:"installment" validate:"omitempty,oneof=Yes No"`
	InstallmentPaid     string `json:"installmentPaid"`
	DueDate             string `json:"dueDate"`
	Remarks             string `json:"remarks"`
	BankFileName        string `json:"bankFileName"`
	VoucherFileName     string `json:"voucherFileName"`
	InvoiceFileName     string `json:"invoiceFileName"`
}

// FilterRequest mirrors booking.Filter for the advanced-filter endpoint.
type FilterRequest struct {
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	BookingType   string `json:"bookingType"`
	Region        string `json:"region"`
	AgentName     string `json:"agentName"`
	Service       string `json:"service"`
	Provider      string `json:"provider"`
	Destination   string `json:"destination"`
	CustomerName  string `json:"customerName"`
	PaymentMethod string `json:"paymentMethod"`
	Installment   string `json:"installment"`
	MinAmount     string `json:"minAmount"`
	MaxAmount     string `json:"maxAmount"`
}

func (f FilterRequest) toFilter() booking.Filter {
	return booking.Filter{
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		BookingType:   f.BookingType,
		Region:        f.Region,
		AgentName:     f.AgentName,
		Service:       f.Service,
		Provider:      f.Provider,
		Destination:   f.Destination,
		CustomerName:  f.CustomerName,
		PaymentMethod: f.PaymentMethod,
		Installment:   f.Installment,
		MinAmount:     f.MinAmount,
		MaxAmount:     f.MaxAmount,
	}
}

// =============================================================================
// BOOKINGS & INSTALLMENTS
// =============================================================================

// PaymentSummaryDTO is the reconciled state of a booking, rendered with two
// decimal places as amounts are throughout.
type PaymentSummaryDTO struct {
	TotalPaid string `json:"totalPaid"`
	Remaining string `json:"remaining"`
}

// BookingLookupResponse is the lookup screen payload: the representative
// record, the full ledger, and the reconciled totals.
type BookingLookupResponse struct {
	Booking  ReportDTO         `json:"booking"`
	History  []ReportDTO       `json:"history"`
	Payments PaymentSummaryDTO `json:"payments"`
}

// InstallmentRequest carries a new partial payment against a booking.
type InstallmentRequest struct {
	AgentName       string `json:"agentName"`
	InstallmentPaid string `json:"installmentPaid" validate:"required"`
	PaymentMethod   string `json:"paymentMethod" validate:"required"`
	PaymentLink     string `json:"paymentLink"`
	DueDate         string `json:"dueDate"`
	Remarks         string `json:"remarks"`
	BankFileName    string `json:"bankFileName"`
	VoucherFileName string `json:"voucherFileName"`
	InvoiceFileName string `json:"invoiceFileName"`
}

// OverdueDTO is one past-due booking with its outstanding balance.
type OverdueDTO struct {
	Report    ReportDTO `json:"report"`
	Remaining string    `json:"remaining"`
}

// =============================================================================
// STATISTICS & EXPORT
// =============================================================================

// StatPointDTO is one grouped total for the dashboard charts.
type StatPointDTO struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StatsResponse is the supervisor dashboard payload.
type StatsResponse struct {
	SalesByRegion  []StatPointDTO `json:"salesByRegion"`
	SalesByAgent   []StatPointDTO `json:"salesByAgent"`
	SalesByMonth   []StatPointDTO `json:"salesByMonth"`
	SalesByService []StatPointDTO `json:"salesByService"`
}

// ExportRequest selects what to export: an optional filter plus an optional
// subset of report IDs (empty means every filtered record).
type ExportRequest struct {
	IDs    []string      `json:"ids"`
	Filter FilterRequest `json:"filter"`
}

// ScenarioDTO describes a loadable demo dataset.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toReportDTO(r *booking.Report) ReportDTO {
	return ReportDTO{
		ID:                  string(r.ID),
		BookingID:           string(r.BookingID),
		UserID:              string(r.UserID),
		AgentName:           r.AgentName,
		Timestamp:           r.Timestamp.UTC().Format(time.RFC3339),
		Region:              r.Region,
		BookingType:         r.BookingType,
		Date:                r.Date,
		Source:              r.Source,
		CustomerName:        r.CustomerName,
		CustomerNationality: r.CustomerNationality,
		CustomerMobile:      r.CustomerMobile,
		Service:             r.Service,
		Provider:            r.Provider,
		Destination:         r.Destination,
		CheckIn:             r.CheckIn,
		PaxNumber:           r.PaxNumber,
		Currency:            r.Currency,
		NetRate:             r.NetRate,
		SellingRate:         r.SellingRate,
		PaymentMethod:       r.PaymentMethod,
		PaymentLink:         r.PaymentLink,
		Installment:         r.Installment,
		InstallmentPaid:     r.InstallmentPaid,
		DueDate:             r.DueDate,
		Remarks:             r.Remarks,
		BankFileName:        r.BankFileName,
		VoucherFileName:     r.VoucherFileName,
		InvoiceFileName:     r.InvoiceFileName,
		OriginalBookingID:   string(r.OriginalBookingID),
	}
}

func toReportDTOs(reports []booking.Report) []ReportDTO {
	dtos := make([]ReportDTO, len(reports))
	for i := range reports {
		dtos[i] = toReportDTO(&reports[i])
	}
	return dtos
}

func toUserDTO(u *booking.User) UserDTO {
	return UserDTO{
		ID:       string(u.ID),
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
		Region:   u.Region,
	}
}

func toStatPoints(points []booking.StatPoint) []StatPointDTO {
	dtos := make([]StatPointDTO, len(points))
	for i, p := range points {
		dtos[i] = StatPointDTO{Name: p.Name, Value: p.Value.InexactFloat64()}
	}
	return dtos
}
