/*
handlers.go - HTTP API handlers for the sales reporting engine

PURPOSE:
  Exposes report submission, booking lookup, installment reconciliation,
  statistics, export, and user management via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/auth/login             Open a session
    POST   /api/auth/logout            Close the session
    GET    /api/auth/me                Current user profile

  Reports:
    GET    /api/reports                Visible reports (?scope=mine for own)
    POST   /api/reports                Submit a sales report
    POST   /api/reports/filter         Advanced filter over visible reports
    GET    /api/reports/{id}           Single report
    DELETE /api/reports/{id}           Delete (owner or supervisor)

  Bookings:
    GET    /api/bookings/{bookingId}               Lookup with payment state
    POST   /api/bookings/{bookingId}/installments  Record a partial payment

  Installments:
    GET    /api/installments/overdue   Past-due plans with open balances

  Statistics / Export (supervisor-facing):
    GET    /api/stats                  Sales totals by region/agent/month/service
    POST   /api/export/{csv,json,xlsx} Download filtered reports

  Users (supervisor only):
    GET/POST /api/users, PUT/DELETE /api/users/{id}

ARCHITECTURE:
  Handler struct holds all dependencies: the store, the auth service, and
  the domain services built over the store. Handlers never reach into the
  store for anything a domain service covers.

ERROR HANDLING:
  Domain errors map to HTTP statuses in respondError:
  - 400: Validation errors, invalid input
  - 401: Missing/invalid session, bad credentials
  - 403: Role or ownership check failed
  - 404: Booking, report, or user absent
  - 409: Duplicate username
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/traveldesk/sales-engine/auth"
	"github.com/traveldesk/sales-engine/booking"
	"github.com/traveldesk/sales-engine/export"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   booking.Store
	Auth    *auth.Service
	Reports *booking.ReportService
	Writer  *booking.InstallmentWriter

	resolver   *booking.Resolver
	reconciler *booking.Reconciler
	scanner    *booking.OverdueScanner

	validate *validator.Validate
	log      *logrus.Logger

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store booking.Store, log *logrus.Logger) *Handler {
	resolver := booking.NewResolver(store)
	reports := booking.NewReportService(store)
	return &Handler{
		Store:      store,
		Auth:       auth.NewService(store),
		Reports:    reports,
		Writer:     booking.NewInstallmentWriter(resolver, reports),
		resolver:   resolver,
		reconciler: booking.NewReconciler(resolver),
		scanner:    booking.NewOverdueScanner(store),
		validate:   validator.New(),
		log:        log,
	}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login opens a session for valid credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password are required", err)
		return
	}

	user, token, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, err, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: toUserDTO(user)})
}

// Logout closes the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), tokenFrom(r.Context())); err != nil {
		h.respondError(w, err, "Logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserDTO(userFrom(r.Context())))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// ListReports returns the reports visible to the caller: everything for a
// supervisor, own-name-or-region matches for an agent. ?scope=mine narrows
// to records the caller submitted.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var reports []booking.Report
	var err error
	if r.URL.Query().Get("scope") == "mine" {
		reports, err = h.Reports.UserReports(r.Context(), user.ID)
	} else {
		reports, err = h.Reports.SavedReports(r.Context(), user, true)
	}
	if err != nil {
		h.respondError(w, err, "Failed to list reports")
		return
	}

	writeJSON(w, http.StatusOK, toReportDTOs(reports))
}

// CreateReport submits a new sales report.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report", err)
		return
	}

	user := userFrom(r.Context())
	report := booking.Report{
		BookingID:           booking.BookingID(req.BookingID),
		AgentName:           req.AgentName,
		Region:              req.Region,
		BookingType:         req.BookingType,
		Date:                req.Date,
		Source:              req.Source,
		CustomerName:        req.CustomerName,
		CustomerNationality: req.CustomerNationality,
		CustomerMobile:      req.CustomerMobile,
		Service:             req.Service,
		Provider:            req.Provider,
		Destination:         req.Destination,
		CheckIn:             req.CheckIn,
		PaxNumber:           req.PaxNumber,
		Currency:            req.Currency,
		NetRate:             req.NetRate,
		SellingRate:         req.SellingRate,
		PaymentMethod:       req.PaymentMethod,
		PaymentLink:         req.PaymentLink,
		Installment:         req.Installment,
		InstallmentPaid:     req.InstallmentPaid,
		DueDate:             req.DueDate,
		Remarks:             req.Remarks,
		BankFileName:        req.BankFileName,
		VoucherFileName:     req.VoucherFileName,
		InvoiceFileName:     req.InvoiceFileName,
	}

	saved, err := h.Reports.SaveReport(r.Context(), user, report)
	if err != nil {
		h.respondError(w, err, "Failed to save report")
		return
	}

	writeJSON(w, http.StatusCreated, toReportDTO(saved))
}

// GetReport returns a single report if the caller is allowed to see it.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := booking.ReportID(chi.URLParam(r, "id"))
	user := userFrom(r.Context())

	report, err := h.Store.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "Failed to get report")
		return
	}
	if !booking.CanView(user, report) {
		writeError(w, http.StatusForbidden, "Permission denied", nil)
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// DeleteReport removes a report. Owners and supervisors only.
func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id := booking.ReportID(chi.URLParam(r, "id"))
	user := userFrom(r.Context())

	if err := h.Reports.DeleteReport(r.Context(), user, id); err != nil {
		h.respondError(w, err, "Failed to delete report")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// FilterReports applies the advanced filter over the caller's visible
// reports.
func (h *Handler) FilterReports(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user := userFrom(r.Context())
	reports, err := h.Reports.SavedReports(r.Context(), user, true)
	if err != nil {
		h.respondError(w, err, "Failed to list reports")
		return
	}

	writeJSON(w, http.StatusOK, toReportDTOs(req.toFilter().Apply(reports)))
}

// =============================================================================
// BOOKING HANDLERS
// =============================================================================

// GetBooking looks up a booking by its human-entered booking ID and returns
// the representative record, the full installment history, and the
// reconciled payment totals.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := booking.BookingID(chi.URLParam(r, "bookingId"))
	user := userFrom(r.Context())

	main, err := h.resolver.FindBookingByID(r.Context(), bookingID)
	if err != nil {
		h.respondError(w, err, "Failed to look up booking")
		return
	}
	if !booking.CanView(user, main) {
		writeError(w, http.StatusForbidden, "Permission denied", nil)
		return
	}

	history, err := h.resolver.InstallmentHistory(r.Context(), bookingID)
	if err != nil {
		h.respondError(w, err, "Failed to load installment history")
		return
	}

	payments := h.reconciler.CalculatePayments(r.Context(), bookingID)

	writeJSON(w, http.StatusOK, BookingLookupResponse{
		Booking: toReportDTO(main),
		History: toReportDTOs(history),
		Payments: PaymentSummaryDTO{
			TotalPaid: payments.TotalPaidString(),
			Remaining: payments.RemainingString(),
		},
	})
}

// CreateInstallment records a partial payment against an existing booking.
func (h *Handler) CreateInstallment(w http.ResponseWriter, r *http.Request) {
	bookingID := booking.BookingID(chi.URLParam(r, "bookingId"))
	user := userFrom(r.Context())

	var req InstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid installment", err)
		return
	}

	// Amounts are strings throughout; the strict positivity check lives
	// here, not in the writer.
	amount, err := decimal.NewFromString(req.InstallmentPaid)
	if err != nil || !amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "Installment amount must be a positive number", err)
		return
	}

	payment := booking.InstallmentPayment{
		AgentName:       req.AgentName,
		InstallmentPaid: req.InstallmentPaid,
		PaymentMethod:   req.PaymentMethod,
		PaymentLink:     req.PaymentLink,
		DueDate:         req.DueDate,
		Remarks:         req.Remarks,
		BankFileName:    req.BankFileName,
		VoucherFileName: req.VoucherFileName,
		InvoiceFileName: req.InvoiceFileName,
	}

	saved, err := h.Writer.ProcessInstallment(r.Context(), user, bookingID, payment)
	if err != nil {
		h.respondError(w, err, "Failed to record installment")
		return
	}

	payments := h.reconciler.CalculatePayments(r.Context(), bookingID)

	writeJSON(w, http.StatusCreated, map[string]any{
		"report": toReportDTO(saved),
		"payments": PaymentSummaryDTO{
			TotalPaid: payments.TotalPaidString(),
			Remaining: payments.RemainingString(),
		},
	})
}

// ListOverdue returns installment plans past their due date with money
// still outstanding, restricted to what the caller may see.
func (h *Handler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	overdue, err := h.scanner.FindOverdue(r.Context(), time.Now())
	if err != nil {
		h.respondError(w, err, "Failed to scan for overdue installments")
		return
	}

	dtos := make([]OverdueDTO, 0, len(overdue))
	for i := range overdue {
		if !booking.CanView(user, &overdue[i].Report) {
			continue
		}
		dtos = append(dtos, OverdueDTO{
			Report:    toReportDTO(&overdue[i].Report),
			Remaining: booking.FormatAmount(overdue[i].Remaining),
		})
	}

	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// STATISTICS HANDLERS
// =============================================================================

// GetStats returns selling-rate totals grouped for the dashboard.
// Supervisor only. Filters arrive as query parameters.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := booking.RequireSupervisor(user, "view statistics"); err != nil {
		h.respondError(w, err, "Failed to compute statistics")
		return
	}

	reports, err := h.Store.List(r.Context())
	if err != nil {
		h.respondError(w, err, "Failed to list reports")
		return
	}

	q := r.URL.Query()
	filter := booking.StatsFilter{
		DateRange: q.Get("range"),
		Region:    q.Get("region"),
		Agent:     q.Get("agent"),
		Service:   q.Get("service"),
	}

	stats := booking.CalculateStatistics(reports, filter, time.Now())

	writeJSON(w, http.StatusOK, StatsResponse{
		SalesByRegion:  toStatPoints(stats.SalesByRegion),
		SalesByAgent:   toStatPoints(stats.SalesByAgent),
		SalesByMonth:   toStatPoints(stats.SalesByMonth),
		SalesByService: toStatPoints(stats.SalesByService),
	})
}

// =============================================================================
// EXPORT HANDLERS
// =============================================================================

// ExportCSV streams the selected reports as a CSV download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	reports, ok := h.exportSelection(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename("csv", time.Now()))
	if err := export.WriteCSV(w, reports); err != nil {
		h.log.WithError(err).Error("CSV export failed")
	}
}

// ExportJSON streams the selected reports as a JSON download.
func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	reports, ok := h.exportSelection(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename("json", time.Now()))
	if err := export.WriteJSON(w, reports); err != nil {
		h.log.WithError(err).Error("JSON export failed")
	}
}

// ExportXLSX streams the selected reports as a spreadsheet download.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	reports, ok := h.exportSelection(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename("xlsx", time.Now()))
	if err := export.WriteXLSX(w, reports); err != nil {
		h.log.WithError(err).Error("XLSX export failed")
	}
}

// exportSelection decodes the export request and resolves it against the
// caller's visible reports. Writes the error response itself on failure.
func (h *Handler) exportSelection(w http.ResponseWriter, r *http.Request) ([]booking.Report, bool) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}

	user := userFrom(r.Context())
	reports, err := h.Reports.SavedReports(r.Context(), user, true)
	if err != nil {
		h.respondError(w, err, "Failed to list reports")
		return nil, false
	}

	filtered := req.Filter.toFilter().Apply(reports)
	return export.SelectByIDs(filtered, req.IDs), true
}

// =============================================================================
// USER MANAGEMENT HANDLERS
// =============================================================================

// ListUsers returns all accounts. Supervisor only.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	users, err := h.Auth.ListUsers(r.Context(), user)
	if err != nil {
		h.respondError(w, err, "Failed to list users")
		return
	}

	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateUser adds an account. Supervisor only.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user", err)
		return
	}

	actor := userFrom(r.Context())
	created, err := h.Auth.CreateUser(r.Context(), actor, booking.User{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     booking.Role(req.Role),
		Region:   req.Region,
	})
	if err != nil {
		h.respondError(w, err, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, toUserDTO(created))
}

// UpdateUser replaces an account's profile. Supervisor only. An empty
// password keeps the current one.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := booking.UserID(chi.URLParam(r, "id"))

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user", err)
		return
	}

	actor := userFrom(r.Context())
	err := h.Auth.UpdateUser(r.Context(), actor, id, booking.User{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     booking.Role(req.Role),
		Region:   req.Region,
	})
	if err != nil {
		h.respondError(w, err, "Failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteUser removes an account. Supervisor only.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := booking.UserID(chi.URLParam(r, "id"))
	actor := userFrom(r.Context())

	if err := h.Auth.DeleteUser(r.Context(), actor, id); err != nil {
		h.respondError(w, err, "Failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// respondError maps domain errors to HTTP statuses. Unknown errors become
// 500 with the fallback message and get logged.
func (h *Handler) respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password", nil)
	case errors.Is(err, booking.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "Not authenticated", err)
	case errors.Is(err, booking.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "Permission denied", err)
	case errors.Is(err, booking.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, "Username already exists", err)
	case booking.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case booking.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		h.log.WithError(err).Error(fallback)
		writeError(w, http.StatusInternalServerError, fallback, err)
	}
}
