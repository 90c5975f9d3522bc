/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic
	data for testing and demos. Each scenario resets the report store and
	inserts a dataset that demonstrates specific features. User accounts
	are untouched; the seeded demo logins keep working across loads.

AVAILABLE SCENARIOS:

	clean-slate:        Empty report store
	agency-month:       A month of bookings across regions, agents, services
	installment-plans:  Bookings paid in installments, one of them overdue

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "agency-month"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the report store. Only use in development/demo
	environments.

SEE ALSO:
  - handlers.go: writeJSON/writeError helpers
  - auth/service.go: Demo user accounts the datasets are attributed to
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/traveldesk/sales-engine/auth"
	"github.com/traveldesk/sales-engine/booking"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "clean-slate",
		Name:        "Clean Slate",
		Description: "Empty report store, demo logins only",
	},
	{
		ID:          "agency-month",
		Name:        "Agency Month",
		Description: "A month of bookings across regions, agents, and services",
	},
	{
		ID:          "installment-plans",
		Name:        "Installment Plans",
		Description: "Bookings paid in installments, including one overdue plan",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario. Supervisor only.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := booking.RequireSupervisor(user, "load scenarios"); err != nil {
		h.respondError(w, err, "Failed to load scenario")
		return
	}

	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "clean-slate":
		// Reset already did the work.
	case "agency-month":
		err = h.loadAgencyMonthScenario(ctx)
	case "installment-plans":
		err = h.loadInstallmentPlansScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all report data. Supervisor only.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := booking.RequireSupervisor(user, "reset data"); err != nil {
		h.respondError(w, err, "Failed to reset data")
		return
	}

	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}

	h.currentScenario = ""

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// demoUserByUsername finds a seeded demo account by login name.
func demoUserByUsername(username string) booking.User {
	for _, u := range auth.DemoUsers() {
		if u.Username == username {
			return u
		}
	}
	return booking.User{}
}

// insertAll inserts records oldest-first so the prepend-ordering store
// returns them newest-first.
func (h *Handler) insertAll(ctx context.Context, reports []booking.Report) error {
	for _, r := range reports {
		if err := h.Store.Insert(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadAgencyMonthScenario(ctx context.Context) error {
	remon := demoUserByUsername("agent1")
	sarah := demoUserByUsername("agent2")
	mohammed := demoUserByUsername("agent3")

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 9, 0, 0, 0, time.UTC)

	base := func(u booking.User, day int, bookingID, customer, service, provider, destination, net, selling string) booking.Report {
		ts := monthStart.AddDate(0, 0, day-1)
		return booking.Report{
			ID:            booking.ReportID(uuid.NewString()),
			BookingID:     booking.BookingID(bookingID),
			UserID:        u.ID,
			AgentName:     u.Name,
			Timestamp:     ts,
			Region:        u.Region,
			BookingType:   "New Booking",
			Date:          ts.Format("2006-01-02"),
			Source:        "Website",
			CustomerName:  customer,
			Service:       service,
			Provider:      provider,
			Destination:   destination,
			CheckIn:       ts.AddDate(0, 1, 0).Format("2006-01-02"),
			PaxNumber:     "2",
			Currency:      "USD",
			NetRate:       net,
			SellingRate:   selling,
			PaymentMethod: "Credit Card",
			Installment:   booking.InstallmentNo,
		}
	}

	reports := []booking.Report{
		base(remon, 2, "BK-1001", "Ahmed Hassan", "Hotel", "Hilton Cairo", "Cairo", "850", "1000"),
		base(remon, 5, "BK-1002", "Laila Mostafa", "Flight", "EgyptAir", "Dubai", "420", "520"),
		base(sarah, 6, "BK-1003", "John Carter", "Package", "Emirates Holidays", "Maldives", "2400", "2950"),
		base(sarah, 9, "BK-1004", "Fatima Noor", "Hotel", "Atlantis", "Dubai", "1100", "1350"),
		base(mohammed, 11, "BK-1005", "Omar Al-Rashid", "Transfer", "Careem", "Riyadh", "60", "90"),
		base(mohammed, 14, "BK-1006", "Khalid Aziz", "Package", "Saudia Holidays", "Jeddah", "1800", "2200"),
		base(remon, 18, "BK-1007", "Mona Adel", "Visa", "VFS Global", "London", "120", "180"),
		base(sarah, 21, "BK-1008", "Elena Petrova", "Flight", "Emirates", "Moscow", "640", "760"),
		base(mohammed, 25, "BK-1009", "Yousef Hamdan", "Hotel", "Ritz Riyadh", "Riyadh", "950", "1150"),
	}

	return h.insertAll(ctx, reports)
}

func (h *Handler) loadInstallmentPlansScenario(ctx context.Context) error {
	remon := demoUserByUsername("agent1")
	sarah := demoUserByUsername("agent2")

	now := time.Now().UTC()

	original := func(u booking.User, daysAgo int, bookingID, customer, selling, paid, dueDate string) booking.Report {
		ts := now.AddDate(0, 0, -daysAgo)
		return booking.Report{
			ID:              booking.ReportID(uuid.NewString()),
			BookingID:       booking.BookingID(bookingID),
			UserID:          u.ID,
			AgentName:       u.Name,
			Timestamp:       ts,
			Region:          u.Region,
			BookingType:     "New Booking",
			Date:            ts.Format("2006-01-02"),
			Source:          "Walk-in",
			CustomerName:    customer,
			Service:         "Package",
			Provider:        "Sunrise Tours",
			Destination:     "Sharm El Sheikh",
			CheckIn:         now.AddDate(0, 2, 0).Format("2006-01-02"),
			PaxNumber:       "4",
			Currency:        "USD",
			NetRate:         "2600",
			SellingRate:     selling,
			PaymentMethod:   "Bank Transfer",
			Installment:     booking.InstallmentYes,
			InstallmentPaid: paid,
			DueDate:         dueDate,
		}
	}

	payment := func(orig booking.Report, daysAgo int, amount, dueDate string) booking.Report {
		ts := now.AddDate(0, 0, -daysAgo)
		r := orig
		r.ID = booking.ReportID(uuid.NewString())
		r.Timestamp = ts
		r.BookingType = booking.BookingTypeInstallment
		r.Source = "Returning Customer"
		r.Date = ts.Format("2006-01-02")
		r.InstallmentPaid = amount
		r.DueDate = dueDate
		r.Remarks = fmt.Sprintf("Installment payment for booking ID: %s. ", orig.BookingID)
		r.OriginalBookingID = orig.ID
		return r
	}

	// Plan on track: 3200 selling, 1000 + 800 paid, next due in 20 days.
	onTrack := original(remon, 40, "BK-2001", "Tariq Mansour", "3200", "1000", now.AddDate(0, 0, -25).Format("2006-01-02"))
	onTrackPay := payment(onTrack, 25, "800", now.AddDate(0, 0, 20).Format("2006-01-02"))

	// Overdue plan: 2800 selling, only 900 paid, due date 10 days ago.
	overdue := original(sarah, 60, "BK-2002", "Nadia Rahman", "2800", "900", now.AddDate(0, 0, -10).Format("2006-01-02"))

	// Fully settled plan: 1500 selling, 700 + 800 paid.
	settled := original(remon, 90, "BK-2003", "Hassan Farid", "1500", "700", now.AddDate(0, 0, -60).Format("2006-01-02"))
	settledPay := payment(settled, 55, "800", "")

	return h.insertAll(ctx, []booking.Report{
		settled, settledPay,
		overdue,
		onTrack, onTrackPay,
	})
}
