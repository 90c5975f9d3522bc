/*
scenarios_test.go - demo scenario tests

Verifies that loading each scenario produces the expected dataset, that
loading is supervisor-gated, and that reset clears reports without touching
accounts.
*/
package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadScenario(t *testing.T, router http.Handler, token, id string) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/load", token, map[string]string{
		"scenario_id": id,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestListScenarios(t *testing.T) {
	router := newTestAPI(t)
	token := login(t, router, "agent1", "agent123")

	rec := doJSON(t, router, http.MethodGet, "/api/scenarios", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out []struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &out)
	ids := make([]string, len(out))
	for i, s := range out {
		ids[i] = s.ID
	}
	assert.ElementsMatch(t, []string{"clean-slate", "agency-month", "installment-plans"}, ids)
}

func TestLoadScenario_SupervisorOnly(t *testing.T) {
	router := newTestAPI(t)
	token := login(t, router, "agent1", "agent123")

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/load", token, map[string]string{
		"scenario_id": "agency-month",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoadScenario_Unknown(t *testing.T) {
	router := newTestAPI(t)
	supToken := login(t, router, "Remon", "admin123")

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/load", supToken, map[string]string{
		"scenario_id": "not-a-scenario",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoadScenario_AgencyMonth(t *testing.T) {
	router := newTestAPI(t)
	supToken := login(t, router, "Remon", "admin123")

	loadScenario(t, router, supToken, "agency-month")

	rec := doJSON(t, router, http.MethodGet, "/api/reports", supToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reports []struct {
		BookingID string `json:"bookingId"`
		Region    string `json:"region"`
	}
	decodeBody(t, rec, &reports)
	assert.Len(t, reports, 9)

	regions := map[string]bool{}
	for _, r := range reports {
		regions[r.Region] = true
	}
	assert.True(t, regions["Egypt"])
	assert.True(t, regions["UAE"])
	assert.True(t, regions["Saudi Arabia"])
}

func TestLoadScenario_InstallmentPlans(t *testing.T) {
	router := newTestAPI(t)
	supToken := login(t, router, "Remon", "admin123")

	loadScenario(t, router, supToken, "installment-plans")

	// BK-2002 is past due with money outstanding
	rec := doJSON(t, router, http.MethodGet, "/api/installments/overdue", supToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var overdue []struct {
		Report struct {
			BookingID string `json:"bookingId"`
		} `json:"report"`
		Remaining string `json:"remaining"`
	}
	decodeBody(t, rec, &overdue)
	require.Len(t, overdue, 1)
	assert.Equal(t, "BK-2002", overdue[0].Report.BookingID)
	assert.Equal(t, "1900.00", overdue[0].Remaining)

	// BK-2003 is fully settled
	rec = doJSON(t, router, http.MethodGet, "/api/bookings/BK-2003", supToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lookup struct {
		History []struct {
			BookingType string `json:"bookingType"`
			Remarks     string `json:"remarks"`
		} `json:"history"`
		Payments struct {
			TotalPaid string `json:"totalPaid"`
			Remaining string `json:"remaining"`
		} `json:"payments"`
	}
	decodeBody(t, rec, &lookup)
	assert.Equal(t, "1500.00", lookup.Payments.TotalPaid)
	assert.Equal(t, "0.00", lookup.Payments.Remaining)

	// the seeded payment's remarks reference the business booking ID
	var found bool
	for _, h := range lookup.History {
		if h.BookingType == "Installment" {
			found = true
			assert.Contains(t, h.Remarks, "booking ID: BK-2003")
		}
	}
	assert.True(t, found, "expected a seeded installment record for BK-2003")
}

func TestLoadScenario_ReplacesPrevious(t *testing.T) {
	router := newTestAPI(t)
	supToken := login(t, router, "Remon", "admin123")

	loadScenario(t, router, supToken, "agency-month")
	loadScenario(t, router, supToken, "installment-plans")

	rec := doJSON(t, router, http.MethodGet, "/api/scenarios/current", supToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var current struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &current)
	assert.Equal(t, "installment-plans", current.ID)

	// the previous dataset is gone
	rec = doJSON(t, router, http.MethodGet, "/api/bookings/BK-1001", supToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetDatabase(t *testing.T) {
	router := newTestAPI(t)
	supToken := login(t, router, "Remon", "admin123")

	loadScenario(t, router, supToken, "agency-month")

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/reset", supToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/reports", supToken, nil)
	var reports []struct{}
	decodeBody(t, rec, &reports)
	assert.Empty(t, reports)

	// accounts survive a reset
	login(t, router, "agent1", "agent123")
}
