/*
export_test.go - export serialization tests

Covers row flattening, ID selection, the CSV/JSON/XLSX writers, and the
download filename stamp.
*/
package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/traveldesk/sales-engine/booking"
	"github.com/traveldesk/sales-engine/export"
)

func sampleSale() booking.Report {
	return booking.Report{
		ID:            "rep-1",
		BookingID:     "BK-1001",
		UserID:        "agent1-uuid",
		AgentName:     "Remon",
		Timestamp:     time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		Region:        "Egypt",
		BookingType:   "New Booking",
		Date:          "2026-03-15",
		CustomerName:  "Ahmed Hassan",
		Service:       "Flight",
		Provider:      "EgyptAir",
		Destination:   "Cairo",
		CheckIn:       "2026-04-01",
		PaxNumber:     "2",
		Currency:      "USD",
		NetRate:       "800",
		SellingRate:   "1000",
		PaymentMethod: "Cash",
		Installment:   booking.InstallmentNo,
		DueDate:       "2026-05-01",
	}
}

func samplePayment() booking.Report {
	r := sampleSale()
	r.ID = "rep-2"
	r.BookingType = booking.BookingTypeInstallment
	r.Installment = booking.InstallmentYes
	r.InstallmentPaid = "300"
	r.OriginalBookingID = "rep-1"
	return r
}

func TestHeaders_ColumnOrder(t *testing.T) {
	assert.Equal(t, []string{
		"Date", "Booking ID", "Agent", "Region", "Customer Name",
		"Service", "Provider", "Destination", "Check-In", "Pax",
		"Currency", "Net Rate", "Selling Rate", "Payment Method",
		"Installment", "Paid Amount", "Due Date",
	}, export.Headers)
}

func TestRow_NonInstallmentBlanksPaymentColumns(t *testing.T) {
	r := sampleSale()

	row := export.Row(&r)
	require.Len(t, row, len(export.Headers))

	assert.Equal(t, "2026-03-15", row[0])
	assert.Equal(t, "BK-1001", row[1])
	assert.Equal(t, "Remon", row[2])
	assert.Equal(t, "1000", row[12])
	// Paid Amount and Due Date stay blank on plain sales
	assert.Empty(t, row[15])
	assert.Empty(t, row[16])
}

func TestRow_InstallmentCarriesPaymentColumns(t *testing.T) {
	r := samplePayment()

	row := export.Row(&r)
	assert.Equal(t, "300", row[15])
	assert.Equal(t, "2026-05-01", row[16])
}

func TestSelectByIDs(t *testing.T) {
	reports := []booking.Report{sampleSale(), samplePayment()}

	selected := export.SelectByIDs(reports, []string{"rep-2"})
	require.Len(t, selected, 1)
	assert.Equal(t, booking.ReportID("rep-2"), selected[0].ID)
}

func TestSelectByIDs_EmptySelectsAll(t *testing.T) {
	reports := []booking.Report{sampleSale(), samplePayment()}

	assert.Len(t, export.SelectByIDs(reports, nil), 2)
}

func TestSelectByIDs_UnknownIDsIgnored(t *testing.T) {
	reports := []booking.Report{sampleSale()}

	assert.Empty(t, export.SelectByIDs(reports, []string{"ghost"}))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, []booking.Report{sampleSale(), samplePayment()}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, export.Headers, rows[0])
	assert.Equal(t, "BK-1001", rows[1][1])
	assert.Empty(t, rows[1][15])
	assert.Equal(t, "300", rows[2][15])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, []booking.Report{samplePayment()}))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)

	assert.Equal(t, "rep-2", out[0]["id"])
	assert.Equal(t, "BK-1001", out[0]["bookingId"])
	assert.Equal(t, "300", out[0]["installmentPaid"])
	assert.Equal(t, "rep-1", out[0]["originalBookingId"])
	assert.Equal(t, "2026-03-15T10:30:00Z", out[0]["timestamp"])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, []booking.Report{sampleSale()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Booking ID", rows[0][1])
	assert.Equal(t, "BK-1001", rows[1][1])
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, "sales-reports-export-2026-03-15.csv", export.Filename("csv", now))
	assert.Equal(t, "sales-reports-export-2026-03-15.xlsx", export.Filename("xlsx", now))
}
