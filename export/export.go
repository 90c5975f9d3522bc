/*
Package export serializes report sets for download.

PURPOSE:
  Turns a filtered, selected set of reports into CSV, JSON, or XLSX. The
  column set and ordering match the export screen: one row per record, with
  installment-only columns left blank on non-installment rows.
*/
package export

import (
	"time"

	"github.com/traveldesk/sales-engine/booking"
)

// Headers is the exported column set, in order.
var Headers = []string{
	"Date",
	"Booking ID",
	"Agent",
	"Region",
	"Customer Name",
	"Service",
	"Provider",
	"Destination",
	"Check-In",
	"Pax",
	"Currency",
	"Net Rate",
	"Selling Rate",
	"Payment Method",
	"Installment",
	"Paid Amount",
	"Due Date",
}

// Row flattens a record into the exported column values. Paid Amount and
// Due Date only apply to installment records.
func Row(r *booking.Report) []string {
	paid, due := "", ""
	if r.IsInstallment() {
		paid = r.InstallmentPaid
		due = r.DueDate
	}
	return []string{
		r.Timestamp.Format("2006-01-02"),
		string(r.BookingID),
		r.AgentName,
		r.Region,
		r.CustomerName,
		r.Service,
		r.Provider,
		r.Destination,
		r.CheckIn,
		r.PaxNumber,
		r.Currency,
		r.NetRate,
		r.SellingRate,
		r.PaymentMethod,
		r.Installment,
		paid,
		due,
	}
}

// SelectByIDs narrows reports to the requested store IDs, preserving order.
// An empty id set selects everything.
func SelectByIDs(reports []booking.Report, ids []string) []booking.Report {
	if len(ids) == 0 {
		return reports
	}
	wanted := make(map[booking.ReportID]bool, len(ids))
	for _, id := range ids {
		wanted[booking.ReportID(id)] = true
	}
	selected := make([]booking.Report, 0, len(ids))
	for _, r := range reports {
		if wanted[r.ID] {
			selected = append(selected, r)
		}
	}
	return selected
}

// Filename builds the download name for the given extension, stamped with
// the export day.
func Filename(ext string, now time.Time) string {
	return "sales-reports-export-" + now.Format("2006-01-02") + "." + ext
}
