/*
installment.go - Installment record construction

PURPOSE:
  Builds and appends the report record representing a partial payment
  against an existing booking. The new record is derived from the original
  booking's immutable descriptive fields plus the payment fields supplied by
  the caller.

COPY-THROUGH:
  Every booking-descriptive field - SellingRate above all - is copied
  verbatim from the resolved original. Reconciliation reads SellingRate from
  the newest ledger record, so this copy is what keeps the ledger
  reconcilable. Do not "fix up" copied fields here.

VALIDATION SPLIT:
  The payment amount (> 0) is validated by the caller before invocation;
  the writer only requires the original booking to exist. Calling the writer
  directly with an unvalidated amount is not safe.
*/
package booking

import (
	"context"
	"fmt"
)

// InstallmentPayment carries the caller-supplied fields of a new partial
// payment. Everything else on the resulting record is derived from the
// original booking.
type InstallmentPayment struct {
	AgentName       string
	InstallmentPaid string
	PaymentMethod   string
	PaymentLink     string
	DueDate         string
	Remarks         string
	BankFileName    string
	VoucherFileName string
	InvoiceFileName string
}

// InstallmentWriter appends installment records to a booking's ledger.
type InstallmentWriter struct {
	Resolver *Resolver
	Reports  *ReportService
}

// NewInstallmentWriter creates a writer over the given resolver and report
// service.
func NewInstallmentWriter(resolver *Resolver, reports *ReportService) *InstallmentWriter {
	return &InstallmentWriter{Resolver: resolver, Reports: reports}
}

// ProcessInstallment resolves the original booking and appends a new
// installment record derived from it. Fails with ErrBookingNotFound when the
// booking ID is unknown; no record is written in that case.
func (w *InstallmentWriter) ProcessInstallment(ctx context.Context, actor *User, bookingID BookingID, p InstallmentPayment) (*Report, error) {
	original, err := w.Resolver.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	agentName := p.AgentName
	if agentName == "" {
		agentName = original.AgentName
	}

	record := Report{
		BookingType: BookingTypeInstallment,
		Date:        w.Reports.now().UTC().Format("2006-01-02"),
		AgentName:   agentName,
		Region:      original.Region,
		Source:      "Returning Customer",

		// Booking-descriptive fields, copied verbatim from the original.
		BookingID:           original.BookingID,
		CustomerName:        original.CustomerName,
		CustomerNationality: original.CustomerNationality,
		CustomerMobile:      original.CustomerMobile,
		Service:             original.Service,
		Provider:            original.Provider,
		Destination:         original.Destination,
		CheckIn:             original.CheckIn,
		PaxNumber:           original.PaxNumber,
		Currency:            original.Currency,
		NetRate:             original.NetRate,
		SellingRate:         original.SellingRate,

		// Payment fields from the caller.
		PaymentMethod:   p.PaymentMethod,
		PaymentLink:     p.PaymentLink,
		Installment:     InstallmentYes,
		InstallmentPaid: p.InstallmentPaid,
		DueDate:         p.DueDate,
		Remarks:         fmt.Sprintf("Installment payment for booking ID: %s. %s", original.BookingID, p.Remarks),

		BankFileName:    p.BankFileName,
		VoucherFileName: p.VoucherFileName,
		InvoiceFileName: p.InvoiceFileName,

		OriginalBookingID: original.ID,
	}

	return w.Reports.SaveReport(ctx, actor, record)
}
