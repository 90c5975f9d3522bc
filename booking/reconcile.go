/*
reconcile.go - Payment reconciliation for a booking's ledger

PURPOSE:
  Computes how much of a booking has been paid and what remains. This is the
  one calculation in the system with a real invariant behind it: money in
  must reconcile against the total owed, summed across the entire ledger,
  without double-counting.

ALGORITHM:
  1. Fetch the full ledger (newest-first). Empty ledger -> {0, 0}.
  2. Read SellingRate - the authoritative total owed - from the NEWEST
     record. This is only correct because SellingRate is copied verbatim
     onto every installment record (the copy-through invariant enforced by
     installment.go). Break that invariant and reconciliation breaks.
  3. If the newest record is an installment, total paid is the sum of
     InstallmentPaid across every installment record in the ledger.
     Unparsable amounts count as zero.
  4. If the newest record is NOT an installment, the booking has never had a
     partial payment recorded: it was paid in full at sale time, so total
     paid equals the selling rate.
  5. Remaining = max(SellingRate - TotalPaid, 0). Never negative.

FAILURE SEMANTICS:
  Reconciliation never propagates a hard failure. A store error or an absent
  ledger degrades to {0, 0}; hard failures are reserved for destructive
  operations elsewhere.
*/
package booking

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentSummary is the reconciled state of a booking's ledger.
type PaymentSummary struct {
	TotalPaid decimal.Decimal
	Remaining decimal.Decimal
}

// TotalPaidString renders the total paid with two decimal places.
func (p PaymentSummary) TotalPaidString() string { return FormatAmount(p.TotalPaid) }

// RemainingString renders the remaining balance with two decimal places.
func (p PaymentSummary) RemainingString() string { return FormatAmount(p.Remaining) }

// Reconciler computes payment summaries from the booking ledger.
type Reconciler struct {
	Resolver *Resolver
}

// NewReconciler creates a reconciler over the given resolver.
func NewReconciler(resolver *Resolver) *Reconciler {
	return &Reconciler{Resolver: resolver}
}

// CalculatePayments reconciles the booking's ledger into total paid and
// remaining balance. It degrades to {0, 0} on an empty ledger or a store
// failure rather than returning an error.
func (rc *Reconciler) CalculatePayments(ctx context.Context, bookingID BookingID) PaymentSummary {
	ledger, err := rc.Resolver.InstallmentHistory(ctx, bookingID)
	if err != nil || len(ledger) == 0 {
		return PaymentSummary{TotalPaid: decimal.Zero, Remaining: decimal.Zero}
	}

	// Newest record. SellingRate is copy-invariant across the ledger, so
	// reading it here is equivalent to reading it from the original sale.
	main := ledger[0]
	sellingRate := main.SellingRateAmount()

	totalPaid := decimal.Zero
	for _, r := range ledger {
		if r.IsInstallment() {
			totalPaid = totalPaid.Add(r.InstallmentPaidAmount())
		}
	}

	// A booking whose newest record is not an installment has no partial
	// payments recorded: treat it as settled in full at sale time.
	if !main.IsInstallment() {
		totalPaid = sellingRate
	}

	remaining := sellingRate.Sub(totalPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return PaymentSummary{TotalPaid: totalPaid, Remaining: remaining}
}
