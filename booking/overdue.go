/*
overdue.go - Overdue installment detection

PURPOSE:
  Finds bookings whose latest installment carries a due date in the past
  while a balance is still outstanding. Consumed by the periodic sweep in
  the API layer and by the overdue listing endpoint.
*/
package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OverdueInstallment pairs a booking's newest record with its outstanding
// balance.
type OverdueInstallment struct {
	Report    Report
	Remaining decimal.Decimal
}

// OverdueScanner walks the store looking for past-due unpaid installments.
type OverdueScanner struct {
	Store      ReportStore
	Reconciler *Reconciler
}

// NewOverdueScanner creates a scanner over the given store.
func NewOverdueScanner(store ReportStore) *OverdueScanner {
	return &OverdueScanner{
		Store:      store,
		Reconciler: NewReconciler(NewResolver(store)),
	}
}

// FindOverdue returns one entry per booking whose newest record is an
// installment with a due date strictly before asOf's day and a positive
// remaining balance. Records without a parsable due date are skipped.
func (s *OverdueScanner) FindOverdue(ctx context.Context, asOf time.Time) ([]OverdueInstallment, error) {
	reports, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	seen := map[BookingID]bool{}
	var overdue []OverdueInstallment

	// Store order is newest-first, so the first record per booking ID is
	// that booking's current state.
	for _, r := range reports {
		if seen[r.BookingID] {
			continue
		}
		seen[r.BookingID] = true

		if !r.IsInstallment() || r.DueDate == "" {
			continue
		}
		due, err := time.Parse("2006-01-02", r.DueDate)
		if err != nil || !due.Before(today) {
			continue
		}

		summary := s.Reconciler.CalculatePayments(ctx, r.BookingID)
		if summary.Remaining.IsPositive() {
			overdue = append(overdue, OverdueInstallment{Report: r, Remaining: summary.Remaining})
		}
	}
	return overdue, nil
}
