/*
resolver.go - Booking lookup and ledger retrieval

PURPOSE:
  Finds the records describing a booking. Two views exist:

  FindBookingByID returns ONE representative record - the first match in
  store order, which is the newest record written for the booking. It is the
  entry point the lookup screen uses for display, not the full ledger.

  InstallmentHistory returns the booking's full payment ledger - every
  record sharing the booking ID, newest-first by timestamp.

ROLE-AGNOSTIC:
  The resolver always operates on the unfiltered store. A booking's payment
  history must be visible in full regardless of which agent recorded which
  installment; access filtering applies to report browsing, not to
  reconciliation.

SEE ALSO:
  - reconcile.go: Consumes the ledger to compute paid/remaining
  - installment.go: Consumes the representative record to derive new payments
*/
package booking

import (
	"context"
	"sort"
)

// Resolver locates booking records in the report store.
type Resolver struct {
	Store ReportStore
}

// NewResolver creates a resolver over the given store.
func NewResolver(store ReportStore) *Resolver {
	return &Resolver{Store: store}
}

// FindBookingByID returns the first record carrying the booking ID, scanning
// in store order (newest first). Returns ErrBookingNotFound when no record
// matches; callers must branch on it explicitly.
func (rs *Resolver) FindBookingByID(ctx context.Context, bookingID BookingID) (*Report, error) {
	records, err := rs.Store.ByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrBookingNotFound
	}
	r := records[0]
	return &r, nil
}

// InstallmentHistory returns the booking's full ledger: every record
// sharing the booking ID, sorted by timestamp descending. An unknown
// booking ID yields an empty slice, not an error.
func (rs *Resolver) InstallmentHistory(ctx context.Context, bookingID BookingID) ([]Report, error) {
	records, err := rs.Store.ByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}
