/*
reports.go - Report persistence operations

PURPOSE:
  The write and browse path for reports: save a submitted sales report with
  system-assigned identity fields, list reports under the access filter,
  and delete under the ownership/role gate. This is deliberately plain
  CRUD - the interesting logic lives in resolver.go / reconcile.go /
  installment.go.

IDENTITY ASSIGNMENT:
  SaveReport assigns what the submitter never controls: the store ID, the
  creation timestamp, the creating user, and the agent name default. Fields
  assigned here are immutable afterwards.
*/
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportService exposes the user-facing report operations over a store.
type ReportService struct {
	Store ReportStore

	// now is the clock; overridable in tests.
	now func() time.Time
}

// NewReportService creates a report service over the given store.
func NewReportService(store ReportStore) *ReportService {
	return &ReportService{Store: store, now: time.Now}
}

// SaveReport persists a new report on behalf of the acting user, assigning
// ID, timestamp, creating user, and the agent-name default. Returns the
// stored record.
func (s *ReportService) SaveReport(ctx context.Context, actor *User, r Report) (*Report, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	r.ID = ReportID(uuid.NewString())
	r.Timestamp = s.now().UTC()
	r.UserID = actor.ID
	if r.AgentName == "" {
		r.AgentName = actor.Name
	}

	if err := s.Store.Insert(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// SavedReports returns reports newest-first. With filterByUser set, the
// result is narrowed to what the acting user may see; unset, it is the full
// store (reconciliation and supervisor surfaces need the unfiltered view).
func (s *ReportService) SavedReports(ctx context.Context, actor *User, filterByUser bool) ([]Report, error) {
	reports, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if !filterByUser {
		return reports, nil
	}
	return VisibleTo(actor, reports), nil
}

// UserReports returns every report created by the given user, newest-first.
func (s *ReportService) UserReports(ctx context.Context, userID UserID) ([]Report, error) {
	reports, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]Report, 0)
	for _, r := range reports {
		if r.UserID == userID {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

// DeleteReport removes a report. The acting user must be the record's owner
// or a supervisor; otherwise ErrPermissionDenied and the store is left
// unchanged. An unknown ID yields ErrReportNotFound.
func (s *ReportService) DeleteReport(ctx context.Context, actor *User, id ReportID) error {
	r, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil {
		return ErrNotAuthenticated
	}
	if !CanDelete(actor, r) {
		return &PermissionError{UserID: actor.ID, Action: "delete report " + string(id)}
	}
	return s.Store.Delete(ctx, id)
}
