package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveldesk/sales-engine/booking"
)

func TestFindOverdue_PastDueWithBalance(t *testing.T) {
	// GIVEN: An installment plan due ten days ago with money outstanding
	// WHEN: Scanning as of today
	// THEN: The plan is flagged with its remaining balance

	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	r := installmentRecord("BK-1", "2800", "900", now.AddDate(0, 0, -30))
	r.DueDate = now.AddDate(0, 0, -10).Format("2006-01-02")
	require.NoError(t, st.Insert(ctx, r))

	overdue, err := booking.NewOverdueScanner(st).FindOverdue(ctx, now)

	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, booking.BookingID("BK-1"), overdue[0].Report.BookingID)
	assert.Equal(t, "1900.00", booking.FormatAmount(overdue[0].Remaining))
}

func TestFindOverdue_FutureDueDateSkipped(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	r := installmentRecord("BK-1", "1000", "300", now.AddDate(0, 0, -5))
	r.DueDate = now.AddDate(0, 0, 10).Format("2006-01-02")
	require.NoError(t, st.Insert(ctx, r))

	overdue, err := booking.NewOverdueScanner(st).FindOverdue(ctx, now)

	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestFindOverdue_SettledPlanSkipped(t *testing.T) {
	// GIVEN: A past-due plan whose payments cover the selling rate
	// WHEN: Scanning
	// THEN: Nothing is flagged; there is no balance to chase

	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	first := installmentRecord("BK-1", "1000", "600", now.AddDate(0, 0, -40))
	second := installmentRecord("BK-1", "1000", "400", now.AddDate(0, 0, -20))
	second.DueDate = now.AddDate(0, 0, -5).Format("2006-01-02")
	require.NoError(t, st.Insert(ctx, first))
	require.NoError(t, st.Insert(ctx, second))

	overdue, err := booking.NewOverdueScanner(st).FindOverdue(ctx, now)

	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestFindOverdue_OnlyNewestRecordPerBookingConsidered(t *testing.T) {
	// GIVEN: A plan whose old record was past due but whose newest record
	//        carries a future due date
	// WHEN: Scanning
	// THEN: The booking is not flagged; the newest record is its state

	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	old := installmentRecord("BK-1", "1000", "300", now.AddDate(0, 0, -40))
	old.DueDate = now.AddDate(0, 0, -20).Format("2006-01-02")
	latest := installmentRecord("BK-1", "1000", "300", now.AddDate(0, 0, -10))
	latest.DueDate = now.AddDate(0, 0, 15).Format("2006-01-02")
	require.NoError(t, st.Insert(ctx, old))
	require.NoError(t, st.Insert(ctx, latest))

	overdue, err := booking.NewOverdueScanner(st).FindOverdue(ctx, now)

	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestFindOverdue_NonInstallmentAndNoDueDateSkipped(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	sale := saleRecord("BK-1", "1000", now.AddDate(0, 0, -30))
	noDue := installmentRecord("BK-2", "1000", "100", now.AddDate(0, 0, -30))
	noDue.DueDate = ""
	require.NoError(t, st.Insert(ctx, sale))
	require.NoError(t, st.Insert(ctx, noDue))

	overdue, err := booking.NewOverdueScanner(st).FindOverdue(ctx, now)

	require.NoError(t, err)
	assert.Empty(t, overdue)
}
