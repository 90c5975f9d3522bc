package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveldesk/sales-engine/booking"
	"github.com/traveldesk/sales-engine/booking/store"
)

func newTestWriter(st *store.Memory) *booking.InstallmentWriter {
	return booking.NewInstallmentWriter(
		booking.NewResolver(st),
		booking.NewReportService(st),
	)
}

func TestProcessInstallment_CopiesBookingFieldsVerbatim(t *testing.T) {
	// GIVEN: An original sale with full booking details
	// WHEN: Recording an installment payment against it
	// THEN: Every descriptive field, selling rate included, is copied
	//       unchanged onto the new record

	st := newTestStore(t)
	ctx := context.Background()

	original := saleRecord("BK-1", "3200", time.Now().Add(-24*time.Hour))
	original.CustomerNationality = "Egyptian"
	original.CustomerMobile = "+201001234567"
	original.Provider = "Sunrise Tours"
	original.Destination = "Sharm El Sheikh"
	original.CheckIn = "2026-10-01"
	original.PaxNumber = "4"
	original.NetRate = "2600"
	original.Installment = booking.InstallmentYes
	original.InstallmentPaid = "1000"
	require.NoError(t, st.Insert(ctx, original))

	writer := newTestWriter(st)
	agent := testAgent("Sarah Johnson", "UAE")

	saved, err := writer.ProcessInstallment(ctx, agent, "BK-1", booking.InstallmentPayment{
		InstallmentPaid: "800",
		PaymentMethod:   "Bank Transfer",
		DueDate:         "2026-11-15",
		Remarks:         "Second payment received.",
	})
	require.NoError(t, err)

	assert.Equal(t, original.BookingID, saved.BookingID)
	assert.Equal(t, original.CustomerName, saved.CustomerName)
	assert.Equal(t, original.CustomerNationality, saved.CustomerNationality)
	assert.Equal(t, original.CustomerMobile, saved.CustomerMobile)
	assert.Equal(t, original.Service, saved.Service)
	assert.Equal(t, original.Provider, saved.Provider)
	assert.Equal(t, original.Destination, saved.Destination)
	assert.Equal(t, original.CheckIn, saved.CheckIn)
	assert.Equal(t, original.PaxNumber, saved.PaxNumber)
	assert.Equal(t, original.Currency, saved.Currency)
	assert.Equal(t, original.NetRate, saved.NetRate)
	assert.Equal(t, original.SellingRate, saved.SellingRate)
	assert.Equal(t, original.Region, saved.Region)
}

func TestProcessInstallment_SetsInstallmentIdentity(t *testing.T) {
	// GIVEN: An original sale
	// WHEN: Recording an installment
	// THEN: The record is typed as an installment from a returning
	//       customer, dated today, linked back to the original

	st := newTestStore(t)
	ctx := context.Background()

	original := saleRecord("BK-1", "1000", time.Now().Add(-24*time.Hour))
	require.NoError(t, st.Insert(ctx, original))

	writer := newTestWriter(st)
	saved, err := writer.ProcessInstallment(ctx, testAgent("Remon", "Egypt"), "BK-1", booking.InstallmentPayment{
		InstallmentPaid: "250",
		PaymentMethod:   "Cash",
		Remarks:         "First of four.",
	})
	require.NoError(t, err)

	assert.Equal(t, booking.BookingTypeInstallment, saved.BookingType)
	assert.Equal(t, "Returning Customer", saved.Source)
	assert.Equal(t, booking.InstallmentYes, saved.Installment)
	assert.Equal(t, "250", saved.InstallmentPaid)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), saved.Date)
	assert.Equal(t, original.ID, saved.OriginalBookingID)
	assert.Equal(t, "Installment payment for booking ID: BK-1. First of four.", saved.Remarks)
}

func TestProcessInstallment_AgentNameDefaultsToOriginal(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	original := saleRecord("BK-1", "1000", time.Now().Add(-24*time.Hour))
	require.NoError(t, st.Insert(ctx, original))

	saved, err := newTestWriter(st).ProcessInstallment(ctx, testAgent("Sarah Johnson", "UAE"), "BK-1", booking.InstallmentPayment{
		InstallmentPaid: "100",
		PaymentMethod:   "Cash",
	})
	require.NoError(t, err)

	// No agent name supplied on the payment: the original's agent stays on
	// the ledger record.
	assert.Equal(t, original.AgentName, saved.AgentName)
}

func TestProcessInstallment_UnknownBooking_NoRecordWritten(t *testing.T) {
	// GIVEN: An empty store
	// WHEN: Recording an installment against an unknown booking ID
	// THEN: ErrBookingNotFound and the store stays empty

	st := newTestStore(t)
	ctx := context.Background()

	_, err := newTestWriter(st).ProcessInstallment(ctx, testAgent("Remon", "Egypt"), "BK-NONE", booking.InstallmentPayment{
		InstallmentPaid: "100",
		PaymentMethod:   "Cash",
	})

	assert.ErrorIs(t, err, booking.ErrBookingNotFound)

	all, listErr := st.List(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, all)
}

func TestProcessInstallment_ReconcilesAfterPayment(t *testing.T) {
	// GIVEN: An installment sale of 1000 with 300 already paid
	// WHEN: Recording a further 400 payment
	// THEN: Reconciliation sees 700 paid, 300 remaining

	st := newTestStore(t)
	ctx := context.Background()

	original := installmentRecord("BK-1", "1000", "300", time.Now().Add(-24*time.Hour))
	require.NoError(t, st.Insert(ctx, original))

	_, err := newTestWriter(st).ProcessInstallment(ctx, testAgent("Remon", "Egypt"), "BK-1", booking.InstallmentPayment{
		InstallmentPaid: "400",
		PaymentMethod:   "Bank Transfer",
	})
	require.NoError(t, err)

	summary := newReconciler(st).CalculatePayments(ctx, "BK-1")
	assert.Equal(t, "700.00", summary.TotalPaidString())
	assert.Equal(t, "300.00", summary.RemainingString())
}
