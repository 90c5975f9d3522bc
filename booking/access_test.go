package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/traveldesk/sales-engine/booking"
)

func TestCanView_SupervisorSeesEverything(t *testing.T) {
	r := saleRecord("BK-1", "1000", time.Now())
	r.AgentName = "Somebody Else"
	r.Region = "UAE"

	assert.True(t, booking.CanView(testSupervisor(), &r))
}

func TestCanView_AgentByNameOrRegion(t *testing.T) {
	agent := testAgent("Remon", "Egypt")

	ownRecord := saleRecord("BK-1", "1000", time.Now())
	ownRecord.AgentName = "Remon"
	ownRecord.Region = "UAE"

	regionRecord := saleRecord("BK-2", "1000", time.Now())
	regionRecord.AgentName = "Sarah Johnson"
	regionRecord.Region = "Egypt"

	foreignRecord := saleRecord("BK-3", "1000", time.Now())
	foreignRecord.AgentName = "Sarah Johnson"
	foreignRecord.Region = "UAE"

	assert.True(t, booking.CanView(agent, &ownRecord), "own name matches")
	assert.True(t, booking.CanView(agent, &regionRecord), "own region matches")
	assert.False(t, booking.CanView(agent, &foreignRecord), "neither name nor region")
}

func TestCanView_NilUserSeesNothing(t *testing.T) {
	r := saleRecord("BK-1", "1000", time.Now())
	assert.False(t, booking.CanView(nil, &r))
}

func TestCanDelete_OwnerOrSupervisor(t *testing.T) {
	owner := testAgent("Remon", "Egypt")
	other := testAgent("Sarah Johnson", "Egypt")

	r := saleRecord("BK-1", "1000", time.Now())
	r.UserID = owner.ID

	assert.True(t, booking.CanDelete(owner, &r))
	assert.True(t, booking.CanDelete(testSupervisor(), &r))
	assert.False(t, booking.CanDelete(other, &r), "same region does not grant delete")
	assert.False(t, booking.CanDelete(nil, &r))
}

func TestVisibleTo_FiltersForAgent(t *testing.T) {
	agent := testAgent("Remon", "Egypt")

	visible := saleRecord("BK-1", "1000", time.Now())
	visible.AgentName = "Remon"
	visible.Region = "UAE"

	hidden := saleRecord("BK-2", "1000", time.Now())
	hidden.AgentName = "Sarah Johnson"
	hidden.Region = "UAE"

	out := booking.VisibleTo(agent, []booking.Report{visible, hidden})

	assert.Len(t, out, 1)
	assert.Equal(t, visible.ID, out[0].ID)
}

func TestVisibleTo_SupervisorKeepsAll(t *testing.T) {
	reports := []booking.Report{
		saleRecord("BK-1", "1000", time.Now()),
		saleRecord("BK-2", "1000", time.Now()),
	}

	assert.Len(t, booking.VisibleTo(testSupervisor(), reports), 2)
}

func TestRequireSupervisor(t *testing.T) {
	assert.NoError(t, booking.RequireSupervisor(testSupervisor(), "view statistics"))

	err := booking.RequireSupervisor(testAgent("Remon", "Egypt"), "view statistics")
	assert.ErrorIs(t, err, booking.ErrPermissionDenied)

	var permErr *booking.PermissionError
	assert.ErrorAs(t, err, &permErr)
	assert.Equal(t, "view statistics", permErr.Action)

	assert.ErrorIs(t, booking.RequireSupervisor(nil, "anything"), booking.ErrNotAuthenticated)
}
