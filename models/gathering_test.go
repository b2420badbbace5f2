package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGathering() *Gathering {
	return &Gathering{
		GatheringID: "g-1",
		Capacity:    Capacity{Min: 2, Max: 3},
		Status:      GatheringStatusInviting,
	}
}

func TestGathering_AttendeeSetMoves(t *testing.T) {
	g := testGathering()

	require.NoError(t, g.AddPending("u1"))
	require.NoError(t, g.AddPending("u2"))

	// A user can only live in one set at a time
	assert.ErrorIs(t, g.AddPending("u1"), ErrValidation)
	assert.ErrorIs(t, g.AddAccepted("u1"), ErrValidation)

	require.NoError(t, g.PromotePending("u1"))
	assert.Equal(t, []string{"u1"}, g.Accepted)
	assert.Equal(t, []string{"u2"}, g.Pending)

	require.NoError(t, g.DeclinePending("u2"))
	assert.Empty(t, g.Pending)
	assert.Equal(t, []string{"u2"}, g.Declined)

	// Moving someone who is not pending surfaces NotFound
	assert.ErrorIs(t, g.PromotePending("ghost"), ErrNotFound)
	assert.ErrorIs(t, g.DeclinePending("u2"), ErrNotFound)
}

func TestGathering_CapacityGuard(t *testing.T) {
	g := testGathering()

	require.NoError(t, g.AddAccepted("a1"))
	require.NoError(t, g.AddAccepted("a2"))
	require.NoError(t, g.AddAccepted("a3"))
	assert.ErrorIs(t, g.AddAccepted("a4"), ErrValidation)

	require.NoError(t, g.AddPending("p1"))
	assert.ErrorIs(t, g.PromotePending("p1"), ErrValidation)
	assert.Equal(t, []string{"p1"}, g.Pending)
	assert.Len(t, g.Accepted, 3)
}

func TestGathering_WaitlistPending(t *testing.T) {
	g := testGathering()
	require.NoError(t, g.AddPending("p1"))
	require.NoError(t, g.AddPending("p2"))

	moved := g.WaitlistPending()
	assert.ElementsMatch(t, []string{"p1", "p2"}, moved)
	assert.Empty(t, g.Pending)
	assert.ElementsMatch(t, []string{"p1", "p2"}, g.Waitlisted)
}

func TestGathering_ContactedIDs(t *testing.T) {
	g := testGathering()
	g.Accepted = []string{"a"}
	g.Pending = []string{"p"}
	g.Declined = []string{"d"}
	g.Waitlisted = []string{"w"}

	contacted := g.ContactedIDs()
	assert.Contains(t, contacted, "a")
	assert.Contains(t, contacted, "p")
	assert.Contains(t, contacted, "d")
	// Waitlisted users never held an invitation through the normal path
	assert.NotContains(t, contacted, "w")
}

func TestGathering_IsTerminal(t *testing.T) {
	g := testGathering()
	assert.False(t, g.IsTerminal())

	for _, status := range []string{GatheringStatusConfirmed, GatheringStatusActive, GatheringStatusFull} {
		g.Status = status
		assert.False(t, g.IsTerminal(), status)
	}
	for _, status := range []string{GatheringStatusCancelled, GatheringStatusCompleted} {
		g.Status = status
		assert.True(t, g.IsTerminal(), status)
	}
}
