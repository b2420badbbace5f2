package services

import (
	"context"
	"testing"

	"mingle_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	g := &models.Gathering{GatheringID: "g-1", Title: "First"}
	require.NoError(t, store.SaveGathering(ctx, g))
	require.NoError(t, store.SaveGathering(ctx, g))
	assert.Equal(t, 1, store.GatheringCount())

	g.Title = "Renamed"
	require.NoError(t, store.SaveGathering(ctx, g))
	assert.Equal(t, 1, store.GatheringCount())

	stored, err := store.GetGathering(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetGathering(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = store.GetInvitation(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryStore_CopiesOnReadAndWrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	g := &models.Gathering{GatheringID: "g-1", Accepted: []string{"a1"}}
	require.NoError(t, store.SaveGathering(ctx, g))

	// Mutating the caller's slice must not reach the stored record
	g.Accepted = append(g.Accepted, "a2")

	stored, err := store.GetGathering(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, stored.Accepted)

	// And mutating a read result must not reach the store either
	stored.Accepted[0] = "tampered"
	again, err := store.GetGathering(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, again.Accepted)
}

func TestMemoryStore_InvitationQueries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	invites := []models.Invitation{
		{InvitationID: "i1", GatheringID: "g-1", TargetUserID: "u1", Status: models.InvitationStatusPending},
		{InvitationID: "i2", GatheringID: "g-1", TargetUserID: "u2", Status: models.InvitationStatusAccepted},
		{InvitationID: "i3", GatheringID: "g-2", TargetUserID: "u1", Status: models.InvitationStatusPending},
	}
	for i := range invites {
		require.NoError(t, store.SaveInvitation(ctx, &invites[i]))
	}

	byGathering, err := store.ListInvitationsByGathering(ctx, "g-1")
	require.NoError(t, err)
	assert.Len(t, byGathering, 2)

	pending, err := store.ListPendingInvitationsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, inv := range pending {
		assert.Equal(t, models.InvitationStatusPending, inv.Status)
		assert.Equal(t, "u1", inv.TargetUserID)
	}
}
