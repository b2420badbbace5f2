package services

import (
	"context"
	"sync"

	"mingle_server/models"
)

// MemoryStore is an in-memory GatheringStore and InvitationStore.
// It backs tests and local runs without AWS credentials.
type MemoryStore struct {
	mu          sync.RWMutex
	gatherings  map[string]models.Gathering
	invitations map[string]models.Invitation
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		gatherings:  make(map[string]models.Gathering),
		invitations: make(map[string]models.Invitation),
	}
}

func (m *MemoryStore) SaveGathering(ctx context.Context, g *models.Gathering) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gatherings[g.GatheringID] = copyGathering(g)
	return nil
}

func (m *MemoryStore) GetGathering(ctx context.Context, gatheringID string) (*models.Gathering, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.gatherings[gatheringID]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := copyGathering(&g)
	return &out, nil
}

func (m *MemoryStore) LoadGatherings(ctx context.Context) ([]models.Gathering, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Gathering, 0, len(m.gatherings))
	for _, g := range m.gatherings {
		out = append(out, copyGathering(&g))
	}
	return out, nil
}

func (m *MemoryStore) SaveInvitation(ctx context.Context, inv *models.Invitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invitations[inv.InvitationID] = *inv
	return nil
}

func (m *MemoryStore) GetInvitation(ctx context.Context, invitationID string) (*models.Invitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.invitations[invitationID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &inv, nil
}

func (m *MemoryStore) ListInvitationsByGathering(ctx context.Context, gatheringID string) ([]models.Invitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Invitation
	for _, inv := range m.invitations {
		if inv.GatheringID == gatheringID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListPendingInvitationsByUser(ctx context.Context, userID string) ([]models.Invitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Invitation
	for _, inv := range m.invitations {
		if inv.TargetUserID == userID && inv.Status == models.InvitationStatusPending {
			out = append(out, inv)
		}
	}
	return out, nil
}

// GatheringCount reports how many gatherings are stored. Used by tests to
// assert save idempotence.
func (m *MemoryStore) GatheringCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.gatherings)
}

// copyGathering deep-copies the attendee sets so callers never alias
// the stored record
func copyGathering(g *models.Gathering) models.Gathering {
	out := *g
	out.Accepted = append([]string(nil), g.Accepted...)
	out.Pending = append([]string(nil), g.Pending...)
	out.Declined = append([]string(nil), g.Declined...)
	out.Waitlisted = append([]string(nil), g.Waitlisted...)
	return out
}
