package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"mingle_server/models"

	"github.com/google/uuid"
)

// InvitationTTL is how long a manual invitation stays live before expiring
const InvitationTTL = 30 * time.Minute

// InvitationService turns ranked candidates into invitation records and
// decides between auto-acceptance and the manual invite protocol.
type InvitationService struct {
	Invitations InvitationStore
	Notifier    Notifier

	// Now is swappable in tests; defaults to time.Now
	Now func() time.Time
}

// NewInvitationService wires an invitation dispatcher
func NewInvitationService(store InvitationStore, notifier Notifier) *InvitationService {
	return &InvitationService{
		Invitations: store,
		Notifier:    notifier,
		Now:         time.Now,
	}
}

// DispatchInvitations walks the ranked candidates in order and creates one
// invitation per candidate, mutating the gathering's attendee sets and
// invitesSent counter in place. The caller owns saving the gathering.
func (is *InvitationService) DispatchInvitations(ctx context.Context, g *models.Gathering, ranked []models.RankedCandidate) ([]models.Invitation, error) {
	live, err := is.liveInviteeIDs(ctx, g.GatheringID)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing invitations for gathering %s: %w", g.GatheringID, err)
	}

	var sent []models.Invitation
	for _, candidate := range ranked {
		userID := candidate.Profile.UserID
		if userID == "" || userID == g.CreatorID || g.InSet(userID) {
			continue
		}
		if _, exists := live[userID]; exists {
			continue
		}

		inv, err := is.dispatchOne(ctx, g, candidate)
		if err != nil {
			return sent, err
		}
		if inv != nil {
			sent = append(sent, *inv)
		}
	}
	return sent, nil
}

func (is *InvitationService) dispatchOne(ctx context.Context, g *models.Gathering, candidate models.RankedCandidate) (*models.Invitation, error) {
	now := is.Now()
	score := candidate.Score.Overall
	userID := candidate.Profile.UserID

	inv := models.Invitation{
		InvitationID:    uuid.NewString(),
		GatheringID:     g.GatheringID,
		TargetUserID:    userID,
		Message:         buildInviteMessage(g, candidate),
		MatchingReasons: candidate.Score.Reasons,
		Score:           score,
		Priority:        priorityForScore(score),
		SentAt:          now,
		ExpiresAt:       now.Add(InvitationTTL),
	}

	autoAccept := score >= g.Targeting.AutoAcceptThreshold && len(g.Accepted) < g.Capacity.Max
	if autoAccept {
		if err := g.AddAccepted(userID); err != nil {
			return nil, err
		}
		responded := now
		inv.Status = models.InvitationStatusAccepted
		inv.AutoAccepted = true
		inv.RespondedAt = &responded
	} else {
		if err := g.AddPending(userID); err != nil {
			return nil, err
		}
		inv.Status = models.InvitationStatusPending
	}

	// The counter moves together with the record: a failed save leaves the
	// attendee sets and invitesSent untouched.
	if err := is.Invitations.SaveInvitation(ctx, &inv); err != nil {
		is.rollbackDispatch(g, userID, autoAccept)
		return nil, fmt.Errorf("failed to save invitation for %s: %w", userID, err)
	}
	g.Metadata.InvitesSent++

	if autoAccept {
		log.Printf("Gathering %s: auto-accepted %s (score %d)", g.GatheringID, userID, score)
		is.Notifier.Notify(g.CreatorID, models.NotificationPayload{
			Type:  models.NotificationTypeAutoAccepted,
			Title: "Someone's in!",
			Body:  fmt.Sprintf("%s is joining %q.", candidate.Profile.FullName, g.Title),
			Data:  map[string]string{"gatheringId": g.GatheringID, "userId": userID},
		})
	} else {
		is.Notifier.Notify(userID, models.NotificationPayload{
			Type:  models.NotificationTypeInvitation,
			Title: fmt.Sprintf("You're invited: %s", g.Title),
			Body:  inv.Message,
			Data:  map[string]string{"gatheringId": g.GatheringID, "invitationId": inv.InvitationID},
			Actions: []models.NotificationAction{
				{ID: "accept", Label: "Accept"},
				{ID: "decline", Label: "Decline"},
				{ID: "view", Label: "View details"},
			},
		})
	}

	return &inv, nil
}

func (is *InvitationService) rollbackDispatch(g *models.Gathering, userID string, autoAccept bool) {
	if autoAccept {
		g.Accepted = removeID(g.Accepted, userID)
	} else {
		g.Pending = removeID(g.Pending, userID)
	}
}

// liveInviteeIDs returns users holding a still-live invitation, enforcing
// at most one live invitation per (gathering, user)
func (is *InvitationService) liveInviteeIDs(ctx context.Context, gatheringID string) (map[string]struct{}, error) {
	existing, err := is.Invitations.ListInvitationsByGathering(ctx, gatheringID)
	if err != nil {
		return nil, err
	}
	now := is.Now()
	live := make(map[string]struct{})
	for i := range existing {
		if existing[i].IsLive(now) {
			live[existing[i].TargetUserID] = struct{}{}
		}
	}
	return live, nil
}

var inviteMessageTemplates = map[string]string{
	models.GatheringTypeCoffee:     "Grab a coffee at %q. %s It kicks off %s and %d spots are left.",
	models.GatheringTypeDemo:       "Live demo: %q. %s Starting %s, %d seats left.",
	models.GatheringTypeDiscussion: "Join the discussion %q. %s Starts %s with %d seats open.",
	models.GatheringTypeNetworking: "Come meet people at %q. %s Starts %s, %d spots open.",
}

func buildInviteMessage(g *models.Gathering, candidate models.RankedCandidate) string {
	tmpl, ok := inviteMessageTemplates[g.Type]
	if !ok {
		tmpl = inviteMessageTemplates[models.GatheringTypeNetworking]
	}

	topReason := ""
	if len(candidate.Score.Reasons) > 0 {
		topReason = candidate.Score.Reasons[0] + "."
	}

	remaining := g.Capacity.Max - len(g.Accepted)
	return fmt.Sprintf(tmpl, g.Title, topReason, g.Timing.PreferredTime.Format("Mon 3:04 PM"), remaining)
}

func priorityForScore(score int) string {
	switch {
	case score >= 90:
		return models.PriorityCritical
	case score >= 75:
		return models.PriorityHigh
	case score >= 55:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
