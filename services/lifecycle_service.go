package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"mingle_server/models"

	"github.com/google/uuid"
)

// LifecycleConfig holds the engine tunables. Tests shrink the intervals.
type LifecycleConfig struct {
	TickInterval        time.Duration
	MomentumDecay       float64
	MomentumBoost       float64
	BoostTrigger        float64
	BoostThresholdDelta int
	AcceptRatioTrigger  float64
	MaxTotalInvites     int
	ActivationLead      time.Duration
	CancelLead          time.Duration
}

// DefaultLifecycleConfig returns the production tunables
func DefaultLifecycleConfig() LifecycleConfig {
	return LifecycleConfig{
		TickInterval:        time.Minute,
		MomentumDecay:       10,
		MomentumBoost:       40,
		BoostTrigger:        20,
		BoostThresholdDelta: 10,
		AcceptRatioTrigger:  0.3,
		MaxTotalInvites:     30,
		ActivationLead:      15 * time.Minute,
		CancelLead:          10 * time.Minute,
	}
}

// LifecycleService owns gathering state. It applies invitation responses,
// runs the per-gathering reassessment tick and revives stalling gatherings
// by boosting. Writes to one gathering are serialized behind a
// per-gathering mutex; different gatherings run fully independently.
type LifecycleService struct {
	Gatherings  GatheringStore
	Invitations InvitationStore
	Directory   CandidateDirectory
	Targeting   *TargetingService
	Scoring     *ScoringService
	Dispatcher  *InvitationService
	Notifier    Notifier
	Scheduler   *Scheduler
	Config      LifecycleConfig

	// Now is swappable in tests; defaults to time.Now
	Now func() time.Time

	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	boosting map[string]bool
}

// NewLifecycleService wires the lifecycle manager
func NewLifecycleService(
	gatherings GatheringStore,
	invitations InvitationStore,
	directory CandidateDirectory,
	targeting *TargetingService,
	scoring *ScoringService,
	dispatcher *InvitationService,
	notifier Notifier,
	scheduler *Scheduler,
	config LifecycleConfig,
) *LifecycleService {
	return &LifecycleService{
		Gatherings:  gatherings,
		Invitations: invitations,
		Directory:   directory,
		Targeting:   targeting,
		Scoring:     scoring,
		Dispatcher:  dispatcher,
		Notifier:    notifier,
		Scheduler:   scheduler,
		Config:      config,
		Now:         time.Now,
		locks:       make(map[string]*sync.Mutex),
		boosting:    make(map[string]bool),
	}
}

func (ls *LifecycleService) lockFor(gatheringID string) *sync.Mutex {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	lock, ok := ls.locks[gatheringID]
	if !ok {
		lock = &sync.Mutex{}
		ls.locks[gatheringID] = lock
	}
	return lock
}

// CreateGathering validates the request, compiles targeting, dispatches the
// initial round of invitations and starts the gathering's reassessment tick.
func (ls *LifecycleService) CreateGathering(ctx context.Context, req models.GatheringRequest) (*models.Gathering, error) {
	if req.CreatorID == "" || req.Title == "" {
		return nil, fmt.Errorf("%w: creatorId and title are required", models.ErrValidation)
	}

	creator, err := ls.Directory.GetAttendeeProfile(ctx, req.CreatorID)
	if err != nil {
		// Targeting degrades without organizer context; keep going.
		log.Printf("Creator profile for %s unavailable: %v", req.CreatorID, err)
		creator = nil
	}

	spec, err := ls.Targeting.BuildTargetingSpec(req, creator)
	if err != nil {
		return nil, err
	}

	now := ls.Now()
	g := &models.Gathering{
		GatheringID: uuid.NewString(),
		CreatorID:   req.CreatorID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Capacity:    req.Capacity,
		Timing:      req.Timing,
		Targeting:   spec,
		Status:      models.GatheringStatusInviting,
		Metadata:    models.GatheringMetadata{Momentum: 100},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	candidates, err := ls.Directory.GetActiveAttendees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}
	ranked := ls.Scoring.RankCandidates(candidates, spec, g.Timing)

	if _, err := ls.Dispatcher.DispatchInvitations(ctx, g, ranked); err != nil {
		return nil, err
	}
	ls.runChecks(ctx, g)

	if err := ls.Gatherings.SaveGathering(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save gathering: %w", err)
	}

	if !g.IsTerminal() {
		ls.startTicker(g.GatheringID)
	}

	log.Printf("Gathering %s created by %s: %d invited, status %s", g.GatheringID, g.CreatorID, g.Metadata.InvitesSent, g.Status)
	return g, nil
}

func (ls *LifecycleService) startTicker(gatheringID string) {
	ls.Scheduler.Start(gatheringID, ls.Config.TickInterval, func() {
		if err := ls.Tick(context.Background(), gatheringID); err != nil {
			log.Printf("Tick failed for gathering %s: %v", gatheringID, err)
		}
	})
}

// RestoreGatherings reloads persisted gatherings at boot and resumes ticking
// the ones still in flight
func (ls *LifecycleService) RestoreGatherings(ctx context.Context) error {
	gatherings, err := ls.Gatherings.LoadGatherings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load gatherings: %w", err)
	}
	restored := 0
	for i := range gatherings {
		if gatherings[i].IsTerminal() {
			continue
		}
		ls.startTicker(gatherings[i].GatheringID)
		restored++
	}
	log.Printf("Restored %d in-flight gatherings", restored)
	return nil
}

// GetGathering fetches one gathering
func (ls *LifecycleService) GetGathering(ctx context.Context, gatheringID string) (*models.Gathering, error) {
	return ls.Gatherings.GetGathering(ctx, gatheringID)
}

// ListGatherings fetches every stored gathering
func (ls *LifecycleService) ListGatherings(ctx context.Context) ([]models.Gathering, error) {
	return ls.Gatherings.LoadGatherings(ctx)
}

// Tick is the recurring per-gathering reassessment: sweep expired
// invitations, decay momentum, re-run the status checks and kick off a
// boost when the gathering is stalling.
func (ls *LifecycleService) Tick(ctx context.Context, gatheringID string) error {
	lock := ls.lockFor(gatheringID)
	lock.Lock()

	g, err := ls.Gatherings.GetGathering(ctx, gatheringID)
	if err != nil {
		lock.Unlock()
		return err
	}
	if g.IsTerminal() {
		lock.Unlock()
		ls.Scheduler.Cancel(gatheringID)
		return nil
	}

	ls.expireInvitations(ctx, g)

	g.Metadata.Momentum -= ls.Config.MomentumDecay
	if g.Metadata.Momentum < 0 {
		g.Metadata.Momentum = 0
	}

	ls.runChecks(ctx, g)

	needBoost := !g.IsTerminal() &&
		g.Status == models.GatheringStatusInviting &&
		g.Metadata.Momentum < ls.Config.BoostTrigger &&
		g.Metadata.InvitesSent < ls.Config.MaxTotalInvites &&
		ls.markBoosting(gatheringID)

	g.UpdatedAt = ls.Now()
	saveErr := ls.Gatherings.SaveGathering(ctx, g)
	lock.Unlock()

	if saveErr != nil {
		if needBoost {
			ls.clearBoosting(gatheringID)
		}
		return saveErr
	}

	// The boost rescoring of the whole pool is expensive; run it off the
	// tick goroutine so it never holds up response handling.
	if needBoost {
		go ls.boost(context.Background(), gatheringID)
	}
	return nil
}

// expireInvitations sweeps pending invitations past their deadline. Expired
// invitees leave the pending set and join declined, keeping them inside the
// already-contacted exclusion for later boosts.
func (ls *LifecycleService) expireInvitations(ctx context.Context, g *models.Gathering) {
	invites, err := ls.Invitations.ListInvitationsByGathering(ctx, g.GatheringID)
	if err != nil {
		log.Printf("Failed to list invitations for gathering %s: %v", g.GatheringID, err)
		return
	}

	now := ls.Now()
	for i := range invites {
		inv := &invites[i]
		if inv.Status != models.InvitationStatusPending || now.Before(inv.ExpiresAt) {
			continue
		}
		inv.Status = models.InvitationStatusExpired
		if err := ls.Invitations.SaveInvitation(ctx, inv); err != nil {
			log.Printf("Failed to expire invitation %s: %v", inv.InvitationID, err)
			continue
		}
		if err := g.DeclinePending(inv.TargetUserID); err == nil {
			log.Printf("Gathering %s: invitation to %s expired", g.GatheringID, inv.TargetUserID)
		}
	}
}

// ProcessInvitationResponse applies an accept or decline to a pending
// invitation and re-runs the lifecycle checks synchronously.
func (ls *LifecycleService) ProcessInvitationResponse(ctx context.Context, invitationID, response string) (*models.Invitation, *models.Gathering, error) {
	if response != models.InvitationStatusAccepted && response != models.InvitationStatusDeclined {
		return nil, nil, fmt.Errorf("%w: response must be accepted or declined", models.ErrValidation)
	}

	inv, err := ls.Invitations.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, nil, fmt.Errorf("invitation %s: %w", invitationID, err)
	}
	if inv.Status != models.InvitationStatusPending {
		return nil, nil, fmt.Errorf("invitation %s is %s: %w", invitationID, inv.Status, models.ErrAlreadyResponded)
	}

	lock := ls.lockFor(inv.GatheringID)
	lock.Lock()
	defer lock.Unlock()

	g, err := ls.Gatherings.GetGathering(ctx, inv.GatheringID)
	if err != nil {
		return nil, nil, fmt.Errorf("gathering %s: %w", inv.GatheringID, err)
	}
	if g.IsTerminal() {
		return nil, nil, fmt.Errorf("gathering %s is %s: %w", g.GatheringID, g.Status, models.ErrTerminalState)
	}

	now := ls.Now()
	if now.After(inv.ExpiresAt) {
		inv.Status = models.InvitationStatusExpired
		if err := ls.Invitations.SaveInvitation(ctx, inv); err == nil {
			if derr := g.DeclinePending(inv.TargetUserID); derr == nil {
				g.UpdatedAt = now
				if serr := ls.Gatherings.SaveGathering(ctx, g); serr != nil {
					log.Printf("Failed to save gathering %s after expiry: %v", g.GatheringID, serr)
				}
			}
		}
		return nil, nil, fmt.Errorf("invitation %s expired: %w", invitationID, models.ErrAlreadyResponded)
	}

	prevInv := *inv
	prevGathering := *g

	switch response {
	case models.InvitationStatusAccepted:
		if err := g.PromotePending(inv.TargetUserID); err != nil {
			return nil, nil, err
		}
	case models.InvitationStatusDeclined:
		if err := g.DeclinePending(inv.TargetUserID); err != nil {
			return nil, nil, err
		}
	}

	inv.Status = response
	inv.RespondedAt = &now
	g.Metadata.ResponsesReceived++
	g.UpdatedAt = now

	if response == models.InvitationStatusAccepted {
		ls.Notifier.Notify(g.CreatorID, models.NotificationPayload{
			Type:  models.NotificationTypeAccepted,
			Title: "Someone's in!",
			Body:  fmt.Sprintf("An invitee accepted %q.", g.Title),
			Data:  map[string]string{"gatheringId": g.GatheringID, "userId": inv.TargetUserID},
		})
	}

	ls.runChecks(ctx, g)

	// Persist the pair; on a gathering save failure the invitation change
	// is rolled back so the response can be retried.
	if err := ls.Invitations.SaveInvitation(ctx, inv); err != nil {
		return nil, nil, fmt.Errorf("failed to save invitation %s: %w", invitationID, err)
	}
	if err := ls.Gatherings.SaveGathering(ctx, g); err != nil {
		if rerr := ls.Invitations.SaveInvitation(ctx, &prevInv); rerr != nil {
			log.Printf("Rollback of invitation %s failed: %v", invitationID, rerr)
		}
		*g = prevGathering
		return nil, nil, fmt.Errorf("failed to save gathering %s: %w", g.GatheringID, err)
	}

	// A decline wave means the targeting is off; relax it in the background.
	if response == models.InvitationStatusDeclined && ls.shouldBoostAfterDecline(g) && ls.markBoosting(g.GatheringID) {
		go ls.boost(context.Background(), g.GatheringID)
	}

	return inv, g, nil
}

func (ls *LifecycleService) shouldBoostAfterDecline(g *models.Gathering) bool {
	if g.IsTerminal() || g.Status != models.GatheringStatusInviting {
		return false
	}
	if g.Metadata.InvitesSent >= ls.Config.MaxTotalInvites || g.Metadata.ResponsesReceived == 0 {
		return false
	}
	ratio := float64(len(g.Accepted)) / float64(g.Metadata.ResponsesReceived)
	return ratio < ls.Config.AcceptRatioTrigger
}

// CompleteGathering marks a gathering completed and stops its tick.
// Completion comes from outside the engine (the event stage wraps up).
func (ls *LifecycleService) CompleteGathering(ctx context.Context, gatheringID string) (*models.Gathering, error) {
	lock := ls.lockFor(gatheringID)
	lock.Lock()
	defer lock.Unlock()

	g, err := ls.Gatherings.GetGathering(ctx, gatheringID)
	if err != nil {
		return nil, err
	}
	if g.IsTerminal() {
		return nil, fmt.Errorf("gathering %s is %s: %w", gatheringID, g.Status, models.ErrTerminalState)
	}

	g.Status = models.GatheringStatusCompleted
	g.UpdatedAt = ls.Now()
	if err := ls.Gatherings.SaveGathering(ctx, g); err != nil {
		return nil, err
	}

	ls.Scheduler.Cancel(gatheringID)
	log.Printf("Gathering %s completed", gatheringID)
	return g, nil
}

// runChecks applies the status rules in order: cancellation, capacity,
// confirmation, activation. It mutates g in place; the caller saves.
func (ls *LifecycleService) runChecks(ctx context.Context, g *models.Gathering) {
	if g.IsTerminal() {
		return
	}
	now := ls.Now()
	timeToStart := g.Timing.PreferredTime.Sub(now)

	// Too close to start without a quorum: cancel and tell everyone in.
	if timeToStart < ls.Config.CancelLead && len(g.Accepted) < g.Capacity.Min {
		g.Status = models.GatheringStatusCancelled
		for _, userID := range g.Accepted {
			ls.Notifier.Notify(userID, models.NotificationPayload{
				Type:  models.NotificationTypeCancelled,
				Title: fmt.Sprintf("%q was cancelled", g.Title),
				Body:  "Not enough people could make it this time.",
				Data:  map[string]string{"gatheringId": g.GatheringID},
			})
		}
		ls.Notifier.Notify(g.CreatorID, models.NotificationPayload{
			Type:  models.NotificationTypeCancelled,
			Title: fmt.Sprintf("%q was cancelled", g.Title),
			Body:  "It did not reach the minimum headcount in time.",
			Data:  map[string]string{"gatheringId": g.GatheringID},
		})
		ls.Scheduler.Cancel(g.GatheringID)
		return
	}

	// At capacity: freeze the roster and waitlist whoever is still pending.
	if len(g.Accepted) >= g.Capacity.Max && g.Status != models.GatheringStatusFull && g.Status != models.GatheringStatusActive {
		g.Status = models.GatheringStatusFull
		for _, userID := range g.WaitlistPending() {
			ls.Notifier.Notify(userID, models.NotificationPayload{
				Type:  models.NotificationTypeWaitlisted,
				Title: fmt.Sprintf("%q is full", g.Title),
				Body:  "You are on the waitlist and will be told if a spot opens.",
				Data:  map[string]string{"gatheringId": g.GatheringID},
			})
		}
	}

	if g.Status == models.GatheringStatusInviting && len(g.Accepted) >= g.Capacity.Min {
		g.Status = models.GatheringStatusConfirmed
	}

	if (g.Status == models.GatheringStatusConfirmed || g.Status == models.GatheringStatusFull) &&
		timeToStart < ls.Config.ActivationLead && len(g.Accepted) >= g.Capacity.Min {
		g.Status = models.GatheringStatusActive
		for _, userID := range g.Accepted {
			ls.Notifier.Notify(userID, models.NotificationPayload{
				Type:  models.NotificationTypeStatusChange,
				Title: fmt.Sprintf("%q is starting soon", g.Title),
				Body:  fmt.Sprintf("See you at %s.", g.Timing.PreferredTime.Format("3:04 PM")),
				Data:  map[string]string{"gatheringId": g.GatheringID, "status": g.Status},
			})
		}
	}
}

func (ls *LifecycleService) markBoosting(gatheringID string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.boosting[gatheringID] {
		return false
	}
	ls.boosting[gatheringID] = true
	return true
}

func (ls *LifecycleService) clearBoosting(gatheringID string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	delete(ls.boosting, gatheringID)
}

// boost revives a stalling gathering: lower the auto-accept threshold,
// rescore the pool excluding everyone already contacted, invite the new top
// matches and restore momentum. The expensive rescoring happens before the
// gathering lock is taken.
func (ls *LifecycleService) boost(ctx context.Context, gatheringID string) {
	defer ls.clearBoosting(gatheringID)

	candidates, err := ls.Directory.GetActiveAttendees(ctx)
	if err != nil {
		log.Printf("Boost for gathering %s aborted, candidate pool unavailable: %v", gatheringID, err)
		return
	}

	lock := ls.lockFor(gatheringID)
	lock.Lock()
	defer lock.Unlock()

	g, err := ls.Gatherings.GetGathering(ctx, gatheringID)
	if err != nil {
		log.Printf("Boost for gathering %s aborted: %v", gatheringID, err)
		return
	}
	if g.IsTerminal() || g.Status != models.GatheringStatusInviting {
		return
	}

	g.Targeting.AutoAcceptThreshold -= ls.Config.BoostThresholdDelta
	if g.Targeting.AutoAcceptThreshold < 0 {
		g.Targeting.AutoAcceptThreshold = 0
	}

	contacted := g.ContactedIDs()
	fresh := candidates[:0]
	for _, c := range candidates {
		if c.UserID == g.CreatorID {
			continue
		}
		if _, seen := contacted[c.UserID]; seen {
			continue
		}
		fresh = append(fresh, c)
	}

	ranked := ls.Scoring.RankCandidates(fresh, g.Targeting, g.Timing)
	budget := ls.Config.MaxTotalInvites - g.Metadata.InvitesSent
	if budget <= 0 {
		return
	}
	if len(ranked) > budget {
		ranked = ranked[:budget]
	}

	sent, err := ls.Dispatcher.DispatchInvitations(ctx, g, ranked)
	if err != nil {
		log.Printf("Boost dispatch for gathering %s failed: %v", gatheringID, err)
	}

	g.Metadata.Momentum += ls.Config.MomentumBoost
	if g.Metadata.Momentum > 100 {
		g.Metadata.Momentum = 100
	}

	ls.runChecks(ctx, g)
	g.UpdatedAt = ls.Now()
	if err := ls.Gatherings.SaveGathering(ctx, g); err != nil {
		log.Printf("Failed to save gathering %s after boost: %v", gatheringID, err)
		return
	}

	log.Printf("Gathering %s boosted: threshold now %d, %d new invites", gatheringID, g.Targeting.AutoAcceptThreshold, len(sent))
}
