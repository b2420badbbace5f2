package services

import (
	"context"
	"sync"
	"time"

	"mingle_server/models"
)

// Interface compliance (compile-time assertions)
var (
	_ GatheringStore       = (*MemoryStore)(nil)
	_ InvitationStore      = (*MemoryStore)(nil)
	_ GatheringStore       = (*DynamoGatheringStore)(nil)
	_ InvitationStore      = (*DynamoInvitationStore)(nil)
	_ CandidateDirectory   = (*DirectoryService)(nil)
	_ AvailabilityProvider = (*DirectoryService)(nil)
	_ Notifier             = (*SocketNotifier)(nil)
	_ CandidateDirectory   = (*stubDirectory)(nil)
	_ AvailabilityProvider = (*stubAvailability)(nil)
	_ Notifier             = (*recordingNotifier)(nil)
)

type notifyEvent struct {
	userID  string
	payload models.NotificationPayload
}

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	mu     sync.Mutex
	events []notifyEvent
}

func (n *recordingNotifier) Notify(userID string, payload models.NotificationPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifyEvent{userID: userID, payload: payload})
}

func (n *recordingNotifier) byType(notificationType string) []notifyEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notifyEvent
	for _, e := range n.events {
		if e.payload.Type == notificationType {
			out = append(out, e)
		}
	}
	return out
}

func (n *recordingNotifier) recipients(notificationType string) []string {
	var out []string
	for _, e := range n.byType(notificationType) {
		out = append(out, e.userID)
	}
	return out
}

// stubDirectory serves a fixed attendee pool
type stubDirectory struct {
	attendees []models.AttendeeProfile
}

func (d *stubDirectory) GetActiveAttendees(ctx context.Context) ([]models.AttendeeProfile, error) {
	return append([]models.AttendeeProfile(nil), d.attendees...), nil
}

func (d *stubDirectory) GetAttendeeProfile(ctx context.Context, userID string) (*models.AttendeeProfile, error) {
	for i := range d.attendees {
		if d.attendees[i].UserID == userID {
			profile := d.attendees[i]
			return &profile, nil
		}
	}
	return nil, models.ErrNotFound
}

// stubAvailability returns a fixed signal per user, or a default
type stubAvailability struct {
	signals map[string]float64
	def     float64
}

func (s *stubAvailability) AvailabilitySignal(profile *models.AttendeeProfile, start time.Time, duration time.Duration) float64 {
	if v, ok := s.signals[profile.UserID]; ok {
		return v
	}
	return s.def
}

// fixedClock yields a controllable Now for the services under test
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFixedClock(t time.Time) *fixedClock {
	return &fixedClock{t: t}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
