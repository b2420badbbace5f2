package models

import (
	"fmt"
	"time"
)

// Capacity bounds the gathering size
type Capacity struct {
	Min int `json:"min" dynamodbav:"min"`
	Max int `json:"max" dynamodbav:"max"`
}

// Timing describes when the gathering should happen
type Timing struct {
	PreferredTime   time.Time `json:"preferredTime" dynamodbav:"preferredTime"`
	Flexible        bool      `json:"flexible" dynamodbav:"flexible"`
	DurationMinutes int       `json:"durationMinutes" dynamodbav:"durationMinutes"`
	WindowStart     time.Time `json:"windowStart" dynamodbav:"windowStart"`
	WindowEnd       time.Time `json:"windowEnd" dynamodbav:"windowEnd"`
}

// GatheringMetadata tracks invitation traffic and health
type GatheringMetadata struct {
	InvitesSent       int     `json:"invitesSent" dynamodbav:"invitesSent"`
	ResponsesReceived int     `json:"responsesReceived" dynamodbav:"responsesReceived"`
	Momentum          float64 `json:"momentum" dynamodbav:"momentum"`
}

// Gathering represents a small, time-boxed in-person meetup
type Gathering struct {
	GatheringID string            `json:"gatheringId" dynamodbav:"gatheringId"`
	CreatorID   string            `json:"creatorId" dynamodbav:"creatorId"`
	Title       string            `json:"title" dynamodbav:"title"`
	Description string            `json:"description" dynamodbav:"description"`
	Type        string            `json:"type" dynamodbav:"type"`
	Capacity    Capacity          `json:"capacity" dynamodbav:"capacity"`
	Timing      Timing            `json:"timing" dynamodbav:"timing"`
	Targeting   TargetingSpec     `json:"targeting" dynamodbav:"targeting"`
	Status      string            `json:"status" dynamodbav:"status"`
	Accepted    []string          `json:"accepted" dynamodbav:"accepted"`
	Pending     []string          `json:"pending" dynamodbav:"pending"`
	Declined    []string          `json:"declined" dynamodbav:"declined"`
	Waitlisted  []string          `json:"waitlisted" dynamodbav:"waitlisted"`
	Metadata    GatheringMetadata `json:"metadata" dynamodbav:"metadata"`
	CreatedAt   time.Time         `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt" dynamodbav:"updatedAt"`
}

// TableName returns the DynamoDB table name
func (Gathering) TableName() string {
	return "Gatherings"
}

// GatheringRequest is the organizer's creation payload
type GatheringRequest struct {
	CreatorID   string   `json:"creatorId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Capacity    Capacity `json:"capacity"`
	Timing      Timing   `json:"timing"`
}

// IsTerminal reports whether the gathering can no longer be mutated
func (g *Gathering) IsTerminal() bool {
	return g.Status == GatheringStatusCancelled || g.Status == GatheringStatusCompleted
}

// InSet reports whether userID belongs to any attendee set
func (g *Gathering) InSet(userID string) bool {
	for _, set := range [][]string{g.Accepted, g.Pending, g.Declined, g.Waitlisted} {
		if contains(set, userID) {
			return true
		}
	}
	return false
}

// ContactedIDs returns every userID that already holds or held an invitation
// (accepted, pending or declined). Boosting must never re-invite these.
func (g *Gathering) ContactedIDs() map[string]struct{} {
	contacted := make(map[string]struct{})
	for _, set := range [][]string{g.Accepted, g.Pending, g.Declined} {
		for _, id := range set {
			contacted[id] = struct{}{}
		}
	}
	return contacted
}

// AddAccepted places a new userID directly into the accepted set.
// Fails if the user is already tracked or the gathering is at capacity.
func (g *Gathering) AddAccepted(userID string) error {
	if g.InSet(userID) {
		return fmt.Errorf("%w: user %s already tracked by gathering %s", ErrValidation, userID, g.GatheringID)
	}
	if len(g.Accepted) >= g.Capacity.Max {
		return fmt.Errorf("%w: gathering %s is at capacity", ErrValidation, g.GatheringID)
	}
	g.Accepted = append(g.Accepted, userID)
	return nil
}

// AddPending places a new userID into the pending set
func (g *Gathering) AddPending(userID string) error {
	if g.InSet(userID) {
		return fmt.Errorf("%w: user %s already tracked by gathering %s", ErrValidation, userID, g.GatheringID)
	}
	g.Pending = append(g.Pending, userID)
	return nil
}

// PromotePending moves a userID from pending to accepted, guarding capacity
func (g *Gathering) PromotePending(userID string) error {
	if !contains(g.Pending, userID) {
		return fmt.Errorf("%w: user %s is not pending on gathering %s", ErrNotFound, userID, g.GatheringID)
	}
	if len(g.Accepted) >= g.Capacity.Max {
		return fmt.Errorf("%w: gathering %s is at capacity", ErrValidation, g.GatheringID)
	}
	g.Pending = remove(g.Pending, userID)
	g.Accepted = append(g.Accepted, userID)
	return nil
}

// DeclinePending moves a userID from pending to declined
func (g *Gathering) DeclinePending(userID string) error {
	if !contains(g.Pending, userID) {
		return fmt.Errorf("%w: user %s is not pending on gathering %s", ErrNotFound, userID, g.GatheringID)
	}
	g.Pending = remove(g.Pending, userID)
	g.Declined = append(g.Declined, userID)
	return nil
}

// WaitlistPending moves every pending userID onto the waitlist and returns
// the moved IDs. Used when a gathering fills up.
func (g *Gathering) WaitlistPending() []string {
	moved := g.Pending
	g.Waitlisted = append(g.Waitlisted, moved...)
	g.Pending = nil
	return moved
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func remove(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
