package models

import "time"

// Invitation represents a targeted invite for one attendee to one gathering
type Invitation struct {
	InvitationID    string     `json:"invitationId" dynamodbav:"invitationId"`
	GatheringID     string     `json:"gatheringId" dynamodbav:"gatheringId"`
	TargetUserID    string     `json:"targetUserId" dynamodbav:"targetUserId"`
	Message         string     `json:"message" dynamodbav:"message"`
	MatchingReasons []string   `json:"matchingReasons" dynamodbav:"matchingReasons"`
	Score           int        `json:"score" dynamodbav:"score"`
	AutoAccepted    bool       `json:"autoAccepted" dynamodbav:"autoAccepted"`
	Priority        string     `json:"priority" dynamodbav:"priority"`
	Status          string     `json:"status" dynamodbav:"status"`
	SentAt          time.Time  `json:"sentAt" dynamodbav:"sentAt"`
	ExpiresAt       time.Time  `json:"expiresAt" dynamodbav:"expiresAt"`
	RespondedAt     *time.Time `json:"respondedAt,omitempty" dynamodbav:"respondedAt,omitempty"`
}

// TableName returns the DynamoDB table name
func (Invitation) TableName() string {
	return "Invitations"
}

// IsLive reports whether the invitation is still awaiting a response at t
func (inv *Invitation) IsLive(t time.Time) bool {
	return inv.Status == InvitationStatusPending && t.Before(inv.ExpiresAt)
}
