package models

// Gathering types
const (
	GatheringTypeCoffee     = "coffee"
	GatheringTypeDemo       = "demo"
	GatheringTypeDiscussion = "discussion"
	GatheringTypeNetworking = "networking"
)

// Gathering statuses
const (
	GatheringStatusInviting  = "inviting"
	GatheringStatusConfirmed = "confirmed"
	GatheringStatusActive    = "active"
	GatheringStatusFull      = "full"
	GatheringStatusCancelled = "cancelled"
	GatheringStatusCompleted = "completed"
)

// Invitation statuses
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusDeclined = "declined"
	InvitationStatusExpired  = "expired"
)

// Invitation priorities
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Notification types
const (
	NotificationTypeInvitation   = "gathering_invitation"
	NotificationTypeAutoAccepted = "attendee_auto_accepted"
	NotificationTypeAccepted     = "attendee_accepted"
	NotificationTypeWaitlisted   = "attendee_waitlisted"
	NotificationTypeCancelled    = "gathering_cancelled"
	NotificationTypeStatusChange = "gathering_status"
)

// Scoring factor names, also used as keys in TargetingSpec.ScoringWeights
const (
	FactorProfile       = "profile"
	FactorSkills        = "skills"
	FactorInterests     = "interests"
	FactorExperience    = "experience"
	FactorAvailability  = "availability"
	FactorCompatibility = "compatibility"
)

// Experience buckets
const (
	ExperienceJunior    = "Junior"
	ExperienceMid       = "Mid"
	ExperienceSenior    = "Senior"
	ExperienceExecutive = "Executive"
	ExperienceSimilar   = "Similar"
)

// ProfileWildcard matches any candidate title in a targeting spec
const ProfileWildcard = "any"
