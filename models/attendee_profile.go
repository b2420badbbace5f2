package models

import "time"

// AvailabilityWindow is a block of time an attendee marked as free
type AvailabilityWindow struct {
	Start time.Time `json:"start" dynamodbav:"start"`
	End   time.Time `json:"end" dynamodbav:"end"`
}

// AttendeeProfile defines the structure for attendee profiles
type AttendeeProfile struct {
	UserID          string               `json:"userId" dynamodbav:"userId"`
	FullName        string               `json:"fullName,omitempty" dynamodbav:"fullName,omitempty"`
	Title           string               `json:"title,omitempty" dynamodbav:"title,omitempty"`
	CompanyName     string               `json:"companyName,omitempty" dynamodbav:"companyName,omitempty"`
	CompanySize     string               `json:"companySize,omitempty" dynamodbav:"companySize,omitempty"`
	Industry        string               `json:"industry,omitempty" dynamodbav:"industry,omitempty"`
	ExperienceYears int                  `json:"experienceYears,omitempty" dynamodbav:"experienceYears,omitempty"`
	Skills          []string             `json:"skills,omitempty" dynamodbav:"skills,omitempty"`
	Interests       []string             `json:"interests,omitempty" dynamodbav:"interests,omitempty"`
	Goals           []string             `json:"goals,omitempty" dynamodbav:"goals,omitempty"`
	CheckedIn       bool                 `json:"checkedIn" dynamodbav:"checkedIn"`
	Availability    []AvailabilityWindow `json:"availability,omitempty" dynamodbav:"availability,omitempty"`
	PhotoKeys       []string             `json:"photoKeys,omitempty" dynamodbav:"photoKeys,omitempty"`
}

// AttendeeProfilesTable is the DynamoDB table name for attendee profiles
const AttendeeProfilesTable = "AttendeeProfiles"

// TableName returns the DynamoDB table name
func (AttendeeProfile) TableName() string {
	return AttendeeProfilesTable
}
