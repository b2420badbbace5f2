package services

import (
	"context"
	"time"

	"mingle_server/models"
	"mingle_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CandidateDirectory provides read access to the attendee pool
type CandidateDirectory interface {
	GetActiveAttendees(ctx context.Context) ([]models.AttendeeProfile, error)
	GetAttendeeProfile(ctx context.Context, userID string) (*models.AttendeeProfile, error)
}

// AvailabilityProvider turns an attendee's declared availability into a
// signal in [0,1] for a proposed slot
type AvailabilityProvider interface {
	AvailabilitySignal(profile *models.AttendeeProfile, start time.Time, duration time.Duration) float64
}

// DirectoryService reads attendee profiles from DynamoDB. It implements
// both CandidateDirectory and AvailabilityProvider.
type DirectoryService struct {
	Dynamo *DynamoService
}

// GetActiveAttendees returns every checked-in attendee
func (ds *DirectoryService) GetActiveAttendees(ctx context.Context) ([]models.AttendeeProfile, error) {
	var profiles []models.AttendeeProfile
	err := ds.Dynamo.ScanWithFilter(ctx, models.AttendeeProfilesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractBool(item, "checkedIn") && utils.ExtractString(item, "userId") != ""
	}, &profiles)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetAttendeeProfile retrieves one attendee profile by ID
func (ds *DirectoryService) GetAttendeeProfile(ctx context.Context, userID string) (*models.AttendeeProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := ds.Dynamo.GetItem(ctx, models.AttendeeProfilesTable, key)
	if err != nil {
		return nil, err
	}

	var profile models.AttendeeProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddAttendeeProfile upserts an attendee profile
func (ds *DirectoryService) AddAttendeeProfile(ctx context.Context, profile models.AttendeeProfile) (*models.AttendeeProfile, error) {
	if err := ds.Dynamo.PutItem(ctx, models.AttendeeProfilesTable, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetCheckedIn flips the attendee's check-in flag in place
func (ds *DirectoryService) SetCheckedIn(ctx context.Context, userID string, checkedIn bool) error {
	_, err := ds.Dynamo.UpdateItem(ctx, models.AttendeeProfilesTable,
		"SET checkedIn = :checkedIn",
		map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
		map[string]types.AttributeValue{
			":checkedIn": &types.AttributeValueMemberBOOL{Value: checkedIn},
		}, nil)
	return err
}

// AvailabilitySignal scores how well the slot [start, start+duration) fits
// the attendee's declared windows: 1.0 for full coverage, 0.6 for partial
// overlap, 0.2 otherwise. No declared windows reads as open-ended and
// scores 0.8 so sparse profiles are not punished.
func (ds *DirectoryService) AvailabilitySignal(profile *models.AttendeeProfile, start time.Time, duration time.Duration) float64 {
	return AvailabilityFromWindows(profile.Availability, start, duration)
}

// AvailabilityFromWindows holds the actual window math so stubbed providers
// in tests can share it
func AvailabilityFromWindows(windows []models.AvailabilityWindow, start time.Time, duration time.Duration) float64 {
	if len(windows) == 0 {
		return 0.8
	}
	end := start.Add(duration)
	best := 0.2
	for _, w := range windows {
		if !start.Before(w.Start) && !end.After(w.End) {
			return 1.0
		}
		if start.Before(w.End) && end.After(w.Start) {
			best = 0.6
		}
	}
	return best
}
