package services

import (
	"context"

	"mingle_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GatheringStore is the persistence facade for gatherings.
// SaveGathering is an idempotent upsert keyed by gatheringId.
type GatheringStore interface {
	SaveGathering(ctx context.Context, g *models.Gathering) error
	GetGathering(ctx context.Context, gatheringID string) (*models.Gathering, error)
	LoadGatherings(ctx context.Context) ([]models.Gathering, error)
}

// InvitationStore is the persistence facade for invitations
type InvitationStore interface {
	SaveInvitation(ctx context.Context, inv *models.Invitation) error
	GetInvitation(ctx context.Context, invitationID string) (*models.Invitation, error)
	ListInvitationsByGathering(ctx context.Context, gatheringID string) ([]models.Invitation, error)
	ListPendingInvitationsByUser(ctx context.Context, userID string) ([]models.Invitation, error)
}

// DynamoGatheringStore persists gatherings in the Gatherings table
type DynamoGatheringStore struct {
	Dynamo *DynamoService
}

func (s *DynamoGatheringStore) SaveGathering(ctx context.Context, g *models.Gathering) error {
	return s.Dynamo.PutItem(ctx, models.Gathering{}.TableName(), g)
}

func (s *DynamoGatheringStore) GetGathering(ctx context.Context, gatheringID string) (*models.Gathering, error) {
	key := map[string]types.AttributeValue{
		"gatheringId": &types.AttributeValueMemberS{Value: gatheringID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.Gathering{}.TableName(), key)
	if err != nil {
		return nil, err
	}

	var g models.Gathering
	if err := attributevalue.UnmarshalMap(item, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *DynamoGatheringStore) LoadGatherings(ctx context.Context) ([]models.Gathering, error) {
	var gatherings []models.Gathering
	err := s.Dynamo.ScanWithFilter(ctx, models.Gathering{}.TableName(), nil, &gatherings)
	if err != nil {
		return nil, err
	}
	return gatherings, nil
}

// DynamoInvitationStore persists invitations in the Invitations table.
// Lookups by gathering and by target user go through the GatheringIndex
// and TargetUserIndex GSIs.
type DynamoInvitationStore struct {
	Dynamo *DynamoService
}

func (s *DynamoInvitationStore) SaveInvitation(ctx context.Context, inv *models.Invitation) error {
	return s.Dynamo.PutItem(ctx, models.Invitation{}.TableName(), inv)
}

func (s *DynamoInvitationStore) GetInvitation(ctx context.Context, invitationID string) (*models.Invitation, error) {
	key := map[string]types.AttributeValue{
		"invitationId": &types.AttributeValueMemberS{Value: invitationID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.Invitation{}.TableName(), key)
	if err != nil {
		return nil, err
	}

	var inv models.Invitation
	if err := attributevalue.UnmarshalMap(item, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *DynamoInvitationStore) ListInvitationsByGathering(ctx context.Context, gatheringID string) ([]models.Invitation, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.Invitation{}.TableName(), "GatheringIndex",
		"gatheringId = :gatheringId",
		map[string]types.AttributeValue{
			":gatheringId": &types.AttributeValueMemberS{Value: gatheringID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}

	var invites []models.Invitation
	if err := attributevalue.UnmarshalListOfMaps(items, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

func (s *DynamoInvitationStore) ListPendingInvitationsByUser(ctx context.Context, userID string) ([]models.Invitation, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.Invitation{}.TableName(), "TargetUserIndex",
		"targetUserId = :targetUserId",
		map[string]types.AttributeValue{
			":targetUserId": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, err
	}

	var invites []models.Invitation
	if err := attributevalue.UnmarshalListOfMaps(items, &invites); err != nil {
		return nil, err
	}

	pending := invites[:0]
	for _, inv := range invites {
		if inv.Status == models.InvitationStatusPending {
			pending = append(pending, inv)
		}
	}
	return pending, nil
}
