package services

import (
	"testing"

	"mingle_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest(gatheringType string) models.GatheringRequest {
	return models.GatheringRequest{
		CreatorID: "creator-1",
		Title:     "Quick chat",
		Type:      gatheringType,
		Capacity:  models.Capacity{Min: 2, Max: 6},
	}
}

func TestBuildTargetingSpec_TypeTemplates(t *testing.T) {
	ts := &TargetingService{}

	tests := []struct {
		gatheringType string
		threshold     int
		maxInvites    int
	}{
		{models.GatheringTypeCoffee, 75, 10},
		{models.GatheringTypeDemo, 80, 15},
		{models.GatheringTypeDiscussion, 70, 15},
		{models.GatheringTypeNetworking, 65, 15},
		{"unknown-type", 65, 15}, // falls back to networking
	}

	for _, tc := range tests {
		t.Run(tc.gatheringType, func(t *testing.T) {
			spec, err := ts.BuildTargetingSpec(validRequest(tc.gatheringType), nil)
			require.NoError(t, err)
			assert.Equal(t, tc.threshold, spec.AutoAcceptThreshold)
			assert.Equal(t, tc.maxInvites, spec.MaxInvites)
			assert.NotEmpty(t, spec.Profiles)
			assert.NotEmpty(t, spec.PriorityFactors)
		})
	}
}

func TestBuildTargetingSpec_RejectsBadCapacity(t *testing.T) {
	ts := &TargetingService{}

	req := validRequest(models.GatheringTypeCoffee)
	req.Capacity = models.Capacity{Min: 10, Max: 4}
	_, err := ts.BuildTargetingSpec(req, nil)
	assert.ErrorIs(t, err, models.ErrValidation)

	req.Capacity = models.Capacity{Min: 0, Max: 4}
	_, err = ts.BuildTargetingSpec(req, nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestBuildTargetingSpec_EmptyDescriptionDegrades(t *testing.T) {
	ts := &TargetingService{}

	req := validRequest(models.GatheringTypeCoffee)
	req.Title = "Morning meetup"
	req.Description = ""

	spec, err := ts.BuildTargetingSpec(req, nil)
	require.NoError(t, err)
	assert.Empty(t, spec.Skills)
	assert.Empty(t, spec.Interests)
	assert.Equal(t, 1.0, spec.ScoringWeights[models.FactorSkills])
	assert.Equal(t, 1.0, spec.ScoringWeights[models.FactorInterests])
}

func TestBuildTargetingSpec_KeywordExtractionRaisesWeights(t *testing.T) {
	ts := &TargetingService{}

	req := validRequest(models.GatheringTypeDemo)
	req.Title = "Kubernetes in production"
	req.Description = "Walkthrough of our golang services on k8s, plus some machine learning and open source talk"

	spec, err := ts.BuildTargetingSpec(req, nil)
	require.NoError(t, err)

	assert.Contains(t, spec.Skills, "kubernetes")
	assert.Contains(t, spec.Skills, "go")
	assert.Contains(t, spec.Skills, "ml")
	assert.Contains(t, spec.Interests, "open source")

	assert.Equal(t, 2.0, spec.ScoringWeights[models.FactorSkills])
	assert.Equal(t, 2.0, spec.ScoringWeights[models.FactorInterests])
	assert.Equal(t, 1.0, spec.ScoringWeights[models.FactorProfile])
}

func TestBuildTargetingSpec_DiscussionTargetsSeniorExperience(t *testing.T) {
	ts := &TargetingService{}

	spec, err := ts.BuildTargetingSpec(validRequest(models.GatheringTypeDiscussion), nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{models.ExperienceSenior, models.ExperienceExecutive}, spec.ExperienceLevels)
	assert.Equal(t, 1.5, spec.ScoringWeights[models.FactorExperience])
}

func TestBuildTargetingSpec_CreatorContext(t *testing.T) {
	ts := &TargetingService{}

	creator := &models.AttendeeProfile{
		UserID:      "creator-1",
		CompanySize: "11-50",
		Industry:    "fintech",
		Interests:   []string{"payments", "hiring"},
		Goals:       []string{"find partners"},
	}

	spec, err := ts.BuildTargetingSpec(validRequest(models.GatheringTypeNetworking), creator)
	require.NoError(t, err)
	require.NotNil(t, spec.CreatorContext)
	assert.Equal(t, "11-50", spec.CreatorContext.CompanySize)
	assert.Equal(t, "fintech", spec.CreatorContext.Industry)
	assert.Equal(t, []string{"payments", "hiring"}, spec.CreatorContext.Interests)

	// No creator profile: no context, never an error
	spec, err = ts.BuildTargetingSpec(validRequest(models.GatheringTypeNetworking), nil)
	require.NoError(t, err)
	assert.Nil(t, spec.CreatorContext)
}
