package services

import (
	"fmt"
	"strings"

	"mingle_server/models"
)

// TargetingService compiles a gathering request into a TargetingSpec
type TargetingService struct{}

// Per-type base templates. The networking template doubles as the default.
type targetingTemplate struct {
	profiles            []string
	autoAcceptThreshold int
	maxInvites          int
	priorityFactors     []string
	experienceLevels    []string
}

var targetingTemplates = map[string]targetingTemplate{
	models.GatheringTypeCoffee: {
		profiles:            []string{models.ProfileWildcard},
		autoAcceptThreshold: 75,
		maxInvites:          10,
		priorityFactors:     []string{"availability", "proximity", "interests"},
	},
	models.GatheringTypeDemo: {
		profiles:            []string{"engineer", "developer", "architect", "data scientist", "cto"},
		autoAcceptThreshold: 80,
		maxInvites:          15,
		priorityFactors:     []string{"technical_match"},
	},
	models.GatheringTypeDiscussion: {
		profiles:            []string{"senior", "lead", "principal", "director", "head", "founder"},
		autoAcceptThreshold: 70,
		maxInvites:          15,
		priorityFactors:     []string{"experience", "interests"},
		experienceLevels:    []string{models.ExperienceSenior, models.ExperienceExecutive},
	},
	models.GatheringTypeNetworking: {
		profiles:            []string{models.ProfileWildcard},
		autoAcceptThreshold: 65,
		maxInvites:          15,
		priorityFactors:     []string{"compatibility"},
	},
}

// Fixed keyword dictionaries for free-text extraction. Keys are the
// canonical term appended to the spec; values are the variants matched
// against the lowercased title and description.
var skillKeywords = map[string][]string{
	"go":         {"golang", " go "},
	"python":     {"python"},
	"javascript": {"javascript", "typescript", "node.js", "nodejs"},
	"react":      {"react"},
	"kubernetes": {"kubernetes", "k8s"},
	"aws":        {"aws", "cloud infra"},
	"ml":         {"machine learning", " ml ", "deep learning", "llm"},
	"data":       {"data pipeline", "analytics", "data engineering"},
	"security":   {"security", "infosec", "appsec"},
	"mobile":     {"mobile", "ios", "android"},
	"devops":     {"devops", "sre", "observability"},
	"design":     {"design", " ux ", " ui "},
	"product":    {"product management", "roadmap"},
	"blockchain": {"blockchain", "web3", "crypto"},
}

var interestKeywords = map[string][]string{
	"startups":    {"startup", "founder"},
	"ai":          {" ai ", "artificial intelligence", "llm", "agents"},
	"open source": {"open source", "oss"},
	"fintech":     {"fintech", "payments"},
	"gaming":      {"gaming", "game dev"},
	"climate":     {"climate", "sustainability"},
	"hiring":      {"hiring", "recruiting"},
	"investing":   {"investing", "fundraising", "venture"},
	"mentorship":  {"mentorship", "mentoring", "career advice"},
	"hardware":    {"hardware", "robotics", "iot"},
}

// BuildTargetingSpec compiles the request and the creator's profile into a
// TargetingSpec. An empty description degrades to type-only targeting.
func (ts *TargetingService) BuildTargetingSpec(req models.GatheringRequest, creator *models.AttendeeProfile) (models.TargetingSpec, error) {
	if req.Capacity.Min < 1 || req.Capacity.Min > req.Capacity.Max {
		return models.TargetingSpec{}, fmt.Errorf("%w: capacity min %d / max %d", models.ErrValidation, req.Capacity.Min, req.Capacity.Max)
	}

	tmpl, ok := targetingTemplates[req.Type]
	if !ok {
		tmpl = targetingTemplates[models.GatheringTypeNetworking]
	}

	text := " " + strings.ToLower(req.Title+" "+req.Description) + " "
	spec := models.TargetingSpec{
		Profiles:            append([]string(nil), tmpl.profiles...),
		Skills:              extractKeywords(text, skillKeywords),
		Interests:           extractKeywords(text, interestKeywords),
		ExperienceLevels:    append([]string(nil), tmpl.experienceLevels...),
		AutoAcceptThreshold: tmpl.autoAcceptThreshold,
		MaxInvites:          tmpl.maxInvites,
		PriorityFactors:     append([]string(nil), tmpl.priorityFactors...),
		ScoringWeights:      defaultWeights(),
	}

	if len(spec.Skills) > 0 {
		spec.ScoringWeights[models.FactorSkills] = 2
	}
	if len(spec.Interests) > 0 {
		spec.ScoringWeights[models.FactorInterests] = 2
	}
	if len(spec.ExperienceLevels) > 0 {
		spec.ScoringWeights[models.FactorExperience] = 1.5
	}

	if creator != nil {
		spec.CreatorContext = &models.CreatorContext{
			CompanySize: creator.CompanySize,
			Industry:    creator.Industry,
			Interests:   append([]string(nil), creator.Interests...),
			Goals:       append([]string(nil), creator.Goals...),
		}
	}

	return spec, nil
}

func defaultWeights() map[string]float64 {
	return map[string]float64{
		models.FactorProfile:       1,
		models.FactorSkills:        1,
		models.FactorInterests:     1,
		models.FactorExperience:    1,
		models.FactorAvailability:  1,
		models.FactorCompatibility: 1,
	}
}

func extractKeywords(text string, dictionary map[string][]string) []string {
	var found []string
	for canonical, variants := range dictionary {
		for _, variant := range variants {
			if strings.Contains(text, variant) {
				found = append(found, canonical)
				break
			}
		}
	}
	return found
}
