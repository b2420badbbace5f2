package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"mingle_server/models"
)

// Per-factor point caps. Overall scores normalize each factor against its
// cap before applying the spec weights, so a perfect candidate lands at 100.
const (
	profileCap       = 20.0
	skillsCap        = 20.0
	interestsCap     = 20.0
	experienceCap    = 15.0
	availabilityCap  = 15.0
	compatibilityCap = 10.0

	// Candidates at or under this overall score never get invited
	scoreCutoff = 40
)

// ScoringService scores candidates against a targeting spec. Scoring is
// pure apart from the injected availability signal.
type ScoringService struct {
	Availability AvailabilityProvider
}

// ScoreCandidate evaluates one candidate against one targeting spec
func (ss *ScoringService) ScoreCandidate(profile *models.AttendeeProfile, spec models.TargetingSpec, timing models.Timing) models.CandidateScore {
	var reasons []string
	breakdown := models.ScoreBreakdown{}

	// profile: 0 or 20
	wildcard := len(spec.Profiles) == 0 || containsFold(spec.Profiles, models.ProfileWildcard)
	titleHit := matchesTitle(profile.Title, spec.Profiles)
	if wildcard || titleHit {
		breakdown.Profile = profileCap
	}
	if titleHit {
		reasons = append(reasons, "Your role is exactly who the organizer wants to meet")
	}

	// skills: ratio of matched target skills, neutral 10 when untargeted
	if len(spec.Skills) == 0 {
		breakdown.Skills = skillsCap / 2
	} else {
		matched := overlap(profile.Skills, spec.Skills)
		ratio := float64(len(matched)) / float64(len(spec.Skills))
		breakdown.Skills = ratio * skillsCap
		if ratio > 0.5 {
			reasons = append(reasons, fmt.Sprintf("Strong skill match: %s", strings.Join(matched, ", ")))
		}
	}

	// interests: same ratio logic as skills
	if len(spec.Interests) == 0 {
		breakdown.Interests = interestsCap / 2
	} else {
		matched := overlap(profile.Interests, spec.Interests)
		ratio := float64(len(matched)) / float64(len(spec.Interests))
		breakdown.Interests = ratio * interestsCap
		if ratio > 0.5 {
			reasons = append(reasons, fmt.Sprintf("Shared interests: %s", strings.Join(matched, ", ")))
		}
	}

	// experience: 0 or 15
	bucket := ExperienceBucket(profile)
	openLevels := len(spec.ExperienceLevels) == 0 || containsFold(spec.ExperienceLevels, models.ExperienceSimilar)
	levelHit := containsFold(spec.ExperienceLevels, bucket)
	if openLevels || levelHit {
		breakdown.Experience = experienceCap
	}
	if levelHit {
		reasons = append(reasons, "Your experience level fits this group")
	}

	// availability: external signal scaled into the band
	duration := time.Duration(timing.DurationMinutes) * time.Minute
	breakdown.Availability = ss.Availability.AvailabilitySignal(profile, timing.PreferredTime, duration) * availabilityCap

	// compatibility: only evaluated when the organizer context is known
	hasContext := spec.CreatorContext != nil
	if hasContext {
		breakdown.Compatibility = compatibilityScore(profile, spec.CreatorContext)
		if breakdown.Compatibility > 5 {
			reasons = append(reasons, "You and the organizer have a lot in common")
		}
	}

	overall := weightedOverall(breakdown, spec.ScoringWeights, hasContext)

	return models.CandidateScore{
		Overall:   overall,
		Breakdown: breakdown,
		Reasons:   reasons,
	}
}

// RankCandidates scores the pool, drops everyone at or under the cutoff,
// sorts descending and truncates to the spec's invite budget.
func (ss *ScoringService) RankCandidates(candidates []models.AttendeeProfile, spec models.TargetingSpec, timing models.Timing) []models.RankedCandidate {
	var ranked []models.RankedCandidate
	for i := range candidates {
		score := ss.ScoreCandidate(&candidates[i], spec, timing)
		if score.Overall <= scoreCutoff {
			continue
		}
		ranked = append(ranked, models.RankedCandidate{Profile: candidates[i], Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Overall > ranked[j].Score.Overall
	})

	if spec.MaxInvites > 0 && len(ranked) > spec.MaxInvites {
		ranked = ranked[:spec.MaxInvites]
	}
	return ranked
}

// ExperienceBucket maps a profile onto Junior/Mid/Senior/Executive
func ExperienceBucket(profile *models.AttendeeProfile) string {
	title := strings.ToLower(profile.Title)
	for _, marker := range []string{"ceo", "cto", "coo", "chief", "founder", "vp", "president", "director"} {
		if strings.Contains(title, marker) {
			return models.ExperienceExecutive
		}
	}
	switch {
	case profile.ExperienceYears > 7:
		return models.ExperienceSenior
	case profile.ExperienceYears >= 3:
		return models.ExperienceMid
	default:
		return models.ExperienceJunior
	}
}

func compatibilityScore(profile *models.AttendeeProfile, ctx *models.CreatorContext) float64 {
	score := 0.0
	if ctx.CompanySize != "" && strings.EqualFold(profile.CompanySize, ctx.CompanySize) {
		score += 2.5
	}
	if ctx.Industry != "" && strings.EqualFold(profile.Industry, ctx.Industry) {
		score += 2.5
	}
	if len(ctx.Interests) > 0 {
		shared := overlap(profile.Interests, ctx.Interests)
		score += float64(len(shared)) / float64(len(ctx.Interests)) * 2.5
	}
	if len(ctx.Goals) > 0 {
		shared := overlap(profile.Goals, ctx.Goals)
		score += float64(len(shared)) / float64(len(ctx.Goals)) * 2.5
	}
	if score > compatibilityCap {
		score = compatibilityCap
	}
	return score
}

// weightedOverall combines the normalized factors as a weighted mean.
// The compatibility factor only participates when organizer context exists,
// so its absence never drags the mean down.
func weightedOverall(b models.ScoreBreakdown, weights map[string]float64, withCompatibility bool) int {
	type factor struct {
		name   string
		points float64
		cap    float64
	}
	factors := []factor{
		{models.FactorProfile, b.Profile, profileCap},
		{models.FactorSkills, b.Skills, skillsCap},
		{models.FactorInterests, b.Interests, interestsCap},
		{models.FactorExperience, b.Experience, experienceCap},
		{models.FactorAvailability, b.Availability, availabilityCap},
	}
	if withCompatibility {
		factors = append(factors, factor{models.FactorCompatibility, b.Compatibility, compatibilityCap})
	}

	var weightedSum, weightSum float64
	for _, f := range factors {
		w := 1.0
		if weights != nil {
			if v, ok := weights[f.name]; ok && v >= 0 {
				w = v
			}
		}
		weightedSum += (f.points / f.cap) * 100 * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}

	overall := int(math.Round(weightedSum / weightSum))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}
	return overall
}

func matchesTitle(title string, profiles []string) bool {
	lower := strings.ToLower(title)
	for _, p := range profiles {
		if p == models.ProfileWildcard {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func containsFold(list []string, target string) bool {
	for _, v := range list {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

// overlap returns the values present in both lists, preserving target order
func overlap(have, want []string) []string {
	var shared []string
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				shared = append(shared, w)
				break
			}
		}
	}
	return shared
}
