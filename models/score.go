package models

// ScoreBreakdown holds the capped per-factor points behind an overall score
type ScoreBreakdown struct {
	Profile       float64 `json:"profile" dynamodbav:"profile"`
	Skills        float64 `json:"skills" dynamodbav:"skills"`
	Interests     float64 `json:"interests" dynamodbav:"interests"`
	Experience    float64 `json:"experience" dynamodbav:"experience"`
	Availability  float64 `json:"availability" dynamodbav:"availability"`
	Compatibility float64 `json:"compatibility" dynamodbav:"compatibility"`
}

// CandidateScore is the explainable result of scoring one candidate
// against one targeting spec
type CandidateScore struct {
	Overall   int            `json:"overall" dynamodbav:"overall"`
	Breakdown ScoreBreakdown `json:"breakdown" dynamodbav:"breakdown"`
	Reasons   []string       `json:"reasons" dynamodbav:"reasons"`
}

// RankedCandidate pairs a candidate profile with its score
type RankedCandidate struct {
	Profile AttendeeProfile `json:"profile"`
	Score   CandidateScore  `json:"score"`
}
