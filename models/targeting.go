package models

// CreatorContext carries organizer traits used by the compatibility factor
type CreatorContext struct {
	CompanySize string   `json:"companySize" dynamodbav:"companySize"`
	Industry    string   `json:"industry" dynamodbav:"industry"`
	Interests   []string `json:"interests" dynamodbav:"interests"`
	Goals       []string `json:"goals" dynamodbav:"goals"`
}

// TargetingSpec is the compiled matching criteria for a gathering
type TargetingSpec struct {
	Profiles            []string           `json:"profiles" dynamodbav:"profiles"`
	Skills              []string           `json:"skills" dynamodbav:"skills"`
	Interests           []string           `json:"interests" dynamodbav:"interests"`
	ExperienceLevels    []string           `json:"experienceLevels" dynamodbav:"experienceLevels"`
	CompanyTypes        []string           `json:"companyTypes" dynamodbav:"companyTypes"`
	AutoAcceptThreshold int                `json:"autoAcceptThreshold" dynamodbav:"autoAcceptThreshold"`
	MaxInvites          int                `json:"maxInvites" dynamodbav:"maxInvites"`
	PriorityFactors     []string           `json:"priorityFactors" dynamodbav:"priorityFactors"`
	ScoringWeights      map[string]float64 `json:"scoringWeights" dynamodbav:"scoringWeights"`
	CreatorContext      *CreatorContext    `json:"creatorContext,omitempty" dynamodbav:"creatorContext,omitempty"`
}
