package model

// Tier is the ordinal bucket summarizing a correlation's overall score.
type Tier string

const (
	TierBackground Tier = "background"
	TierLow        Tier = "low"
	TierModerate   Tier = "moderate"
	TierHigh       Tier = "high"
	TierCritical   Tier = "critical"
)

// Rank returns the ordinal position of the tier, background lowest.
func (t Tier) Rank() int {
	switch t {
	case TierCritical:
		return 4
	case TierHigh:
		return 3
	case TierModerate:
		return 2
	case TierLow:
		return 1
	default:
		return 0
	}
}

// ScoreComponents holds the five independent sub-scores that sum to a
// correlation's overall score.
type ScoreComponents struct {
	SymptomMatch         float64 `json:"symptomMatch"`
	DifferentialMatch    float64 `json:"differentialMatch"`
	EpidemiologicSignal  float64 `json:"epidemiologicSignal"`
	SeasonalPlausibility float64 `json:"seasonalPlausibility"`
	GeographicRelevance  float64 `json:"geographicRelevance"`
}

// Total returns the sum of all components.
func (c ScoreComponents) Total() float64 {
	return c.SymptomMatch + c.DifferentialMatch + c.EpidemiologicSignal +
		c.SeasonalPlausibility + c.GeographicRelevance
}

// ClinicalCorrelation is one candidate condition's surveillance relevance.
// DataPoints may be empty: a condition that appears only in the caller's
// differential is still reported so that the absence of regional signal can
// be asserted.
type ClinicalCorrelation struct {
	Condition      string                  `json:"condition"`
	Syndromes      []Syndrome              `json:"syndromes"`
	OverallScore   float64                 `json:"overallScore"`
	Tier           Tier                    `json:"tier"`
	Components     ScoreComponents         `json:"components"`
	TrendDirection Trend                   `json:"trendDirection,omitempty"`
	TrendMagnitude *float64                `json:"trendMagnitude,omitempty"`
	DataPoints     []SurveillanceDataPoint `json:"dataPoints"`
	Summary        string                  `json:"summary"`
}
