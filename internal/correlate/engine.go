package correlate

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sells-group/episcope/internal/model"
	"github.com/sells-group/episcope/internal/syndrome"
)

// Context carries the per-request inputs the scoring functions need beyond
// the differential and pooled data points.
type Context struct {
	ChiefComplaint     string
	ComplaintSyndromes []model.Syndrome
	Region             model.ResolvedRegion
	Now                time.Time
}

// Engine computes correlations and alerts. Both operations are pure over
// their inputs; the engine holds only the tuned thresholds.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an Engine with the given thresholds.
func NewEngine(t Thresholds) *Engine {
	return &Engine{thresholds: t}
}

// ComputeCorrelations scores every condition that appears either in the
// differential or among the pooled data points. Conditions with no matching
// data points still appear so that "not currently active regionally" is an
// assertable finding. Output is sorted by overall score descending; ties
// keep stable input order.
func (e *Engine) ComputeCorrelations(differential []string, points []model.SurveillanceDataPoint, ctx Context) []model.ClinicalCorrelation {
	conditions := conditionUniverse(differential, points)

	out := make([]model.ClinicalCorrelation, 0, len(conditions))
	for _, condition := range conditions {
		matched := matchingPoints(condition, points)

		syndromes := unionSyndromes(matched)
		if len(syndromes) == 0 {
			syndromes = syndrome.ConditionSyndromes(condition)
		}

		components := model.ScoreComponents{
			SymptomMatch:         scoreSymptomMatch(syndromes, ctx.ComplaintSyndromes),
			DifferentialMatch:    scoreDifferentialMatch(condition, differential),
			EpidemiologicSignal:  scoreEpidemiologicSignal(matched),
			SeasonalPlausibility: scoreSeasonalPlausibility(condition, ctx.Now),
			GeographicRelevance:  scoreGeographicRelevance(matched),
		}

		trend, magnitude := dominantTrend(matched)

		c := model.ClinicalCorrelation{
			Condition:      condition,
			Syndromes:      syndromes,
			OverallScore:   components.Total(),
			Components:     components,
			TrendDirection: trend,
			TrendMagnitude: magnitude,
			DataPoints:     matched,
		}
		c.Tier = e.tierFor(c.OverallScore)
		c.Summary = buildSummary(c)
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	return out
}

// tierFor buckets an overall score into its tier.
func (e *Engine) tierFor(score float64) model.Tier {
	switch {
	case score >= e.thresholds.TierCritical:
		return model.TierCritical
	case score >= e.thresholds.TierHigh:
		return model.TierHigh
	case score >= e.thresholds.TierModerate:
		return model.TierModerate
	case score >= e.thresholds.TierLow:
		return model.TierLow
	default:
		return model.TierBackground
	}
}

// conditionUniverse returns the distinct conditions across the differential
// and the data points, differential order first, then first-seen data point
// order. Matching is case-insensitive; the differential spelling wins.
func conditionUniverse(differential []string, points []model.SurveillanceDataPoint) []string {
	var out []string
	seen := make(map[string]bool)

	for _, d := range differential {
		name := strings.TrimSpace(d)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			out = append(out, name)
		}
	}
	for _, p := range points {
		key := strings.ToLower(p.Condition)
		if !seen[key] {
			seen[key] = true
			out = append(out, p.Condition)
		}
	}
	return out
}

func matchingPoints(condition string, points []model.SurveillanceDataPoint) []model.SurveillanceDataPoint {
	var out []model.SurveillanceDataPoint
	for _, p := range points {
		if strings.EqualFold(p.Condition, condition) {
			out = append(out, p)
		}
	}
	return out
}

func unionSyndromes(points []model.SurveillanceDataPoint) []model.Syndrome {
	var out []model.Syndrome
	seen := make(map[model.Syndrome]bool)
	for _, p := range points {
		for _, s := range p.Syndromes {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// scoreSymptomMatch grades the overlap between the condition's syndromes and
// the syndromes derived from the chief complaint.
func scoreSymptomMatch(condSyndromes, complaintSyndromes []model.Syndrome) float64 {
	if len(condSyndromes) == 0 || len(complaintSyndromes) == 0 {
		return 0
	}
	matched := 0
	for _, cs := range condSyndromes {
		for _, ps := range complaintSyndromes {
			if cs == ps {
				matched++
				break
			}
		}
	}
	return round1(maxSymptomScore * float64(matched) / float64(len(condSyndromes)))
}

// scoreDifferentialMatch rewards presence in the differential, higher for
// earlier (more suspected) positions.
func scoreDifferentialMatch(condition string, differential []string) float64 {
	for i, d := range differential {
		if strings.EqualFold(strings.TrimSpace(d), condition) {
			score := maxDifferentialScore - 3*float64(i)
			if score < 10 {
				score = 10
			}
			return score
		}
	}
	return 0
}

// scoreEpidemiologicSignal grades the strength of the regional signal:
// presence of any observation, signal intensity, and a rising-trend bonus.
func scoreEpidemiologicSignal(points []model.SurveillanceDataPoint) float64 {
	if len(points) == 0 {
		return 0
	}

	score := 10.0 // any observed signal at all

	var maxValue, risingMagnitude float64
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
		if p.Trend == model.TrendRising && p.TrendMagnitude != nil && *p.TrendMagnitude > risingMagnitude {
			risingMagnitude = *p.TrendMagnitude
		}
	}

	// Intensity: values are normalized percent-like magnitudes; anything at
	// or above 100 saturates.
	score += math.Min(maxValue, 100) / 100 * 8

	// Rising bonus saturates at a 50% increase.
	score += math.Min(risingMagnitude, 50) / 50 * 12

	return round1(math.Min(score, maxEpidemiologicScore))
}

// seasonalityTable maps condition keywords to the months (1-12) in which the
// condition is seasonally plausible.
var seasonalityTable = []struct {
	keyword string
	months  []time.Month
}{
	{"influenza", winterMonths}, {"flu", winterMonths}, {"rsv", winterMonths},
	{"covid", allMonths}, {"norovirus", winterMonths},
	{"gastroenteritis", allMonths},
	{"west nile", summerMonths}, {"enterovirus", summerMonths},
	{"hand, foot", summerMonths}, {"lyme", summerMonths},
}

var (
	winterMonths = []time.Month{time.November, time.December, time.January, time.February, time.March}
	summerMonths = []time.Month{time.June, time.July, time.August, time.September}
	allMonths    = []time.Month{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
)

// scoreSeasonalPlausibility grades calendar fit: full marks in season, a
// token score off season, and a neutral midpoint for conditions without a
// known seasonality.
func scoreSeasonalPlausibility(condition string, now time.Time) float64 {
	lower := strings.ToLower(condition)
	for _, entry := range seasonalityTable {
		if !strings.Contains(lower, entry.keyword) {
			continue
		}
		for _, m := range entry.months {
			if now.Month() == m {
				return maxSeasonalScore
			}
		}
		return 2
	}
	return maxSeasonalScore / 2
}

// scoreGeographicRelevance grades how specific the matched observations are
// to the caller's location.
func scoreGeographicRelevance(points []model.SurveillanceDataPoint) float64 {
	best := 0.0
	for _, p := range points {
		var s float64
		switch p.GeoLevel {
		case model.GeoLevelCounty:
			s = maxGeographicScore
		case model.GeoLevelState:
			s = 7
		case model.GeoLevelHHSRegion:
			s = 4
		}
		if s > best {
			best = s
		}
	}
	return best
}

// dominantTrend picks the trend of the strongest-moving matched point.
func dominantTrend(points []model.SurveillanceDataPoint) (model.Trend, *float64) {
	var trend model.Trend
	var magnitude *float64
	for _, p := range points {
		if p.Trend == "" {
			continue
		}
		if magnitude == nil || (p.TrendMagnitude != nil && math.Abs(*p.TrendMagnitude) > math.Abs(*magnitude)) {
			trend = p.Trend
			magnitude = p.TrendMagnitude
		}
	}
	return trend, magnitude
}

// buildSummary renders the short deterministic sentence for a finding.
func buildSummary(c model.ClinicalCorrelation) string {
	if len(c.DataPoints) == 0 {
		return fmt.Sprintf("%s shows no significant regional surveillance activity.", c.Condition)
	}
	switch c.TrendDirection {
	case model.TrendRising:
		if c.TrendMagnitude != nil {
			return fmt.Sprintf("%s is trending upward (~%.0f%% increase) in the region.", c.Condition, *c.TrendMagnitude)
		}
		return fmt.Sprintf("%s is trending upward in the region.", c.Condition)
	case model.TrendFalling:
		if c.TrendMagnitude != nil {
			return fmt.Sprintf("%s is trending downward (~%.0f%% decrease) in the region.", c.Condition, math.Abs(*c.TrendMagnitude))
		}
		return fmt.Sprintf("%s is trending downward in the region.", c.Condition)
	default:
		return fmt.Sprintf("%s shows stable activity in the region.", c.Condition)
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
