package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/episcope/internal/model"
)

func correlation(condition string, tier model.Tier, trend model.Trend, magnitude float64, withPoints bool) model.ClinicalCorrelation {
	c := model.ClinicalCorrelation{
		Condition:      condition,
		Tier:           tier,
		TrendDirection: trend,
	}
	if trend != "" {
		c.TrendMagnitude = &magnitude
	}
	if withPoints {
		c.DataPoints = []model.SurveillanceDataPoint{{Condition: condition}}
	}
	return c
}

func TestDetectAlerts_WarningOnLargeRise(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	alerts := e.DetectAlerts([]model.ClinicalCorrelation{
		correlation("RSV", model.TierHigh, model.TrendRising, 33.3, true),
	})

	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertWarning, alerts[0].Level)
	assert.Equal(t, "RSV", alerts[0].Condition)
	assert.Contains(t, alerts[0].Title, "Rising RSV activity")
}

func TestDetectAlerts_CriticalSupersedesWarning(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	alerts := e.DetectAlerts([]model.ClinicalCorrelation{
		correlation("Influenza", model.TierCritical, model.TrendRising, 120, true),
	})

	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertCritical, alerts[0].Level)
}

func TestDetectAlerts_NoAlertBelowThreshold(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	alerts := e.DetectAlerts([]model.ClinicalCorrelation{
		correlation("RSV", model.TierModerate, model.TrendRising, 15, true),
		correlation("COVID-19", model.TierLow, model.TrendFalling, -40, true),
	})

	assert.Empty(t, alerts)
}

func TestDetectAlerts_CoCirculatingInfo(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	alerts := e.DetectAlerts([]model.ClinicalCorrelation{
		correlation("RSV", model.TierHigh, "", 0, true),
		correlation("Influenza", model.TierModerate, "", 0, true),
		correlation("COVID-19", model.TierModerate, "", 0, true),
	})

	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertInfo, alerts[0].Level)
	assert.Contains(t, alerts[0].Description, "RSV")
	assert.Contains(t, alerts[0].Description, "Influenza")
}

func TestDetectAlerts_AbsenceFindingsDoNotCoCirculate(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	// Moderate tier but no data points: differential-only findings must not
	// count as active co-circulation.
	alerts := e.DetectAlerts([]model.ClinicalCorrelation{
		correlation("A", model.TierModerate, "", 0, false),
		correlation("B", model.TierModerate, "", 0, false),
		correlation("C", model.TierModerate, "", 0, false),
	})

	assert.Empty(t, alerts)
}

func TestDetectAlerts_NoDuplicateConditionLevelPairs(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	alerts := e.DetectAlerts([]model.ClinicalCorrelation{
		correlation("RSV", model.TierHigh, model.TrendRising, 45, true),
		correlation("rsv", model.TierHigh, model.TrendRising, 40, true),
	})

	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertWarning, alerts[0].Level)
}
