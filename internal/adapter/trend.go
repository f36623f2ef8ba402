package adapter

import (
	"math"

	"github.com/sells-group/episcope/internal/model"
)

// Trend classification thresholds on the newest:previous ratio. A ratio at
// or above risingThreshold classifies as rising, at or below
// fallingThreshold as falling, otherwise stable. Confirmed against the
// product's historical test fixtures (a 60 -> 80 series, +33%, is rising).
const (
	risingThreshold  = 1.10
	fallingThreshold = 0.90
)

// ComputeTrend classifies the change from previous to newest and returns
// the signed percent magnitude. A zero or negative previous value cannot
// produce a meaningful ratio and classifies as stable with no magnitude.
func ComputeTrend(previous, newest float64) (model.Trend, *float64) {
	if previous <= 0 {
		return model.TrendStable, nil
	}

	ratio := newest / previous
	magnitude := math.Round((ratio - 1) * 1000) / 10 // percent, one decimal

	switch {
	case ratio >= risingThreshold:
		return model.TrendRising, &magnitude
	case ratio <= fallingThreshold:
		return model.TrendFalling, &magnitude
	default:
		return model.TrendStable, &magnitude
	}
}
