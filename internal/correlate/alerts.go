package correlate

import (
	"fmt"
	"strings"

	"github.com/sells-group/episcope/internal/model"
)

// DetectAlerts derives alerts from scored correlations:
//
//   - critical for rising trends at outbreak-level magnitude,
//   - warning for rising trends above the warning magnitude,
//   - info when several moderate-or-higher conditions co-circulate,
//     flagging diagnostic broadening rather than a single acute signal.
//
// A condition never produces duplicate alerts for the same level, and a
// critical signal supersedes its own warning.
func (e *Engine) DetectAlerts(correlations []model.ClinicalCorrelation) []model.TrendAlert {
	var alerts []model.TrendAlert
	emitted := make(map[string]bool) // condition|level

	emit := func(a model.TrendAlert) {
		key := strings.ToLower(a.Condition) + "|" + string(a.Level)
		if emitted[key] {
			return
		}
		emitted[key] = true
		alerts = append(alerts, a)
	}

	var active []string
	for _, c := range correlations {
		if c.Tier.Rank() >= model.TierModerate.Rank() && len(c.DataPoints) > 0 {
			active = append(active, c.Condition)
		}

		if c.TrendDirection != model.TrendRising || c.TrendMagnitude == nil {
			continue
		}
		magnitude := *c.TrendMagnitude

		switch {
		case magnitude >= e.thresholds.CriticalMagnitude:
			emit(model.TrendAlert{
				Level:     model.AlertCritical,
				Title:     fmt.Sprintf("Outbreak-level %s surge", c.Condition),
				Description: fmt.Sprintf(
					"%s activity has risen ~%.0f%% over the last reporting period, exceeding the outbreak threshold of %.0f%%.",
					c.Condition, magnitude, e.thresholds.CriticalMagnitude,
				),
				Condition: c.Condition,
			})
		case magnitude >= e.thresholds.WarningMagnitude:
			emit(model.TrendAlert{
				Level: model.AlertWarning,
				Title: fmt.Sprintf("Rising %s activity", c.Condition),
				Description: fmt.Sprintf(
					"%s activity has risen ~%.0f%% over the last reporting period in this region.",
					c.Condition, magnitude,
				),
				Condition: c.Condition,
			})
		}
	}

	if len(active) >= e.thresholds.CoCirculatingMin {
		emit(model.TrendAlert{
			Level: model.AlertInfo,
			Title: "Multiple conditions co-circulating",
			Description: fmt.Sprintf(
				"%d conditions show moderate or higher regional activity (%s); consider a broadened differential.",
				len(active), strings.Join(active, ", "),
			),
		})
	}

	return alerts
}
