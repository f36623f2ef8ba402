package adapter

import (
	"sort"

	"github.com/sells-group/episcope/internal/model"
)

// collapseSeries groups raw data points by condition, orders each group by
// period, and returns one point per condition: the newest observation with
// trend fields derived from the two most recent periods. A single-period
// series keeps empty trend fields.
func collapseSeries(points []model.SurveillanceDataPoint) []model.SurveillanceDataPoint {
	byCondition := make(map[string][]model.SurveillanceDataPoint)
	var order []string
	for _, p := range points {
		if _, seen := byCondition[p.Condition]; !seen {
			order = append(order, p.Condition)
		}
		byCondition[p.Condition] = append(byCondition[p.Condition], p)
	}

	out := make([]model.SurveillanceDataPoint, 0, len(order))
	for _, condition := range order {
		series := byCondition[condition]
		sort.Slice(series, func(i, j int) bool {
			return series[i].PeriodEnd.Before(series[j].PeriodEnd)
		})

		newest := series[len(series)-1]
		if len(series) >= 2 {
			previous := series[len(series)-2]
			newest.Trend, newest.TrendMagnitude = ComputeTrend(previous.Value, newest.Value)
		}
		out = append(out, newest)
	}
	return out
}
