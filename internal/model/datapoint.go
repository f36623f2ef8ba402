package model

import "time"

// Trend labels the direction of change between the two most recent periods
// of a condition's surveillance series.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// SurveillanceDataPoint is one normalized observation from a surveillance
// source. Provider-specific fields never leak past the adapter boundary;
// every source maps into this shape at the edge.
//
// Trend and TrendMagnitude are derived, not raw: they require at least two
// same-condition observations ordered by period. With a single period the
// trend fields are left empty.
type SurveillanceDataPoint struct {
	Source         string     `json:"source"`
	Condition      string     `json:"condition"`
	Syndromes      []Syndrome `json:"syndromes"`
	Region         string     `json:"region"`
	GeoLevel       GeoLevel   `json:"geoLevel"`
	PeriodStart    time.Time  `json:"periodStart"`
	PeriodEnd      time.Time  `json:"periodEnd"`
	Value          float64    `json:"value"`
	Unit           string     `json:"unit"`
	Trend          Trend      `json:"trend,omitempty"`
	TrendMagnitude *float64   `json:"trendMagnitude,omitempty"` // percent change, signed
}

// AdapterError records one source's failure during fan-out. It is folded
// into TrendAnalysisResult.DataSourceErrors and never persisted standalone.
type AdapterError struct {
	Source    string    `json:"source"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
