package model

import "time"

// AlertLevel grades a TrendAlert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "info"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// TrendAlert is an alert-worthy anomaly derived deterministically from one
// or more correlations crossing a magnitude or tier threshold.
type TrendAlert struct {
	Level       AlertLevel `json:"level"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Condition   string     `json:"condition,omitempty"`
}

// TrendAnalysisResult is the persisted unit of one analysis. It is created
// once by the analyze operation, owned by the requesting account, and
// immutable afterward. RankedFindings are sorted by OverallScore descending.
type TrendAnalysisResult struct {
	AnalysisID          string                `json:"analysisId"`
	Region              ResolvedRegion        `json:"region"`
	RegionLabel         string                `json:"regionLabel"`
	RankedFindings      []ClinicalCorrelation `json:"rankedFindings"`
	Alerts              []TrendAlert          `json:"alerts"`
	Summary             string                `json:"summary"`
	DataSourcesQueried  []string              `json:"dataSourcesQueried"`
	DataSourceErrors    []AdapterError        `json:"dataSourceErrors"`
	DataSourceSummaries map[string]string     `json:"dataSourceSummaries,omitempty"`
	AnalyzedAt          time.Time             `json:"analyzedAt"`
}
