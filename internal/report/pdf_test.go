package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/episcope/internal/model"
)

func reportAnalysis() *model.TrendAnalysisResult {
	mag := 33.3
	return &model.TrendAnalysisResult{
		AnalysisID:  "3a7e9c10-aaaa-bbbb-cccc-0123456789ab",
		RegionLabel: "Travis County, TX (HHS Region 6)",
		RankedFindings: []model.ClinicalCorrelation{
			{
				Condition:      "RSV",
				OverallScore:   62.5,
				Tier:           model.TierHigh,
				TrendDirection: model.TrendRising,
				TrendMagnitude: &mag,
				Summary:        "RSV is trending upward (~33% increase) in the region.",
			},
			{Condition: "Influenza", OverallScore: 41, Tier: model.TierModerate},
		},
		Alerts: []model.TrendAlert{
			{Level: model.AlertWarning, Title: "Rising RSV activity", Description: "RSV up 33% week over week", Condition: "RSV"},
		},
		DataSourcesQueried: []string{"CDC Wastewater", "ED Visit Surveillance"},
		DataSourceErrors: []model.AdapterError{
			{Source: "CDC Respiratory Surveillance", Error: "CDC Respiratory Surveillance API error: 429"},
		},
		AnalyzedAt: time.Date(2026, time.January, 20, 14, 30, 0, 0, time.UTC),
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t,
		"surveillance-report-3a7e9c10-aaaa-bbbb-cccc-0123456789ab.pdf",
		Filename("3a7e9c10-aaaa-bbbb-cccc-0123456789ab"))
}

func TestBuildLines_Content(t *testing.T) {
	g := NewPDFGenerator()
	lines := g.buildLines(reportAnalysis())

	var all string
	for _, ln := range lines {
		all += ln.text + "\n"
	}

	assert.Contains(t, all, "Regional Surveillance Report")
	assert.Contains(t, all, "Region: Travis County, TX (HHS Region 6)")
	assert.Contains(t, all, "Analyzed: 2026-01-20 14:30 UTC")
	assert.Contains(t, all, "[WARNING] Rising RSV activity")
	assert.Contains(t, all, "1. RSV  (score 62.5, High relevance)")
	assert.Contains(t, all, "2. Influenza  (score 41, Moderate relevance)")
	assert.Contains(t, all, "RSV is trending upward")
	assert.Contains(t, all, "CDC Respiratory Surveillance API error: 429")
}

func TestBuildLines_NoFindings(t *testing.T) {
	g := NewPDFGenerator()
	a := reportAnalysis()
	a.RankedFindings = nil
	a.Alerts = nil
	a.DataSourceErrors = nil

	lines := g.buildLines(a)

	var all string
	for _, ln := range lines {
		all += ln.text + "\n"
	}
	assert.Contains(t, all, "No findings for this analysis.")
	assert.NotContains(t, all, "Alerts")
	assert.NotContains(t, all, "Data Source Issues")
}

func TestBuildDocument_Paginates(t *testing.T) {
	g := NewPDFGenerator()
	a := reportAnalysis()
	for i := range 60 {
		a.RankedFindings = append(a.RankedFindings, model.ClinicalCorrelation{
			Condition:    fmt.Sprintf("Condition %02d", i),
			OverallScore: 30,
			Tier:         model.TierLow,
			Summary:      "Low regional activity.",
		})
	}

	doc := g.buildDocument(a)

	assert.Equal(t, "A4", doc.Paper)
	assert.Equal(t, "upperLeft", doc.Origin)
	assert.Greater(t, len(doc.Pages), 1)
	_, ok := doc.Pages["1"]
	assert.True(t, ok)
}

func TestGenerate_ProducesPDF(t *testing.T) {
	g := NewPDFGenerator()

	data, err := g.Generate(reportAnalysis())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerate_NilAnalysis(t *testing.T) {
	g := NewPDFGenerator()

	_, err := g.Generate(nil)
	assert.Error(t, err)
}
