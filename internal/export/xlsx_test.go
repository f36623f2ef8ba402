package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/episcope/internal/model"
	"github.com/sells-group/episcope/internal/store"
)

func storedAnalyses() []store.StoredAnalysis {
	mag := 33.3
	return []store.StoredAnalysis{
		{
			OwnerID:   "user-1",
			CreatedAt: time.Now().UTC(),
			Analysis: model.TrendAnalysisResult{
				AnalysisID:  "11111111-2222-3333-4444-555566667777",
				RegionLabel: "Texas (HHS Region 6)",
				Summary:     "1 condition(s) with active regional signal. Leading: RSV.",
				RankedFindings: []model.ClinicalCorrelation{
					{
						Condition:      "RSV",
						OverallScore:   62.5,
						Tier:           model.TierHigh,
						TrendDirection: model.TrendRising,
						TrendMagnitude: &mag,
					},
					{Condition: "Influenza", OverallScore: 22, Tier: model.TierLow},
				},
				Alerts: []model.TrendAlert{
					{Level: model.AlertWarning, Title: "Rising RSV activity"},
				},
				AnalyzedAt: time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestWriteAnalyses_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyses.xlsx")
	require.NoError(t, WriteAnalyses(path, storedAnalyses()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	overview, ok := f.Sheet["Analyses"]
	require.True(t, ok)
	require.Len(t, overview.Rows, 2)
	assert.Equal(t, "Analysis ID", overview.Rows[0].Cells[0].String())
	assert.Equal(t, "11111111-2222-3333-4444-555566667777", overview.Rows[1].Cells[0].String())
	assert.Equal(t, "Texas (HHS Region 6)", overview.Rows[1].Cells[2].String())
	assert.Equal(t, "2", overview.Rows[1].Cells[4].String())
	assert.Equal(t, "1", overview.Rows[1].Cells[5].String())

	findings, ok := f.Sheet["Findings"]
	require.True(t, ok)
	require.Len(t, findings.Rows, 3)
	assert.Equal(t, "RSV", findings.Rows[1].Cells[1].String())
	assert.Equal(t, "62.5", findings.Rows[1].Cells[2].String())
	assert.Equal(t, "high", findings.Rows[1].Cells[3].String())
	assert.Equal(t, "33.3", findings.Rows[1].Cells[5].String())
	// Absence finding has no magnitude.
	assert.Equal(t, "", findings.Rows[2].Cells[5].String())
}

func TestWriteAnalyses_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteAnalyses(path, nil))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheet["Analyses"].Rows, 1)
}
