// Package export writes stored analyses to XLSX workbooks for offline
// review.
package export

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/episcope/internal/store"
)

// WriteAnalyses writes the analyses to an XLSX workbook at path. The
// workbook has an overview sheet plus one row per ranked finding.
func WriteAnalyses(path string, analyses []store.StoredAnalysis) error {
	f, err := buildWorkbook(analyses)
	if err != nil {
		return err
	}
	return eris.Wrapf(f.Save(path), "export: save %s", path)
}

func buildWorkbook(analyses []store.StoredAnalysis) (*xlsx.File, error) {
	f := xlsx.NewFile()

	overview, err := f.AddSheet("Analyses")
	if err != nil {
		return nil, eris.Wrap(err, "export: add overview sheet")
	}
	addRow(overview, "Analysis ID", "Owner", "Region", "Analyzed At", "Findings", "Alerts", "Summary")
	for _, sa := range analyses {
		a := sa.Analysis
		addRow(overview,
			a.AnalysisID,
			sa.OwnerID,
			a.RegionLabel,
			a.AnalyzedAt.UTC().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", len(a.RankedFindings)),
			fmt.Sprintf("%d", len(a.Alerts)),
			a.Summary,
		)
	}

	findings, err := f.AddSheet("Findings")
	if err != nil {
		return nil, eris.Wrap(err, "export: add findings sheet")
	}
	addRow(findings, "Analysis ID", "Condition", "Score", "Tier", "Trend", "Magnitude %")
	for _, sa := range analyses {
		for _, c := range sa.Analysis.RankedFindings {
			magnitude := ""
			if c.TrendMagnitude != nil {
				magnitude = fmt.Sprintf("%.1f", *c.TrendMagnitude)
			}
			addRow(findings,
				sa.Analysis.AnalysisID,
				c.Condition,
				fmt.Sprintf("%.1f", c.OverallScore),
				string(c.Tier),
				string(c.TrendDirection),
				magnitude,
			)
		}
	}

	return f, nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
