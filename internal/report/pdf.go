// Package report renders a persisted analysis into a PDF document.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/episcope/internal/model"
)

// PDFGenerator renders a TrendAnalysisResult to a PDF via pdfcpu's JSON
// page-description input.
type PDFGenerator struct {
	titleCaser cases.Caser
}

func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{titleCaser: cases.Title(language.AmericanEnglish)}
}

// Filename returns the attachment filename for an analysis.
func Filename(analysisID string) string {
	return fmt.Sprintf("surveillance-report-%s.pdf", analysisID)
}

// Generate renders the analysis. The analysis must be non-nil.
func (g *PDFGenerator) Generate(analysis *model.TrendAnalysisResult) ([]byte, error) {
	if analysis == nil {
		return nil, eris.New("report: nil analysis")
	}

	doc := g.buildDocument(analysis)
	spec, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "report: marshal page description")
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(spec), &buf, nil); err != nil {
		return nil, eris.Wrap(err, "report: create pdf")
	}
	return buf.Bytes(), nil
}

// pdfcpu JSON page description types. Coordinates use an upper-left origin
// so y grows downward like the line layout below.

type pdfDocument struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfText struct {
	Value    string     `json:"value"`
	Position [2]float64 `json:"position"`
	Font     pdfFont    `json:"font"`
}

type pdfFont struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type docLine struct {
	text string
	bold bool
}

const (
	pageMarginX     = 48.0
	pageTopY        = 56.0
	lineHeight      = 16.0
	maxLinesPerPage = 44
)

func (g *PDFGenerator) buildDocument(analysis *model.TrendAnalysisResult) pdfDocument {
	lines := g.buildLines(analysis)

	pages := make(map[string]pdfPage)
	for i := 0; i < len(lines); i += maxLinesPerPage {
		chunk := lines[i:min(i+maxLinesPerPage, len(lines))]
		var texts []pdfText
		for j, ln := range chunk {
			if ln.text == "" {
				continue
			}
			font := pdfFont{Name: "Helvetica", Size: 10}
			if ln.bold {
				font = pdfFont{Name: "Helvetica-Bold", Size: 11}
			}
			texts = append(texts, pdfText{
				Value:    ln.text,
				Position: [2]float64{pageMarginX, pageTopY + float64(j)*lineHeight},
				Font:     font,
			})
		}
		pages[fmt.Sprintf("%d", i/maxLinesPerPage+1)] = pdfPage{Content: pdfContent{Text: texts}}
	}

	return pdfDocument{Paper: "A4", Origin: "upperLeft", Pages: pages}
}

func (g *PDFGenerator) buildLines(analysis *model.TrendAnalysisResult) []docLine {
	var lines []docLine
	heading := func(format string, args ...any) {
		lines = append(lines, docLine{text: fmt.Sprintf(format, args...), bold: true})
	}
	body := func(format string, args ...any) {
		lines = append(lines, docLine{text: fmt.Sprintf(format, args...)})
	}
	blank := func() { lines = append(lines, docLine{}) }

	heading("Regional Surveillance Report")
	body("Region: %s", analysis.RegionLabel)
	body("Analyzed: %s", analysis.AnalyzedAt.UTC().Format("2006-01-02 15:04 UTC"))
	body("Analysis ID: %s", analysis.AnalysisID)
	if len(analysis.DataSourcesQueried) > 0 {
		body("Data sources: %s", strings.Join(analysis.DataSourcesQueried, ", "))
	}
	blank()

	if len(analysis.Alerts) > 0 {
		heading("Alerts")
		for _, a := range analysis.Alerts {
			body("[%s] %s: %s", strings.ToUpper(string(a.Level)), a.Title, a.Description)
		}
		blank()
	}

	heading("Ranked Findings")
	if len(analysis.RankedFindings) == 0 {
		body("No findings for this analysis.")
	}
	for i, f := range analysis.RankedFindings {
		body("%d. %s  (score %s, %s relevance)",
			i+1, f.Condition, formatScore(f.OverallScore), g.titleCaser.String(string(f.Tier)))
		if f.Summary != "" {
			body("   %s", f.Summary)
		}
	}
	blank()

	if len(analysis.DataSourceErrors) > 0 {
		heading("Data Source Issues")
		for _, e := range analysis.DataSourceErrors {
			body("%s: %s", e.Source, e.Error)
		}
	}

	return lines
}

func formatScore(score float64) string {
	if score == math.Trunc(score) {
		return fmt.Sprintf("%.0f", score)
	}
	return fmt.Sprintf("%.1f", score)
}
