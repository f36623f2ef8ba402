// Package augment renders a correlation analysis into a compact text block
// safe to inject verbatim into an LLM prompt assembled elsewhere.
package augment

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/episcope/internal/model"
)

// MaxContextChars is the hard output budget. Rendering prioritizes
// higher-tier findings and higher-severity alerts over completeness so the
// block never exceeds this ceiling.
const MaxContextChars = 2000

// NoSignalMessage is emitted when nothing qualifies for inclusion.
const NoSignalMessage = "No significant regional surveillance signals detected"

// BuildSurveillanceContext renders the analysis. A nil analysis returns the
// empty string; that is the explicit absent-data path, not an error.
func BuildSurveillanceContext(analysis *model.TrendAnalysisResult, differential []string) string {
	if analysis == nil {
		return ""
	}

	b := newBudgetedBuilder(MaxContextChars)

	b.line("REGIONAL SURVEILLANCE CONTEXT: %s", analysis.RegionLabel)
	if len(analysis.DataSourcesQueried) > 0 {
		b.line("Data sources: %s", strings.Join(analysis.DataSourcesQueried, ", "))
	} else {
		b.line("Data sources: none available")
	}

	writeAlerts(b, analysis.Alerts)
	activeWritten := writeActiveSignals(b, analysis.RankedFindings)
	absenceWritten := writeAbsences(b, analysis.RankedFindings, differential)

	if !activeWritten && !absenceWritten {
		b.line("%s.", NoSignalMessage)
	}

	return b.String()
}

// writeAlerts renders critical and warning alerts with a bracketed level
// tag, critical first. Info alerts are UI-only and never included here.
func writeAlerts(b *budgetedBuilder, alerts []model.TrendAlert) {
	for _, level := range []model.AlertLevel{model.AlertCritical, model.AlertWarning} {
		for _, a := range alerts {
			if a.Level != level {
				continue
			}
			b.line("[%s] %s: %s", strings.ToUpper(string(a.Level)), a.Title, a.Description)
		}
	}
}

// writeActiveSignals renders high then moderate tier findings. Returns
// whether at least one finding was written.
func writeActiveSignals(b *budgetedBuilder, findings []model.ClinicalCorrelation) bool {
	wrote := false
	for _, tier := range []model.Tier{model.TierCritical, model.TierHigh, model.TierModerate} {
		for _, f := range findings {
			if f.Tier != tier {
				continue
			}
			if !wrote {
				if !b.line("Active Regional Signals:") {
					return wrote
				}
				wrote = true
			}
			b.line("- %s: %s (%s)", f.Condition, trendPhrase(f), relevanceLabel(f.Tier))
		}
	}
	return wrote
}

// writeAbsences renders low/background findings whose condition matches an
// entry in the caller's differential, so the consuming prompt can argue
// against a diagnosis, not just for one.
func writeAbsences(b *budgetedBuilder, findings []model.ClinicalCorrelation, differential []string) bool {
	if len(differential) == 0 {
		return false
	}

	inDifferential := func(condition string) bool {
		for _, d := range differential {
			if strings.EqualFold(strings.TrimSpace(d), condition) {
				return true
			}
		}
		return false
	}

	wrote := false
	for _, f := range findings {
		if f.Tier != model.TierLow && f.Tier != model.TierBackground {
			continue
		}
		if !inDifferential(f.Condition) {
			continue
		}
		if !wrote {
			if !b.line("Conditions Not Significantly Active:") {
				return wrote
			}
			wrote = true
		}
		b.line("- %s: %s", f.Condition, absencePhrase(f.Tier))
	}
	return wrote
}

// trendPhrase renders the qualitative trend with magnitude when present.
func trendPhrase(f model.ClinicalCorrelation) string {
	switch f.TrendDirection {
	case model.TrendRising:
		if f.TrendMagnitude != nil {
			return fmt.Sprintf("Rising, ~%.0f%% increase", *f.TrendMagnitude)
		}
		return "Rising"
	case model.TrendFalling:
		if f.TrendMagnitude != nil {
			return fmt.Sprintf("Falling, ~%.0f%% decrease", math.Abs(*f.TrendMagnitude))
		}
		return "Falling"
	default:
		return "Stable activity"
	}
}

func relevanceLabel(tier model.Tier) string {
	if tier.Rank() >= model.TierHigh.Rank() {
		return "HIGH relevance"
	}
	return "MODERATE relevance"
}

func absencePhrase(tier model.Tier) string {
	if tier == model.TierBackground {
		return "Below background levels"
	}
	return "Low regional activity"
}

// budgetedBuilder accumulates newline-terminated lines while a character
// budget remains. Lines that would exceed the budget are dropped, which in
// combination with priority-ordered writes keeps the highest-value content.
type budgetedBuilder struct {
	sb        strings.Builder
	remaining int
}

func newBudgetedBuilder(budget int) *budgetedBuilder {
	return &budgetedBuilder{remaining: budget}
}

// line formats and appends one line if it fits. Reports whether it was
// written.
func (b *budgetedBuilder) line(format string, args ...any) bool {
	s := fmt.Sprintf(format, args...)
	needed := len(s)
	if b.sb.Len() > 0 {
		needed++ // separating newline
	}
	if needed > b.remaining {
		return false
	}
	if b.sb.Len() > 0 {
		b.sb.WriteString("\n")
	}
	b.sb.WriteString(s)
	b.remaining -= needed
	return true
}

func (b *budgetedBuilder) String() string {
	s := b.sb.String()
	if len(s) > MaxContextChars {
		s = s[:MaxContextChars]
	}
	return s
}
