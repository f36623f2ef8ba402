// Package pipeline orchestrates the analyze and report operations end to
// end: region resolution, syndrome mapping, the adapter fan-out, correlation
// scoring, alert detection, persistence and PDF rendering. The HTTP handlers
// and the CLI commands share this exact path.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/episcope/internal/adapter"
	"github.com/sells-group/episcope/internal/correlate"
	"github.com/sells-group/episcope/internal/model"
	"github.com/sells-group/episcope/internal/region"
	"github.com/sells-group/episcope/internal/report"
	"github.com/sells-group/episcope/internal/store"
	"github.com/sells-group/episcope/internal/syndrome"
)

// Client-class failures, mapped to 4xx at the HTTP layer. Upstream adapter
// failures are never errors here; they degrade to warnings on the result.
var (
	ErrInvalidInput         = eris.New("pipeline: invalid input")
	ErrUnresolvableLocation = eris.New("pipeline: unresolvable location")
	ErrNotOwner             = eris.New("pipeline: analysis owned by another user")
)

// AnalyzeRequest is the validated input to one analysis.
type AnalyzeRequest struct {
	ChiefComplaint string
	Differential   []string
	Location       region.Location
}

// Service wires the surveillance subsystems together.
type Service struct {
	resolver *region.Resolver
	mapper   *syndrome.Mapper
	registry *adapter.Registry
	engine   *correlate.Engine
	store    store.Store
	pdf      *report.PDFGenerator
}

func NewService(
	resolver *region.Resolver,
	mapper *syndrome.Mapper,
	registry *adapter.Registry,
	engine *correlate.Engine,
	st store.Store,
	pdf *report.PDFGenerator,
) *Service {
	return &Service{
		resolver: resolver,
		mapper:   mapper,
		registry: registry,
		engine:   engine,
		store:    st,
		pdf:      pdf,
	}
}

// Analyze runs one full analysis for the given user and persists the result.
// The returned warnings carry non-fatal adapter failure messages; the
// analysis itself is always valid, even when every source errored.
func (s *Service) Analyze(ctx context.Context, userID string, req AnalyzeRequest) (*model.TrendAnalysisResult, []string, error) {
	if err := validateAnalyzeRequest(req); err != nil {
		return nil, nil, err
	}

	resolved := s.resolver.Resolve(req.Location)
	if resolved == nil {
		return nil, nil, eris.Wrapf(ErrUnresolvableLocation, "zip=%q state=%q", req.Location.ZipCode, req.Location.State)
	}

	log := zap.L().With(
		zap.String("user_id", userID),
		zap.String("region", resolved.Label()),
	)

	syndromes := s.mapper.MapToSyndromes(req.ChiefComplaint, req.Differential)
	log.Info("pipeline: analysis starting",
		zap.Int("differential", len(req.Differential)),
		zap.Int("syndromes", len(syndromes)),
	)

	fetched := s.registry.FetchAll(ctx, *resolved, syndromes)

	now := time.Now().UTC()
	correlations := s.engine.ComputeCorrelations(req.Differential, fetched.DataPoints, correlate.Context{
		ChiefComplaint:     req.ChiefComplaint,
		ComplaintSyndromes: syndromes,
		Region:             *resolved,
		Now:                now,
	})
	alerts := s.engine.DetectAlerts(correlations)

	analysis := &model.TrendAnalysisResult{
		AnalysisID:          uuid.New().String(),
		Region:              *resolved,
		RegionLabel:         resolved.Label(),
		RankedFindings:      correlations,
		Alerts:              alerts,
		Summary:             overallSummary(correlations, alerts),
		DataSourcesQueried:  succeededSources(s.registry.Sources(), fetched.Errors),
		DataSourceErrors:    fetched.Errors,
		DataSourceSummaries: sourceSummaries(fetched.DataPoints),
		AnalyzedAt:          now,
	}

	if err := s.store.SaveAnalysis(ctx, userID, analysis); err != nil {
		return nil, nil, eris.Wrap(err, "pipeline: persist analysis")
	}

	warnings := make([]string, 0, len(fetched.Errors))
	for _, e := range fetched.Errors {
		warnings = append(warnings, e.Error)
	}

	log.Info("pipeline: analysis complete",
		zap.String("analysis_id", analysis.AnalysisID),
		zap.Int("findings", len(correlations)),
		zap.Int("alerts", len(alerts)),
		zap.Int("warnings", len(warnings)),
	)
	return analysis, warnings, nil
}

// Report loads a persisted analysis, enforces ownership, and renders it to
// PDF. Returns the document and its attachment filename.
func (s *Service) Report(ctx context.Context, userID, analysisID string) ([]byte, string, error) {
	if _, err := uuid.Parse(analysisID); err != nil {
		return nil, "", eris.Wrapf(ErrInvalidInput, "analysis id %q is not a UUID", analysisID)
	}

	stored, err := s.store.GetAnalysis(ctx, analysisID)
	if err != nil {
		return nil, "", err
	}
	if stored.OwnerID != userID {
		return nil, "", eris.Wrapf(ErrNotOwner, "analysis %s", analysisID)
	}

	doc, err := s.pdf.Generate(&stored.Analysis)
	if err != nil {
		return nil, "", err
	}
	return doc, report.Filename(analysisID), nil
}

// GetAnalysis loads a stored analysis with the same ownership check the
// report path uses.
func (s *Service) GetAnalysis(ctx context.Context, userID, analysisID string) (*model.TrendAnalysisResult, error) {
	stored, err := s.store.GetAnalysis(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if stored.OwnerID != userID {
		return nil, eris.Wrapf(ErrNotOwner, "analysis %s", analysisID)
	}
	return &stored.Analysis, nil
}

func validateAnalyzeRequest(req AnalyzeRequest) error {
	if strings.TrimSpace(req.ChiefComplaint) == "" {
		return eris.Wrap(ErrInvalidInput, "chief complaint is required")
	}
	hasZip := strings.TrimSpace(req.Location.ZipCode) != ""
	hasState := strings.TrimSpace(req.Location.State) != ""
	if hasZip == hasState {
		return eris.Wrap(ErrInvalidInput, "exactly one of zipCode or state is required")
	}
	return nil
}

// sourceSummaries rolls up the per-source contribution counts.
func sourceSummaries(points []model.SurveillanceDataPoint) map[string]string {
	if len(points) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, p := range points {
		counts[p.Source]++
	}
	out := make(map[string]string, len(counts))
	for source, n := range counts {
		out[source] = fmt.Sprintf("%d data point(s)", n)
	}
	return out
}

// succeededSources filters the registered source names down to those that
// did not error this run.
func succeededSources(all []string, errs []model.AdapterError) []string {
	failed := make(map[string]bool, len(errs))
	for _, e := range errs {
		failed[e.Source] = true
	}
	out := make([]string, 0, len(all))
	for _, name := range all {
		if !failed[name] {
			out = append(out, name)
		}
	}
	return out
}

// overallSummary is a one-line rollup for list views and the PDF header.
func overallSummary(findings []model.ClinicalCorrelation, alerts []model.TrendAlert) string {
	active := 0
	for _, f := range findings {
		if f.Tier.Rank() >= model.TierModerate.Rank() {
			active++
		}
	}
	switch {
	case active == 0:
		return "No significant regional surveillance activity detected."
	case len(alerts) > 0:
		return fmt.Sprintf("%d condition(s) with active regional signal; %d alert(s) raised. Leading: %s.",
			active, len(alerts), findings[0].Condition)
	default:
		return fmt.Sprintf("%d condition(s) with active regional signal. Leading: %s.",
			active, findings[0].Condition)
	}
}
