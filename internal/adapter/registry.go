package adapter

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/episcope/internal/model"
)

// FetchResult is the pooled outcome of a full fan-out. Sources present in
// Errors contributed nothing to DataPoints and must be excluded from any
// "sources successfully queried" reporting downstream.
type FetchResult struct {
	DataPoints []model.SurveillanceDataPoint
	Errors     []model.AdapterError
}

// Registry fans out to all registered adapters concurrently. Each adapter's
// failure is captured independently; no single source's failure prevents
// partial results from the rest. FetchAll never returns an error.
type Registry struct {
	sources        []Source
	perFetchLimit  int
	adapterTimeout time.Duration
}

// NewRegistry creates a Registry. adapterTimeout bounds each individual
// fetch so one slow source cannot dominate total latency; zero disables the
// per-adapter bound (the caller context still applies).
func NewRegistry(adapterTimeout time.Duration) *Registry {
	return &Registry{
		perFetchLimit:  4,
		adapterTimeout: adapterTimeout,
	}
}

// Register adds a source. Not safe to call concurrently with FetchAll;
// registration happens once at wiring time.
func (r *Registry) Register(s Source) {
	r.sources = append(r.sources, s)
}

// Sources returns the names of all registered sources.
func (r *Registry) Sources() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// FetchAll queries every adapter concurrently and pools the results.
// Failures are joined with individual capture per source, not a single
// try/catch around the whole fan-out; this is what makes degradation
// graceful when a subset of sources is down.
func (r *Registry) FetchAll(ctx context.Context, region model.ResolvedRegion, syndromes []model.Syndrome) FetchResult {
	points := make([][]model.SurveillanceDataPoint, len(r.sources))
	errs := make([]error, len(r.sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.perFetchLimit)

	for i, src := range r.sources {
		g.Go(func() error {
			fetchCtx := gctx
			if r.adapterTimeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(gctx, r.adapterTimeout)
				defer cancel()
			}

			pts, err := src.Fetch(fetchCtx, region, syndromes)
			if err != nil {
				errs[i] = err
				zap.L().Warn("registry: adapter fetch failed",
					zap.String("source", src.Name()),
					zap.Error(err),
				)
				return nil // isolate; never abort the group
			}
			points[i] = pts
			return nil
		})
	}
	_ = g.Wait()

	var result FetchResult
	now := time.Now().UTC()
	for i, src := range r.sources {
		if errs[i] != nil {
			result.Errors = append(result.Errors, model.AdapterError{
				Source:    src.Name(),
				Error:     errs[i].Error(),
				Timestamp: now,
			})
			continue
		}
		result.DataPoints = append(result.DataPoints, points[i]...)
	}

	zap.L().Info("registry: fan-out complete",
		zap.Int("sources", len(r.sources)),
		zap.Int("points", len(result.DataPoints)),
		zap.Int("errors", len(result.Errors)),
	)
	return result
}
