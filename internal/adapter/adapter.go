// Package adapter integrates the external surveillance data sources. Each
// adapter decides relevance against its fixed syndrome coverage, fetches and
// normalizes provider records into SurveillanceDataPoint, and computes trend
// labels from consecutive periods. Adapters never retry and never swallow
// errors once relevance is established; they only short-circuit silently
// when none of the requested syndromes are covered.
package adapter

import (
	"context"
	"fmt"

	"github.com/sells-group/episcope/internal/model"
)

// Source is the uniform capability set implemented by every adapter.
type Source interface {
	// Name returns the source identifier used in provenance and error reporting.
	Name() string
	// Coverage returns the fixed syndrome set this source observes.
	Coverage() []model.Syndrome
	// IsRelevant is a pure membership test against the coverage set.
	IsRelevant(syndromes []model.Syndrome) bool
	// Fetch returns normalized data points for the region and syndrome set.
	// When IsRelevant is false it returns an empty result without any
	// network call.
	Fetch(ctx context.Context, region model.ResolvedRegion, syndromes []model.Syndrome) ([]model.SurveillanceDataPoint, error)
}

// StatusError is raised when an upstream source returns a non-2xx response.
// The message embeds the adapter name and status code.
type StatusError struct {
	Source     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Source, e.StatusCode)
}

// NetworkError is raised for transport-level failures (timeouts, DNS,
// connection resets), distinct from upstream status errors.
type NetworkError struct {
	Source string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s network failure: %v", e.Source, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// covers reports whether any requested syndrome is in the coverage set.
func covers(coverage, requested []model.Syndrome) bool {
	return model.SyndromesIntersect(coverage, requested)
}
