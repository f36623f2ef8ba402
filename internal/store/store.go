package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/episcope/internal/model"
)

// ErrNotFound is returned when the requested analysis does not exist.
var ErrNotFound = eris.New("analysis not found")

// StoredAnalysis pairs a persisted analysis with its ownership metadata.
type StoredAnalysis struct {
	OwnerID   string                    `json:"owner_id"`
	CreatedAt time.Time                 `json:"created_at"`
	Analysis  model.TrendAnalysisResult `json:"analysis"`
}

// AnalysisFilter specifies criteria for listing stored analyses.
type AnalysisFilter struct {
	OwnerID string `json:"owner_id,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// Store defines persistence for completed analyses.
type Store interface {
	SaveAnalysis(ctx context.Context, ownerID string, analysis *model.TrendAnalysisResult) error
	GetAnalysis(ctx context.Context, analysisID string) (*StoredAnalysis, error)
	ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]StoredAnalysis, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
