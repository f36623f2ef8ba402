package adapter

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/episcope/internal/model"
)

// stubSource implements Source for registry tests.
type stubSource struct {
	name     string
	coverage []model.Syndrome
	points   []model.SurveillanceDataPoint
	err      error
	delay    time.Duration
	calls    atomic.Int64
}

func (s *stubSource) Name() string               { return s.name }
func (s *stubSource) Coverage() []model.Syndrome { return s.coverage }
func (s *stubSource) IsRelevant(syn []model.Syndrome) bool {
	return covers(s.coverage, syn)
}
func (s *stubSource) Fetch(ctx context.Context, _ model.ResolvedRegion, _ []model.Syndrome) ([]model.SurveillanceDataPoint, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, &NetworkError{Source: s.name, Err: ctx.Err()}
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.points, nil
}

var anySyndromes = []model.Syndrome{model.SyndromeFebrile}

func TestFetchAll_PartialFailure(t *testing.T) {
	ok := &stubSource{
		name:     "good",
		coverage: anySyndromes,
		points:   []model.SurveillanceDataPoint{{Source: "good", Condition: "RSV", Value: 80}},
	}
	bad := &stubSource{
		name:     "bad",
		coverage: anySyndromes,
		err:      &StatusError{Source: "bad", StatusCode: 500},
	}

	r := NewRegistry(0)
	r.Register(ok)
	r.Register(bad)

	result := r.FetchAll(context.Background(), texas, anySyndromes)

	require.Len(t, result.DataPoints, 1)
	assert.Equal(t, "RSV", result.DataPoints[0].Condition)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad", result.Errors[0].Source)
	assert.Contains(t, result.Errors[0].Error, "500")
	assert.False(t, result.Errors[0].Timestamp.IsZero())
}

func TestFetchAll_AllFail(t *testing.T) {
	r := NewRegistry(0)
	r.Register(&stubSource{name: "a", coverage: anySyndromes, err: &StatusError{Source: "a", StatusCode: 429}})
	r.Register(&stubSource{name: "b", coverage: anySyndromes, err: &StatusError{Source: "b", StatusCode: 503}})

	result := r.FetchAll(context.Background(), texas, anySyndromes)

	assert.Empty(t, result.DataPoints)
	assert.Len(t, result.Errors, 2)
}

func TestFetchAll_AllSourcesInvoked(t *testing.T) {
	sources := []*stubSource{
		{name: "a", coverage: anySyndromes},
		{name: "b", coverage: anySyndromes},
		{name: "c", coverage: anySyndromes},
	}
	r := NewRegistry(0)
	for _, s := range sources {
		r.Register(s)
	}

	r.FetchAll(context.Background(), texas, anySyndromes)

	for _, s := range sources {
		assert.Equal(t, int64(1), s.calls.Load(), "source %s", s.name)
	}
}

func TestFetchAll_SlowAdapterTimesOutIndependently(t *testing.T) {
	slow := &stubSource{name: "slow", coverage: anySyndromes, delay: 500 * time.Millisecond}
	fast := &stubSource{
		name: "fast", coverage: anySyndromes,
		points: []model.SurveillanceDataPoint{{Source: "fast", Condition: "Influenza"}},
	}

	r := NewRegistry(30 * time.Millisecond)
	r.Register(slow)
	r.Register(fast)

	result := r.FetchAll(context.Background(), texas, anySyndromes)

	require.Len(t, result.DataPoints, 1)
	assert.Equal(t, "Influenza", result.DataPoints[0].Condition)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "slow", result.Errors[0].Source)
}

func TestSources(t *testing.T) {
	r := NewRegistry(0)
	r.Register(&stubSource{name: "a"})
	r.Register(&stubSource{name: "b"})

	assert.Equal(t, []string{"a", "b"}, r.Sources())
}
