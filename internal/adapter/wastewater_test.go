package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/episcope/internal/fetcher"
	"github.com/sells-group/episcope/internal/model"
)

var texas = model.ResolvedRegion{
	State: "Texas", StateAbbrev: "TX", HHSRegion: 6, GeoLevel: model.GeoLevelState,
}

const wastewaterFixture = `[
	{"wwtp_jurisdiction":"TX","pathogen":"rsv","date_start":"2026-01-01","date_end":"2026-01-07","detect_prop_15d":60},
	{"wwtp_jurisdiction":"TX","pathogen":"rsv","date_start":"2026-01-08","date_end":"2026-01-14","detect_prop_15d":80},
	{"wwtp_jurisdiction":"TX","pathogen":"sars-cov-2","date_start":"2026-01-08","date_end":"2026-01-14","detect_prop_15d":41},
	{"wwtp_jurisdiction":"TX","pathogen":"mystery","date_start":"2026-01-08","date_end":"2026-01-14","detect_prop_15d":99}
]`

func newTestClient() *fetcher.Client {
	return fetcher.NewClient(fetcher.Options{Timeout: 5 * time.Second})
}

func TestWastewater_FetchNormalizesAndTrends(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "TX", r.URL.Query().Get("wwtp_jurisdiction"))
		_, _ = w.Write([]byte(wastewaterFixture))
	}))
	defer srv.Close()

	a := NewWastewaterAdapter(srv.URL, newTestClient(), NopCache{}, time.Hour)

	points, err := a.Fetch(context.Background(), texas, []model.Syndrome{model.SyndromeRespiratoryLower})
	require.NoError(t, err)
	require.Len(t, points, 2, "unknown pathogens are skipped, series collapse to one point each")
	assert.Equal(t, 1, calls)

	rsv := points[0]
	assert.Equal(t, "RSV", rsv.Condition)
	assert.Equal(t, WastewaterName, rsv.Source)
	assert.Equal(t, model.TrendRising, rsv.Trend)
	require.NotNil(t, rsv.TrendMagnitude)
	assert.InDelta(t, 33.3, *rsv.TrendMagnitude, 0.1)

	covid := points[1]
	assert.Equal(t, "COVID-19", covid.Condition)
	assert.Empty(t, covid.Trend, "single period has no trend")
}

func TestWastewater_IrrelevantSyndromesNoNetworkCall(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	a := NewWastewaterAdapter(srv.URL, newTestClient(), NopCache{}, time.Hour)

	points, err := a.Fetch(context.Background(), texas, []model.Syndrome{model.SyndromeNeurological})
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.Zero(t, calls, "irrelevant syndromes must short-circuit before any network call")
}

func TestWastewater_StatusErrorEmbedsNameAndCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := NewWastewaterAdapter(srv.URL, newTestClient(), NopCache{}, time.Hour)

	_, err := a.Fetch(context.Background(), texas, []model.Syndrome{model.SyndromeFebrile})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "CDC Wastewater API error: 429", err.Error())
}

func TestWastewater_NetworkErrorType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	a := NewWastewaterAdapter(srv.URL, newTestClient(), NopCache{}, time.Hour)

	_, err := a.Fetch(context.Background(), texas, []model.Syndrome{model.SyndromeFebrile})
	require.Error(t, err)

	var ne *NetworkError
	assert.True(t, errors.As(err, &ne))
}

func TestWastewater_CacheAvoidsSecondCall(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(wastewaterFixture))
	}))
	defer srv.Close()

	a := NewWastewaterAdapter(srv.URL, newTestClient(), NewMemoryCache(), time.Hour)
	syn := []model.Syndrome{model.SyndromeRespiratoryLower}

	first, err := a.Fetch(context.Background(), texas, syn)
	require.NoError(t, err)
	second, err := a.Fetch(context.Background(), texas, syn)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}
