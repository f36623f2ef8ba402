package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestGetJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"flu","value":42.5}`))
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second})

	var got struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}
	err := c.GetJSON(context.Background(), srv.URL, &got)
	require.NoError(t, err)
	assert.Equal(t, "flu", got.Name)
	assert.Equal(t, 42.5, got.Value)
}

func TestGetJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second})

	var got any
	err := c.GetJSON(context.Background(), srv.URL, &got)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
}

func TestGetJSON_NoRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second})

	var got any
	err := c.GetJSON(context.Background(), srv.URL, &got)
	require.Error(t, err)
	assert.Equal(t, 1, calls, "client must not retry; retry policy belongs to the caller")
}

func TestGetJSON_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second})

	var got any
	err := c.GetJSON(context.Background(), srv.URL, &got)
	require.Error(t, err)

	var se *StatusError
	assert.False(t, errors.As(err, &se), "decode failures are not status errors")
}

func TestLimiterFor_CachesFallbackPerHost(t *testing.T) {
	c := NewClient(Options{})

	a := c.limiterFor("https://example.org/one")
	b := c.limiterFor("https://example.org/two")
	assert.Same(t, a, b, "fallback limiter must be shared so its state accumulates")

	other := c.limiterFor("https://other.example/one")
	assert.NotSame(t, a, other)
}

func TestLimiterFor_UsesConfiguredLimiter(t *testing.T) {
	provided := rate.NewLimiter(1, 1)
	c := NewClient(Options{RateLimiters: map[string]*rate.Limiter{"data.cdc.gov": provided}})

	assert.Same(t, provided, c.limiterFor("https://data.cdc.gov/resource/g653-rqe2.json"))
}

func TestGetJSON_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var got any
	err := c.GetJSON(ctx, srv.URL, &got)
	require.Error(t, err)
}
