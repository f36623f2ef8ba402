// Package fetcher provides the rate-limited HTTP client used by surveillance
// source adapters. Retry policy belongs to the caller: adapters surface
// upstream failures untouched so the registry can isolate them.
package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the Client.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	RateLimiters map[string]*rate.Limiter
}

// DefaultRateLimiters returns the default per-host rate limiters for the
// public health data hosts the adapters talk to.
func DefaultRateLimiters() map[string]*rate.Limiter {
	return map[string]*rate.Limiter{
		"data.cdc.gov": rate.NewLimiter(5, 5),
		"api.cdc.gov":  rate.NewLimiter(5, 5),
	}
}

// Fallback rate for hosts without a configured limiter.
const (
	fallbackRateLimit = rate.Limit(20)
	fallbackRateBurst = 20
)

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return eris.Errorf("http %d from %s", e.StatusCode, e.URL).Error()
}

// Client wraps net/http with per-host rate limiting and JSON decoding.
type Client struct {
	client *http.Client
	opts   Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient creates a Client with the given options.
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "episcope/1.0"
	}
	limiters := make(map[string]*rate.Limiter)
	for k, v := range opts.RateLimiters {
		limiters[k] = v
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:     opts,
		limiters: limiters,
	}
}

// limiterFor returns the limiter for the URL's host, creating and caching a
// fallback limiter for hosts without a configured one so its token state
// persists across requests.
func (c *Client) limiterFor(rawURL string) *rate.Limiter {
	var host string
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if lim, ok := c.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(fallbackRateLimit, fallbackRateBurst)
	c.limiters[host] = lim
	return lim
}

// GetJSON fetches the URL and decodes the response body into v.
// Non-2xx responses return a *StatusError so callers can branch on status.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	if err := c.limiterFor(rawURL).Wait(ctx); err != nil {
		return eris.Wrap(err, "fetcher: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return eris.Wrap(err, "fetcher: create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "fetcher: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		zap.L().Warn("fetcher: upstream error status",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
		)
		return &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return eris.Wrapf(err, "fetcher: decode response from %s", rawURL)
	}
	return nil
}
