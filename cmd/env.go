package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/episcope/internal/adapter"
	"github.com/sells-group/episcope/internal/auth"
	"github.com/sells-group/episcope/internal/correlate"
	"github.com/sells-group/episcope/internal/fetcher"
	"github.com/sells-group/episcope/internal/pipeline"
	"github.com/sells-group/episcope/internal/region"
	"github.com/sells-group/episcope/internal/report"
	"github.com/sells-group/episcope/internal/store"
	"github.com/sells-group/episcope/internal/syndrome"
)

// serviceEnv holds the initialized store and service needed by the serve,
// analyze, report and export commands.
type serviceEnv struct {
	Store    store.Store
	Service  *pipeline.Service
	Verifier *auth.Verifier
}

// Close releases resources held by the environment.
func (e *serviceEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initService sets up the store, adapters, correlation engine, and the
// service. Callers should defer env.Close().
func initService(ctx context.Context) (*serviceEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	client := fetcher.NewClient(fetcher.Options{
		UserAgent:    cfg.Adapters.UserAgent,
		Timeout:      time.Duration(cfg.Adapters.TimeoutSecs) * time.Second,
		RateLimiters: fetcher.DefaultRateLimiters(),
	})
	cache := adapter.NewMemoryCache()
	ttl := time.Duration(cfg.Adapters.CacheTTLHours) * time.Hour

	registry := adapter.NewRegistry(time.Duration(cfg.Adapters.TimeoutSecs) * time.Second)
	registry.Register(adapter.NewWastewaterAdapter(cfg.Adapters.WastewaterURL, client, cache, ttl))
	registry.Register(adapter.NewRespiratoryAdapter(cfg.Adapters.RespiratoryURL, client, cache, ttl))
	registry.Register(adapter.NewEDVisitsAdapter(cfg.Adapters.EDVisitsURL, client, cache, ttl))

	thresholds := correlate.DefaultThresholds()
	if cfg.Correlation.ThresholdsPath != "" {
		t, err := correlate.LoadThresholds(cfg.Correlation.ThresholdsPath)
		if err != nil {
			zap.L().Warn("thresholds config not loaded, using defaults", zap.Error(err))
		}
		thresholds = t
	}

	svc := pipeline.NewService(
		region.NewResolver(),
		syndrome.NewMapper(),
		registry,
		correlate.NewEngine(thresholds),
		st,
		report.NewPDFGenerator(),
	)

	return &serviceEnv{
		Store:    st,
		Service:  svc,
		Verifier: auth.NewVerifier([]byte(cfg.Auth.SigningKey), cfg.Auth.Issuer),
	}, nil
}
