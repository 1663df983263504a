package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/karwanotmani/bazarpos-backend/api/controllers"
	"github.com/karwanotmani/bazarpos-backend/api/routes"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	"github.com/karwanotmani/bazarpos-backend/internal/seed"
	"github.com/karwanotmani/bazarpos-backend/pkg/config"
	"github.com/karwanotmani/bazarpos-backend/pkg/instance"
	"github.com/karwanotmani/bazarpos-backend/pkg/kv"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
	"github.com/karwanotmani/bazarpos-backend/pkg/metrics"
	"github.com/karwanotmani/bazarpos-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, pinger, cleanup, err := buildStore(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap store", err)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logg.Error(context.Background(), "error closing store", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	posMetrics := metrics.NewPOSMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	session, err := pos.NewSession(pos.Options{
		Store:   store,
		Logger:  logg,
		Metrics: posMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session", err)
		os.Exit(1)
	}
	if err := session.Load(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to load persisted state", err)
		os.Exit(1)
	}
	if cfg.Seed.Bootstrap {
		if err := seed.Bootstrap(context.Background(), session, logg); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"backend":  cfg.Store.Backend,
		"register": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.New(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			Session:     session,
			Registry:    registry,
			HTTPMetrics: httpMetrics,
			StorePinger: pinger,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// buildStore picks the persistence backend from config. The pinger is nil for
// backends without a remote dependency, which makes readiness trivially true.
func buildStore(ctx context.Context, cfg *config.Config) (kv.Store, controllers.Pinger, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return kv.NewMemory(), nil, noop, nil
	case config.StoreBackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		return client, client, client.Close, nil
	default:
		file, err := kv.NewFile(cfg.Store.FilePath)
		if err != nil {
			return nil, nil, noop, err
		}
		return file, nil, noop, nil
	}
}
