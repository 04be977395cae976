// Package main provides the entry point for the snapshot refresher daemon.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/health"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/normalize"
	"github.com/yourusername/prop-edge/internal/provider"
	"github.com/yourusername/prop-edge/internal/scheduler"
	"github.com/yourusername/prop-edge/internal/service"
	"github.com/yourusername/prop-edge/internal/store"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	var (
		cfg    *config.Config
		err    error
		appLog *logrus.Logger
	)

	configPath := os.Getenv("PROP_EDGE_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Load configuration
	cfg, err = config.LoadWithDefaults(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"markets":     cfg.Refresh.Markets,
	}).Info("Prop Edge snapshot refresher starting")

	// Initialize snapshot store
	snapshotStore, closeStore, err := buildStore(cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize snapshot store")
	}
	defer closeStore()

	// Name normalization with configured aliases
	normalizer := normalize.New()
	for _, alias := range cfg.Pipeline.Aliases {
		normalizer.AddAlias(alias.From, alias.To)
	}

	// Provider client
	oddsProvider := provider.NewPropOddsClient(provider.PropOddsConfig{
		Name:    cfg.Provider.Name,
		BaseURL: cfg.Provider.BaseURL,
		APIKey:  cfg.Provider.APIKey,
		HTTP: provider.HTTPClientConfig{
			Timeout:           cfg.ProviderTimeout(),
			MaxRetries:        cfg.Provider.MaxRetries,
			RetryWaitMin:      100 * time.Millisecond,
			RetryWaitMax:      10 * time.Second,
			RateLimit:         cfg.Provider.RateLimitPerSec,
			CircuitBreakerMax: cfg.Provider.CircuitBreakerMax,
		},
	}, normalizer, appLog)

	refreshSvc := service.NewRefreshService(oddsProvider, snapshotStore, cfg.RefreshTimeout(), appLog)

	// Schedule the daily baseline plus the optional live window per market
	sched := scheduler.NewScheduler(refreshSvc, appLog)
	for _, market := range cfg.Refresh.Markets {
		if err := sched.ScheduleDailyRefresh(cfg.Refresh.DailyCron, market); err != nil {
			appLog.WithError(err).WithField("market", market).Fatal("Failed to schedule daily refresh")
		}
		if cfg.Refresh.LiveWindowEnabled {
			if err := sched.ScheduleLiveWindow(cfg.Refresh.LiveIntervalSeconds, market); err != nil {
				appLog.WithError(err).WithField("market", market).Fatal("Failed to schedule live window")
			}
		}
	}

	// Health check server
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Port:        cfg.Health.Port,
		Logger:      appLog,
		Store:       snapshotStore,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Metrics endpoint
	metrics.BuildInfo.WithLabelValues(Version, GitCommit).Set(1)
	if cfg.Metrics.Enabled {
		metrics.Serve(cfg.MetricsAddress(), cfg.Metrics.Path, appLog)
	}

	// Prime the cache immediately, then hand off to the schedule. A failed
	// initial run is not fatal: the next scheduled run retries.
	auditLog := logger.NewEstimateLogger(appLog)
	for _, market := range cfg.Refresh.Markets {
		result, err := sched.RunNow(ctx, market)
		if err != nil {
			auditLog.LogRefreshOutcome(market, "", 0, err)
			continue
		}
		auditLog.LogRefreshOutcome(market, result.DateKey, result.Players, nil)
	}

	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	healthServer.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"daily_cron":  cfg.Refresh.DailyCron,
		"live_window": cfg.Refresh.LiveWindowEnabled,
		"next_run":    sched.GetNextRun(),
	}).Info("Refresher running")
	metrics.SchedulerNextRun.Set(float64(sched.GetNextRun().Unix()))

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}
	if err := healthServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error during health server shutdown")
	}

	appLog.Info("Prop Edge snapshot refresher shut down successfully")
}

// buildStore selects the snapshot store backend from configuration.
func buildStore(cfg *config.Config, appLog *logrus.Logger) (store.SnapshotStore, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, nil, err
		}
		appLog.WithField("addr", cfg.Store.RedisAddr).Info("Redis snapshot store connected")

		return store.NewRedisStore(client, cfg.SnapshotTTL()), func() {
			if err := client.Close(); err != nil {
				appLog.WithError(err).Error("Failed to close redis client")
			}
		}, nil
	default:
		appLog.Info("Using in-memory snapshot store")
		return store.NewMemoryStore(cfg.SnapshotTTL()), func() {}, nil
	}
}
