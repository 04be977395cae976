package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/normalize"
	"github.com/yourusername/prop-edge/internal/pipeline"
	"github.com/yourusername/prop-edge/internal/provider"
	"github.com/yourusername/prop-edge/internal/service"
	"github.com/yourusername/prop-edge/internal/store"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(refreshCmd)
}

var rootCmd = &cobra.Command{
	Use:   "estimate [candidate.json]",
	Short: "Estimate an adjusted prop probability for one candidate",
	Long: `Runs the adjustment pipeline for a single candidate described in a JSON
file and prints the adjusted probability, the stage trail and, when a cached
odds snapshot holds a matching offer, the market comparison.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		metrics.BuildInfo.WithLabelValues(Version, GitCommit).Set(1)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEstimate(args[0])
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh [market]",
	Short: "Trigger an immediate snapshot refresh for a market",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRefresh(args[0])
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runEstimate(candidatePath string) error {
	data, err := os.ReadFile(candidatePath)
	if err != nil {
		return fmt.Errorf("reading candidate file: %w", err)
	}

	var candidate models.Candidate
	if err := json.Unmarshal(data, &candidate); err != nil {
		return fmt.Errorf("decoding candidate: %w", err)
	}

	snapshotStore, closeStore, err := buildStore()
	if err != nil {
		return err
	}
	defer closeStore()

	normalizer := buildNormalizer()
	pipe := pipeline.New(pipeline.Options{ClassifyArchetypes: cfg.Pipeline.ClassifyArchetypes}, appLog)
	svc := service.NewEstimateService(pipe, snapshotStore, normalizer, appLog)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adjusted, err := svc.Estimate(ctx, candidate)
	if err != nil {
		return err
	}
	logger.NewEstimateLogger(appLog).LogEstimate(adjusted)

	out, err := json.MarshalIndent(adjusted, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))

	fmt.Printf("\n%s: %.4f -> %.4f\n", candidate.Name, candidate.BaselineProbability, adjusted.FinalProbability)
	if adjusted.Explanation != "" {
		fmt.Printf("  %s\n", adjusted.Explanation)
	}
	if adjusted.Edge != nil {
		fmt.Printf("  market implied %.4f, edge %+.4f\n", *adjusted.MarketImpliedProbability, *adjusted.Edge)
	}
	return nil
}

func runRefresh(market string) error {
	snapshotStore, closeStore, err := buildStore()
	if err != nil {
		return err
	}
	defer closeStore()

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
	}, buildNormalizer(), appLog)

	svc := service.NewRefreshService(oddsProvider, snapshotStore, cfg.RefreshTimeout(), appLog)

	result, err := svc.Refresh(context.Background(), market)
	if err != nil {
		return err
	}

	fmt.Printf("Refreshed %s: %d players as of %s (run %s)\n",
		result.Market, result.Players, result.FetchedAt.Format(time.RFC3339), result.RunID)
	return nil
}

func buildNormalizer() *normalize.Normalizer {
	n := normalize.New()
	for _, alias := range cfg.Pipeline.Aliases {
		n.AddAlias(alias.From, alias.To)
	}
	return n
}

func buildStore() (store.SnapshotStore, func(), error) {
	if cfg.Store.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
		return store.NewRedisStore(client, cfg.SnapshotTTL()), func() {
			if err := client.Close(); err != nil {
				appLog.WithError(err).Error("Failed to close redis client")
			}
		}, nil
	}
	// the in-memory backend starts empty in a one-shot CLI run
	appLog.Warn("Memory store backend selected; estimates will run without cached odds")
	return store.NewMemoryStore(cfg.SnapshotTTL()), func() {}, nil
}
