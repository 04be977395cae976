package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "prop-edge",
			Environment: "development",
			LogLevel:    "info",
		},
		Provider: ProviderConfig{
			Name:              "prop_odds",
			BaseURL:           "https://api.example.com",
			APIKey:            "key",
			TimeoutSeconds:    30,
			MaxRetries:        3,
			RateLimitPerSec:   5,
			CircuitBreakerMax: 5,
		},
		Store: StoreConfig{
			Backend:   "redis",
			RedisAddr: "localhost:6379",
			TTLHours:  48,
		},
		Refresh: RefreshConfig{
			Markets:             []string{"batter_home_runs"},
			DailyCron:           "0 10 * * *",
			LiveIntervalSeconds: 300,
			TimeoutSeconds:      60,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "qa"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.App.LogLevel = "verbose"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsUnknownMarket(t *testing.T) {
	cfg := validConfig()
	cfg.Refresh.Markets = []string{"batter_home_runs", "corner_kicks"}
	assert.Error(t, Validate(cfg))
}

func TestValidateRedisRequiresAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Store.RedisAddr = ""
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis_addr")
}

func TestValidateProductionRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "production"

	cfg.Provider.APIKey = ""
	assert.Error(t, Validate(cfg), "production requires an API key")

	cfg.Provider.APIKey = "key"
	cfg.Store.Backend = "memory"
	cfg.Store.RedisAddr = ""
	assert.Error(t, Validate(cfg), "production requires redis")
}

func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "prop-edge", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 300, cfg.Refresh.LiveIntervalSeconds)
	assert.False(t, cfg.Pipeline.ClassifyArchetypes)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_PROVIDER_KEY", "secret-from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  name: prop-edge
  environment: development
  log_level: debug
provider:
  name: prop_odds
  base_url: https://api.example.com
  api_key: ${TEST_PROVIDER_KEY}
  timeout_seconds: 10
  rate_limit_per_sec: 2
  circuit_breaker_max: 3
store:
  backend: memory
refresh:
  markets:
    - batter_home_runs
  daily_cron: "0 10 * * *"
  live_interval_seconds: 120
  timeout_seconds: 30
metrics:
  enabled: true
  port: 9090
  path: /metrics
pipeline:
  classify_archetypes: true
  aliases:
    - from: "Peté Alonso"
      to: "Pete Alonso"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret-from-env", cfg.Provider.APIKey)
	assert.True(t, cfg.Pipeline.ClassifyArchetypes)
	require.Len(t, cfg.Pipeline.Aliases, 1)
	assert.Equal(t, "Pete Alonso", cfg.Pipeline.Aliases[0].To)
	require.NoError(t, Validate(cfg))
}
