// Package config provides configuration management for the Prop Edge application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Provider ProviderConfig `mapstructure:"provider" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" validate:"required"`
	Refresh  RefreshConfig  `mapstructure:"refresh" validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Health   HealthConfig   `mapstructure:"health"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ProviderConfig represents the external odds provider configuration
type ProviderConfig struct {
	Name              string  `mapstructure:"name" validate:"required"`
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSec   float64 `mapstructure:"rate_limit_per_sec" validate:"required,gt=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
}

// StoreConfig represents the snapshot store configuration
type StoreConfig struct {
	Backend       string `mapstructure:"backend" validate:"required,oneof=redis memory"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
	RedisPassword string `mapstructure:"redis_password"`
	TTLHours      int    `mapstructure:"ttl_hours" validate:"gte=0"`
}

// RefreshConfig represents the refresh scheduling configuration
type RefreshConfig struct {
	Markets             []string `mapstructure:"markets" validate:"required,min=1,markets"`
	DailyCron           string   `mapstructure:"daily_cron" validate:"required"`
	LiveWindowEnabled   bool     `mapstructure:"live_window_enabled"`
	LiveIntervalSeconds int      `mapstructure:"live_interval_seconds" validate:"required,gt=0"`
	TimeoutSeconds      int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// PipelineConfig represents pipeline feature options
type PipelineConfig struct {
	ClassifyArchetypes bool          `mapstructure:"classify_archetypes"`
	Aliases            []AliasConfig `mapstructure:"aliases" validate:"dive"`
}

// AliasConfig maps an alternate player-name spelling onto the canonical one
type AliasConfig struct {
	From string `mapstructure:"from" validate:"required"`
	To   string `mapstructure:"to" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig represents the health check server configuration
type HealthConfig struct {
	Port string `mapstructure:"port"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ProviderTimeout returns the provider HTTP timeout as a duration
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

// RefreshTimeout returns the per-run refresh timeout as a duration
func (c *Config) RefreshTimeout() time.Duration {
	return time.Duration(c.Refresh.TimeoutSeconds) * time.Second
}

// SnapshotTTL returns the snapshot retention as a duration (0 = keep forever)
func (c *Config) SnapshotTTL() time.Duration {
	return time.Duration(c.Store.TTLHours) * time.Hour
}

// MetricsAddress returns the listen address for the metrics endpoint
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf(":%d", c.Metrics.Port)
}
