package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitscore/internal/analytics"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// sentry
	SentryEnabled bool `toml:"sentry_enabled"`
	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	AllowedOrigins         []string `toml:"allowed_origins"`
	RateLimitAllowedPerMin int      `toml:"rate_limit_allowed_per_min"`
	// analytics
	// unset means 15m, an explicit zero turns the snapshot throttle off
	SnapshotMinInterval  *Duration          `toml:"snapshot_min_interval"`
	HistoryRetentionDays int                `toml:"history_retention_days"`
	HistoryPruneSchedule string             `toml:"history_prune_schedule"`
	SessionCleanSchedule string             `toml:"session_clean_schedule"`
	Weights              *analytics.Weights `toml:"weights"`
}

// Duration decodes TOML strings like "15m" into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", env)
	}

	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.RateLimitAllowedPerMin == 0 {
		c.RateLimitAllowedPerMin = 120
	}
	if c.SnapshotMinInterval == nil {
		c.SnapshotMinInterval = &Duration{Duration: 15 * time.Minute}
	}
	if c.HistoryRetentionDays == 0 {
		c.HistoryRetentionDays = 365
	}
	if c.HistoryPruneSchedule == "" {
		c.HistoryPruneSchedule = "@daily"
	}
	if c.SessionCleanSchedule == "" {
		c.SessionCleanSchedule = "@every 8h"
	}
}

// Policy returns the default scoring policy, with the weights overridden when configured.
func (c *Config) Policy() (analytics.Policy, error) {
	policy := analytics.DefaultPolicy()
	if c.Weights != nil {
		policy = policy.WithWeights(*c.Weights)
	}
	if err := policy.Validate(); err != nil {
		return analytics.Policy{}, fmt.Errorf("invalid scoring policy: %w", err)
	}
	return policy, nil
}

func (c *Config) HistoryRetention() (time.Duration, error) {
	if c.HistoryRetentionDays < 0 {
		return 0, errors.New("history retention days must not be negative")
	}
	return time.Duration(c.HistoryRetentionDays) * 24 * time.Hour, nil
}
