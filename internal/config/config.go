package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// strava
	StravaBaseURL       string   `toml:"strava_base_url"`
	StravaAuthURL       string   `toml:"strava_auth_url"`
	StravaTokenURL      string   `toml:"strava_token_url"`
	StravaRedirectURL   string   `toml:"strava_redirect_url"`
	StravaPageSize      int      `toml:"strava_page_size"`
	StravaPageDelayMs   int      `toml:"strava_page_delay_ms"`
	StravaMaxAttempts   int      `toml:"strava_max_attempts"`
	DashboardURL        string   `toml:"dashboard_url"`
	AllowedOrigins      []string `toml:"allowed_origins"`
	SyncAllowedPerMin   int      `toml:"sync_allowed_per_min"`
	RecordsCacheMinutes int      `toml:"records_cache_minutes"`
	// background auto sync
	AutoSyncEnabled         bool `toml:"auto_sync_enabled"`
	AutoSyncIntervalMinutes int  `toml:"auto_sync_interval_minutes"`
	AutoSyncMaxAgeHours     int  `toml:"auto_sync_max_age_hours"`

	// secrets, taken from env vars only
	StravaClientID     string `toml:"-"`
	StravaClientSecret string `toml:"-"`
	PostgresPassword   string `toml:"-"`
	RedisPassword      string `toml:"-"`
	SessionSecret      string `toml:"-"`
	SentryDSN          string `toml:"-"`
	HoneycombEnabled   bool   `toml:"-"`
}

func (c *Config) StravaPageDelay() time.Duration {
	return time.Duration(c.StravaPageDelayMs) * time.Millisecond
}

func (c *Config) AutoSyncInterval() time.Duration {
	return time.Duration(c.AutoSyncIntervalMinutes) * time.Minute
}

func (c *Config) AutoSyncMaxAge() time.Duration {
	return time.Duration(c.AutoSyncMaxAgeHours) * time.Hour
}

func (c *Config) RecordsCacheExpire() time.Duration {
	return time.Duration(c.RecordsCacheMinutes) * time.Minute
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the config for the given env from the TOML file at path,
// fills in defaults, and reads secrets from env vars.
func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config %s: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	cfg.setDefaults()
	cfg.readSecrets(os.Getenv)

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.StravaPageSize <= 0 {
		c.StravaPageSize = 100
	}
	if c.StravaPageDelayMs <= 0 {
		c.StravaPageDelayMs = 250
	}
	if c.StravaMaxAttempts <= 0 {
		c.StravaMaxAttempts = 5
	}
	if c.SyncAllowedPerMin <= 0 {
		c.SyncAllowedPerMin = 2
	}
	if c.RecordsCacheMinutes <= 0 {
		c.RecordsCacheMinutes = 60
	}
	if c.AutoSyncIntervalMinutes <= 0 {
		c.AutoSyncIntervalMinutes = 60
	}
	if c.AutoSyncMaxAgeHours <= 0 {
		c.AutoSyncMaxAgeHours = 6
	}
	if c.DashboardURL == "" {
		c.DashboardURL = "/"
	}
}

func (c *Config) readSecrets(getenv func(string) string) {
	c.StravaClientID = getenv("TRAINERDASH_STRAVA_CLIENT_ID")
	c.StravaClientSecret = getenv("TRAINERDASH_STRAVA_CLIENT_SECRET")
	c.PostgresPassword = getenv("TRAINERDASH_POSTGRES_PASS")
	c.RedisPassword = getenv("TRAINERDASH_REDIS_PASS")
	c.SessionSecret = getenv("TRAINERDASH_SESSION_SECRET")
	c.SentryDSN = getenv("SENTRY_DSN")
	c.HoneycombEnabled = getenv("HONEYCOMB_ENABLED") == "true"
}
