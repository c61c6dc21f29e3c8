// Package config loads the service configuration.
// Values come from an optional YAML file (CONFIG_FILE) and are then
// overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	Version      string          `yaml:"version"`
	LogLevel     string          `yaml:"log_level"`
	SeedArticles bool            `yaml:"seed_articles"`
	Server       ServerConfig    `yaml:"server"`
	Database     DatabaseConfig  `yaml:"database"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
	CORS         CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
}

// DatabaseConfig holds the DSN and connection pool settings.
type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	BreakerEnabled  bool          `yaml:"breaker_enabled"`
}

// RateLimitConfig configures the per-IP token bucket.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is honoured.
	// Empty means the client address is always RemoteAddr.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ErrMissingDatabaseURL is returned by Validate when no DSN is configured.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL not set")

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Version:  "dev",
		LogLevel: "info",
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 1 * time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
			BreakerEnabled:  true,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     20,
			Burst:   40,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Load builds the configuration: defaults, then CONFIG_FILE, then environment.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile merges the YAML document at path into cfg.
// Keys absent from the file keep their current value.
func loadFile(path string, cfg *Config) error {
	// #nosec G304 -- path comes from the operator's environment, not from requests
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Version = GetEnvString("VERSION", c.Version)
	c.LogLevel = GetEnvString("LOG_LEVEL", c.LogLevel)
	c.SeedArticles = GetEnvBool("SEED_ARTICLES", c.SeedArticles)

	c.Server.Addr = GetEnvString("HTTP_ADDR", c.Server.Addr)
	c.Server.ReadHeaderTimeout = getEnvPositiveDuration("HTTP_READ_HEADER_TIMEOUT", c.Server.ReadHeaderTimeout)
	c.Server.ShutdownTimeout = getEnvPositiveDuration("HTTP_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Database.URL = GetEnvString("DATABASE_URL", c.Database.URL)
	c.Database.MaxOpenConns = getEnvPositiveInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvPositiveInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = getEnvPositiveDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)
	c.Database.ConnMaxIdleTime = getEnvPositiveDuration("DB_CONN_MAX_IDLE_TIME", c.Database.ConnMaxIdleTime)
	c.Database.BreakerEnabled = GetEnvBool("DB_BREAKER_ENABLED", c.Database.BreakerEnabled)

	c.RateLimit.Enabled = GetEnvBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RPS = GetEnvFloat("RATE_LIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = getEnvPositiveInt("RATE_LIMIT_BURST", c.RateLimit.Burst)
	c.RateLimit.TrustedProxies = GetEnvStringList("TRUSTED_PROXIES", c.RateLimit.TrustedProxies)

	c.CORS.AllowedOrigins = GetEnvStringList("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
}

// Validate checks the fields the service cannot start without.
func (c Config) Validate() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	if c.Server.Addr == "" {
		return errors.New("server addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate_limit rps and burst must be positive when enabled")
	}
	return nil
}
