// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and DSS_ environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"time"
)

// Cache backends accepted by CacheBackend.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WDIBaseURL is the root of the World Bank indicators API.
	WDIBaseURL string `koanf:"wdi_base_url"`

	// UpstreamTimeoutMS bounds a single indicator request.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// UpstreamRetries caps retry attempts per indicator request.
	UpstreamRetries int `koanf:"upstream_retries"`

	// BreakerFailures is the consecutive failure count that opens the circuit breaker.
	BreakerFailures int `koanf:"breaker_failures"`

	// FetchConcurrency limits countries fetched in parallel.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// MaxCountries caps countries per comparison request.
	MaxCountries int `koanf:"max_countries"`

	// CacheBackend is one of memory, redis or none.
	CacheBackend string `koanf:"cache_backend"`

	// CacheSize bounds the in-memory series cache.
	CacheSize int `koanf:"cache_size"`

	// CacheTTLSeconds is the lifetime of a cached series.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// Redis connection settings, used when CacheBackend is redis.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// MaxUploadBytes limits POST /api/upload bodies.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		WDIBaseURL:        "https://api.worldbank.org/v2",
		UpstreamTimeoutMS: 10_000,
		UpstreamRetries:   3,
		BreakerFailures:   5,
		FetchConcurrency:  4,
		MaxCountries:      6,
		CacheBackend:      CacheMemory,
		CacheSize:         1_024,
		CacheTTLSeconds:   6 * 60 * 60,
		RedisAddr:         "localhost:6379",
		RedisDB:           0,
		MaxUploadBytes:    5 << 20,
	}
}

// UpstreamTimeout returns UpstreamTimeoutMS as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WDIBaseURL == "":
		return fmt.Errorf("%w: wdi_base_url must not be empty", ErrInvalidConfig)
	case c.UpstreamTimeoutMS <= 0:
		return fmt.Errorf("%w: upstream_timeout_ms must be positive", ErrInvalidConfig)
	case c.UpstreamRetries < 0:
		return fmt.Errorf("%w: upstream_retries must not be negative", ErrInvalidConfig)
	case c.BreakerFailures <= 0:
		return fmt.Errorf("%w: breaker_failures must be positive", ErrInvalidConfig)
	case c.FetchConcurrency <= 0:
		return fmt.Errorf("%w: fetch_concurrency must be positive", ErrInvalidConfig)
	case c.MaxCountries <= 0:
		return fmt.Errorf("%w: max_countries must be positive", ErrInvalidConfig)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	}
	switch c.CacheBackend {
	case CacheMemory:
		if c.CacheSize <= 0 {
			return fmt.Errorf("%w: cache_size must be positive", ErrInvalidConfig)
		}
	case CacheRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis_addr must not be empty", ErrInvalidConfig)
		}
	case CacheNone:
	default:
		return fmt.Errorf("%w: unknown cache_backend %q", ErrInvalidConfig, c.CacheBackend)
	}
	return nil
}
