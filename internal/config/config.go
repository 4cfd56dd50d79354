// Package config provides environment-backed configuration for the server
// and CLI. Values come from the process environment; `.env` files are
// loaded by main before any constructor here runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	Port          int
	DatabaseURL   string
	RedisURL      string        // optional; empty disables the result cache
	CacheTTL      time.Duration // freshness window for cached search results
	ScrapeTimeout time.Duration // per-platform render-and-wait bound
	PlatformsFile string        // optional platform descriptor overrides
	Verbose       bool
}

// Load reads configuration from the environment. DATABASE_URL is required;
// everything else has a default or is optional.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          8080,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		CacheTTL:      10 * time.Minute,
		ScrapeTimeout: 30 * time.Second,
		PlatformsFile: os.Getenv("PLATFORMS_FILE"),
		Verbose:       os.Getenv("VERBOSE") == "true",
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT: %q", portStr)
		}
		cfg.Port = port
	}

	if ttlStr := os.Getenv("CACHE_TTL_MINUTES"); ttlStr != "" {
		minutes, err := strconv.Atoi(ttlStr)
		if err != nil || minutes < 1 {
			return nil, fmt.Errorf("invalid CACHE_TTL_MINUTES: %q", ttlStr)
		}
		cfg.CacheTTL = time.Duration(minutes) * time.Minute
	}

	if timeoutStr := os.Getenv("SCRAPE_TIMEOUT_SECONDS"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds < 1 {
			return nil, fmt.Errorf("invalid SCRAPE_TIMEOUT_SECONDS: %q", timeoutStr)
		}
		cfg.ScrapeTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}
