// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/sireesha-siri/geotag-plants/internal/client/mirror"
)

// Config holds runtime settings for the geotag-plants CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the plant-data service.
//   - MirrorPath: location of the persisted JSON mirror.
//   - FreshnessWindow: how long a fetched collection is served from cache.
//   - RequestTimeout: per-request HTTP timeout.
//   - RetryMaxAttempts / RetryBaseDelay: transport retry policy for
//     idempotent calls.
type Config struct {
	ServerBaseURL    string
	MirrorPath       string
	FreshnessWindow  time.Duration
	RequestTimeout   time.Duration
	RetryMaxAttempts uint64
	RetryBaseDelay   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.MirrorPath = mirror.DefaultPath()
	c.FreshnessWindow = 2 * time.Minute
	c.RequestTimeout = 12 * time.Second
	c.RetryMaxAttempts = 2
	c.RetryBaseDelay = 200 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
