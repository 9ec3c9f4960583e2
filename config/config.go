// Package config defines the environment-driven configuration for the
// quantatel client. Values are loaded with github.com/caarlos0/env; see the
// individual domain config files for the available variables:
//   - api.go: job service API configuration
//   - poller.go: polling and progress rendering configuration
//   - cache.go: threat cache configuration
//   - notify.go: completion webhook configuration
package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging, relaxed
	// timeouts). Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// API configuration for the job service backend.
	API APIConfig `envPrefix:"API_"`

	// Poller configuration for job tracking.
	Poller PollerConfig

	// Cache configuration for threat list and stats caching.
	Cache CacheConfig

	// Notify configuration for the completion webhook.
	Notify NotifyConfig `envPrefix:"NOTIFY_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Poller.Sanitize()
	c.Cache.Sanitize()
	c.Notify.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables. NODE_ENV
// is checked as a fallback since the dashboard frontend tooling sets it.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
