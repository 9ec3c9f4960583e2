package config

import "time"

// APIConfig contains job service API client configuration.
type APIConfig struct {
	// BaseURL is the root of the job service API.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Token is the static bearer token presented on every request.
	Token string `env:"TOKEN" envDefault:""`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	if a.Timeout <= 0 {
		a.Timeout = 30 * time.Second
	}
}
