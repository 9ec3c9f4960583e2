package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Poller.Interval)
	assert.Equal(t, time.Second, cfg.Poller.ProgressTick)
	assert.Equal(t, 16, cfg.Poller.UpdateBuffer)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Notify.Enabled)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://intel.example.com")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("API_TIMEOUT", "10s")
	t.Setenv("POLL_INTERVAL", "2s")
	t.Setenv("PROGRESS_TICK", "500ms")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("NOTIFY_ENABLED", "true")
	t.Setenv("NOTIFY_WEBHOOK_URL", "https://hooks.example.com/jobs")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "https://intel.example.com", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Poller.Interval)
	assert.Equal(t, 500*time.Millisecond, cfg.Poller.ProgressTick)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, "https://hooks.example.com/jobs", cfg.Notify.WebhookURL)
}

func TestAppConfig_SanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{
		API:    APIConfig{Timeout: -time.Second},
		Poller: PollerConfig{Interval: 0, ProgressTick: -1, UpdateBuffer: 0},
		Cache:  CacheConfig{Enabled: true, RedisAddr: "", TTL: 0},
		Notify: NotifyConfig{Enabled: true, WebhookURL: ""},
	}
	cfg.Sanitize()

	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Poller.Interval)
	assert.Equal(t, time.Second, cfg.Poller.ProgressTick)
	assert.Equal(t, 16, cfg.Poller.UpdateBuffer)
	// Caching and notification disable themselves without an address/URL.
	assert.False(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Notify.Enabled)
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
