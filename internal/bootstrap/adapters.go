package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"github.com/quantatel/quantatel-go/config"
	"github.com/quantatel/quantatel-go/internal/api"
	"github.com/quantatel/quantatel-go/internal/core"
	"github.com/quantatel/quantatel-go/internal/data"
	"github.com/quantatel/quantatel-go/internal/service"
)

// NewAPIClient builds the backend API client from configuration. The bearer
// token comes from the environment; the client itself never refreshes it.
func NewAPIClient(cfg config.APIConfig, logger *slog.Logger) (*api.Client, error) {
	if cfg.Token == "" {
		return nil, errors.New("API token is required (set API_TOKEN)")
	}

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	return api.NewClient(api.ClientOptions{
		BaseURL:    cfg.BaseURL,
		Tokens:     tokens,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     logger,
	})
}

// ConnectCacheRedis opens the Redis connection for the threat cache and
// verifies it with a short ping. Returns nil when caching is disabled.
func ConnectCacheRedis(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// Degrade to uncached reads rather than failing startup.
		if logger != nil {
			logger.Warn("cache redis unavailable, caching disabled", "addr", cfg.RedisAddr, "error", err)
		}
		if cerr := client.Close(); cerr != nil && logger != nil {
			logger.Warn("close redis client failed", "error", cerr)
		}
		return nil, nil
	}
	return client, nil
}

// NewThreatService builds the threat read service, cached when a Redis
// client is available.
func NewThreatService(
	threats core.ThreatAPI,
	redisClient redis.UniversalClient,
	cfg config.CacheConfig,
	logger *slog.Logger,
) (*core.ThreatCacheService, error) {
	var cache core.CacheRepository
	if redisClient != nil {
		cache = data.NewRedisCacheRepo(redisClient)
	}

	return core.NewThreatCacheService(core.ThreatCacheServiceOptions{
		API:    threats,
		Cache:  cache,
		Config: core.ThreatCacheConfig{TTL: cfg.TTL},
		Logger: logger,
	})
}

// NewPoller builds a job poller from configuration.
func NewPoller(fetcher core.JobFetcher, cfg config.PollerConfig, logger *slog.Logger) (*service.Poller, error) {
	return service.NewPoller(service.PollerOptions{
		Fetcher:  fetcher,
		Interval: cfg.Interval,
		Buffer:   cfg.UpdateBuffer,
		Logger:   logger,
	})
}

// NewCompletionNotifier builds the completion webhook notifier, or nil when
// notification is disabled.
func NewCompletionNotifier(cfg config.NotifyConfig, logger *slog.Logger) (*service.CompletionNotifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return service.NewCompletionNotifier(service.CompletionNotifierOptions{
		WebhookURL:     cfg.WebhookURL,
		BodyExpression: cfg.BodyJMESPath,
		Logger:         logger,
	})
}
