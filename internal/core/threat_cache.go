package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/quantatel/quantatel-go/internal/domain/model"
)

const (
	threatListKeyPrefix = "quantatel:threats:list:"
	threatStatsKey      = "quantatel:threats:stats"
)

// ThreatCacheConfig holds configuration for threat response caching.
type ThreatCacheConfig struct {
	TTL time.Duration
}

// DefaultThreatCacheConfig returns a ThreatCacheConfig with sensible defaults.
func DefaultThreatCacheConfig() ThreatCacheConfig {
	return ThreatCacheConfig{TTL: time.Minute}
}

// ThreatCacheServiceOptions bundles dependencies for NewThreatCacheService.
type ThreatCacheServiceOptions struct {
	API    ThreatAPI       // Required: upstream threat API
	Cache  CacheRepository // Optional: nil disables caching
	Config ThreatCacheConfig
	Logger *slog.Logger // Optional: structured logger
}

// ThreatCacheService is a read-through cache over the threat API. Dashboard
// views re-request the same list pages and stats on every refresh; caching
// them keeps repeated renders off the backend. Cache failures degrade to
// direct API reads.
type ThreatCacheService struct {
	api    ThreatAPI
	cache  CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewThreatCacheService constructs a new ThreatCacheService.
func NewThreatCacheService(opts ThreatCacheServiceOptions) (*ThreatCacheService, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("ThreatAPI is required")
	}

	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = DefaultThreatCacheConfig().TTL
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "threat_cache")
	}

	return &ThreatCacheService{
		api:    opts.API,
		cache:  opts.Cache,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// ListThreats returns a threat list page, served from cache when possible.
func (s *ThreatCacheService) ListThreats(
	ctx context.Context,
	query model.ThreatQuery,
) ([]model.ThreatRecord, error) {
	key := threatListKeyPrefix + query.Values().Encode()

	var cached []model.ThreatRecord
	if ok := s.readCached(ctx, key, &cached); ok {
		return cached, nil
	}

	records, err := s.api.ListThreats(ctx, query)
	if err != nil {
		return nil, err
	}

	s.writeCached(ctx, key, records)
	return records, nil
}

// ThreatStats returns the aggregate counters, served from cache when possible.
func (s *ThreatCacheService) ThreatStats(ctx context.Context) (*model.ThreatStats, error) {
	var cached model.ThreatStats
	if ok := s.readCached(ctx, threatStatsKey, &cached); ok {
		return &cached, nil
	}

	stats, err := s.api.ThreatStats(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCached(ctx, threatStatsKey, stats)
	return stats, nil
}

// readCached attempts a cache read; any failure counts as a miss.
func (s *ThreatCacheService) readCached(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		}
		return false
	}
	if len(raw) == 0 {
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "cache entry malformed, ignoring", "key", key, "error", err)
		}
		return false
	}
	return true
}

// writeCached stores a response; failures are logged and absorbed.
func (s *ThreatCacheService) writeCached(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "cache marshal failed", "key", key, "error", err)
		}
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
