// Package core defines the ports between the service layer and its
// collaborators. Services depend on these interfaces, not on the concrete
// HTTP client or cache implementations.
package core

import (
	"context"
	"time"

	"github.com/quantatel/quantatel-go/internal/domain/model"
)

// JobFetcher fetches the current state of a job from the job service.
type JobFetcher interface {
	GetJob(ctx context.Context, id string) (*model.QuantumJob, error)
}

// JobSubmitter creates a new analysis job and returns its identifier.
type JobSubmitter interface {
	SubmitJob(ctx context.Context, req *model.SubmitJobRequest) (string, error)
}

// JobAPI combines the job service operations the client consumes.
type JobAPI interface {
	JobFetcher
	JobSubmitter
}

// ThreatAPI reads aggregated threat records and statistics.
type ThreatAPI interface {
	ListThreats(ctx context.Context, query model.ThreatQuery) ([]model.ThreatRecord, error)
	ThreatStats(ctx context.Context) (*model.ThreatStats, error)
}

// CacheRepository defines the caching operations used by read-through caches.
type CacheRepository interface {
	// Set stores a value with the given key and TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by key. Returns nil when the key doesn't exist or
	// has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Returns true if the key was deleted.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}
