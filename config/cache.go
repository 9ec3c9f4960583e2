package config

import "time"

// CacheConfig contains threat cache configuration (Redis-based).
type CacheConfig struct {
	// Enabled toggles the read-through cache for threat lists and stats.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"false"`

	// Redis connection settings for cache.
	RedisAddr     string `env:"CACHE_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"CACHE_REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"CACHE_REDIS_DB"       envDefault:"0"`

	// TTL is how long cached threat responses stay fresh.
	TTL time.Duration `env:"CACHE_TTL" envDefault:"1m"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.TTL <= 0 {
		c.TTL = time.Minute
	}
	if c.RedisAddr == "" {
		c.Enabled = false
	}
}
