// Package cache provides the Redis-backed enrichment cache. Caching is
// optional: runs without a configured Redis URL use enrich.NopCache and hit
// the providers every time.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agentstation/plugsync/pkg/errors"
	"github.com/agentstation/plugsync/pkg/logging"
)

// DefaultTTL is how long enrichment responses stay cached.
const DefaultTTL = 1 * time.Hour

// keyPrefix namespaces plugsync keys in a shared Redis.
const keyPrefix = "plugsync:"

// Redis is an enrich.Cache backed by a Redis server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a cache from a Redis URL (redis://host:port/db).
func NewRedis(url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.NewConfigError("cache", "invalid redis url", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{
		client: redis.NewClient(opts),
		ttl:    ttl,
	}, nil
}

// Get implements enrich.Cache. Any Redis failure is treated as a miss; the
// cache must never make a run fail.
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return "", false
	}
	return value, true
}

// Set implements enrich.Cache.
func (r *Redis) Set(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
