// redis.go implements the Redis cache backend.
//
// Redis is the production store: summaries survive restarts and can be
// shared across replicas. Any Redis error degrades to a miss/no-op and is
// logged — an unreachable cache must never block summary generation.
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a cache backend over a Redis server.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis using a redis:// URL and verifies the
// connection with a ping.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{client: client}, nil
}

// Get returns the value for key, treating any Redis error as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("⚠️  Cache read failed for %s: %v", key, err)
		return nil, false
	}
	return value, true
}

// Set stores value under key with the given TTL. Errors are logged and
// swallowed.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("⚠️  Cache write failed for %s: %v", key, err)
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
