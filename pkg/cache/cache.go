// Package cache provides an optional Redis-backed cache for GitHub
// enrichment records. All operations are nil-safe: a nil Cache behaves
// like a cache that never hits, so Redis stays optional.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const enrichmentPrefix = "github:activity:"

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis using a URL like redis://host:6379/0.
// Returns nil (no cache) when url is empty.
func New(url string, ttl time.Duration) (*Cache, error) {
	if url == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// GetActivity fetches a cached enrichment record into dest.
// Returns false on miss, cache absence, or decode failure.
func (c *Cache) GetActivity(ctx context.Context, url string, dest interface{}) bool {
	if c == nil {
		return false
	}

	payload, err := c.rdb.Get(ctx, enrichmentPrefix+url).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(payload, dest) == nil
}

// SetActivity stores an enrichment record. Failures are ignored,
// the cache is best-effort.
func (c *Cache) SetActivity(ctx context.Context, url string, record interface{}) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, enrichmentPrefix+url, payload, c.ttl)
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
