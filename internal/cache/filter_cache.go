// Package cache holds the redis-backed cache for the search filter universe
// (distinct categories, locations and the observed rating range). The values
// change rarely and are recomputed on every search otherwise.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bizdir/internal/api/dto"

	"github.com/redis/go-redis/v9"
)

const filterOptionsKey = "bizdir:filter-options"

type FilterCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFilterCache connects to redis and verifies the connection. Callers may
// use a nil *FilterCache; every method degrades to a cache miss.
func NewFilterCache(addr, password string, ttl time.Duration) (*FilterCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &FilterCache{client: rdb, ttl: ttl}, nil
}

// Get returns the cached filter options, or (nil, false) on a miss.
func (c *FilterCache) Get(ctx context.Context) (*dto.FilterOptions, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, filterOptionsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var opts dto.FilterOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, false
	}
	return &opts, true
}

// Set stores the filter options with the configured TTL. Failures are
// swallowed: the cache is an optimization, not a source of truth.
func (c *FilterCache) Set(ctx context.Context, opts *dto.FilterOptions) {
	if c == nil || c.client == nil || opts == nil {
		return
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return
	}
	c.client.Set(ctx, filterOptionsKey, raw, c.ttl)
}

// Invalidate drops the cached filter universe, e.g. after a business is
// created with a new category or location.
func (c *FilterCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, filterOptionsKey)
}
