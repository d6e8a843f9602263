package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storerating/rating-api/internal/api/metrics"
	"github.com/storerating/rating-api/internal/core/ports"
)

const (
	storeListPrefix = "stores:public:"
	storeListGenKey = storeListPrefix + "gen"
	defaultCacheTTL = 30 * time.Second
)

// kv is the subset of redis.Cmdable the cache needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// StoreCache keeps the unfiltered public store listing in Redis. Listings
// live under a per-generation key; Invalidate bumps the generation so older
// entries, including ones written late by a slow reader, are never read and
// expire on their TTL.
type StoreCache struct {
	client kv
	ttl    time.Duration
}

// NewStoreCache creates a StoreCache wrapping the given Redis client.
func NewStoreCache(client kv, ttl time.Duration) *StoreCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &StoreCache{client: client, ttl: ttl}
}

func listKey(gen int64) string {
	return storeListPrefix + strconv.FormatInt(gen, 10)
}

// Get returns the current generation and its listing when cached.
func (c *StoreCache) Get(ctx context.Context) ([]ports.StoreView, int64, bool, error) {
	gen, err := c.client.Get(ctx, storeListGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		metrics.StoreCacheTotal.WithLabelValues("error").Inc()
		return nil, 0, false, fmt.Errorf("store cache generation: %w", err)
	}

	raw, err := c.client.Get(ctx, listKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.StoreCacheTotal.WithLabelValues("miss").Inc()
		return nil, gen, false, nil
	}
	if err != nil {
		metrics.StoreCacheTotal.WithLabelValues("error").Inc()
		return nil, 0, false, fmt.Errorf("store cache get: %w", err)
	}

	var views []ports.StoreView
	if err := json.Unmarshal(raw, &views); err != nil {
		metrics.StoreCacheTotal.WithLabelValues("error").Inc()
		return nil, 0, false, fmt.Errorf("store cache decode: %w", err)
	}
	metrics.StoreCacheTotal.WithLabelValues("hit").Inc()
	return views, gen, true, nil
}

// Set stores views under gen.
func (c *StoreCache) Set(ctx context.Context, gen int64, views []ports.StoreView) error {
	raw, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("store cache encode: %w", err)
	}
	return c.client.Set(ctx, listKey(gen), raw, c.ttl).Err()
}

// Invalidate moves readers to a fresh generation.
func (c *StoreCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, storeListGenKey).Err()
}
