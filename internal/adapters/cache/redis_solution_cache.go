package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fleet-route-solver/internal/ports"
)

// Redis-backed cache for search results. Keys are expected to encode the
// instance and the full solver configuration (see handlers.SolveCacheKey)
// so a hit is always an exact replay of an earlier search.
type RedisSolutionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSolutionCache(client *redis.Client, ttl time.Duration) *RedisSolutionCache {
	return &RedisSolutionCache{client: client, ttl: ttl}
}

// Fetch a cached result; a miss returns (nil, nil).
func (c *RedisSolutionCache) Get(ctx context.Context, key string) (*ports.CachedResult, error) {
	if c.client == nil {
		return nil, errors.New("solution cache: client is nil")
	}

	payload, err := c.client.Get(ctx, "solution:"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("solution cache: get %q: %w", key, err)
	}

	var res ports.CachedResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("solution cache: decode %q: %w", key, err)
	}
	return &res, nil
}

// Store a search result under the configuration key.
func (c *RedisSolutionCache) Put(ctx context.Context, key string, res ports.CachedResult) error {
	if c.client == nil {
		return errors.New("solution cache: client is nil")
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("solution cache: encode %q: %w", key, err)
	}
	if err := c.client.Set(ctx, "solution:"+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("solution cache: put %q: %w", key, err)
	}
	return nil
}
