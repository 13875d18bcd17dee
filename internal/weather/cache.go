package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedClient fronts another Client with a Redis cache. Observations
// for nearby coordinates collapse onto one key, so a burst of surplus
// predictions from the same neighborhood costs one upstream call.
type CachedClient struct {
	inner  Client
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedClient(inner Client, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("weather:%.3f:%.3f", lat, lng)
}

func (c *CachedClient) Current(ctx context.Context, lat, lng float64) (*Observation, error) {
	key := cacheKey(lat, lng)

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var obs Observation
		if err := json.Unmarshal(data, &obs); err == nil {
			return &obs, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("weather cache read failed", "error", err)
	}

	obs, err := c.inner.Current(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(obs); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("weather cache write failed", "error", err)
		}
	}
	return obs, nil
}
