// Package cache provides Redis-backed caches for hot read paths.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const locationKeyPrefix = "skillbridge:locations:"

// LocationCache caches the distinct location-value lookups served by the
// profile search endpoints. A cache failure is never fatal; callers fall
// back to the database.
type LocationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewLocationCache creates a new LocationCache
func NewLocationCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *LocationCache {
	return &LocationCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached values for a location type, if present
func (c *LocationCache) Get(ctx context.Context, locationType string) ([]string, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, locationKeyPrefix+locationType).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("type", locationType).Msg("Location cache read failed")
		}
		return nil, false
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		c.logger.Warn().Err(err).Str("type", locationType).Msg("Location cache entry corrupt")
		return nil, false
	}

	return values, true
}

// Set stores the values for a location type with the configured TTL
func (c *LocationCache) Set(ctx context.Context, locationType string, values []string) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(values)
	if err != nil {
		c.logger.Warn().Err(err).Str("type", locationType).Msg("Location cache marshal failed")
		return
	}

	if err := c.client.Set(ctx, locationKeyPrefix+locationType, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("type", locationType).Msg("Location cache write failed")
	}
}

// Invalidate drops all cached location lookups. Called after profile writes
// so new locations appear within one request rather than one TTL.
func (c *LocationCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}

	keys := []string{
		locationKeyPrefix + "country",
		locationKeyPrefix + "state",
		locationKeyPrefix + "city",
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("Location cache invalidation failed")
	}
}
