// Package cache provides an optional Redis-backed cache for the weekly pick
// response. A nil *Cache is a valid no-op, so handlers never need to branch
// on whether caching is configured.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	weeklyPickPrefix = "weeklypick:"
	weeklyPickTTL    = 5 * time.Minute
)

// Cache wraps a Redis client for weekly-pick payloads.
type Cache struct {
	rdb *redis.Client
}

// New connects to Redis from a URL. An empty URL disables caching and
// returns a nil cache.
func New(ctx context.Context, url string) (*Cache, error) {
	if url == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{rdb: rdb}, nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// WeeklyPickKey derives the cache key for the evaluation round containing
// the given time, using the ISO week so the round rolls over on Mondays.
func WeeklyPickKey(at time.Time) string {
	year, week := at.UTC().ISOWeek()
	return fmt.Sprintf("%s%d-%02d", weeklyPickPrefix, year, week)
}

// GetWeeklyPick returns the cached payload for the current round, if any.
func (c *Cache) GetWeeklyPick(ctx context.Context, at time.Time) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, WeeklyPickKey(at)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetWeeklyPick stores the payload for the current round with a short TTL.
// Failures are silent: the cache is best-effort.
func (c *Cache) SetWeeklyPick(ctx context.Context, at time.Time, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, WeeklyPickKey(at), payload, weeklyPickTTL).Err()
}

// InvalidateWeeklyPick drops the cached payload after a write that can
// change the pick (propose, rate, mark-watched).
func (c *Cache) InvalidateWeeklyPick(ctx context.Context, at time.Time) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, WeeklyPickKey(at)).Err()
}
