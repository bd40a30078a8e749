package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "yatav"

// Cache wraps the optional Redis instance used for WebSocket presence and
// daily usage counters. A nil *Cache is valid and turns every operation
// into a no-op, so the service keeps working when Redis is unavailable.
type Cache struct {
	rdb *redis.Client
}

// New connects to Redis by URL and verifies the connection.
func New(ctx context.Context, url string) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Cache{rdb: rdb}, nil
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil }

func (c *Cache) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	if !c.enabled() {
		return fmt.Errorf("redis not configured")
	}
	return c.rdb.Ping(ctx).Err()
}

func activeKey() string { return keyPrefix + ":ws:active" }

func dailyKey(day time.Time) string {
	return fmt.Sprintf("%s:stats:messages:%s", keyPrefix, day.Format("2006-01-02"))
}

// MarkConnected records a live WebSocket session.
func (c *Cache) MarkConnected(ctx context.Context, sessionID string) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.SAdd(ctx, activeKey(), sessionID).Err()
}

func (c *Cache) MarkDisconnected(ctx context.Context, sessionID string) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.SRem(ctx, activeKey(), sessionID).Err()
}

// ActiveSessions lists session ids with a live connection.
func (c *Cache) ActiveSessions(ctx context.Context) ([]string, error) {
	if !c.enabled() {
		return nil, nil
	}
	return c.rdb.SMembers(ctx, activeKey()).Result()
}

// BumpDailyMessages increments today's message counter. Counters expire
// after two days; long-term statistics live in Mongo.
func (c *Cache) BumpDailyMessages(ctx context.Context, day time.Time) error {
	if !c.enabled() {
		return nil
	}
	key := dailyKey(day)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return c.rdb.Expire(ctx, key, 48*time.Hour).Err()
}

func (c *Cache) DailyMessages(ctx context.Context, day time.Time) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	n, err := c.rdb.Get(ctx, dailyKey(day)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
