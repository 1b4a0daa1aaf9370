package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTrackingCache stores tracking snapshots in Redis with a TTL. The TTL
// bounds staleness between a status update and the next authoritative read;
// updates also invalidate the key directly.
type RedisTrackingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTrackingCache creates a cache over an existing Redis client.
func NewRedisTrackingCache(client *redis.Client, ttl time.Duration) *RedisTrackingCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisTrackingCache{client: client, ttl: ttl}
}

func key(trackingID string) string {
	return "tracking:" + trackingID
}

// Get returns the cached snapshot for a tracking code, or nil on a miss.
func (c *RedisTrackingCache) Get(ctx context.Context, trackingID string) (*TrackingSnapshot, error) {
	raw, err := c.client.Get(ctx, key(trackingID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get %s: %w", trackingID, err)
	}
	var snap TrackingSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("cache decode %s: %w", trackingID, err)
	}
	return &snap, nil
}

// Set stores a snapshot under the tracking code.
func (c *RedisTrackingCache) Set(ctx context.Context, trackingID string, snap TrackingSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", trackingID, err)
	}
	if err := c.client.Set(ctx, key(trackingID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", trackingID, err)
	}
	return nil
}

// Invalidate drops the cached snapshot for a tracking code.
func (c *RedisTrackingCache) Invalidate(ctx context.Context, trackingID string) error {
	if err := c.client.Del(ctx, key(trackingID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", trackingID, err)
	}
	return nil
}

var _ TrackingCache = (*RedisTrackingCache)(nil)
