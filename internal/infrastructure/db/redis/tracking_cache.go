package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parceldesk/shipment-api/internal/core/ports"
)

const trackingTTL = 30 * time.Second

// TrackingCache caches the sanitized public tracking payload. Entries carry a
// short TTL and are invalidated on every status change, so a stale read lasts
// at most trackingTTL.
// Key format: tracking:<tracking_code>
type TrackingCache struct {
	client *redis.Client
}

// NewTrackingCache creates a TrackingCache wrapping the given Redis client.
func NewTrackingCache(client *redis.Client) *TrackingCache {
	return &TrackingCache{client: client}
}

// Get returns the cached payload, or (nil, nil) on a miss.
func (c *TrackingCache) Get(ctx context.Context, trackingCode string) (*ports.PublicTracking, error) {
	raw, err := c.client.Get(ctx, c.key(trackingCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("tracking cache get: %w", err)
	}

	var payload ports.PublicTracking
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("tracking cache decode: %w", err)
	}
	return &payload, nil
}

// Set stores the payload under its tracking code for trackingTTL.
func (c *TrackingCache) Set(ctx context.Context, payload *ports.PublicTracking) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("tracking cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(payload.TrackingCode), raw, trackingTTL).Err()
}

// Invalidate drops the cached payload after a status change.
func (c *TrackingCache) Invalidate(ctx context.Context, trackingCode string) error {
	return c.client.Del(ctx, c.key(trackingCode)).Err()
}

func (c *TrackingCache) key(trackingCode string) string {
	return "tracking:" + trackingCode
}
