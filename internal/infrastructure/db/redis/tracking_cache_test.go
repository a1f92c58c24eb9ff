package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/shipment-api/internal/core/domain"
	"github.com/parceldesk/shipment-api/internal/core/ports"
)

func setupTestCache(t *testing.T) (*miniredis.Miniredis, *TrackingCache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewTrackingCache(client)
}

func samplePayload(code string) *ports.PublicTracking {
	return &ports.PublicTracking{
		TrackingCode: code,
		Status:       domain.StatusInTransit,
		Events: []ports.PublicEvent{
			{Status: domain.StatusPickedUp, Location: "hub-1", CreatedAt: time.Now().UTC().Truncate(time.Millisecond)},
			{Status: domain.StatusInTransit, Location: "hub-2", CreatedAt: time.Now().UTC().Truncate(time.Millisecond)},
		},
	}
}

func TestTrackingCache_SetGetRoundTrip(t *testing.T) {
	_, cache := setupTestCache(t)
	ctx := context.Background()
	payload := samplePayload("PD-AAAA1111")

	require.NoError(t, cache.Set(ctx, payload))

	got, err := cache.Get(ctx, "PD-AAAA1111")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, payload.TrackingCode, got.TrackingCode)
	require.Equal(t, payload.Status, got.Status)
	require.Len(t, got.Events, 2)
	require.Equal(t, "hub-2", got.Events[1].Location)
}

func TestTrackingCache_MissReturnsNilNil(t *testing.T) {
	_, cache := setupTestCache(t)

	got, err := cache.Get(context.Background(), "PD-NOPE")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTrackingCache_InvalidateRemovesEntry(t *testing.T) {
	mr, cache := setupTestCache(t)
	ctx := context.Background()
	payload := samplePayload("PD-BBBB2222")

	require.NoError(t, cache.Set(ctx, payload))
	require.True(t, mr.Exists("tracking:PD-BBBB2222"))

	require.NoError(t, cache.Invalidate(ctx, "PD-BBBB2222"))

	got, err := cache.Get(ctx, "PD-BBBB2222")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTrackingCache_EntryExpires(t *testing.T) {
	mr, cache := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, samplePayload("PD-CCCC3333")))

	mr.FastForward(trackingTTL + time.Second)

	got, err := cache.Get(ctx, "PD-CCCC3333")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTrackingCache_InvalidateUnknownCodeIsNoError(t *testing.T) {
	_, cache := setupTestCache(t)
	require.NoError(t, cache.Invalidate(context.Background(), "PD-UNSET"))
}
