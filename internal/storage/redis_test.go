package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"mealhub/internal/geo"
)

func setupTestCache(t *testing.T) *RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, time.Minute)
}

func TestRedisCache_CoordinateRoundTrip(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()
	key := cache.CoordinateKey("berlin|torstrasse|12|10119")

	_, found, _, err := cache.GetCoordinate(ctx, key)
	assert.NoError(t, err)
	assert.False(t, found)

	point := geo.Point{Latitude: 52.53, Longitude: 13.40}
	assert.NoError(t, cache.SetCoordinate(ctx, key, point))

	got, found, failed, err := cache.GetCoordinate(ctx, key)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.False(t, failed)
	assert.Equal(t, point, got)
}

func TestRedisCache_NegativeEntry(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()
	key := cache.CoordinateKey("nowhere|void|0|00000")

	assert.NoError(t, cache.SetResolutionFailed(ctx, key))

	_, found, failed, err := cache.GetCoordinate(ctx, key)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.True(t, failed)
}

func TestRedisCache_ReviewMarker(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()
	key := cache.ReviewMarkerKey("o-1")

	exists, err := cache.Exists(ctx, key)
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, cache.SetMarker(ctx, key))

	exists, err = cache.Exists(ctx, key)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisCache_TopRatedOrdering(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.UpdateTopRated(ctx, 10, 4.2))
	assert.NoError(t, cache.UpdateTopRated(ctx, 11, 4.9))
	assert.NoError(t, cache.UpdateTopRated(ctx, 12, 3.5))
	// A re-rated restaurant moves, it does not duplicate.
	assert.NoError(t, cache.UpdateTopRated(ctx, 12, 5.0))

	ids, err := cache.TopRated(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, []int{12, 11}, ids)

	ids, err = cache.TopRated(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, []int{12, 11, 10}, ids)
}

func TestRedisCache_IncrementDailyOrders(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.IncrementDailyOrders(ctx, 10, "2026-03-14"))
	assert.NoError(t, cache.IncrementDailyOrders(ctx, 10, "2026-03-14"))
	assert.NoError(t, cache.IncrementDailyOrders(ctx, 11, "2026-03-14"))

	score, err := cache.Client.ZScore(ctx, "analytics:daily:2026-03-14", "10").Result()
	assert.NoError(t, err)
	assert.Equal(t, 2.0, score)
}
