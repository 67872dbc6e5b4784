package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"mealhub/internal/geo"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

// coordEntry is the cached outcome of one geocoding attempt. Failed
// entries are cached too, so a bad address does not re-hit the network
// on every lookup.
type coordEntry struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Failed    bool    `json:"failed,omitempty"`
}

func (c *RedisCache) CoordinateKey(normalized string) string {
	return "geo:addr:" + normalized
}

// GetCoordinate returns (point, found, failed). found=false means a cache
// miss; failed=true means a cached negative entry.
func (c *RedisCache) GetCoordinate(ctx context.Context, key string) (geo.Point, bool, bool, error) {
	raw, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return geo.Point{}, false, false, nil
	}
	if err != nil {
		return geo.Point{}, false, false, err
	}
	var entry coordEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return geo.Point{}, false, false, err
	}
	if entry.Failed {
		return geo.Point{}, true, true, nil
	}
	return geo.Point{Latitude: entry.Latitude, Longitude: entry.Longitude}, true, false, nil
}

func (c *RedisCache) SetCoordinate(ctx context.Context, key string, point geo.Point) error {
	payload, _ := json.Marshal(coordEntry{Latitude: point.Latitude, Longitude: point.Longitude})
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}

func (c *RedisCache) SetResolutionFailed(ctx context.Context, key string) error {
	payload, _ := json.Marshal(coordEntry{Failed: true})
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}

func (c *RedisCache) ReviewMarkerKey(orderID string) string {
	return "review:order:" + orderID
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string) error {
	return c.Client.Set(ctx, key, "1", c.TTL).Err()
}

// Analytics keys maintained by the aggregator consumer.

func (c *RedisCache) UpdateTopRated(ctx context.Context, restaurantID int, rating float64) error {
	return c.Client.ZAdd(ctx, "analytics:toprated", redis.Z{
		Score:  rating,
		Member: strconv.Itoa(restaurantID),
	}).Err()
}

func (c *RedisCache) IncrementDailyOrders(ctx context.Context, restaurantID int, day string) error {
	return c.Client.ZIncrBy(ctx, "analytics:daily:"+day, 1, strconv.Itoa(restaurantID)).Err()
}

// TopRated returns restaurant ids ordered by displayed rating, best first.
func (c *RedisCache) TopRated(ctx context.Context, limit int) ([]int, error) {
	members, err := c.Client.ZRevRange(ctx, "analytics:toprated", 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(members))
	for _, member := range members {
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
