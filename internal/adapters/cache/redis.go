package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight-route-service/internal/domain"
	"flight-route-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "itinerary:"

// Redis-backed ItineraryCache shared between server instances.
type RedisItineraryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisItineraryCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisItineraryCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisItineraryCache{client: client, ttl: ttl, log: log}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis client: ping: %w", err)
	}
	return client, nil
}

func (c *RedisItineraryCache) Get(ctx context.Context, key string) (_ *domain.TripPlan, _ bool, err error) {
	defer obs.Time(ctx, c.log, "itinerary.cache.redis.Get")(&err)

	b, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get itinerary cache key=%q: %w", key, err)
	}

	plan, err := decodePlan(b)
	if err != nil {
		return nil, false, fmt.Errorf("get itinerary cache key=%q: %w", key, err)
	}
	return plan, true, nil
}

func (c *RedisItineraryCache) Set(ctx context.Context, key string, plan *domain.TripPlan) (err error) {
	defer obs.Time(ctx, c.log, "itinerary.cache.redis.Set")(&err)

	b, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("set itinerary cache key=%q: %w", key, err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("set itinerary cache key=%q: %w", key, err)
	}
	return nil
}
