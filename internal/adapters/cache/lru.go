package cache

import (
	"context"
	"time"

	"flight-route-service/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// In-process ItineraryCache bounded by size and entry age.
// Plans are cloned on the way in and out so callers never share slices.
type LRUItineraryCache struct {
	lru *expirable.LRU[string, *domain.TripPlan]
}

// NewLRUItineraryCache keeps at most size plans for ttl each. A zero ttl disables expiry.
func NewLRUItineraryCache(size int, ttl time.Duration) *LRUItineraryCache {
	if size <= 0 {
		size = 1
	}
	return &LRUItineraryCache{lru: expirable.NewLRU[string, *domain.TripPlan](size, nil, ttl)}
}

func (c *LRUItineraryCache) Get(_ context.Context, key string) (*domain.TripPlan, bool, error) {
	plan, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return plan.Clone(), true, nil
}

func (c *LRUItineraryCache) Set(_ context.Context, key string, plan *domain.TripPlan) error {
	c.lru.Add(key, plan.Clone())
	return nil
}

func (c *LRUItineraryCache) Len() int { return c.lru.Len() }
