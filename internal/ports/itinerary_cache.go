package ports

import (
	"context"

	"flight-route-service/internal/domain"
)

// Port: a store for previously planned trips, keyed by query.
type ItineraryCache interface {
	// Return the cached plan and true, or false on a miss.
	Get(ctx context.Context, key string) (*domain.TripPlan, bool, error)
	// Store a plan under key. Implementations decide expiry.
	Set(ctx context.Context, key string, plan *domain.TripPlan) error
}
