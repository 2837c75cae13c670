package cache

import (
	"fmt"

	"flight-route-service/internal/domain"

	"github.com/vmihailenco/msgpack/v5"
)

// Plans are stored as msgpack so Redis and SQL entries share one encoding.
func encodePlan(plan *domain.TripPlan) ([]byte, error) {
	b, err := msgpack.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encode trip plan: %w", err)
	}
	return b, nil
}

func decodePlan(b []byte) (*domain.TripPlan, error) {
	var plan domain.TripPlan
	if err := msgpack.Unmarshal(b, &plan); err != nil {
		return nil, fmt.Errorf("decode trip plan: %w", err)
	}
	return &plan, nil
}
