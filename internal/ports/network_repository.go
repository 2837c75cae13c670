package ports

import (
	"context"

	"flight-route-service/internal/domain"
)

// Port: a boundary for loading the flight network from a data source.
type NetworkRepository interface {
	// Load the complete, validated network.
	LoadNetwork(ctx context.Context) (*domain.Network, error)
}
