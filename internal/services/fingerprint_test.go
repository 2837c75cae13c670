package services

import (
	"context"
	"testing"

	"flight-route-service/internal/adapters/cache"
	"flight-route-service/internal/adapters/repositories"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/pathfinder"
	"flight-route-service/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleFlightNetwork(t *testing.T, departure, arrival int, cost float64, defaultMCT int) *domain.Network {
	t.Helper()
	n, err := domain.NewNetwork(
		[]domain.Airport{
			{Code: "AAA", Name: "Alpha", Location: domain.Coordinates{Lat: 0, Lon: 0}},
			{Code: "BBB", Name: "Bravo", Location: domain.Coordinates{Lat: 0, Lon: 1}},
		},
		[]domain.Flight{domain.NewFlight("AAA", "BBB", domain.Monday, departure, arrival, cost, 111)},
		defaultMCT,
	)
	require.NoError(t, err)
	return n
}

func TestNetworkFingerprint(t *testing.T) {
	base := NetworkFingerprint(singleFlightNetwork(t, 480, 600, 100, 60), 10000)
	assert.Equal(t, base, NetworkFingerprint(singleFlightNetwork(t, 480, 600, 100, 60), 10000))

	tests := []struct {
		name string
		fp   string
	}{
		{"cost", NetworkFingerprint(singleFlightNetwork(t, 480, 600, 999, 60), 10000)},
		{"departure", NetworkFingerprint(singleFlightNetwork(t, 540, 600, 100, 60), 10000)},
		{"default connection", NetworkFingerprint(singleFlightNetwork(t, 480, 600, 100, 45), 10000)},
		{"expansion cap", NetworkFingerprint(singleFlightNetwork(t, 480, 600, 100, 60), 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, tt.fp)
		})
	}
}

func TestPlanTripSharedCacheAcrossNetworks(t *testing.T) {
	ctx := context.Background()
	shared := cache.NewLRUItineraryCache(16, 0)
	req := PlanTripRequest{Origin: "AAA", Destination: "BBB", Day: domain.Monday, Departure: 480, Criteria: []domain.Criterion{domain.Cheapest}}

	before := NewPlanner(pathfinder.NewEngine(singleFlightNetwork(t, 480, 600, 100, 60)), shared, nil)
	plan, err := before.PlanTrip(ctx, req)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, plan.Journeys[0].TotalCost, 1e-9)

	after := NewPlanner(pathfinder.NewEngine(singleFlightNetwork(t, 540, 660, 999, 60)), shared, nil)
	plan, err = after.PlanTrip(ctx, req)
	require.NoError(t, err)
	assert.InDelta(t, 999.0, plan.Journeys[0].TotalCost, 1e-9)
	assert.Equal(t, 540, plan.Journeys[0].Segments[0].Departure)
}

func TestPlanTripAfterReseed(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(conn, db.SQLite))

	itineraries := cache.NewSQLItineraryCache(conn, db.SQLite, 0, nil)
	repo := repositories.NewSQLNetworkRepository(conn, db.SQLite, 60)
	req := PlanTripRequest{Origin: "AAA", Destination: "BBB", Day: domain.Monday, Departure: 480}

	plan := func() *domain.TripPlan {
		t.Helper()
		n, err := repo.LoadNetwork(ctx)
		require.NoError(t, err)
		p, err := NewPlanner(pathfinder.NewEngine(n), itineraries, nil).PlanTrip(ctx, req)
		require.NoError(t, err)
		return p
	}

	require.NoError(t, repositories.SeedNetwork(ctx, conn, db.SQLite, singleFlightNetwork(t, 480, 600, 100, 60)))
	first := plan()
	assert.InDelta(t, 100.0, first.Journeys[0].TotalCost, 1e-9)

	require.NoError(t, repositories.SeedNetwork(ctx, conn, db.SQLite, singleFlightNetwork(t, 540, 660, 999, 60)))
	second := plan()
	require.Len(t, second.Journeys, 3)
	for _, j := range second.Journeys {
		assert.InDelta(t, 999.0, j.TotalCost, 1e-9, j.Criterion.String())
		assert.Equal(t, 540, j.Segments[0].Departure)
	}
}
