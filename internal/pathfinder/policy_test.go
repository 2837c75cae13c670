package pathfinder

import (
	"testing"

	"flight-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestConnectionFeasible(t *testing.T) {
	tests := []struct {
		name      string
		arrival   int
		arrDay    domain.Weekday
		departure int
		depDay    domain.Weekday
		mct       int
		want      bool
	}{
		{"exact minimum", 600, domain.Monday, 645, domain.Monday, 45, true},
		{"one minute short", 600, domain.Monday, 644, domain.Monday, 45, false},
		{"departs before arrival", 600, domain.Monday, 500, domain.Monday, 0, false},
		{"zero mct same minute", 480, domain.Monday, 480, domain.Monday, 0, true},
		{"next weekday", 1430, domain.Monday, 5, domain.Tuesday, 60, true},
		// weekday labels are compared, not elapsed time
		{"earlier weekday label", 600, domain.Wednesday, 100, domain.Monday, 60, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConnectionFeasible(tt.arrival, tt.arrDay, tt.departure, tt.depDay, tt.mct)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWaitTime(t *testing.T) {
	assert.Equal(t, 45, WaitTime(600, domain.Monday, 645, domain.Monday))
	assert.Equal(t, 0, WaitTime(480, domain.Monday, 480, domain.Monday))
	assert.Equal(t, 15, WaitTime(1430, domain.Monday, 5, domain.Tuesday))
	assert.Equal(t, 1440-600+100, WaitTime(600, domain.Monday, 100, domain.Friday))
}

func TestRouteCost(t *testing.T) {
	f := domain.NewFlight("AAA", "BBB", domain.Monday, 480, 600, 100, 111)

	assert.InDelta(t, 100.0, RouteCost(domain.Cheapest, f, 30), 1e-9)
	assert.InDelta(t, 150.0, RouteCost(domain.Fastest, f, 30), 1e-9)
	assert.InDelta(t, 115.0, RouteCost(domain.Optimal, f, 30), 1e-9)
}

func TestHeuristic(t *testing.T) {
	assert.InDelta(t, 80.0, Heuristic(domain.Cheapest, 800), 1e-9)
	assert.InDelta(t, 1.0, Heuristic(domain.Fastest, 800), 1e-9)
	assert.InDelta(t, 40.0, Heuristic(domain.Optimal, 800), 1e-9)
	assert.Zero(t, Heuristic(domain.Optimal, 0))
}
