package pathfinder

import (
	"context"
	"fmt"
	"testing"

	"flight-route-service/internal/domain"

	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minutes(m int) *int { return &m }

func threeAirports(bbbMCT int) []domain.Airport {
	return []domain.Airport{
		{Code: "AAA", Name: "Alpha", Location: domain.Coordinates{Lat: 0, Lon: 0}},
		{Code: "BBB", Name: "Bravo", Location: domain.Coordinates{Lat: 0, Lon: 1}, MinConnectionMinutes: minutes(bbbMCT)},
		{Code: "CCC", Name: "Charlie", Location: domain.Coordinates{Lat: 1, Lon: 1}},
	}
}

func mustNetwork(t *testing.T, airports []domain.Airport, flights []domain.Flight) *domain.Network {
	t.Helper()
	n, err := domain.NewNetwork(airports, flights, 60)
	require.NoError(t, err)
	return n
}

func find(t *testing.T, e *Engine, q Query) Result {
	t.Helper()
	res, err := e.FindPath(context.Background(), q)
	require.NoError(t, err)
	return res
}

func TestFindPathDirectFlight(t *testing.T) {
	n := mustNetwork(t, threeAirports(45), []domain.Flight{
		domain.NewFlight("AAA", "BBB", domain.Monday, 480, 600, 100, 111),
	})
	e := NewEngine(n)

	res := find(t, e, Query{Origin: "AAA", Destination: "BBB", Day: domain.Monday, Departure: 480, Criterion: domain.Cheapest})
	require.True(t, res.Found)
	assert.Equal(t, []int{0}, res.Path)
	assert.InDelta(t, 100.0, res.Cost, 1e-9)

	res = find(t, e, Query{Origin: "BBB", Destination: "AAA", Day: domain.Monday, Departure: 480, Criterion: domain.Cheapest})
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
}

func TestFindPathMinimumConnection(t *testing.T) {
	flights := []domain.Flight{
		domain.NewFlight("AAA", "BBB", domain.Monday, 480, 600, 100, 111),
		domain.NewFlight("BBB", "CCC", domain.Monday, 645, 700, 50, 111),
	}
	q := Query{Origin: "AAA", Destination: "CCC", Day: domain.Monday, Departure: 480, Criterion: domain.Cheapest}

	res := find(t, NewEngine(mustNetwork(t, threeAirports(45), flights)), q)
	require.True(t, res.Found)
	assert.Equal(t, []int{0, 1}, res.Path)
	assert.InDelta(t, 150.0, res.Cost, 1e-9)

	res = find(t, NewEngine(mustNetwork(t, threeAirports(60), flights)), q)
	assert.False(t, res.Found)
}

func TestFindPathOriginIsDestination(t *testing.T) {
	n := mustNetwork(t, threeAirports(45), []domain.Flight{
		domain.NewFlight("AAA", "BBB", domain.Monday, 480, 600, 100, 111),
	})

	res := find(t, NewEngine(n), Query{Origin: "AAA", Destination: "aaa", Day: domain.Friday, Departure: 0, Criterion: domain.Optimal})
	assert.True(t, res.Found)
	assert.Empty(t, res.Path)
	assert.Zero(t, res.Cost)
}

func TestFindPathRejectsBadQuery(t *testing.T) {
	n := mustNetwork(t, threeAirports(45), nil)
	e := NewEngine(n)

	_, err := e.FindPath(context.Background(), Query{Origin: "ZZZ", Destination: "AAA", Day: domain.Monday, Criterion: domain.Cheapest})
	require.ErrorIs(t, err, domain.ErrUnknownAirport)
	assert.Contains(t, err.Error(), "ZZZ")

	_, err = e.FindPath(context.Background(), Query{Origin: "AAA", Destination: "QQQ", Day: domain.Monday, Criterion: domain.Cheapest})
	require.ErrorIs(t, err, domain.ErrUnknownAirport)

	_, err = e.FindPath(context.Background(), Query{Origin: "AAA", Destination: "BBB", Day: domain.Weekday(9), Criterion: domain.Cheapest})
	require.ErrorIs(t, err, domain.ErrUnknownWeekday)

	_, err = e.FindPath(context.Background(), Query{Origin: "AAA", Destination: "BBB", Day: domain.Monday, Departure: 1440, Criterion: domain.Cheapest})
	require.ErrorIs(t, err, domain.ErrMalformedTime)

	_, err = e.FindPath(context.Background(), Query{Origin: "AAA", Destination: "BBB", Day: domain.Monday, Criterion: domain.Criterion(7)})
	require.ErrorIs(t, err, domain.ErrUnknownCriterion)
}

func TestFindPathCriteriaDisagree(t *testing.T) {
	n := mustNetwork(t, threeAirports(45), []domain.Flight{
		domain.NewFlight("AAA", "BBB", domain.Monday, 480, 600, 300, 111),
		domain.NewFlight("AAA", "BBB", domain.Monday, 480, 780, 80, 111),
	})
	e := NewEngine(n)
	q := Query{Origin: "AAA", Destination: "BBB", Day: domain.Monday, Departure: 480}

	q.Criterion = domain.Cheapest
	res := find(t, e, q)
	assert.Equal(t, []int{1}, res.Path)
	assert.InDelta(t, 80.0, res.Cost, 1e-9)

	q.Criterion = domain.Fastest
	res = find(t, e, q)
	assert.Equal(t, []int{0}, res.Path)
	assert.InDelta(t, 120.0, res.Cost, 1e-9)

	q.Criterion = domain.Optimal
	res = find(t, e, q)
	assert.Equal(t, []int{1}, res.Path)
	assert.InDelta(t, 110.0, res.Cost, 1e-9)
}

func TestFindPathOvernightConnection(t *testing.T) {
	n := mustNetwork(t, threeAirports(45), []domain.Flight{
		domain.NewFlight("AAA", "BBB", domain.Monday, 1380, 60, 100, 111),
		domain.NewFlight("BBB", "CCC", domain.Tuesday, 90, 150, 10, 111),
		domain.NewFlight("BBB", "CCC", domain.Tuesday, 120, 180, 50, 111),
	})

	res := find(t, NewEngine(n), Query{Origin: "AAA", Destination: "CCC", Day: domain.Monday, Departure: 1300, Criterion: domain.Cheapest})
	require.True(t, res.Found)
	assert.Equal(t, []int{0, 2}, res.Path)
	assert.InDelta(t, 150.0, res.Cost, 1e-9)
}

func TestFindPathFirstDeparture(t *testing.T) {
	n := mustNetwork(t, threeAirports(45), []domain.Flight{
		domain.NewFlight("AAA", "BBB", domain.Monday, 480, 600, 100, 111),
		domain.NewFlight("AAA", "CCC", domain.Tuesday, 60, 200, 100, 157),
	})
	e := NewEngine(n)

	res := find(t, e, Query{Origin: "AAA", Destination: "BBB", Day: domain.Monday, Departure: 540, Criterion: domain.Cheapest})
	assert.False(t, res.Found, "flight left before the requested time")

	res = find(t, e, Query{Origin: "AAA", Destination: "CCC", Day: domain.Monday, Departure: 1380, Criterion: domain.Fastest})
	require.True(t, res.Found)
	// 120 minutes on the ground across midnight plus 140 in the air
	assert.InDelta(t, 260.0, res.Cost, 1e-9)
}

func TestFindPathExpansionLimit(t *testing.T) {
	airports := make([]domain.Airport, 6)
	var flights []domain.Flight
	for i := range airports {
		airports[i] = domain.Airport{Code: fmt.Sprintf("A%02d", i), Location: domain.Coordinates{Lat: 0, Lon: float64(i)}}
		if i > 0 {
			flights = append(flights, domain.NewFlight(airports[i-1].Code, airports[i].Code, domain.Monday, i*120, i*120+30, 10, 111))
		}
	}
	n := mustNetwork(t, airports, flights)
	q := Query{Origin: "A00", Destination: "A05", Day: domain.Monday, Departure: 0, Criterion: domain.Cheapest}

	res := find(t, NewEngine(n, WithMaxExpansions(2)), q)
	assert.False(t, res.Found)
	assert.Equal(t, 2, res.Expanded)

	res = find(t, NewEngine(n, WithMaxExpansions(0)), q)
	require.True(t, res.Found)
	assert.Len(t, res.Path, 5)
	assert.Equal(t, 6, res.Expanded, "the goal pop counts")

	res = find(t, NewEngine(n, WithMaxExpansions(5)), q)
	assert.False(t, res.Found)
	assert.Equal(t, 5, res.Expanded)

	res = find(t, NewEngine(n, WithMaxExpansions(6)), q)
	assert.True(t, res.Found)
}

func TestFindPathExpansionLimitCountsStaleEntries(t *testing.T) {
	// All airports share a location so the heuristic is zero and pop order is by cost.
	airports := []domain.Airport{{Code: "AAA"}, {Code: "BBB"}, {Code: "CCC"}, {Code: "DDD"}}
	n := mustNetwork(t, airports, []domain.Flight{
		domain.NewFlight("AAA", "BBB", domain.Monday, 480, 540, 50, 111),
		domain.NewFlight("AAA", "CCC", domain.Monday, 480, 540, 10, 111),
		domain.NewFlight("CCC", "BBB", domain.Monday, 600, 660, 10, 111),
		domain.NewFlight("BBB", "DDD", domain.Monday, 720, 780, 40, 111),
	})
	q := Query{Origin: "AAA", Destination: "DDD", Day: domain.Monday, Departure: 480, Criterion: domain.Cheapest}

	// pops: AAA, CCC, BBB(20), stale BBB(50), DDD
	res := find(t, NewEngine(n), q)
	require.True(t, res.Found)
	assert.Equal(t, []int{1, 2, 3}, res.Path)
	assert.InDelta(t, 60.0, res.Cost, 1e-9)
	assert.Equal(t, 5, res.Expanded)

	res = find(t, NewEngine(n, WithMaxExpansions(4)), q)
	assert.False(t, res.Found)
	assert.Equal(t, 4, res.Expanded)
}

func TestFindPathCancelled(t *testing.T) {
	n := mustNetwork(t, threeAirports(45), []domain.Flight{
		domain.NewFlight("AAA", "BBB", domain.Monday, 480, 600, 100, 111),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(n).FindPath(ctx, Query{Origin: "AAA", Destination: "BBB", Day: domain.Monday, Departure: 480, Criterion: domain.Cheapest})
	require.ErrorIs(t, err, context.Canceled)
}

func randomNetwork(t *testing.T, seed int64, numAirports, numFlights int) *domain.Network {
	t.Helper()
	gofakeit.Seed(seed)

	airports := make([]domain.Airport, numAirports)
	for i := range airports {
		airports[i] = domain.Airport{
			Code: fmt.Sprintf("R%02d", i),
			Location: domain.Coordinates{
				Lat: float64(gofakeit.Number(-60, 60)),
				Lon: float64(gofakeit.Number(-170, 170)),
			},
		}
		if gofakeit.Number(0, 3) == 0 {
			airports[i].MinConnectionMinutes = minutes(gofakeit.Number(15, 120))
		}
	}

	flights := make([]domain.Flight, 0, numFlights)
	for len(flights) < numFlights {
		from := gofakeit.Number(0, numAirports-1)
		to := gofakeit.Number(0, numAirports-1)
		if from == to {
			continue
		}
		flights = append(flights, domain.NewFlight(
			airports[from].Code,
			airports[to].Code,
			domain.Weekday(gofakeit.Number(0, 6)),
			gofakeit.Number(0, 1439),
			gofakeit.Number(0, 1439),
			float64(gofakeit.Number(20, 500)),
			float64(gofakeit.Number(100, 9000)),
		))
	}
	return mustNetwork(t, airports, flights)
}

func TestFindPathRandomNetworks(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		n := randomNetwork(t, seed, 12, 90)

		for _, c := range domain.Criteria() {
			// per-airport BestKnown history
			history := make(map[int][]float64)
			e := NewEngine(n, WithTrace(func(r Relaxation) {
				history[r.Airport] = append(history[r.Airport], r.Cost)
			}))

			q := Query{
				Origin:      "R00",
				Destination: fmt.Sprintf("R%02d", 1+int(seed)%11),
				Day:         domain.Weekday(int(seed) % 7),
				Departure:   int(seed*37) % domain.MinutesPerDay,
				Criterion:   c,
			}
			res := find(t, e, q)

			for airport, costs := range history {
				for i := 1; i < len(costs); i++ {
					assert.Less(t, costs[i], costs[i-1], "seed %d airport %d", seed, airport)
				}
			}
			if !res.Found {
				continue
			}
			assertValidItinerary(t, n, q, res)
		}
	}
}

func assertValidItinerary(t *testing.T, n *domain.Network, q Query, res Result) {
	t.Helper()
	require.NoError(t, n.ValidatePath(res.Path))
	require.NotEmpty(t, res.Path)

	first := n.Flight(res.Path[0])
	last := n.Flight(res.Path[len(res.Path)-1])
	assert.Equal(t, q.Origin, first.From)
	assert.Equal(t, q.Destination, last.To)

	arrival, day := q.Departure, q.Day
	mct := 0
	total := 0.0
	for i, fi := range res.Path {
		f := n.Flight(fi)
		require.True(t, f.Available)
		require.True(t, ConnectionFeasible(arrival, day, f.Departure, f.Day, mct), "segment %d infeasible", i)

		total += RouteCost(q.Criterion, f, WaitTime(arrival, day, f.Departure, f.Day))
		arrival, day = f.Arrival, f.ArrivalDay()
		mct = n.MinConnectionAt(n.Destination(fi))
	}
	assert.InDelta(t, res.Cost, total, 1e-6)
}
