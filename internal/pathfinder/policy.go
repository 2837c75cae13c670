package pathfinder

import (
	"flight-route-service/internal/domain"
)

// Heuristic and cost scales per criterion. The heuristic constants tie the
// distance estimate to the unit of the criterion's edge cost.
const (
	cheapestCostPerKm   = 0.1
	optimalCostPerKm    = 0.05
	cruiseSpeedKmh      = 800.0
	optimalMinuteWeight = 0.1
)

// ConnectionFeasible reports whether a flight departing at departure on
// departureDay can be boarded after arriving at arrival on arrivalDay.
//
// On the same weekday the gap must be at least minConnection minutes (inclusive).
// Different weekday labels are always feasible; the elapsed span is not checked.
func ConnectionFeasible(arrival int, arrivalDay domain.Weekday, departure int, departureDay domain.Weekday, minConnection int) bool {
	if arrivalDay == departureDay {
		return departure-arrival >= minConnection
	}
	return true
}

// WaitTime is the number of minutes spent on the ground before departure.
// Across weekday labels exactly one midnight crossing is assumed.
func WaitTime(arrival int, arrivalDay domain.Weekday, departure int, departureDay domain.Weekday) int {
	if arrivalDay == departureDay {
		return domain.TimeDelta(arrival, departure)
	}
	return (domain.MinutesPerDay - arrival) + departure
}

// RouteCost is the edge cost of taking f after waiting wait minutes.
func RouteCost(c domain.Criterion, f domain.Flight, wait int) float64 {
	switch c {
	case domain.Fastest:
		return float64(f.Duration + wait)
	case domain.Optimal:
		return f.Cost + optimalMinuteWeight*float64(f.Duration+wait)
	default:
		return f.Cost
	}
}

// Heuristic estimates the remaining cost from a great-circle distance.
func Heuristic(c domain.Criterion, distanceKm float64) float64 {
	switch c {
	case domain.Fastest:
		return distanceKm / cruiseSpeedKmh
	case domain.Optimal:
		return distanceKm * optimalCostPerKm
	default:
		return distanceKm * cheapestCostPerKm
	}
}
