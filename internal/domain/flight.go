package domain

// Flight is one scheduled flight bound to a single weekday (a flight instance).
// Departure and Arrival are minutes since midnight, local to each airport.
// Duration is derived with TimeDelta and therefore wraps past midnight.
type Flight struct {
	From       string
	To         string
	Day        Weekday
	Departure  int
	Arrival    int
	Duration   int
	Cost       float64
	DistanceKm float64
	Available  bool
}

// NewFlight builds an available flight instance and derives its duration.
func NewFlight(from, to string, day Weekday, departure, arrival int, cost, distanceKm float64) Flight {
	return Flight{
		From:       from,
		To:         to,
		Day:        day,
		Departure:  departure,
		Arrival:    arrival,
		Duration:   TimeDelta(departure, arrival),
		Cost:       cost,
		DistanceKm: distanceKm,
		Available:  true,
	}
}

// Overnight reports whether the arrival clock time is earlier than the departure.
func (f Flight) Overnight() bool { return f.Arrival < f.Departure }

// ArrivalDay is the weekday label at the destination.
func (f Flight) ArrivalDay() Weekday {
	if f.Overnight() {
		return f.Day.Next()
	}
	return f.Day
}
