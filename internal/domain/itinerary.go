package domain

import "fmt"

// Segment is one flown leg of a Journey, copied out of the Network.
type Segment struct {
	From       string
	To         string
	Day        Weekday
	Departure  int
	Arrival    int
	Duration   int
	Cost       float64
	DistanceKm float64
}

// Journey is the itinerary found for one criterion.
// TotalDuration sums flight durations only; connection waits are not included.
type Journey struct {
	Criterion     Criterion
	Segments      []Segment
	TotalCost     float64
	TotalDuration int
	SearchCost    float64
}

// TripPlan groups the journeys found for one query.
// Journeys holds only criteria for which a path was found, in Criteria() order.
type TripPlan struct {
	Origin      string
	Destination string
	Day         Weekday
	Departure   int
	Journeys    []Journey
}

// NewJourney resolves a path of flight indexes into a Journey.
func NewJourney(n *Network, c Criterion, path []int, searchCost float64) (Journey, error) {
	if err := n.ValidatePath(path); err != nil {
		return Journey{}, fmt.Errorf("new journey: %s: %w", c, err)
	}

	j := Journey{
		Criterion:  c,
		Segments:   make([]Segment, 0, len(path)),
		SearchCost: searchCost,
	}
	for _, fi := range path {
		f := n.Flight(fi)
		j.Segments = append(j.Segments, Segment{
			From:       f.From,
			To:         f.To,
			Day:        f.Day,
			Departure:  f.Departure,
			Arrival:    f.Arrival,
			Duration:   f.Duration,
			Cost:       f.Cost,
			DistanceKm: f.DistanceKm,
		})
		j.TotalCost += f.Cost
		j.TotalDuration += f.Duration
	}
	return j, nil
}

// Journey returns the journey for criterion c, if one was found.
func (p *TripPlan) Journey(c Criterion) (Journey, bool) {
	for _, j := range p.Journeys {
		if j.Criterion == c {
			return j, true
		}
	}
	return Journey{}, false
}

// Clone returns a deep copy safe to hand out of a cache.
func (p *TripPlan) Clone() *TripPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Journeys = make([]Journey, len(p.Journeys))
	for i, j := range p.Journeys {
		j.Segments = append([]Segment(nil), j.Segments...)
		out.Journeys[i] = j
	}
	return &out
}
