package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Network is the read-only flight dataset a search runs over.
// It owns the airport code index and the outgoing adjacency index, both built
// once by NewNetwork. A Network is safe for concurrent readers.
type Network struct {
	airports             []Airport
	flights              []Flight
	defaultMinConnection int

	byCode   map[string]int
	outgoing [][]int
	// endpoint airport indexes per flight
	flightFrom []int
	flightTo   []int
}

// NewNetwork validates airports and flights and builds the lookup indexes.
// Airport codes are normalized to upper case. Unavailable flights are kept but
// never indexed as outgoing edges.
func NewNetwork(airports []Airport, flights []Flight, defaultMinConnection int) (*Network, error) {
	if defaultMinConnection < 0 {
		return nil, fmt.Errorf("new network: default min connection %d must be non-negative", defaultMinConnection)
	}

	n := &Network{
		airports:             make([]Airport, 0, len(airports)),
		flights:              make([]Flight, 0, len(flights)),
		defaultMinConnection: defaultMinConnection,
		byCode:               make(map[string]int, len(airports)),
		outgoing:             make([][]int, len(airports)),
		flightFrom:           make([]int, 0, len(flights)),
		flightTo:             make([]int, 0, len(flights)),
	}

	for i, a := range airports {
		a.Code = normalizeCode(a.Code)
		if a.Code == "" {
			return nil, fmt.Errorf("new network: airport at index %d has empty code", i)
		}
		if _, ok := n.byCode[a.Code]; ok {
			return nil, fmt.Errorf("new network: airport %q: %w", a.Code, ErrDuplicateAirport)
		}
		if a.MinConnectionMinutes != nil {
			if *a.MinConnectionMinutes < 0 {
				return nil, fmt.Errorf("new network: airport %q min connection %d must be non-negative", a.Code, *a.MinConnectionMinutes)
			}
			mct := *a.MinConnectionMinutes
			a.MinConnectionMinutes = &mct
		}
		n.byCode[a.Code] = len(n.airports)
		n.airports = append(n.airports, a)
	}

	for i, f := range flights {
		f.From = normalizeCode(f.From)
		f.To = normalizeCode(f.To)

		from, ok := n.byCode[f.From]
		if !ok {
			return nil, fmt.Errorf("new network: flight %d origin %q: %w", i, f.From, ErrUnknownAirport)
		}
		to, ok := n.byCode[f.To]
		if !ok {
			return nil, fmt.Errorf("new network: flight %d destination %q: %w", i, f.To, ErrUnknownAirport)
		}
		if err := validateFlight(f); err != nil {
			return nil, fmt.Errorf("new network: flight %d %s->%s: %w", i, f.From, f.To, err)
		}
		f.Duration = TimeDelta(f.Departure, f.Arrival)

		idx := len(n.flights)
		n.flights = append(n.flights, f)
		n.flightFrom = append(n.flightFrom, from)
		n.flightTo = append(n.flightTo, to)
		if f.Available {
			n.outgoing[from] = append(n.outgoing[from], idx)
		}
	}

	return n, nil
}

func validateFlight(f Flight) error {
	if !f.Day.Valid() {
		return fmt.Errorf("day %d: %w", int(f.Day), ErrUnknownWeekday)
	}
	if !ValidClock(f.Departure) || !ValidClock(f.Arrival) {
		return fmt.Errorf("departure %d arrival %d: %w", f.Departure, f.Arrival, ErrMalformedTime)
	}
	if f.From == f.To {
		return fmt.Errorf("origin equals destination: %w", ErrInvalidFlight)
	}
	if f.Cost < 0 || f.DistanceKm < 0 {
		return fmt.Errorf("cost %.2f distance %.2f: %w", f.Cost, f.DistanceKm, ErrInvalidFlight)
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (n *Network) NumAirports() int { return len(n.airports) }
func (n *Network) NumFlights() int  { return len(n.flights) }

// DefaultMinConnection is the global minimum connection time in minutes.
func (n *Network) DefaultMinConnection() int { return n.defaultMinConnection }

// AirportIndex resolves a code (case-insensitive) to its internal handle.
func (n *Network) AirportIndex(code string) (int, bool) {
	i, ok := n.byCode[normalizeCode(code)]
	return i, ok
}

// MustAirportIndex is AirportIndex returning ErrUnknownAirport for absent codes.
func (n *Network) MustAirportIndex(code string) (int, error) {
	i, ok := n.AirportIndex(code)
	if !ok {
		return -1, fmt.Errorf("airport %q: %w", code, ErrUnknownAirport)
	}
	return i, nil
}

func (n *Network) Airport(i int) Airport { return n.airports[i] }
func (n *Network) Flight(i int) Flight   { return n.flights[i] }

// Origin returns the airport index a flight departs from.
func (n *Network) Origin(flight int) int { return n.flightFrom[flight] }

// Destination returns the airport index a flight arrives at.
func (n *Network) Destination(flight int) int { return n.flightTo[flight] }

// Outgoing returns the indexes of available flights departing airport i.
// The returned slice must not be modified.
func (n *Network) Outgoing(i int) []int { return n.outgoing[i] }

// MinConnectionAt resolves the minimum connection time of airport i.
func (n *Network) MinConnectionAt(i int) int {
	if mct := n.airports[i].MinConnectionMinutes; mct != nil {
		return *mct
	}
	return n.defaultMinConnection
}

// Airports returns a copy of all airports in load order.
func (n *Network) Airports() []Airport {
	out := make([]Airport, len(n.airports))
	copy(out, n.airports)
	return out
}

// Flights returns a copy of all flight instances in load order.
func (n *Network) Flights() []Flight {
	out := make([]Flight, len(n.flights))
	copy(out, n.flights)
	return out
}

// ValidatePath checks that path is a contiguous chain of known flights.
func (n *Network) ValidatePath(path []int) error {
	for i, fi := range path {
		if fi < 0 || fi >= len(n.flights) {
			return fmt.Errorf("validate path: flight index %d out of range", fi)
		}
		if i == 0 {
			continue
		}
		prev := n.flights[path[i-1]]
		if prev.To != n.flights[fi].From {
			return errors.New("validate path: segments are not contiguous")
		}
	}
	return nil
}
