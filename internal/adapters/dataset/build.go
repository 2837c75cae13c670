package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"flight-route-service/internal/domain"
	"flight-route-service/internal/geo"
)

var (
	// ErrIncompleteRecord marks a record missing a required field.
	ErrIncompleteRecord = errors.New("incomplete record")
	// ErrInvalidCode marks an airport code that is not three letters.
	ErrInvalidCode = errors.New("invalid airport code")
	// ErrEmptyDataset is returned when no valid airport or no flight instance survives loading.
	ErrEmptyDataset = errors.New("no valid airports or flights")
)

// Build converts a Document into a Network. Invalid records are skipped and
// reported as warnings; only an empty result is fatal. config.min_connection_time
// overrides defaultMinConnection when present.
func Build(doc Document, defaultMinConnection int) (*domain.Network, []error, error) {
	var warnings []error
	warn := func(err error) { warnings = append(warnings, err) }

	if doc.Config != nil && doc.Config.MinConnectionTime != nil {
		defaultMinConnection = *doc.Config.MinConnectionTime
	}

	airports := make([]domain.Airport, 0, len(doc.Airports))
	locations := make(map[string]domain.Coordinates, len(doc.Airports))
	for i, rec := range doc.Airports {
		if rec.Code == nil || rec.Name == nil || rec.Latitude == nil || rec.Longitude == nil {
			warn(fmt.Errorf("airport %d: %w", i, ErrIncompleteRecord))
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(*rec.Code))
		if !ValidCode(code) {
			warn(fmt.Errorf("airport %d code %q: %w", i, *rec.Code, ErrInvalidCode))
			continue
		}
		if _, dup := locations[code]; dup {
			warn(fmt.Errorf("airport %d %q: %w", i, code, domain.ErrDuplicateAirport))
			continue
		}
		if rec.MinWaitingTime != nil && *rec.MinWaitingTime < 0 {
			warn(fmt.Errorf("airport %d %q: negative min_waiting_time %d: %w", i, code, *rec.MinWaitingTime, ErrIncompleteRecord))
			continue
		}

		loc := domain.Coordinates{Lat: *rec.Latitude, Lon: *rec.Longitude}
		locations[code] = loc
		airports = append(airports, domain.Airport{
			Code:                 code,
			Name:                 *rec.Name,
			Location:             loc,
			MinConnectionMinutes: rec.MinWaitingTime,
		})
	}

	var flights []domain.Flight
	for i, rec := range doc.Flights {
		if rec.From == nil || rec.To == nil || rec.BaseCost == nil || rec.Schedule == nil {
			warn(fmt.Errorf("flight %d: %w", i, ErrIncompleteRecord))
			continue
		}
		from := strings.ToUpper(strings.TrimSpace(*rec.From))
		to := strings.ToUpper(strings.TrimSpace(*rec.To))
		if !ValidCode(from) || !ValidCode(to) {
			warn(fmt.Errorf("flight %d %q->%q: %w", i, *rec.From, *rec.To, ErrInvalidCode))
			continue
		}
		fromLoc, okFrom := locations[from]
		toLoc, okTo := locations[to]
		if !okFrom || !okTo {
			warn(fmt.Errorf("flight %d %s->%s: %w", i, from, to, domain.ErrUnknownAirport))
			continue
		}
		if from == to || *rec.BaseCost < 0 || (rec.Distance != nil && *rec.Distance < 0) {
			warn(fmt.Errorf("flight %d %s->%s: %w", i, from, to, domain.ErrInvalidFlight))
			continue
		}

		distance := geo.Between(fromLoc, toLoc)
		if rec.Distance != nil {
			distance = *rec.Distance
		}

		for _, key := range unknownDays(rec.Schedule) {
			warn(fmt.Errorf("flight %d %s->%s schedule %q: %w", i, from, to, key, domain.ErrUnknownWeekday))
		}

		for _, day := range domain.Weekdays() {
			sched, ok := rec.Schedule[day.String()]
			if !ok || sched == nil {
				continue
			}
			f, ok, err := instance(from, to, day, *rec.BaseCost, distance, sched)
			if err != nil {
				warn(fmt.Errorf("flight %d %s->%s %s: %w", i, from, to, day, err))
				continue
			}
			if ok {
				flights = append(flights, f)
			}
		}
	}

	if len(airports) == 0 || len(flights) == 0 {
		return nil, warnings, fmt.Errorf("build network: %d airports, %d flights: %w", len(airports), len(flights), ErrEmptyDataset)
	}

	n, err := domain.NewNetwork(airports, flights, defaultMinConnection)
	if err != nil {
		return nil, warnings, fmt.Errorf("build network: %w", err)
	}
	return n, warnings, nil
}

// instance turns one weekday block into a flight. ok is false for days
// marked unavailable.
func instance(from, to string, day domain.Weekday, baseCost, distance float64, rec *DayRecord) (domain.Flight, bool, error) {
	if rec.DepartureTime == nil || rec.ArrivalTime == nil || rec.CostMultiplier == nil || rec.Available == nil {
		return domain.Flight{}, false, ErrIncompleteRecord
	}
	if !*rec.Available {
		return domain.Flight{}, false, nil
	}

	dep, err := domain.ParseClock(*rec.DepartureTime)
	if err != nil {
		return domain.Flight{}, false, err
	}
	arr, err := domain.ParseClock(*rec.ArrivalTime)
	if err != nil {
		return domain.Flight{}, false, err
	}
	if *rec.CostMultiplier < 0 {
		return domain.Flight{}, false, fmt.Errorf("cost multiplier %.2f: %w", *rec.CostMultiplier, domain.ErrInvalidFlight)
	}

	return domain.NewFlight(from, to, day, dep, arr, baseCost*(*rec.CostMultiplier), distance), true, nil
}

func unknownDays(schedule map[string]*DayRecord) []string {
	var out []string
	for key := range schedule {
		if _, err := domain.ParseWeekday(key); err != nil || key != strings.ToLower(key) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// ValidCode reports whether code is exactly three letters.
func ValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// FromNetwork renders a network back into a Document, one schedule entry per
// flight instance. Routes that fly the same pair on several days share a record
// only when base cost and distance match.
func FromNetwork(n *domain.Network) Document {
	doc := Document{
		Airports: make([]AirportRecord, 0, n.NumAirports()),
		Config:   &ConfigRecord{MinConnectionTime: intPtr(n.DefaultMinConnection())},
	}
	for _, a := range n.Airports() {
		doc.Airports = append(doc.Airports, AirportRecord{
			Code:           strPtr(a.Code),
			Name:           strPtr(a.Name),
			Latitude:       floatPtr(a.Location.Lat),
			Longitude:      floatPtr(a.Location.Lon),
			MinWaitingTime: a.MinConnectionMinutes,
		})
	}

	type routeKey struct {
		from, to string
		cost     float64
		distance float64
	}
	index := make(map[routeKey]int)
	for _, f := range n.Flights() {
		k := routeKey{f.From, f.To, f.Cost, f.DistanceKm}
		i, ok := index[k]
		if !ok || doc.Flights[i].Schedule[f.Day.String()] != nil {
			i = len(doc.Flights)
			doc.Flights = append(doc.Flights, FlightRecord{
				From:     strPtr(f.From),
				To:       strPtr(f.To),
				BaseCost: floatPtr(f.Cost),
				Distance: floatPtr(f.DistanceKm),
				Schedule: make(map[string]*DayRecord),
			})
			index[k] = i
		}
		doc.Flights[i].Schedule[f.Day.String()] = &DayRecord{
			DepartureTime:  strPtr(domain.FormatClock(f.Departure)),
			ArrivalTime:    strPtr(domain.FormatClock(f.Arrival)),
			CostMultiplier: floatPtr(1),
			Available:      flagPtr(f.Available),
		}
	}
	return doc
}
