package repositories

import (
	"context"
	"fmt"

	"flight-route-service/internal/domain"
	"flight-route-service/internal/ports"

	"github.com/r3labs/diff/v3"
)

type networkSnapshot struct {
	DefaultMinConnection int          `diff:"default_min_connection"`
	Airports             []airportRow `diff:"airports"`
	Flights              []flightRow  `diff:"flights"`
}

type airportRow struct {
	Code          string  `diff:"code,identifier"`
	Name          string  `diff:"name"`
	Lat           float64 `diff:"lat"`
	Lon           float64 `diff:"lon"`
	MinConnection *int    `diff:"min_connection"`
}

type flightRow struct {
	ID         int     `diff:"id,identifier"`
	Route      string  `diff:"route"`
	Day        string  `diff:"day"`
	Departure  int     `diff:"departure"`
	Arrival    int     `diff:"arrival"`
	Cost       float64 `diff:"cost"`
	DistanceKm float64 `diff:"distance_km"`
	Available  bool    `diff:"available"`
}

func snapshot(n *domain.Network) networkSnapshot {
	s := networkSnapshot{DefaultMinConnection: n.DefaultMinConnection()}
	for _, a := range n.Airports() {
		s.Airports = append(s.Airports, airportRow{
			Code:          a.Code,
			Name:          a.Name,
			Lat:           a.Location.Lat,
			Lon:           a.Location.Lon,
			MinConnection: a.MinConnectionMinutes,
		})
	}
	for i, f := range n.Flights() {
		s.Flights = append(s.Flights, flightRow{
			ID:         i,
			Route:      f.From + "->" + f.To,
			Day:        f.Day.String(),
			Departure:  f.Departure,
			Arrival:    f.Arrival,
			Cost:       f.Cost,
			DistanceKm: f.DistanceKm,
			Available:  f.Available,
		})
	}
	return s
}

// VerifyNetwork reloads the network through repo and lists every difference
// from want. An empty changelog means the stored copy is faithful.
func VerifyNetwork(ctx context.Context, repo ports.NetworkRepository, want *domain.Network) (diff.Changelog, error) {
	got, err := repo.LoadNetwork(ctx)
	if err != nil {
		return nil, fmt.Errorf("verify network: %w", err)
	}

	changes, err := diff.Diff(snapshot(want), snapshot(got))
	if err != nil {
		return nil, fmt.Errorf("verify network: diff: %w", err)
	}
	return changes, nil
}
