package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"flight-route-service/internal/adapters/dataset"
	"flight-route-service/internal/domain"
	platformdb "flight-route-service/internal/platform/db"
)

const settingDefaultMinConnection = "default_min_connection"

// Replace the stored network with n in a single transaction.
func SeedNetwork(ctx context.Context, db *sql.DB, dialect platformdb.Dialect, n *domain.Network) error {
	if db == nil {
		return errors.New("seed network: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// cached itineraries cite flights of the network being replaced
	for _, table := range []string{"itinerary_cache", "flight_instances", "airports"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("seed network: clear %s: %w", table, err)
		}
	}

	airportQuery := dialect.Rebind(`
	INSERT INTO airports (
		code,
		name,
		lat,
		lon,
		min_connection,
		position
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	airportStmt, err := tx.PrepareContext(ctx, airportQuery)
	if err != nil {
		return fmt.Errorf("seed network: prepare airport insert: %w", err)
	}
	defer airportStmt.Close()

	for i, a := range n.Airports() {
		var mct sql.NullInt64
		if a.MinConnectionMinutes != nil {
			mct = sql.NullInt64{Int64: int64(*a.MinConnectionMinutes), Valid: true}
		}
		if _, err := airportStmt.ExecContext(ctx, a.Code, a.Name, a.Location.Lat, a.Location.Lon, mct, i); err != nil {
			return fmt.Errorf("seed network: insert airport %s: %w", a.Code, err)
		}
	}

	flightQuery := dialect.Rebind(`
	INSERT INTO flight_instances (
		id,
		origin,
		destination,
		weekday,
		departure,
		arrival,
		cost,
		distance_km,
		available
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	flightStmt, err := tx.PrepareContext(ctx, flightQuery)
	if err != nil {
		return fmt.Errorf("seed network: prepare flight insert: %w", err)
	}
	defer flightStmt.Close()

	for i, f := range n.Flights() {
		if _, err := flightStmt.ExecContext(ctx, i, f.From, f.To, int(f.Day), f.Departure, f.Arrival, f.Cost, f.DistanceKm, f.Available); err != nil {
			return fmt.Errorf("seed network: insert flight id=%d %s->%s: %w", i, f.From, f.To, err)
		}
	}

	settingQuery := dialect.Rebind(`
	INSERT INTO network_settings (key, value)
	VALUES (?, ?)
	ON CONFLICT (key) DO UPDATE SET value = excluded.value;
	`)
	if _, err := tx.ExecContext(ctx, settingQuery, settingDefaultMinConnection, strconv.Itoa(n.DefaultMinConnection())); err != nil {
		return fmt.Errorf("seed network: upsert settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed network: commit tx: %w", err)
	}

	return nil
}

// Load a JSON or YAML dataset file and store it. Skipped records are
// returned as warnings.
func SeedFromFile(ctx context.Context, db *sql.DB, dialect platformdb.Dialect, path string, defaultMinConnection int) ([]error, error) {
	doc, err := dataset.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed from file: %w", err)
	}

	n, warnings, err := dataset.Build(doc, defaultMinConnection)
	if err != nil {
		return warnings, fmt.Errorf("seed from file %q: %w", path, err)
	}

	if err := SeedNetwork(ctx, db, dialect, n); err != nil {
		return warnings, err
	}
	return warnings, nil
}
