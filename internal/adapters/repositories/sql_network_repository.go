package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"flight-route-service/internal/domain"
	platformdb "flight-route-service/internal/platform/db"
)

// SQL-backed implementation of the NetworkRepository port.
type SQLNetworkRepository struct {
	DB                   *sql.DB
	Dialect              platformdb.Dialect
	DefaultMinConnection int
}

func NewSQLNetworkRepository(db *sql.DB, dialect platformdb.Dialect, defaultMinConnection int) *SQLNetworkRepository {
	return &SQLNetworkRepository{DB: db, Dialect: dialect, DefaultMinConnection: defaultMinConnection}
}

// Read airports, flight instances and settings and build the network.
func (r *SQLNetworkRepository) LoadNetwork(ctx context.Context) (*domain.Network, error) {
	if r.DB == nil {
		return nil, errors.New("sql network repository: DB is nil")
	}

	airports, err := r.listAirports(ctx)
	if err != nil {
		return nil, err
	}
	flights, err := r.listFlights(ctx)
	if err != nil {
		return nil, err
	}
	mct, err := r.defaultMinConnection(ctx)
	if err != nil {
		return nil, err
	}

	n, err := domain.NewNetwork(airports, flights, mct)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	return n, nil
}

func (r *SQLNetworkRepository) listAirports(ctx context.Context) ([]domain.Airport, error) {
	query := `
	SELECT
		code,
		name,
		lat,
		lon,
		min_connection
	FROM airports
	ORDER BY position;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list airports: query airports table: %w", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0, 64)
	for rows.Next() {
		var a domain.Airport
		var mct sql.NullInt64
		if err := rows.Scan(&a.Code, &a.Name, &a.Location.Lat, &a.Location.Lon, &mct); err != nil {
			return nil, fmt.Errorf("list airports: scan row: %w", err)
		}
		if mct.Valid {
			m := int(mct.Int64)
			a.MinConnectionMinutes = &m
		}
		airports = append(airports, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list airports: row iteration: %w", err)
	}

	return airports, nil
}

func (r *SQLNetworkRepository) listFlights(ctx context.Context) ([]domain.Flight, error) {
	query := `
	SELECT
		origin,
		destination,
		weekday,
		departure,
		arrival,
		cost,
		distance_km,
		available
	FROM flight_instances
	ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list flights: query flight_instances table: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0, 256)
	for rows.Next() {
		var f domain.Flight
		var day int
		if err := rows.Scan(&f.From, &f.To, &day, &f.Departure, &f.Arrival, &f.Cost, &f.DistanceKm, &f.Available); err != nil {
			return nil, fmt.Errorf("list flights: scan row: %w", err)
		}
		f.Day = domain.Weekday(day)
		flights = append(flights, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flights: row iteration: %w", err)
	}

	return flights, nil
}

func (r *SQLNetworkRepository) defaultMinConnection(ctx context.Context) (int, error) {
	query := r.Dialect.Rebind(`SELECT value FROM network_settings WHERE key = ?;`)

	var value string
	err := r.DB.QueryRowContext(ctx, query, settingDefaultMinConnection).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return r.DefaultMinConnection, nil
	}
	if err != nil {
		return 0, fmt.Errorf("default min connection: query settings: %w", err)
	}

	mct, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("default min connection: parse %q: %w", value, err)
	}
	return mct, nil
}
