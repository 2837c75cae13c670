package repositories

import (
	"database/sql"
	"errors"
	platformdb "flight-route-service/internal/platform/db"
	"fmt"
)

// Initialize the network schema. Safe to run repeatedly.
func InitSchema(db *sql.DB, dialect platformdb.Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	floatType := dialect.FloatType()

	createAirportsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS airports (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat %[1]s NOT NULL,
		lon %[1]s NOT NULL,
		min_connection INTEGER,
		position INTEGER NOT NULL
	);
	`, floatType)

	createFlightsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS flight_instances (
		id INTEGER PRIMARY KEY,
		origin TEXT NOT NULL REFERENCES airports(code),
		destination TEXT NOT NULL REFERENCES airports(code),
		weekday INTEGER NOT NULL CHECK (weekday BETWEEN 0 AND 6),
		departure INTEGER NOT NULL CHECK (departure BETWEEN 0 AND 1439),
		arrival INTEGER NOT NULL CHECK (arrival BETWEEN 0 AND 1439),
		cost %[1]s NOT NULL,
		distance_km %[1]s NOT NULL,
		available BOOLEAN NOT NULL
	);
	`, floatType)

	createSettingsQuery := `
	CREATE TABLE IF NOT EXISTS network_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	createItineraryCacheQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS itinerary_cache (
		cache_key TEXT PRIMARY KEY,
		payload %s NOT NULL,
		expires_at BIGINT NOT NULL
	);
	`, dialect.BlobType())

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_flight_instances_origin_weekday
	ON flight_instances(origin, weekday);
	`

	statements := []string{
		createAirportsQuery,
		createFlightsQuery,
		createSettingsQuery,
		createItineraryCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
