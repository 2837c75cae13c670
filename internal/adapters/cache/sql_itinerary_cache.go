package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"flight-route-service/internal/domain"
	platformdb "flight-route-service/internal/platform/db"
	"flight-route-service/internal/platform/obs"

	"go.uber.org/zap"
)

// SQLItineraryCache persists planned trips in the itinerary_cache table
// created by repositories.InitSchema.
type SQLItineraryCache struct {
	DB      *sql.DB
	Dialect platformdb.Dialect
	TTL     time.Duration

	log *zap.Logger
	now func() time.Time
}

func NewSQLItineraryCache(db *sql.DB, dialect platformdb.Dialect, ttl time.Duration, log *zap.Logger) *SQLItineraryCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLItineraryCache{DB: db, Dialect: dialect, TTL: ttl, log: log, now: time.Now}
}

// Fetch a cached plan. Expired rows count as misses and are left for Purge.
func (s *SQLItineraryCache) Get(ctx context.Context, key string) (_ *domain.TripPlan, _ bool, err error) {
	defer obs.Time(ctx, s.log, "itinerary.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("itinerary cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get itinerary cache: key must not be empty")
	}

	q := s.Dialect.Rebind(`
	SELECT payload
	FROM itinerary_cache
	WHERE cache_key = ?
		AND expires_at > ?;
	`)

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.now().Unix()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get itinerary cache: query itinerary_cache table: %w", err)
	}

	plan, err := decodePlan(payload)
	if err != nil {
		return nil, false, fmt.Errorf("get itinerary cache key=%q: %w", key, err)
	}
	return plan, true, nil
}

// Store a plan, replacing any previous entry for key.
func (s *SQLItineraryCache) Set(ctx context.Context, key string, plan *domain.TripPlan) (err error) {
	defer obs.Time(ctx, s.log, "itinerary.cache.sql.Set")(&err)

	if s.DB == nil {
		return errors.New("itinerary cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert itinerary cache: key must not be empty")
	}

	payload, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("insert itinerary cache key=%q: %w", key, err)
	}

	q := s.Dialect.Rebind(`
	INSERT INTO itinerary_cache (cache_key, payload, expires_at)
	VALUES (?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = excluded.payload,
		expires_at = excluded.expires_at;
	`)
	if _, err := s.DB.ExecContext(ctx, q, key, payload, s.expiry().Unix()); err != nil {
		return fmt.Errorf("insert itinerary cache key=%q: %w", key, err)
	}
	return nil
}

// zero or negative TTL keeps entries until the table is cleared
func (s *SQLItineraryCache) expiry() time.Time {
	if s.TTL <= 0 {
		return s.now().AddDate(100, 0, 0)
	}
	return s.now().Add(s.TTL)
}

// Purge deletes expired rows and reports how many were removed.
func (s *SQLItineraryCache) Purge(ctx context.Context) (int64, error) {
	q := s.Dialect.Rebind(`DELETE FROM itinerary_cache WHERE expires_at <= ?;`)
	res, err := s.DB.ExecContext(ctx, q, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge itinerary cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge itinerary cache: rows affected: %w", err)
	}
	return n, nil
}
