package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"visit-schedule-service/internal/platform/obs"
	"visit-schedule-service/internal/ports"
)

// SQLDurationCache is a Postgres-backed cache of resolved leg durations.
// Entries older than TTL are ignored; a zero TTL keeps them forever.
type SQLDurationCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

func NewSQLDurationCache(db *sql.DB, ttl time.Duration) *SQLDurationCache {
	return &SQLDurationCache{DB: db, TTL: ttl, now: time.Now}
}

func (s *SQLDurationCache) Get(ctx context.Context, key ports.DurationKey) (_ int, _ bool, err error) {
	defer obs.Time(ctx, "duration.cache.Get")(&err)

	if s.DB == nil {
		return 0, false, errors.New("duration cache: db is nil")
	}
	if err := validDurationKey(key); err != nil {
		return 0, false, err
	}

	q := `
	SELECT duration_seconds
    FROM duration_cache
    WHERE origin = $1
        AND destination = $2
        AND mode = $3
        AND avoid_tolls = $4
        AND depart_at = $5
        AND cached_at >= $6;
	`

	var seconds int
	err = s.DB.QueryRowContext(ctx, q,
		string(key.Origin), string(key.Destination), string(key.Mode),
		key.AvoidTolls, key.DepartAt.Unix(), oldestAllowed(s.now(), s.TTL),
	).Scan(&seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get duration cache: query duration_cache table: %w", err)
	}

	return seconds, true, nil
}

func (s *SQLDurationCache) Put(ctx context.Context, key ports.DurationKey, seconds int) (err error) {
	defer obs.Time(ctx, "duration.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("duration cache: db is nil")
	}
	if err := validDurationKey(key); err != nil {
		return err
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO duration_cache (origin, destination, mode, avoid_tolls, depart_at, duration_seconds, cached_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (origin, destination, mode, avoid_tolls, depart_at) DO UPDATE
	SET duration_seconds = EXCLUDED.duration_seconds,
		cached_at = EXCLUDED.cached_at;
	`,
		string(key.Origin), string(key.Destination), string(key.Mode),
		key.AvoidTolls, key.DepartAt.Unix(), seconds, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert duration cache key=%q: %w", durationKeyString(key), err)
	}

	return nil
}

// oldestAllowed returns the smallest cached_at still considered fresh.
func oldestAllowed(now time.Time, ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return now.Add(-ttl).Unix()
}
