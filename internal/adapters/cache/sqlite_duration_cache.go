package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"visit-schedule-service/internal/ports"
)

// SQLite backed cache of resolved leg durations. Used when no Redis is
// configured. Entries older than TTL are ignored; a zero TTL keeps them forever.
type SqliteDurationCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

func NewSqliteDurationCache(db *sql.DB, ttl time.Duration) *SqliteDurationCache {
	return &SqliteDurationCache{DB: db, TTL: ttl, now: time.Now}
}

func (s *SqliteDurationCache) Get(ctx context.Context, key ports.DurationKey) (int, bool, error) {
	if s.DB == nil {
		return 0, false, errors.New("duration cache: db is nil")
	}
	if err := validDurationKey(key); err != nil {
		return 0, false, err
	}

	q := `
	SELECT duration_seconds
    FROM duration_cache
    WHERE origin = ?
        AND destination = ?
        AND mode = ?
        AND avoid_tolls = ?
        AND depart_at = ?
        AND cached_at >= ?;
	`

	var seconds int
	err := s.DB.QueryRowContext(ctx, q,
		string(key.Origin), string(key.Destination), string(key.Mode),
		boolInt(key.AvoidTolls), key.DepartAt.Unix(), oldestAllowed(s.now(), s.TTL),
	).Scan(&seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get duration cache: query duration_cache table: %w", err)
	}

	return seconds, true, nil
}

func (s *SqliteDurationCache) Put(ctx context.Context, key ports.DurationKey, seconds int) error {
	if s.DB == nil {
		return errors.New("duration cache: db is nil")
	}
	if err := validDurationKey(key); err != nil {
		return err
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO duration_cache (
        origin,
        destination,
        mode,
        avoid_tolls,
        depart_at,
        duration_seconds,
        cached_at
    )
    VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
		string(key.Origin), string(key.Destination), string(key.Mode),
		boolInt(key.AvoidTolls), key.DepartAt.Unix(), seconds, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert duration cache key=%q: %w", durationKeyString(key), err)
	}

	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
