package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"visit-schedule-service/internal/platform/obs"
)

// Postgres-backed implementation of the OriginRepository port.
type SQLOriginRepository struct{ DB *sql.DB }

func NewSQLOriginRepository(db *sql.DB) *SQLOriginRepository {
	return &SQLOriginRepository{DB: db}
}

func (s *SQLOriginRepository) ListOrigins(ctx context.Context, limit int) (_ []string, err error) {
	defer obs.Time(ctx, "origins.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql origin repository: DB is nil")
	}
	if limit <= 0 {
		return []string{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT origin
	FROM saved_origins
	ORDER BY used_at DESC, origin
	LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list origins: query saved_origins table: %w", err)
	}
	defer rows.Close()

	return scanOrigins(rows, limit)
}

func (s *SQLOriginRepository) SaveOrigin(ctx context.Context, origin string, usedAt time.Time) (err error) {
	defer obs.Time(ctx, "origins.Save")(&err)

	if s.DB == nil {
		return errors.New("sql origin repository: DB is nil")
	}

	origin = strings.TrimSpace(origin)
	if origin == "" {
		return errors.New("save origin: origin must not be empty")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO saved_origins (origin, used_at)
	VALUES ($1, $2)
	ON CONFLICT (origin) DO UPDATE
	SET used_at = EXCLUDED.used_at;
	`, origin, usedAt.UTC())
	if err != nil {
		return fmt.Errorf("save origin %q: %w", origin, err)
	}

	return nil
}
