package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"visit-schedule-service/internal/ports"
)

// SQLite-backed implementation of the OriginRepository port.
type SqliteOriginRepository struct{ DB *sql.DB }

func NewSqliteOriginRepository(db *sql.DB) *SqliteOriginRepository {
	return &SqliteOriginRepository{DB: db}
}

// Return up to limit saved origins, most recently used first.
func (s *SqliteOriginRepository) ListOrigins(ctx context.Context, limit int) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite origin repository: DB is nil")
	}
	if limit <= 0 {
		return []string{}, nil
	}

	query := `
	SELECT origin
	FROM saved_origins
	ORDER BY used_at DESC, origin
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list origins: query saved_origins table: %w", err)
	}
	defer rows.Close()

	return scanOrigins(rows, limit)
}

// Insert origin or refresh its last use.
func (s *SqliteOriginRepository) SaveOrigin(ctx context.Context, origin string, usedAt time.Time) error {
	if s.DB == nil {
		return errors.New("sqlite origin repository: DB is nil")
	}

	origin = strings.TrimSpace(origin)
	if origin == "" {
		return errors.New("save origin: origin must not be empty")
	}

	query := `
	INSERT OR REPLACE INTO saved_origins (
		origin,
		used_at
	)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, origin, usedAt.UnixNano()); err != nil {
		return fmt.Errorf("save origin %q: %w", origin, err)
	}

	return nil
}

func scanOrigins(rows *sql.Rows, limit int) ([]string, error) {
	origins := make([]string, 0, limit)
	for rows.Next() {
		var origin string
		if err := rows.Scan(&origin); err != nil {
			return nil, fmt.Errorf("list origins: scan row: %w", err)
		}
		origins = append(origins, origin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list origins: row iteration: %w", err)
	}

	return origins, nil
}

var (
	_ ports.OriginRepository = (*SqliteOriginRepository)(nil)
	_ ports.OriginRepository = (*SQLOriginRepository)(nil)
)
