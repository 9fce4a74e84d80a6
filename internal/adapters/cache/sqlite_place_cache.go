package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite backed cache mapping location text to place ids.
// Text keys are expected to be normalized by the caller.
type SqlitePlaceCache struct {
	DB *sql.DB
}

func NewSqlitePlaceCache(db *sql.DB) *SqlitePlaceCache {
	return &SqlitePlaceCache{DB: db}
}

// Fetch cached place ids for the given texts.
func (s *SqlitePlaceCache) GetMany(ctx context.Context, texts []string) (map[string]string, error) {
	if s.DB == nil {
		return nil, errors.New("place cache: db is nil")
	}

	uniq := uniqueKeys(texts)
	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	ph := make([]string, len(uniq))
	args := make([]any, len(uniq))
	for i, t := range uniq {
		ph[i] = "?"
		args[i] = t
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        text,
        place_id
    FROM place_cache
    WHERE text IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get place cache: query place_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string, len(uniq))
	for rows.Next() {
		var text, placeID string
		if err := rows.Scan(&text, &placeID); err != nil {
			return nil, fmt.Errorf("get place cache: scan rows: %w", err)
		}
		out[text] = placeID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get place cache: row iteration: %w", err)
	}

	return out, nil
}

// Store text -> place id mappings in the cache.
func (s *SqlitePlaceCache) PutMany(ctx context.Context, results map[string]string) error {
	if s.DB == nil {
		return errors.New("place cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert place cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO place_cache (
        text,
        place_id
    )
    VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert place cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for text, placeID := range results {
		if err := validPlaceEntry(text, placeID); err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx, text, placeID); err != nil {
			return fmt.Errorf("insert place cache text=%q: %w", text, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert place cache commit: %w", err)
	}

	return nil
}
