package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"visit-schedule-service/internal/platform/obs"
)

// SQLPlaceCache is a Postgres-backed cache mapping location text to place ids.
type SQLPlaceCache struct {
	DB *sql.DB
}

func NewSQLPlaceCache(db *sql.DB) *SQLPlaceCache {
	return &SQLPlaceCache{DB: db}
}

// Fetch cached place ids for the given texts.
func (s *SQLPlaceCache) GetMany(ctx context.Context, texts []string) (_ map[string]string, err error) {
	defer obs.Time(ctx, "place.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("place cache: db is nil")
	}

	uniq := uniqueKeys(texts)
	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	q := `
	SELECT text, place_id
    FROM place_cache
    WHERE text = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
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
func (s *SQLPlaceCache) PutMany(ctx context.Context, results map[string]string) (err error) {
	defer obs.Time(ctx, "place.cache.PutMany")(&err)

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
	INSERT INTO place_cache (text, place_id, updated_at)
    VALUES ($1, $2, now())
	ON CONFLICT (text) DO UPDATE
	SET place_id = EXCLUDED.place_id,
		updated_at = EXCLUDED.updated_at;
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

func validPlaceEntry(text, placeID string) error {
	if text == "" {
		return errors.New("insert place cache: empty text key")
	}
	if placeID == "" {
		return fmt.Errorf("insert place cache text=%q: empty place id", text)
	}
	return nil
}
