package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"visit-schedule-service/internal/ports"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlaceCacheQuery := `
	CREATE TABLE IF NOT EXISTS place_cache (
        text TEXT PRIMARY KEY,
        place_id TEXT NOT NULL
    );
	`

	createDurationCacheQuery := `
	CREATE TABLE IF NOT EXISTS duration_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        mode TEXT NOT NULL,
        avoid_tolls INTEGER NOT NULL,
        depart_at INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        cached_at INTEGER NOT NULL,
        PRIMARY KEY (origin, destination, mode, avoid_tolls, depart_at)
    );
	`

	createSavedOriginsQuery := `
	CREATE TABLE IF NOT EXISTS saved_origins (
		origin TEXT PRIMARY KEY,
		used_at INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_saved_origins_used_at
    ON saved_origins(used_at DESC);
	`

	statements := []string{
		createPlaceCacheQuery,
		createDurationCacheQuery,
		createSavedOriginsQuery,
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

type OriginSeed struct {
	Origin string `json:"origin"`
}

// Populate the saved origins from a JSON file. The first entry becomes the
// most recently used one.
func SeedFromJSON(ctx context.Context, repo ports.OriginRepository, jsonPath string, now time.Time) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed origins: read %q: %w", jsonPath, err)
	}

	var data []OriginSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed origins: parse json: %w", err)
	}

	origins := make([]string, 0, len(data))
	for i, item := range data {
		origin := strings.TrimSpace(item.Origin)
		if origin == "" {
			return fmt.Errorf("seed origins: item at index %d: origin cannot be empty", i+1)
		}
		origins = append(origins, origin)
	}

	// Oldest first, so the list order survives identical clocks.
	for i := len(origins) - 1; i >= 0; i-- {
		usedAt := now.Add(-time.Duration(i) * time.Second)
		if err := repo.SaveOrigin(ctx, origins[i], usedAt); err != nil {
			return fmt.Errorf("seed origins: origin=%q: %w", origins[i], err)
		}
	}

	return nil
}
