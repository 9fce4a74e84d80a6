package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-schedule-service/internal/platform/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(conn))
	return conn
}

func TestInitSchema_Idempotent(t *testing.T) {
	conn := newTestDB(t)

	require.NoError(t, InitSchema(conn))
	assert.Error(t, InitSchema(nil))
}

func TestSqliteOriginRepository_MostRecentFirst(t *testing.T) {
	repo := NewSqliteOriginRepository(newTestDB(t))
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveOrigin(ctx, "Home", t0))
	require.NoError(t, repo.SaveOrigin(ctx, "Office", t0.Add(time.Minute)))
	require.NoError(t, repo.SaveOrigin(ctx, " Home ", t0.Add(2*time.Minute)))

	got, err := repo.ListOrigins(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Home", "Office"}, got)

	got, err = repo.ListOrigins(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Home"}, got)

	assert.Error(t, repo.SaveOrigin(ctx, "  ", t0))
}

func TestSeedFromJSON(t *testing.T) {
	repo := NewSqliteOriginRepository(newTestDB(t))
	path := filepath.Join(t.TempDir(), "origins.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"origin":"Hakata Station"},{"origin":" Tenjin "}]`), 0o644))

	require.NoError(t, SeedFromJSON(context.Background(), repo, path, time.Now()))

	got, err := repo.ListOrigins(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hakata Station", "Tenjin"}, got)
}

func TestSeedFromJSON_Invalid(t *testing.T) {
	repo := NewSqliteOriginRepository(newTestDB(t))
	dir := t.TempDir()

	blank := filepath.Join(dir, "blank.json")
	require.NoError(t, os.WriteFile(blank, []byte(`[{"origin":""}]`), 0o644))
	assert.Error(t, SeedFromJSON(context.Background(), repo, blank, time.Now()))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0o644))
	assert.Error(t, SeedFromJSON(context.Background(), repo, broken, time.Now()))

	assert.Error(t, SeedFromJSON(context.Background(), repo, filepath.Join(dir, "missing.json"), time.Now()))
}
