package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenCreatesFile(t *testing.T) {
	ctx := context.Background()
	pool, err := Open(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer pool.Close()

	// foreign key enforcement must be on for the cascade and restrict rules
	var fk int
	require.NoError(t, pool.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	require.Equal(t, 1, fk)
}

func TestResolveDataDirOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "custom", "nested")
	dir, fellBack, err := ResolveDataDir(override)
	require.NoError(t, err)
	require.False(t, fellBack)
	require.Equal(t, override, dir)
	require.DirExists(t, dir)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	pool, err := Open(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool))

	var versions int
	require.NoError(t, pool.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	require.Equal(t, 1, versions)

	for _, table := range []string{"suppliers", "purchase_entries", "purchase_items", "users"} {
		var count int
		require.NoError(t, pool.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count))
		require.Equal(t, 1, count, table)
	}
}
