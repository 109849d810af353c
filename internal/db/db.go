package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	dbFileName     = "app.db"
	maxConnections = 5
)

// Open initialises the SQLite pool: create-if-missing, foreign keys on, WAL
// journaling, synchronous=NORMAL. The store serializes writers internally;
// the pool stays small on purpose.
func Open(ctx context.Context, dbFile string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000",
		url.PathEscape(dbFile))

	pool, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", dbFile, err)
	}
	pool.SetMaxOpenConns(maxConnections)
	pool.SetMaxIdleConns(maxConnections)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping sqlite at %s: %w", dbFile, err)
	}
	return pool, nil
}

// ResolveDataDir picks the directory holding the database file. The primary
// location is the OS application-data directory; when that cannot be created
// the resolver falls back to ./data beside the working directory. The second
// return reports whether the fallback was taken so callers can log it.
func ResolveDataDir(override string) (string, bool, error) {
	if override != "" {
		if err := os.MkdirAll(override, 0o755); err != nil {
			return "", false, fmt.Errorf("create data dir %s: %w", override, err)
		}
		return override, false, nil
	}

	if base, err := os.UserConfigDir(); err == nil {
		primary := filepath.Join(base, "purchasebook")
		if err := os.MkdirAll(primary, 0o755); err == nil {
			return primary, false, nil
		}
	}

	fallback := "data"
	if cwd, err := os.Getwd(); err == nil {
		fallback = filepath.Join(cwd, "data")
	}
	if err := os.MkdirAll(fallback, 0o755); err != nil {
		return "", true, fmt.Errorf("create fallback data dir %s: %w", fallback, err)
	}
	return fallback, true, nil
}

// Init resolves the data directory, opens the pool and applies migrations.
// Called once at process start; any failure here is fatal to boot.
func Init(ctx context.Context, logger *slog.Logger, dataDirOverride string) (*sql.DB, error) {
	dir, fellBack, err := ResolveDataDir(dataDirOverride)
	if err != nil {
		return nil, err
	}
	if fellBack {
		logger.Warn("primary data directory unavailable, using fallback", slog.String("dir", dir))
	}

	dbFile := filepath.Join(dir, dbFileName)
	logger.Info("opening database", slog.String("path", dbFile))

	pool, err := Open(ctx, dbFile)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return pool, nil
}
