// Package dbtest opens throwaway relational stores for package tests.
package dbtest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"perftrack/internal/platform/config"
	"perftrack/internal/platform/db"
)

// NewSQLite returns a migrated SQLite store in a temp directory. It is closed
// when the test ends.
func NewSQLite(t testing.TB) *db.DB {
	t.Helper()
	cfg := config.Config{
		RelationalDriver: config.DriverSQLite,
		RelationalDSN:    filepath.Join(t.TempDir(), "company.db"),
	}
	return open(t, cfg)
}

// NewPostgres connects to TEST_DATABASE_URL, skipping the test when unset.
func NewPostgres(t testing.TB) *db.DB {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	cfg := config.Config{
		RelationalDriver: config.DriverPostgres,
		RelationalDSN:    dbURL,
	}
	return open(t, cfg)
}

func open(t testing.TB, cfg config.Config) *db.DB {
	t.Helper()
	ctx := context.Background()
	store, err := db.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("connect %s: %v", cfg.RelationalDriver, err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := db.EnsureSchema(ctx, store); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}
