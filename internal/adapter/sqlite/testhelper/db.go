// Package testhelper provides a migrated temp-file database for
// repository and transport tests.
package testhelper

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mverbeek/phonebook-backend/internal/adapter/sqlite"
	"github.com/mverbeek/phonebook-backend/internal/config"
)

// SetupTestDB opens a fresh SQLite database in a per-test temp directory,
// applies all goose migrations, and closes it via t.Cleanup.
func SetupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 5 * time.Second,
	}

	db, err := sqlite.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("testhelper: open test DB: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := sqlite.Migrate(ctx, db); err != nil {
		t.Fatalf("testhelper: migrate test DB: %v", err)
	}

	return db
}
