// Package sqlite provides the embedded relational store and shared
// persistence plumbing (transactions, migrations, error mapping).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/mverbeek/phonebook-backend/internal/config"
)

// DB wraps *sql.DB and remembers the backing file path. The file's
// modification time is the persistence timestamp exposed to the XML
// directory feeds as Last-Modified.
type DB struct {
	*sql.DB
	path string
}

// Open opens (creating if necessary) the SQLite database file, applies
// connection pragmas, and pings it for fail-fast validation.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		url.PathEscape(cfg.Path), cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite serializes writers itself; a single connection avoids
	// SQLITE_BUSY churn between in-process writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{DB: db, path: cfg.Path}, nil
}

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

// ModTime returns the modification time of the database file.
func (d *DB) ModTime() (time.Time, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat database file: %w", err)
	}
	return info.ModTime(), nil
}
