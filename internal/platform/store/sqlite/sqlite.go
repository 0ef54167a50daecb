// Package sqlite provides an embedded sqlite client on modernc.org/sqlite
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Config configures the sqlite database
type Config struct {
	Path        string
	BusyTimeout time.Duration
}

// DB is a sqlite handle plus the settings it was opened with
type DB struct {
	SQL    *sql.DB
	Memory bool
}

var sqlOpen = sql.Open

// DSN renders cfg into a modernc connection string with the pragmas we rely on
func DSN(cfg Config) string {
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	pragmas := []string{
		fmt.Sprintf("_pragma=busy_timeout(%d)", busy.Milliseconds()),
		"_pragma=foreign_keys(1)",
	}
	if !IsMemory(cfg.Path) {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)", "_pragma=synchronous(NORMAL)")
	}
	sep := "?"
	if strings.Contains(cfg.Path, "?") {
		sep = "&"
	}
	return cfg.Path + sep + strings.Join(pragmas, "&")
}

// IsMemory reports whether path names an in-memory database
func IsMemory(path string) bool {
	return strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory")
}

// Open opens and pings the database
// in-memory databases are pinned to one connection so every query sees the same data
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	db, err := sqlOpen("sqlite", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	mem := IsMemory(cfg.Path)
	if mem {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(8)
		db.SetMaxIdleConns(4)
		db.SetConnMaxIdleTime(15 * time.Minute)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return &DB{SQL: db, Memory: mem}, nil
}

// Close closes the handle
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}
