// Package storetest opens migrated stores for tests
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"cinebot/internal/platform/store"
	"cinebot/internal/platform/store/migrate"
)

// Memory opens a migrated in-memory sqlite store pinned to one connection
func Memory(t testing.TB) *store.Store {
	t.Helper()
	return open(t, store.Config{SQLite: store.SQLiteConfig{Enabled: true, Path: ":memory:"}})
}

// SQLite opens a migrated file backed sqlite store in a temp dir
// use it when a test needs several connections at once
func SQLite(t testing.TB) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cinebot.db")
	return open(t, store.Config{SQLite: store.SQLiteConfig{Enabled: true, Path: path}})
}

func open(t testing.TB, cfg store.Config) *store.Store {
	t.Helper()
	ctx := context.Background()
	s, err := store.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("storetest: open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	if _, err := migrate.Up(ctx, s.DB(), s.Dialect); err != nil {
		t.Fatalf("storetest: migrate: %v", err)
	}
	return s
}
