package migrate

import (
	"context"
	"path/filepath"
	"testing"

	"cinebot/internal/platform/store"
)

func openSQLite(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cinebot.db")
	s, err := store.Open(context.Background(), store.Config{
		SQLite: store.SQLiteConfig{Enabled: true, Path: path},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestUp_SQLiteIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openSQLite(t)

	v1, err := Up(ctx, s.DB(), s.Dialect)
	if err != nil {
		t.Fatalf("first up: %v", err)
	}
	if v1 != 2 {
		t.Fatalf("version = %d, want 2", v1)
	}
	v2, err := Up(ctx, s.DB(), s.Dialect)
	if err != nil || v2 != v1 {
		t.Fatalf("second up: v=%d err=%v", v2, err)
	}

	var n int
	if err := s.SQL.QueryRow(ctx, `select count(*) from watchlist_entries`).Scan(&n); err != nil {
		t.Fatalf("watchlist table missing: %v", err)
	}
	if err := s.SQL.QueryRow(ctx, `select count(*) from usage_records`).Scan(&n); err != nil {
		t.Fatalf("usage table missing: %v", err)
	}
}

func TestStatus_ReportsPendingThenApplied(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openSQLite(t)

	before, err := Status(ctx, s.DB(), s.Dialect)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(before) != 2 || before[0].Applied || before[0].Name != "00001_watchlist.sql" {
		t.Fatalf("unexpected pending status: %+v", before)
	}

	MustUp(ctx, s)

	after, err := Status(ctx, s.DB(), s.Dialect)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, m := range after {
		if !m.Applied || m.AppliedAt.IsZero() {
			t.Fatalf("migration not applied: %+v", m)
		}
	}
}

func TestUp_RejectsMissingBackend(t *testing.T) {
	t.Parallel()

	if _, err := Up(context.Background(), nil, store.DialectSQLite); err == nil {
		t.Fatalf("expected error for nil db")
	}
	s := openSQLite(t)
	if _, err := Up(context.Background(), s.DB(), store.Dialect("mysql")); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
}
