//go:build integration_pg

package storetest

import (
	"testing"

	"cinebot/internal/platform/store"
	"cinebot/internal/platform/testkit"
)

// Postgres starts a disposable postgres and returns a migrated store over it
func Postgres(t *testing.T) *store.Store {
	t.Helper()
	cfg, err := store.ParseDSN(testkit.Start(t, testkit.Postgres))
	if err != nil {
		t.Fatalf("storetest: dsn: %v", err)
	}
	cfg.PG.MaxConns = 8
	return open(t, cfg)
}
