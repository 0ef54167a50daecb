// Package modkit builds API modules from shared deps and functional options
package modkit

import (
	"cinebot/internal/modkit/repokit"
	"cinebot/internal/platform/store"
)

// Deps holds the storage seams modules are built over
// nil fields mean the backend is not configured
type Deps struct {
	SQL     repokit.TxRunner
	Dialect store.Dialect
	CH      store.Clickhouse
}

// FromStore copies the store seams into Deps
func FromStore(s *store.Store) Deps {
	if s == nil {
		return Deps{}
	}
	return Deps{SQL: s.SQL, Dialect: s.Dialect, CH: s.CH}
}
