// Package repo provides storage for the usage log
package repo

import (
	"context"
	"time"

	"cinebot/internal/modkit/repokit"
	"cinebot/internal/platform/store"
)

// Repo is the persistence surface for usage records
type Repo interface {
	// Insert appends one record in a single statement
	Insert(ctx context.Context, userID int64, query string, at time.Time) error
	// Counts returns total rows, distinct users and rows strictly after since
	Counts(ctx context.Context, since time.Time) (Counts, error)
}

// Counts is the raw aggregate row
type Counts struct {
	Total       int64
	UniqueUsers int64
	After       int64
}

// Binders returns the sql binder for each supported dialect
func Binders() repokit.Dialects[Repo] {
	return repokit.Dialects[Repo]{
		store.DialectPostgres: NewPG(),
		store.DialectSQLite:   NewSQLite(),
	}
}
