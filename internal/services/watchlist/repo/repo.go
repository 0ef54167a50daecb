// Package repo provides sql access for watchlist entries
package repo

import (
	"context"
	"time"

	"cinebot/internal/modkit/repokit"
	"cinebot/internal/platform/store"
)

// Repo is the minimal persistence surface for the watchlist
type Repo interface {
	// Insert stores the entry unless the owner already has it and reports whether a row was written
	Insert(ctx context.Context, ownerID int64, mediaType string, itemID int64, at time.Time) (bool, error)
	List(ctx context.Context, ownerID int64) ([]Row, error)
	Delete(ctx context.Context, ownerID int64, mediaType string, itemID int64) (bool, error)
}

// Row is a stored entry
type Row struct {
	OwnerID   int64
	MediaType string
	ItemID    int64
	AddedAt   time.Time
}

// Binders returns the binder for each supported dialect
func Binders() repokit.Dialects[Repo] {
	return repokit.Dialects[Repo]{
		store.DialectPostgres: NewPG(),
		store.DialectSQLite:   NewSQLite(),
	}
}
