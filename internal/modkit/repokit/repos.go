// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"fmt"

	"cinebot/internal/platform/store"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)

// Dialects maps each sql dialect to the binder that speaks it
type Dialects[T any] map[store.Dialect]Binder[T]

// Pick returns the binder for d and panics when none is registered
func (ds Dialects[T]) Pick(d store.Dialect) Binder[T] {
	b, ok := ds[d]
	if !ok || b == nil {
		panic(fmt.Sprintf("repokit: no binder for dialect %q", d))
	}
	return b
}
