// Package pg opens the postgres pool behind the store
package pg

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
}

// Open parses cfg and builds a pool, it does not wait for the server
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "cinebot"
	return pgxpool.NewWithConfig(ctx, pc)
}

// StdDB exposes the pool through database/sql for goose
// closing the returned handle leaves the pool open
func StdDB(p *pgxpool.Pool) *sql.DB { return stdlib.OpenDBFromPool(p) }
