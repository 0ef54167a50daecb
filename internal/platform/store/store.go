// Package store provides a unified interface to the sql and columnar backends
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cinebot/internal/platform/logger"
)

// Dialect names the sql backend behind Store.SQL
type Dialect string

const (
	// DialectNone means no sql backend is configured
	DialectNone Dialect = ""
	// DialectPostgres is a pgx pool
	DialectPostgres Dialect = "postgres"
	// DialectSQLite is a modernc sqlite database
	DialectSQLite Dialect = "sqlite"
)

// Store holds the open backends, the zero value has none
type Store struct {
	// Log is handed to tracers and retry hooks, zero is a no op logger
	Log logger.Logger

	// SQL is nil when no relational backend is configured
	SQL     TxRunner
	Dialect Dialect

	// CH is nil unless the usage log lives in clickhouse
	CH Clickhouse

	// db is a database/sql view over SQL used by migrations
	db *sql.DB

	tracer QueryTracer
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam, Insert sends rows as one batch
type Clickhouse interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects the backends enabled in cfg, the others stay nil
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if cfg.PG.Enabled && cfg.SQLite.Enabled {
		return nil, errors.New("store: postgres and sqlite are mutually exclusive")
	}
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	var err error
	switch {
	case cfg.PG.Enabled:
		err = openPG(ctx, cfg, s)
	case cfg.SQLite.Enabled:
		err = openSQLite(ctx, cfg, s)
	}
	if err != nil {
		return nil, err
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

// DB returns the database/sql view of SQL for migrations, nil when disabled
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Guard pings every configured backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for name, seam := range map[string]any{string(s.Dialect): s.SQL, "ch": s.CH} {
		p, ok := seam.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases the backends in reverse order of opening
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	// the pgx view borrows the pool, it goes first
	if s.Dialect == DialectPostgres && s.db != nil {
		errs = append(errs, s.db.Close())
	}
	if c, ok := s.SQL.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
