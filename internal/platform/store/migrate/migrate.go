// Package migrate applies the embedded schema to the configured sql backend
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/pressly/goose/v3"

	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
	"cinebot/internal/platform/store"
)

//go:embed sql/pg/*.sql sql/sqlite/*.sql
var embedded embed.FS

// Migration is one schema step and whether it has been applied
type Migration struct {
	Version   int64     `json:"version" yaml:"version"`
	Name      string    `json:"name" yaml:"name"`
	Applied   bool      `json:"applied" yaml:"applied"`
	AppliedAt time.Time `json:"applied_at,omitzero" yaml:"applied_at,omitempty"`
}

func provider(db *sql.DB, d store.Dialect) (*goose.Provider, error) {
	if db == nil {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "migrate: no sql backend configured")
	}
	var (
		dialect goose.Dialect
		dir     string
	)
	switch d {
	case store.DialectPostgres:
		dialect, dir = goose.DialectPostgres, "sql/pg"
	case store.DialectSQLite:
		dialect, dir = goose.DialectSQLite3, "sql/sqlite"
	default:
		return nil, perr.InvalidArgf("migrate: unsupported dialect %q", d)
	}
	sub, err := fs.Sub(embedded, dir)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db, sub)
}

// Up applies all pending migrations and returns the resulting schema version
func Up(ctx context.Context, db *sql.DB, d store.Dialect) (int64, error) {
	log := logger.Named("migrate")

	p, err := provider(db, d)
	if err != nil {
		return 0, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeDB, "migrate up")
	}
	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Str("file", r.Source.Path).
			Dur("took", r.Duration).
			Msg("migration applied")
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeDB, "migrate version")
	}
	log.Debug().Str("dialect", string(d)).Int64("version", v).Msg("schema up to date")
	return v, nil
}

// Status reports every known migration in version order
func Status(ctx context.Context, db *sql.DB, d store.Dialect) ([]Migration, error) {
	p, err := provider(db, d)
	if err != nil {
		return nil, err
	}
	st, err := p.Status(ctx)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "migrate status")
	}
	out := make([]Migration, 0, len(st))
	for _, s := range st {
		out = append(out, Migration{
			Version:   s.Source.Version,
			Name:      path.Base(s.Source.Path),
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}

// MustUp is Up for process boot, it panics through the logger on failure
func MustUp(ctx context.Context, s *store.Store) int64 {
	v, err := Up(ctx, s.DB(), s.Dialect)
	if err != nil {
		logger.Get().Panic().Err(err).Msg(fmt.Sprintf("migrations failed for %s", s.Dialect))
	}
	return v
}
