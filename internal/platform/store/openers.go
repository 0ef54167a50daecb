package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"

	chx "cinebot/internal/platform/store/ch"
	"cinebot/internal/platform/store/pg"
	"cinebot/internal/platform/store/sqlite"
)

var (
	pingBackoffStart   = 150 * time.Millisecond
	pingBackoffCeiling = 2 * time.Second
)

// openPG opens pg, waits for it to answer and publishes the adapter on s
func openPG(ctx context.Context, cfg Config, s *Store) error {
	pool, err := pg.Open(ctx, pg.Config{URL: cfg.PG.URL, MaxConns: cfg.PG.MaxConns})
	if err != nil {
		return err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts == 0 {
		attempts = 8
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	// ping the pool directly so boot does not emit trace lines
	err = retry.Do(
		func() error {
			toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()
			return pool.Ping(toCtx)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(pingBackoffStart),
		retry.MaxDelay(pingBackoffCeiling),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.Log.Warn().Uint("attempt", n+1).Err(err).Msg("postgres not ready")
		}),
	)
	if err != nil {
		pool.Close()
		return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
	}

	s.SQL = newPGAdapter(pool, s.tracingFor(cfg.PG.LogSQL, "pg", cfg.PG.SlowQueryMs))
	s.Dialect = DialectPostgres
	s.db = pg.StdDB(pool)
	return nil
}

// openSQLite opens the embedded database and publishes the adapter on s
func openSQLite(ctx context.Context, cfg Config, s *Store) error {
	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
	})
	if err != nil {
		return err
	}
	s.SQL = newSQLiteAdapter(db, s.tracingFor(cfg.SQLite.LogSQL, "sqlite", cfg.SQLite.SlowQueryMs))
	s.Dialect = DialectSQLite
	s.db = db.SQL
	return nil
}

// tracingFor picks the tracer for a backend, WithTracer wins over LogSQL
func (s *Store) tracingFor(logSQL bool, component string, slowMs int) tracing {
	t := s.tracer
	if t == nil && logSQL {
		t = LogTracer(s.Log, component)
	}
	return newTracing(t, slowMs)
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	name := cfg.CH.ClientName
	if name == "" {
		name = cfg.AppName
	}
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: name,
		ClientTag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return chAdapter{c}, nil
}
