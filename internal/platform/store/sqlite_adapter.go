package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cinebot/internal/platform/store/sqlite"
)

// sqlQueryer is the part of *sql.DB and *sql.Tx a querier needs
type sqlQueryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteAdapter serves RowQuerier and TxRunner from a database/sql handle
type sqliteAdapter struct {
	sqlQuerier
	db *sqlite.DB
}

func newSQLiteAdapter(db *sqlite.DB, t tracing) *sqliteAdapter {
	return &sqliteAdapter{sqlQuerier: sqlQuerier{db: db.SQL, tracing: t}, db: db}
}

func (a *sqliteAdapter) Ping(ctx context.Context) error { return a.db.SQL.PingContext(ctx) }

func (a *sqliteAdapter) Close() error { return a.db.Close() }

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlQuerier{db: tx, tracing: a.tracing}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqlQuerier runs statements on a db or a tx
type sqlQuerier struct {
	db sqlQueryer
	tracing
}

func (q sqlQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := q.db.ExecContext(ctx, query, args...)
	q.done(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	return affected(n), err
}

func (q sqlQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.db.QueryContext(ctx, query, args...)
	q.done(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{rs}, nil
}

func (q sqlQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	return q.row(ctx, query, args, time.Now(), q.db.QueryRowContext(ctx, query, args...))
}

// sqlRows narrows *sql.Rows to the Rows contract
type sqlRows struct{ *sql.Rows }

func (r sqlRows) Close() { _ = r.Rows.Close() }

func (r sqlRows) Columns() []string {
	cols, _ := r.Rows.Columns()
	return cols
}

// affected reports a database/sql row count as a CommandTag
type affected int64

func (n affected) String() string      { return fmt.Sprintf("ROWS %d", int64(n)) }
func (n affected) RowsAffected() int64 { return int64(n) }
