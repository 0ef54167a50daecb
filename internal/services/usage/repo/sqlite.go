package repo

import (
	"context"
	"time"

	"cinebot/internal/modkit/repokit"
	ptime "cinebot/internal/platform/time"
)

type (
	// SQLite binds the repo to a sqlite Queryer
	SQLite struct{}
	// liteQueries implements Repo for sqlite
	liteQueries struct{ q repokit.Queryer }
)

// NewSQLite returns a binder that can bind the repo to a Queryer or TxRunner
func NewSQLite() repokit.Binder[Repo] { return SQLite{} }

// Bind wires a Queryer to the repo
func (SQLite) Bind(q repokit.Queryer) Repo { return &liteQueries{q: q} }

func (r *liteQueries) Insert(ctx context.Context, userID int64, query string, at time.Time) error {
	const sql = `insert into usage_records (user_id, query, recorded_at) values (?, ?, ?)`
	_, err := r.q.Exec(ctx, sql, userID, query, ptime.ISO(at))
	return err
}

// Counts compares fixed width ISO text, which orders the same as the instants
func (r *liteQueries) Counts(ctx context.Context, since time.Time) (Counts, error) {
	const sql = `
select
	count(*),
	count(distinct user_id),
	coalesce(sum(case when recorded_at > ? then 1 else 0 end), 0)
from usage_records
`
	var c Counts
	err := r.q.QueryRow(ctx, sql, ptime.ISO(since)).Scan(&c.Total, &c.UniqueUsers, &c.After)
	return c, err
}
