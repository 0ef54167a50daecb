package repo

import (
	"context"
	"time"

	"cinebot/internal/modkit/repokit"
)

type (
	// PG binds the repo to a postgres Queryer
	PG struct{}
	// pgQueries implements Repo for postgres
	pgQueries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &pgQueries{q: q} }

func (r *pgQueries) Insert(ctx context.Context, userID int64, query string, at time.Time) error {
	const sql = `
insert into usage_records (user_id, query, recorded_at)
values ($1, $2, $3)
`
	_, err := r.q.Exec(ctx, sql, userID, query, at.UTC())
	return err
}

func (r *pgQueries) Counts(ctx context.Context, since time.Time) (Counts, error) {
	const sql = `
select
	count(*),
	count(distinct user_id),
	count(*) filter (where recorded_at > $1)
from usage_records
`
	var c Counts
	err := r.q.QueryRow(ctx, sql, since.UTC()).Scan(&c.Total, &c.UniqueUsers, &c.After)
	return c, err
}
