package repo

import (
	"context"
	"time"

	"cinebot/internal/modkit/repokit"
	"cinebot/internal/platform/store"
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

func (r *pgQueries) Insert(ctx context.Context, ownerID int64, mediaType string, itemID int64, at time.Time) (bool, error) {
	// the unique constraint decides, concurrent inserts of one key affect one row in total
	const sql = `
insert into watchlist_entries (owner_id, media_type, item_id, added_at)
values ($1, $2, $3, $4)
on conflict (owner_id, media_type, item_id) do nothing
`
	n, err := store.Affected(r.q.Exec(ctx, sql, ownerID, mediaType, itemID, at.UTC()))
	return n == 1, err
}

func (r *pgQueries) List(ctx context.Context, ownerID int64) ([]Row, error) {
	const sql = `
select owner_id, media_type, item_id, added_at
from watchlist_entries
where owner_id = $1
order by id asc
`
	return store.Many(ctx, r.q, func(rs store.Row) (Row, error) {
		var rr Row
		err := rs.Scan(&rr.OwnerID, &rr.MediaType, &rr.ItemID, &rr.AddedAt)
		return rr, err
	}, sql, ownerID)
}

func (r *pgQueries) Delete(ctx context.Context, ownerID int64, mediaType string, itemID int64) (bool, error) {
	const sql = `
delete from watchlist_entries
where owner_id = $1 and media_type = $2 and item_id = $3
`
	n, err := store.Affected(r.q.Exec(ctx, sql, ownerID, mediaType, itemID))
	return n > 0, err
}
