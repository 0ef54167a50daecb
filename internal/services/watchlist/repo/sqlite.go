package repo

import (
	"context"
	"time"

	"cinebot/internal/modkit/repokit"
	"cinebot/internal/platform/store"
	ptime "cinebot/internal/platform/time"
)

type (
	// SQLite binds the repo to a sqlite Queryer
	SQLite struct{}
	// liteQueries implements Repo for sqlite, timestamps are ISO 8601 text
	liteQueries struct{ q repokit.Queryer }
)

// NewSQLite returns a binder that can bind the repo to a Queryer or TxRunner
func NewSQLite() repokit.Binder[Repo] { return SQLite{} }

// Bind wires a Queryer to the repo
func (SQLite) Bind(q repokit.Queryer) Repo { return &liteQueries{q: q} }

func (r *liteQueries) Insert(ctx context.Context, ownerID int64, mediaType string, itemID int64, at time.Time) (bool, error) {
	const sql = `
insert into watchlist_entries (owner_id, media_type, item_id, added_at)
values (?, ?, ?, ?)
on conflict (owner_id, media_type, item_id) do nothing
`
	n, err := store.Affected(r.q.Exec(ctx, sql, ownerID, mediaType, itemID, ptime.ISO(at)))
	return n == 1, err
}

func (r *liteQueries) List(ctx context.Context, ownerID int64) ([]Row, error) {
	const sql = `
select owner_id, media_type, item_id, added_at
from watchlist_entries
where owner_id = ?
order by id asc
`
	return store.Many(ctx, r.q, func(rs store.Row) (Row, error) {
		var (
			rr Row
			at string
		)
		if err := rs.Scan(&rr.OwnerID, &rr.MediaType, &rr.ItemID, &at); err != nil {
			return rr, err
		}
		t, err := ptime.ParseISO(at)
		rr.AddedAt = t
		return rr, err
	}, sql, ownerID)
}

func (r *liteQueries) Delete(ctx context.Context, ownerID int64, mediaType string, itemID int64) (bool, error) {
	const sql = `
delete from watchlist_entries
where owner_id = ? and media_type = ? and item_id = ?
`
	n, err := store.Affected(r.q.Exec(ctx, sql, ownerID, mediaType, itemID))
	return n > 0, err
}
