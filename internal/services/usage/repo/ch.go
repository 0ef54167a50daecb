package repo

import (
	"context"
	"time"

	"cinebot/internal/platform/store"
)

// Table is the clickhouse table holding the usage log
const Table = "usage_records"

// CH implements Repo over clickhouse
type CH struct{ c store.Clickhouse }

// NewCH returns a clickhouse backed Repo
func NewCH(c store.Clickhouse) *CH { return &CH{c: c} }

// EnsureSchema creates the usage table when it is missing
func (r *CH) EnsureSchema(ctx context.Context) error {
	const sql = `
CREATE TABLE IF NOT EXISTS ` + Table + ` (
	user_id     Int64,
	query       String,
	recorded_at DateTime64(6, 'UTC')
)
ENGINE = MergeTree
ORDER BY (recorded_at, user_id)
`
	return r.c.Exec(ctx, sql)
}

// Insert appends one row as a single batch
func (r *CH) Insert(ctx context.Context, userID int64, query string, at time.Time) error {
	return r.c.Insert(ctx, Table, [][]any{{userID, query, at.UTC()}})
}

// Counts aggregates in one pass
func (r *CH) Counts(ctx context.Context, since time.Time) (Counts, error) {
	const sql = `
SELECT
	count(),
	uniqExact(user_id),
	countIf(recorded_at > ?)
FROM ` + Table

	rows, err := r.c.Query(ctx, sql, since.UTC())
	if err != nil {
		return Counts{}, err
	}
	defer rows.Close()

	var total, users, after uint64
	if rows.Next() {
		if err := rows.Scan(&total, &users, &after); err != nil {
			return Counts{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return Counts{}, err
	}
	return Counts{Total: int64(total), UniqueUsers: int64(users), After: int64(after)}, nil
}
