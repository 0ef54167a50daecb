package store

import (
	"context"

	"cinebot/internal/platform/store/ch"
)

// chAdapter narrows the driver rows of *ch.CH to Rows
type chAdapter struct{ *ch.CH }

var _ Clickhouse = chAdapter{}

func (a chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.CH.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
