//go:build integration_ch

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebot/internal/platform/store"
	"cinebot/internal/platform/testkit"
)

func TestCH_AgainstServer(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{
		CH: store.CHConfig{Enabled: true, URL: testkit.Start(t, testkit.ClickHouse), ClientName: "test"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })
	require.NoError(t, s.Guard(ctx))

	r := NewCH(s.CH)
	require.NoError(t, r.EnsureSchema(ctx))
	require.NoError(t, r.EnsureSchema(ctx))

	now := time.Now().UTC()
	require.NoError(t, r.Insert(ctx, 1, "alien", now.Add(-48*time.Hour)))
	require.NoError(t, r.Insert(ctx, 1, "aliens", now))
	require.NoError(t, r.Insert(ctx, 2, "heat", now))

	c, err := r.Counts(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, Counts{Total: 3, UniqueUsers: 2, After: 2}, c)
}
