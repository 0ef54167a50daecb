package module

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebot/internal/core/media"
	modkit "cinebot/internal/modkit"
	modreg "cinebot/internal/modkit/module"
	"cinebot/internal/platform/config"
	"cinebot/internal/platform/store/storetest"
	botdom "cinebot/internal/services/bot/domain"
	disdomain "cinebot/internal/services/disclosure/domain"
	usdomain "cinebot/internal/services/usage/domain"
	usmod "cinebot/internal/services/usage/module"
	wldomain "cinebot/internal/services/watchlist/domain"
	wlmod "cinebot/internal/services/watchlist/module"
)

type recorder struct {
	mu      sync.Mutex
	replies []string
}

func (r *recorder) Reply(_ context.Context, _ int64, text string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, text)
	return len(r.replies), nil
}

func (r *recorder) Show(context.Context, int64, disdomain.View) (int, error) { return 1, nil }

func (r *recorder) Replace(context.Context, int64, int, disdomain.View) error { return nil }

func (r *recorder) Delete(context.Context, int64, int) error { return nil }

func (r *recorder) Notify(context.Context, string, string) error { return nil }

type emptyCatalog struct{}

func (emptyCatalog) Search(context.Context, string) (media.SearchResult, error) {
	return media.SearchResult{}, media.ErrNoResults
}

func (emptyCatalog) Details(context.Context, media.Ref) (media.Details, error) {
	return media.Details{}, media.ErrNoResults
}

func (emptyCatalog) Trending(context.Context) ([]media.SearchResult, error) { return nil, nil }

func TestNew_PanicsWithoutNeeds(t *testing.T) {
	assert.Panics(t, func() { New(modkit.Deps{}, Options{}) })
}

func TestModule_WiresRunnerFromSiblingPorts(t *testing.T) {
	s := storetest.Memory(t)
	deps := modkit.Deps{SQL: s.SQL, Dialect: s.Dialect}
	wl := wlmod.New(deps)
	us := usmod.New(deps, usmod.Options{AdminID: 1})

	tr := &recorder{}
	m := New(deps, Options{Workers: 2, ProviderTimeout: time.Second, Location: time.UTC}, modkit.WithPorts(Needs{
		Transport: tr,
		Catalog:   emptyCatalog{},
		Watchlist: modreg.MustPortsOf[wldomain.ServicePort](wl),
		Usage:     modreg.MustPortsOf[usdomain.ServicePort](us),
	}))

	assert.Equal(t, "bot", m.Name())
	assert.Equal(t, "", m.Prefix())
	m.MountRoutes(nil)

	run := modreg.MustPortsOf[Runner](m)
	events := make(chan botdom.Event, 2)
	events <- botdom.Event{Kind: botdom.EventCommand, ChatID: 5, UserID: 5, Command: "start"}
	events <- botdom.Event{Kind: botdom.EventText, ChatID: 5, UserID: 5, Text: "no such film"}
	close(events)
	require.NoError(t, run.Run(context.Background(), events))

	tr.mu.Lock()
	defer tr.mu.Unlock()
	assert.Contains(t, tr.replies, botdom.MsgWelcome)
	assert.Contains(t, tr.replies, botdom.MsgNoResults)

	st, err := modreg.MustPortsOf[usdomain.ServicePort](us).Aggregate(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Total)
}

func TestFromConfig_Defaults(t *testing.T) {
	t.Setenv("BOT_WORKERS", "3")
	t.Setenv("BOT_TIMEZONE", "Asia/Tokyo")
	o := FromConfig(config.New())
	assert.Equal(t, 3, o.Workers)
	assert.Equal(t, 8*time.Second, o.ProviderTimeout)
	assert.Equal(t, "Asia/Tokyo", o.Location.String())
	assert.Equal(t, 60, o.TicketWindowDays)
	assert.Zero(t, o.Seed)
}
