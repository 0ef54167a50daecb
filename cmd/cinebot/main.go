// @title         cinebot admin API
// @version       0.1.0
// @description   Usage stats and watchlist administration for the movie bot

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"cinebot/internal/adapters/telegram"
	"cinebot/internal/adapters/tmdb"
	"cinebot/internal/core/version"
	"cinebot/internal/modkit"
	"cinebot/internal/modkit/module"
	"cinebot/internal/modkit/repokit"
	"cinebot/internal/platform/config"
	"cinebot/internal/platform/logger"
	phttp "cinebot/internal/platform/net/http"
	"cinebot/internal/platform/store"
	"cinebot/internal/platform/store/migrate"

	"cinebot/internal/services/api"
	botmod "cinebot/internal/services/bot/module"
	usdomain "cinebot/internal/services/usage/domain"
	usmod "cinebot/internal/services/usage/module"
	wldomain "cinebot/internal/services/watchlist/domain"
	wlmod "cinebot/internal/services/watchlist/module"
)

func main() {
	config.LoadDotenv()
	root := config.New()
	l := logger.Get()
	l.Info().Interface("build", version.Info("cinebot")).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stCfg, err := store.FromConfig(root, "bot")
	if err != nil {
		l.Panic().Err(err).Msg("store config invalid")
	}
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)
	migrate.MustUp(ctx, st)

	deps := modkit.FromStore(st)

	wl := wlmod.New(deps)
	us := usmod.New(deps, usmod.FromConfig(root))
	if err := us.Init(ctx); err != nil {
		l.Panic().Err(err).Msg("usage storage init failed")
	}

	tg, err := telegram.New(telegram.OptionsFromConfig(root))
	if err != nil {
		l.Panic().Err(err).Msg("telegram connect failed")
	}

	bot := botmod.New(deps, botmod.FromConfig(root), modkit.WithPorts(botmod.Needs{
		Transport: tg,
		Catalog:   tmdb.NewClient(tmdb.OptionsFromConfig(root)),
		Watchlist: module.MustPortsOf[wldomain.ServicePort](wl),
		Usage:     module.MustPortsOf[usdomain.ServicePort](us),
	}))
	module.Register(bot.Name(), bot.Ports())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return module.MustPortsOf[botmod.Runner](bot).Run(gctx, tg.Events(gctx))
	})

	if root.MayBool("API_ENABLED", true) {
		srv := phttp.NewServer(root)
		opt := api.OptionsFromConfig(root)
		opt.Deps = deps
		opt.Modules = []module.Module{wl, us}
		opt.Operator = usmod.FromConfig(root).AdminID
		api.Mount(srv.Router(), opt)

		g.Go(func() error { return srv.Run(gctx) })
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(sctx)
		})
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		l.Error().Err(err).Msg("cinebot stopped")
		os.Exit(1)
	}
	l.Info().Msg("cinebot stopped")
}
