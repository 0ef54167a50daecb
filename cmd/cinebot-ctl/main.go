// Command cinebot-ctl is the operator tool for the cinebot store
package main

import (
	"context"
	"fmt"
	"os"

	"cinebot/internal/modkit"
	"cinebot/internal/modkit/module"
	"cinebot/internal/platform/config"
	"cinebot/internal/platform/logger"
	"cinebot/internal/platform/store"

	usdomain "cinebot/internal/services/usage/domain"
	usmod "cinebot/internal/services/usage/module"
	wldomain "cinebot/internal/services/watchlist/domain"
	wlmod "cinebot/internal/services/watchlist/module"
)

// env is what every subcommand works against
type env struct {
	Store     *store.Store
	Watchlist wldomain.ServicePort
	Usage     usdomain.ServicePort
	AdminID   int64

	close func() error
}

// opener builds an env, commands close the store when done
type opener func(ctx context.Context) (*env, error)

func openEnv(ctx context.Context) (*env, error) {
	root := config.New()
	cfg, err := store.FromConfig(root, "ctl")
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Named("ctl")))
	if err != nil {
		return nil, err
	}
	deps := modkit.FromStore(st)
	o := usmod.FromConfig(root)
	us := usmod.New(deps, o)
	if err := us.Init(ctx); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	return &env{
		Store:     st,
		Watchlist: module.MustPortsOf[wldomain.ServicePort](wlmod.New(deps)),
		Usage:     module.MustPortsOf[usdomain.ServicePort](us),
		AdminID:   o.AdminID,
		close:     func() error { return st.Close(context.Background()) },
	}, nil
}

func main() {
	config.LoadDotenv()
	if err := newRootCmd(openEnv).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
