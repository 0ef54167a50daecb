// Package module wires the chat router from injected collaborators
package module

import (
	"context"
	"fmt"

	"cinebot/internal/modkit"
	"cinebot/internal/modkit/httpkit"

	botdom "cinebot/internal/services/bot/domain"
	botsvc "cinebot/internal/services/bot/service"
	dsvc "cinebot/internal/services/disclosure/service"
	usdomain "cinebot/internal/services/usage/domain"
	wldomain "cinebot/internal/services/watchlist/domain"
)

// Needs are the collaborators injected through modkit.WithPorts
type Needs struct {
	Transport botdom.Transport
	Catalog   botdom.Catalog
	Watchlist wldomain.ServicePort
	Usage     usdomain.ServicePort
}

// Runner consumes chat events until the stream ends
type Runner interface {
	Run(ctx context.Context, events <-chan botdom.Event) error
}

// Ports exported by the bot module
type Ports struct {
	Runner Runner
}

// Module owns the chat router, it mounts no routes
type Module struct {
	name  string
	ports Ports
}

// New constructs and wires the bot module
// it panics when the injected Needs are missing
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("bot")}, opts...)

	needs, ok := b.Ports.(Needs)
	if !ok {
		panic(fmt.Sprintf("bot module needs %T via modkit.WithPorts, got %T", Needs{}, b.Ports))
	}

	disclosure := dsvc.New(needs.Catalog, needs.Watchlist, dsvc.Config{
		Location:         o.Location,
		TicketWindowDays: o.TicketWindowDays,
	})

	svc := botsvc.New(botsvc.Deps{
		Transport:  needs.Transport,
		Catalog:    needs.Catalog,
		Disclosure: disclosure,
		Watchlist:  needs.Watchlist,
		Usage:      needs.Usage,
	}, botsvc.Config{
		Workers:         o.Workers,
		ProviderTimeout: o.ProviderTimeout,
		Seed:            o.Seed,
	})

	return &Module{name: b.Name, ports: Ports{Runner: svc}}
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module route prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op, the bot talks to the chat platform only
func (m *Module) MountRoutes(httpkit.Router) {}
