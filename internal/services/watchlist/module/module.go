// Package module wires the watchlist into the API using modkit
package module

import (
	modkit "cinebot/internal/modkit"
	"cinebot/internal/modkit/httpkit"
	wlhttp "cinebot/internal/services/watchlist/http"
	wlrepo "cinebot/internal/services/watchlist/repo"
	wlsvc "cinebot/internal/services/watchlist/service"
)

// Module implements the watchlist module
type Module struct {
	b     modkit.Built
	ports Ports
	svc   wlsvc.Service
}

// New constructs the watchlist module over the sql backend in deps
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("watchlist"), modkit.WithPrefix("/watchlist")}, opts...)
	svc := wlsvc.New(deps.SQL, wlrepo.Binders().Pick(deps.Dialect))
	return &Module{b: b, svc: svc, ports: Ports{Watchlist: adaptWatchlistPort{svc: svc}}}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { wlhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.b.Prefix }
