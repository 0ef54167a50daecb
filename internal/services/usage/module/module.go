// Package module wires the usage log into the API using modkit
package module

import (
	"context"

	modkit "cinebot/internal/modkit"
	"cinebot/internal/modkit/httpkit"
	ushttp "cinebot/internal/services/usage/http"
	usrepo "cinebot/internal/services/usage/repo"
	ussvc "cinebot/internal/services/usage/service"
)

// Module implements the usage module
type Module struct {
	b     modkit.Built
	ports Ports
	svc   ussvc.Service
	ch    *usrepo.CH
}

// New constructs the usage module
// records go to clickhouse when deps carries one and to the sql backend otherwise
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	m := &Module{b: modkit.Build([]modkit.Option{modkit.WithName("usage"), modkit.WithPrefix("/usage")}, opts...)}

	var r usrepo.Repo
	if deps.CH != nil {
		m.ch = usrepo.NewCH(deps.CH)
		r = m.ch
	} else {
		r = usrepo.Binders().Pick(deps.Dialect).Bind(deps.SQL)
	}

	m.svc = ussvc.New(r, ussvc.Config{AdminID: o.AdminID, BusyRetries: uint(max(o.BusyRetries, 0))})
	m.ports = Ports{Usage: adaptUsagePort{svc: m.svc}}
	return m
}

// Init prepares storage that sql migrations do not cover
func (m *Module) Init(ctx context.Context) error {
	if m.ch == nil {
		return nil
	}
	return m.ch.EnsureSchema(ctx)
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { ushttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.b.Prefix }
