// Package module wires health and build endpoints into the API
package module

import (
	"time"

	modkit "cinebot/internal/modkit"
	"cinebot/internal/modkit/httpkit"
	metahttp "cinebot/internal/services/api/meta/http"
)

// Module serves liveness, readiness and build info
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs the meta module, uptime counts from this call
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return &Module{
		b: modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...),
		deps: metahttp.Deps{
			ServiceName: "cinebot",
			StartedAt:   time.Now(),
			SQLName:     string(deps.Dialect),
			SQL:         deps.SQL,
			CH:          deps.CH,
		},
	}
}

// MountRoutes mounts the meta routes
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.b.Prefix }

// Ports returns nothing, meta exposes no ports
func (m *Module) Ports() any { return nil }
