// Package http serves liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/sourcegraph/conc/iter"

	"cinebot/internal/core/version"
	"cinebot/internal/modkit/httpkit"
	"cinebot/internal/modkit/module"
)

// Pinger is satisfied by store seams that can report reachability
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies
// SQL is required for readiness, CH only when set
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	SQLName     string
	SQL         any
	CH          any
}

// Check states
const (
	StatusOK       = "ok"
	StatusFail     = "fail"
	StatusSkipped  = "skipped"
	StatusUnknown  = "unknown"
	StatusDegraded = "degraded"
)

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck is the outcome for one dependency
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadyResponse rolls the checks up into ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse reports uptime in seconds
type ServiceResponse struct {
	Name    string   `json:"name"`
	Started string   `json:"started"`
	Uptime  int64    `json:"uptime"`
	Modules []string `json:"modules"`
}

type readyDep struct {
	name     string
	target   any
	required bool
}

type handlers struct {
	deps      Deps
	readyDeps []readyDep
	now       func() time.Time
	modules   func() []string
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := newHandlers(d)
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

func newHandlers(d Deps) *handlers {
	sqlName := d.SQLName
	if sqlName == "" {
		sqlName = "sql"
	}
	return &handlers{
		deps: d,
		readyDeps: []readyDep{
			{name: sqlName, target: d.SQL, required: true},
			{name: "ch", target: d.CH},
		},
		now:     time.Now,
		modules: module.Names,
	}
}

func (h *handlers) stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.stamp(h.deps.StartedAt),
		Now:     h.stamp(h.now()),
	}, nil
}

func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := iter.Map(h.readyDeps, func(p *readyDep) ReadyCheck { return run(ctx, *p) })
	return ReadyResponse{Status: rollup(h.readyDeps, checks), Checks: checks, Now: h.stamp(h.now())}, nil
}

func run(ctx context.Context, p readyDep) ReadyCheck {
	if p.target == nil {
		return ReadyCheck{Name: p.name, Status: StatusSkipped}
	}
	pg, ok := p.target.(Pinger)
	if !ok {
		return ReadyCheck{Name: p.name, Status: StatusUnknown}
	}
	if err := pg.Ping(ctx); err != nil {
		return ReadyCheck{Name: p.name, Status: StatusFail, Error: err.Error()}
	}
	return ReadyCheck{Name: p.name, Status: StatusOK}
}

// rollup fails on any failed check and degrades on an unknown or a skipped required dependency
func rollup(deps []readyDep, checks []ReadyCheck) string {
	out := StatusOK
	for i, c := range checks {
		switch {
		case c.Status == StatusFail:
			return StatusFail
		case c.Status == StatusUnknown, c.Status == StatusSkipped && deps[i].required:
			out = StatusDegraded
		}
	}
	return out
}

func (h *handlers) version(*http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.stamp(h.deps.StartedAt),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
		Modules: h.modules(),
	}, nil
}
