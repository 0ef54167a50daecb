package module

import (
	"context"

	"cinebot/internal/services/watchlist/domain"
	wlsvc "cinebot/internal/services/watchlist/service"
)

// Ports is what the watchlist module offers other modules
type Ports struct {
	Watchlist domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Port returns the typed watchlist port
func (m *Module) Port() domain.ServicePort { return m.ports.Watchlist }

type adaptWatchlistPort struct{ svc wlsvc.Service }

// Add saves a title for an owner
func (a adaptWatchlistPort) Add(ctx context.Context, in domain.AddInput) (domain.Outcome, error) {
	return a.svc.Add(ctx, in)
}

// List returns an owner's entries in insertion order
func (a adaptWatchlistPort) List(ctx context.Context, ownerID int64) ([]domain.Entry, error) {
	return a.svc.List(ctx, ownerID)
}

// Remove drops one entry
func (a adaptWatchlistPort) Remove(ctx context.Context, in domain.RemoveInput) (bool, error) {
	return a.svc.Remove(ctx, in)
}
