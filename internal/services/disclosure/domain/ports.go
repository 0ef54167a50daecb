package domain

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

import (
	"context"

	"cinebot/internal/core/media"
	wldomain "cinebot/internal/services/watchlist/domain"
)

// Enricher fetches the details shown in the expanded view
type Enricher interface {
	Details(ctx context.Context, ref media.Ref) (media.Details, error)
}

// Watchlist is the slice of the watchlist the state machine needs
type Watchlist interface {
	Add(ctx context.Context, in wldomain.AddInput) (wldomain.Outcome, error)
}
