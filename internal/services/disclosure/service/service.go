// Package service implements the progressive disclosure state machine
//
// The machine keeps no state between interactions. Every control carries a
// token naming its action and title, and an interaction acts on that title
// even when the message shows another one.
package service

import (
	"context"
	"time"

	"cinebot/internal/core/media"
	"cinebot/internal/core/token"
	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
	ptime "cinebot/internal/platform/time"
	"cinebot/internal/services/disclosure/domain"
	wldomain "cinebot/internal/services/watchlist/domain"
)

// Control labels
const (
	LabelMore     = "ℹ️ More info"
	LabelTrailer  = "▶️ Trailer"
	LabelTickets  = "🎟 Tickets"
	LabelReviews  = "⭐ Reviews"
	LabelWatchAdd = "➕ Add to watchlist"
)

// DefaultTicketWindowDays is how long after release a movie still gets a tickets link
const DefaultTicketWindowDays = 60

// Config for the disclosure service
type Config struct {
	// Location decides which calendar day "today" is
	Location *time.Location
	// TicketWindowDays is the inclusive trailing window in days
	TicketWindowDays int
}

// Svc runs transitions
type Svc struct {
	enrich domain.Enricher
	wl     domain.Watchlist
	cfg    Config
	now    func() time.Time
}

// New constructs a disclosure service
func New(enrich domain.Enricher, wl domain.Watchlist, cfg Config) *Svc {
	if enrich == nil {
		panic("disclosure.Service requires a non nil Enricher")
	}
	if wl == nil {
		panic("disclosure.Service requires a non nil Watchlist")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.TicketWindowDays <= 0 {
		cfg.TicketWindowDays = DefaultTicketWindowDays
	}
	return &Svc{enrich: enrich, wl: wl, cfg: cfg, now: time.Now}
}

// WithClock replaces the time source used for the tickets window
func (s *Svc) WithClock(now func() time.Time) *Svc {
	s.now = now
	return s
}

// Compact renders the answer to a completed search
func (s *Svc) Compact(res media.SearchResult) (domain.View, error) {
	tok, err := token.Encode(token.Token{Action: token.Expand, Ref: res.Ref})
	if err != nil {
		return domain.View{}, err
	}
	return domain.View{
		Kind:     domain.Compact,
		Ref:      res.Ref,
		Summary:  &res,
		Controls: []domain.Control{{Label: LabelMore, Token: tok}},
	}, nil
}

// Interact decodes raw and runs the transition it names for actor
// on error the message must stay as it is
func (s *Svc) Interact(ctx context.Context, actor int64, raw string) (domain.Transition, error) {
	t, err := token.Decode(raw)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("actor", actor).Int("len", len(raw)).Msg("malformed interaction token")
		return domain.Transition{}, err
	}
	switch t.Action {
	case token.Expand:
		return s.expand(ctx, t.Ref)
	case token.Add:
		return s.add(ctx, actor, t.Ref)
	default:
		return domain.Transition{}, perr.MalformedTokenf("unhandled action %q", t.Action)
	}
}

func (s *Svc) expand(ctx context.Context, ref media.Ref) (domain.Transition, error) {
	d, err := s.enrich.Details(ctx, ref)
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("ref", ref.String()).Msg("enrichment failed")
		if perr.CodeOf(err) == perr.ErrorCodeUnknown {
			err = perr.Wrap(err, perr.ErrorCodeUnavailable, "details unavailable")
		}
		return domain.Transition{}, perr.WithOp(err, "disclosure.expand")
	}
	// the token is the authority on identity
	d.Ref = ref
	v, err := s.Expanded(d)
	if err != nil {
		return domain.Transition{}, err
	}
	return domain.Transition{View: v}, nil
}

func (s *Svc) add(ctx context.Context, actor int64, ref media.Ref) (domain.Transition, error) {
	out, err := s.wl.Add(ctx, wldomain.AddInput{OwnerID: actor, Ref: ref})
	if err != nil {
		return domain.Transition{}, err
	}
	return domain.Transition{
		View: domain.View{
			Kind:      domain.Confirmed,
			Ref:       ref,
			Duplicate: out == wldomain.AlreadyExists,
		},
		Ephemeral: true,
	}, nil
}

// Expanded renders d with its contextual controls
// trailer when one is known, tickets for a movie inside the release window,
// reviews always and the add control last
func (s *Svc) Expanded(d media.Details) (domain.View, error) {
	add, err := token.Encode(token.Token{Action: token.Add, Ref: d.Ref})
	if err != nil {
		return domain.View{}, err
	}
	var cs []domain.Control
	if d.HasTrailer() {
		cs = append(cs, domain.Control{Label: LabelTrailer, URL: media.TrailerURL(d.TrailerKey)})
	}
	if d.Ref.Type == media.Movie && d.HasRelease() && s.TicketsOpen(d.ReleaseDate) {
		cs = append(cs, domain.Control{Label: LabelTickets, URL: media.TicketsURL(d.Title)})
	}
	cs = append(cs,
		domain.Control{Label: LabelReviews, URL: media.ReviewsURL(d.Ref)},
		domain.Control{Label: LabelWatchAdd, Token: add},
	)
	return domain.View{Kind: domain.Expanded, Ref: d.Ref, Details: &d, Controls: cs}, nil
}

// TicketsOpen reports whether release lies in the inclusive window ending today
func (s *Svc) TicketsOpen(release time.Time) bool {
	days := ptime.DaysSince(release, s.now(), s.cfg.Location)
	return days >= 0 && days <= s.cfg.TicketWindowDays
}
