// Package service contains watchlist workflows
package service

import (
	"context"
	"time"

	"cinebot/internal/core/media"
	"cinebot/internal/modkit/repokit"
	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
	"cinebot/internal/platform/net/http/bind"
	"cinebot/internal/services/watchlist/domain"
	"cinebot/internal/services/watchlist/repo"
)

// Service defines the watchlist service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the watchlist service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	now    func() time.Time
}

// New constructs a watchlist service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("watchlist.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("watchlist.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, now: time.Now}
}

// WithClock replaces the time source used to stamp new entries
func (s *Svc) WithClock(now func() time.Time) *Svc {
	s.now = now
	return s
}

// Add saves ref for the owner
// the storage constraint decides between Added and AlreadyExists so concurrent adds of one key yield one Added
func (s *Svc) Add(ctx context.Context, in domain.AddInput) (domain.Outcome, error) {
	if err := bind.Validate(in); err != nil {
		return "", err
	}
	inserted, err := s.Repo.Insert(ctx, in.OwnerID, string(in.Ref.Type), in.Ref.ID, s.now())
	if err != nil {
		if perr.IsSQLiteUnique(err) || perr.IsDuplicateKey(err) {
			return domain.AlreadyExists, nil
		}
		logger.C(ctx).Error().Err(err).
			Int64("owner_id", in.OwnerID).
			Str("ref", in.Ref.String()).
			Msg("watchlist add failed")
		return "", perr.FromStorage(err, "watchlist.add")
	}
	if !inserted {
		return domain.AlreadyExists, nil
	}
	return domain.Added, nil
}

// List returns the owner's entries in insertion order
func (s *Svc) List(ctx context.Context, ownerID int64) ([]domain.Entry, error) {
	rows, err := s.Repo.List(ctx, ownerID)
	if err != nil {
		logger.C(ctx).Error().Err(err).Int64("owner_id", ownerID).Msg("watchlist list failed")
		return nil, perr.FromStorage(err, "watchlist.list")
	}
	out := make([]domain.Entry, 0, len(rows))
	for _, r := range rows {
		mt, err := media.ParseType(r.MediaType)
		if err != nil {
			return nil, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeDB, "bad media type in row"), "watchlist.list")
		}
		out = append(out, domain.Entry{
			OwnerID: r.OwnerID,
			Ref:     media.Ref{Type: mt, ID: r.ItemID},
			AddedAt: r.AddedAt,
		})
	}
	return out, nil
}

// Remove drops one entry and reports whether it existed
func (s *Svc) Remove(ctx context.Context, in domain.RemoveInput) (bool, error) {
	if err := bind.Validate(in); err != nil {
		return false, err
	}
	ok, err := s.Repo.Delete(ctx, in.OwnerID, string(in.Ref.Type), in.Ref.ID)
	if err != nil {
		return false, perr.FromStorage(err, "watchlist.remove")
	}
	return ok, nil
}
