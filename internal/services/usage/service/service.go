// Package service contains the usage log workflows
package service

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"

	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
	"cinebot/internal/platform/net/http/bind"
	"cinebot/internal/services/usage/domain"
	"cinebot/internal/services/usage/repo"
)

// Service defines the usage service contract
type Service interface {
	domain.ServicePort
}

// Config for the usage service
type Config struct {
	// AdminID is the only identity allowed to read the aggregate
	AdminID int64
	// BusyRetries bounds retries of an append that hit a locked sqlite database
	BusyRetries uint
}

// Svc implements the usage service
type Svc struct {
	Repo repo.Repo
	Cfg  Config
	now  func() time.Time
}

// New constructs a usage service over r
func New(r repo.Repo, cfg Config) *Svc {
	if r == nil {
		panic("usage.Service requires a non nil Repo")
	}
	if cfg.BusyRetries == 0 {
		cfg.BusyRetries = 3
	}
	return &Svc{Repo: r, Cfg: cfg, now: time.Now}
}

// WithClock replaces the time source used when a record has no timestamp
func (s *Svc) WithClock(now func() time.Time) *Svc {
	s.now = now
	return s
}

// Record appends one usage record
// the append is a single insert so concurrent records never overwrite each other
func (s *Svc) Record(ctx context.Context, in domain.RecordInput) error {
	if err := bind.Validate(in); err != nil {
		return err
	}
	at := in.At
	if at.IsZero() {
		at = s.now()
	}
	err := retry.Do(
		func() error { return s.Repo.Insert(ctx, in.UserID, in.Query, at) },
		retry.Context(ctx),
		retry.Attempts(s.Cfg.BusyRetries),
		retry.Delay(25*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(perr.Retryable),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		logger.C(ctx).Error().Err(err).Int64("user_id", in.UserID).Msg("usage record failed")
		return perr.FromStorage(err, "usage.record")
	}
	return nil
}

// Aggregate computes totals, distinct users and the trailing 24h count at now
func (s *Svc) Aggregate(ctx context.Context, actor int64, now time.Time) (domain.Stats, error) {
	if s.Cfg.AdminID == 0 || actor != s.Cfg.AdminID {
		logger.C(ctx).Warn().Int64("actor", actor).Msg("usage aggregate refused")
		return domain.Stats{}, perr.Forbiddenf("usage statistics are restricted")
	}
	if now.IsZero() {
		now = s.now()
	}
	c, err := s.Repo.Counts(ctx, now.Add(-domain.Window))
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("usage aggregate failed")
		return domain.Stats{}, perr.FromStorage(err, "usage.aggregate")
	}
	return domain.Stats{Total: c.Total, UniqueUsers: c.UniqueUsers, Last24h: c.After}, nil
}
