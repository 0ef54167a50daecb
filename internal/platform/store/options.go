package store

import (
	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
)

// Option adjusts a Store before any backend is dialed
type Option func(*Store) error

// WithLogger feeds ping retries and LogSQL tracers
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithTracer sends every sql statement to t, LogSQL is ignored once set
func WithTracer(t QueryTracer) Option {
	return func(s *Store) error {
		if t == nil {
			return perr.InvalidArgf("store: nil query tracer")
		}
		s.tracer = t
		return nil
	}
}
