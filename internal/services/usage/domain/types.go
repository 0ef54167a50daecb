// Package domain holds usage log types and the service contract
package domain

import (
	"context"
	"time"
)

// Window is the trailing period counted by Stats.Last24h
const Window = 24 * time.Hour

// Record is one completed search
type Record struct {
	UserID int64     `json:"user_id" yaml:"user_id"`
	Query  string    `json:"query" yaml:"query"`
	At     time.Time `json:"at" yaml:"at"`
}

// RecordInput is what callers hand to Record
type RecordInput struct {
	UserID int64     `json:"user_id" validate:"required"`
	Query  string    `json:"query" validate:"max=1024"`
	At     time.Time `json:"at"`
}

// Stats is the aggregate over every stored record
type Stats struct {
	Total       int64 `json:"total_requests" yaml:"total_requests" example:"42"`
	UniqueUsers int64 `json:"unique_users" yaml:"unique_users" example:"7"`
	Last24h     int64 `json:"requests_last_24h" yaml:"requests_last_24h" example:"5"`
}

// ServicePort is consumed by the bot, the admin api and the ctl
type ServicePort interface {
	Record(ctx context.Context, in RecordInput) error
	// Aggregate returns Stats for the admin actor and Forbidden for everyone else
	Aggregate(ctx context.Context, actor int64, now time.Time) (Stats, error)
}
