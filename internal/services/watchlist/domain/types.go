// Package domain holds watchlist types and the service contract
package domain

import (
	"context"
	"time"

	"cinebot/internal/core/media"
)

// Outcome is the result of an add
// a duplicate is a normal outcome rather than an error
type Outcome string

const (
	// Added means a new entry was stored
	Added Outcome = "added"
	// AlreadyExists means the owner already had the title
	AlreadyExists Outcome = "already_exists"
)

// Entry is one saved title
type Entry struct {
	OwnerID int64     `json:"owner_id" yaml:"owner_id"`
	Ref     media.Ref `json:"ref" yaml:"ref"`
	AddedAt time.Time `json:"added_at" yaml:"added_at"`
}

// AddInput names the owner and the title to save
type AddInput struct {
	OwnerID int64     `json:"owner_id" validate:"required"`
	Ref     media.Ref `json:"ref"`
}

// RemoveInput names the entry to drop
type RemoveInput struct {
	OwnerID int64     `json:"owner_id" validate:"required"`
	Ref     media.Ref `json:"ref"`
}

// ServicePort is consumed by the bot, the admin api and the ctl
type ServicePort interface {
	Add(ctx context.Context, in AddInput) (Outcome, error)
	List(ctx context.Context, ownerID int64) ([]Entry, error)
	Remove(ctx context.Context, in RemoveInput) (bool, error)
}
