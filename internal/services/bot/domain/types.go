// Package domain holds the chat events the bot handles and the ports it drives
package domain

import (
	"context"

	"cinebot/internal/core/media"
	disdomain "cinebot/internal/services/disclosure/domain"
)

// EventKind tells the router which flow an event takes
type EventKind int

const (
	// EventText is a plain message, treated as a title search
	EventText EventKind = iota + 1
	// EventCommand is a slash command
	EventCommand
	// EventInteraction is a press on an inline control
	EventInteraction
)

// Event is one inbound update reduced to what the router reads
type Event struct {
	Kind      EventKind
	ChatID    int64
	UserID    int64
	MessageID int

	// Text is the message body for EventText and the arguments for EventCommand
	Text string
	// Command is the command name without the slash
	Command string

	// CallbackID and Data are set on EventInteraction
	CallbackID string
	Data       string
}

// Transport renders replies on the chat platform
type Transport interface {
	// Reply posts plain text and returns the new message id
	Reply(ctx context.Context, chatID int64, text string) (int, error)
	// Show posts a view as a new message
	Show(ctx context.Context, chatID int64, v disdomain.View) (int, error)
	// Replace updates an existing message in place
	Replace(ctx context.Context, chatID int64, messageID int, v disdomain.View) error
	// Delete removes a message
	Delete(ctx context.Context, chatID int64, messageID int) error
	// Notify answers an interaction with a notice only the actor sees
	Notify(ctx context.Context, callbackID, text string) error
}

// Catalog is the metadata provider as the router sees it
type Catalog interface {
	Search(ctx context.Context, query string) (media.SearchResult, error)
	Details(ctx context.Context, ref media.Ref) (media.Details, error)
	Trending(ctx context.Context) ([]media.SearchResult, error)
}

// Disclosure runs view transitions
type Disclosure interface {
	Compact(res media.SearchResult) (disdomain.View, error)
	Interact(ctx context.Context, actor int64, raw string) (disdomain.Transition, error)
}
