// Package domain holds the disclosure views and the ports the state machine calls
package domain

import (
	"cinebot/internal/core/media"
)

// Kind names a disclosure state
type Kind string

const (
	// Compact is the first answer to a search
	Compact Kind = "compact"
	// Expanded carries the enrichment
	Expanded Kind = "expanded"
	// Confirmed acknowledges an add, it is shown to the actor only
	Confirmed Kind = "confirmed"
)

// Control is one inline button
// exactly one of Token and URL is set
type Control struct {
	Label string
	Token string
	URL   string
}

// IsLink reports whether the control opens a url instead of calling back
func (c Control) IsLink() bool { return c.URL != "" }

// View is the render instruction handed to the transport
type View struct {
	Kind Kind
	Ref  media.Ref

	// Summary is set on Compact views
	Summary *media.SearchResult
	// Details is set on Expanded views
	Details *media.Details
	// Duplicate is set on Confirmed views when the title was already saved
	Duplicate bool

	Controls []Control
}

// Transition is the outcome of one interaction
type Transition struct {
	View View
	// Ephemeral views go to the actor only and leave the message as it was
	Ephemeral bool
}
