// Package media holds the title identity and metadata values shared by the bot, stores and provider
package media

import (
	"fmt"
	"strings"
	"time"

	perr "cinebot/internal/platform/errors"
)

// Type is the closed set of title kinds
type Type string

const (
	// Movie is a feature film
	Movie Type = "movie"
	// Series is a tv or web series
	Series Type = "series"
)

// Valid reports whether t is one of the known kinds
func (t Type) Valid() bool { return t == Movie || t == Series }

// Label is a human readable name for t
func (t Type) Label() string {
	switch t {
	case Movie:
		return "Movie"
	case Series:
		return "Series"
	default:
		return "Unknown"
	}
}

// ParseType accepts movie, series and the provider spelling tv
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return Movie, nil
	case "series", "tv":
		return Series, nil
	default:
		return "", perr.InvalidArgf("unknown media type %q", s)
	}
}

// Ref identifies a title across every provider call
// it is the uniqueness key of a watchlist entry
type Ref struct {
	Type Type  `json:"media_type" yaml:"media_type" validate:"required,oneof=movie series"`
	ID   int64 `json:"item_id" yaml:"item_id" validate:"gte=0"`
}

// Valid reports whether r has a known type and a non negative id
func (r Ref) Valid() bool { return r.Type.Valid() && r.ID >= 0 }

// String renders r as type:id for logs
func (r Ref) String() string { return fmt.Sprintf("%s:%d", r.Type, r.ID) }

// SearchResult is the first hit of a title search
type SearchResult struct {
	Ref       Ref
	Title     string
	Overview  string
	Rating    float64
	PosterURL string
}

// Details is the enrichment shown in the expanded view
type Details struct {
	Ref         Ref
	Title       string
	Overview    string
	Genres      []string
	Rating      float64
	ReleaseDate time.Time // zero when unknown
	TrailerKey  string    // youtube video key, empty when none
	PosterURL   string
}

// HasTrailer reports whether a trailer link can be offered
func (d Details) HasTrailer() bool { return d.TrailerKey != "" }

// HasRelease reports whether the release date is known
func (d Details) HasRelease() bool { return !d.ReleaseDate.IsZero() }

// Search outcomes that are answers rather than failures
var (
	// ErrNoResults means the provider found nothing for the query
	ErrNoResults = perr.New(perr.ErrorCodeNotFound, "no matching title")
	// ErrNotMedia means the best match is neither a movie nor a series
	ErrNotMedia = perr.New(perr.ErrorCodeNotFound, "best match is not a movie or series")
)
