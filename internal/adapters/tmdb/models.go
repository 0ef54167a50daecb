package tmdb

import (
	"strings"
	"time"

	"cinebot/internal/core/media"
)

type searchPage struct {
	Results []searchHit `json:"results"`
}

type searchHit struct {
	ID          int64   `json:"id"`
	MediaType   string  `json:"media_type"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
}

// result maps a movie or tv hit, other kinds report false
func (h searchHit) result() (media.SearchResult, bool) {
	var t media.Type
	switch h.MediaType {
	case "movie":
		t = media.Movie
	case "tv":
		t = media.Series
	default:
		return media.SearchResult{}, false
	}
	return media.SearchResult{
		Ref:       media.Ref{Type: t, ID: h.ID},
		Title:     firstNonEmpty(h.Title, h.Name),
		Overview:  overview(h.Overview),
		Rating:    h.VoteAverage,
		PosterURL: media.PosterURL(h.PosterPath),
	}, true
}

type detailsBody struct {
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Genres       []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Videos struct {
		Results []video `json:"results"`
	} `json:"videos"`
}

type video struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

func (b detailsBody) details(ref media.Ref) media.Details {
	d := media.Details{
		Ref:        ref,
		Title:      firstNonEmpty(b.Title, b.Name),
		Overview:   overview(b.Overview),
		Rating:     b.VoteAverage,
		PosterURL:  media.PosterURL(b.PosterPath),
		TrailerKey: pickTrailer(b.Videos.Results),
	}
	for _, g := range b.Genres {
		if g.Name != "" {
			d.Genres = append(d.Genres, g.Name)
		}
	}
	date := b.ReleaseDate
	if ref.Type == media.Series {
		date = b.FirstAirDate
	}
	if t, err := time.Parse(time.DateOnly, date); err == nil {
		d.ReleaseDate = t
	}
	return d
}

// pickTrailer prefers an official youtube trailer, then any youtube trailer
func pickTrailer(vs []video) string {
	trailer := func(v video) bool {
		return strings.EqualFold(v.Type, "trailer") && strings.EqualFold(v.Site, "youtube") && v.Key != ""
	}
	for _, v := range vs {
		if trailer(v) && v.Official {
			return v.Key
		}
	}
	for _, v := range vs {
		if trailer(v) {
			return v.Key
		}
	}
	return ""
}

func overview(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "No overview available."
	}
	return s
}

func firstNonEmpty(xs ...string) string {
	for _, x := range xs {
		if x != "" {
			return x
		}
	}
	return ""
}
