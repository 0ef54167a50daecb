package media

import (
	"fmt"
	"net/url"
)

const (
	posterBase        = "https://image.tmdb.org/t/p/w500"
	posterPlaceholder = "https://via.placeholder.com/500x750.png?text=No+Poster"
)

// PosterURL builds the w500 poster url for a provider path or the placeholder
func PosterURL(path string) string {
	if path == "" {
		return posterPlaceholder
	}
	return posterBase + path
}

// TrailerURL links a youtube video key
func TrailerURL(key string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(key)
}

// ReviewsURL links the provider's review page for r
func ReviewsURL(r Ref) string {
	kind := "movie"
	if r.Type == Series {
		kind = "tv"
	}
	return fmt.Sprintf("https://www.themoviedb.org/%s/%d/reviews", kind, r.ID)
}

// TicketsURL links a showtimes search for title
func TicketsURL(title string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(title+" tickets showtimes")
}
