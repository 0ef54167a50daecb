package media

import (
	"testing"
	"time"

	perr "cinebot/internal/platform/errors"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	cases := map[string]Type{"movie": Movie, " Movie ": Movie, "series": Series, "tv": Series, "TV": Series}
	for in, want := range cases {
		got, err := ParseType(in)
		if err != nil || got != want {
			t.Fatalf("ParseType(%q) = %q, %v", in, got, err)
		}
	}
	for _, bad := range []string{"", "person", "movies"} {
		if _, err := ParseType(bad); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("ParseType(%q) want InvalidArgument, got %v", bad, err)
		}
	}
}

func TestRef_ValidAndString(t *testing.T) {
	t.Parallel()

	if !(Ref{Type: Movie, ID: 0}).Valid() {
		t.Fatalf("zero id movie should be valid")
	}
	if (Ref{Type: "person", ID: 1}).Valid() || (Ref{Type: Series, ID: -1}).Valid() {
		t.Fatalf("invalid refs reported valid")
	}
	if got := (Ref{Type: Series, ID: 1399}).String(); got != "series:1399" {
		t.Fatalf("String = %q", got)
	}
	if Movie.Label() != "Movie" || Series.Label() != "Series" || Type("x").Label() != "Unknown" {
		t.Fatalf("labels wrong")
	}
}

func TestDetails_Flags(t *testing.T) {
	t.Parallel()

	var d Details
	if d.HasTrailer() || d.HasRelease() {
		t.Fatalf("zero details should have no trailer or release")
	}
	d.TrailerKey = "abc"
	d.ReleaseDate = time.Date(1999, 10, 15, 0, 0, 0, 0, time.UTC)
	if !d.HasTrailer() || !d.HasRelease() {
		t.Fatalf("flags not set")
	}
}

func TestLinks(t *testing.T) {
	t.Parallel()

	if got := PosterURL("/p.jpg"); got != "https://image.tmdb.org/t/p/w500/p.jpg" {
		t.Fatalf("PosterURL = %q", got)
	}
	if got := PosterURL(""); got != posterPlaceholder {
		t.Fatalf("placeholder = %q", got)
	}
	if got := TrailerURL("SUXWAEX2jlg"); got != "https://www.youtube.com/watch?v=SUXWAEX2jlg" {
		t.Fatalf("TrailerURL = %q", got)
	}
	if got := ReviewsURL(Ref{Type: Movie, ID: 550}); got != "https://www.themoviedb.org/movie/550/reviews" {
		t.Fatalf("ReviewsURL movie = %q", got)
	}
	if got := ReviewsURL(Ref{Type: Series, ID: 1399}); got != "https://www.themoviedb.org/tv/1399/reviews" {
		t.Fatalf("ReviewsURL series = %q", got)
	}
	if got := TicketsURL("Fight Club"); got != "https://www.google.com/search?q=Fight+Club+tickets+showtimes" {
		t.Fatalf("TicketsURL = %q", got)
	}
}
