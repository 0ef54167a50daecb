package strings

import (
	"testing"

	"cinebot/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	def := []string{"GET"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("nil should use default, got %v", got)
	}
	if got := IfEmpty([]string{"DELETE"}, def); got[0] != "DELETE" {
		t.Fatalf("non empty should win, got %v", got)
	}
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{"watchlist": "/watchlist", " /usage/ ": "/usage", "//meta//": "/meta"} {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	testkit.MustPanic(t, func() { MustPrefix(" / ") })
}
