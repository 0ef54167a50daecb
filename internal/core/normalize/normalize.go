// Package normalize cleans user supplied search text
// Query keeps the text readable for echoing back and sending upstream
// Key folds further so equivalent queries share a cache entry
package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MaxQueryRunes caps how much of a message is treated as a title query
const MaxQueryRunes = 200

var (
	queryChains = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKC,
				runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF and friends
				width.Fold,
			)
		},
	}
	keyChains = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFD,
				cases.Fold(),
				runes.Remove(runes.In(unicode.Mn)),
				norm.NFC,
			)
		},
	}
)

// Query returns s as a single trimmed line fit to send to the metadata provider
func Query(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(Sanitize(s), "")
	s = apply(&queryChains, s)
	s = strings.Join(strings.Fields(s), " ")
	return truncate(s, MaxQueryRunes)
}

// Key returns a case and accent insensitive form of Query(s)
func Key(s string) string {
	q := Query(s)
	if q == "" {
		return ""
	}
	return apply(&keyChains, q)
}

func apply(p *sync.Pool, s string) string {
	tr := p.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	p.Put(tr)
	if err != nil {
		return s
	}
	return out
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return strings.TrimRight(s[:i], " ")
		}
		n++
	}
	return s
}
