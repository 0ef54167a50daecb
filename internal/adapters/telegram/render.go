package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cinebot/internal/core/media"
	disdomain "cinebot/internal/services/disclosure/domain"
)

// captionLimit is the Bot API ceiling for photo captions in characters
const captionLimit = 1024

// Caption renders the text under a view's photo
func Caption(v disdomain.View) string {
	var b strings.Builder
	switch {
	case v.Details != nil:
		d := v.Details
		fmt.Fprintf(&b, "🎬 %s (%s)\n\n", d.Title, d.Ref.Type.Label())
		fmt.Fprintf(&b, "⭐ Rating: %.1f/10\n", d.Rating)
		if len(d.Genres) > 0 {
			fmt.Fprintf(&b, "🎭 Genres: %s\n", strings.Join(d.Genres, ", "))
		}
		if d.HasRelease() {
			label := "Released"
			if d.Ref.Type == media.Series {
				label = "First aired"
			}
			fmt.Fprintf(&b, "📅 %s: %s\n", label, d.ReleaseDate.Format("2 Jan 2006"))
		}
		fmt.Fprintf(&b, "\n📝 Overview:\n%s", d.Overview)
	case v.Summary != nil:
		s := v.Summary
		fmt.Fprintf(&b, "🎬 %s\n\n⭐ Rating: %.1f/10\n\n📝 Overview:\n%s", s.Title, s.Rating, s.Overview)
	default:
		b.WriteString(v.Ref.String())
	}
	return clip(b.String(), captionLimit)
}

// Keyboard lays out one control per row
func Keyboard(cs []disdomain.Control) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(cs) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cs))
	for _, c := range cs {
		if c.IsLink() {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(c.Label, c.URL)))
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Token)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func poster(v disdomain.View) string {
	switch {
	case v.Details != nil && v.Details.PosterURL != "":
		return v.Details.PosterURL
	case v.Summary != nil && v.Summary.PosterURL != "":
		return v.Summary.PosterURL
	default:
		return media.PosterURL("")
	}
}

// clip cuts s to n runes, ending with an ellipsis when cut
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
