package module

import (
	"time"

	"cinebot/internal/platform/config"
	dsvc "cinebot/internal/services/disclosure/service"
)

// Options for the bot module
type Options struct {
	Workers          int
	ProviderTimeout  time.Duration
	Location         *time.Location
	TicketWindowDays int
	Seed             uint64
}

// FromConfig fills options from environment
// BOT_WORKERS (default 8) bounds concurrently handled updates
// BOT_PROVIDER_TIMEOUT (default 8s) bounds each metadata lookup
// BOT_TIMEZONE (default UTC) decides the calendar day for the tickets window
// BOT_TICKET_WINDOW_DAYS (default 60) is how long after release tickets are linked
// BOT_SEED (default 0, random) fixes the /suggest sequence
func FromConfig(cfg config.Conf) Options {
	b := cfg.Prefix("BOT_")
	return Options{
		Workers:          b.MayInt("WORKERS", 8),
		ProviderTimeout:  b.MayDuration("PROVIDER_TIMEOUT", 8*time.Second),
		Location:         b.MayLocation("TIMEZONE", "UTC"),
		TicketWindowDays: b.MayInt("TICKET_WINDOW_DAYS", dsvc.DefaultTicketWindowDays),
		Seed:             uint64(max(b.MayInt("SEED", 0), 0)),
	}
}
