package module

import "cinebot/internal/platform/config"

// Options holds configuration settings for the usage module
type Options struct {
	AdminID     int64
	BusyRetries int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	return Options{
		AdminID:     cfg.MustInt64("ADMIN_ID"),
		BusyRetries: cfg.Prefix("USAGE_").MayInt("BUSY_RETRIES", 3),
	}
}
