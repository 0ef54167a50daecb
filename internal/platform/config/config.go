// Package config reads typed settings from the environment
// required keys panic at startup, optional ones fall back to a default and log when malformed
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"cinebot/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a namespaced view over environment variables, e.g. Prefix("TMDB_")
type Conf struct{ prefix string }

// New creates a root Conf
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) get(key string) string { return strings.TrimSpace(os.Getenv(c.key(key))) }

// MustString panics if key is missing or blank
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MustInt64 panics if key is missing or not a base 10 int64
func (c Conf) MustInt64(key string) int64 {
	s := c.MustString(key)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid int64 value")
	}
	return v
}

// may parses key with parse, returning def when blank and warning when malformed
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, "int", strconv.Atoi) }

// MayFloat64 returns the value or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, "float64", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, "bool", strconv.ParseBool) }

// MayDuration returns the value or def, values look like 250ms or 8s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayLocation loads an IANA zone, falling back to UTC when the name is unknown
func (c Conf) MayLocation(key, def string) *time.Location {
	return may(c, key, locOrUTC(time.LoadLocation(def)), "time zone", time.LoadLocation)
}

func locOrUTC(loc *time.Location, err error) *time.Location {
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadDotenv reads .env style files into the process env without overriding existing keys
// missing files are skipped
func LoadDotenv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.Get().Warn().Err(err).Str("path", p).Msg("dotenv load failed")
		}
	}
}
