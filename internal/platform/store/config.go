package store

import (
	"net/url"
	"strings"
	"time"

	"cinebot/internal/platform/config"
	perr "cinebot/internal/platform/errors"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG     PGConfig
	SQLite SQLiteConfig
	CH     CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries uint          // default 8
	PingTimeout    time.Duration // default 3s
}

// SQLiteConfig configures the embedded sqlite backend
type SQLiteConfig struct {
	Enabled     bool
	Path        string
	BusyTimeout time.Duration // default 5s
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// ParseDSN maps a storage connection descriptor onto a Config
// postgres:// and postgresql:// select pgx, sqlite:// and file: select sqlite
func ParseDSN(dsn string) (Config, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return Config{}, perr.InvalidArgf("empty storage dsn")
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return Config{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "invalid storage dsn")
	}
	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		return Config{PG: PGConfig{Enabled: true, URL: dsn}}, nil
	case "sqlite":
		path := strings.TrimPrefix(dsn, u.Scheme+"://")
		if path == "" {
			return Config{}, perr.InvalidArgf("sqlite dsn needs a path")
		}
		return Config{SQLite: SQLiteConfig{Enabled: true, Path: path}}, nil
	case "file":
		return Config{SQLite: SQLiteConfig{Enabled: true, Path: dsn}}, nil
	default:
		return Config{}, perr.InvalidArgf("unsupported storage scheme %q", u.Scheme)
	}
}

// FromConfig builds a Config from the environment
// STORE_DSN (required) picks the sql backend
// STORE_MAX_CONNS, STORE_CONNECT_RETRIES, STORE_SLOW_MS and STORE_LOG_SQL tune it
// USAGE_CLICKHOUSE_DSN, when set, moves the usage log to clickhouse
func FromConfig(cfg config.Conf, tag string) (Config, error) {
	s := cfg.Prefix("STORE_")
	out, err := ParseDSN(s.MustString("DSN"))
	if err != nil {
		return Config{}, err
	}
	out.AppName = "cinebot"
	slow := s.MayInt("SLOW_MS", 500)
	logSQL := s.MayBool("LOG_SQL", false)
	if out.PG.Enabled {
		out.PG.MaxConns = int32(s.MayInt("MAX_CONNS", 4))
		out.PG.ConnectRetries = uint(max(s.MayInt("CONNECT_RETRIES", 8), 0))
		out.PG.SlowQueryMs, out.PG.LogSQL = slow, logSQL
	}
	if out.SQLite.Enabled {
		out.SQLite.BusyTimeout = s.MayDuration("BUSY_TIMEOUT", 5*time.Second)
		out.SQLite.SlowQueryMs, out.SQLite.LogSQL = slow, logSQL
	}
	if ch := cfg.MayString("USAGE_CLICKHOUSE_DSN", ""); ch != "" {
		out.CH = CHConfig{Enabled: true, URL: ch, ClientName: "cinebot", ClientTag: tag}
	}
	return out, nil
}
