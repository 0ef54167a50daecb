// Package logger wraps zerolog with env driven defaults, optional file rotation
// and per request child loggers
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"cinebot/internal/platform/config/raw"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	Level        string
	Format       string
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string

	// File enables a rotating json log file next to the primary writer
	File           string
	FileMaxMB      int
	FileMaxBackups int
	FileMaxAgeDays int
}

// FromEnv builds Options using the logging-free raw config view (no cycles)
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(rc.Get("LEVEL", "debug")),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", ""),
		Component:   rc.Get("COMPONENT", ""),
		WithCaller:  rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),

		File:           rc.Get("FILE", ""),
		FileMaxMB:      rc.GetInt("FILE_MAX_MB", 50),
		FileMaxBackups: rc.GetInt("FILE_MAX_BACKUPS", 5),
		FileMaxAgeDays: rc.GetInt("FILE_MAX_AGE_DAYS", 14),
	}
}

// Logger is the project wide logging type
type Logger = zerolog.Logger

var (
	once sync.Once
	root *Logger
)

// Get returns the root logger, built from the LOG_ environment on first use
func Get() *Logger {
	once.Do(func() { install(FromEnv()) })
	return root
}

// Init builds the root logger from opt, it is a no op once the root exists
func Init(opt Options) {
	once.Do(func() { install(opt) })
}

func install(opt Options) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := build(opt)
	root = &l
}

func build(opt Options) Logger {
	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if opt.File != "" {
		out = zerolog.MultiLevelWriter(out, rotating(opt))
	}

	fields := map[string]any{}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fields["go_version"] = bi.GoVersion
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			fields[k] = v
		}
	}
	for k, v := range opt.StaticFields {
		fields[k] = v
	}

	zc := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp().Fields(fields)
	if opt.WithCaller {
		zc = zc.Caller()
	}
	l := zc.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// rotating is the lumberjack file sink, it always writes json
func rotating(opt Options) io.Writer {
	return &lumberjack.Logger{
		Filename:   opt.File,
		MaxSize:    opt.FileMaxMB,
		MaxBackups: opt.FileMaxBackups,
		MaxAge:     opt.FileMaxAgeDays,
		Compress:   true,
	}
}

// parseLevel accepts zerolog names plus "warning", anything else is debug
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey struct{}

// WithRequest tags ctx with a correlation id, one per update or http request
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, reqID)
}

// RequestID returns the correlation id on ctx, falling back to chi's request id
func RequestID(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKey{}).(string); ok {
		return s
	}
	return chimw.GetReqID(ctx)
}

// C returns a child logger carrying the request id from ctx
func C(ctx context.Context) *Logger {
	l := Get()
	id := RequestID(ctx)
	if id == "" {
		return l
	}
	ll := l.With().Str("request_id", id).Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
