package store

import (
	"context"
	"strings"
	"time"

	"cinebot/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one statement sent to the sql backend
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives query events from the sql adapters
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// LogTracer writes one line per statement tagged with component
// it lowers the level of its own child so STORE_LOG_SQL works under a strict root level
func LogTracer(root logger.Logger, component string) QueryTracer {
	return logTracer{
		log: root.Level(zerolog.DebugLevel).With().Str("component", component).Logger(),
		msg: component + " query",
	}
}

type logTracer struct {
	log logger.Logger
	msg string
}

func (l logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	e := l.log.Info()
	if ev.Slow {
		e = l.log.Warn()
	}
	e.Dur("elapsed", ev.Elapsed).
		Bool("slow", ev.Slow).
		Str("sql", strings.Join(strings.Fields(ev.SQL), " ")).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg(l.msg)
}

// tracing times statements for a QueryTracer, the zero value is off
type tracing struct {
	tracer QueryTracer
	slow   time.Duration
}

func newTracing(t QueryTracer, slowMs int) tracing {
	return tracing{tracer: t, slow: time.Duration(slowMs) * time.Millisecond}
}

func (t tracing) done(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	took := time.Since(start)
	t.tracer.OnQuery(ctx, QueryEvent{SQL: sql, Args: args, Elapsed: took, Err: err, Slow: took >= t.slow})
}

// row defers the trace event of a QueryRow until Scan reports
func (t tracing) row(ctx context.Context, sql string, args []any, start time.Time, r Row) Row {
	return tracedRow{Row: r, done: func(err error) { t.done(ctx, sql, args, start, err) }}
}

type tracedRow struct {
	Row
	done func(error)
}

func (r tracedRow) Scan(dst ...any) error {
	err := r.Row.Scan(dst...)
	r.done(err)
	return err
}
