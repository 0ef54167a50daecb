package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"cinebot/internal/platform/config"
	perr "cinebot/internal/platform/errors"
)

func TestParseDSN(t *testing.T) {
	t.Parallel()

	cases := []struct {
		dsn     string
		pg, lit bool
		path    string
	}{
		{dsn: "postgres://u:p@db:5432/cinebot", pg: true},
		{dsn: "postgresql://db/cinebot?sslmode=disable", pg: true},
		{dsn: "sqlite:///var/lib/cinebot.db", lit: true, path: "/var/lib/cinebot.db"},
		{dsn: "sqlite://cinebot.db", lit: true, path: "cinebot.db"},
		{dsn: "file::memory:?cache=shared", lit: true, path: "file::memory:?cache=shared"},
	}
	for _, c := range cases {
		cfg, err := ParseDSN(c.dsn)
		if err != nil {
			t.Fatalf("%s: %v", c.dsn, err)
		}
		if cfg.PG.Enabled != c.pg || cfg.SQLite.Enabled != c.lit {
			t.Fatalf("%s: pg=%v sqlite=%v", c.dsn, cfg.PG.Enabled, cfg.SQLite.Enabled)
		}
		if c.pg && cfg.PG.URL != c.dsn {
			t.Fatalf("%s: url = %q", c.dsn, cfg.PG.URL)
		}
		if c.lit && cfg.SQLite.Path != c.path {
			t.Fatalf("%s: path = %q", c.dsn, cfg.SQLite.Path)
		}
	}

	for _, bad := range []string{"", "   ", "mysql://x", "sqlite://"} {
		if _, err := ParseDSN(bad); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("%q: want InvalidArgument, got %v", bad, err)
		}
	}
}

func openTestSQLite(t *testing.T, logSQL bool, log zerolog.Logger) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{
		SQLite: SQLiteConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "t.db"), LogSQL: logSQL},
	}, WithLogger(log))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestOpen_RejectsBothSQLBackends(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{
		PG:     PGConfig{Enabled: true, URL: "postgres://x"},
		SQLite: SQLiteConfig{Enabled: true, Path: ":memory:"},
	})
	if err == nil {
		t.Fatalf("expected mutual exclusion error")
	}
}

func TestOpen_NothingEnabled(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.SQL != nil || s.CH != nil || s.DB() != nil || s.Dialect != DialectNone {
		t.Fatalf("expected empty store, got %+v", s)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("guard on empty store: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpen_SQLiteAndGuard(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t, false, zerolog.Nop())
	if s.Dialect != DialectSQLite || s.DB() == nil {
		t.Fatalf("dialect = %q db = %v", s.Dialect, s.DB())
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("guard: %v", err)
	}
}

func TestGuard_NilStore(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Guard(context.Background()); err == nil {
		t.Fatalf("expected error for nil store")
	}
}

func TestSQLiteAdapter_TracesQueries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := openTestSQLite(t, true, zerolog.New(&buf))
	ctx := context.Background()

	if _, err := s.SQL.Exec(ctx, `create table t (id integer primary key, name text not null)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(buf.String(), `"component":"sqlite"`) {
		t.Fatalf("expected sqlite trace line, got %q", buf.String())
	}
}

func TestHelpers_OverSQLite(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t, false, zerolog.Nop())
	ctx := context.Background()

	if _, err := s.SQL.Exec(ctx, `create table t (id integer primary key, name text not null unique)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, name := range []string{"zoe", "ada"} {
		if n, err := Affected(s.SQL.Exec(ctx, `insert into t (name) values (?)`, name)); err != nil || n != 1 {
			t.Fatalf("insert %s: n=%d err=%v", name, n, err)
		}
	}
	if n, err := Affected(s.SQL.Exec(ctx, `insert into t (name) values (?) on conflict do nothing`, "zoe")); err != nil || n != 0 {
		t.Fatalf("duplicate insert: n=%d err=%v", n, err)
	}
	if _, err := Affected(s.SQL.Exec(ctx, `insert into nope values (1)`)); err == nil {
		t.Fatalf("expected exec error to pass through")
	}

	scan := func(r Row) (string, error) {
		var name string
		err := r.Scan(&name)
		return name, err
	}
	names, err := Many(ctx, s.SQL, scan, `select name from t order by id`)
	if err != nil || len(names) != 2 || names[0] != "zoe" || names[1] != "ada" {
		t.Fatalf("many = %v err=%v", names, err)
	}
	none, err := Many(ctx, s.SQL, scan, `select name from t where id > ?`, 99)
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("empty many = %#v err=%v", none, err)
	}
}

type recordTracer struct{ events []QueryEvent }

func (r *recordTracer) OnQuery(_ context.Context, ev QueryEvent) { r.events = append(r.events, ev) }

func TestWithTracer_SeesRowScans(t *testing.T) {
	t.Parallel()

	rec := &recordTracer{}
	s, err := Open(context.Background(), Config{
		SQLite: SQLiteConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "t.db"), SlowQueryMs: 60_000},
	}, WithTracer(rec))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	var n int
	if err := s.SQL.QueryRow(context.Background(), `select  1
		+ 1`).Scan(&n); err != nil || n != 2 {
		t.Fatalf("scan n=%d err=%v", n, err)
	}
	if len(rec.events) != 1 {
		t.Fatalf("events = %d", len(rec.events))
	}
	if ev := rec.events[0]; ev.Slow || ev.Err != nil {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestWithTracer_RejectsNil(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{
		SQLite: SQLiteConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "t.db")},
	}, WithTracer(nil))
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want InvalidArgument, got %v", err)
	}
}

func TestLogTracer_CompactsSQL(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := LogTracer(zerolog.New(&buf).Level(zerolog.ErrorLevel), "pg")
	tr.OnQuery(context.Background(), QueryEvent{SQL: "select\n\t1", Slow: true})

	out := buf.String()
	if !strings.Contains(out, `"sql":"select 1"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("trace line = %q", out)
	}
	if !strings.Contains(out, `"message":"pg query"`) {
		t.Fatalf("trace message = %q", out)
	}
}

func TestSQLiteAdapter_TxCommitAndRollback(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t, false, zerolog.Nop())
	ctx := context.Background()

	if _, err := s.SQL.Exec(ctx, `create table t (v integer not null)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.SQL.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `insert into t (v) values (10)`)
		return err
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	boom := errors.New("rollback")
	if err := s.SQL.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `insert into t (v) values (20)`); err != nil {
			return err
		}
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("tx err = %v", err)
	}

	rs, err := s.SQL.Query(ctx, `select v from t`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rs.Close()
	if cols := rs.Columns(); len(cols) != 1 || cols[0] != "v" {
		t.Fatalf("columns = %v", cols)
	}
	var got []int
	for rs.Next() {
		var v int
		if err := rs.Scan(&v); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, v)
	}
	if len(got) != 1 || got[0] != 10 {
		t.Fatalf("rows = %v", got)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("STORE_DSN", "postgres://u:p@localhost:5432/cinebot")
	t.Setenv("STORE_MAX_CONNS", "9")
	t.Setenv("USAGE_CLICKHOUSE_DSN", "clickhouse://localhost:9000/default")

	cfg, err := FromConfig(config.New(), "bot")
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if !cfg.PG.Enabled || cfg.PG.MaxConns != 9 || cfg.SQLite.Enabled {
		t.Fatalf("unexpected sql config %+v", cfg)
	}
	if !cfg.CH.Enabled || cfg.CH.ClientTag != "bot" {
		t.Fatalf("unexpected ch config %+v", cfg.CH)
	}

	t.Setenv("STORE_DSN", "sqlite:///tmp/x.db")
	t.Setenv("USAGE_CLICKHOUSE_DSN", "")
	cfg, err = FromConfig(config.New(), "ctl")
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if !cfg.SQLite.Enabled || cfg.SQLite.Path != "/tmp/x.db" || cfg.CH.Enabled {
		t.Fatalf("unexpected sqlite config %+v", cfg)
	}

	t.Setenv("STORE_DSN", "mysql://nope")
	if _, err := FromConfig(config.New(), "ctl"); err == nil {
		t.Fatalf("expected unsupported scheme error")
	}
}
