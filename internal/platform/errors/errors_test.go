package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusByCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeUnknown:            http.StatusInternalServerError,
		ErrorCodeNotFound:           http.StatusNotFound,
		ErrorCodeInvalidArgument:    http.StatusUnprocessableEntity,
		ErrorCodeValidation:         http.StatusBadRequest,
		ErrorCodeMalformedToken:     http.StatusBadRequest,
		ErrorCodeDuplicateKey:       http.StatusConflict,
		ErrorCodeUnauthorized:       http.StatusUnauthorized,
		ErrorCodeForbidden:          http.StatusForbidden,
		ErrorCodeTooManyRequests:    http.StatusTooManyRequests,
		ErrorCodeUnavailable:        http.StatusServiceUnavailable,
		ErrorCodeStorageUnavailable: http.StatusServiceUnavailable,
		ErrorCodeDB:                 http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatus(New(code, "x")); got != want {
			t.Fatalf("code %d: status %d, want %d", code, got, want)
		}
	}
	if got := HTTPStatus(stderrs.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("plain error status = %d", got)
	}
}

func TestWrapChainAndMutators(t *testing.T) {
	cause := stderrs.New("disk full")
	e := Wrapf(cause, ErrorCodeDB, "insert %s", "watchlist")
	if e.Error() != "insert watchlist: disk full" {
		t.Fatalf("message = %q", e.Error())
	}
	if Root(e) != cause || !stderrs.Is(e, cause) {
		t.Fatalf("cause lost")
	}

	tagged := WithField(WithOp(e, "watchlist.add"), "item_id")
	ee, ok := As(fmt.Errorf("outer: %w", tagged))
	if !ok || ee.Op() != "watchlist.add" || ee.Field() != "item_id" || ee.Code() != ErrorCodeDB {
		t.Fatalf("unexpected %+v", ee)
	}
	if orig, _ := As(e); orig.Op() != "" {
		t.Fatalf("WithOp mutated the original")
	}

	plain := stderrs.New("x")
	if WithOp(plain, "op") != plain {
		t.Fatalf("foreign errors should pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	w := WireFrom(WithField(Forbiddenf("admins only"), "actor"))
	if w.Code != ErrorCodeForbidden || w.Message != "admins only" || w.Field != "actor" {
		t.Fatalf("wire = %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		sqlstate string
		want     ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeInvalidArgument},
		{"22P02", ErrorCodeInvalidArgument},
		{"23502", ErrorCodeValidation},
		{"25006", ErrorCodeUnavailable},
		{"40001", ErrorCodeDB},
		{"XX000", ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(fmt.Errorf("q: %w", &pgconn.PgError{Code: c.sqlstate}))
		if !ok || got != c.want {
			t.Fatalf("%s: got %d ok=%v, want %d", c.sqlstate, got, ok, c.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("plain")); ok {
		t.Fatalf("plain error should not map")
	}
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil in should be nil out")
	}
	if !IsDuplicateKey(FromPostgres(&pgconn.PgError{Code: "23505"}, "add")) {
		t.Fatalf("duplicate key lost through FromPostgres")
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"unique", &pgconn.PgError{Code: "23505"}, false},
		{"commit text", stderrs.New("commit unexpectedly resulted in rollback"), true},
		{"canceled", context.Canceled, false},
		{"plain", stderrs.New("syntax error"), false},
	}
	for _, c := range cases {
		if got := Retryable(c.err); got != c.want {
			t.Fatalf("%s: Retryable = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if got := ErrorCodeStorageUnavailable.String(); got != "storage_unavailable" {
		t.Fatalf("name = %q", got)
	}
	if got := ErrorCode(999).String(); got != "code(999)" {
		t.Fatalf("unknown name = %q", got)
	}
	if got := HTTPStatusCode(ErrorCode(999)); got != http.StatusInternalServerError {
		t.Fatalf("unknown status = %d", got)
	}
	var nilErr *Error
	if nilErr.Error() != "<nil>" || Root(nil) != nil {
		t.Fatalf("nil handling")
	}
}
