package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "cinebot/internal/platform/errors"
	pnet "cinebot/internal/platform/net"
)

type portFunc func(*http.Request) (string, error)

func (f portFunc) Parse(r *http.Request) (string, error) { return f(r) }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAuth_StoresPrincipalOrRejects(t *testing.T) {
	t.Parallel()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { seen = pnet.UserID(r.Context()) })
	port := portFunc(func(r *http.Request) (string, error) {
		if r.Header.Get("X-User") == "" {
			return "", perr.Unauthorizedf("missing bearer token")
		}
		return r.Header.Get("X-User"), nil
	})
	h := Auth(port, writeJSON)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User", "42")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "42" {
		t.Fatalf("principal = %q", seen)
	}

	seen = ""
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var w pnet.Wire
	_ = json.Unmarshal(rec.Body.Bytes(), &w)
	if rec.Code != http.StatusUnauthorized || w.Code != perr.ErrorCodeUnauthorized || seen != "" {
		t.Fatalf("rejected = %d %+v seen=%q", rec.Code, w, seen)
	}
}

func TestAuth_NilPortPassesThrough(t *testing.T) {
	t.Parallel()

	called := false
	h := Auth(nil, writeJSON)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Fatalf("nil port should not block")
	}
}

func TestRecoverJSON(t *testing.T) {
	t.Parallel()

	h := RequestID()(RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("kaboom"))
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var w pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &w); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusInternalServerError || w.Code != perr.ErrorCodePanic {
		t.Fatalf("recovered = %d %+v", rec.Code, w)
	}
	if strings.Contains(rec.Body.String(), "kaboom") {
		t.Fatalf("panic value leaked: %s", rec.Body.String())
	}
	if w.RequestID == "" || rec.Header().Get("X-Request-ID") != w.RequestID {
		t.Fatalf("request id not mirrored: %q vs %q", w.RequestID, rec.Header().Get("X-Request-ID"))
	}
}

func TestRecoverJSON_RepanicsAbort(t *testing.T) {
	t.Parallel()

	h := RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }))
	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Fatalf("want ErrAbortHandler, got %v", v)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestStatusWriter_Counts(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec, status: http.StatusOK}
	sw.WriteHeader(http.StatusTeapot)
	_, _ = sw.Write([]byte("abc"))
	_, _ = sw.Write(bytes.Repeat([]byte("x"), 7))
	if sw.status != http.StatusTeapot || sw.bytes != 10 || rec.Code != http.StatusTeapot {
		t.Fatalf("status=%d bytes=%d", sw.status, sw.bytes)
	}
}

func TestAccessLog_PassesResponseThrough(t *testing.T) {
	t.Parallel()

	h := AccessLog(0)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	if rec.Code != http.StatusCreated || rec.Body.String() != "ok" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestCORS_Defaults(t *testing.T) {
	t.Parallel()

	h := CORS(CORSOptions{AllowedOrigins: []string{"https://ops.example"}})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://ops.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://ops.example" {
		t.Fatalf("preflight headers = %v", rec.Header())
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete) {
		t.Fatalf("DELETE not allowed: %v", rec.Header())
	}
}
