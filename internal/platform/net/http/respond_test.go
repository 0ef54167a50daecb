package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
)

func serve(t *testing.T, h stdhttp.Handler, req *stdhttp.Request) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestHandle_SuccessEnvelope(t *testing.T) {
	t.Parallel()

	h := Handle(func(*stdhttp.Request) Response { return OK(map[string]int{"n": 1}) })
	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	req = req.WithContext(logger.WithRequest(req.Context(), "req-1"))

	rec, env := serve(t, h, req)
	if rec.Code != stdhttp.StatusOK || env.StatusCode != 200 || env.Status != "OK" {
		t.Fatalf("status = %d %+v", rec.Code, env)
	}
	if env.RequestID != "req-1" {
		t.Fatalf("request id = %q", env.RequestID)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
	if m, ok := env.Data.(map[string]any); !ok || m["n"] != float64(1) {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestHandle_ErrorEnvelope(t *testing.T) {
	t.Parallel()

	h := Handle(func(*stdhttp.Request) Response {
		return Error(perr.WithField(perr.Newf(perr.ErrorCodeValidation, "owner_id is a required field"), "owner_id"))
	})
	rec, env := serve(t, h, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if rec.Code != stdhttp.StatusBadRequest || env.Code != perr.ErrorCodeValidation {
		t.Fatalf("status = %d %+v", rec.Code, env)
	}
	if env.Error != "owner_id is a required field" || env.Data != nil {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestHandle_HeadersAndNoContent(t *testing.T) {
	t.Parallel()

	h := Handle(func(*stdhttp.Request) Response {
		return Response{Status: stdhttp.StatusNoContent, Header: stdhttp.Header{"X-Kind": {"empty"}}}
	})
	rec, _ := serve(t, h, httptest.NewRequest(stdhttp.MethodDelete, "/", nil))
	if rec.Code != stdhttp.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("status = %d body = %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Kind") != "empty" {
		t.Fatalf("header not copied")
	}
}

func TestAdaptChi_RoutesGroupsAndMiddleware(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	tag := func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set("X-Scope", "inner")
			next.ServeHTTP(w, req)
		})
	}
	r.Route("/v", func(sub Router) {
		sub.Get("/a", Handle(func(*stdhttp.Request) Response { return OK("a") }))
		sub.Group(func(g Router) {
			g.Use(tag)
			g.Delete("/b", Handle(func(*stdhttp.Request) Response { return OK("b") }))
		})
	})

	rec, env := serve(t, r.Mux(), httptest.NewRequest(stdhttp.MethodGet, "/v/a", nil))
	if rec.Code != 200 || env.Data != "a" || rec.Header().Get("X-Scope") != "" {
		t.Fatalf("GET /v/a = %d %+v %v", rec.Code, env, rec.Header())
	}
	rec, env = serve(t, r.Mux(), httptest.NewRequest(stdhttp.MethodDelete, "/v/b", nil))
	if rec.Code != 200 || env.Data != "b" || rec.Header().Get("X-Scope") != "inner" {
		t.Fatalf("DELETE /v/b = %d %+v", rec.Code, env)
	}
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/v/b", nil))
	if rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("GET /v/b = %d", rec.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()

	off := AdaptChi(chi.NewRouter())
	MountProfiler(off, "/debug", false)
	rec := httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler = %d", rec.Code)
	}

	on := AdaptChi(chi.NewRouter())
	MountProfiler(on, "/debug", true)
	rec = httptest.NewRecorder()
	on.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("enabled profiler = %d", rec.Code)
	}
}
