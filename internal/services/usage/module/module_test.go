package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	modkit "cinebot/internal/modkit"
	pnet "cinebot/internal/platform/net"
	phttp "cinebot/internal/platform/net/http"
	"cinebot/internal/platform/store/storetest"
	"cinebot/internal/services/usage/domain"
)

// asUser stands in for the bearer middleware
func asUser(uid string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if uid != "" {
				r = r.WithContext(pnet.WithUser(r.Context(), uid))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func mount(t *testing.T, uid string) (*Module, http.Handler) {
	t.Helper()
	s := storetest.Memory(t)
	m := New(modkit.Deps{SQL: s.SQL, Dialect: s.Dialect}, Options{AdminID: 42}, modkit.WithMiddlewares(asUser(uid)))
	require.NoError(t, m.Init(context.Background()))
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	return m, r.Mux()
}

func get(t *testing.T, h http.Handler) (int, phttp.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/usage/stats", nil))
	var env phttp.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestStats_AdminSeesCounts(t *testing.T) {
	t.Parallel()
	m, h := mount(t, "42")
	assert.Equal(t, "usage", m.Name())
	assert.Equal(t, "/usage", m.Prefix())

	require.NoError(t, m.Port().Record(context.Background(), domain.RecordInput{UserID: 3, Query: "up", At: time.Now()}))

	code, env := get(t, h)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{
		"total_requests":    float64(1),
		"unique_users":      float64(1),
		"requests_last_24h": float64(1),
	}, env.Data)
}

func TestStats_OthersAreForbiddenWithoutData(t *testing.T) {
	t.Parallel()
	_, h := mount(t, "7")

	code, env := get(t, h)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Nil(t, env.Data)

	_, h = mount(t, "")
	code, _ = get(t, h)
	assert.Equal(t, http.StatusUnauthorized, code)
}
