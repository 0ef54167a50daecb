package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebot/internal/core/media"
	modkit "cinebot/internal/modkit"
	phttp "cinebot/internal/platform/net/http"
	"cinebot/internal/platform/store/storetest"
	"cinebot/internal/services/watchlist/domain"
)

func mount(t *testing.T) (*Module, http.Handler) {
	t.Helper()
	s := storetest.Memory(t)
	m := New(modkit.Deps{SQL: s.SQL, Dialect: s.Dialect})
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	return m, r.Mux()
}

func do(t *testing.T, h http.Handler, method, path string) (int, phttp.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	var env phttp.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestModule_NameAndPrefix(t *testing.T) {
	t.Parallel()
	m, _ := mount(t)
	assert.Equal(t, "watchlist", m.Name())
	assert.Equal(t, "/watchlist", m.Prefix())
	_, ok := m.Ports().(Ports)
	assert.True(t, ok)
}

func TestModule_ListAndRemoveOverHTTP(t *testing.T) {
	t.Parallel()
	m, h := mount(t)
	ctx := context.Background()

	ref := media.Ref{Type: media.Movie, ID: 550}
	out, err := m.Port().Add(ctx, domain.AddInput{OwnerID: 7, Ref: ref})
	require.NoError(t, err)
	require.Equal(t, domain.Added, out)

	code, env := do(t, h, http.MethodGet, "/watchlist/7")
	require.Equal(t, http.StatusOK, code)
	items, ok := env.Data.([]any)
	require.True(t, ok, "data %T", env.Data)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.EqualValues(t, 7, first["owner_id"])

	code, env = do(t, h, http.MethodDelete, "/watchlist/7/movie/550")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"removed": true}, env.Data)

	list, err := m.Port().List(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestModule_BadParams(t *testing.T) {
	t.Parallel()
	_, h := mount(t)

	code, env := do(t, h, http.MethodGet, "/watchlist/abc")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.NotEmpty(t, env.Error)

	code, _ = do(t, h, http.MethodDelete, "/watchlist/7/person/1")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}
