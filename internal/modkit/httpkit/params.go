package httpkit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	perrs "cinebot/internal/platform/errors"
)

// Param returns a named path parameter from the chi route context
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }

// ParamInt64 parses a named path parameter as a base 10 int64
func ParamInt64(r *http.Request, name string) (int64, error) {
	raw := Param(r, name)
	if raw == "" {
		return 0, perrs.WithField(perrs.InvalidArgf("missing path parameter %s", name), name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, perrs.WithField(perrs.InvalidArgf("%s must be an integer", name), name)
	}
	return v, nil
}
