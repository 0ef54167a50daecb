// Package http provides http transport for usage statistics
package http

import (
	stdhttp "net/http"
	"time"

	"cinebot/internal/modkit/httpkit"
	perr "cinebot/internal/platform/errors"
	svc "cinebot/internal/services/usage/service"
)

// Register mounts usage endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s, now: time.Now}
	httpkit.Get(r, "/stats", h.stats)
}

type handlers struct {
	svc svc.Service
	now func() time.Time
}

// swagger:route GET /usage/stats Usage usageStats
// @Summary Aggregate usage statistics
// @Description Total searches, distinct users and searches in the trailing 24 hours. Admin only.
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Stats "ok"
// @Failure 403 {object} httpkit.Envelope "forbidden"
// @Router /usage/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	actor, ok, err := httpkit.Actor(r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.Forbiddenf("usage statistics are restricted")
	}
	return h.svc.Aggregate(r.Context(), actor, h.now())
}
