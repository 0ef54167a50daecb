// Package http provides http transport for the watchlist
package http

import (
	stdhttp "net/http"

	"cinebot/internal/core/media"
	"cinebot/internal/modkit/httpkit"
	"cinebot/internal/services/watchlist/domain"
	svc "cinebot/internal/services/watchlist/service"
)

// Register mounts watchlist endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/{owner}", h.list)
	httpkit.Delete(r, "/{owner}/{type}/{id}", h.remove)
}

type handlers struct{ svc svc.Service }

// RemoveResult reports whether a delete found an entry
type RemoveResult struct {
	Removed bool `json:"removed" example:"true"`
}

// swagger:route GET /watchlist/{owner} Watchlist watchlistList
// @Summary List a user's watchlist in insertion order
// @Tags Watchlist
// @Produce json
// @Security BearerAuth
// @Param owner path int true "Owner id"
// @Success 200 {array} domain.Entry "ok"
// @Router /watchlist/{owner} [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.ParamInt64(r, "owner")
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), owner)
}

// swagger:route DELETE /watchlist/{owner}/{type}/{id} Watchlist watchlistRemove
// @Summary Remove one title from a user's watchlist
// @Tags Watchlist
// @Produce json
// @Security BearerAuth
// @Param owner path int true "Owner id"
// @Param type path string true "movie or series"
// @Param id path int true "Provider item id"
// @Success 200 {object} RemoveResult "ok"
// @Router /watchlist/{owner}/{type}/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.ParamInt64(r, "owner")
	if err != nil {
		return nil, err
	}
	mt, err := media.ParseType(httpkit.Param(r, "type"))
	if err != nil {
		return nil, err
	}
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	ok, err := h.svc.Remove(r.Context(), domain.RemoveInput{OwnerID: owner, Ref: media.Ref{Type: mt, ID: id}})
	if err != nil {
		return nil, err
	}
	return RemoveResult{Removed: ok}, nil
}
