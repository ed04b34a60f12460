package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/icebreaker/internal/linkedin"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

type cacheResponse struct {
	Deleted int    `json:"deleted"`
	Message string `json:"message,omitempty"`
}

// FlushCache drops every cached provider payload.
func FlushCache(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Store == nil {
			writeJSON(w, http.StatusConflict, cacheResponse{Message: "payload cache is disabled"})
			return
		}
		n, err := d.Store.FlushCache(r.Context())
		if err != nil {
			d.Logger.Error("cache flush failed", logger.Int("deleted", n), logger.Error(err))
			writeJSON(w, http.StatusBadGateway, cacheResponse{Deleted: n, Message: "cache unavailable"})
			return
		}
		d.Logger.Info("payload cache flushed", logger.Int("deleted", n))
		writeJSON(w, http.StatusOK, cacheResponse{Deleted: n})
	}
}

// InvalidateHandle drops the cached profile and posts of one handle, so the
// next request refetches them.
func InvalidateHandle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Store == nil {
			writeJSON(w, http.StatusConflict, cacheResponse{Message: "payload cache is disabled"})
			return
		}
		h := domain.Handle(strings.TrimSpace(chi.URLParam(r, "handle")))
		if h == "" {
			writeJSON(w, http.StatusBadRequest, cacheResponse{Message: "handle is required"})
			return
		}
		n, err := d.Store.Invalidate(r.Context(), linkedin.CacheKeys(h)...)
		if err != nil {
			d.Logger.Error("cache invalidation failed", logger.String("handle", h.String()), logger.Error(err))
			writeJSON(w, http.StatusBadGateway, cacheResponse{Message: "cache unavailable"})
			return
		}
		d.Logger.Info("payload cache invalidated", logger.String("handle", h.String()), logger.Int("deleted", n))
		writeJSON(w, http.StatusOK, cacheResponse{Deleted: n})
	}
}
