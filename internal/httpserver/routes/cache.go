package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/mw"
)

func init() { Register(registerCache) }

func registerCache(r chi.Router, d deps.Deps) {
	r.Route("/cache", func(c chi.Router) {
		c.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger))
		c.Delete("/", handlers.FlushCache(d))
		c.Delete("/{handle}", handlers.InvalidateHandle(d))
	})
}
