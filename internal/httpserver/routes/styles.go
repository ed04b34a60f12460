package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerStyles) }

func registerStyles(r chi.Router, d deps.Deps) {
	r.Get("/styles", handlers.Styles(d))
}
