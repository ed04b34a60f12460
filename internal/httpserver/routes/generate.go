package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/mw"
)

func init() { RegisterAPI(registerGenerate) }

func registerGenerate(r chi.Router, d deps.Deps) {
	r.With(mw.JSONBody).Post("/generate-icebreaker", handlers.GenerateIcebreaker(d))
}
