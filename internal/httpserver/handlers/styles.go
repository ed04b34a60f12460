package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
)

type styleResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Styles lists the writing-style presets in display order.
func Styles(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := d.Styles.GetAllStyles()
		out := make([]styleResponse, 0, len(all))
		for _, s := range all {
			out = append(out, styleResponse{Value: s.ID, Label: s.Label})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
