package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz reports 503 until both providers have keys and at least one style
// is loaded. The cache is optional and never blocks readiness.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Generator.CheckConfig(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Reason: err.Error()})
			return
		}
		if d.Styles.Count() == 0 {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Reason: "no writing styles loaded"})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
