package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
)

type buildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

type healthzResponse struct {
	Status string    `json:"status"`
	Uptime string    `json:"uptime"`
	Model  string    `json:"model"`
	Build  buildInfo `json:"build"`
}

// Healthz answers as long as the process serves HTTP. It never calls out.
func Healthz(d deps.Deps) http.HandlerFunc {
	build := buildInfo{Version: d.Version, Commit: d.Commit, BuildDate: d.BuildDate, GoVersion: d.GoVersion}
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status: "ok",
			Uptime: time.Since(d.StartTime).Truncate(time.Second).String(),
			Model:  d.Generator.ModelName(),
			Build:  build,
		})
	}
}
