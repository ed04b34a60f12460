package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
)

type componentStatus struct {
	OK           bool             `json:"ok"`
	Mode         string           `json:"mode,omitempty"`
	Impact       string           `json:"impact,omitempty"`
	Error        string           `json:"error,omitempty"`
	StylesLoaded *int             `json:"styles_loaded,omitempty"`
	LastReload   string           `json:"last_reload,omitempty"`
	Source       string           `json:"source,omitempty"`
	Usage        map[string]int64 `json:"usage,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of every collaborator.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"generator": checkGenerator(d),
			"styles":    checkStyles(d),
			"cache":     checkCache(r.Context(), d),
		}
		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

// determineMode: "critical" when requests cannot succeed, "degraded" when
// the cache is down, "optimal" otherwise.
func determineMode(components map[string]componentStatus) string {
	if !components["generator"].OK || !components["styles"].OK {
		return "critical"
	}
	if c := components["cache"]; !c.OK && c.Mode != "disabled" {
		return "degraded"
	}
	return "optimal"
}

func checkGenerator(d deps.Deps) componentStatus {
	if err := d.Generator.CheckConfig(); err != nil {
		return componentStatus{OK: false, Mode: d.Generator.ModelName(), Impact: "generation-disabled", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: d.Generator.ModelName()}
}

func checkStyles(d deps.Deps) componentStatus {
	count := d.Styles.Count()
	last := "never"
	if t := d.Styles.GetLastReload(); !t.IsZero() {
		last = t.Format(time.RFC3339)
	}
	source := "built-in"
	if d.StylesFile != "" {
		source = d.StylesFile
	}
	return componentStatus{OK: count > 0, StylesLoaded: &count, LastReload: last, Source: source}
}

func checkCache(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: false, Mode: "disabled", Impact: "every-request-hits-provider"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: "degraded", Impact: "every-request-hits-provider", Error: err.Error()}
	}

	status := componentStatus{OK: true, Mode: "optimal", Impact: "payloads-cached"}
	if usage, err := d.Store.GetUsageStats(ctx); err == nil {
		status.Usage = usage
	}
	return status
}
