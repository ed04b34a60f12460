package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/icebreaker/internal/icebreaker"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Side    string `json:"side,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind icebreaker.Kind) int {
	switch kind {
	case icebreaker.KindInvalidInput:
		return http.StatusBadRequest
	case icebreaker.KindNotFound:
		return http.StatusNotFound
	case icebreaker.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an error envelope. The wrapped cause is logged,
// never sent.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var e *icebreaker.Error
	if !errors.As(err, &e) {
		e = &icebreaker.Error{Kind: icebreaker.KindInternal, Message: "unexpected error", Err: err}
	}

	status := StatusOf(e.Kind)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			logger.String("kind", string(e.Kind)),
			logger.String("side", string(e.Side)),
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err))
	} else {
		log.Info("request rejected",
			logger.String("kind", string(e.Kind)),
			logger.String("field", e.Field),
			logger.String("side", string(e.Side)),
			logger.String("request_id", middleware.GetReqID(r.Context())))
	}

	writeJSON(w, status, errorResponse{
		Error:   string(e.Kind),
		Message: e.Message,
		Field:   e.Field,
		Side:    string(e.Side),
	})
}
