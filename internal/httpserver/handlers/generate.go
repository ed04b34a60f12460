package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/icebreaker/internal/icebreaker"
)

type generateRequest struct {
	SenderURL    string `json:"senderUrl"`
	ReceiverURL  string `json:"receiverUrl"`
	Proposal     string `json:"proposal"`
	Problem      string `json:"problem,omitempty"`
	WritingStyle string `json:"writingStyle,omitempty"`
}

type generateResponse struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	Messages   []string  `json:"messages"`
	Structured bool      `json:"structured"`
}

// GenerateIcebreaker handles POST /api/generate-icebreaker.
func GenerateIcebreaker(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body generateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			msg := "request body must be a JSON object"
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				msg = "request body is too large"
			}
			writeError(w, r, d.Logger, &icebreaker.Error{Kind: icebreaker.KindInvalidInput, Message: msg, Err: err})
			return
		}

		res, err := d.Generator.Generate(r.Context(), icebreaker.Request{
			SenderURL:   body.SenderURL,
			ReceiverURL: body.ReceiverURL,
			Objective:   body.Proposal,
			Challenge:   body.Problem,
			Style:       body.WritingStyle,
		})
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		writeJSON(w, http.StatusOK, generateResponse{
			ID:         res.ID.String(),
			CreatedAt:  res.CreatedAt,
			Messages:   res.Messages,
			Structured: res.Structured,
		})
	}
}
