package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/icebreaker/internal/config"
	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

func TestOpenAICompleteSendsChatRequest(t *testing.T) {
	var got chatRequest
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Message 1: Hi"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(Settings{APIKey: "sk-test"}, srv.URL+"/", logger.NewNop())
	reply, err := c.Complete(context.Background(), "the prompt")
	require.NoError(t, err)

	assert.Equal(t, "Message 1: Hi", reply)
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, SystemMessage, got.Messages[0].Content)
	assert.Equal(t, chatMessage{Role: "user", Content: "the prompt"}, got.Messages[1])
}

func TestOpenAIFailuresAreUpstream(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		inMsg  string
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, "bad key"},
		{"server error", http.StatusInternalServerError, `upstream exploded`, "upstream exploded"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no content"},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, "no content"},
		{"garbage", http.StatusOK, `not json`, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewOpenAIClient(Settings{APIKey: "k"}, srv.URL, logger.NewNop())
			_, err := c.Complete(context.Background(), "p")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUpstream)
			assert.Contains(t, err.Error(), tt.inMsg)
		})
	}
}

func TestOpenAIMissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	c := NewOpenAIClient(Settings{}, srv.URL, logger.NewNop())
	_, err := c.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, domain.ErrMisconfigured)
	assert.False(t, called)
}

func TestGeminiMissingKey(t *testing.T) {
	c := NewGeminiClient(Settings{}, logger.NewNop())
	assert.ErrorIs(t, c.CheckConfig(), domain.ErrMisconfigured)

	_, err := c.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, domain.ErrMisconfigured)
	assert.True(t, strings.HasPrefix(c.Name(), "gemini/"))
}

func TestNewPicksProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{"", "openai/gpt-4o-mini", false},
		{"openai", "openai/gpt-4o-mini", false},
		{"Gemini", "gemini/" + defaultGeminiModel, false},
		{"claude", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c, err := New(&config.Config{ModelProvider: tt.provider}, logger.NewNop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
			assert.ErrorIs(t, c.CheckConfig(), domain.ErrMisconfigured)
		})
	}
}

func TestNewHonoursModelOverride(t *testing.T) {
	c, err := New(&config.Config{ModelProvider: "openai", ModelName: "gpt-4o", OpenAIAPIKey: "k"}, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o", c.Name())
	assert.NoError(t, c.CheckConfig())
}
