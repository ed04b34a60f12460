// Package completion sends an assembled prompt to a generative model and
// returns the raw reply text.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/icebreaker/internal/config"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

// SystemMessage frames every generation request.
const SystemMessage = "You are a professional networking assistant. You generate compelling and personalized icebreaker messages for LinkedIn. Your tone should be friendly yet professional."

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultTemperature = 0.7
	defaultTimeout     = 45 * time.Second
)

// Completer is implemented by every model backend.
type Completer interface {
	// Complete returns the model reply for prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// CheckConfig reports domain.ErrMisconfigured without touching the network.
	CheckConfig() error
	// Name identifies the backend in logs and /infra.
	Name() string
}

// Settings shared by both backends.
type Settings struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

func (s Settings) withDefaults(model string) Settings {
	if s.Model == "" {
		s.Model = model
	}
	if s.Temperature <= 0 {
		s.Temperature = defaultTemperature
	}
	if s.Timeout <= 0 {
		s.Timeout = defaultTimeout
	}
	return s
}

// New picks the backend named by cfg.ModelProvider.
func New(cfg *config.Config, log logger.Logger) (Completer, error) {
	s := Settings{
		Model:       cfg.ModelName,
		Temperature: cfg.ModelTemperature,
		Timeout:     cfg.CompletionTimeout,
	}

	switch strings.ToLower(cfg.ModelProvider) {
	case "", ProviderOpenAI:
		s.APIKey = cfg.OpenAIAPIKey
		return NewOpenAIClient(s, cfg.OpenAIBaseURL, log), nil
	case ProviderGemini:
		s.APIKey = cfg.GeminiAPIKey
		return NewGeminiClient(s, log), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q (want %s or %s)", cfg.ModelProvider, ProviderOpenAI, ProviderGemini)
	}
}
