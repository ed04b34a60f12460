package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

const (
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	maxReplyBytes        = 1 << 20
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// OpenAIClient calls the chat completions endpoint directly.
type OpenAIClient struct {
	settings   Settings
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewOpenAIClient(s Settings, baseURL string, log logger.Logger) *OpenAIClient {
	s = s.withDefaults(defaultOpenAIModel)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIClient{
		settings:   s,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: s.Timeout},
		logger:     log,
	}
}

func (c *OpenAIClient) Name() string { return ProviderOpenAI + "/" + c.settings.Model }

func (c *OpenAIClient) CheckConfig() error {
	if c.settings.APIKey == "" {
		return errors.Wrap(domain.ErrMisconfigured, "OPENAI_API_KEY is not set")
	}
	return nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.CheckConfig(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.settings.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: c.settings.Temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "create chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.settings.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(domain.ErrUpstream, "openai request: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", errors.Wrapf(domain.ErrUpstream, "read openai response: %v", err)
	}

	var out chatResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if decodeErr == nil && out.Error != nil {
			msg = out.Error.Message
		}
		return "", errors.Wrapf(domain.ErrUpstream, "openai returned %d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return "", errors.Wrapf(domain.ErrUpstream, "decode openai response: %v", decodeErr)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", errors.Wrap(domain.ErrUpstream, "openai returned no content")
	}

	c.logger.Debug("completion done",
		logger.String("provider", c.Name()),
		logger.Duration("took", time.Since(start)),
		logger.Int("reply_len", len(out.Choices[0].Message.Content)),
	)
	return out.Choices[0].Message.Content, nil
}
