package completion

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient generates through the Google GenAI SDK. The SDK client is
// built lazily on the first call so a missing key never fails startup.
type GeminiClient struct {
	settings Settings
	logger   logger.Logger

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGeminiClient(s Settings, log logger.Logger) *GeminiClient {
	return &GeminiClient{settings: s.withDefaults(defaultGeminiModel), logger: log}
}

func (c *GeminiClient) Name() string { return ProviderGemini + "/" + c.settings.Model }

func (c *GeminiClient) CheckConfig() error {
	if c.settings.APIKey == "" {
		return errors.Wrap(domain.ErrMisconfigured, "GEMINI_API_KEY is not set")
	}
	return nil
}

func (c *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		c.client, c.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.settings.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return c.client, c.initErr
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.CheckConfig(); err != nil {
		return "", err
	}

	client, err := c.sdk(ctx)
	if err != nil {
		return "", errors.Wrapf(domain.ErrUpstream, "create genai client: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.settings.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, c.settings.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemMessage, genai.RoleUser),
		Temperature:       genai.Ptr(float32(c.settings.Temperature)),
	})
	if err != nil {
		return "", errors.Wrapf(domain.ErrUpstream, "gemini generate: %v", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.Wrap(domain.ErrUpstream, "gemini returned no content")
	}

	c.logger.Debug("completion done",
		logger.String("provider", c.Name()),
		logger.Duration("took", time.Since(start)),
		logger.Int("reply_len", len(text)),
	)
	return text, nil
}
