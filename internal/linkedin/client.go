// Package linkedin fetches profiles and recent posts from the RapidAPI
// LinkedIn data provider.
package linkedin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

const (
	postsPath       = "/get-profile-posts"
	maxBodyBytes    = 4 << 20
	defaultTimeout  = 20 * time.Second
	defaultHost     = "linkedin-data-api.p.rapidapi.com"
	resourceProfile = "profile"
	resourcePosts   = "posts"
)

// PayloadCache stores raw provider bodies. Implementations must be safe for
// concurrent use; a miss is (nil, false, nil).
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
}

// Options configures a Client.
type Options struct {
	APIKey  string
	Host    string // x-rapidapi-host
	BaseURL string
	Timeout time.Duration
	Cache   PayloadCache // optional
}

// Client talks to the data provider. It holds no per-request state.
type Client struct {
	apiKey     string
	host       string
	baseURL    string
	httpClient *http.Client
	cache      PayloadCache
	logger     logger.Logger
}

// NewClient builds a Client. An empty API key is accepted here and reported
// by every fetch as domain.ErrMisconfigured.
func NewClient(opts Options, log logger.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Host == "" {
		opts.Host = defaultHost
	}
	return &Client{
		apiKey:     opts.APIKey,
		host:       opts.Host,
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		cache:      opts.Cache,
		logger:     log,
	}
}

// CheckConfig reports domain.ErrMisconfigured when no API key is set.
func (c *Client) CheckConfig() error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: profile data API key is not set", domain.ErrMisconfigured)
	}
	return nil
}

// FetchProfile retrieves and decodes the profile of h.
func (c *Client) FetchProfile(ctx context.Context, h domain.Handle) (domain.Profile, error) {
	if err := c.CheckConfig(); err != nil {
		return domain.Profile{}, err
	}

	key := cacheKey(resourceProfile, h)
	if body, ok := c.cached(ctx, key); ok {
		if p, err := decodeProfile(h, body); err == nil {
			return p, nil
		}
	}

	body, err := c.get(ctx, c.baseURL, h)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch profile %s: %w", h, err)
	}

	p, err := decodeProfile(h, body)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch profile %s: %w", h, err)
	}

	c.store(ctx, key, body)
	return p, nil
}

// FetchPosts retrieves and decodes the recent posts of h, newest first as
// returned by the provider.
func (c *Client) FetchPosts(ctx context.Context, h domain.Handle) ([]domain.Post, error) {
	if err := c.CheckConfig(); err != nil {
		return nil, err
	}

	key := cacheKey(resourcePosts, h)
	if body, ok := c.cached(ctx, key); ok {
		if posts, err := decodePosts(h, body); err == nil {
			return posts, nil
		}
	}

	body, err := c.get(ctx, c.baseURL+postsPath, h)
	if err != nil {
		return nil, fmt.Errorf("fetch posts %s: %w", h, err)
	}

	posts, err := decodePosts(h, body)
	if err != nil {
		return nil, fmt.Errorf("fetch posts %s: %w", h, err)
	}

	c.store(ctx, key, body)
	return posts, nil
}

// get performs one GET and maps transport outcomes onto the domain sentinels.
func (c *Client) get(ctx context.Context, endpoint string, h domain.Handle) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid provider url: %v", domain.ErrMisconfigured, err)
	}
	q := u.Query()
	q.Set("username", h.String())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: provider returned 404 for %s", domain.ErrNotFound, h)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: provider returned status %d", domain.ErrUpstream, resp.StatusCode)
	}

	return body, nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("payload cache read failed", logger.String("key", key), logger.Error(err))
		return nil, false
	}
	if ok {
		c.logger.Debug("payload cache hit", logger.String("key", key))
	}
	return body, ok
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if c.cache == nil {
		return
	}
	// Best effort: a cache failure never fails the fetch.
	if err := c.cache.Set(ctx, key, body); err != nil {
		c.logger.Warn("payload cache write failed", logger.String("key", key), logger.Error(err))
	}
}

func cacheKey(resource string, h domain.Handle) string {
	return resource + ":" + h.String()
}

// CacheKeys lists every payload cache key a handle can occupy.
func CacheKeys(h domain.Handle) []string {
	return []string{cacheKey(resourceProfile, h), cacheKey(resourcePosts, h)}
}
