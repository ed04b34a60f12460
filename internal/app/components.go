package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/icebreaker/internal/completion"
	"github.com/MrSnakeDoc/icebreaker/internal/config"
	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/icebreaker"
	"github.com/MrSnakeDoc/icebreaker/internal/index"
	"github.com/MrSnakeDoc/icebreaker/internal/linkedin"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
	"github.com/MrSnakeDoc/icebreaker/internal/redis"
	redisstore "github.com/MrSnakeDoc/icebreaker/internal/store/redis"
)

// Components is the request pipeline and the collaborators it was built from.
// Shared by the server and the one-shot CLI.
type Components struct {
	Service     *icebreaker.Service
	Styles      *index.MemoryIndex
	Store       *redisstore.Store // nil when the cache is disabled or unreachable
	redisClient *goredis.Client
}

// Build wires the pipeline from cfg. Missing API keys are not an error here;
// they surface per request as misconfiguration. An unreachable Redis only
// disables the cache.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*Components, error) {
	c := &Components{Styles: index.NewMemoryIndex(domain.DefaultStyles())}

	opts := linkedin.Options{
		APIKey:  cfg.ProfileAPIKey,
		Host:    cfg.ProfileAPIHost,
		BaseURL: cfg.ProfileAPIURL,
		Timeout: cfg.ProfileTimeout,
	}

	if cfg.CacheEnabled() {
		client, err := redis.New(ctx, redis.OptionsFromConfig(cfg), log)
		if err != nil {
			log.Warn("payload cache disabled", logger.Error(err))
		} else {
			c.redisClient = client
			c.Store = redisstore.NewStore(client, cfg.CacheTTL)
			opts.Cache = c.Store
			log.Info("payload cache enabled", logger.Duration("ttl", cfg.CacheTTL))
		}
	}

	model, err := completion.New(cfg, log)
	if err != nil {
		c.Close(log)
		return nil, fmt.Errorf("model provider: %w", err)
	}

	var svcOpts []icebreaker.Option
	if c.Store != nil {
		svcOpts = append(svcOpts, icebreaker.WithUsageRecorder(c.Store))
	}

	c.Service = icebreaker.NewService(linkedin.NewClient(opts, log), model, c.Styles, log, svcOpts...)

	if err := c.Service.CheckConfig(); err != nil {
		log.Warn("generation is not fully configured, requests will fail until it is", logger.Error(err))
	}

	return c, nil
}

// Close releases the Redis connection, if any.
func (c *Components) Close(log logger.Logger) {
	if c.redisClient == nil {
		return
	}
	if err := c.redisClient.Close(); err != nil {
		log.Warnf("failed to close redis: %v", err)
		return
	}
	log.Info("redis closed cleanly")
}
