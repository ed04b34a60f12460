package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/icebreaker/internal/icebreaker"
	"github.com/MrSnakeDoc/icebreaker/internal/index"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

// Generator is the request pipeline as seen by the HTTP layer.
type Generator interface {
	Generate(ctx context.Context, req icebreaker.Request) (icebreaker.Result, error)
	CheckConfig() error
	ModelName() string
}

// Cache is the optional payload cache as seen by the operator endpoints.
type Cache interface {
	Ping(ctx context.Context) error
	GetUsageStats(ctx context.Context) (map[string]int64, error)
	Invalidate(ctx context.Context, keys ...string) (int, error)
	FlushCache(ctx context.Context) (int, error)
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	RequestTimeout time.Duration      // per-request deadline (chi Timeout middleware)
	AllowedOrigins []string           // CORS origins, "*" allows any
	AllowedHosts   []string           // Host headers allowed on /reload and /cache
	AllowedCIDRS   []string           // IPs allowed on the operator endpoints
	TrustProxy     bool               // true if running behind a trusted reverse proxy
	Generator      Generator          // icebreaker pipeline
	Styles         *index.MemoryIndex // writing-style presets
	StylesFile     string             // empty when only built-in presets are served
	Store          Cache              // nil when the payload cache is disabled
	ReloadTrigger  chan struct{}      // manual styles reload, nil without a styles file
}
