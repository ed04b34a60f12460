package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/icebreaker/internal/config"
	"github.com/MrSnakeDoc/icebreaker/internal/httpserver"
	"github.com/MrSnakeDoc/icebreaker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
	"github.com/MrSnakeDoc/icebreaker/internal/scheduler"
	"github.com/MrSnakeDoc/icebreaker/internal/version"
)

type App struct {
	cfg        *config.Config
	logger     logger.Logger
	server     *httpserver.Server
	components *Components
	reloader   *scheduler.StylesReloader
	watcher    *scheduler.StylesWatcher
}

func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	components, err := Build(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	// Styles reloader only when an operator file is configured
	var reloader *scheduler.StylesReloader
	var reloadTrigger chan struct{}
	if cfg.StylesFile != "" {
		loggerClient.Info("styles file configured, initializing styles reloader",
			logger.String("file", cfg.StylesFile))
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewStylesReloader(
			cfg.StylesFile,
			components.Styles,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("styles file not configured, serving built-in presets")
	}

	var watcher *scheduler.StylesWatcher
	if reloader != nil && cfg.WatchStyles {
		watcher, err = scheduler.NewStylesWatcher(cfg.StylesFile, reloadTrigger, loggerClient)
		if err != nil {
			loggerClient.Warn("styles file will only reload on schedule", logger.Error(err))
			watcher = nil
		}
	}

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		Generator:      components.Service,
		Styles:         components.Styles,
		StylesFile:     cfg.StylesFile,
		ReloadTrigger:  reloadTrigger,
	}

	if components.Store != nil {
		d.Store = components.Store
	}

	return &App{
		cfg:        cfg,
		logger:     loggerClient,
		server:     httpserver.New(cfg, loggerClient, d),
		components: components,
		reloader:   reloader,
		watcher:    watcher,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting icebreaker %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("icebreaker %s (commit=%s, built=%s, go=%s, model=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion, a.components.Service.ModelName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		// A broken styles file is not fatal: built-in presets keep serving.
		if err := a.reloader.Start(ctx); err != nil {
			a.logger.Warn("styles file not loaded, using built-in presets", logger.Error(err))
		}
		a.logger.Info("styles reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}
	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			a.logger.Warn("styles file will only reload on schedule", logger.Error(err))
			a.watcher = nil
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.reloader != nil {
		a.reloader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	a.components.Close(a.logger)
	_ = a.logger.Sync()

	if runErr == nil {
		a.logger.Info("✅ icebreaker stopped cleanly")
	}
	return runErr
}
