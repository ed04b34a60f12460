package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/index"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
	"github.com/MrSnakeDoc/icebreaker/internal/sources/stylefile"
)

// StylesReloader periodically re-reads the styles file into the index.
// The built-in presets are the base every reload overlays.
type StylesReloader struct {
	loader        *stylefile.Loader
	mapper        *stylefile.Mapper
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	done          chan struct{}
	manualTrigger chan struct{}
}

// NewStylesReloader creates a new styles reloader
func NewStylesReloader(
	stylesFile string,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *StylesReloader {
	if interval <= 0 {
		interval = time.Hour
	}
	return &StylesReloader{
		loader:        stylefile.NewLoader(stylesFile),
		mapper:        stylefile.NewMapper(),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads once, then reloads on every tick or manual trigger.
// The loop runs even when the first load fails, so a fixed file is picked
// up later; the first error is returned for the caller to log.
func (sr *StylesReloader) Start(ctx context.Context) error {
	initErr := sr.Reload(ctx)
	if initErr != nil {
		initErr = fmt.Errorf("initial styles reload failed: %w", initErr)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer close(sr.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload styles", logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual styles reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload styles", logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return initErr
}

// Stop ends the loop and waits for it. Safe to call more than once.
func (sr *StylesReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
	<-sr.done
}

// Reload reads the styles file and replaces the index content.
// On error the index keeps its current styles.
func (sr *StylesReloader) Reload(_ context.Context) error {
	sr.logger.Debug("reloading styles", logger.String("file", sr.loader.Path()))

	f, err := sr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load styles: %w", err)
	}

	styles, err := sr.mapper.MapStyles(f, domain.DefaultStyles())
	if err != nil {
		return fmt.Errorf("failed to map styles: %w", err)
	}

	sr.index.UpdateStyles(styles)
	sr.logger.Info("styles reloaded", logger.Int("count", len(styles)))

	return nil
}
