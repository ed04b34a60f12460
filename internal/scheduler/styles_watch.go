package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

const defaultWatchDebounce = 500 * time.Millisecond

// StylesWatcher queues a styles reload when the styles file changes on disk.
// It watches the parent directory so editors that save by rename, and
// ConfigMap symlink swaps, are still seen.
type StylesWatcher struct {
	watcher  *fsnotify.Watcher
	file     string
	dir      string
	trigger  chan<- struct{}
	debounce time.Duration
	logger   logger.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewStylesWatcher watches stylesFile and pushes to trigger, never blocking:
// a reload already queued absorbs the event.
func NewStylesWatcher(stylesFile string, trigger chan<- struct{}, log logger.Logger) (*StylesWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	abs, err := filepath.Abs(stylesFile)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to resolve styles file: %w", err)
	}
	return &StylesWatcher{
		watcher:  w,
		file:     abs,
		dir:      filepath.Dir(abs),
		trigger:  trigger,
		debounce: defaultWatchDebounce,
		logger:   log,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. On error the watcher is closed and Stop is a no-op.
func (sw *StylesWatcher) Start(ctx context.Context) error {
	if err := sw.watcher.Add(sw.dir); err != nil {
		_ = sw.watcher.Close()
		close(sw.done)
		return fmt.Errorf("failed to watch %s: %w", sw.dir, err)
	}
	go sw.run(ctx)
	return nil
}

// Stop ends the loop and releases the watcher. Safe to call more than once.
func (sw *StylesWatcher) Stop() {
	sw.stopOnce.Do(func() { close(sw.stopCh) })
	<-sw.done
}

func (sw *StylesWatcher) run(ctx context.Context) {
	defer close(sw.done)
	defer func() { _ = sw.watcher.Close() }()

	// nil until an event arms it
	var fire <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sw.stopCh:
			return

		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !sw.relevant(ev) {
				continue
			}
			sw.logger.Debug("styles file changed", logger.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(sw.debounce)
			} else {
				timer.Reset(sw.debounce)
			}
			fire = timer.C

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("styles watcher error", logger.Error(err))

		case <-fire:
			fire = nil
			select {
			case sw.trigger <- struct{}{}:
			default:
			}
		}
	}
}

func (sw *StylesWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	// Kubernetes swaps the ..data symlink rather than the file itself.
	if filepath.Base(ev.Name) == "..data" {
		return true
	}
	return filepath.Clean(ev.Name) == sw.file
}
