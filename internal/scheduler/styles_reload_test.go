package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/index"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeStyles(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write styles: %v", err)
	}
}

func TestStylesReloader_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	writeStyles(t, path, "styles:\n  - id: witty\n    label: Witty\n    hint: Light humour.\n")

	idx := index.NewMemoryIndex(domain.DefaultStyles())
	sr := NewStylesReloader(path, idx, logger.NewNop(), time.Hour, make(chan struct{}))

	if err := sr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if idx.Count() != 6 {
		t.Errorf("Expected 6 styles (5 built-in + 1), got %d", idx.Count())
	}
	if got := idx.Resolve("witty"); got != "Light humour." {
		t.Errorf("Resolve(witty) = %q", got)
	}
}

func TestStylesReloader_ReloadFailureKeepsIndex(t *testing.T) {
	idx := index.NewMemoryIndex(domain.DefaultStyles())
	sr := NewStylesReloader(filepath.Join(t.TempDir(), "missing.yaml"), idx, logger.NewNop(), time.Hour, make(chan struct{}))

	if err := sr.Reload(context.Background()); err == nil {
		t.Fatal("Reload should fail for a missing file")
	}
	if idx.Count() != 5 {
		t.Errorf("index should keep the built-in styles, got %d", idx.Count())
	}
}

func TestStylesReloader_ManualTrigger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	writeStyles(t, path, "styles:\n  - id: first\n")

	idx := index.NewMemoryIndex(domain.DefaultStyles())
	trigger := make(chan struct{}, 1)
	sr := NewStylesReloader(path, idx, logger.NewNop(), time.Hour, trigger)

	if err := sr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer sr.Stop()

	writeStyles(t, path, "styles:\n  - id: first\n  - id: second\n")
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for idx.Count() != 7 {
		if time.Now().After(deadline) {
			t.Fatalf("manual reload not applied, count = %d", idx.Count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStylesReloader_StartReportsInitialError(t *testing.T) {
	idx := index.NewMemoryIndex(domain.DefaultStyles())
	sr := NewStylesReloader(filepath.Join(t.TempDir(), "missing.yaml"), idx, logger.NewNop(), time.Hour, make(chan struct{}))

	if err := sr.Start(context.Background()); err == nil {
		t.Error("Start should report the initial failure")
	}
	sr.Stop()
	sr.Stop()
}
