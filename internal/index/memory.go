package index

import (
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
)

// MemoryIndex holds the writing-style presets served to clients and used to
// resolve a request's style. It is read on every request and replaced
// wholesale by the reloader.
type MemoryIndex struct {
	mu         sync.RWMutex
	order      []string                // IDs in display order
	styles     map[string]domain.Style // ID -> Style
	lastReload time.Time
}

// NewMemoryIndex creates an index seeded with styles.
func NewMemoryIndex(styles []domain.Style) *MemoryIndex {
	idx := &MemoryIndex{styles: make(map[string]domain.Style)}
	if len(styles) > 0 {
		idx.UpdateStyles(styles)
	}
	return idx
}

// UpdateStyles replaces all styles, keeping the given order.
// Later duplicates of an ID are ignored.
func (idx *MemoryIndex) UpdateStyles(styles []domain.Style) {
	order := make([]string, 0, len(styles))
	byID := make(map[string]domain.Style, len(styles))
	for _, s := range styles {
		id := domain.NormalizeStyleID(s.ID)
		if id == "" {
			continue
		}
		if _, dup := byID[id]; dup {
			continue
		}
		s.ID = id
		byID[id] = s
		order = append(order, id)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.order = order
	idx.styles = byID
	idx.lastReload = time.Now()
}

// GetStyle retrieves a style by ID (case-insensitive).
func (idx *MemoryIndex) GetStyle(id string) (domain.Style, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	s, ok := idx.styles[domain.NormalizeStyleID(id)]
	return s, ok
}

// Resolve maps a client-supplied style to prompt text. A preset ID or label
// yields the preset hint; anything else is returned unchanged.
func (idx *MemoryIndex) Resolve(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	if s, ok := idx.GetStyle(raw); ok {
		return s.Hint
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for _, id := range idx.order {
		if s := idx.styles[id]; strings.EqualFold(s.Label, strings.TrimSpace(raw)) {
			return s.Hint
		}
	}
	return raw
}

// GetAllStyles returns a copy of all styles in display order.
func (idx *MemoryIndex) GetAllStyles() []domain.Style {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.Style, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.styles[id])
	}
	return out
}

// Count returns the number of styles.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.order)
}

// GetLastReload returns when the styles were last replaced.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
