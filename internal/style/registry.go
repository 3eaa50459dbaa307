// Package style maps palette colors to terminal cell styles.
package style

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/NivWeisman/rainbow-csv/internal/palette"
)

// Registry lazily converts palette colors to tcell styles and caches
// the result, so the per-cell render path never rebuilds styles.
type Registry struct {
	mu    sync.RWMutex
	base  tcell.Style
	cache map[palette.Color]tcell.Style
}

// NewRegistry creates a registry deriving color styles from base.
func NewRegistry(base tcell.Style) *Registry {
	return &Registry{
		base:  base,
		cache: make(map[palette.Color]tcell.Style),
	}
}

// StyleFor returns the style that renders text in c.
func (r *Registry) StyleFor(c palette.Color) tcell.Style {
	r.mu.RLock()
	s, ok := r.cache[c]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.cache[c]; ok {
		return s
	}
	s = r.base.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	r.cache[c] = s
	return s
}

// Base returns the style for unannotated text.
func (r *Registry) Base() tcell.Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.base
}

// SetBase replaces the base style and drops all cached styles.
func (r *Registry) SetBase(base tcell.Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = base
	r.cache = make(map[palette.Color]tcell.Style)
}

// Invalidate drops all cached styles. Call after a palette change so
// stale conversions are not reused.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[palette.Color]tcell.Style)
}

// Len returns the number of cached styles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
