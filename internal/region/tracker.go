package region

import (
	"sort"
	"sync"
)

// Tracker accumulates dirty line regions between highlight passes and
// coalesces overlapping or adjacent ones.
type Tracker struct {
	mu      sync.Mutex
	regions []Region
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		regions: make([]Region, 0, 8),
	}
}

// Mark records a region as dirty, merging it into existing regions
// where possible.
func (t *Tracker) Mark(r Region) {
	if r.IsEmpty() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.regions {
		if merged, ok := t.regions[i].Merge(r); ok {
			t.regions[i] = merged
			t.coalesce()
			return
		}
	}
	t.regions = append(t.regions, r)
}

// MarkLine records a single dirty line.
func (t *Tracker) MarkLine(line int) {
	t.Mark(Single(line))
}

// HasPending returns true if any dirty regions are waiting.
func (t *Tracker) HasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.regions) > 0
}

// Take returns the pending regions sorted by start line and clears the
// tracker.
func (t *Tracker) Take() []Region {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.regions) == 0 {
		return nil
	}
	out := t.regions
	t.regions = make([]Region, 0, 8)

	sort.Slice(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// coalesce merges overlapping or adjacent regions. O(n²), fine for the
// handful of regions a redraw cycle produces.
func (t *Tracker) coalesce() {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(t.regions) && !changed; i++ {
			for j := i + 1; j < len(t.regions); j++ {
				if merged, ok := t.regions[i].Merge(t.regions[j]); ok {
					t.regions[i] = merged
					t.regions = append(t.regions[:j], t.regions[j+1:]...)
					changed = true
					break
				}
			}
		}
	}
}
