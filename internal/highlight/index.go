package highlight

import (
	"sort"
	"sync"
)

// Index stores the annotations for one document, keyed by line. Each
// line's set is replaced as a unit, so readers never observe a line
// mid-update.
type Index struct {
	mu    sync.RWMutex
	lines map[int][]Annotation
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		lines: make(map[int][]Annotation),
	}
}

// Insert replaces the annotations for a line. An empty set removes the
// line's entry entirely.
func (x *Index) Insert(line int, anns []Annotation) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if len(anns) == 0 {
		delete(x.lines, line)
		return
	}
	x.lines[line] = anns
}

// Evict removes all annotations for a line. Evicting a line with none
// is a no-op.
func (x *Index) Evict(line int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.lines, line)
}

// Line returns a copy of the annotations on a line, in span order.
func (x *Index) Line(line int) []Annotation {
	x.mu.RLock()
	defer x.mu.RUnlock()
	anns, ok := x.lines[line]
	if !ok {
		return nil
	}
	out := make([]Annotation, len(anns))
	copy(out, anns)
	return out
}

// Lines returns the sorted line numbers that currently hold
// annotations.
func (x *Index) Lines() []int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]int, 0, len(x.lines))
	for line := range x.lines {
		out = append(out, line)
	}
	sort.Ints(out)
	return out
}

// Len returns the total annotation count across all lines.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	n := 0
	for _, anns := range x.lines {
		n += len(anns)
	}
	return n
}

// Clear drops all annotations.
func (x *Index) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.lines = make(map[int][]Annotation)
}
