// Package region provides line ranges and dirty-line tracking for
// incremental highlighting. Regions are coalesced so that repeated
// edits to nearby lines collapse into a single re-highlight pass.
package region

// Region is an inclusive range of zero-based line numbers.
type Region struct {
	// Start is the first line of the region (inclusive).
	Start int

	// End is the last line of the region (inclusive).
	End int
}

// New creates a region covering lines start through end, swapping the
// bounds if they are inverted.
func New(start, end int) Region {
	if end < start {
		start, end = end, start
	}
	return Region{Start: start, End: end}
}

// Single creates a region covering one line.
func Single(line int) Region {
	return Region{Start: line, End: line}
}

// IsEmpty returns true if the region covers no lines.
func (r Region) IsEmpty() bool {
	return r.End < r.Start
}

// Lines returns the number of lines covered by the region.
func (r Region) Lines() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start + 1
}

// ContainsLine returns true if the region covers the given line.
func (r Region) ContainsLine(line int) bool {
	return line >= r.Start && line <= r.End
}

// Overlaps returns true if two regions share at least one line.
func (r Region) Overlaps(other Region) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Start <= other.End && r.End >= other.Start
}

// Adjacent returns true if two regions touch without overlapping, so
// merging them loses nothing.
func (r Region) Adjacent(other Region) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.End+1 == other.Start || other.End+1 == r.Start
}

// Merge combines two regions into one covering both. Returns false
// when the regions neither overlap nor touch.
func (r Region) Merge(other Region) (Region, bool) {
	if !r.Overlaps(other) && !r.Adjacent(other) {
		return Region{}, false
	}
	return Region{
		Start: min(r.Start, other.Start),
		End:   max(r.End, other.End),
	}, true
}

// Clamp restricts the region to a document of lineCount lines. Returns
// false when no part of the region is in range.
func (r Region) Clamp(lineCount int) (Region, bool) {
	if r.IsEmpty() || lineCount <= 0 {
		return Region{}, false
	}
	out := r
	if out.Start < 0 {
		out.Start = 0
	}
	if out.End >= lineCount {
		out.End = lineCount - 1
	}
	if out.IsEmpty() {
		return Region{}, false
	}
	return out, true
}
