package region

import "testing"

func TestNewSwapsInvertedBounds(t *testing.T) {
	r := New(10, 5)
	if r.Start != 5 || r.End != 10 {
		t.Errorf("New(10, 5) = %+v, want {5 10}", r)
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		empty  bool
	}{
		{"valid range", New(5, 10), false},
		{"single line", Single(5), false},
		{"inverted", Region{Start: 10, End: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		region Region
		count  int
	}{
		{New(5, 10), 6},
		{Single(5), 1},
		{New(0, 0), 1},
		{Region{Start: 10, End: 5}, 0},
	}

	for _, tt := range tests {
		if got := tt.region.Lines(); got != tt.count {
			t.Errorf("%+v Lines() = %d, want %d", tt.region, got, tt.count)
		}
	}
}

func TestContainsLine(t *testing.T) {
	r := New(5, 10)

	tests := []struct {
		line     int
		contains bool
	}{
		{4, false},
		{5, true},
		{7, true},
		{10, true},
		{11, false},
	}

	for _, tt := range tests {
		if got := r.ContainsLine(tt.line); got != tt.contains {
			t.Errorf("ContainsLine(%d) = %v, want %v", tt.line, got, tt.contains)
		}
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Region
		want Region
		ok   bool
	}{
		{"overlapping", New(1, 5), New(3, 8), New(1, 8), true},
		{"contained", New(1, 10), New(3, 5), New(1, 10), true},
		{"adjacent", New(1, 4), New(5, 8), New(1, 8), true},
		{"adjacent reversed", New(5, 8), New(1, 4), New(1, 8), true},
		{"disjoint", New(1, 3), New(5, 8), Region{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Merge(tt.b)
			if ok != tt.ok {
				t.Fatalf("Merge ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Merge = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		region    Region
		lineCount int
		want      Region
		ok        bool
	}{
		{"inside", New(2, 4), 10, New(2, 4), true},
		{"tail clipped", New(8, 15), 10, New(8, 9), true},
		{"negative start", Region{Start: -3, End: 4}, 10, New(0, 4), true},
		{"fully past end", New(12, 15), 10, Region{}, false},
		{"empty document", New(0, 5), 0, Region{}, false},
		{"inverted", Region{Start: 5, End: 2}, 10, Region{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.region.Clamp(tt.lineCount)
			if ok != tt.ok {
				t.Fatalf("Clamp ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Clamp = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTrackerCoalesces(t *testing.T) {
	tr := NewTracker()

	tr.MarkLine(3)
	tr.MarkLine(4)
	tr.MarkLine(5)

	got := tr.Take()
	if len(got) != 1 {
		t.Fatalf("Take() returned %d regions, want 1: %+v", len(got), got)
	}
	if got[0] != New(3, 5) {
		t.Errorf("coalesced region = %+v, want {3 5}", got[0])
	}
}

func TestTrackerDisjointRegionsSorted(t *testing.T) {
	tr := NewTracker()

	tr.Mark(New(20, 25))
	tr.Mark(New(0, 2))
	tr.Mark(New(10, 12))

	got := tr.Take()
	if len(got) != 3 {
		t.Fatalf("Take() returned %d regions, want 3: %+v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Start < got[i-1].Start {
			t.Errorf("regions out of order: %+v", got)
		}
	}
}

func TestTrackerBridgingMerge(t *testing.T) {
	tr := NewTracker()

	// Two disjoint regions joined by a third that touches both.
	tr.Mark(New(0, 3))
	tr.Mark(New(7, 9))
	tr.Mark(New(4, 6))

	got := tr.Take()
	if len(got) != 1 {
		t.Fatalf("Take() returned %d regions, want 1: %+v", len(got), got)
	}
	if got[0] != New(0, 9) {
		t.Errorf("bridged region = %+v, want {0 9}", got[0])
	}
}

func TestTrackerTakeClears(t *testing.T) {
	tr := NewTracker()
	tr.MarkLine(1)

	if !tr.HasPending() {
		t.Fatal("HasPending() = false after Mark")
	}
	if got := tr.Take(); len(got) != 1 {
		t.Fatalf("first Take() = %+v, want one region", got)
	}
	if tr.HasPending() {
		t.Error("HasPending() = true after Take")
	}
	if got := tr.Take(); got != nil {
		t.Errorf("second Take() = %+v, want nil", got)
	}

	tr.Mark(Region{Start: 5, End: 2})
	if tr.HasPending() {
		t.Error("empty region should not be recorded")
	}
}
