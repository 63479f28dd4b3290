package wall

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aligator/goslice/data"
)

func sumWidths(b Beading) int64 {
	var total int64
	for _, w := range b.BeadWidths {
		total += int64(w)
	}
	return total
}

func TestDistributedSumsToThickness(t *testing.T) {
	s := NewDistributed(400, 200)
	b := s.Compute(1000, 3)

	if len(b.BeadWidths) != 3 {
		t.Fatalf("expected 3 bead widths, got %d", len(b.BeadWidths))
	}
	if sumWidths(b) != 1000 {
		t.Fatalf("expected bead widths to sum to the full thickness, got %d want 1000", sumWidths(b))
	}
}

func TestDistributedZeroCountLeavesEverythingAsLeftover(t *testing.T) {
	s := NewDistributed(400, 200)
	b := s.Compute(1000, 0)

	if len(b.BeadWidths) != 0 {
		t.Fatalf("expected no beads for count=0, got %d", len(b.BeadWidths))
	}
	if b.LeftOver != 1000 {
		t.Fatalf("expected LeftOver to equal the full thickness, got %d", b.LeftOver)
	}
}

func TestOptimalBeadCountMonotonic(t *testing.T) {
	s := NewDistributed(400, 200)
	prev := -1
	for thickness := data.Micrometer(0); thickness <= 4000; thickness += 100 {
		count := s.OptimalBeadCount(thickness)
		if count < prev {
			t.Fatalf("expected OptimalBeadCount to be monotonic non-decreasing in thickness, got %d after %d at thickness %d", count, prev, thickness)
		}
		prev = count
	}
}

func TestToolpathLocationsAreOrdered(t *testing.T) {
	s := NewDistributed(400, 200)
	b := s.Compute(1230, 3)
	for i := 1; i < len(b.ToolpathLocations); i++ {
		if b.ToolpathLocations[i] <= b.ToolpathLocations[i-1] {
			t.Fatalf("expected strictly increasing toolpath locations, got %v", b.ToolpathLocations)
		}
	}
}

func TestInwardDistributedKeepsOuterBeadsAtOptimalWidth(t *testing.T) {
	s := NewInwardDistributed(400, 200)
	b := s.Compute(1300, 3)
	if len(b.BeadWidths) != 3 {
		t.Fatalf("expected 3 beads, got %d", len(b.BeadWidths))
	}
	if b.BeadWidths[0] != 400 || b.BeadWidths[len(b.BeadWidths)-1] != 400 {
		t.Fatalf("expected outer beads to stay at optimal width 400, got %v", b.BeadWidths)
	}
}

func TestDistributedIsDeterministic(t *testing.T) {
	s := NewDistributed(400, 200)
	a := s.Compute(1230, 3)
	b := s.Compute(1230, 3)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("expected repeated Compute calls with the same inputs to agree exactly (-first +second):\n%s", diff)
	}
}
