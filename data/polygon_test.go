package data

import "testing"

func square(x0, y0, x1, y1 Micrometer) Path {
	return Path{
		NewMicroPoint(x0, y0),
		NewMicroPoint(x1, y0),
		NewMicroPoint(x1, y1),
		NewMicroPoint(x0, y1),
	}
}

func TestPathAreaOrientation(t *testing.T) {
	ccw := square(0, 0, 1000, 1000)
	if area := ccw.Area(); area <= 0 {
		t.Fatalf("expected positive area for CCW square, got %v", area)
	}
	if !ccw.Orientation() {
		t.Fatalf("expected CCW square to report outer orientation")
	}

	cw := Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(0, 1000),
		NewMicroPoint(1000, 1000),
		NewMicroPoint(1000, 0),
	}
	if area := cw.Area(); area >= 0 {
		t.Fatalf("expected negative area for CW square, got %v", area)
	}
	if cw.Orientation() {
		t.Fatalf("expected CW square to report hole orientation")
	}
}

func TestPathContainsPoint(t *testing.T) {
	p := square(0, 0, 1000, 1000)
	if !p.ContainsPoint(NewMicroPoint(500, 500)) {
		t.Fatalf("expected center point to be inside square")
	}
	if p.ContainsPoint(NewMicroPoint(2000, 2000)) {
		t.Fatalf("expected far point to be outside square")
	}
}

func TestPathsContainsPointNonZeroRule(t *testing.T) {
	outer := square(0, 0, 1000, 1000)
	hole := Path{
		NewMicroPoint(200, 200),
		NewMicroPoint(200, 800),
		NewMicroPoint(800, 800),
		NewMicroPoint(800, 200),
	}
	ps := Paths{outer, hole}

	if ps.ContainsPoint(NewMicroPoint(500, 500)) {
		t.Fatalf("expected point inside the hole to be excluded by non-zero rule")
	}
	if !ps.ContainsPoint(NewMicroPoint(100, 100)) {
		t.Fatalf("expected point between outer and hole to be included")
	}
	if ps.ContainsPoint(NewMicroPoint(5000, 5000)) {
		t.Fatalf("expected point outside everything to be excluded")
	}
}

func TestPathsTotalArea(t *testing.T) {
	outer := square(0, 0, 1000, 1000)
	hole := Path{
		NewMicroPoint(200, 200),
		NewMicroPoint(200, 800),
		NewMicroPoint(800, 800),
		NewMicroPoint(800, 200),
	}
	ps := Paths{outer, hole}
	outerArea := outer.Area()
	holeArea := hole.Area()
	if holeArea >= 0 {
		t.Fatalf("expected hole contour to have negative area, got %v", holeArea)
	}
	got := ps.TotalArea()
	want := outerArea + holeArea
	if got != want {
		t.Fatalf("TotalArea() = %v, want %v", got, want)
	}
}

func TestPathRemoveDegenerate(t *testing.T) {
	p := Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(0, 0),
		NewMicroPoint(1000, 0),
		NewMicroPoint(1000, 1000),
	}
	out := p.RemoveDegenerate()
	if len(out) != 3 {
		t.Fatalf("expected duplicate point removed, got %d points: %v", len(out), out)
	}
}

func TestPathIsAlmostFinished(t *testing.T) {
	p := Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(1000, 0),
		NewMicroPoint(5, 5),
	}
	if !p.IsAlmostFinished(10) {
		t.Fatalf("expected path ending near its start to be almost finished")
	}
	if p.IsAlmostFinished(1) {
		t.Fatalf("expected snap distance of 1 to reject a 5,5 offset")
	}
}
