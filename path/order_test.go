package path

import (
	"testing"

	"github.com/aligator/goslice/data"
)

func rectPoly(x0, y0, x1, y1 data.Micrometer) data.Path {
	return data.Path{
		data.NewMicroPoint(x0, y0),
		data.NewMicroPoint(x1, y0),
		data.NewMicroPoint(x1, y1),
		data.NewMicroPoint(x0, y1),
	}
}

func TestOrderPolygonsPreservesMultiset(t *testing.T) {
	polys := data.Paths{
		rectPoly(0, 0, 100, 100),
		rectPoly(5000, 5000, 5100, 5100),
		rectPoly(-5000, -5000, -4900, -4900),
	}

	ordered := OrderPolygons(polys, data.NewMicroPoint(0, 0), data.SeamOptions{Type: data.SeamShortest})

	if len(ordered) != len(polys) {
		t.Fatalf("expected OrderPolygons to preserve the polygon count, got %d want %d", len(ordered), len(polys))
	}

	wantAreas := map[float64]int{}
	for _, p := range polys {
		wantAreas[p.Area()]++
	}
	gotAreas := map[float64]int{}
	for _, p := range ordered {
		gotAreas[p.Area()]++
	}
	for area, count := range wantAreas {
		if gotAreas[area] != count {
			t.Fatalf("expected ordering to preserve the polygon multiset by area, missing area %v", area)
		}
	}
}

func TestOrderPolygonsStartsNearest(t *testing.T) {
	near := rectPoly(0, 0, 100, 100)
	far := rectPoly(100000, 100000, 100100, 100100)
	ordered := OrderPolygons(data.Paths{far, near}, data.NewMicroPoint(0, 0), data.SeamOptions{Type: data.SeamShortest})

	if len(ordered) != 2 {
		t.Fatalf("expected 2 ordered polygons, got %d", len(ordered))
	}
	if ordered[0][0].Sub(data.NewMicroPoint(0, 0)).Size() > ordered[1][0].Sub(data.NewMicroPoint(0, 0)).Size() {
		t.Fatalf("expected the nearer polygon to be printed first")
	}
}

func TestSeamBackPicksMaxY(t *testing.T) {
	poly := rectPoly(0, 0, 100, 100)
	idx := seamIndex(poly, data.SeamOptions{Type: data.SeamBack})
	if poly[idx].Y() != 100 {
		t.Fatalf("expected SeamBack to pick the max-Y vertex, got y=%v", poly[idx].Y())
	}
}

func TestSeamUserSpecifiedPicksNearestVertex(t *testing.T) {
	poly := rectPoly(0, 0, 100, 100)
	idx := seamIndex(poly, data.SeamOptions{Type: data.SeamUserSpecified, UserSpecifiedPoint: data.NewMicroPoint(90, 5)})
	got := poly[idx]
	if got.X() != 100 || got.Y() != 0 {
		t.Fatalf("expected nearest vertex to (90,5) to be (100,0), got (%v,%v)", got.X(), got.Y())
	}
}

func TestOrderLinesPreservesMultiset(t *testing.T) {
	lines := []data.Path{
		{data.NewMicroPoint(0, 0), data.NewMicroPoint(100, 0)},
		{data.NewMicroPoint(10000, 10000), data.NewMicroPoint(10100, 10000)},
		{data.NewMicroPoint(-10000, -10000), data.NewMicroPoint(-9900, -10000)},
	}
	ordered := OrderLines(lines, data.NewMicroPoint(0, 0))
	if len(ordered) != len(lines) {
		t.Fatalf("expected OrderLines to preserve line count, got %d want %d", len(ordered), len(lines))
	}
}

func TestOrderLinesEmpty(t *testing.T) {
	if out := OrderLines(nil, data.NewMicroPoint(0, 0)); out != nil {
		t.Fatalf("expected nil input to produce nil output, got %v", out)
	}
}
