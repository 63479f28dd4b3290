package part

import (
	"testing"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

func square(x0, y0, x1, y1 data.Micrometer) data.Path {
	return data.Path{
		data.NewMicroPoint(x0, y0),
		data.NewMicroPoint(x1, y0),
		data.NewMicroPoint(x1, y1),
		data.NewMicroPoint(x0, y1),
	}
}

func TestSplitSeparatesDisjointParts(t *testing.T) {
	c := clip.New()
	layer := data.SlicerLayer{
		ClosedPolygons: data.Paths{
			square(0, 0, 1000, 1000),
			square(10000, 10000, 11000, 11000),
		},
	}

	parts, ok := Split(c, layer)
	if !ok {
		t.Fatalf("expected Split to succeed")
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 disjoint squares to become 2 parts, got %d", len(parts))
	}
}

func TestSplitAttachesHoleToOuterContour(t *testing.T) {
	c := clip.New()
	outer := square(0, 0, 10000, 10000)
	hole := data.Path{
		data.NewMicroPoint(2000, 2000),
		data.NewMicroPoint(2000, 8000),
		data.NewMicroPoint(8000, 8000),
		data.NewMicroPoint(8000, 2000),
	}
	layer := data.SlicerLayer{ClosedPolygons: data.Paths{outer, hole}}

	parts, ok := Split(c, layer)
	if !ok {
		t.Fatalf("expected Split to succeed")
	}
	if len(parts) != 1 {
		t.Fatalf("expected outer+hole to form a single part, got %d", len(parts))
	}
	if len(parts[0].Holes()) != 1 {
		t.Fatalf("expected the hole to be attached to its enclosing outer contour, got %d holes", len(parts[0].Holes()))
	}
}
