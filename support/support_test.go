package support

import (
	"testing"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

func square(x0, y0, x1, y1 data.Micrometer) data.Paths {
	return data.Paths{{
		data.NewMicroPoint(x0, y0),
		data.NewMicroPoint(x1, y0),
		data.NewMicroPoint(x1, y1),
		data.NewMicroPoint(x0, y1),
	}}
}

func TestDetectOverhangsFindsOnlyTheWiderLayer(t *testing.T) {
	c := clip.New()
	outlines := []data.Paths{
		square(0, 0, 10000, 10000),
		square(-5000, -5000, 15000, 15000),
	}

	overhangs := DetectOverhangs(c, outlines, 0)
	if len(overhangs[0]) != 0 {
		t.Fatalf("expected the first layer to have no overhang (nothing below it)")
	}
	if len(overhangs[1]) == 0 {
		t.Fatalf("expected the wider second layer to report an overhang beyond the first layer's outline")
	}
}

func TestDetectOverhangsMatchingOutlinesHaveNoOverhang(t *testing.T) {
	c := clip.New()
	same := square(0, 0, 10000, 10000)
	outlines := []data.Paths{same, same}

	overhangs := DetectOverhangs(c, outlines, 0)
	if len(overhangs[1]) != 0 {
		t.Fatalf("expected identical consecutive outlines to produce no overhang, got %v", overhangs[1])
	}
}

func TestGenerateAreasDisabledReturnsEmpty(t *testing.T) {
	c := clip.New()
	outlines := []data.Paths{square(0, 0, 10000, 10000), square(-5000, -5000, 15000, 15000)}
	areas := GenerateAreas(c, outlines, data.SupportOptions{Enabled: false})
	for _, a := range areas {
		if len(a) != 0 {
			t.Fatalf("expected disabled support generation to produce no areas")
		}
	}
}

func TestSplitRoofsSeparatesInterfaceFromBody(t *testing.T) {
	c := clip.New()
	outlines := []data.Paths{square(0, 0, 10000, 10000), square(0, 0, 10000, 10000)}
	supportAreas := []data.Paths{square(0, 0, 10000, 10000), nil}

	roofs, body := SplitRoofs(c, outlines, supportAreas, 1)
	if len(roofs[0]) == 0 {
		t.Fatalf("expected support directly under a model surface to be classified as roof")
	}
	if len(body[0]) != 0 {
		t.Fatalf("expected no leftover body where the whole support area sits under a model surface, got %v", body[0])
	}
}
