package skin

import (
	"testing"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

func squarePart(x0, y0, x1, y1 data.Micrometer) *data.SliceLayerPart {
	outline := data.Paths{{
		data.NewMicroPoint(x0, y0),
		data.NewMicroPoint(x1, y0),
		data.NewMicroPoint(x1, y1),
		data.NewMicroPoint(x0, y1),
	}}
	return &data.SliceLayerPart{
		Outline: outline,
		Insets:  []data.Paths{outline},
		Bounds:  outline[0].BoundingBox(),
	}
}

func TestClassifyTopLayerIsFullySkin(t *testing.T) {
	c := clip.New()
	lineWidth := data.Micrometer(400)
	part := squarePart(0, 0, 10000, 10000)

	// No part above -> the whole area is exposed top skin.
	Classify(c, part, nil, []*data.SliceLayerPart{squarePart(0, 0, 10000, 10000)}, lineWidth)

	if len(part.SkinParts) == 0 {
		t.Fatalf("expected a top-facing part with no neighbour above to be fully classified as skin")
	}
	if len(part.SparseOutline) == 0 || len(part.SparseOutline[0]) != 0 {
		t.Fatalf("expected no sparse-infill residue left when the whole area is skin, got %v", part.SparseOutline)
	}
}

func TestClassifyInteriorLayerIsSparse(t *testing.T) {
	c := clip.New()
	lineWidth := data.Micrometer(400)
	part := squarePart(0, 0, 10000, 10000)
	above := []*data.SliceLayerPart{squarePart(0, 0, 10000, 10000)}
	below := []*data.SliceLayerPart{squarePart(0, 0, 10000, 10000)}

	Classify(c, part, above, below, lineWidth)

	if len(part.SkinParts) != 0 {
		t.Fatalf("expected an interior part (covered above and below) to have no skin, got %d skin parts", len(part.SkinParts))
	}
	if len(part.SparseOutline) == 0 || len(part.SparseOutline[0]) == 0 {
		t.Fatalf("expected an interior part's whole area to remain sparse infill")
	}
}

func TestSmallSkinAreaThresholdScalesWithLineWidthSquared(t *testing.T) {
	small := smallSkinArea(200)
	large := smallSkinArea(400)
	if large <= small*3 {
		t.Fatalf("expected doubling line width to roughly quadruple the area threshold, got %v vs %v", small, large)
	}
}
