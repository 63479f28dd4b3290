// Package skin classifies each part's top/bottom skin area versus sparse
// infill residue via cross-layer differences, component E of the pipeline.
package skin

import (
	"math"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

// smallSkinArea returns the minimum skin-area threshold for a given line
// width, per spec.md §4.E ("remove small areas (threshold = 0.3·π·w² in
// mm²)"), expressed directly in µm² so it composes with Paths.RemoveSmallAreas
// without a unit conversion at the call site.
func smallSkinArea(lineWidth data.Micrometer) float64 {
	w := float64(lineWidth)
	return 0.3 * math.Pi * w * w
}

// Classify fills in part.SkinParts, part.InfillArea and
// part.SparseOutline[0] for one part, given access
// to the already-wall-generated parts of the layers above and below (read-only
// cross-layer access, per spec.md §5).
func Classify(c clip.Clipper, part *data.SliceLayerPart, above, below []*data.SliceLayerPart, lineWidth data.Micrometer) {
	if len(part.Insets) == 0 {
		return
	}
	lastInset := part.Insets[len(part.Insets)-1]
	base := c.Offset(lastInset, -lineWidth/2, clip.JoinMiter)

	up := subtractOverlapping(c, base, above, part.Bounds)
	down := subtractOverlapping(c, base, below, part.Bounds)

	skin, ok := c.Union(up, down)
	if !ok {
		skin = data.Paths{}
	}
	skin = skin.RemoveSmallAreas(smallSkinArea(lineWidth))

	skinPieces, _ := c.SplitIntoParts(skin)
	part.SkinParts = make([]data.SkinPart, 0, len(skinPieces))
	for _, piece := range skinPieces {
		insets := insetSkin(c, piece.AllPaths(), lineWidth)
		infillArea := piece.AllPaths()
		if len(insets) > 0 {
			infillArea = insets[len(insets)-1]
		}
		part.SkinParts = append(part.SkinParts, data.SkinPart{
			Outline:    piece.Outline(),
			Insets:     insets,
			InfillArea: infillArea,
		})
	}

	sparse, ok := c.Difference(base, skin)
	if !ok {
		sparse = data.Paths{}
	}
	part.SparseOutline = []data.Paths{sparse}
	part.InfillArea = sparse
}

// insetSkin applies one inward offset to a skin piece, mirroring the wall
// generator's ladder but with a single inset (skin areas are thin solid fill,
// not multi-wall).
func insetSkin(c clip.Clipper, outline data.Paths, lineWidth data.Micrometer) []data.Paths {
	inset := c.Offset(outline, -lineWidth/2, clip.JoinMiter)
	inset = inset.Simplify(-1, -1)
	if len(inset) == 0 {
		return nil
	}
	return []data.Paths{inset}
}

// subtractOverlapping returns base minus the union of every neighbour part's
// last inset, restricted to parts whose bounding box overlaps this part's
// (spec.md §4.E: "only bounding-box-overlapping parts contribute").
func subtractOverlapping(c clip.Clipper, base data.Paths, neighbours []*data.SliceLayerPart, bounds data.AABB) data.Paths {
	var union data.Paths
	for _, n := range neighbours {
		if n == nil || len(n.Insets) == 0 {
			continue
		}
		if !n.Bounds.Hit(bounds) {
			continue
		}
		last := n.Insets[len(n.Insets)-1]
		merged, ok := c.Union(union, last)
		if ok {
			union = merged
		}
	}
	if len(union) == 0 {
		return base
	}
	result, ok := c.Difference(base, union)
	if !ok {
		return data.Paths{}
	}
	return result
}

// CombineLayers implements spec.md §4.E's cross-layer infill combining: for
// each level n in [1, combineCount), intersect this part's sparse_outline[n-1]
// with the sparse_outline[0] of the corresponding part combineLevels below,
// subtracting the intersection from both sources so material is only printed
// once, at increased thickness, every combineCount layers.
func CombineLayers(c clip.Clipper, part *data.SliceLayerPart, below []*data.SliceLayerPart, combineCount int) {
	for n := 1; n < combineCount; n++ {
		if n-1 >= len(part.SparseOutline) || len(part.SparseOutline[n-1]) == 0 {
			break
		}
		var belowSparse data.Paths
		for _, b := range below {
			if b == nil || len(b.SparseOutline) == 0 {
				continue
			}
			merged, ok := c.Union(belowSparse, b.SparseOutline[0])
			if ok {
				belowSparse = merged
			}
		}
		if len(belowSparse) == 0 {
			break
		}

		intersection, ok := c.Intersection(part.SparseOutline[n-1], belowSparse)
		if !ok || len(intersection) == 0 {
			break
		}

		part.SparseOutline[n-1], _ = c.Difference(part.SparseOutline[n-1], intersection)
		for _, b := range below {
			if b == nil || len(b.SparseOutline) == 0 {
				continue
			}
			b.SparseOutline[0], _ = c.Difference(b.SparseOutline[0], intersection)
		}
		part.SparseOutline = append(part.SparseOutline, intersection)
	}
}

// PerimeterGaps accumulates the slivers between the outline and the first
// inset, and between successive insets, per spec.md §4.E, and drops pieces
// smaller than 1000 µm². For interior (non-top/bottom) layers the caller
// should additionally intersect the result with the xor of the outlines above
// and below, to discard area that isn't a true gap.
func PerimeterGaps(c clip.Clipper, part *data.SliceLayerPart) data.Paths {
	var gaps data.Paths
	prev := part.Outline
	for _, inset := range part.Insets {
		gap, ok := c.Difference(prev, inset)
		if ok {
			merged, ok := c.Union(gaps, gap)
			if ok {
				gaps = merged
			}
		}
		prev = inset
	}
	return gaps.RemoveSmallAreas(1000)
}
