// Package support generates the overhang-driven support structure of
// component G: per-layer overhang detection, downward propagation into
// printable columns, interface (roof) splitting, and per-part wall/infill
// generation.
package support

import (
	convexhull "github.com/furstenheim/go-convex-hull-2d"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/wall"
)

// hullPoint adapts a data.MicroPoint to the convexhull.Point contract
// (GetX()/GetY() float64), since the library only appears in the teacher's
// go.mod with no call site in the retrieved driver files to copy a concrete
// usage from.
type hullPoint struct{ x, y float64 }

func (h hullPoint) GetX() float64 { return h.x }
func (h hullPoint) GetY() float64 { return h.y }

// DetectOverhangs computes, for every layer above the first, the part of its
// outline not already covered by the layer below (expanded by xyDistance),
// per spec.md §4.G: `overhang_L = outline_L ∖ outline_{L−1}.offset(max_xy_distance)`.
// Grounded on the teacher's supportDetectorModifier.Modify (modifier/support.go),
// generalized from its single threshold-angle offset to the literal
// xy-distance offset spec.md names.
func DetectOverhangs(c clip.Clipper, outlines []data.Paths, xyDistance data.Micrometer) []data.Paths {
	overhangs := make([]data.Paths, len(outlines))
	for l := 1; l < len(outlines); l++ {
		below := c.Offset(outlines[l-1], xyDistance, clip.JoinMiter)
		overhang, ok := c.Difference(outlines[l], below)
		if ok {
			overhangs[l] = overhang.RemoveSmallAreas(1000)
		}
	}
	return overhangs
}

// GenerateAreas propagates overhangs downward into support columns. For each
// layer, working top-down: union in the overhang that should land topGapLayers
// above it; if the accumulated area isn't already convex (shouldSkipSmoothing),
// expand by joinDistance and contract back (a close operation, for smoothing
// thin slivers); clear xyDistance around the layer's own outline, and carry
// the remainder down to the next layer. The lowest zDistanceBottom layers
// (directly above the print bed) are left unsupported; no such gap is left
// where a support column lands on a lower model surface. This matches
// the teacher's "ignore bottom layers" early-out. Grounded on the teacher's
// supportGeneratorModifier.Modify (modifier/support.go) and
// original_source/src/SupportInfillPart.cpp.
func GenerateAreas(c clip.Clipper, outlines []data.Paths, opts data.SupportOptions) []data.Paths {
	n := len(outlines)
	support := make([]data.Paths, n)
	if n == 0 || !opts.Enabled {
		return support
	}

	overhangs := DetectOverhangs(c, outlines, opts.XYDistance)
	clearance := opts.XYDistance

	var accumulated data.Paths
	for l := n - 1; l >= opts.ZDistanceBottom; l-- {
		sourceIdx := l + opts.TopGapLayers
		if sourceIdx < n && len(overhangs[sourceIdx]) > 0 {
			if merged, ok := c.Union(accumulated, overhangs[sourceIdx]); ok {
				accumulated = merged
			}
		}
		if len(accumulated) == 0 {
			continue
		}

		if opts.JoinDistance > 0 && !shouldSkipSmoothing(accumulated) {
			grown := c.Offset(accumulated, opts.JoinDistance, clip.JoinRound)
			accumulated = c.Offset(grown, -opts.JoinDistance, clip.JoinRound)
		}

		bound := c.Offset(outlines[l], clearance, clip.JoinMiter)
		cleared, ok := c.Difference(accumulated, bound)
		if !ok {
			cleared = data.Paths{}
		}
		cleared = cleared.RemoveSmallAreas(1000)

		support[l] = cleared
		accumulated = cleared
	}

	return support
}

// SplitRoofs separates, for each layer, the part of its support column that
// sits within interfaceLayers of a model surface above it (printed as a
// denser interface/roof) from the rest (the sparse body), per spec.md §4.G
// ("Required support ... interface parts"). Grounded on the teacher's
// supportGeneratorModifier's interface-part carve-out.
func SplitRoofs(c clip.Clipper, outlines []data.Paths, support []data.Paths, interfaceLayers int) (roofs, body []data.Paths) {
	n := len(support)
	roofs = make([]data.Paths, n)
	body = make([]data.Paths, n)
	for l := 0; l < n; l++ {
		if len(support[l]) == 0 {
			continue
		}
		var modelNear data.Paths
		for k := 1; k <= interfaceLayers && l+k < len(outlines); k++ {
			if merged, ok := c.Union(modelNear, outlines[l+k]); ok {
				modelNear = merged
			}
		}
		if len(modelNear) == 0 {
			body[l] = support[l]
			continue
		}
		roof, ok := c.Intersection(support[l], modelNear)
		if !ok {
			roof = data.Paths{}
		}
		rest, ok := c.Difference(support[l], roof)
		if !ok {
			rest = data.Paths{}
		}
		roofs[l] = roof
		body[l] = rest
	}
	return roofs, body
}

// BuildParts splits one layer's support area into connected SupportInfillPart
// regions, each with its own wall ladder and infill area, computed with
// support-specific widths exactly as component D does for model walls
// (spec.md §4.G: "compute insets (wall) and infill_area identically to §4.D").
func BuildParts(c clip.Clipper, area data.Paths, opts data.WallOptions) []data.SupportInfillPart {
	if len(area) == 0 {
		return nil
	}

	pieces, ok := c.SplitIntoParts(area)
	if !ok {
		return nil
	}

	parts := make([]data.SupportInfillPart, 0, len(pieces))
	for _, piece := range pieces {
		allPaths := piece.AllPaths()
		insets := wall.GenerateClassical(c, allPaths, opts, 1, false, 0)
		infillArea := allPaths
		if len(insets) > 0 {
			infillArea = insets[len(insets)-1]
		}
		parts = append(parts, data.SupportInfillPart{
			Outline:    piece.Outline(),
			Insets:     insets,
			InfillArea: infillArea,
			Bounds:     piece.BoundingBox(),
		})
	}

	return parts
}

// shouldSkipSmoothing cheaply bounds a support area's convex hull to decide
// whether the expensive close-operation smoothing in GenerateAreas is
// actually needed: if every vertex of the outer contour already lies on its
// own convex hull, the area has no thin concave slivers for the offset/
// un-offset pass to smooth, so GenerateAreas can skip it for that layer.
// Uses github.com/furstenheim/go-convex-hull-2d, a teacher dependency with no
// call site in the retrieved driver files — given a concrete home here per
// SPEC_FULL.md's domain-stack wiring.
func shouldSkipSmoothing(area data.Paths) bool {
	if len(area) == 0 {
		return true
	}
	outer := area[0]
	if len(outer) < 4 {
		return true
	}

	points := make([]convexhull.Point, len(outer))
	for i, p := range outer {
		points[i] = hullPoint{x: float64(p.X()), y: float64(p.Y())}
	}
	hull := convexhull.ComputeHull(points)
	return len(hull) >= len(points)
}

// ExcludeIntrusions subtracts another mesh's outline from every part's
// outline and infill area, per spec.md §4.G ("split by excluding areas if
// another mesh intrudes").
func ExcludeIntrusions(c clip.Clipper, parts []data.SupportInfillPart, intruding data.Paths) []data.SupportInfillPart {
	if len(intruding) == 0 {
		return parts
	}
	out := make([]data.SupportInfillPart, 0, len(parts))
	for _, p := range parts {
		outline, ok := c.Difference(data.Paths{p.Outline}, intruding)
		if !ok || len(outline) == 0 {
			continue
		}
		infill, ok := c.Difference(p.InfillArea, intruding)
		if !ok {
			infill = data.Paths{}
		}
		p.Outline = outline[0]
		p.InfillArea = infill
		out = append(out, p)
	}
	return out
}
