// Package part splits a layer's unioned polygons into connected parts (an
// outer contour plus its contained holes), component C of the pipeline.
package part

import (
	"math"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

// Split unions the layer's closed polygons and splits the result into parts.
// Each hole is attached to the unique outer contour that contains it, which
// the clipper backend's PolyTree already encodes (spec.md §4.C).
func Split(c clip.Clipper, layer data.SlicerLayer) ([]data.LayerPart, bool) {
	return c.SplitIntoParts(layer.ClosedPolygons)
}

// Mold implements the optional per-layer mold transform of spec.md §6: given
// an angle, a wall width and the layer height, it replaces each layer's
// polygons with the mold's shell, working top-down so each layer's mold outer
// wall is built from the layer above's (already-inset) mold outline.
//
// Grounded on original_source/src/Mold.cpp; the >=90 degree branch collapses
// to a simple vertical-wall shell as in the original.
type Mold struct {
	Clipper     clip.Clipper
	Angle       data.Degree
	Width       data.Micrometer
	LayerHeight data.Micrometer
}

// Process rewrites layer.ClosedPolygons in place for every layer, from the top
// down, per spec.md §6's mold_outline_above recurrence.
func (m Mold) Process(layers []data.SlicerLayer) {
	if m.Angle >= 90 {
		for i := range layers {
			outline := layers[i].ClosedPolygons
			shell := m.Clipper.Offset(outline, m.Width, clip.JoinRound)
			result, ok := m.Clipper.Difference(shell, outline)
			if ok {
				layers[i].ClosedPolygons = result
			}
			layers[i].OpenPolylines = nil
		}
		return
	}

	inset := data.Micrometer(math.Tan(data.ToRadians(float64(m.Angle))) * float64(m.LayerHeight))

	var moldAbove data.Paths
	for i := len(layers) - 1; i >= 0; i-- {
		outline := layers[i].ClosedPolygons
		widened := m.Clipper.Offset(outline, m.Width, clip.JoinRound)

		if moldAbove == nil {
			moldAbove = widened
		} else {
			shrunk := m.Clipper.Offset(moldAbove, -inset, clip.JoinRound)
			union, ok := m.Clipper.Union(shrunk, widened)
			if ok {
				moldAbove = union
			}
		}

		result, ok := m.Clipper.Difference(moldAbove, outline)
		if ok {
			layers[i].ClosedPolygons = result
		}
		layers[i].OpenPolylines = nil
	}
}
