// Package slicer intersects a mesh with a set of horizontal layer planes,
// producing per-layer closed polygons (plus any residual open polylines),
// component B of the pipeline.
package slicer

import (
	"context"
	"fmt"

	"github.com/aligator/goslice/data"
)

// segment is one directed mesh/plane intersection: start->end, winding so that
// filled material is to the left of the direction of travel.
type segment struct {
	start, end     data.MicroPoint
	faceIndex      int
	addedToPolygon bool
}

// Slice intersects mesh with the given Z heights and returns one SlicerLayer
// per height. ctx is checked once per mesh for cooperative cancellation,
// matching the driver's phase-level cancellation granularity (spec.md §5).
func Slice(ctx context.Context, mesh *data.Mesh, zHeights []data.Micrometer) ([]data.SlicerLayer, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if len(mesh.Faces) == 0 {
		return nil, ErrMeshEmpty(0)
	}

	layers := make([]data.SlicerLayer, len(zHeights))
	segsByLayer := make([][]segment, len(zHeights))

	for faceIdx, face := range mesh.Faces {
		v0 := mesh.TransformedVertex(face, 0)
		v1 := mesh.TransformedVertex(face, 1)
		v2 := mesh.TransformedVertex(face, 2)

		minZ, maxZ := v0.Z(), v0.Z()
		for _, z := range []data.Micrometer{v1.Z(), v2.Z()} {
			if z < minZ {
				minZ = z
			}
			if z > maxZ {
				maxZ = z
			}
		}

		for li, z := range zHeights {
			if z < minZ || z > maxZ {
				continue
			}
			seg, ok := intersectTriangle(v0, v1, v2, z)
			if !ok {
				continue
			}
			seg.faceIndex = faceIdx
			segsByLayer[li] = append(segsByLayer[li], seg)
		}
	}

	for li, z := range zHeights {
		closed, open := stitch(segsByLayer[li])
		layers[li] = data.SlicerLayer{
			LayerNr:        li,
			Z:              z,
			ClosedPolygons: closed,
			OpenPolylines:  open,
		}
	}

	return layers, nil
}

// intersectTriangle computes the directed segment of the intersection between
// the triangle (v0,v1,v2) and the horizontal plane at height z, if any. Edges
// exactly on the plane are treated per the spec's boundary rule: they may
// degenerate to a point, which is silently dropped here (ok is false).
func intersectTriangle(v0, v1, v2 data.MicroVec3, z data.Micrometer) (segment, bool) {
	// Classify each vertex relative to the plane.
	above := func(v data.MicroVec3) bool { return v.Z() > z }
	below := func(v data.MicroVec3) bool { return v.Z() < z }

	type edgeCross struct {
		p      data.MicroPoint
		valid  bool
	}

	crossEdge := func(a, b data.MicroVec3) edgeCross {
		if (a.Z() > z) == (b.Z() > z) && a.Z() != z && b.Z() != z {
			return edgeCross{}
		}
		if a.Z() == b.Z() {
			// Edge lies exactly in the plane; handled by the vertex-on-plane path below.
			return edgeCross{}
		}
		t := float64(z-a.Z()) / float64(b.Z()-a.Z())
		if t < 0 || t > 1 {
			return edgeCross{}
		}
		x := float64(a.X()) + t*float64(b.X()-a.X())
		y := float64(a.Y()) + t*float64(b.Y()-a.Y())
		return edgeCross{p: data.NewMicroPoint(data.Micrometer(x), data.Micrometer(y)), valid: true}
	}

	// Standard case: exactly two edges cross the plane (vertices split 1-2).
	verts := [3]data.MicroVec3{v0, v1, v2}
	var crossings []data.MicroPoint
	var fromAbove []bool // whether the edge goes from an above-vertex to a below-vertex
	for i := 0; i < 3; i++ {
		a := verts[i]
		b := verts[(i+1)%3]
		if a.Z() == z && b.Z() == z {
			continue
		}
		c := crossEdge(a, b)
		if c.valid {
			crossings = append(crossings, c.p)
			fromAbove = append(fromAbove, above(a) && !above(b))
		} else if a.Z() == z {
			crossings = append(crossings, a.To2D())
			fromAbove = append(fromAbove, below(b))
		}
	}

	if len(crossings) < 2 {
		return segment{}, false
	}

	// Orient so that the segment goes from the point on the edge descending
	// into the solid (above->below) to the other, keeping filled material to
	// the left (spec.md §4.B).
	start, end := crossings[0], crossings[1]
	if len(fromAbove) > 0 && !fromAbove[0] {
		start, end = end, start
	}
	if start == end {
		return segment{}, false
	}
	return segment{start: start, end: end}, true
}

const stitchTolerance = data.Micrometer(10)

// stitch joins segments into closed loops by endpoint snapping, using a
// spatial hash keyed by quantised vertex for O(1) average lookups (spec.md
// §4.B). Segments that fail to close are returned as open polylines.
func stitch(segs []segment) (data.Paths, []data.Polyline) {
	if len(segs) == 0 {
		return nil, nil
	}

	type key struct{ x, y int64 }
	quantize := func(p data.MicroPoint) key {
		return key{int64(p.X()) / int64(stitchTolerance), int64(p.Y()) / int64(stitchTolerance)}
	}

	// index segments by the quantised cell of their start point, checking the
	// 3x3 neighbourhood of cells for a true match within tolerance.
	startIndex := map[key][]int{}
	for i, s := range segs {
		k := quantize(s.start)
		startIndex[k] = append(startIndex[k], i)
	}

	findNext := func(end data.MicroPoint, used []bool) int {
		k := quantize(end)
		best := -1
		var bestDist data.Micrometer
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for _, idx := range startIndex[key{k.x + dx, k.y + dy}] {
					if used[idx] {
						continue
					}
					d := segs[idx].start.Sub(end).Size()
					if d <= stitchTolerance {
						if best == -1 || d < bestDist {
							best = idx
							bestDist = d
						}
					}
				}
			}
		}
		return best
	}

	used := make([]bool, len(segs))
	var closed data.Paths
	var open []data.Polyline

	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		path := data.Path{segs[i].start, segs[i].end}
		cur := i
		didClose := false
		for {
			next := findNext(segs[cur].end, used)
			if next == -1 {
				break
			}
			if segs[cur].end.Sub(segs[i].start).Size() <= stitchTolerance && len(path) > 2 {
				didClose = true
				break
			}
			used[next] = true
			path = append(path, segs[next].end)
			cur = next
			if segs[cur].end.Sub(segs[i].start).Size() <= stitchTolerance {
				didClose = true
				break
			}
		}

		if didClose || path[len(path)-1].Sub(path[0]).ShorterThanOrEqual(stitchTolerance) {
			closed = append(closed, path.RemoveDegenerate())
		} else {
			open = append(open, path)
		}
	}

	return closed, open
}

// ErrMeshEmpty is returned when a mesh has no faces to slice.
func ErrMeshEmpty(meshIndex int) error {
	return fmt.Errorf("slicer: mesh %d has no faces", meshIndex)
}
