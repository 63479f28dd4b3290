package data

import "math"

// Path is an ordered sequence of vertices; the polygon is implicitly closed (the
// last vertex connects back to the first). A positive signed area means the path
// winds counter-clockwise (an outer contour); a negative signed area means it is a
// hole.
type Path []MicroPoint

// Paths is an unordered collection of polygons, interpreted with the non-zero fill
// rule (spec.md §3: "non-zero used throughout").
type Paths []Path

// Area returns the signed area of the path in µm².
func (p Path) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	// Use the shoelace formula; accumulate as float64 since areas can exceed the
	// safe range of int64 for very large or very fine meshes.
	var area float64
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += float64(p[i].x)*float64(p[j].y) - float64(p[j].x)*float64(p[i].y)
	}
	return area / 2
}

// Orientation reports true if the path winds counter-clockwise (outer contour).
func (p Path) Orientation() bool {
	return p.Area() >= 0
}

// Size returns the bounding min/max of the path's vertices.
func (p Path) Size() (min, max MicroPoint) {
	if len(p) == 0 {
		return
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		if pt.x < min.x {
			min.x = pt.x
		}
		if pt.y < min.y {
			min.y = pt.y
		}
		if pt.x > max.x {
			max.x = pt.x
		}
		if pt.y > max.y {
			max.y = pt.y
		}
	}
	return
}

// BoundingBox returns the path's AABB.
func (p Path) BoundingBox() AABB {
	min, max := p.Size()
	return AABB{Min: min, Max: max}
}

// IsAlmostFinished reports whether the last point is within snapDistance of the
// first point, i.e. the path is "almost" a closed loop.
func (p Path) IsAlmostFinished(snapDistance Micrometer) bool {
	if len(p) < 2 {
		return false
	}
	return p[len(p)-1].Sub(p[0]).ShorterThanOrEqual(snapDistance)
}

// Simplify removes vertices that are closer than minimumDistance to their
// neighbours and removes near-collinear vertices whose deviation from the
// straight line between their neighbours is below maxDeviation. Passing a
// negative value for either parameter uses a small built-in default (mirrors
// teacher's `Simplify(-1, -1)` call convention).
func (p Path) Simplify(minimumDistance, maxDeviation Micrometer) Path {
	if minimumDistance < 0 {
		minimumDistance = 10
	}
	if maxDeviation < 0 {
		maxDeviation = 10
	}
	if len(p) < 4 {
		return p
	}

	result := make(Path, 0, len(p))
	result = append(result, p[0])
	for i := 1; i < len(p); i++ {
		last := result[len(result)-1]
		if p[i].Sub(last).ShorterThan(minimumDistance) {
			continue
		}
		result = append(result, p[i])
	}

	// Remove near-collinear vertices (perpendicular distance from the
	// prev-next chord below maxDeviation).
	if len(result) < 4 {
		return result
	}
	out := make(Path, 0, len(result))
	n := len(result)
	for i := 0; i < n; i++ {
		prev := result[(i-1+n)%n]
		cur := result[i]
		next := result[(i+1)%n]
		if pointLineDeviation(cur, prev, next) > float64(maxDeviation) {
			out = append(out, cur)
		}
	}
	if len(out) < 3 {
		return result
	}
	return out
}

// pointLineDeviation returns the perpendicular distance from pt to the line
// through a and b.
func pointLineDeviation(pt, a, b MicroPoint) float64 {
	ab := b.Sub(a)
	abLen := ab.Size()
	if abLen == 0 {
		return float64(pt.Sub(a).Size())
	}
	cross := ab.Cross(pt.Sub(a))
	if cross < 0 {
		cross = -cross
	}
	return float64(cross) / float64(abLen)
}

// RemoveDegenerate drops consecutive duplicate/zero-length edges.
func (p Path) RemoveDegenerate() Path {
	if len(p) < 2 {
		return p
	}
	out := make(Path, 0, len(p))
	for i, pt := range p {
		if i == 0 {
			out = append(out, pt)
			continue
		}
		if pt.Sub(out[len(out)-1]).ShorterThanOrEqual(0) {
			continue
		}
		out = append(out, pt)
	}
	if len(out) > 1 && out[0].Sub(out[len(out)-1]).ShorterThanOrEqual(0) {
		out = out[:len(out)-1]
	}
	return out
}

// ContainsPoint reports whether pt is inside p using the standard ray-casting
// test (even-odd). Used by the part splitter to attach holes to their outer
// contour and by infill-region membership checks.
func (p Path) ContainsPoint(pt MicroPoint) bool {
	inside := false
	n := len(p)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := p[i], p[j]
		if (pi.y > pt.y) != (pj.y > pt.y) {
			xIntersect := float64(pj.x-pi.x)*float64(pt.y-pi.y)/float64(pj.y-pi.y) + float64(pi.x)
			if float64(pt.x) < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// ContainsPoint reports whether pt is inside the polygon set under the
// non-zero fill rule: every contour containing the point adds +1 if it winds
// counter-clockwise and -1 if it winds clockwise, and the point is inside when
// the sum is non-zero (so a clockwise hole cancels its enclosing outer contour).
func (ps Paths) ContainsPoint(pt MicroPoint) bool {
	winding := 0
	for _, p := range ps {
		if p.ContainsPoint(pt) {
			if p.Orientation() {
				winding++
			} else {
				winding--
			}
		}
	}
	return winding != 0
}

// TotalArea returns the sum of the (signed) areas of every path in the set.
// For a valid non-zero-rule PolygonSet (outer contours positive, holes negative)
// this is the net filled area.
func (ps Paths) TotalArea() float64 {
	var total float64
	for _, p := range ps {
		total += p.Area()
	}
	return total
}

// AbsArea returns the sum of the absolute areas of every path.
func (ps Paths) AbsArea() float64 {
	var total float64
	for _, p := range ps {
		total += math.Abs(p.Area())
	}
	return total
}

// RemoveSmallAreas drops every path whose absolute area is below minArea (µm²).
func (ps Paths) RemoveSmallAreas(minArea float64) Paths {
	var out Paths
	for _, p := range ps {
		if math.Abs(p.Area()) >= minArea {
			out = append(out, p)
		}
	}
	return out
}

// BoundingBox returns the AABB containing every point of every path.
func (ps Paths) BoundingBox() AABB {
	var box AABB
	first := true
	for _, p := range ps {
		if len(p) == 0 {
			continue
		}
		b := p.BoundingBox()
		if first {
			box = b
			first = false
		} else {
			box = box.Union(b)
		}
	}
	return box
}

// Simplify applies Path.Simplify to every path in the set.
func (ps Paths) Simplify(minimumDistance, maxDeviation Micrometer) Paths {
	out := make(Paths, 0, len(ps))
	for _, p := range ps {
		s := p.Simplify(minimumDistance, maxDeviation)
		if len(s) >= 3 {
			out = append(out, s)
		}
	}
	return out
}
