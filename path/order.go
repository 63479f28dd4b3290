// Package path orders the closed-polygon and open-line toolpaths produced by
// walls/skin/infill/support into a print sequence, and builds the per-
// extruder plan with back-pressure compensation (component H).
package path

import (
	"math"
	"math/rand"

	convexhull "github.com/furstenheim/go-convex-hull-2d"

	"github.com/aligator/goslice/data"
)

// cornerWeight is the fixed weighting C in the SHORTEST seam cost, in µm²
// (spec.md §4.H).
const cornerWeight = 20000.0

type vec2 struct{ x, y float64 }

func subVec(a, b data.MicroPoint) vec2 { return vec2{float64(a.X() - b.X()), float64(a.Y() - b.Y())} }

func unit(v vec2) vec2 {
	l := math.Hypot(v.x, v.y)
	if l == 0 {
		return v
	}
	return vec2{v.x / l, v.y / l}
}

func dot(a, b vec2) float64 { return a.x*b.x + a.y*b.y }

func turn90CCW(v vec2) vec2 { return vec2{-v.y, v.x} }

// seamIndex picks the vertex of poly to start printing from, per the
// configured seam policy (spec.md §4.H).
func seamIndex(poly data.Path, seam data.SeamOptions) int {
	n := len(poly)
	if n == 0 {
		return 0
	}

	switch seam.Type {
	case data.SeamBack:
		best := 0
		for i := 1; i < n; i++ {
			if poly[i].Y() > poly[best].Y() {
				best = i
			}
		}
		return best

	case data.SeamRandom:
		return rand.Intn(n)

	case data.SeamUserSpecified:
		best := 0
		bestDist := poly[0].Sub(seam.UserSpecifiedPoint).Size()
		for i := 1; i < n; i++ {
			d := poly[i].Sub(seam.UserSpecifiedPoint).Size()
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		return best

	case data.SeamSharpestCorner:
		best := 0
		bestDot := math.MaxFloat64
		for i := 0; i < n; i++ {
			n0 := unit(subVec(poly[i], poly[(i-1+n)%n]))
			n1 := unit(subVec(poly[(i+1)%n], poly[i]))
			d := dot(n0, n1)
			if d < bestDot {
				bestDot = d
				best = i
			}
		}
		return best

	default: // SeamShortest
		outer := poly.Orientation()
		sign := 1.0
		if outer {
			sign = -1.0
		}
		best := 0
		bestCost := math.MaxFloat64
		for i := 0; i < n; i++ {
			prev := poly[(i-1+n)%n]
			next := poly[(i+1)%n]
			n0 := unit(subVec(poly[i], prev))
			n1 := unit(subVec(next, poly[i]))
			edgeLenSq := float64(poly[i].Sub(prev).Size())
			edgeLenSq *= edgeLenSq
			cost := edgeLenSq + (dot(n0, n1)-dot(turn90CCW(n0), n1))*sign*cornerWeight
			if cost < bestCost {
				bestCost = cost
				best = i
			}
		}
		return best
	}
}

func rotateToStart(poly data.Path, start int) data.Path {
	if start == 0 || len(poly) == 0 {
		return poly
	}
	out := make(data.Path, len(poly))
	for i := range poly {
		out[i] = poly[(start+i)%len(poly)]
	}
	return out
}

// OrderPolygons implements the PathOrderOptimizer of spec.md §4.H: pick a
// seam vertex for every polygon via the configured policy, then greedily
// chain the polygons starting nearest to the previous one's seam point.
func OrderPolygons(polys data.Paths, start data.MicroPoint, seam data.SeamOptions) data.Paths {
	n := len(polys)
	if n == 0 {
		return nil
	}

	rotated := make(data.Paths, n)
	for i, poly := range polys {
		rotated[i] = rotateToStart(poly, seamIndex(poly, seam))
	}

	used := make([]bool, n)
	ordered := make(data.Paths, 0, n)
	prev := start
	for len(ordered) < n {
		best := -1
		bestDist := data.Micrometer(math.MaxInt64)
		for i, poly := range rotated {
			if used[i] || len(poly) == 0 {
				continue
			}
			d := poly[0].Sub(prev).Size()
			if best == -1 || d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best == -1 {
			break
		}
		used[best] = true
		ordered = append(ordered, rotated[best])
		prev = rotated[best][0]
	}
	return ordered
}

// lineBucketSize is the LineOrderOptimizer's spatial-hash cell size (5 mm,
// per spec.md §4.H).
const lineBucketSize = data.Micrometer(5000)

func lineCell(p data.MicroPoint) [2]int64 {
	return [2]int64{int64(p.X() / lineBucketSize), int64(p.Y() / lineBucketSize)}
}

// OrderLines implements the LineOrderOptimizer of spec.md §4.H for open
// 2-point segments: a 5 mm bucket grid restricts the candidate set to nearby
// segments (falling back to a full scan if the neighbourhood is empty), the
// closer endpoint to prev becomes the start, and ties break by dot product
// with the incoming direction, penalizing sharp turns with weight 1e-4.
func OrderLines(lines []data.Path, start data.MicroPoint) []data.Path {
	n := len(lines)
	if n == 0 {
		return nil
	}

	buckets := map[[2]int64][]int{}
	for i, l := range lines {
		if len(l) < 2 {
			continue
		}
		buckets[lineCell(l[0])] = append(buckets[lineCell(l[0])], i)
		buckets[lineCell(l[1])] = append(buckets[lineCell(l[1])], i)
	}

	used := make([]bool, n)
	ordered := make([]data.Path, 0, n)
	prev := start
	haveDir := false
	var prevDir vec2

	for len(ordered) < n {
		candidates := bucketCandidates(buckets, prev, used)
		if len(candidates) == 0 {
			candidates = allUnused(used)
		}
		if len(candidates) == 0 {
			break
		}

		bestIdx := -1
		bestStartFirst := true
		bestScore := math.MaxFloat64
		for _, idx := range candidates {
			l := lines[idx]
			for _, startFirst := range [2]bool{true, false} {
				s, e := l[0], l[1]
				if !startFirst {
					s, e = l[1], l[0]
				}
				d := float64(s.Sub(prev).Size())
				score := d * d
				if haveDir {
					dir := unit(subVec(e, s))
					score -= dot(dir, prevDir) * 1e-4
				}
				if score < bestScore {
					bestScore = score
					bestIdx = idx
					bestStartFirst = startFirst
				}
			}
		}
		if bestIdx == -1 {
			break
		}
		used[bestIdx] = true
		l := lines[bestIdx]
		s, e := l[0], l[1]
		if !bestStartFirst {
			s, e = l[1], l[0]
		}
		ordered = append(ordered, data.Path{s, e})
		prev = e
		prevDir = unit(subVec(e, s))
		haveDir = true
	}
	return ordered
}

func bucketCandidates(buckets map[[2]int64][]int, p data.MicroPoint, used []bool) []int {
	cell := lineCell(p)
	var out []int
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, idx := range buckets[[2]int64{cell[0] + dx, cell[1] + dy}] {
				if !used[idx] {
					out = append(out, idx)
				}
			}
		}
	}
	return out
}

func allUnused(used []bool) []int {
	var out []int
	for i, u := range used {
		if !u {
			out = append(out, i)
		}
	}
	return out
}

// hullPoint adapts a data.MicroPoint to the convexhull.Point contract
// (GetX()/GetY() float64).
type hullPoint struct{ x, y float64 }

func (h hullPoint) GetX() float64 { return h.x }
func (h hullPoint) GetY() float64 { return h.y }

// PrintedHull computes the convex hull of every vertex across the ordered
// polygons, used as a cheap pre-check for whether a travel move between two
// consecutive start points can go in a direct line: if both endpoints lie on
// or inside the hull, the move can't possibly leave the printed region's
// convex envelope and the caller can skip a more expensive boundary-avoidance
// pass. Uses github.com/furstenheim/go-convex-hull-2d (also used in
// support.shouldSkipSmoothing).
func PrintedHull(polys data.Paths) []convexhull.Point {
	var points []convexhull.Point
	for _, poly := range polys {
		for _, p := range poly {
			points = append(points, hullPoint{float64(p.X()), float64(p.Y())})
		}
	}
	if len(points) < 3 {
		return points
	}
	return convexhull.ComputeHull(points)
}

// DirectTravelLikelySafe reports whether a travel segment between from and to
// stays within the printed region's convex hull, a cheap necessary (not
// sufficient) condition for skipping boundary-avoidance routing.
func DirectTravelLikelySafe(hull []convexhull.Point, from, to data.MicroPoint) bool {
	if len(hull) < 3 {
		return true
	}
	return pointInHull(hull, from) && pointInHull(hull, to)
}

// RouteAroundHull returns the waypoints for a travel move from "from" to "to"
// that DirectTravelLikelySafe reported as not safe to take directly: it
// returns two waypoints, the hull vertex nearest "from" and the hull vertex
// nearest "to". The move between those two vertices is a straight chord of
// the hull; it does not walk along the hull boundary.
func RouteAroundHull(hull []convexhull.Point, from, to data.MicroPoint) []data.MicroPoint {
	if len(hull) < 3 {
		return nil
	}
	return []data.MicroPoint{nearestHullPoint(hull, from), nearestHullPoint(hull, to)}
}

func nearestHullPoint(hull []convexhull.Point, p data.MicroPoint) data.MicroPoint {
	best := data.NewMicroPoint(data.Micrometer(hull[0].GetX()), data.Micrometer(hull[0].GetY()))
	bestDist := math.MaxFloat64
	for _, h := range hull {
		hp := data.NewMicroPoint(data.Micrometer(h.GetX()), data.Micrometer(h.GetY()))
		d := float64(hp.Sub(p).Size())
		if d < bestDist {
			bestDist = d
			best = hp
		}
	}
	return best
}

func pointInHull(hull []convexhull.Point, p data.MicroPoint) bool {
	px, py := float64(p.X()), float64(p.Y())
	n := len(hull)
	sign := 0
	for i := 0; i < n; i++ {
		a, b := hull[i], hull[(i+1)%n]
		cross := (b.GetX()-a.GetX())*(py-a.GetY()) - (b.GetY()-a.GetY())*(px-a.GetX())
		if cross == 0 {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if sign != s {
			return false
		}
	}
	return true
}
