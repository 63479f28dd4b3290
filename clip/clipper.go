// Package clip provides the polygon boolean/offset backend shared by every
// pipeline stage, backed by github.com/aligator/go.clipper — the integer
// clipping library spec.md §3 requires ("PolygonSet ... backed by an integer
// clipping library").
package clip

import (
	"fmt"

	clipper "github.com/aligator/go.clipper"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/geoerr"
)

// JoinType selects the corner style used by Offset, per spec.md §3
// ("Minkowski offset (miter/round/square joins)").
type JoinType int

const (
	JoinMiter JoinType = iota
	JoinRound
	JoinSquare
)

func (j JoinType) toClipper() clipper.JoinType {
	switch j {
	case JoinRound:
		return clipper.JtRound
	case JoinSquare:
		return clipper.JtSquare
	default:
		return clipper.JtMiter
	}
}

// Clipper is the capability interface every other pipeline package depends on
// for polygon-set boolean operations and offsetting.
type Clipper interface {
	Union(a, b data.Paths) (data.Paths, bool)
	Intersection(a, b data.Paths) (data.Paths, bool)
	Difference(a, b data.Paths) (data.Paths, bool)
	Xor(a, b data.Paths) (data.Paths, bool)

	// Offset grows (positive delta) or shrinks (negative delta) every path in
	// ps by delta, joined per jt.
	Offset(ps data.Paths, delta data.Micrometer, jt JoinType) data.Paths

	// Simplify removes self-intersections and degenerate geometry from ps,
	// using the non-zero fill rule (spec.md §3: "self-intersection repair").
	Simplify(ps data.Paths) data.Paths

	// SplitIntoParts unions ps and splits the result into outer-contour+holes
	// parts (component C's core operation).
	SplitIntoParts(ps data.Paths) ([]data.LayerPart, bool)
}

type backend struct{}

// New returns the go.clipper-backed Clipper implementation.
func New() Clipper {
	return backend{}
}

func toClipperPoint(p data.MicroPoint) *clipper.IntPoint {
	return &clipper.IntPoint{X: clipper.CInt(p.X()), Y: clipper.CInt(p.Y())}
}

func toClipperPath(p data.Path) clipper.Path {
	out := make(clipper.Path, 0, len(p))
	for _, pt := range p {
		out = append(out, toClipperPoint(pt))
	}
	return out
}

func toClipperPaths(ps data.Paths) clipper.Paths {
	out := make(clipper.Paths, 0, len(ps))
	for _, p := range ps {
		out = append(out, toClipperPath(p))
	}
	return out
}

func fromClipperPoint(p *clipper.IntPoint) data.MicroPoint {
	return data.NewMicroPoint(data.Micrometer(p.X), data.Micrometer(p.Y))
}

func fromClipperPath(p clipper.Path) data.Path {
	out := make(data.Path, 0, len(p))
	for _, pt := range p {
		out = append(out, fromClipperPoint(pt))
	}
	return out
}

func fromClipperPaths(ps clipper.Paths) data.Paths {
	out := make(data.Paths, 0, len(ps))
	for _, p := range ps {
		out = append(out, fromClipperPath(p))
	}
	return out
}

func (b backend) boolOp(op clipper.ClipType, a, bb data.Paths) (data.Paths, bool) {
	c := clipper.NewClipper(clipper.IoNone)
	if len(a) > 0 {
		c.AddPaths(toClipperPaths(a), clipper.PtSubject, true)
	}
	if len(bb) > 0 {
		c.AddPaths(toClipperPaths(bb), clipper.PtClip, true)
	}
	if len(a) == 0 && len(bb) == 0 {
		return data.Paths{}, true
	}
	result, ok := c.Execute2(op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, false
	}
	return polyTreeToPaths(result), true
}

func (b backend) Union(a, bb data.Paths) (data.Paths, bool) {
	return b.boolOp(clipper.CtUnion, a, bb)
}

func (b backend) Intersection(a, bb data.Paths) (data.Paths, bool) {
	return b.boolOp(clipper.CtIntersection, a, bb)
}

func (b backend) Difference(a, bb data.Paths) (data.Paths, bool) {
	return b.boolOp(clipper.CtDifference, a, bb)
}

func (b backend) Xor(a, bb data.Paths) (data.Paths, bool) {
	return b.boolOp(clipper.CtXor, a, bb)
}

func (b backend) Offset(ps data.Paths, delta data.Micrometer, jt JoinType) data.Paths {
	if len(ps) == 0 {
		return data.Paths{}
	}
	o := clipper.NewClipperOffset()
	o.MiterLimit = 2
	o.AddPaths(toClipperPaths(ps), jt.toClipper(), clipper.EtClosedPolygon)
	result := o.Execute(float64(delta))
	return fromClipperPaths(result)
}

func (b backend) Simplify(ps data.Paths) data.Paths {
	if len(ps) == 0 {
		return data.Paths{}
	}
	result := clipper.SimplifyPolygons(toClipperPaths(ps), clipper.PftNonZero)
	return fromClipperPaths(result)
}

// polyTreeToPaths flattens a PolyTree's contours (outer and hole alike) into a
// plain PolygonSet; orientation (CW/CCW) already encodes outer-vs-hole.
func polyTreeToPaths(tree *clipper.PolyTree) data.Paths {
	var out data.Paths
	var walk func(nodes []*clipper.PolyNode)
	walk = func(nodes []*clipper.PolyNode) {
		for _, n := range nodes {
			if len(n.Contour()) > 0 {
				out = append(out, fromClipperPath(n.Contour()))
			}
			walk(n.Childs())
		}
	}
	walk(tree.Childs())
	return out
}

func (b backend) SplitIntoParts(ps data.Paths) ([]data.LayerPart, bool) {
	if len(ps) == 0 {
		return nil, true
	}
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(toClipperPaths(ps), clipper.PtSubject, true)
	tree, ok := c.Execute2(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, false
	}
	return polyTreeToParts(tree), true
}

// polyTreeToParts walks the PolyTree's outer/hole alternation (outer contours
// are tree children; their children are holes; grandchildren are new outer
// contours of islands inside holes, and so on), attaching each hole set to its
// enclosing outer contour. Grounded on the teacher's polyTreeToLayerParts.
func polyTreeToParts(tree *clipper.PolyTree) []data.LayerPart {
	var parts []data.LayerPart
	var outers []*clipper.PolyNode
	outers = append(outers, tree.Childs()...)

	for len(outers) > 0 {
		var nextOuters []*clipper.PolyNode
		for _, outer := range outers {
			var holes data.Paths
			for _, hole := range outer.Childs() {
				holes = append(holes, fromClipperPath(hole.Contour()))
				nextOuters = append(nextOuters, hole.Childs()...)
			}
			parts = append(parts, data.NewUnknownLayerPart(fromClipperPath(outer.Contour()), holes))
		}
		outers = nextOuters
	}
	return parts
}

// ErrClipFailed wraps a clipper boolean-op failure with a short diagnostic,
// used by callers that want a proper error return instead of the raw bool.
func ErrClipFailed(op string) error {
	return fmt.Errorf("%w: clipper %s failed", geoerr.ErrDegenerate, op)
}
