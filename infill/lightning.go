package infill

import (
	"math"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

// LightningNodeID indexes into a LightningTree's arena.
type LightningNodeID int

// LightningNode is one branch point of a lightning-infill tree. Children are
// referenced by index; Parent is a weak back-reference, never owning — the
// arena-of-nodes shape spec.md §9 requires so that tree traversal doesn't
// create Go reference cycles.
type LightningNode struct {
	Point    data.MicroPoint
	Parent   LightningNodeID // -1 for a root
	Children []LightningNodeID
}

// LightningTree is one layer's forest, grounded on overhang.
type LightningTree struct {
	Nodes []LightningNode
	Roots []LightningNodeID
}

const noParent = LightningNodeID(-1)

func (t *LightningTree) addNode(p data.MicroPoint, parent LightningNodeID) LightningNodeID {
	id := LightningNodeID(len(t.Nodes))
	t.Nodes = append(t.Nodes, LightningNode{Point: p, Parent: parent})
	if parent == noParent {
		t.Roots = append(t.Roots, id)
	} else {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, id)
	}
	return id
}

// LightningOverhang computes spec.md §4.F point 1: the area of this layer's
// outline not supported by the layer above, shrunk inward by
// supportingRadius*tan(overhangAngle).
func LightningOverhang(c clip.Clipper, outlineThisLayer, outlineAbove data.Paths, supportingRadius data.Micrometer, overhangAngleDeg float64) data.Paths {
	if len(outlineAbove) == 0 {
		return outlineThisLayer
	}
	shrink := data.Micrometer(float64(supportingRadius) * math.Tan(overhangAngleDeg*math.Pi/180))
	shrunk := c.Offset(outlineAbove, -shrink, clip.JoinMiter)
	overhang, ok := c.Difference(outlineThisLayer, shrunk)
	if !ok {
		return data.Paths{}
	}
	return overhang
}

// PropagateTree realigns a tree built for the layer above onto this layer's
// outline: nodes that fell outside are projected to the nearest boundary
// point, leaf branches shorter than pruneLength are dropped, and inner nodes
// are smoothed by straightenJunctions, moving at most straighteningMaxDistance
// (spec.md §4.F point 2). Ground. from original_source/src/infill/LightningLayer.cpp.
func PropagateTree(prev LightningTree, outline data.Paths, pruneLength, straighteningMaxDistance data.Micrometer) LightningTree {
	next := LightningTree{Nodes: make([]LightningNode, len(prev.Nodes))}
	copy(next.Nodes, prev.Nodes)
	next.Roots = append([]LightningNodeID(nil), prev.Roots...)

	for i := range next.Nodes {
		if !outline.ContainsPoint(next.Nodes[i].Point) {
			next.Nodes[i].Point = nearestBoundaryPoint(outline, next.Nodes[i].Point)
		}
	}

	pruneShortLeaves(&next, pruneLength)
	straightenJunctions(&next, straighteningMaxDistance)

	return next
}

func nearestBoundaryPoint(outline data.Paths, p data.MicroPoint) data.MicroPoint {
	best := p
	bestDist := math.MaxFloat64
	for _, poly := range outline {
		n := len(poly)
		for i := 0; i < n; i++ {
			a, b := poly[i], poly[(i+1)%n]
			proj := closestPointOnSegment(p, a, b)
			d := float64(proj.Sub(p).Size())
			if d < bestDist {
				bestDist = d
				best = proj
			}
		}
	}
	return best
}

func closestPointOnSegment(p, a, b data.MicroPoint) data.MicroPoint {
	ab := b.Sub(a)
	abLen2 := float64(ab.Dot(ab))
	if abLen2 == 0 {
		return a
	}
	t := float64(p.Sub(a).Dot(ab)) / abLen2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t))
}

// pruneShortLeaves removes leaf nodes whose distance to their nearest
// branching ancestor is below pruneLength, repeating until stable.
func pruneShortLeaves(t *LightningTree, pruneLength data.Micrometer) {
	if pruneLength <= 0 {
		return
	}
	removed := make(map[LightningNodeID]bool)
	changed := true
	for changed {
		changed = false
		for id := range t.Nodes {
			nid := LightningNodeID(id)
			if removed[nid] {
				continue
			}
			node := t.Nodes[nid]
			if len(aliveChildren(t, nid, removed)) != 0 {
				continue
			}
			if node.Parent == noParent {
				continue
			}
			// Sum the branch length from the leaf up to its nearest branching
			// ancestor (or the root).
			var length data.Micrometer
			cur := nid
			for {
				parent := t.Nodes[cur].Parent
				length += t.Nodes[cur].Point.Sub(t.Nodes[parent].Point).Size()
				if t.Nodes[parent].Parent == noParent || len(aliveChildren(t, parent, removed)) > 1 {
					break
				}
				cur = parent
			}
			if length < pruneLength {
				removed[nid] = true
				changed = true
			}
		}
	}
	if len(removed) == 0 {
		return
	}
	compactTree(t, removed)
}

func aliveChildren(t *LightningTree, id LightningNodeID, removed map[LightningNodeID]bool) []LightningNodeID {
	var out []LightningNodeID
	for _, c := range t.Nodes[id].Children {
		if !removed[c] {
			out = append(out, c)
		}
	}
	return out
}

func compactTree(t *LightningTree, removed map[LightningNodeID]bool) {
	remap := make(map[LightningNodeID]LightningNodeID)
	var nodes []LightningNode
	for id, n := range t.Nodes {
		nid := LightningNodeID(id)
		if removed[nid] {
			continue
		}
		remap[nid] = LightningNodeID(len(nodes))
		nodes = append(nodes, n)
	}
	for i := range nodes {
		if nodes[i].Parent != noParent {
			nodes[i].Parent = remap[nodes[i].Parent]
		}
		var children []LightningNodeID
		for _, c := range nodes[i].Children {
			if r, ok := remap[c]; ok {
				children = append(children, r)
			}
		}
		nodes[i].Children = children
	}
	var roots []LightningNodeID
	for _, r := range t.Roots {
		if nr, ok := remap[r]; ok {
			roots = append(roots, nr)
		}
	}
	t.Nodes = nodes
	t.Roots = roots
}

// straightenJunctions moves every node that has a parent and at least one
// child toward the midpoint between its parent and the average of its
// children, by at most maxDistance. Only the immediate parent and children
// are used; the nearest upstream and downstream junctions further along the
// tree are not looked up.
func straightenJunctions(t *LightningTree, maxDistance data.Micrometer) {
	if maxDistance <= 0 {
		return
	}
	for id := range t.Nodes {
		nid := LightningNodeID(id)
		node := t.Nodes[nid]
		if node.Parent == noParent || len(node.Children) == 0 {
			continue
		}
		upstream := t.Nodes[node.Parent].Point
		var avgX, avgY float64
		for _, c := range node.Children {
			avgX += float64(t.Nodes[c].Point.X())
			avgY += float64(t.Nodes[c].Point.Y())
		}
		n := float64(len(node.Children))
		downstream := data.NewMicroPoint(data.Micrometer(avgX/n), data.Micrometer(avgY/n))

		mid := data.NewMicroPoint(
			(upstream.X()+downstream.X())/2,
			(upstream.Y()+downstream.Y())/2,
		)
		offset := mid.Sub(node.Point)
		if offset.ShorterThanOrEqual(maxDistance) {
			t.Nodes[nid].Point = mid
		} else {
			t.Nodes[nid].Point = node.Point.Add(offset.Normal(maxDistance))
		}
	}
}

// gridCell is a coarse key into the supporting-radius/6 distance-field grid
// used by GroundUnsupported.
type gridCell struct{ x, y int }

// GroundUnsupported implements spec.md §4.F point 3: while an unsupported
// sample exists in the overhang, ground it to the nearest outline point or an
// existing tree node within supportingRadius (whichever is preferred), add a
// branch, and mark the surrounding grid cells supported.
func GroundUnsupported(tree *LightningTree, overhang data.Paths, outline data.Paths, supportingRadius data.Micrometer) {
	if len(overhang) == 0 {
		return
	}
	cellSize := supportingRadius / 6
	if cellSize <= 0 {
		cellSize = 1
	}

	supported := map[gridCell]bool{}
	bounds := overhang.BoundingBox()

	markSupported := func(p data.MicroPoint, radius data.Micrometer) {
		r := int(radius/cellSize) + 1
		cx := int(p.X() / cellSize)
		cy := int(p.Y() / cellSize)
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				cell := gridCell{cx + dx, cy + dy}
				cellPt := data.NewMicroPoint(data.Micrometer(cell.x)*cellSize, data.Micrometer(cell.y)*cellSize)
				if cellPt.Sub(p).ShorterThanOrEqual(radius) {
					supported[cell] = true
				}
			}
		}
	}

	for _, n := range tree.Nodes {
		markSupported(n.Point, supportingRadius)
	}

	maxIterations := 100000
	for iter := 0; iter < maxIterations; iter++ {
		sample, found := nextUnsupportedSample(overhang, bounds, cellSize, supported)
		if !found {
			break
		}

		groundPoint, parent := bestGrounding(tree, outline, sample, supportingRadius)
		if parent == noParent {
			parent = tree.addNode(groundPoint, noParent)
		}
		newID := tree.addNode(sample, parent)
		markSupported(tree.Nodes[newID].Point, supportingRadius)
	}
}

// nextUnsupportedSample scans the supportingRadius/6 grid over overhang's
// bounds for the first cell center that both lies inside overhang and is not
// yet marked supported.
func nextUnsupportedSample(overhang data.Paths, bounds data.AABB, cellSize data.Micrometer, supported map[gridCell]bool) (data.MicroPoint, bool) {
	minX := int(bounds.Min.X() / cellSize)
	maxX := int(bounds.Max.X()/cellSize) + 1
	minY := int(bounds.Min.Y() / cellSize)
	maxY := int(bounds.Max.Y()/cellSize) + 1

	for gx := minX; gx <= maxX; gx++ {
		for gy := minY; gy <= maxY; gy++ {
			cell := gridCell{gx, gy}
			if supported[cell] {
				continue
			}
			p := data.NewMicroPoint(data.Micrometer(gx)*cellSize, data.Micrometer(gy)*cellSize)
			if overhang.ContainsPoint(p) {
				return p, true
			}
		}
	}
	return data.MicroPoint{}, false
}

// bestGrounding picks the closer of (a) the nearest outline point, returning
// noParent since that starts a new root, and (b) the nearest existing tree
// node within supportingRadius, returning it as the new branch's parent.
func bestGrounding(tree *LightningTree, outline data.Paths, sample data.MicroPoint, supportingRadius data.Micrometer) (data.MicroPoint, LightningNodeID) {
	boundaryPoint := nearestBoundaryPoint(outline, sample)
	boundaryDist := boundaryPoint.Sub(sample).Size()

	bestNode := noParent
	bestDist := supportingRadius
	for i, n := range tree.Nodes {
		d := n.Point.Sub(sample).Size()
		if d < bestDist {
			bestDist = d
			bestNode = LightningNodeID(i)
		}
	}

	if bestNode != noParent && bestDist < boundaryDist {
		return tree.Nodes[bestNode].Point, bestNode
	}
	return boundaryPoint, noParent
}

// RegroundDrifted implements spec.md §4.F point 4: any root that ended up
// inside another tree's territory after realignment is reattached to the
// nearest other tree (or left grounded on the outline if none is closer).
func RegroundDrifted(trees []*LightningTree, outline data.Paths, supportingRadius data.Micrometer) {
	for i, t := range trees {
		for ri := 0; ri < len(t.Roots); ri++ {
			rootID := t.Roots[ri]
			root := t.Nodes[rootID]
			if !outline.ContainsPoint(root.Point) || onBoundary(outline, root.Point) {
				continue
			}

			regrounded := false
			for j, other := range trees {
				if j == i || regrounded {
					continue
				}
				for k, n := range other.Nodes {
					if n.Point.Sub(root.Point).ShorterThan(supportingRadius) {
						t.Nodes[rootID].Parent = LightningNodeID(k)
						other.Nodes[k].Children = append(other.Nodes[k].Children, rootID)
						t.Roots = append(t.Roots[:ri], t.Roots[ri+1:]...)
						ri--
						regrounded = true
						break
					}
				}
			}
		}
	}
}

func onBoundary(outline data.Paths, p data.MicroPoint) bool {
	return nearestBoundaryPoint(outline, p).Sub(p).ShorterThan(10)
}

// LightningLines converts a forest into the open line segments that get
// extruded: one segment per parent-child edge.
func LightningLines(t LightningTree) []data.Path {
	var lines []data.Path
	for _, n := range t.Nodes {
		if n.Parent == noParent {
			continue
		}
		lines = append(lines, data.Path{t.Nodes[n.Parent].Point, n.Point})
	}
	return lines
}
