package wall

import (
	"testing"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

func square(x0, y0, x1, y1 data.Micrometer) data.Path {
	return data.Path{
		data.NewMicroPoint(x0, y0),
		data.NewMicroPoint(x1, y0),
		data.NewMicroPoint(x1, y1),
		data.NewMicroPoint(x0, y1),
	}
}

func TestBuildGraphThinWedgeProducesASingleLoopOfNodes(t *testing.T) {
	outline := square(0, 0, 2000, 20000)
	g := BuildGraph(outline, data.Paths{outline}, 1000, 5000)

	if len(g.Nodes) == 0 {
		t.Fatalf("expected BuildGraph to sample at least one node around the loop")
	}
	if len(g.Edges) != len(g.Nodes) {
		t.Fatalf("expected one half-edge per node, got %d edges for %d nodes", len(g.Edges), len(g.Nodes))
	}
	for i, e := range g.Edges {
		// Twin self-references for this simplified single-loop graph (no
		// paired opposite-direction edge, unlike a true Voronoi dual).
		if e.Twin != EdgeID(i) {
			t.Fatalf("expected edge %d's Twin to self-reference, got %d", i, e.Twin)
		}
	}
	for _, n := range g.Nodes {
		if n.DistanceToBoundary <= 0 || n.DistanceToBoundary > 5000 {
			t.Fatalf("expected every node's distance to boundary to be clamped within (0, maxThickness], got %d", n.DistanceToBoundary)
		}
	}
}

func TestBuildGraphDegenerateOutlineProducesNoNodes(t *testing.T) {
	g := BuildGraph(data.Path{data.NewMicroPoint(0, 0), data.NewMicroPoint(1000, 0)}, nil, 1000, 5000)
	if len(g.Nodes) != 0 {
		t.Fatalf("expected a <3-point outline to produce no nodes, got %d", len(g.Nodes))
	}
}

func TestPropagateBeadCountsSmoothsAThicknessStep(t *testing.T) {
	strategy := NewDistributed(400, 200)
	g := &Graph{
		Nodes: []Node{
			{DistanceToBoundary: 200},
			{DistanceToBoundary: 200},
			{DistanceToBoundary: 200},
			{DistanceToBoundary: 1000},
			{DistanceToBoundary: 1000},
			{DistanceToBoundary: 1000},
		},
	}

	counts := PropagateBeadCounts(g, strategy)

	want := []int{4, 3, 4, 5, 5, 5}
	if len(counts) != len(want) {
		t.Fatalf("expected %d counts, got %d (%v)", len(want), len(counts), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("expected counts %v after smoothing a thickness step, got %v", want, counts)
		}
	}
	for i := 1; i < len(counts); i++ {
		diff := counts[i] - counts[i-1]
		if diff > 1 || diff < -1 {
			t.Fatalf("expected adjacent bead counts to never differ by more than one after smoothing, got %d -> %d", counts[i-1], counts[i])
		}
	}
}

func TestGenerateExtrusionLinesUniformCountProducesOneRunPerBead(t *testing.T) {
	strategy := NewDistributed(400, 200)
	const count = 2
	g := &Graph{
		Nodes: []Node{
			{Point: data.NewMicroPoint(0, 0), DistanceToBoundary: 500},
			{Point: data.NewMicroPoint(1000, 0), DistanceToBoundary: 500},
			{Point: data.NewMicroPoint(2000, 0), DistanceToBoundary: 500},
			{Point: data.NewMicroPoint(3000, 0), DistanceToBoundary: 500},
		},
	}
	counts := []int{count, count, count, count}

	lines := GenerateExtrusionLines(g, counts, strategy)

	if len(lines) != count {
		t.Fatalf("expected one ExtrusionLine per bead index (%d), got %d", count, len(lines))
	}
	for _, line := range lines {
		if len(line.Junctions) != len(g.Nodes) {
			t.Fatalf("expected a uniform bead count to produce a single run covering every node, got %d junctions for %d nodes", len(line.Junctions), len(g.Nodes))
		}
	}
}

func TestGenerateExtrusionLinesEmptyGraphProducesNoLines(t *testing.T) {
	if lines := GenerateExtrusionLines(&Graph{}, nil, NewDistributed(400, 200)); lines != nil {
		t.Fatalf("expected an empty graph to produce no extrusion lines, got %v", lines)
	}
}

func TestTubeShapeDegenerateOutlineProducesNoBand(t *testing.T) {
	c := clip.New()
	if band := TubeShape(c, nil, 400); len(band) != 0 {
		t.Fatalf("expected an empty outline to produce an empty tube shape, got %v", band)
	}
}

func TestTubeShapeWidensWithTotalWidth(t *testing.T) {
	c := clip.New()
	outline := data.Paths{square(0, 0, 10000, 10000)}

	narrow := TubeShape(c, outline, 500)
	wide := TubeShape(c, outline, 3000)

	if narrow.AbsArea() <= 0 {
		t.Fatalf("expected a positive-width band to have positive area")
	}
	if wide.AbsArea() <= narrow.AbsArea() {
		t.Fatalf("expected a wider tube shape to cover more area than a narrower one, got narrow=%v wide=%v", narrow.AbsArea(), wide.AbsArea())
	}
}
