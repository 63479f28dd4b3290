package slicer

import (
	"context"
	"math"
	"testing"

	"github.com/aligator/goslice/data"
)

// cubeMesh builds a 10mm axis-aligned cube (vertices in micrometers) as 12
// triangles, wound so each face's outward normal points away from the cube
// center.
func cubeMesh() *data.Mesh {
	const s = data.Micrometer(10000)
	v := func(x, y, z data.Micrometer) data.MicroVec3 { return data.NewMicroVec3(x, y, z) }

	corners := [8]data.MicroVec3{
		v(0, 0, 0), v(s, 0, 0), v(s, s, 0), v(0, s, 0),
		v(0, 0, s), v(s, 0, s), v(s, s, s), v(0, s, s),
	}

	quad := func(a, b, c, d int) [2]data.Triangle {
		return [2]data.Triangle{
			{Vertices: [3]data.MicroVec3{corners[a], corners[b], corners[c]}},
			{Vertices: [3]data.MicroVec3{corners[a], corners[c], corners[d]}},
		}
	}

	var faces []data.Triangle
	for _, q := range [][4]int{
		{0, 3, 2, 1}, // bottom, normal -Z
		{4, 5, 6, 7}, // top, normal +Z
		{0, 1, 5, 4}, // front, normal -Y
		{2, 3, 7, 6}, // back, normal +Y
		{1, 2, 6, 5}, // right, normal +X
		{3, 0, 4, 7}, // left, normal -X
	} {
		tris := quad(q[0], q[1], q[2], q[3])
		faces = append(faces, tris[0], tris[1])
	}

	return data.NewMesh(faces, data.Identity(), data.MeshSettings{})
}

func TestSliceCubeMidHeightProducesSquare(t *testing.T) {
	mesh := cubeMesh()
	layers, err := Slice(context.Background(), mesh, []data.Micrometer{5000})
	if err != nil {
		t.Fatalf("Slice returned error: %v", err)
	}
	if len(layers) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(layers))
	}
	if len(layers[0].ClosedPolygons) == 0 {
		t.Fatalf("expected at least one closed polygon from slicing a cube through its middle")
	}

	var total float64
	for _, p := range layers[0].ClosedPolygons {
		total += math.Abs(p.Area())
	}
	want := 10000.0 * 10000.0
	if math.Abs(total-want) > want*0.01 {
		t.Fatalf("expected cross-section area close to %v, got %v", want, total)
	}
}

func TestSliceAboveMeshProducesNoPolygons(t *testing.T) {
	mesh := cubeMesh()
	layers, err := Slice(context.Background(), mesh, []data.Micrometer{50000})
	if err != nil {
		t.Fatalf("Slice returned error: %v", err)
	}
	if len(layers[0].ClosedPolygons) != 0 {
		t.Fatalf("expected no polygons above the mesh's bounding box, got %d", len(layers[0].ClosedPolygons))
	}
}

func TestSliceRespectsCancellation(t *testing.T) {
	mesh := cubeMesh()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Slice(ctx, mesh, []data.Micrometer{5000}); err == nil {
		t.Fatalf("expected Slice to return an error for an already-cancelled context")
	}
}
