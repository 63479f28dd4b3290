// Package reader loads a mesh from an STL file, producing the data.Mesh that
// feeds the slicer (component B).
package reader

import (
	"fmt"

	"github.com/hschendel/stl"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/geoerr"
)

// millimeterScale converts an STL file's millimeter-unit float32 vertices
// into this package's micrometer fixed-point representation.
const millimeterScale = 1000

// Read loads an STL file (ASCII or binary, hschendel/stl handles both
// transparently) and returns it as a data.Mesh with the given per-mesh
// settings and an identity transform, ready for the slicer.
func Read(path string, settings data.MeshSettings) (*data.Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read STL %q: %w", path, err)
	}
	if len(solid.Triangles) == 0 {
		return nil, fmt.Errorf("%q: %w", path, geoerr.ErrUnreadableMesh)
	}

	faces := make([]data.Triangle, len(solid.Triangles))
	for i, tri := range solid.Triangles {
		faces[i] = data.Triangle{
			Vertices: [3]data.MicroVec3{
				vecToMicro(tri.Vertices[0]),
				vecToMicro(tri.Vertices[1]),
				vecToMicro(tri.Vertices[2]),
			},
		}
	}

	return data.NewMesh(faces, data.Identity(), settings), nil
}

func vecToMicro(v stl.Vec3) data.MicroVec3 {
	return data.NewMicroVec3(
		data.Micrometer(float64(v.X)*millimeterScale),
		data.Micrometer(float64(v.Y)*millimeterScale),
		data.Micrometer(float64(v.Z)*millimeterScale),
	)
}
