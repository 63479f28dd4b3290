package data

// Triangle is one face of a mesh, with vertices in model space (before the
// mesh's affine transform). TouchingFace holds the index of the face sharing
// each edge (edge i runs from Vertices[i] to Vertices[(i+1)%3]), or -1 if the
// mesh is non-manifold at that edge.
type Triangle struct {
	Vertices    [3]MicroVec3
	TouchingFace [3]int
}

// TouchingFaceIndices returns the indices of the (up to three) faces sharing an
// edge with this one. Non-existent neighbours are omitted.
func (t Triangle) TouchingFaceIndices() []int {
	var out []int
	for _, idx := range t.TouchingFace {
		if idx > -1 {
			out = append(out, idx)
		}
	}
	return out
}

// MeshSettings carries the per-mesh role flags and extruder assignment of
// spec.md §3.
type MeshSettings struct {
	ExtruderIndex    int
	InfillMesh       bool
	AntiOverhangMesh bool
	SupportMesh      bool
	CuttingMesh      bool
	Mold             bool
}

// Mesh is one triangular-mesh solid: a transformed list of triangles plus its
// settings. Its lifetime spans one slicing run.
type Mesh struct {
	Faces     []Triangle
	Transform Matrix
	Settings  MeshSettings
}

// NewMesh builds a Mesh, pre-computing touching-face adjacency by shared-edge
// vertex matching (within a small epsilon, since STL vertices are often
// independently duplicated per triangle).
func NewMesh(faces []Triangle, transform Matrix, settings MeshSettings) *Mesh {
	m := &Mesh{Faces: faces, Transform: transform, Settings: settings}
	m.computeAdjacency()
	return m
}

const adjacencyEpsilon = Micrometer(10)

func (m *Mesh) computeAdjacency() {
	type edgeKey struct{ a, b MicroVec3 }
	quantize := func(v MicroVec3) MicroVec3 {
		q := func(c Micrometer) Micrometer { return (c / adjacencyEpsilon) * adjacencyEpsilon }
		return MicroVec3{q(v.x), q(v.y), q(v.z)}
	}
	edges := map[edgeKey][]struct {
		face, edge int
	}{}
	for fi := range m.Faces {
		for e := 0; e < 3; e++ {
			a := quantize(m.Faces[fi].Vertices[e])
			b := quantize(m.Faces[fi].Vertices[(e+1)%3])
			// A neighbouring face traverses the shared edge in the opposite
			// winding direction, so it is keyed and looked up reversed below.
			edges[edgeKey{a, b}] = append(edges[edgeKey{a, b}], struct{ face, edge int }{fi, e})
		}
		m.Faces[fi].TouchingFace = [3]int{-1, -1, -1}
	}
	for fi := range m.Faces {
		for e := 0; e < 3; e++ {
			a := quantize(m.Faces[fi].Vertices[e])
			b := quantize(m.Faces[fi].Vertices[(e+1)%3])
			for _, cand := range edges[edgeKey{b, a}] {
				if cand.face != fi {
					m.Faces[fi].TouchingFace[e] = cand.face
					break
				}
			}
		}
	}
}

// FaceCount returns the number of triangles in the mesh.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// Min returns the component-wise minimum of all (transformed) vertices.
func (m *Mesh) Min() MicroVec3 { return m.bounds(true) }

// Max returns the component-wise maximum of all (transformed) vertices.
func (m *Mesh) Max() MicroVec3 { return m.bounds(false) }

func (m *Mesh) bounds(wantMin bool) MicroVec3 {
	if len(m.Faces) == 0 {
		return MicroVec3{}
	}
	first := m.Transform.Apply(m.Faces[0].Vertices[0])
	result := first
	for _, f := range m.Faces {
		for _, v := range f.Vertices {
			tv := m.Transform.Apply(v)
			if wantMin {
				result = MicroVec3{minMicro(result.x, tv.x), minMicro(result.y, tv.y), minMicro(result.z, tv.z)}
			} else {
				result = MicroVec3{maxMicro(result.x, tv.x), maxMicro(result.y, tv.y), maxMicro(result.z, tv.z)}
			}
		}
	}
	return result
}

// TransformedVertex returns the i-th vertex of face f after the mesh transform.
func (m *Mesh) TransformedVertex(f Triangle, i int) MicroVec3 {
	return m.Transform.Apply(f.Vertices[i])
}
