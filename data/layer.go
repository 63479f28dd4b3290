package data

// Polyline is an open (non-closed) sequence of points left over from stitching.
type Polyline = Path

// SlicerLayer is the direct output of the mesh/plane intersection (component B),
// per mesh, per Z.
type SlicerLayer struct {
	LayerNr       int
	Z             Micrometer
	Thickness     Micrometer
	ClosedPolygons Paths
	OpenPolylines []Polyline
}

// LayerPart is one outer contour plus the holes it contains, produced by the
// part splitter (component C) and consumed by every later stage.
type LayerPart struct {
	outline Path
	holes   Paths
}

// NewUnknownLayerPart builds a LayerPart without having classified it further
// yet (mirrors the teacher's "unknown" part right after polygon-set union,
// before skin/wall classification has run).
func NewUnknownLayerPart(outline Path, holes Paths) LayerPart {
	return LayerPart{outline: outline, holes: holes}
}

// Outline returns the outer contour.
func (p LayerPart) Outline() Path { return p.outline }

// Holes returns the contained holes.
func (p LayerPart) Holes() Paths { return p.holes }

// AllPaths returns outline+holes as a single PolygonSet, e.g. for passing to
// the boolean/offset backend.
func (p LayerPart) AllPaths() Paths {
	out := make(Paths, 0, 1+len(p.holes))
	out = append(out, p.outline)
	out = append(out, p.holes...)
	return out
}

// BoundingBox returns the AABB of the outer contour.
func (p LayerPart) BoundingBox() AABB {
	return p.outline.BoundingBox()
}

// SkinPart is one connected top/bottom skin region within a SliceLayerPart.
type SkinPart struct {
	Outline    Path
	Insets     []Paths
	InfillArea Paths
}

// SliceLayerPart is the full per-part, per-layer record threaded through
// components D (wall), E (skin), F (infill) and read by H (path planner).
type SliceLayerPart struct {
	Outline         Paths
	Insets          []Paths
	SkinParts       []SkinPart
	InfillArea      Paths
	SparseOutline   []Paths // indexed by density/combine level
	WallToolpaths   []ExtrusionLine
	PerimeterGaps   Paths
	InfillLines     []Path // open line segments from the infill generator (component F)
	Bounds          AABB
}

// NewSliceLayerPart builds a SliceLayerPart from a freshly split LayerPart.
func NewSliceLayerPart(part LayerPart) *SliceLayerPart {
	return &SliceLayerPart{
		Outline: part.AllPaths(),
		Bounds:  part.BoundingBox(),
	}
}
