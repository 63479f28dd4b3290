package data

// SupportLayer is the per-layer output of the support generator (component G).
type SupportLayer struct {
	SupportAreas Paths
	Roofs        Paths
	AntiOverhang Paths
}

// SupportInfillPart is one connected support region within a layer, carrying
// its own walls and infill area, analogous to a wall-generator SliceLayerPart
// but built from support-specific widths (spec.md §4.G).
type SupportInfillPart struct {
	Outline    Path
	Insets     []Paths
	InfillArea Paths
	Bounds     AABB
}
