package data

// FeatureType tags a GCodePath with the kind of geometry it extrudes, used by
// downstream G-code serializers to pick per-feature speed/fan settings — a
// decision this pipeline does not itself make.
type FeatureType int

const (
	FeatureNone FeatureType = iota
	FeatureOuterWall
	FeatureInnerWall
	FeatureSkin
	FeatureInfill
	FeatureSupport
	FeatureSupportInterface
	FeatureSkirtBrim
	FeatureTravel
)

// GCodePath is the output primitive of the core pipeline: a single feature's
// points plus every parameter needed to compute its externally observable
// volumetric flow.
type GCodePath struct {
	FeatureType       FeatureType
	LineWidth         Micrometer
	LayerThickness    Micrometer
	Flow              float64 // >= 0
	Speed             float64 // mm/s, nominal print speed for this feature
	SpeedFactor       float64 // >= 0
	BackPressureFactor float64 // >= 0, see path.CompensateBackPressure
	Spiralize         bool
	Points            []MicroPoint
	FanSpeed          float64
}

// IsTravel reports whether this path is a non-extruding travel move.
func (g GCodePath) IsTravel() bool {
	return g.FeatureType == FeatureTravel || g.Flow == 0
}

// VolumetricFlow returns the externally observable flow in µm³/s for this path,
// per spec.md §3: flow · line_width · layer_thickness · speed · speed_factor ·
// back_pressure_factor.
func (g GCodePath) VolumetricFlow() float64 {
	return g.Flow * float64(g.LineWidth) * float64(g.LayerThickness) * g.Speed * g.SpeedFactor * g.BackPressureFactor
}

// ExtruderPlan is one extruder's ordered sequence of GCodePaths for a layer.
type ExtruderPlan struct {
	Extruder int
	Paths    []GCodePath
}

// LayerResult is the full per-layer pipeline output: metadata plus one
// ExtruderPlan per extruder used on this layer.
type LayerResult struct {
	LayerNr      int
	Z            Micrometer
	Thickness    Micrometer
	FanSpeed     float64
	ExtruderPlans []ExtruderPlan
}
