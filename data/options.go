package data

import "log/slog"

// Options is the full settings tree consumed by every pipeline stage. It is a
// typed Go struct rather than the generic name-keyed string map of spec.md §6:
// the teacher's own `data.Options` (referenced throughout `goslice.go`,
// `cmd/goslice/slicer.go`, `gcode/renderer/layer.go`) is itself a compile-time
// checked struct tree, so this keeps faith with that idiom while still
// representing the same global→extruder-train→mesh-group→mesh hierarchy, one
// level at a time (GoSlice-wide, Print-wide, Printer-wide, Filament/extruder,
// Mesh via data.MeshSettings).
type Options struct {
	GoSlice GoSliceOptions
	Print   PrintOptions
	Printer PrinterOptions
	Filament FilamentOptions
	Logger  *slog.Logger
}

// GoSliceOptions holds process-wide, non-print settings.
type GoSliceOptions struct {
	InputFilePath  string
	OutputFilePath string
}

// PrintOptions holds the per-print geometric/process settings.
type PrintOptions struct {
	LayerThickness        Micrometer
	InitialLayerThickness Micrometer
	InsetCount            int

	InfillOverlapPercent int
	InfillRotationDegree Degree
	InfillPercent        int
	InfillZigZag         bool
	InfillPattern        InfillPattern
	InfillLineDistance   Micrometer

	LayerSpeed       float64
	MoveSpeed        float64
	IntialLayerSpeed float64

	Spiralize bool

	Wall    WallOptions
	Skin    SkinOptions
	Seam    SeamOptions
	Support SupportOptions
}

// InfillPattern selects the tagged-variant infill generator (component F).
type InfillPattern int

const (
	InfillLines InfillPattern = iota
	InfillGrid
	InfillTriangles
	InfillConcentric
	InfillZigZag
	InfillLightning
)

// WallOptions configures the wall generator (component D).
type WallOptions struct {
	LineWidth0     Micrometer // outer wall width
	LineWidthX     Micrometer // inner wall width
	Wall0Inset     Micrometer
	MinLineWidth   Micrometer
	VariableWidth  bool // enable skeletal-trapezoidation path
	OuterWallInsetOffset Micrometer
	MaxBeadCount   int // 0 = unlimited, used by the LimitedBeading decorator
	InitialLayerLineWidthFactor float64 // multiplies line widths on layer 0
}

// SkinOptions configures the skin/infill classifier (component E).
type SkinOptions struct {
	UpSkinCount   int
	DownSkinCount int
	CombineCount  int
}

// SeamType selects the closed-polygon seam-vertex policy (component H).
type SeamType int

const (
	SeamShortest SeamType = iota
	SeamBack
	SeamRandom
	SeamUserSpecified
	SeamSharpestCorner
)

// SeamOptions configures the path orderer's seam policy.
type SeamOptions struct {
	Type            SeamType
	UserSpecifiedPoint MicroPoint
	BackPressureCompensation float64 // f in [0,1]
}

// FanSpeedLUT maps a layer number to a fan speed (0-255).
type FanSpeedLUT struct {
	LayerToSpeedLUT map[int]int
}

// SupportOptions configures the support generator (component G).
type SupportOptions struct {
	Enabled        bool
	ThresholdAngle Degree
	PatternSpacing Millimeter
	TopGapLayers   int
	Gap            Millimeter
	InterfaceLayers int
	XYDistance     Micrometer
	ZDistanceTop   int // in layers
	ZDistanceBottom int // in layers
	JoinDistance   Micrometer
}

// PrinterOptions holds per-printer/per-extruder-train hardware settings.
type PrinterOptions struct {
	ExtrusionWidth Micrometer
	NozzleDiameter Micrometer
}

// FilamentOptions holds per-extruder filament/thermal settings.
type FilamentOptions struct {
	InitialHotEndTemperature     int
	InitialBedTemperature        int
	HotEndTemperature            int
	BedTemperature                int
	InitialTemperatureLayerCount int
	RetractionSpeed              float64
	RetractionLength             float64
	FanSpeed                     FanSpeedLUT
}
