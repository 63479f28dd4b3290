package wall

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

// Generate fills in part.Insets (and, when the variable-width path is active
// and the tube shape has positive area, part.WallToolpaths) for one
// SliceLayerPart, per spec.md §4.D.
func Generate(c clip.Clipper, part *data.SliceLayerPart, opts data.WallOptions, wallCount int, firstLayer bool, spiralizeExtra int) {
	part.Insets = GenerateClassical(c, part.Outline, opts, wallCount, firstLayer, spiralizeExtra)

	if !opts.VariableWidth || wallCount <= 0 {
		return
	}

	totalWidth := opts.LineWidth0 + opts.LineWidthX*data.Micrometer(wallCount-1)
	band := TubeShape(c, part.Outline, totalWidth)
	if band.AbsArea() <= 0 {
		return
	}

	strategy := buildStrategy(opts)
	spacing := opts.MinLineWidth
	if spacing <= 0 {
		spacing = data.Micrometer(100)
	}

	var lines []data.ExtrusionLine
	for _, loop := range band {
		if len(loop) < 3 {
			continue
		}
		g := BuildGraph(loop, part.Outline, spacing, totalWidth)
		if len(g.Nodes) == 0 {
			continue
		}
		counts := PropagateBeadCounts(g, strategy)
		lines = append(lines, GenerateExtrusionLines(g, counts, strategy)...)
	}
	part.WallToolpaths = lines
}

// buildStrategy assembles the configured BeadingStrategy, applying the
// OuterWallInset decorator whenever an outer-wall offset is configured.
func buildStrategy(opts data.WallOptions) BeadingStrategy {
	var strategy BeadingStrategy = NewDistributed(opts.LineWidthX, opts.MinLineWidth)
	if opts.OuterWallInsetOffset != 0 {
		strategy = OuterWallInset{Parent: strategy, Offset: opts.OuterWallInsetOffset}
	}
	if opts.MaxBeadCount > 0 {
		strategy = LimitedBeading{Parent: strategy, MaxCount: opts.MaxBeadCount}
	}
	return WideningBeading{Parent: strategy}
}
