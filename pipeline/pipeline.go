// Package pipeline drives the whole slicing pipeline end to end (component
// I): slice, partition, support, wall, skin, infill and path-order, one
// explicit PipelineContext instead of the package-level singletons the
// teacher's driver used.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/infill"
	"github.com/aligator/goslice/part"
	"github.com/aligator/goslice/path"
	"github.com/aligator/goslice/skin"
	"github.com/aligator/goslice/slicer"
	"github.com/aligator/goslice/support"
	"github.com/aligator/goslice/wall"
)

// PipelineContext replaces the teacher's GoSlice struct of package-level
// handler interfaces with one explicit, passed-by-reference driver (spec.md
// §9: "Global singletons ... replaced by an explicit PipelineContext").
// Grounded on the teacher's GoSlice/Process() in goslice.go, generalized from
// its sequential modifier list to explicit phase barriers over a worker pool.
type PipelineContext struct {
	Options *data.Options
	Clip    clip.Clipper
	Logger  *slog.Logger

	workers int
}

// New builds a PipelineContext sized to the host's CPU count, matching the
// worker-pool idiom this corpus uses for other render/compute loops.
func New(opts *data.Options) *PipelineContext {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PipelineContext{
		Options: opts,
		Clip:    clip.New(),
		Logger:  logger,
		workers: runtime.NumCPU(),
	}
}

// Layer is the full per-layer working state threaded through every phase.
type Layer struct {
	SlicerLayer data.SlicerLayer
	Parts       []*data.SliceLayerPart
	Support     []data.SupportInfillPart
	SupportRoof []data.SupportInfillPart
	Result      data.LayerResult
}

// Run executes the full pipeline for one mesh: slice, partition, then D, E, F
// in sequence across the whole layer stack, with support generated after
// slicing and before the wall phase, per spec.md §5's dependency note.
func (p *PipelineContext) Run(ctx context.Context, mesh *data.Mesh, zHeights []data.Micrometer) ([]*Layer, error) {
	slicerLayers, err := slicer.Slice(ctx, mesh, zHeights)
	if err != nil {
		return nil, fmt.Errorf("slice: %w", err)
	}
	p.Logger.Info("sliced mesh", "layers", len(slicerLayers))

	layers := make([]*Layer, len(slicerLayers))
	if err := p.forEachLayer(ctx, len(layers), func(i int) error {
		parts, _ := part.Split(p.Clip, slicerLayers[i])
		layer := &Layer{SlicerLayer: slicerLayers[i]}
		layer.Parts = make([]*data.SliceLayerPart, len(parts))
		for j, lp := range parts {
			layer.Parts[j] = data.NewSliceLayerPart(lp)
		}
		layers[i] = layer
		return nil
	}); err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	p.Logger.Info("partitioned layers")

	if p.Options.Print.Support.Enabled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.generateSupport(layers)
		p.Logger.Info("support generated")
	}

	if err := p.forEachLayer(ctx, len(layers), func(i int) error {
		firstLayer := i == 0
		for _, pt := range layers[i].Parts {
			wall.Generate(p.Clip, pt, p.Options.Print.Wall, p.Options.Print.InsetCount, firstLayer, 0)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("wall phase: %w", err)
	}
	p.Logger.Info("walls generated")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lineWidth := p.Options.Printer.ExtrusionWidth
	if err := p.forEachLayer(ctx, len(layers), func(i int) error {
		up, down := p.Options.Print.Skin.UpSkinCount, p.Options.Print.Skin.DownSkinCount
		for _, pt := range layers[i].Parts {
			above := neighbourParts(layers, i+1, i+up)
			below := neighbourParts(layers, i-down, i-1)
			skin.Classify(p.Clip, pt, above, below, lineWidth)
			p.generatePerimeterGaps(pt, above, below)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("skin phase: %w", err)
	}
	p.Logger.Info("skin classified")

	combineCount := p.Options.Print.Skin.CombineCount
	if combineCount > 1 {
		for i := len(layers) - 1; i >= 0; i-- {
			for _, pt := range layers[i].Parts {
				below := neighbourParts(layers, i-combineCount, i-1)
				skin.CombineLayers(p.Clip, pt, below, combineCount)
			}
		}
	}

	if err := p.forEachLayer(ctx, len(layers), func(i int) error {
		for _, pt := range layers[i].Parts {
			p.generateInfillForPart(pt)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("infill phase: %w", err)
	}
	p.Logger.Info("infill generated")

	if p.Options.Print.InfillPattern == data.InfillLightning {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.generateLightningInfill(layers)
		p.Logger.Info("lightning infill generated")
	}

	if err := p.forEachLayer(ctx, len(layers), func(i int) error {
		layers[i].Result = p.orderLayer(i, layers[i])
		return nil
	}); err != nil {
		return nil, fmt.Errorf("path-order phase: %w", err)
	}
	p.Logger.Info("paths ordered")

	return layers, nil
}

// orderLayer implements component H for one layer: order every part's wall
// insets with the configured seam policy, inserting an explicit travel move
// between consecutive extruding paths (routed around the printed-region hull
// whenever a direct line isn't known to be safe), then wraps the result in a
// single extruder plan with back-pressure compensation applied (spec.md §4.H).
func (p *PipelineContext) orderLayer(layerNr int, l *Layer) data.LayerResult {
	speed := p.Options.Print.LayerSpeed
	moveSpeed := p.Options.Print.MoveSpeed
	lineWidth := p.Options.Printer.ExtrusionWidth
	thickness := p.Options.Print.LayerThickness

	var allOutlines data.Paths
	for _, pt := range l.Parts {
		allOutlines = append(allOutlines, pt.Outline...)
	}
	hull := path.PrintedHull(allOutlines)

	var gcodePaths []data.GCodePath
	start := data.MicroPoint{}
	haveStart := false
	travelTo := func(to data.MicroPoint) {
		if !haveStart {
			haveStart = true
			return
		}
		if start == to {
			return
		}
		points := []data.MicroPoint{start, to}
		if !path.DirectTravelLikelySafe(hull, start, to) {
			if detour := path.RouteAroundHull(hull, start, to); len(detour) > 0 {
				points = append([]data.MicroPoint{start}, append(detour, to)...)
			}
		}
		gcodePaths = append(gcodePaths, data.GCodePath{FeatureType: data.FeatureTravel, Speed: moveSpeed, Points: points})
	}

	for _, pt := range l.Parts {
		for insetIdx, inset := range pt.Insets {
			ordered := path.OrderPolygons(inset, start, p.Options.Print.Seam)
			feature := data.FeatureInnerWall
			if insetIdx == 0 {
				feature = data.FeatureOuterWall
			}
			for _, poly := range ordered {
				if len(poly) > 0 {
					travelTo(poly[0])
				}
				gcodePaths = append(gcodePaths, pathToGCodePath(poly, feature, lineWidth, thickness, speed, true))
				if len(poly) > 0 {
					start = poly[0]
				}
			}
		}

		orderedInfill := path.OrderLines(pt.InfillLines, start)
		for _, line := range orderedInfill {
			if len(line) > 0 {
				travelTo(line[0])
			}
			gcodePaths = append(gcodePaths, pathToGCodePath(line, data.FeatureInfill, lineWidth, thickness, speed, false))
			if len(line) > 0 {
				start = line[len(line)-1]
			}
		}
	}

	plan := path.BuildExtruderPlan(0, gcodePaths, p.Options.Print.Seam.BackPressureCompensation)
	return data.LayerResult{
		LayerNr:       layerNr,
		Z:             l.SlicerLayer.Z,
		Thickness:     thickness,
		ExtruderPlans: []data.ExtruderPlan{plan},
	}
}

func pathToGCodePath(p data.Path, feature data.FeatureType, lineWidth, thickness data.Micrometer, speed float64, closed bool) data.GCodePath {
	points := make([]data.MicroPoint, 0, len(p)+1)
	points = append(points, p...)
	if closed && len(p) > 0 {
		points = append(points, p[0])
	}
	return data.GCodePath{
		FeatureType:        feature,
		LineWidth:          lineWidth,
		LayerThickness:     thickness,
		Flow:               1,
		Speed:              speed,
		SpeedFactor:        1,
		BackPressureFactor: 1,
		Points:             points,
	}
}

func neighbourParts(layers []*Layer, from, to int) []*data.SliceLayerPart {
	var out []*data.SliceLayerPart
	for i := from; i <= to; i++ {
		if i < 0 || i >= len(layers) {
			continue
		}
		out = append(out, layers[i].Parts...)
	}
	return out
}

// generatePerimeterGaps fills in pt.PerimeterGaps for one part, applying the
// interior-layer xor refinement skin.PerimeterGaps's doc comment asks callers
// to perform: a layer with neighbours on both sides only keeps gap area that
// also falls in the xor of those neighbours' outlines, discarding area that
// isn't a true gap between this layer's own walls.
func (p *PipelineContext) generatePerimeterGaps(pt *data.SliceLayerPart, above, below []*data.SliceLayerPart) {
	gaps := skin.PerimeterGaps(p.Clip, pt)
	if len(above) == 0 || len(below) == 0 {
		pt.PerimeterGaps = gaps
		return
	}

	xor, ok := p.Clip.Xor(unionOutlines(p.Clip, above), unionOutlines(p.Clip, below))
	if !ok {
		pt.PerimeterGaps = gaps
		return
	}
	refined, ok := p.Clip.Intersection(gaps, xor)
	if !ok {
		pt.PerimeterGaps = gaps
		return
	}
	pt.PerimeterGaps = refined.RemoveSmallAreas(1000)
}

func unionOutlines(c clip.Clipper, parts []*data.SliceLayerPart) data.Paths {
	var union data.Paths
	for _, pt := range parts {
		if pt == nil {
			continue
		}
		if merged, ok := c.Union(union, pt.Outline); ok {
			union = merged
		}
	}
	return union
}

func (p *PipelineContext) generateSupport(layers []*Layer) {
	outlines := make([]data.Paths, len(layers))
	for i, l := range layers {
		for _, pt := range l.Parts {
			merged, ok := p.Clip.Union(outlines[i], pt.Outline)
			if ok {
				outlines[i] = merged
			}
		}
	}

	areas := support.GenerateAreas(p.Clip, outlines, p.Options.Print.Support)
	roofs, body := support.SplitRoofs(p.Clip, outlines, areas, p.Options.Print.Support.InterfaceLayers)

	supportWallOpts := data.WallOptions{
		LineWidth0:   p.Options.Printer.ExtrusionWidth,
		LineWidthX:   p.Options.Printer.ExtrusionWidth,
		MinLineWidth: p.Options.Printer.ExtrusionWidth / 2,
	}

	for i := range layers {
		layers[i].Support = support.BuildParts(p.Clip, body[i], supportWallOpts)
		layers[i].SupportRoof = support.BuildParts(p.Clip, roofs[i], supportWallOpts)
	}
}

// generateInfillForPart runs the configured infill pattern over a part's
// sparse area and every skin part's infill area, appending the resulting line
// segments to pt.InfillLines for component H to order and emit. Lightning
// infill is excluded here and instead handled by generateLightningInfill
// after this phase, since it needs cross-layer tree state threaded across the
// whole layer stack, not a single part in isolation.
func (p *PipelineContext) generateInfillForPart(pt *data.SliceLayerPart) {
	opts := p.Options.Print
	lineWidth := p.Options.Printer.ExtrusionWidth
	if opts.InfillPattern == data.InfillLightning {
		return
	}

	if len(pt.SparseOutline) > 0 {
		result := infill.Generate(p.Clip, pt.SparseOutline[0], opts.InfillPattern, opts.InfillLineDistance, opts.InfillRotationDegree, lineWidth, float64(opts.InfillOverlapPercent))
		pt.InfillLines = append(pt.InfillLines, result.Lines...)
	}
	for _, skinPart := range pt.SkinParts {
		result := infill.Generate(p.Clip, skinPart.InfillArea, data.InfillLines, lineWidth, opts.InfillRotationDegree, lineWidth, float64(opts.InfillOverlapPercent))
		pt.InfillLines = append(pt.InfillLines, result.Lines...)
	}
}

// generateLightningInfill builds one lightning tree per part, processing
// layers top-down so each part's tree can realign onto and grow from the tree
// of the matching part directly above it (spec.md §4.F points 1-4). This
// walks the layer stack sequentially rather than through forEachLayer's
// worker pool, since every layer's trees depend on the layer above's.
func (p *PipelineContext) generateLightningInfill(layers []*Layer) {
	opts := p.Options.Print
	lineWidth := p.Options.Printer.ExtrusionWidth

	supportingRadius := opts.InfillLineDistance
	if supportingRadius <= 0 {
		supportingRadius = lineWidth * 2
	}
	overhangAngle := float64(opts.Support.ThresholdAngle)

	trees := make([][]infill.LightningTree, len(layers))
	for i := range layers {
		trees[i] = make([]infill.LightningTree, len(layers[i].Parts))
	}

	for i := len(layers) - 1; i >= 0; i-- {
		for j, pt := range layers[i].Parts {
			if len(pt.SparseOutline) == 0 || len(pt.SparseOutline[0]) == 0 {
				continue
			}
			outline := pt.SparseOutline[0]

			var tree infill.LightningTree
			if aboveIdx, ok := matchAbovePart(pt, layers, i); ok {
				prev := trees[i+1][aboveIdx]
				tree = infill.PropagateTree(prev, outline, lineWidth, lineWidth*4)
				overhang := infill.LightningOverhang(p.Clip, outline, layers[i+1].Parts[aboveIdx].Outline, supportingRadius, overhangAngle)
				infill.GroundUnsupported(&tree, overhang, outline, supportingRadius)
			} else {
				infill.GroundUnsupported(&tree, outline, outline, supportingRadius)
			}
			trees[i][j] = tree
		}

		regroundLightningLayer(trees[i], layers[i].Parts, supportingRadius)

		for j, pt := range layers[i].Parts {
			if len(trees[i][j].Nodes) == 0 {
				continue
			}
			pt.InfillLines = append(pt.InfillLines, infill.LightningLines(trees[i][j])...)
		}
	}
}

// matchAbovePart finds the part directly above pt (by bounding-box overlap,
// the same cross-layer correspondence skin.Classify uses) whose tree pt's
// tree should be propagated from.
func matchAbovePart(pt *data.SliceLayerPart, layers []*Layer, i int) (int, bool) {
	if i+1 >= len(layers) {
		return 0, false
	}
	for idx, a := range layers[i+1].Parts {
		if a != nil && a.Bounds.Hit(pt.Bounds) {
			return idx, true
		}
	}
	return 0, false
}

// regroundLightningLayer reattaches any root that drifted into a
// neighbouring part's territory after PropagateTree's realignment, per
// spec.md §4.F point 4.
func regroundLightningLayer(trees []infill.LightningTree, parts []*data.SliceLayerPart, supportingRadius data.Micrometer) {
	if len(trees) < 2 {
		return
	}
	refs := make([]*infill.LightningTree, len(trees))
	var outline data.Paths
	for i := range trees {
		refs[i] = &trees[i]
		if parts[i] != nil {
			outline = append(outline, parts[i].Outline...)
		}
	}
	infill.RegroundDrifted(refs, outline, supportingRadius)
}

// forEachLayer runs fn(i) for every layer index over a bounded worker pool
// and returns the first error in layer order. Once ctx is cancelled, layers
// not yet started are skipped and record ctx's error; an error from fn does
// not stop the other layers (spec.md §5: phase barriers, cooperative
// cancellation between layers).
func (p *PipelineContext) forEachLayer(ctx context.Context, n int, fn func(i int) error) error {
	workers := p.workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if n == 0 {
		return nil
	}

	indices := make(chan int, n)
	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				select {
				case <-ctx.Done():
					errs[i] = ctx.Err()
					continue
				default:
				}
				if err := fn(i); err != nil {
					errs[i] = err
				}
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
