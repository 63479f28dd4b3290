// Command goslice slices an STL file into an ordered sequence of extrusion
// paths per layer, driving the pipeline package end to end.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/geoerr"
	"github.com/aligator/goslice/pipeline"
	"github.com/aligator/goslice/reader"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "goslice:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		layerThickness = pflag.Float64("layer-thickness", 0.2, "layer thickness in mm")
		extrusionWidth = pflag.Float64("extrusion-width", 0.4, "nozzle extrusion width in mm")
		insetCount     = pflag.Int("insets", 2, "number of wall insets")
		infillPercent  = pflag.Int("infill-percent", 20, "sparse infill density, 0-100")
		infillPattern  = pflag.String("infill-pattern", "lines", "infill pattern: lines|grid|triangles|concentric|zigzag|lightning")
		supportEnabled = pflag.Bool("support", false, "generate support structures")
		layerSpeed     = pflag.Float64("speed", 50, "print speed in mm/s")
		verbose        = pflag.Bool("verbose", false, "enable debug logging")
	)
	pflag.Parse()

	if pflag.NArg() != 1 {
		return fmt.Errorf("usage: goslice [flags] <input.stl>")
	}
	inputPath := pflag.Arg(0)

	pattern, err := parseInfillPattern(*infillPattern)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := &data.Options{
		GoSlice: data.GoSliceOptions{
			InputFilePath:  inputPath,
			OutputFilePath: inputPath + ".gcode",
		},
		Print: data.PrintOptions{
			LayerThickness: data.Millimeter(*layerThickness).ToMicrometer(),
			InsetCount:     *insetCount,
			InfillPercent:  *infillPercent,
			InfillPattern:  pattern,
			LayerSpeed:     *layerSpeed,
			Wall: data.WallOptions{
				LineWidth0:   data.Millimeter(*extrusionWidth).ToMicrometer(),
				LineWidthX:   data.Millimeter(*extrusionWidth).ToMicrometer(),
				MinLineWidth: data.Millimeter(*extrusionWidth / 2).ToMicrometer(),
			},
			Skin: data.SkinOptions{
				UpSkinCount:   3,
				DownSkinCount: 3,
			},
			Support: data.SupportOptions{
				Enabled:        *supportEnabled,
				ThresholdAngle: 45,
				XYDistance:     data.Millimeter(0.7).ToMicrometer(),
				ZDistanceBottom: 1,
				TopGapLayers:   1,
				InterfaceLayers: 2,
				JoinDistance:   data.Millimeter(2).ToMicrometer(),
			},
		},
		Printer: data.PrinterOptions{
			ExtrusionWidth: data.Millimeter(*extrusionWidth).ToMicrometer(),
		},
		Logger: logger,
	}

	mesh, err := reader.Read(inputPath, data.MeshSettings{})
	if err != nil {
		return err
	}

	zHeights := buildZHeights(mesh, opts.Print.LayerThickness)

	ctx := context.Background()
	driver := pipeline.New(opts)
	layers, err := driver.Run(ctx, mesh, zHeights)
	if err != nil {
		return err
	}

	logger.Info("slicing complete", "layers", len(layers), "output", opts.GoSlice.OutputFilePath)
	return nil
}

func buildZHeights(mesh *data.Mesh, thickness data.Micrometer) []data.Micrometer {
	min, max := mesh.Min().Z(), mesh.Max().Z()
	var heights []data.Micrometer
	for z := min + thickness/2; z <= max; z += thickness {
		heights = append(heights, z)
	}
	return heights
}

func parseInfillPattern(s string) (data.InfillPattern, error) {
	switch s {
	case "lines":
		return data.InfillLines, nil
	case "grid":
		return data.InfillGrid, nil
	case "triangles":
		return data.InfillTriangles, nil
	case "concentric":
		return data.InfillConcentric, nil
	case "zigzag":
		return data.InfillZigZag, nil
	case "lightning":
		return data.InfillLightning, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, geoerr.ErrConfigRange)
	}
}
