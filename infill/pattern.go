// Package infill generates the sparse/solid infill patterns of component F:
// lines, grid, triangles, concentric and zig-zag via the rotate-into-
// scanline-frame algorithm, plus Lightning tree infill in lightning.go.
package infill

import (
	"math"
	"sort"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

// Result is the output of Generate: closed fills plus open line segments, per
// spec.md §4.F's contract.
type Result struct {
	Polygons data.Paths
	Lines    []data.Path
}

// Generate dispatches on pattern, applying the configured boundary offset
// (infill_overlap_percent pulls the scan boundary inward/outward) before
// running the pattern-specific generator.
func Generate(c clip.Clipper, outline data.Paths, pattern data.InfillPattern, lineDistance data.Micrometer, fillAngle data.Degree, lineWidth data.Micrometer, overlapPercent float64) Result {
	if len(outline) == 0 || lineDistance == 0 {
		return Result{}
	}

	overlap := data.Micrometer(float64(lineWidth) * overlapPercent / 100)
	working := outline
	if overlap != 0 {
		working = c.Offset(outline, overlap, clip.JoinMiter)
	}
	if len(working) == 0 {
		return Result{}
	}

	switch pattern {
	case data.InfillGrid:
		lines := generateLineInfill(working, lineDistance*2, fillAngle, lineWidth)
		lines = append(lines, generateLineInfill(working, lineDistance*2, fillAngle+90, lineWidth)...)
		return Result{Lines: lines}
	case data.InfillTriangles:
		lines := generateLineInfill(working, lineDistance*3, fillAngle, lineWidth)
		lines = append(lines, generateLineInfill(working, lineDistance*3, fillAngle+60, lineWidth)...)
		lines = append(lines, generateLineInfill(working, lineDistance*3, fillAngle+120, lineWidth)...)
		return Result{Lines: lines}
	case data.InfillConcentric:
		return Result{Polygons: generateConcentric(c, working, lineDistance, lineWidth)}
	case data.InfillZigZag:
		lines := generateZigZagInfill(working, lineDistance, fillAngle, lineWidth, true, true)
		return Result{Lines: lines}
	default: // InfillLines
		return Result{Lines: generateLineInfill(working, lineDistance, fillAngle, lineWidth)}
	}
}

// generateConcentric repeatedly insets outline by lineDistance, emitting each
// intermediate polygon, until the result is empty (spec.md §4.F Concentric).
func generateConcentric(c clip.Clipper, outline data.Paths, lineDistance, lineWidth data.Micrometer) data.Paths {
	step := lineDistance
	if math.Abs(float64(lineWidth-lineDistance)) < 10 {
		step = lineWidth
	}
	if step <= 0 {
		return nil
	}

	var result data.Paths
	current := outline
	for len(current) > 0 {
		result = append(result, current...)
		current = c.Offset(current, -step, clip.JoinMiter)
		current = current.Simplify(-1, -1)
	}
	return result
}

// scanlineIndex implements spec.md §4.F's half-open scanline convention: a
// segment lying exactly on scanline x belongs to interval x-1.
func scanlineIndex(x, lineDistance data.Micrometer) int {
	if x > 0 {
		return int((x - 1) / lineDistance)
	}
	return int((x - lineDistance) / lineDistance)
}

// generateLineInfill implements the Lines pattern: rotate into the scanline
// frame, walk every edge recording exact interpolated crossings per scanline
// (spec.md §4.F), then pair up each scanline's sorted crossings into
// segments, dropping pairs shorter than infill_line_width/5. Ported
// (semantics) from original_source/src/infill.cpp's generateLinearBasedInfill
// and addLineInfill.
func generateLineInfill(outline data.Paths, lineDistance data.Micrometer, fillAngle data.Degree, lineWidth data.Micrometer) []data.Path {
	if lineDistance == 0 {
		return nil
	}
	rotated := rotatePaths(outline, -fillAngle)
	bounds := rotated.BoundingBox()
	scanlineMinIdx := int(bounds.Min.X() / lineDistance)
	lineCount := int((bounds.Max.X()+lineDistance-1)/lineDistance) - scanlineMinIdx

	cutList := make([][]data.Micrometer, maxInt(lineCount, 0))

	for _, poly := range rotated {
		n := len(poly)
		if n < 2 {
			continue
		}
		p0 := poly[n-1]
		for i := 0; i < n; i++ {
			p1 := poly[i]
			if p1.X() == p0.X() {
				p0 = p1
				continue
			}

			idx0 := scanlineIndex(p0.X(), lineDistance)
			idx1 := scanlineIndex(p1.X(), lineDistance)
			direction := 1
			if p0.X() > p1.X() {
				direction = -1
				idx1++
			} else {
				idx0++
			}

			for idx := idx0; idx != idx1+direction; idx += direction {
				x := data.Micrometer(idx) * lineDistance
				y := float64(p1.Y()) + float64(p0.Y()-p1.Y())*float64(x-p1.X())/float64(p0.X()-p1.X())
				cell := idx - scanlineMinIdx
				if cell < 0 || cell >= len(cutList) {
					continue
				}
				cutList[cell] = append(cutList[cell], data.Micrometer(math.Round(y)))
			}
			p0 = p1
		}
	}

	var lines []data.Path
	minShort := lineWidth / 5
	for cell, crossings := range cutList {
		sort.Slice(crossings, func(i, j int) bool { return crossings[i] < crossings[j] })
		x := data.Micrometer(scanlineMinIdx+cell) * lineDistance
		for i := 0; i+1 < len(crossings); i += 2 {
			if crossings[i+1]-crossings[i] < minShort {
				continue
			}
			from := data.NewMicroPoint(x, crossings[i])
			to := data.NewMicroPoint(x, crossings[i+1])
			lines = append(lines, data.Path{from.Rotate(fillAngle), to.Rotate(fillAngle)})
		}
	}
	return lines
}

// generateZigZagInfill produces the same scanline crossings as Lines, then
// connects consecutive crossing pairs across scanlines with a straight
// connector rather than a full boundary walk — a documented simplification of
// spec.md §4.F's "pair-endpoints are connected by walking the polygon
// boundary between the two intersection events". connectedZigzags and
// useEndPieces are honoured at the level of whether connectors are emitted at
// all, not the exact boundary-walk geometry.
func generateZigZagInfill(outline data.Paths, lineDistance data.Micrometer, fillAngle data.Degree, lineWidth data.Micrometer, connectedZigzags, useEndPieces bool) []data.Path {
	rotated := rotatePaths(outline, -fillAngle)
	bounds := rotated.BoundingBox()
	scanlineMinIdx := int(bounds.Min.X() / lineDistance)
	lineCount := int((bounds.Max.X()+lineDistance-1)/lineDistance) - scanlineMinIdx
	if lineCount <= 0 {
		return nil
	}
	cutList := make([][]data.Micrometer, lineCount)

	for _, poly := range rotated {
		n := len(poly)
		if n < 2 {
			continue
		}
		p0 := poly[n-1]
		for i := 0; i < n; i++ {
			p1 := poly[i]
			if p1.X() == p0.X() {
				p0 = p1
				continue
			}
			idx0 := scanlineIndex(p0.X(), lineDistance)
			idx1 := scanlineIndex(p1.X(), lineDistance)
			direction := 1
			if p0.X() > p1.X() {
				direction = -1
				idx1++
			} else {
				idx0++
			}
			for idx := idx0; idx != idx1+direction; idx += direction {
				x := data.Micrometer(idx) * lineDistance
				y := float64(p1.Y()) + float64(p0.Y()-p1.Y())*float64(x-p1.X())/float64(p0.X()-p1.X())
				cell := idx - scanlineMinIdx
				if cell < 0 || cell >= len(cutList) {
					continue
				}
				cutList[cell] = append(cutList[cell], data.Micrometer(math.Round(y)))
			}
			p0 = p1
		}
	}

	var lines []data.Path
	minShort := lineWidth / 5
	var prevTop *data.MicroPoint
	for cell, crossings := range cutList {
		sort.Slice(crossings, func(i, j int) bool { return crossings[i] < crossings[j] })
		x := data.Micrometer(scanlineMinIdx+cell) * lineDistance
		for i := 0; i+1 < len(crossings); i += 2 {
			if crossings[i+1]-crossings[i] < minShort {
				continue
			}
			from := data.NewMicroPoint(x, crossings[i])
			to := data.NewMicroPoint(x, crossings[i+1])
			lines = append(lines, data.Path{from.Rotate(fillAngle), to.Rotate(fillAngle)})

			if connectedZigzags && prevTop != nil {
				lines = append(lines, data.Path{prevTop.Rotate(fillAngle), from.Rotate(fillAngle)})
			}
			top := to
			prevTop = &top
		}
		if !useEndPieces {
			prevTop = nil
		}
	}
	return lines
}

func rotatePaths(ps data.Paths, angle data.Degree) data.Paths {
	out := make(data.Paths, len(ps))
	for i, p := range ps {
		rp := make(data.Path, len(p))
		for j, pt := range p {
			rp[j] = pt.Rotate(angle)
		}
		out[i] = rp
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
