package infill

import (
	"testing"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

func testSquare() data.Paths {
	return data.Paths{{
		data.NewMicroPoint(0, 0),
		data.NewMicroPoint(10000, 0),
		data.NewMicroPoint(10000, 10000),
		data.NewMicroPoint(0, 10000),
	}}
}

func TestGenerateLinesEndpointsInsideOutline(t *testing.T) {
	outline := testSquare()
	result := Generate(clip.New(), outline, data.InfillLines, 1000, 0, 400, 0)

	if len(result.Lines) == 0 {
		t.Fatalf("expected at least one infill line for a 10mm square")
	}
	for _, line := range result.Lines {
		for _, pt := range line {
			if !outline.ContainsPoint(pt) && !onOutlineBoundary(outline[0], pt) {
				t.Fatalf("expected every line endpoint to lie within the outline, got %v", pt)
			}
		}
	}
}

func onOutlineBoundary(p data.Path, pt data.MicroPoint) bool {
	for _, v := range p {
		if v.Sub(pt).ShorterThanOrEqual(1) {
			return true
		}
	}
	return pt.X() == 0 || pt.Y() == 0 || pt.X() == 10000 || pt.Y() == 10000
}

func TestGenerateEmptyOutline(t *testing.T) {
	result := Generate(clip.New(), nil, data.InfillLines, 1000, 0, 400, 0)
	if len(result.Lines) != 0 || len(result.Polygons) != 0 {
		t.Fatalf("expected empty outline to produce no infill")
	}
}

func TestScanlineIndexHalfOpenInterval(t *testing.T) {
	// Values exactly on a boundary belong to the scanline below (half-open on
	// the left), matching original_source's infill.cpp convention.
	if got := scanlineIndex(0, 1000); got != -1 {
		t.Fatalf("scanlineIndex(0, 1000) = %d, want -1", got)
	}
	if got := scanlineIndex(1, 1000); got != 0 {
		t.Fatalf("scanlineIndex(1, 1000) = %d, want 0", got)
	}
	if got := scanlineIndex(1000, 1000); got != 0 {
		t.Fatalf("scanlineIndex(1000, 1000) = %d, want 0", got)
	}
	if got := scanlineIndex(-1, 1000); got != -1 {
		t.Fatalf("scanlineIndex(-1, 1000) = %d, want -1", got)
	}
}

func TestGenerateConcentricShrinksToEmpty(t *testing.T) {
	result := Generate(clip.New(), testSquare(), data.InfillConcentric, 1000, 0, 400, 0)
	if len(result.Polygons) == 0 {
		t.Fatalf("expected at least one concentric ring for a 10mm square")
	}
}
