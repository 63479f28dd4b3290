package path

import (
	"math"
	"testing"

	"github.com/aligator/goslice/data"
)

func extrudingPath(flow, speed float64) data.GCodePath {
	return data.GCodePath{
		FeatureType:        data.FeatureInnerWall,
		Flow:               flow,
		Speed:              speed,
		SpeedFactor:        1,
		BackPressureFactor: 1,
	}
}

func TestCompensateBackPressureNoOp(t *testing.T) {
	paths := []data.GCodePath{extrudingPath(1, 50), extrudingPath(2, 30)}
	before := make([]float64, len(paths))
	for i, p := range paths {
		before[i] = p.BackPressureFactor
	}

	CompensateBackPressure(paths, 0)

	for i, p := range paths {
		if p.BackPressureFactor != before[i] {
			t.Fatalf("expected f=0 to leave BackPressureFactor untouched, got %v want %v", p.BackPressureFactor, before[i])
		}
	}
}

func TestCompensateBackPressureEqualizesFlow(t *testing.T) {
	paths := []data.GCodePath{extrudingPath(1, 100), extrudingPath(1, 25)}
	CompensateBackPressure(paths, 1)

	var q0, q1 float64
	q0 = paths[0].Flow * paths[0].Speed * paths[0].BackPressureFactor
	q1 = paths[1].Flow * paths[1].Speed * paths[1].BackPressureFactor

	if math.Abs(q0-q1) > 1e-6 {
		t.Fatalf("expected f=1 to equalize flow*speed, got %v vs %v", q0, q1)
	}
}

func TestCompensateBackPressureSkipsTravel(t *testing.T) {
	travel := data.GCodePath{FeatureType: data.FeatureTravel, Flow: 0, Speed: 150, BackPressureFactor: 1}
	paths := []data.GCodePath{extrudingPath(1, 50), travel}
	CompensateBackPressure(paths, 1)

	if paths[1].BackPressureFactor != 1 {
		t.Fatalf("expected travel move's BackPressureFactor to stay untouched, got %v", paths[1].BackPressureFactor)
	}
}

func TestBuildExtruderPlan(t *testing.T) {
	paths := []data.GCodePath{extrudingPath(1, 50), extrudingPath(1, 50)}
	plan := BuildExtruderPlan(2, paths, 0.5)

	if plan.Extruder != 2 {
		t.Fatalf("expected extruder index to be preserved, got %d", plan.Extruder)
	}
	if len(plan.Paths) != 2 {
		t.Fatalf("expected all paths to be carried into the plan, got %d", len(plan.Paths))
	}
}
