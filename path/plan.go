package path

import (
	"math"

	"github.com/aligator/goslice/data"
)

// CompensateBackPressure adjusts every extruding path's BackPressureFactor in
// place so the nozzle sees a more uniform volumetric flow, per spec.md
// §4.H/§5: let q_i = flow_i*speed_i per path, q̄ their geometric mean, and set
// back_pressure_factor_i = (q̄/q_i)^f. Travel paths are left untouched.
// f=0 is a no-op; f=1 equalises every path's flow·speed product.
func CompensateBackPressure(paths []data.GCodePath, f float64) {
	if f == 0 {
		return
	}

	qs := make([]float64, len(paths))
	var logSum float64
	count := 0
	for i, p := range paths {
		if p.IsTravel() {
			continue
		}
		q := p.Flow * p.Speed
		qs[i] = q
		if q > 0 {
			logSum += math.Log(q)
			count++
		}
	}
	if count == 0 {
		return
	}
	geometricMean := math.Exp(logSum / float64(count))

	for i := range paths {
		if paths[i].IsTravel() || qs[i] <= 0 {
			continue
		}
		paths[i].BackPressureFactor = math.Pow(geometricMean/qs[i], f)
	}
}

// BuildExtruderPlan groups an ordered sequence of GCodePaths under one
// extruder, applying back-pressure compensation before returning it (spec.md
// §4.H "A layer is emitted as a list of ExtruderPlans").
func BuildExtruderPlan(extruder int, paths []data.GCodePath, backPressureFactor float64) data.ExtruderPlan {
	CompensateBackPressure(paths, backPressureFactor)
	return data.ExtruderPlan{Extruder: extruder, Paths: paths}
}
