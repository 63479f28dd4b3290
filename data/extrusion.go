package data

// ExtrusionType classifies a junction of a variable-width ExtrusionLine.
type ExtrusionType int

const (
	ExtrusionOuterWall ExtrusionType = iota
	ExtrusionInnerWall
	ExtrusionSkin
)

// Junction is one point of a variable-width toolpath, with the bead width at
// that point.
type Junction struct {
	Point         MicroPoint
	Width         Micrometer
	ExtrusionType ExtrusionType
}

// ExtrusionLine is an ordered sequence of junctions, produced only by the
// skeletal-trapezoidation wall-generation path (package wall).
type ExtrusionLine struct {
	Junctions  []Junction
	IsClosed   bool
	InsetIndex int
}

// Length returns the polyline length of the extrusion line.
func (l ExtrusionLine) Length() Micrometer {
	var total Micrometer
	for i := 1; i < len(l.Junctions); i++ {
		total += l.Junctions[i].Point.Sub(l.Junctions[i-1].Point).Size()
	}
	return total
}

// ToPath extracts the bare polyline (without width/type information).
func (l ExtrusionLine) ToPath() Path {
	out := make(Path, len(l.Junctions))
	for i, j := range l.Junctions {
		out[i] = j.Point
	}
	return out
}
