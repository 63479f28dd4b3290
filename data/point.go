package data

import "math"

// MicroPoint is a 2D point in micrometer fixed-point coordinates.
type MicroPoint struct {
	x, y Micrometer
}

// NewMicroPoint creates a MicroPoint from its components.
func NewMicroPoint(x, y Micrometer) MicroPoint {
	return MicroPoint{x: x, y: y}
}

func (p MicroPoint) X() Micrometer { return p.x }
func (p MicroPoint) Y() Micrometer { return p.y }

func (p *MicroPoint) SetX(x Micrometer) { p.x = x }
func (p *MicroPoint) SetY(y Micrometer) { p.y = y }

// Add returns p + o.
func (p MicroPoint) Add(o MicroPoint) MicroPoint {
	return MicroPoint{p.x + o.x, p.y + o.y}
}

// Sub returns p - o.
func (p MicroPoint) Sub(o MicroPoint) MicroPoint {
	return MicroPoint{p.x - o.x, p.y - o.y}
}

// Mul returns p scaled by a scalar factor.
func (p MicroPoint) Mul(factor float64) MicroPoint {
	return MicroPoint{
		Micrometer(math.Round(float64(p.x) * factor)),
		Micrometer(math.Round(float64(p.y) * factor)),
	}
}

// Neg returns -p.
func (p MicroPoint) Neg() MicroPoint {
	return MicroPoint{-p.x, -p.y}
}

// Cross returns the 2D cross product p × o = p.x*o.y - p.y*o.x.
func (p MicroPoint) Cross(o MicroPoint) int64 {
	return int64(p.x)*int64(o.y) - int64(p.y)*int64(o.x)
}

// Dot returns the 2D dot product.
func (p MicroPoint) Dot(o MicroPoint) int64 {
	return int64(p.x)*int64(o.x) + int64(p.y)*int64(o.y)
}

// TurnCCW90 rotates the vector 90 degrees counter-clockwise.
func (p MicroPoint) TurnCCW90() MicroPoint {
	return MicroPoint{-p.y, p.x}
}

// size2 returns the squared magnitude as a widened unsigned value, safe against
// overflow for coordinates up to ±2^31 µm.
func (p MicroPoint) size2() wideSquare {
	return squareMicrometer(p.x).add(squareMicrometer(p.y))
}

// Size returns the Euclidean length of p as a vector.
func (p MicroPoint) Size() Micrometer {
	return Micrometer(math.Sqrt(p.size2().float64()))
}

// ShorterThan reports whether |p| < threshold, without overflow risk.
func (p MicroPoint) ShorterThan(threshold Micrometer) bool {
	if threshold < 0 {
		return false
	}
	return p.size2().cmp(wideFromMicrometer(threshold)) < 0
}

// ShorterThanOrEqual reports whether |p| <= threshold.
func (p MicroPoint) ShorterThanOrEqual(threshold Micrometer) bool {
	if threshold < 0 {
		return false
	}
	return p.size2().cmp(wideFromMicrometer(threshold)) <= 0
}

// Normal returns p scaled to the given length; the zero vector is returned unchanged.
func (p MicroPoint) Normal(length Micrometer) MicroPoint {
	l := p.Size()
	if l == 0 {
		return p
	}
	return p.Mul(float64(length) / float64(l))
}

// Rotate rotates p around the origin by the given angle in degrees.
func (p MicroPoint) Rotate(deg Degree) MicroPoint {
	rad := ToRadians(float64(deg))
	s, c := math.Sin(rad), math.Cos(rad)
	x := float64(p.x)*c - float64(p.y)*s
	y := float64(p.x)*s + float64(p.y)*c
	return MicroPoint{Micrometer(math.Round(x)), Micrometer(math.Round(y))}
}

// MicroVec3 is a 3D point in micrometer fixed-point coordinates, used for mesh
// vertices (model space, after the mesh's affine transform has been applied).
type MicroVec3 struct {
	x, y, z Micrometer
}

// NewMicroVec3 creates a MicroVec3 from its components.
func NewMicroVec3(x, y, z Micrometer) MicroVec3 {
	return MicroVec3{x: x, y: y, z: z}
}

func (v MicroVec3) X() Micrometer { return v.x }
func (v MicroVec3) Y() Micrometer { return v.y }
func (v MicroVec3) Z() Micrometer { return v.z }

// To2D drops the Z component.
func (v MicroVec3) To2D() MicroPoint {
	return MicroPoint{v.x, v.y}
}

// Sub returns v - o.
func (v MicroVec3) Sub(o MicroVec3) MicroVec3 {
	return MicroVec3{v.x - o.x, v.y - o.y, v.z - o.z}
}
