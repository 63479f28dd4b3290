package data

// Matrix is a 3x4 affine transform (3x3 linear part + translation), applied to
// mesh vertices before slicing. Rotation-only matrices are used for the infill
// scan-line frame rotation in package infill.
type Matrix struct {
	m           [3][3]float64
	translation MicroVec3
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{m: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// NewMatrix builds an affine transform from a 3x3 linear part and a translation.
func NewMatrix(linear [3][3]float64, translation MicroVec3) Matrix {
	return Matrix{m: linear, translation: translation}
}

// Apply transforms v by the matrix: linear part then translation.
func (mat Matrix) Apply(v MicroVec3) MicroVec3 {
	x := float64(v.x)
	y := float64(v.y)
	z := float64(v.z)
	rx := mat.m[0][0]*x + mat.m[0][1]*y + mat.m[0][2]*z
	ry := mat.m[1][0]*x + mat.m[1][1]*y + mat.m[1][2]*z
	rz := mat.m[2][0]*x + mat.m[2][1]*y + mat.m[2][2]*z
	return MicroVec3{
		Micrometer(rx) + mat.translation.x,
		Micrometer(ry) + mat.translation.y,
		Micrometer(rz) + mat.translation.z,
	}
}
