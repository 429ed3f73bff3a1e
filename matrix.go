package vrml

import "github.com/chewxy/math32"

// Mat4 is a 4x4 affine matrix in column-major order:
//
//	| m[0]  m[4]  m[8]   m[12] |
//	| m[1]  m[5]  m[9]   m[13] |
//	| m[2]  m[6]  m[10]  m[14] |
//	| m[3]  m[7]  m[11]  m[15] |
type Mat4 [16]float32

// Identity is the identity matrix.
var Identity = Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// ScaleMat returns a scale matrix.
func ScaleMat(v Vec3) Mat4 {
	m := Identity
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// RotateMat returns the matrix rotating by r.Angle radians about r's axis.
// A zero axis yields the identity.
func RotateMat(r Rotation) Mat4 {
	axis := r.Axis()
	l := axis.Length()
	if l == 0 || r.Angle == 0 {
		return Identity
	}
	x, y, z := axis.X/l, axis.Y/l, axis.Z/l
	s, c := math32.Sincos(r.Angle)
	t := 1 - c
	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * o (o applied first).
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// MulPoint applies m to a point (w = 1).
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// MulDir applies the linear part of m to a direction (w = 0).
func (m Mat4) MulDir(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// MaxScale returns the largest axis scale factor of m's linear part.
func (m Mat4) MaxScale() float32 {
	sx := Vec3{m[0], m[1], m[2]}.Length()
	sy := Vec3{m[4], m[5], m[6]}.Length()
	sz := Vec3{m[8], m[9], m[10]}.Length()
	return math32.Max(sx, math32.Max(sy, sz))
}

// Invert returns the inverse of an affine matrix. Returns the identity
// matrix if the matrix is singular (determinant ≈ 0).
func (m Mat4) Invert() Mat4 {
	a, b, c := m[0], m[4], m[8]
	d, e, f := m[1], m[5], m[9]
	g, h, i := m[2], m[6], m[10]
	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	inv := 1 / det
	r := Mat4{
		(e*i - f*h) * inv, -(d*i - f*g) * inv, (d*h - e*g) * inv, 0,
		-(b*i - c*h) * inv, (a*i - c*g) * inv, -(a*h - b*g) * inv, 0,
		(b*f - c*e) * inv, -(a*f - c*d) * inv, (a*e - b*d) * inv, 0,
		0, 0, 0, 1,
	}
	t := r.MulDir(Vec3{m[12], m[13], m[14]})
	r[12], r[13], r[14] = -t.X, -t.Y, -t.Z
	return r
}

// TransformMatrix computes the local matrix of a Transform node. Composition
// order (VRML97 6.52):
//
//	T(translation) * T(center) * R(rotation) * R(scaleOrientation) *
//	S(scale) * R(-scaleOrientation) * T(-center)
func TransformMatrix(translation, center Vec3, rotation Rotation, scale Vec3, scaleOrientation Rotation) Mat4 {
	negSO := scaleOrientation
	negSO.Angle = -negSO.Angle
	return Translate(translation).
		Mul(Translate(center)).
		Mul(RotateMat(rotation)).
		Mul(RotateMat(scaleOrientation)).
		Mul(ScaleMat(scale)).
		Mul(RotateMat(negSO)).
		Mul(Translate(center.Neg()))
}
