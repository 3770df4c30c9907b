package math

import "math"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a perspective projection matrix.
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovY)/2.0))
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// LookAt returns a view matrix looking from eye to center with up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// TransformPoint transforms a point by this matrix (w=1, perspective divide applied).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
