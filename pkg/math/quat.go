package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := float64(angle) / 2
	s := float32(math.Sin(halfAngle))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(halfAngle)),
	}
}

// Normalize returns a normalized quaternion. The zero value normalizes to
// identity, so an unset rotation behaves as no rotation.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	q = q.Normalize()
	u := Vec3{q.X, q.Y, q.Z}
	// v' = v + 2w(u×v) + 2u×(u×v)
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
