// Package math provides the float32 vector, matrix and quaternion types used by
// the road generator and its viewer.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Common axes in the road's local frame (Y up, Z forward, X right).
var (
	Up      = Vec3{0, 1, 0}
	Down    = Vec3{0, -1, 0}
	Right   = Vec3{1, 0, 0}
	Forward = Vec3{0, 0, 1}
)

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the right-handed cross product v × other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Lerp interpolates linearly from v to other.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.Add(other.Sub(v).Scale(t))
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(other Vec3, eps float32) bool {
	d := v.Sub(other)
	return abs(d.X) <= eps && abs(d.Y) <= eps && abs(d.Z) <= eps
}

// Array returns the vector as a [3]float32, the layout used by GPU buffers.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
