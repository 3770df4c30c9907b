// Package camera provides the orbit camera used to inspect generated roads.
package camera

import (
	gomath "math"

	"github.com/Faultbox/roadgen/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera sized for roads tens of meters long.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        40.0,
		RotationX:       0.6,
		RotationY:       0.0,
		MinDistance:     1.0,
		MaxDistance:     1000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            float32(gomath.Pi / 4),
		Near:            0.1,
		Far:             2000.0,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch, yaw := float64(c.RotationX), float64(c.RotationY)
	offset := math.Vec3{
		X: c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		Y: c.Distance * float32(gomath.Sin(pitch)),
		Z: c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// ProjectionMatrix returns the perspective projection for a viewport of
// the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = min(max(c.RotationX, c.MinPitch), c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

// FitToBounds centers the camera on a bounding box and backs off until the
// whole box fits the vertical field of view.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)

	radius := hi.Sub(lo).Length() / 2
	dist := radius / float32(gomath.Sin(float64(c.FovY)/2))
	c.Distance = min(max(dist, c.MinDistance), c.MaxDistance)

	c.RotationX = 0.6 // ~35 degrees down
	c.RotationY = 0.0
}
