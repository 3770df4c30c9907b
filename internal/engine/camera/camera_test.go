package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/roadgen/pkg/math"
)

func TestOrbitCameraPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.Distance = 10
	c.RotationX = 0
	c.RotationY = 0

	got := c.Position()
	want := math.Vec3{X: 1, Y: 2, Z: 13}
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("Position() = %v, want %v", got, want)
	}

	c.RotationX = float32(gomath.Pi / 2)
	got = c.Position()
	want = math.Vec3{X: 1, Y: 12, Z: 3}
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("Position() looking straight down = %v, want %v", got, want)
	}
}

func TestOrbitCameraClamps(t *testing.T) {
	tests := []struct {
		name  string
		apply func(c *OrbitCamera)
		check func(c *OrbitCamera) bool
	}{
		{"pitch upper", func(c *OrbitCamera) { c.HandleDrag(0, 1e6) }, func(c *OrbitCamera) bool { return c.RotationX == c.MaxPitch }},
		{"pitch lower", func(c *OrbitCamera) { c.HandleDrag(0, -1e6) }, func(c *OrbitCamera) bool { return c.RotationX == c.MinPitch }},
		{"zoom in", func(c *OrbitCamera) {
			for range 200 {
				c.HandleZoom(5)
			}
		}, func(c *OrbitCamera) bool { return c.Distance == c.MinDistance }},
		{"zoom out", func(c *OrbitCamera) {
			for range 200 {
				c.HandleZoom(-5)
			}
		}, func(c *OrbitCamera) bool { return c.Distance == c.MaxDistance }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			tt.apply(c)
			if !tt.check(c) {
				t.Errorf("camera not clamped: pitch=%f distance=%f", c.RotationX, c.Distance)
			}
		})
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	lo := math.Vec3{X: -10, Y: 0, Z: -15}
	hi := math.Vec3{X: 10, Y: 0, Z: 25}
	c.FitToBounds(lo, hi)

	if want := (math.Vec3{X: 0, Y: 0, Z: 5}); c.Center != want {
		t.Errorf("Center = %v, want %v", c.Center, want)
	}

	radius := hi.Sub(lo).Length() / 2
	if c.Distance < radius {
		t.Errorf("Distance %f does not clear the bounding sphere radius %f", c.Distance, radius)
	}
	if got := c.Position().Distance(c.Center); gomath.Abs(float64(got-c.Distance)) > 1e-3 {
		t.Errorf("camera sits %f from center, want %f", got, c.Distance)
	}
}
