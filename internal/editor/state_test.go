package editor

import (
	"testing"

	"github.com/Faultbox/roadgen/internal/road"
	"github.com/Faultbox/roadgen/pkg/math"
)

func TestYawRoundTrip(t *testing.T) {
	tests := []float32{0, 30, 90, -45, 179}
	for _, deg := range tests {
		got := yawDegrees(yawRotation(deg))
		if d := got - deg; d > 1e-3 || d < -1e-3 {
			t.Errorf("yawDegrees(yawRotation(%f)) = %f", deg, got)
		}
	}
}

func TestYawRotationTurnsForwardToRight(t *testing.T) {
	got := yawRotation(90).Rotate(math.Forward)
	if !got.ApproxEqual(math.Right, 1e-5) {
		t.Errorf("90 degree yaw sends +Z to %v, want +X", got)
	}
}

func TestDraftResolve(t *testing.T) {
	s := road.DefaultSettings()
	s.Transform.Position = math.Vec3{X: 1, Y: 2, Z: 3}
	d := newDraft(s)

	if d.position != [3]float32{1, 2, 3} || d.yaw != 0 {
		t.Fatalf("draft = %+v", d)
	}

	d.position[1] = 5
	d.yaw = 90
	d.settings.ArcLength = 12

	got := d.resolve()
	if got.ArcLength != 12 {
		t.Errorf("arc length = %f, want 12", got.ArcLength)
	}
	if got.Transform.Position.Y != 5 {
		t.Errorf("position = %v", got.Transform.Position)
	}
	placed := got.Transform.Rotation.Rotate(math.Forward)
	if !placed.ApproxEqual(math.Right, 1e-5) {
		t.Errorf("rotation sends +Z to %v, want +X", placed)
	}
}

func TestDraftUnchangedResolvesToSameSettings(t *testing.T) {
	s := road.DefaultSettings()
	s.Transform.Rotation = math.QuatIdentity()
	if got := newDraft(s).resolve(); got != s {
		t.Errorf("resolve() = %+v, want %+v", got, s)
	}
}
