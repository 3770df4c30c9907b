package editor

import (
	gomath "math"

	"github.com/Faultbox/roadgen/internal/road"
	"github.com/Faultbox/roadgen/pkg/math"
)

// draft is the inspector's editable copy of the road settings. It may hold
// values the road rejected; the road keeps showing its last valid geometry.
type draft struct {
	settings road.Settings
	position [3]float32
	yaw      float32 // degrees about +Y
}

func newDraft(s road.Settings) draft {
	return draft{
		settings: s,
		position: s.Transform.Position.Array(),
		yaw:      yawDegrees(s.Transform.Rotation),
	}
}

// resolve folds the placement widgets back into the settings.
func (d draft) resolve() road.Settings {
	s := d.settings
	s.Transform = road.Transform{
		Position: math.Vec3{X: d.position[0], Y: d.position[1], Z: d.position[2]},
		Rotation: yawRotation(d.yaw),
	}
	return s
}

// yawRotation returns a rotation of deg degrees about +Y. Zero yields the
// identity.
func yawRotation(deg float32) math.Quat {
	if deg == 0 {
		return math.QuatIdentity()
	}
	return math.QuatFromAxisAngle(math.Up, deg*gomath.Pi/180)
}

// yawDegrees recovers the heading of q from where it sends +Z.
func yawDegrees(q math.Quat) float32 {
	f := q.Rotate(math.Forward)
	if f.X == 0 && f.Z == 0 {
		return 0
	}
	return float32(gomath.Atan2(float64(f.X), float64(f.Z)) * 180 / gomath.Pi)
}
