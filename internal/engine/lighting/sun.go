// Package lighting provides the directional light used to shade roads.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/roadgen/pkg/math"
)

// SunDirection converts a sun position to a unit vector pointing towards the
// sun. Azimuth is rotation about +Y from +Z in degrees, elevation is the
// angle above the horizon in degrees, clamped to [0, 90].
func SunDirection(azimuth, elevation float32) math.Vec3 {
	elevation = min(max(elevation, 0), 90)

	az := float64(azimuth) * gomath.Pi / 180.0
	el := float64(elevation) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}

// LightDirection is the direction light travels for a sun at the given
// position, as shaders expect it.
func LightDirection(azimuth, elevation float32) math.Vec3 {
	return SunDirection(azimuth, elevation).Neg()
}
