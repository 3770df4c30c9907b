package road

import (
	gomath "math"

	"github.com/Faultbox/roadgen/pkg/math"
)

// Sample builds the road centerline: a straight entry leg ending at the
// origin, a circular arc turning left or right, and a straight exit leg
// continuing along the arc's final heading. It fails with a *ConfigError
// when the turn angle is not under 180 degrees.
func Sample(p Params) (*Path, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	counts := p.Counts()
	path := newPath(counts, p.TotalLength())

	leg := float64(p.StraightLegLength)
	arcLen := float64(p.ArcLength)
	radius := float64(p.CircleRadius)

	emit := func(i int, pos, tangent, normal math.Vec3, dist float64) {
		path.Points[i] = pos
		path.Tangents[i] = tangent
		path.Normals[i] = normal
		path.CumulativeLengths[i] = float32(dist)
	}

	// Entry leg, built backward from the origin along +Z.
	start := math.Vec3{Z: -p.StraightLegLength}
	for i := 0; i < counts.Leg; i++ {
		dist := leg * float64(i) / float64(counts.Leg)
		emit(i, start.Add(math.Forward.Scale(float32(dist))), math.Forward, math.Right, dist)
	}

	// Arc. A left turn starts at angle 0 on a circle centered at -X and sweeps
	// counterclockwise; a right turn starts at π on a circle centered at +X
	// and sweeps clockwise. Both start at the origin heading +Z.
	turn := p.TurnAngle()
	step := turn / float64(counts.Arc)
	arc := arcFrame{radius: radius, left: p.LeftTurn}
	for k := 0; k < counts.Arc; k++ {
		pos, tangent, normal := arc.at(float64(k) * step)
		emit(counts.Leg+k, pos, tangent, normal, leg+float64(k)*arcLen/float64(counts.Arc))
	}

	// Exit leg from the arc's end point; the last vertex closes the path.
	endPos, endTangent, endNormal := arc.at(turn)
	base := counts.Leg + counts.Arc
	for j := 0; j < counts.Exit; j++ {
		along := leg * float64(j) / float64(counts.Leg)
		emit(base+j, endPos.Add(endTangent.Scale(float32(along))), endTangent, endNormal, leg+arcLen+along)
	}

	for i, dist := range path.CumulativeLengths {
		path.Times[i] = dist / path.Length
	}
	path.Bounds = boundsOf(path.Points)

	return path, nil
}

// arcFrame evaluates the turn circle. swept is the angle travelled from the
// arc's start.
type arcFrame struct {
	radius float64
	left   bool
}

func (a arcFrame) at(swept float64) (pos, tangent, normal math.Vec3) {
	center := math.Vec3{X: float32(a.radius)}
	rad := gomath.Pi - swept
	if a.left {
		center = center.Neg()
		rad = swept
	}

	radial := math.Vec3{X: float32(gomath.Cos(rad)), Z: float32(gomath.Sin(rad))}
	pos = radial.Scale(float32(a.radius)).Add(center)

	if a.left {
		// Lateral direction points away from the center.
		normal = radial
		tangent = normal.Cross(math.Down).Neg()
	} else {
		// Lateral direction points toward the center.
		normal = radial.Neg()
		tangent = normal.Cross(math.Up)
	}
	return pos, tangent, normal
}
