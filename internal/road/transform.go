package road

import (
	"github.com/Faultbox/roadgen/pkg/math"
)

// Transform places the road's local frame in the world. Scale is always 1.
// The zero value is the identity placement.
type Transform struct {
	Position math.Vec3 `yaml:"position"`
	Rotation math.Quat `yaml:"rotation"`
}

// Matrix returns the model matrix (translation * rotation).
func (t Transform) Matrix() math.Mat4 {
	return math.Translate(t.Position).Mul(t.Rotation.ToMat4())
}

// Placement exposes a path's vertices in world space.
type Placement struct {
	path      *Path
	transform Transform
	model     math.Mat4
}

// NewPlacement wraps path with a world transform.
func NewPlacement(path *Path, t Transform) Placement {
	return Placement{path: path, transform: t, model: t.Matrix()}
}

// NumPoints returns the number of path vertices.
func (p Placement) NumPoints() int {
	return p.path.NumPoints()
}

// PointAt returns the world-space position of vertex i.
func (p Placement) PointAt(i int) math.Vec3 {
	return p.model.TransformPoint(p.path.PointAt(i))
}

// TangentAt returns the world-space direction of travel at vertex i.
func (p Placement) TangentAt(i int) math.Vec3 {
	return p.transform.Rotation.Rotate(p.path.TangentAt(i))
}

// NormalAt returns the world-space lateral direction at vertex i.
func (p Placement) NormalAt(i int) math.Vec3 {
	return p.transform.Rotation.Rotate(p.path.NormalAt(i))
}

// SampleAtDistance interpolates the path at distance d like
// Path.SampleAtDistance and returns the sample in world space.
func (p Placement) SampleAtDistance(d float32) PathSample {
	s := p.path.SampleAtDistance(d)
	s.Position = p.model.TransformPoint(s.Position)
	s.Tangent = p.transform.Rotation.Rotate(s.Tangent)
	s.Normal = p.transform.Rotation.Rotate(s.Normal)
	return s
}

// Matrix returns the model matrix used to draw the road's mesh.
func (p Placement) Matrix() math.Mat4 {
	return p.model
}
