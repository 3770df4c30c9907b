// Package road generates a road segment (entry leg, circular arc, exit leg)
// and extrudes it into a three-surface triangle mesh.
package road

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/roadgen/pkg/math"
)

// SegmentKind identifies which part of the road a path vertex belongs to.
type SegmentKind int

const (
	SegmentEntry SegmentKind = iota
	SegmentArc
	SegmentExit
)

func (s SegmentKind) String() string {
	switch s {
	case SegmentEntry:
		return "entry"
	case SegmentArc:
		return "arc"
	case SegmentExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent on each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the axis-aligned box enclosing b after m is applied.
func (b Bounds) Transform(m math.Mat4) Bounds {
	var corners [8]math.Vec3
	for i := range corners {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		corners[i] = m.TransformPoint(c)
	}
	return boundsOf(corners[:])
}

func boundsOf(points []math.Vec3) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Path is the sampled road centerline in the road's local frame.
// The per-vertex slices are parallel and always the same length.
type Path struct {
	Points            []math.Vec3
	Tangents          []math.Vec3
	Normals           []math.Vec3
	CumulativeLengths []float32
	Times             []float32

	Length     float32
	ClosedLoop bool
	Up         math.Vec3
	Bounds     Bounds
	Counts     VertexCounts
}

// PathSample is one vertex of a Path.
type PathSample struct {
	Position math.Vec3
	Tangent  math.Vec3
	Normal   math.Vec3
	Distance float32
	Time     float32
}

func newPath(counts VertexCounts, length float32) *Path {
	n := counts.Total()
	return &Path{
		Points:            make([]math.Vec3, n),
		Tangents:          make([]math.Vec3, n),
		Normals:           make([]math.Vec3, n),
		CumulativeLengths: make([]float32, n),
		Times:             make([]float32, n),
		Length:            length,
		Up:                math.Up,
		Counts:            counts,
	}
}

// NumPoints returns the number of vertices on the path.
func (p *Path) NumPoints() int {
	return len(p.Points)
}

// PointAt returns the local-frame position of vertex i.
func (p *Path) PointAt(i int) math.Vec3 {
	return p.Points[i]
}

// TangentAt returns the local-frame direction of travel at vertex i.
func (p *Path) TangentAt(i int) math.Vec3 {
	return p.Tangents[i]
}

// NormalAt returns the local-frame lateral direction at vertex i.
func (p *Path) NormalAt(i int) math.Vec3 {
	return p.Normals[i]
}

// TimeAt returns the normalized distance along the path at vertex i.
func (p *Path) TimeAt(i int) float32 {
	return p.Times[i]
}

// At returns vertex i as a record.
func (p *Path) At(i int) PathSample {
	return PathSample{
		Position: p.Points[i],
		Tangent:  p.Tangents[i],
		Normal:   p.Normals[i],
		Distance: p.CumulativeLengths[i],
		Time:     p.Times[i],
	}
}

// Segment reports which part of the road vertex i lies on.
func (p *Path) Segment(i int) SegmentKind {
	switch {
	case i < p.Counts.Leg:
		return SegmentEntry
	case i < p.Counts.Leg+p.Counts.Arc:
		return SegmentArc
	default:
		return SegmentExit
	}
}

// SampleAtDistance interpolates the path at distance d from the start,
// clamped to [0, Length]. Directions are interpolated and renormalized.
// NaN samples the start.
func (p *Path) SampleAtDistance(d float32) PathSample {
	n := p.NumPoints()
	if n == 0 {
		return PathSample{}
	}
	if gomath.IsNaN(float64(d)) || d <= p.CumulativeLengths[0] {
		return p.At(0)
	}
	if d >= p.CumulativeLengths[n-1] {
		return p.At(n - 1)
	}

	// First vertex strictly beyond d; d lies on the edge (hi-1, hi).
	hi := sort.Search(n, func(i int) bool { return p.CumulativeLengths[i] > d })
	if hi >= n {
		return p.At(n - 1)
	}
	lo := hi - 1

	span := p.CumulativeLengths[hi] - p.CumulativeLengths[lo]
	var t float32
	if span > 0 {
		t = (d - p.CumulativeLengths[lo]) / span
	}

	return PathSample{
		Position: p.Points[lo].Lerp(p.Points[hi], t),
		Tangent:  p.Tangents[lo].Lerp(p.Tangents[hi], t).Normalize(),
		Normal:   p.Normals[lo].Lerp(p.Normals[hi], t).Normalize(),
		Distance: d,
		Time:     d / p.Length,
	}
}
