// Package debug provides debug visualization utilities for the road viewer.
package debug

import (
	gomath "math"

	"github.com/Faultbox/roadgen/pkg/math"
)

// LineVertex is one endpoint of a colored debug line.
type LineVertex struct {
	Position [3]float32
	Color    [3]float32
}

// Debug line colors.
var (
	ColorBounds     = [3]float32{1.0, 0.8, 0.2}
	ColorGrid       = [3]float32{0.35, 0.35, 0.35}
	ColorCenterline = [3]float32{1.0, 1.0, 1.0}
	ColorTangent    = [3]float32{0.2, 0.4, 1.0}
	ColorNormal     = [3]float32{1.0, 0.25, 0.25}
	ColorUp         = [3]float32{0.25, 1.0, 0.25}
)

// BoundsLineCount is the number of vertices of a bounds wireframe (12 edges × 2).
const BoundsLineCount = 24

func line(a, b math.Vec3, color [3]float32) [2]LineVertex {
	return [2]LineVertex{{a.Array(), color}, {b.Array(), color}}
}

// BoundsWireframe returns line vertices outlining the box [lo, hi], grown
// by padding on every side.
func BoundsWireframe(lo, hi math.Vec3, padding float32) []LineVertex {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo, hi = lo.Min(hi).Sub(pad), lo.Max(hi).Add(pad)

	corner := func(x, y, z bool) math.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}

	out := make([]LineVertex, 0, BoundsLineCount)
	for _, y := range []bool{false, true} {
		ring := [4]math.Vec3{corner(false, y, false), corner(true, y, false), corner(true, y, true), corner(false, y, true)}
		for i := range ring {
			l := line(ring[i], ring[(i+1)%4], ColorBounds)
			out = append(out, l[:]...)
		}
	}
	for _, xz := range [4][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		l := line(corner(xz[0], false, xz[1]), corner(xz[0], true, xz[1]), ColorBounds)
		out = append(out, l[:]...)
	}
	return out
}

// GroundGrid returns a square grid of lines on the plane y = height,
// centered on center and snapped to whole cells.
func GroundGrid(center math.Vec3, halfExtent, cell, height float32) []LineVertex {
	if cell <= 0 || halfExtent <= 0 {
		return nil
	}
	snap := func(v float32) float32 {
		return float32(gomath.Round(float64(v/cell))) * cell
	}
	cx, cz := snap(center.X), snap(center.Z)
	cells := int(gomath.Ceil(float64(halfExtent / cell)))
	ext := float32(cells) * cell

	out := make([]LineVertex, 0, 4*(2*cells+1))
	for i := -cells; i <= cells; i++ {
		off := float32(i) * cell
		x := line(math.Vec3{X: cx + off, Y: height, Z: cz - ext}, math.Vec3{X: cx + off, Y: height, Z: cz + ext}, ColorGrid)
		z := line(math.Vec3{X: cx - ext, Y: height, Z: cz + off}, math.Vec3{X: cx + ext, Y: height, Z: cz + off}, ColorGrid)
		out = append(out, x[0], x[1], z[0], z[1])
	}
	return out
}

// Frames is the subset of a placed path the frame overlay needs.
type Frames interface {
	NumPoints() int
	PointAt(i int) math.Vec3
	TangentAt(i int) math.Vec3
	NormalAt(i int) math.Vec3
}

// PathFrames returns the centerline of f plus, for every stride-th vertex,
// short tangent, normal and up axes of the given length.
func PathFrames(f Frames, stride int, length float32) []LineVertex {
	n := f.NumPoints()
	if n == 0 {
		return nil
	}
	stride = max(stride, 1)

	out := make([]LineVertex, 0, 2*(n-1)+6*(n/stride+1))
	for i := 1; i < n; i++ {
		l := line(f.PointAt(i-1), f.PointAt(i), ColorCenterline)
		out = append(out, l[:]...)
	}
	for i := 0; i < n; i += stride {
		p, t, nrm := f.PointAt(i), f.TangentAt(i), f.NormalAt(i)
		up := t.Cross(nrm)
		for _, axis := range []struct {
			dir   math.Vec3
			color [3]float32
		}{{t, ColorTangent}, {nrm, ColorNormal}, {up, ColorUp}} {
			l := line(p, p.Add(axis.dir.Scale(length)), axis.color)
			out = append(out, l[:]...)
		}
	}
	return out
}
