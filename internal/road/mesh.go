package road

import (
	"github.com/Faultbox/roadgen/pkg/math"
)

// Mesh is the extruded road. Vertices, UVs and Normals are parallel; the
// three index lists share them and are drawn with separate materials.
type Mesh struct {
	Vertices []math.Vec3
	UVs      []math.Vec2
	Normals  []math.Vec3

	Top    []uint32
	Bottom []uint32
	Sides  []uint32

	Bounds Bounds
}

// Vertex is the interleaved GPU layout of one mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// TriangleCounts reports the number of triangles per surface.
type TriangleCounts struct {
	Top    int
	Bottom int
	Sides  int
}

// BuildMesh extrudes a width × thickness cross-section along path. The road
// extends |width| to each side of the centerline. With closedLoop set, the
// last block is stitched back to the first. A path without vertices yields
// an empty mesh.
func BuildMesh(path *Path, width, thickness float32, closedLoop bool) *Mesh {
	n := path.NumPoints()
	if n == 0 {
		return &Mesh{}
	}

	quads := n - 1
	if closedLoop {
		quads++
	}
	numVerts := n * VerticesPerPoint

	m := &Mesh{
		Vertices: make([]math.Vec3, numVerts),
		UVs:      make([]math.Vec2, numVerts),
		Normals:  make([]math.Vec3, numVerts),
		Top:      make([]uint32, 0, quads*len(TopQuad)),
		Bottom:   make([]uint32, 0, quads*len(BottomQuad)),
		Sides:    make([]uint32, 0, quads*len(SideWalls)),
	}

	halfWidth := width
	if halfWidth < 0 {
		halfWidth = -halfWidth
	}
	wrap := uint32(numVerts)

	for i := 0; i < n; i++ {
		localUp := path.Tangents[i].Cross(path.Normals[i])
		localRight := path.Normals[i]
		drop := localUp.Scale(thickness)

		left := path.Points[i].Sub(localRight.Scale(halfWidth))
		right := path.Points[i].Add(localRight.Scale(halfWidth))

		base := i * VerticesPerPoint
		v := m.Vertices[base : base+VerticesPerPoint]
		v[SlotLeftTop] = left
		v[SlotRightTop] = right
		v[SlotLeftBottom] = left.Sub(drop)
		v[SlotRightBottom] = right.Sub(drop)
		copy(v[SlotLeftTopSide:], v[:SlotLeftTopSide])

		nrm := m.Normals[base : base+VerticesPerPoint]
		nrm[SlotLeftTop] = localUp
		nrm[SlotRightTop] = localUp
		nrm[SlotLeftBottom] = localUp.Neg()
		nrm[SlotRightBottom] = localUp.Neg()
		nrm[SlotLeftTopSide] = localRight.Neg()
		nrm[SlotRightTopSide] = localRight
		nrm[SlotLeftBottomSide] = localRight.Neg()
		nrm[SlotRightBottomSide] = localRight

		// U spans the width, V follows the normalized distance along the road.
		m.UVs[base+SlotLeftTop] = math.Vec2{X: 0, Y: path.Times[i]}
		m.UVs[base+SlotRightTop] = math.Vec2{X: 1, Y: path.Times[i]}

		if i < quads {
			origin := uint32(base)
			m.Top = appendQuad(m.Top, TopQuad[:], origin, wrap)
			m.Bottom = appendQuad(m.Bottom, BottomQuad[:], origin, wrap)
			m.Sides = appendQuad(m.Sides, SideWalls[:], origin, wrap)
		}
	}

	m.Bounds = boundsOf(m.Vertices)
	return m
}

func appendQuad(dst, offsets []uint32, origin, wrap uint32) []uint32 {
	for _, off := range offsets {
		dst = append(dst, (origin+off)%wrap)
	}
	return dst
}

// Triangles returns the triangle count of each surface.
func (m *Mesh) Triangles() TriangleCounts {
	return TriangleCounts{
		Top:    len(m.Top) / 3,
		Bottom: len(m.Bottom) / 3,
		Sides:  len(m.Sides) / 3,
	}
}

// Interleave packs the vertex attributes for a single GPU vertex buffer.
func (m *Mesh) Interleave() []Vertex {
	out := make([]Vertex, len(m.Vertices))
	for i := range m.Vertices {
		out[i] = Vertex{
			Position: m.Vertices[i].Array(),
			Normal:   m.Normals[i].Array(),
			TexCoord: m.UVs[i].Array(),
		}
	}
	return out
}
