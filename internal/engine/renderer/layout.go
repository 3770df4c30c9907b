package renderer

import (
	"github.com/Faultbox/roadgen/internal/road"
)

// Surface identifies one of the road's three index lists.
type Surface int

const (
	SurfaceTop Surface = iota
	SurfaceBottom
	SurfaceSides
	surfaceCount
)

func (s Surface) String() string {
	switch s {
	case SurfaceTop:
		return "top"
	case SurfaceBottom:
		return "bottom"
	case SurfaceSides:
		return "sides"
	default:
		return "unknown"
	}
}

// indexRange is a slice of the shared element buffer.
type indexRange struct {
	offset int // in indices
	count  int
}

// packIndices concatenates the three index lists into one element buffer
// and records where each surface starts.
func packIndices(m *road.Mesh) ([]uint32, [surfaceCount]indexRange) {
	lists := [surfaceCount][]uint32{m.Top, m.Bottom, m.Sides}

	total := 0
	for _, l := range lists {
		total += len(l)
	}

	packed := make([]uint32, 0, total)
	var ranges [surfaceCount]indexRange
	for s, l := range lists {
		ranges[s] = indexRange{offset: len(packed), count: len(l)}
		packed = append(packed, l...)
	}
	return packed, ranges
}

// Materials are the flat colors standing in for the three road materials.
type Materials struct {
	Top, Bottom, Sides [3]float32
	// Tiling repeats the top surface's markings along the road.
	Tiling float32
}

func (m Materials) color(s Surface) [3]float32 {
	switch s {
	case SurfaceTop:
		return m.Top
	case SurfaceBottom:
		return m.Bottom
	default:
		return m.Sides
	}
}
