package renderer

import (
	"testing"

	"github.com/Faultbox/roadgen/internal/road"
)

func TestPackIndices(t *testing.T) {
	m := &road.Mesh{
		Top:    []uint32{0, 1, 2},
		Bottom: []uint32{3, 4, 5, 5, 4, 6},
		Sides:  []uint32{7, 8, 9},
	}

	packed, ranges := packIndices(m)
	if len(packed) != 12 {
		t.Fatalf("packed %d indices, want 12", len(packed))
	}

	want := [surfaceCount]indexRange{{0, 3}, {3, 6}, {9, 3}}
	if ranges != want {
		t.Errorf("ranges = %v, want %v", ranges, want)
	}
	for s := SurfaceTop; s < surfaceCount; s++ {
		r := ranges[s]
		src := [][]uint32{m.Top, m.Bottom, m.Sides}[s]
		for i, idx := range packed[r.offset : r.offset+r.count] {
			if idx != src[i] {
				t.Errorf("%s index %d = %d, want %d", s, i, idx, src[i])
			}
		}
	}
}

func TestPackIndicesEmptyMesh(t *testing.T) {
	packed, ranges := packIndices(&road.Mesh{})
	if len(packed) != 0 {
		t.Errorf("packed %d indices, want 0", len(packed))
	}
	for s, r := range ranges {
		if r.count != 0 {
			t.Errorf("surface %d has %d indices", s, r.count)
		}
	}
}

func TestMaterialsColor(t *testing.T) {
	m := Materials{
		Top:    [3]float32{1, 0, 0},
		Bottom: [3]float32{0, 1, 0},
		Sides:  [3]float32{0, 0, 1},
	}
	tests := []struct {
		surface Surface
		want    [3]float32
	}{
		{SurfaceTop, m.Top},
		{SurfaceBottom, m.Bottom},
		{SurfaceSides, m.Sides},
	}
	for _, tt := range tests {
		if got := m.color(tt.surface); got != tt.want {
			t.Errorf("color(%s) = %v, want %v", tt.surface, got, tt.want)
		}
	}
}
