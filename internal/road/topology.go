package road

// Every path vertex owns a block of VerticesPerPoint mesh vertices. Slots
// 0-3 carry the top and bottom surfaces; 4-7 duplicate them with lateral
// normals so the side walls shade flat.
const (
	SlotLeftTop = iota
	SlotRightTop
	SlotLeftBottom
	SlotRightBottom
	SlotLeftTopSide
	SlotRightTopSide
	SlotLeftBottomSide
	SlotRightBottomSide

	VerticesPerPoint
)

// Topology tables stitch block i to block i+1. Offsets are relative to the
// first vertex of block i, so offset 8 is SlotLeftTop of the next block:
//
//	0  1     left-top, right-top of block i
//	8  9     left-top, right-top of block i+1
//
// A triangle (a, b, c) has geometric normal (b-a)×(c-a).
var (
	// TopQuad covers the road surface with two triangles facing +localUp.
	TopQuad = [6]uint32{0, 8, 1, 1, 8, 9}

	// BottomQuad is TopQuad reversed and moved onto the bottom slots, so the
	// underside faces -localUp and is visible from below.
	BottomQuad = reverseShifted(TopQuad, SlotLeftBottom)

	// SideWalls holds the left wall (first two triangles, facing -localRight)
	// followed by the right wall (facing +localRight), built from the
	// duplicated side slots.
	SideWalls = [12]uint32{4, 6, 14, 12, 4, 14, 5, 15, 7, 13, 15, 5}
)

func reverseShifted(quad [6]uint32, shift uint32) [6]uint32 {
	var out [6]uint32
	for j := range quad {
		out[j] = quad[len(quad)-1-j] + shift
	}
	return out
}
