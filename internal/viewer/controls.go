package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/roadgen/internal/road"
)

// Keyboard step sizes for live editing.
const (
	lengthStep    = 1.0   // meters, for leg, arc and radius
	minLength     = 1.0   // meters
	widthStep     = 0.05  // meters
	minWidth      = 0.05  // meters
	thicknessStep = 0.025 // meters
)

// editSettings applies the road edit bound to key. It reports false when
// the key is not a road edit.
func editSettings(s road.Settings, key sdl.Scancode) (road.Settings, bool) {
	switch key {
	case sdl.SCANCODE_L:
		s.LeftTurn = true
	case sdl.SCANCODE_R:
		s.LeftTurn = false
	case sdl.SCANCODE_T:
		s.LeftTurn = !s.LeftTurn
	case sdl.SCANCODE_UP:
		s.CircleRadius += lengthStep
	case sdl.SCANCODE_DOWN:
		s.CircleRadius = max(s.CircleRadius-lengthStep, minLength)
	case sdl.SCANCODE_RIGHT:
		s.ArcLength += lengthStep
	case sdl.SCANCODE_LEFT:
		s.ArcLength = max(s.ArcLength-lengthStep, minLength)
	case sdl.SCANCODE_PAGEUP:
		s.StraightLegLength += lengthStep
	case sdl.SCANCODE_PAGEDOWN:
		s.StraightLegLength = max(s.StraightLegLength-lengthStep, minLength)
	case sdl.SCANCODE_W:
		s.Width += widthStep
	case sdl.SCANCODE_S:
		s.Width = max(s.Width-widthStep, minWidth)
	case sdl.SCANCODE_E:
		s.Thickness += thicknessStep
	case sdl.SCANCODE_Q:
		s.Thickness -= thicknessStep
	case sdl.SCANCODE_C:
		s.ClosedLoop = !s.ClosedLoop
	default:
		return s, false
	}
	return s, true
}

// overlays selects which debug line sets are drawn.
type overlays struct {
	frames bool
	bounds bool
	grid   bool
}

// toggle flips the overlay bound to key. It reports false for other keys.
func (o *overlays) toggle(key sdl.Scancode) bool {
	switch key {
	case sdl.SCANCODE_F:
		o.frames = !o.frames
	case sdl.SCANCODE_B:
		o.bounds = !o.bounds
	case sdl.SCANCODE_G:
		o.grid = !o.grid
	default:
		return false
	}
	return true
}
