package viewer

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/roadgen/internal/road"
)

func TestEditSettings(t *testing.T) {
	base := road.DefaultSettings()

	tests := []struct {
		name  string
		key   sdl.Scancode
		check func(s road.Settings) bool
	}{
		{"left turn", sdl.SCANCODE_L, func(s road.Settings) bool { return s.LeftTurn }},
		{"toggle turn", sdl.SCANCODE_T, func(s road.Settings) bool { return s.LeftTurn != base.LeftTurn }},
		{"larger radius", sdl.SCANCODE_UP, func(s road.Settings) bool { return s.CircleRadius == base.CircleRadius+1 }},
		{"shorter arc", sdl.SCANCODE_LEFT, func(s road.Settings) bool { return s.ArcLength == base.ArcLength-1 }},
		{"longer legs", sdl.SCANCODE_PAGEUP, func(s road.Settings) bool { return s.StraightLegLength == base.StraightLegLength+1 }},
		{"wider", sdl.SCANCODE_W, func(s road.Settings) bool { return s.Width > base.Width }},
		{"thinner", sdl.SCANCODE_Q, func(s road.Settings) bool { return s.Thickness < base.Thickness }},
		{"closed loop", sdl.SCANCODE_C, func(s road.Settings) bool { return s.ClosedLoop }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := editSettings(base, tt.key)
			if !ok {
				t.Fatal("key not recognized as a road edit")
			}
			if !tt.check(got) {
				t.Errorf("unexpected settings %+v", got)
			}
		})
	}
}

func TestEditSettingsLowerBounds(t *testing.T) {
	s := road.DefaultSettings()
	s.CircleRadius = 1
	s.ArcLength = 1
	s.StraightLegLength = 1
	s.Width = minWidth

	for _, key := range []sdl.Scancode{sdl.SCANCODE_DOWN, sdl.SCANCODE_LEFT, sdl.SCANCODE_PAGEDOWN, sdl.SCANCODE_S} {
		s, _ = editSettings(s, key)
	}
	if s.CircleRadius != 1 || s.ArcLength != 1 || s.StraightLegLength != 1 || s.Width != minWidth {
		t.Errorf("edits went below their minimum: %+v", s)
	}
}

func TestEditSettingsIgnoresOtherKeys(t *testing.T) {
	base := road.DefaultSettings()
	got, ok := editSettings(base, sdl.SCANCODE_F)
	if ok || got != base {
		t.Errorf("F should not edit the road, got ok=%v %+v", ok, got)
	}
}

func TestOverlayToggle(t *testing.T) {
	var o overlays
	if !o.toggle(sdl.SCANCODE_F) || !o.frames {
		t.Error("F should enable the frame overlay")
	}
	if !o.toggle(sdl.SCANCODE_F) || o.frames {
		t.Error("F again should disable the frame overlay")
	}
	if o.toggle(sdl.SCANCODE_L) {
		t.Error("L is not an overlay key")
	}
}
