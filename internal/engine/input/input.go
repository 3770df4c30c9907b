// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a viewer event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int // relative motion for EventMouseMove
	DeltaY int
	Wheel  float32 // scroll amount for EventMouseWheel, positive away from the user
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events  []Event
	buttons map[uint8]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		buttons: make(map[uint8]bool),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			ev := Event{MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = EventMouseDown
				i.buttons[e.Button] = true
			} else {
				ev.Type = EventMouseUp
				i.buttons[e.Button] = false
			}
			i.events = append(i.events, ev)

		case *sdl.MouseWheelEvent:
			y := e.Y
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			i.events = append(i.events, Event{Type: EventMouseWheel, Wheel: float32(y)})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsButtonDown reports whether a mouse button is currently held.
func (i *Input) IsButtonDown(button uint8) bool {
	return i.buttons[button]
}

// DragDelta sums this frame's mouse motion while button is held.
func (i *Input) DragDelta(button uint8) (dx, dy float32) {
	if !i.buttons[button] {
		return 0, 0
	}
	for _, e := range i.events {
		if e.Type == EventMouseMove {
			dx += float32(e.DeltaX)
			dy += float32(e.DeltaY)
		}
	}
	return dx, dy
}

// WheelDelta sums this frame's scroll.
func (i *Input) WheelDelta() float32 {
	var d float32
	for _, e := range i.events {
		if e.Type == EventMouseWheel {
			d += e.Wheel
		}
	}
	return d
}
