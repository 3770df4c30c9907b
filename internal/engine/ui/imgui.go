// Package ui wraps the ImGui SDL backend used by the road editor.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/logger"
)

// Backend owns the ImGui window, its GL context and the frame loop.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the ImGui window and initializes OpenGL in its context.
func NewBackend(title string, width, height int) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	logger.Info("editor window created",
		zap.String("title", title),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return b, nil
}

// Run runs frame until the window closes. frame is called once per frame
// between ImGui's NewFrame and Render.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area.
func Viewport() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// Image draws a GL texture filling size. OpenGL textures are bottom-up, so
// V is flipped.
func Image(textureID uint32, size imgui.Vec2) {
	ref := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*ref,
		size,
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)
}

// DragTracker turns ImGui mouse state over the last drawn item into drag
// and wheel deltas.
type DragTracker struct {
	last imgui.Vec2
}

// Update returns this frame's drag delta and wheel movement while the last
// item is hovered.
func (d *DragTracker) Update() (dx, dy, wheel float32) {
	if !imgui.IsItemHovered() {
		return 0, 0, 0
	}
	pos := imgui.MousePos()
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		dx, dy = pos.X-d.last.X, pos.Y-d.last.Y
	}
	d.last = pos
	return dx, dy, imgui.CurrentIO().MouseWheel()
}
