// Package viewer runs the interactive road viewer: it owns the window,
// renderer and camera, and regenerates the road when its settings change.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/engine/camera"
	"github.com/Faultbox/roadgen/internal/engine/debug"
	"github.com/Faultbox/roadgen/internal/engine/input"
	"github.com/Faultbox/roadgen/internal/engine/renderer"
	"github.com/Faultbox/roadgen/internal/engine/window"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/road"
)

// Viewer is the interactive road viewer.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *debug.ScreenshotCapture

	road     *road.Road
	overlays overlays
	wantShot bool
	// mesh last uploaded to the GPU
	uploaded *road.Mesh
}

// New creates the window and GPU resources and generates the initial road.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:      cfg,
		log:      logger.Named("viewer"),
		input:    input.New(),
		camera:   camera.NewOrbitCamera(),
		shots:    debug.NewScreenshotCapture("screenshots", "road"),
		road:     road.New(logger.Named("road")),
		overlays: overlays{frames: true, grid: true},
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "roadgen",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window created.
	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{
		Width:        width,
		Height:       height,
		SunAzimuth:   cfg.Viewer.SunAzimuth,
		SunElevation: cfg.Viewer.SunElevation,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.road.Regenerate(cfg.Road); err != nil {
		v.Close()
		return nil, fmt.Errorf("initial road: %w", err)
	}
	v.sync()
	v.fitCamera()

	v.log.Info("viewer initialized")
	return v, nil
}

// Run runs the event loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		dx, dy := v.input.DragDelta(sdl.BUTTON_LEFT)
		v.camera.HandleDrag(dx, dy)
		if wheel := v.input.WheelDelta(); wheel != 0 {
			v.camera.HandleZoom(wheel)
		}

		v.render()
		if v.wantShot {
			v.screenshot()
			v.wantShot = false
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.Size())
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
		return
	case sdl.SCANCODE_HOME:
		v.fitCamera()
		return
	case sdl.SCANCODE_F12:
		v.wantShot = true
		return
	}

	if v.overlays.toggle(key) {
		v.sync()
		return
	}

	s, ok := editSettings(v.road.Settings(), key)
	if !ok {
		return
	}
	// A rejected configuration leaves the previous road on screen; the road
	// has already logged why.
	if err := v.road.Regenerate(s); err != nil {
		return
	}
	v.sync()
}

// sync uploads whatever changed since the last frame and refreshes the title.
func (v *Viewer) sync() {
	snap := v.road.Snapshot()
	if snap.Mesh != v.uploaded {
		v.renderer.UploadMesh(snap.Mesh)
		v.uploaded = snap.Mesh
	}
	v.renderer.UploadLines(v.overlayLines(snap))

	s := snap.Settings
	turn := "right"
	if s.LeftTurn {
		turn = "left"
	}
	v.window.SetTitle(fmt.Sprintf("roadgen - %s turn, arc %.0f m, radius %.0f m, legs %.0f m",
		turn, s.ArcLength, s.CircleRadius, s.StraightLegLength))
}

func (v *Viewer) overlayLines(snap *road.Snapshot) []debug.LineVertex {
	var lines []debug.LineVertex
	placement := snap.Placement()
	if v.overlays.frames {
		lines = append(lines, debug.PathFrames(placement, 5, 0.5)...)
	}
	if v.overlays.bounds {
		b := snap.Mesh.Bounds.Transform(placement.Matrix())
		lines = append(lines, debug.BoundsWireframe(b.Min, b.Max, 0.1)...)
	}
	if v.overlays.grid {
		b := snap.Path.Bounds
		size := b.Size()
		extent := max(size.X, size.Z)/2 + 5
		center := placement.Matrix().TransformPoint(b.Center())
		lines = append(lines, debug.GroundGrid(center, extent, 1, center.Y-snap.Settings.Thickness-0.01)...)
	}
	return lines
}

func (v *Viewer) fitCamera() {
	snap := v.road.Snapshot()
	b := snap.Mesh.Bounds.Transform(snap.Placement().Matrix())
	v.camera.FitToBounds(b.Min, b.Max)
}

func (v *Viewer) render() {
	snap := v.road.Snapshot()
	view := v.camera.ViewMatrix()
	proj := v.camera.ProjectionMatrix(v.renderer.Aspect())

	v.renderer.Begin()
	v.renderer.DrawRoad(snap.Placement().Matrix(), view, proj, renderer.Materials{
		Top:    v.cfg.Viewer.TopColor,
		Bottom: v.cfg.Viewer.BottomColor,
		Sides:  v.cfg.Viewer.SideColor,
		Tiling: snap.Settings.TextureTiling(),
	})
	v.renderer.DrawLines(proj.Mul(view))
	v.renderer.End()
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

// Close releases GPU and window resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
