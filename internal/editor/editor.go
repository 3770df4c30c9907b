// Package editor is an ImGui inspector for road settings with a live 3D
// preview. Every edit regenerates the road; rejected settings leave the
// last valid geometry on screen and show the error.
package editor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/engine/camera"
	"github.com/Faultbox/roadgen/internal/engine/debug"
	"github.com/Faultbox/roadgen/internal/engine/framebuffer"
	"github.com/Faultbox/roadgen/internal/engine/renderer"
	"github.com/Faultbox/roadgen/internal/engine/ui"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/road"
)

const inspectorWidth = 340

// App is the road editor.
type App struct {
	cfg *config.Config
	log *zap.Logger

	backend  *ui.Backend
	renderer *renderer.Renderer
	preview  *framebuffer.Framebuffer
	camera   *camera.OrbitCamera
	drag     ui.DragTracker
	shots    *debug.ScreenshotCapture

	road     *road.Road
	draft    draft
	lastErr  error
	uploaded *road.Mesh

	showFrames bool
	showBounds bool
	status     string

	// Set from the file dialog goroutine, consumed on the main thread.
	mu            sync.Mutex
	pendingExport string
}

// New creates the editor window and generates the initial road.
func New(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:        cfg,
		log:        logger.Named("editor"),
		camera:     camera.NewOrbitCamera(),
		shots:      debug.NewScreenshotCapture("screenshots", "road"),
		road:       road.New(logger.Named("road")),
		draft:      newDraft(cfg.Road),
		showFrames: true,
	}

	var err error
	app.backend, err = ui.NewBackend("roadgen editor", cfg.Viewer.Width, cfg.Viewer.Height)
	if err != nil {
		return nil, err
	}

	app.renderer, err = renderer.New(renderer.Config{
		Width:        cfg.Viewer.Width,
		Height:       cfg.Viewer.Height,
		SunAzimuth:   cfg.Viewer.SunAzimuth,
		SunElevation: cfg.Viewer.SunElevation,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	app.preview, err = framebuffer.New(int32(cfg.Viewer.Width), int32(cfg.Viewer.Height))
	if err != nil {
		app.renderer.Close()
		return nil, err
	}

	app.regenerate()
	app.fitCamera()
	return app, nil
}

// Run runs the editor until its window closes.
func (app *App) Run() {
	app.log.Info("starting editor loop")
	app.backend.Run(app.frame)
}

// Close releases GPU resources.
func (app *App) Close() {
	app.log.Info("closing editor")
	if app.preview != nil {
		app.preview.Destroy()
	}
	if app.renderer != nil {
		app.renderer.Close()
	}
}

func (app *App) frame() {
	app.processPendingExport()

	pos, size := ui.Viewport()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	statusHeight := float32(28)
	contentHeight := size.Y - statusHeight

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(imgui.NewVec2(inspectorWidth, contentHeight))
	if imgui.BeginV("Inspector", nil, flags) {
		app.drawInspector()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+inspectorWidth, pos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(size.X-inspectorWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags|imgui.WindowFlagsNoScrollbar) {
		app.drawPreview()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X, pos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(size.X, statusHeight))
	if imgui.BeginV("##Status", nil, flags|imgui.WindowFlagsNoTitleBar|imgui.WindowFlagsNoScrollbar) {
		imgui.Text(app.statusLine())
	}
	imgui.End()
}

func (app *App) drawInspector() {
	d := &app.draft
	s := &d.settings
	changed := false

	imgui.Text("Path")
	changed = imgui.Checkbox("Left turn", &s.LeftTurn) || changed
	changed = imgui.SliderFloat("Straight legs (m)", &s.StraightLegLength, 1, 100) || changed
	changed = imgui.SliderFloat("Arc length (m)", &s.ArcLength, 1, 200) || changed
	changed = imgui.SliderFloat("Radius (m)", &s.CircleRadius, 1, 200) || changed
	changed = imgui.SliderFloat("Degrees per vertex", &s.DegreesPerVertex, 0.25, 10) || changed

	imgui.Separator()
	imgui.Text("Cross-section")
	changed = imgui.SliderFloat("Half-width (m)", &s.Width, 0.05, 5) || changed
	changed = imgui.SliderFloat("Thickness (m)", &s.Thickness, 0, road.MaxThickness) || changed
	changed = imgui.Checkbox("Closed loop", &s.ClosedLoop) || changed

	imgui.Separator()
	imgui.Text("Placement")
	changed = imgui.DragFloat3("Position", &d.position) || changed
	changed = imgui.SliderFloat("Yaw (deg)", &d.yaw, -180, 180) || changed

	if changed {
		app.regenerate()
	}

	imgui.Separator()
	imgui.Text("Materials")
	imgui.ColorEdit3("Top", &app.cfg.Viewer.TopColor)
	imgui.ColorEdit3("Bottom", &app.cfg.Viewer.BottomColor)
	imgui.ColorEdit3("Sides", &app.cfg.Viewer.SideColor)
	sunChanged := imgui.SliderFloat("Sun azimuth", &app.cfg.Viewer.SunAzimuth, 0, 360)
	sunChanged = imgui.SliderFloat("Sun elevation", &app.cfg.Viewer.SunElevation, 0, 90) || sunChanged
	if sunChanged {
		app.renderer.SetSun(app.cfg.Viewer.SunAzimuth, app.cfg.Viewer.SunElevation)
	}

	imgui.Separator()
	imgui.Checkbox("Path frames", &app.showFrames)
	imgui.SameLine()
	imgui.Checkbox("Bounds", &app.showBounds)

	imgui.Separator()
	if imgui.Button("Fit camera") {
		app.fitCamera()
	}
	imgui.SameLine()
	if imgui.Button("Export OBJ...") {
		app.openExportDialog()
	}
	imgui.SameLine()
	if imgui.Button("Save config") {
		app.saveConfig()
	}
	if imgui.Button("Screenshot") {
		app.screenshot()
	}

	imgui.Separator()
	snap := app.road.Snapshot()
	c := snap.Path.Counts
	imgui.Text(fmt.Sprintf("Turn: %.2f deg", snap.Settings.TurnAngleDegrees()))
	imgui.Text(fmt.Sprintf("Length: %.2f m", snap.Path.Length))
	imgui.Text(fmt.Sprintf("Points: %d (%d entry, %d arc, %d exit)", snap.Path.NumPoints(), c.Leg, c.Arc, c.Exit))
	tris := snap.Mesh.Triangles()
	imgui.Text(fmt.Sprintf("Triangles: %d top, %d bottom, %d sides", tris.Top, tris.Bottom, tris.Sides))

	if app.lastErr != nil {
		imgui.Separator()
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.3, 1), "Rejected: "+app.lastErr.Error())
		imgui.TextColored(imgui.NewVec4(0.7, 0.7, 0.7, 1), "(showing the last valid road)")
	}
}

func (app *App) drawPreview() {
	avail := imgui.ContentRegionAvail()
	w, h := int32(avail.X), int32(avail.Y)
	app.preview.Resize(w, h)
	w, h = app.preview.Size()

	snap := app.road.Snapshot()
	if snap.Mesh != app.uploaded {
		app.renderer.UploadMesh(snap.Mesh)
		app.uploaded = snap.Mesh
	}
	app.renderer.UploadLines(app.overlayLines(snap))

	app.preview.Render(func() {
		app.renderer.Resize(int(w), int(h))
		view := app.camera.ViewMatrix()
		proj := app.camera.ProjectionMatrix(app.renderer.Aspect())

		app.renderer.Begin()
		app.renderer.DrawRoad(snap.Placement().Matrix(), view, proj, renderer.Materials{
			Top:    app.cfg.Viewer.TopColor,
			Bottom: app.cfg.Viewer.BottomColor,
			Sides:  app.cfg.Viewer.SideColor,
			Tiling: snap.Settings.TextureTiling(),
		})
		app.renderer.DrawLines(proj.Mul(view))
		app.renderer.End()
	})

	ui.Image(app.preview.ColorTexture(), avail)

	dx, dy, wheel := app.drag.Update()
	app.camera.HandleDrag(dx, dy)
	if wheel != 0 {
		app.camera.HandleZoom(wheel)
	}
}

func (app *App) overlayLines(snap *road.Snapshot) []debug.LineVertex {
	var lines []debug.LineVertex
	placement := snap.Placement()
	if app.showFrames {
		lines = append(lines, debug.PathFrames(placement, 5, 0.5)...)
	}
	if app.showBounds {
		b := snap.Mesh.Bounds.Transform(placement.Matrix())
		lines = append(lines, debug.BoundsWireframe(b.Min, b.Max, 0.1)...)
	}
	return lines
}

// regenerate pushes the draft to the road. A rejected draft is kept so the
// user can correct it.
func (app *App) regenerate() {
	app.lastErr = app.road.Regenerate(app.draft.resolve())
}

func (app *App) fitCamera() {
	snap := app.road.Snapshot()
	b := snap.Mesh.Bounds.Transform(snap.Placement().Matrix())
	app.camera.FitToBounds(b.Min, b.Max)
}

func (app *App) statusLine() string {
	if app.status != "" {
		return app.status
	}
	return "Drag the preview to orbit, scroll to zoom"
}

func (app *App) openExportDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Title("Export road mesh").
			Save()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				app.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}

		app.mu.Lock()
		app.pendingExport = filename
		app.mu.Unlock()
	}()
}

func (app *App) processPendingExport() {
	app.mu.Lock()
	path := app.pendingExport
	app.pendingExport = ""
	app.mu.Unlock()

	if path == "" {
		return
	}

	mtlPath, err := app.road.Snapshot().Export(path, app.cfg.ExportOptions())
	if err != nil {
		app.log.Error("export failed", zap.String("path", path), zap.Error(err))
		app.status = "Export failed: " + err.Error()
		return
	}
	app.log.Info("mesh exported", zap.String("obj", path), zap.String("mtl", mtlPath))
	app.status = fmt.Sprintf("Exported %s and %s", path, mtlPath)
}

func (app *App) saveConfig() {
	app.cfg.Road = app.road.Settings()
	if err := app.cfg.Save(); err != nil {
		app.log.Error("saving config failed", zap.Error(err))
		app.status = "Saving config failed: " + err.Error()
		return
	}
	app.status = "Saved config to " + config.ConfigDir()
}

func (app *App) screenshot() {
	w, h := app.preview.Size()
	name, err := app.shots.CaptureFromPixels(app.preview.ReadPixels(), int(w), int(h))
	if err != nil {
		app.log.Warn("screenshot failed", zap.Error(err))
		app.status = "Screenshot failed: " + err.Error()
		return
	}
	app.status = "Saved " + name
}
