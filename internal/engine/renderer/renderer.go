// Package renderer draws road meshes and debug lines with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/engine/debug"
	"github.com/Faultbox/roadgen/internal/engine/lighting"
	"github.com/Faultbox/roadgen/internal/engine/renderer/shaders"
	"github.com/Faultbox/roadgen/internal/engine/shader"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/road"
	"github.com/Faultbox/roadgen/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// Sun position in degrees, see lighting.SunDirection.
	SunAzimuth   float32
	SunElevation float32
}

// Renderer owns the GPU copies of one road mesh and one set of debug lines.
type Renderer struct {
	config Config

	road  *shader.Program
	lines *shader.Program

	// Road mesh: one vertex buffer, one element buffer holding all three surfaces.
	meshVAO, meshVBO, meshEBO uint32
	ranges                    [surfaceCount]indexRange

	lineVAO, lineVBO uint32
	lineCount        int32
	lineCapacity     int

	lightDir math.Vec3
}

// New creates a renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		lightDir: lighting.LightDirection(cfg.SunAzimuth, cfg.SunElevation),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.road, err = shader.New(shaders.RoadVertexShader, shaders.RoadFragmentShader,
		"uModel", "uView", "uProjection", "uColor", "uLightDir", "uTiling", "uMarkings")
	if err != nil {
		return nil, fmt.Errorf("road shader: %w", err)
	}
	r.lines, err = shader.New(shaders.LineVertexShader, shaders.LineFragmentShader, "uViewProj")
	if err != nil {
		r.road.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	r.createMeshBuffers()
	r.createLineBuffers()

	return r, nil
}

func (r *Renderer) createMeshBuffers() {
	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)

	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	stride := int32(unsafe.Sizeof(road.Vertex{}))

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &r.meshEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)

	gl.BindVertexArray(0)
}

func (r *Renderer) createLineBuffers() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	stride := int32(unsafe.Sizeof(debug.LineVertex{}))

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// UploadMesh replaces the GPU copy of the road mesh.
func (r *Renderer) UploadMesh(m *road.Mesh) {
	vertices := m.Interleave()
	indices, ranges := packIndices(m)
	r.ranges = ranges

	gl.BindVertexArray(r.meshVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	if len(vertices) > 0 {
		size := len(vertices) * int(unsafe.Sizeof(road.Vertex{}))
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	logger.Debug("road mesh uploaded",
		zap.Int("vertices", len(vertices)),
		zap.Int("indices", len(indices)),
	)
}

// UploadLines replaces the debug line set.
func (r *Renderer) UploadLines(verts []debug.LineVertex) {
	r.lineCount = int32(len(verts))
	if len(verts) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	size := len(verts) * int(unsafe.Sizeof(debug.LineVertex{}))
	if len(verts) > r.lineCapacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
		r.lineCapacity = len(verts)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&verts[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// DrawRoad draws the uploaded mesh, one draw call per surface.
func (r *Renderer) DrawRoad(model, view, projection math.Mat4, mats Materials) {
	r.road.Use()
	gl.UniformMatrix4fv(r.road.Uniform("uModel"), 1, false, model.Ptr())
	gl.UniformMatrix4fv(r.road.Uniform("uView"), 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.road.Uniform("uProjection"), 1, false, projection.Ptr())
	gl.Uniform3f(r.road.Uniform("uLightDir"), r.lightDir.X, r.lightDir.Y, r.lightDir.Z)
	gl.Uniform1f(r.road.Uniform("uTiling"), mats.Tiling)

	gl.BindVertexArray(r.meshVAO)
	for s := SurfaceTop; s < surfaceCount; s++ {
		rng := r.ranges[s]
		if rng.count == 0 {
			continue
		}
		c := mats.color(s)
		gl.Uniform3f(r.road.Uniform("uColor"), c[0], c[1], c[2])
		markings := int32(0)
		if s == SurfaceTop {
			markings = 1
		}
		gl.Uniform1i(r.road.Uniform("uMarkings"), markings)
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(rng.count), gl.UNSIGNED_INT, uintptr(rng.offset*4))
	}
	gl.BindVertexArray(0)
}

// DrawLines draws the uploaded debug lines in world space.
func (r *Renderer) DrawLines(viewProj math.Mat4) {
	if r.lineCount == 0 {
		return
	}
	r.lines.Use()
	gl.UniformMatrix4fv(r.lines.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, r.lineCount)
	gl.BindVertexArray(0)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetSun moves the light to a new sun position.
func (r *Renderer) SetSun(azimuth, elevation float32) {
	r.lightDir = lighting.LightDirection(azimuth, elevation)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame. State is set every frame since the context may
// be shared with an ImGui backend that changes it.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Every surface winds counter-clockwise seen from outside the slab.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)

	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End restores the state an ImGui backend expects.
func (r *Renderer) End() {
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) > 0 {
		gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	}
	return pixels, w, h
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, vao := range []*uint32{&r.meshVAO, &r.lineVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, buf := range []*uint32{&r.meshVBO, &r.meshEBO, &r.lineVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
		}
	}
	r.road.Delete()
	r.lines.Delete()
}
