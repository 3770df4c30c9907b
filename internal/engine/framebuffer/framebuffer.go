// Package framebuffer provides an offscreen render target for the editor's
// road preview.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer is an offscreen render target with a color texture and a
// depth renderbuffer.
type Framebuffer struct {
	fbo          uint32
	colorTexture uint32
	depthRBO     uint32
	width        int32
	height       int32
}

// New creates a framebuffer of at least 1x1 pixels.
func New(width, height int32) (*Framebuffer, error) {
	fb := &Framebuffer{
		width:  max(width, 1),
		height: max(height, 1),
	}

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}
	return fb, nil
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.GenTextures(1, &fb.colorTexture)
	gl.GenRenderbuffers(1, &fb.depthRBO)
	fb.allocate()

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.colorTexture, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// allocate (re)creates attachment storage at the current size.
func (fb *Framebuffer) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

// Render runs draw with this framebuffer bound and its viewport set, then
// restores the previous framebuffer and viewport.
func (fb *Framebuffer) Render(draw func()) {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)

	draw()

	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
	gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
}

// ColorTexture returns the color attachment texture ID.
func (fb *Framebuffer) ColorTexture() uint32 {
	return fb.colorTexture
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int32) {
	return fb.width, fb.height
}

// Resize reallocates the attachments when the size changed.
func (fb *Framebuffer) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width = width
	fb.height = height
	fb.allocate()
}

// ReadPixels reads the color attachment as bottom-up RGBA rows.
func (fb *Framebuffer) ReadPixels() []byte {
	pixels := make([]byte, fb.width*fb.height*4)

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	return pixels
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.colorTexture != 0 {
		gl.DeleteTextures(1, &fb.colorTexture)
		fb.colorTexture = 0
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
