package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotCapture writes framebuffer contents to timestamped PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler writing prefix_<time>.png
// files into outputDir.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Filename returns the path the next capture will be written to.
func (sc *ScreenshotCapture) Filename() string {
	name := fmt.Sprintf("%s_%s.png", sc.prefix, sc.now().Format("2006-01-02_15-04-05"))
	if sc.outputDir != "" {
		name = filepath.Join(sc.outputDir, name)
	}
	return name
}

// CaptureFromPixels saves RGBA pixels read back from OpenGL. Rows are
// flipped since OpenGL's origin is bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRGBA(pixels, width, height)
	if err != nil {
		return "", err
	}

	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// FlipRGBA copies bottom-up RGBA rows into a top-down image.
func FlipRGBA(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}
