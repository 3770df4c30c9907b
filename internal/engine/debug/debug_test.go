package debug

import (
	"os"
	"testing"
	"time"

	"github.com/Faultbox/roadgen/pkg/math"
)

func TestBoundsWireframe(t *testing.T) {
	lo := math.Vec3{X: -1, Y: 0, Z: -2}
	hi := math.Vec3{X: 3, Y: 1, Z: 4}

	verts := BoundsWireframe(hi, lo, 0.5)
	if len(verts) != BoundsLineCount {
		t.Fatalf("got %d vertices, want %d", len(verts), BoundsLineCount)
	}
	for i, v := range verts {
		p := v.Position
		if (p[0] != -1.5 && p[0] != 3.5) || (p[1] != -0.5 && p[1] != 1.5) || (p[2] != -2.5 && p[2] != 4.5) {
			t.Errorf("vertex %d = %v is not a padded corner", i, p)
		}
	}
	for i := 0; i < len(verts); i += 2 {
		a, b := verts[i].Position, verts[i+1].Position
		differ := 0
		for k := range 3 {
			if a[k] != b[k] {
				differ++
			}
		}
		if differ != 1 {
			t.Errorf("edge %d from %v to %v is not axis aligned", i/2, a, b)
		}
	}
}

func TestGroundGrid(t *testing.T) {
	verts := GroundGrid(math.Vec3{X: 0.4, Z: -0.4}, 2, 1, -0.2)
	// cells = 2 → 5 lines per axis, 2 vertices each
	if len(verts) != 20 {
		t.Fatalf("got %d vertices, want 20", len(verts))
	}
	for _, v := range verts {
		if v.Position[1] != -0.2 {
			t.Fatalf("grid vertex off plane: %v", v.Position)
		}
	}
	if GroundGrid(math.Vec3{}, 2, 0, 0) != nil {
		t.Error("zero cell size should produce no grid")
	}
}

type straightFrames int

func (s straightFrames) NumPoints() int          { return int(s) }
func (s straightFrames) PointAt(i int) math.Vec3 { return math.Vec3{Z: float32(i)} }
func (s straightFrames) TangentAt(int) math.Vec3 { return math.Forward }
func (s straightFrames) NormalAt(int) math.Vec3  { return math.Right }

func TestPathFrames(t *testing.T) {
	tests := []struct {
		name   string
		points int
		stride int
		want   int
	}{
		{"empty", 0, 1, 0},
		{"single point", 1, 1, 6},
		{"every vertex", 5, 1, 8 + 5*6},
		{"every other vertex", 5, 2, 8 + 3*6},
		{"zero stride", 3, 0, 4 + 3*6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PathFrames(straightFrames(tt.points), tt.stride, 0.5)
			if len(got) != tt.want {
				t.Errorf("got %d vertices, want %d", len(got), tt.want)
			}
		})
	}

	// The up axis of a forward/right frame points up.
	verts := PathFrames(straightFrames(1), 1, 1)
	up := verts[5].Position
	if up != [3]float32{0, 1, 0} {
		t.Errorf("up axis tip = %v, want (0, 1, 0)", up)
	}
}

func TestFlipRGBA(t *testing.T) {
	// 1x2 image: bottom row red, top row blue as OpenGL reads it.
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	img, err := FlipRGBA(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRGBA failed: %v", err)
	}
	if img.Pix[2] != 255 || img.Pix[4] != 255 {
		t.Errorf("rows not flipped: %v", img.Pix)
	}

	if _, err := FlipRGBA(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "road")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	name, err := sc.CaptureFromPixels(make([]byte, 4*4*4), 4, 4)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if want := dir + "/road_2024-05-01_12-30-00.png"; name != want {
		t.Errorf("filename = %s, want %s", name, want)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}
