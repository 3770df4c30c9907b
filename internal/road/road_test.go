package road

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRoad() (*Road, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(zap.New(core)), logs
}

func TestRoadStartsEmpty(t *testing.T) {
	r := New(nil)
	snap := r.Snapshot()
	if snap.Path.NumPoints() != 0 || len(snap.Mesh.Vertices) != 0 {
		t.Errorf("new road should have an empty snapshot, got %d points", snap.Path.NumPoints())
	}
}

func TestRoadRegenerate(t *testing.T) {
	r, logs := newObservedRoad()
	s := DefaultSettings()

	if err := r.Regenerate(s); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	snap := r.Snapshot()
	if snap.Path.NumPoints() != 81 {
		t.Errorf("points = %d, want 81", snap.Path.NumPoints())
	}
	if len(snap.Mesh.Vertices) != 8*81 {
		t.Errorf("mesh vertices = %d, want %d", len(snap.Mesh.Vertices), 8*81)
	}
	if snap.Settings != s {
		t.Errorf("snapshot settings = %+v, want %+v", snap.Settings, s)
	}
	if r.Settings() != s {
		t.Errorf("Settings() = %+v, want %+v", r.Settings(), s)
	}
	if logs.FilterMessage("path sampled").Len() != 1 || logs.FilterMessage("mesh built").Len() != 1 {
		t.Errorf("expected one sample and one mesh log, got %v", logs.All())
	}
}

func TestRoadKeepsLastValidGeometry(t *testing.T) {
	r, logs := newObservedRoad()
	if err := r.Regenerate(DefaultSettings()); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	before := r.Snapshot()

	bad := DefaultSettings()
	bad.ArcLength = 100
	bad.CircleRadius = 10
	err := r.Regenerate(bad)
	if !errors.Is(err, ErrTurnAngle) {
		t.Fatalf("expected ErrTurnAngle, got %v", err)
	}
	if r.Snapshot() != before {
		t.Error("failed regeneration replaced the snapshot")
	}

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected one error log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["field"]; got != "turn_angle" {
		t.Errorf("logged field = %v, want turn_angle", got)
	}
}

func TestRoadRegenerateReusesPath(t *testing.T) {
	r := New(nil)
	s := DefaultSettings()
	if err := r.Regenerate(s); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	first := r.Snapshot()

	// Cross-section change: same path, new mesh.
	s.Width = 1.2
	if err := r.Regenerate(s); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	second := r.Snapshot()
	if second.Path != first.Path {
		t.Error("width change should not resample the path")
	}
	if second.Mesh == first.Mesh {
		t.Error("width change should rebuild the mesh")
	}

	// Placement change only: geometry untouched.
	s.Transform.Position.X = 10
	if err := r.Regenerate(s); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	third := r.Snapshot()
	if third.Path != second.Path || third.Mesh != second.Mesh {
		t.Error("transform change should reuse path and mesh")
	}
	if got := third.Placement().PointAt(0).X; got != 10 {
		t.Errorf("placed first point x = %f, want 10", got)
	}

	// Turn direction change: everything rebuilt.
	s.LeftTurn = true
	if err := r.Regenerate(s); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if r.Snapshot().Path == third.Path {
		t.Error("turn direction change should resample the path")
	}
}

func TestRoadClampsThickness(t *testing.T) {
	r, logs := newObservedRoad()
	s := DefaultSettings()
	s.Thickness = 2

	if err := r.Regenerate(s); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if got := r.Snapshot().Settings.Thickness; got != MaxThickness {
		t.Errorf("thickness = %f, want %f", got, float32(MaxThickness))
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Error("expected a clamp warning")
	}
}

func TestRoadClosedLoopWarns(t *testing.T) {
	r, logs := newObservedRoad()
	s := DefaultSettings()
	s.ClosedLoop = true

	if err := r.Regenerate(s); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	n := r.Snapshot().Path.NumPoints()
	if got := r.Snapshot().Mesh.Triangles().Top; got != 2*n {
		t.Errorf("top triangles = %d, want %d", got, 2*n)
	}
	if logs.FilterMessageSnippet("closed loop").Len() != 1 {
		t.Error("expected a closed loop warning")
	}
}

func TestTextureTiling(t *testing.T) {
	s := DefaultSettings()
	if s.TextureTiling() != s.StraightLegLength {
		t.Errorf("TextureTiling = %f, want %f", s.TextureTiling(), s.StraightLegLength)
	}
}
