package road

import (
	"errors"
	gomath "math"
	"reflect"
	"testing"

	"github.com/Faultbox/roadgen/pkg/math"
)

const eps = 1e-4

func near(a, b, tol float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(tol)
}

func mustSample(t *testing.T, p Params) *Path {
	t.Helper()
	path, err := Sample(p)
	if err != nil {
		t.Fatalf("Sample(%+v) failed: %v", p, err)
	}
	return path
}

func TestSampleDefaultScenario(t *testing.T) {
	p := Params{StraightLegLength: 15, ArcLength: 10, CircleRadius: 30}
	path := mustSample(t, p)

	// 19.1 degrees over 10 m rounds to 2 vertices per meter.
	want := VertexCounts{VerticesPerMeter: 2, Leg: 30, Arc: 20, Exit: 31}
	if path.Counts != want {
		t.Errorf("counts = %+v, want %+v", path.Counts, want)
	}
	if path.NumPoints() != 81 {
		t.Errorf("NumPoints = %d, want 81", path.NumPoints())
	}
	if path.Length != 40 {
		t.Errorf("Length = %f, want 40", path.Length)
	}
	if path.ClosedLoop {
		t.Error("sampled path should never be a closed loop")
	}
	if path.Up != math.Up {
		t.Errorf("Up = %v, want %v", path.Up, math.Up)
	}
}

func TestSampleInvariants(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"right turn", Params{StraightLegLength: 15, ArcLength: 10, CircleRadius: 30}},
		{"left turn", Params{StraightLegLength: 15, ArcLength: 10, CircleRadius: 30, LeftTurn: true}},
		{"sharp left", Params{StraightLegLength: 5, ArcLength: 25, CircleRadius: 10, LeftTurn: true}},
		{"gentle right", Params{StraightLegLength: 40, ArcLength: 12, CircleRadius: 200}},
		{"coarse", Params{StraightLegLength: 15, ArcLength: 10, CircleRadius: 30, DegreesPerVertex: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := mustSample(t, tt.p)
			n := path.NumPoints()

			if n < 2 {
				t.Fatalf("expected at least 2 points, got %d", n)
			}
			for name, l := range map[string]int{
				"tangents": len(path.Tangents),
				"normals":  len(path.Normals),
				"lengths":  len(path.CumulativeLengths),
				"times":    len(path.Times),
			} {
				if l != n {
					t.Errorf("len(%s) = %d, want %d", name, l, n)
				}
			}
			if n != path.Counts.Total() {
				t.Errorf("NumPoints = %d, counts total = %d", n, path.Counts.Total())
			}

			if path.CumulativeLengths[0] != 0 {
				t.Errorf("first cumulative length = %f, want 0", path.CumulativeLengths[0])
			}
			if !near(path.CumulativeLengths[n-1], path.Length, eps) {
				t.Errorf("last cumulative length = %f, want %f", path.CumulativeLengths[n-1], path.Length)
			}
			if path.Times[0] != 0 {
				t.Errorf("first time = %f, want 0", path.Times[0])
			}
			if !near(path.Times[n-1], 1, eps) {
				t.Errorf("last time = %f, want 1", path.Times[n-1])
			}

			for i := 0; i < n; i++ {
				if i > 0 && path.CumulativeLengths[i] < path.CumulativeLengths[i-1] {
					t.Errorf("cumulative length decreases at %d", i)
				}
				if path.Times[i] != path.CumulativeLengths[i]/path.Length {
					t.Errorf("time[%d] = %f, want %f", i, path.Times[i], path.CumulativeLengths[i]/path.Length)
				}
				tan, nrm := path.Tangents[i], path.Normals[i]
				if !near(tan.Length(), 1, eps) || !near(nrm.Length(), 1, eps) {
					t.Errorf("vertex %d: |tangent| = %f, |normal| = %f", i, tan.Length(), nrm.Length())
				}
				if !near(tan.Dot(nrm), 0, eps) {
					t.Errorf("vertex %d: tangent·normal = %f", i, tan.Dot(nrm))
				}
				if nrm.Y != 0 || tan.Y != 0 {
					t.Errorf("vertex %d: directions leave the horizontal plane", i)
				}
			}
		})
	}
}

func TestSampleArcLengthParameterization(t *testing.T) {
	// Consecutive vertices are separated by (close to) the difference of
	// their cumulative lengths; the arc chords are slightly shorter.
	path := mustSample(t, Params{StraightLegLength: 15, ArcLength: 10, CircleRadius: 30, LeftTurn: true})
	for i := 1; i < path.NumPoints(); i++ {
		chord := path.Points[i].Distance(path.Points[i-1])
		step := path.CumulativeLengths[i] - path.CumulativeLengths[i-1]
		if chord > step+eps || chord < step*0.99 {
			t.Errorf("vertex %d: chord %f vs step %f", i, chord, step)
		}
	}
}

func TestSampleTurnAngleTooLarge(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"ten radians", Params{StraightLegLength: 15, ArcLength: 100, CircleRadius: 10}},
		{"half circle", Params{StraightLegLength: 15, ArcLength: float32(gomath.Pi), CircleRadius: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := Sample(tt.p)
			if path != nil {
				t.Error("expected no path on configuration error")
			}
			if !errors.Is(err, ErrTurnAngle) {
				t.Fatalf("expected ErrTurnAngle, got %v", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cfgErr.Field != "turn_angle" {
				t.Errorf("field = %q, want turn_angle", cfgErr.Field)
			}
		})
	}
}

func TestSampleInvalidDimensions(t *testing.T) {
	tests := []struct {
		name  string
		p     Params
		field string
	}{
		{"zero leg", Params{ArcLength: 10, CircleRadius: 30}, "straight_leg_length"},
		{"negative arc", Params{StraightLegLength: 15, ArcLength: -1, CircleRadius: 30}, "arc_length"},
		{"zero radius", Params{StraightLegLength: 15, ArcLength: 10}, "circle_radius"},
		{"nan radius", Params{StraightLegLength: 15, ArcLength: 10, CircleRadius: float32(gomath.NaN())}, "circle_radius"},
		{"negative resolution", Params{StraightLegLength: 15, ArcLength: 10, CircleRadius: 30, DegreesPerVertex: -1}, "degrees_per_vertex"},
		{"too many vertices", Params{StraightLegLength: 15, ArcLength: 1e-4, CircleRadius: 1e-4}, "vertex_count"},
		{"too fine a resolution", Params{StraightLegLength: 1000, ArcLength: 100, CircleRadius: 60, DegreesPerVertex: 1e-3}, "vertex_count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(tt.p)
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
			var cfgErr *ConfigError
			if errors.As(err, &cfgErr) && cfgErr.Field != tt.field {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestCountsClampToOneVertexPerSegment(t *testing.T) {
	// 90 degrees per vertex on a 19 degree arc rounds the density to zero.
	p := Params{StraightLegLength: 15, ArcLength: 10, CircleRadius: 30, DegreesPerVertex: 90}
	c := p.Counts()
	if c.VerticesPerMeter != 0 {
		t.Errorf("VerticesPerMeter = %d, want 0", c.VerticesPerMeter)
	}
	if c.Leg != 1 || c.Arc != 1 || c.Exit != 2 {
		t.Errorf("counts = %+v, want leg 1, arc 1, exit 2", c)
	}

	path := mustSample(t, p)
	if path.NumPoints() != 4 {
		t.Fatalf("NumPoints = %d, want 4", path.NumPoints())
	}
	if !near(path.Times[3], 1, eps) {
		t.Errorf("last time = %f, want 1", path.Times[3])
	}
}

func TestCountsRoundHalfToEven(t *testing.T) {
	// One vertex per meter on a 50 m radius; 2.5 m of leg rounds to 2.
	p := Params{StraightLegLength: 2.5, ArcLength: 10, CircleRadius: 50}
	c := p.Counts()
	if c.VerticesPerMeter != 1 {
		t.Fatalf("VerticesPerMeter = %d, want 1", c.VerticesPerMeter)
	}
	if c.Leg != 2 || c.Arc != 10 {
		t.Errorf("counts = %+v, want leg 2, arc 10", c)
	}
}

func TestSampleEntryLeg(t *testing.T) {
	path := mustSample(t, DefaultParams())
	if got, want := path.Points[0], (math.Vec3{Z: -15}); got != want {
		t.Errorf("first point = %v, want %v", got, want)
	}
	for i := 0; i < path.Counts.Leg; i++ {
		if path.Tangents[i] != math.Forward || path.Normals[i] != math.Right {
			t.Errorf("entry vertex %d has tangent %v normal %v", i, path.Tangents[i], path.Normals[i])
		}
		if path.Segment(i) != SegmentEntry {
			t.Errorf("vertex %d segment = %v, want entry", i, path.Segment(i))
		}
	}
}

func TestSampleArcContinuity(t *testing.T) {
	for _, left := range []bool{false, true} {
		p := DefaultParams()
		p.LeftTurn = left
		path := mustSample(t, p)

		first := path.Counts.Leg
		if !path.Points[first].ApproxEqual(math.Vec3{}, eps) {
			t.Errorf("left=%v: arc starts at %v, want origin", left, path.Points[first])
		}
		if !path.Tangents[first].ApproxEqual(math.Forward, eps) {
			t.Errorf("left=%v: arc start tangent %v, want %v", left, path.Tangents[first], math.Forward)
		}
		if !path.Normals[first].ApproxEqual(math.Right, eps) {
			t.Errorf("left=%v: arc start normal %v, want %v", left, path.Normals[first], math.Right)
		}
		if path.Segment(first) != SegmentArc {
			t.Errorf("left=%v: vertex %d segment = %v, want arc", left, first, path.Segment(first))
		}

		// Every arc vertex lies on the turn circle.
		center := math.Vec3{X: p.CircleRadius}
		if left {
			center = center.Neg()
		}
		for i := first; i < first+path.Counts.Arc; i++ {
			if r := path.Points[i].Distance(center); !near(r, p.CircleRadius, 1e-3) {
				t.Errorf("left=%v: vertex %d at radius %f", left, i, r)
			}
		}
	}
}

func TestSampleExitLegHeading(t *testing.T) {
	for _, left := range []bool{false, true} {
		p := DefaultParams()
		p.LeftTurn = left
		path := mustSample(t, p)

		theta := p.TurnAngle()
		sign := float32(1)
		if left {
			sign = -1
		}
		want := math.Vec3{X: sign * float32(gomath.Sin(theta)), Z: float32(gomath.Cos(theta))}

		exit := path.Counts.Leg + path.Counts.Arc
		for i := exit; i < path.NumPoints(); i++ {
			if !path.Tangents[i].ApproxEqual(want, eps) {
				t.Errorf("left=%v: exit vertex %d tangent %v, want %v", left, i, path.Tangents[i], want)
			}
			if path.Segment(i) != SegmentExit {
				t.Errorf("left=%v: vertex %d segment = %v", left, i, path.Segment(i))
			}
		}

		last := path.Points[path.NumPoints()-1]
		if d := last.Distance(path.Points[exit]); !near(d, p.StraightLegLength, 1e-3) {
			t.Errorf("left=%v: exit leg spans %f, want %f", left, d, p.StraightLegLength)
		}
		if (last.X < 0) != left {
			t.Errorf("left=%v: road ends at x=%f", left, last.X)
		}
	}
}

func TestSampleIsDeterministic(t *testing.T) {
	p := Params{StraightLegLength: 12, ArcLength: 7, CircleRadius: 9, LeftTurn: true}
	a := mustSample(t, p)
	b := mustSample(t, p)
	if !reflect.DeepEqual(a, b) {
		t.Error("sampling the same parameters twice gave different paths")
	}
}

func TestSampleAtDistance(t *testing.T) {
	path := mustSample(t, DefaultParams())

	tests := []struct {
		name string
		d    float32
		want math.Vec3
	}{
		{"before start", -5, math.Vec3{Z: -15}},
		{"mid entry leg", 7.25, math.Vec3{Z: -7.75}},
		{"arc start", 15, math.Vec3{}},
		{"past end", 100, path.Points[path.NumPoints()-1]},
		{"NaN", float32(gomath.NaN()), math.Vec3{Z: -15}},
		{"+Inf", float32(gomath.Inf(1)), path.Points[path.NumPoints()-1]},
		{"-Inf", float32(gomath.Inf(-1)), math.Vec3{Z: -15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := path.SampleAtDistance(tt.d)
			if !s.Position.ApproxEqual(tt.want, 1e-3) {
				t.Errorf("position = %v, want %v", s.Position, tt.want)
			}
			if !near(s.Tangent.Length(), 1, eps) {
				t.Errorf("tangent not unit: %v", s.Tangent)
			}
		})
	}

	if s := (&Path{}).SampleAtDistance(3); s != (PathSample{}) {
		t.Errorf("empty path sample = %+v, want zero", s)
	}
}

func TestPathBounds(t *testing.T) {
	path := mustSample(t, DefaultParams())
	for i, p := range path.Points {
		if p.Min(path.Bounds.Min) != path.Bounds.Min || p.Max(path.Bounds.Max) != path.Bounds.Max {
			t.Fatalf("point %d %v outside bounds %+v", i, p, path.Bounds)
		}
	}
	if path.Bounds.Min.Z != -15 {
		t.Errorf("bounds min z = %f, want -15", path.Bounds.Min.Z)
	}
}

func TestTurnAngleDegrees(t *testing.T) {
	tests := []struct {
		p    Params
		want float64
	}{
		{Params{ArcLength: 10, CircleRadius: 30}, 19.0986},
		{Params{ArcLength: float32(gomath.Pi) * 5, CircleRadius: 10}, 90},
	}
	for _, tt := range tests {
		if got := tt.p.TurnAngleDegrees(); gomath.Abs(got-tt.want) > 1e-3 {
			t.Errorf("TurnAngleDegrees(%+v) = %f, want %f", tt.p, got, tt.want)
		}
	}
}
