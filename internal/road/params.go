package road

import (
	"math"
)

// Default generation parameters.
const (
	DefaultStraightLegLength = 15
	DefaultArcLength         = 10
	DefaultCircleRadius      = 30
	DefaultDegreesPerVertex  = 1
)

// MaxVertices bounds the number of path vertices a parameter set may produce.
// The mesh holds VerticesPerPoint times as many.
const MaxVertices = 1 << 18

// Params are the scalar inputs of the path sampler.
type Params struct {
	StraightLegLength float32 `yaml:"straight_leg_length"`
	ArcLength         float32 `yaml:"arc_length"`
	CircleRadius      float32 `yaml:"circle_radius"`
	LeftTurn          bool    `yaml:"left_turn"`

	// DegreesPerVertex is the angular resolution of the arc. The resulting
	// vertex density is applied to the straight legs as well. Zero means
	// DefaultDegreesPerVertex.
	DegreesPerVertex float32 `yaml:"degrees_per_vertex"`
}

// DefaultParams returns a 15 m / 10 m arc on a 30 m radius right turn.
func DefaultParams() Params {
	return Params{
		StraightLegLength: DefaultStraightLegLength,
		ArcLength:         DefaultArcLength,
		CircleRadius:      DefaultCircleRadius,
		DegreesPerVertex:  DefaultDegreesPerVertex,
	}
}

// TurnAngle returns the arc's central angle in radians.
func (p Params) TurnAngle() float64 {
	return float64(p.ArcLength) / float64(p.CircleRadius)
}

// TurnAngleDegrees returns the arc's central angle in degrees.
func (p Params) TurnAngleDegrees() float64 {
	return p.TurnAngle() * 180 / math.Pi
}

// TotalLength returns the length of entry leg, arc and exit leg combined.
func (p Params) TotalLength() float32 {
	return 2*p.StraightLegLength + p.ArcLength
}

// Validate checks the dimensions and the turn angle precondition.
func (p Params) Validate() error {
	dims := []struct {
		name  string
		value float32
	}{
		{"straight_leg_length", p.StraightLegLength},
		{"arc_length", p.ArcLength},
		{"circle_radius", p.CircleRadius},
		{"degrees_per_vertex", p.degreesPerVertex()},
	}
	for _, d := range dims {
		v := float64(d.value)
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return &ConfigError{Field: d.name, Value: v, Err: ErrInvalidParams}
		}
	}

	if angle := p.TurnAngle(); angle >= math.Pi {
		return &ConfigError{Field: "turn_angle", Value: angle, Err: ErrTurnAngle}
	}

	// Sized in float64 so extreme densities cannot overflow int.
	_, leg, arc := p.sizing()
	if total := 2*leg + arc + 1; !(total <= MaxVertices) {
		return &ConfigError{Field: "vertex_count", Value: total, Err: ErrInvalidParams}
	}
	return nil
}

func (p Params) degreesPerVertex() float32 {
	if p.DegreesPerVertex == 0 {
		return DefaultDegreesPerVertex
	}
	return p.DegreesPerVertex
}

// VertexCounts holds the per-segment sizing computed before any allocation.
type VertexCounts struct {
	VerticesPerMeter int `yaml:"vertices_per_meter"`
	Leg              int `yaml:"leg"`  // vertices on the entry leg
	Arc              int `yaml:"arc"`  // vertices on the arc
	Exit             int `yaml:"exit"` // vertices on the exit leg, including the closing end point
}

// Total returns the number of path vertices.
func (c VertexCounts) Total() int {
	return c.Leg + c.Arc + c.Exit
}

// Counts derives the vertex density from the arc's angular resolution and
// applies it to every segment. Each segment gets at least one vertex.
// Counts must only be called on parameters that pass Validate.
func (p Params) Counts() VertexCounts {
	perMeter, leg, arc := p.sizing()
	return VertexCounts{
		VerticesPerMeter: int(perMeter),
		Leg:              int(leg),
		Arc:              int(arc),
		Exit:             int(leg) + 1,
	}
}

func (p Params) sizing() (perMeter, leg, arc float64) {
	intervals := p.TurnAngle() * (180 / math.Pi) / float64(p.degreesPerVertex())
	perMeter = math.RoundToEven(intervals / float64(p.ArcLength))
	leg = max(1, math.RoundToEven(float64(p.StraightLegLength)*perMeter))
	arc = max(1, math.RoundToEven(float64(p.ArcLength)*perMeter))
	return perMeter, leg, arc
}
