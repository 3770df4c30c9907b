package road

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// MaxThickness is the thickest slab the road accepts.
const MaxThickness = 0.5

// Settings is everything a regeneration depends on.
type Settings struct {
	Params     `yaml:",inline"`
	Width      float32   `yaml:"width"`
	Thickness  float32   `yaml:"thickness"`
	ClosedLoop bool      `yaml:"closed_loop"`
	Transform  Transform `yaml:"transform"`
}

// DefaultSettings returns the default road: 0.4 m half-width, 0.15 m thick.
func DefaultSettings() Settings {
	return Settings{
		Params:    DefaultParams(),
		Width:     0.4,
		Thickness: 0.15,
	}
}

// TextureTiling is the V-axis repeat the top material should use so one
// texture tile spans roughly one straight leg.
func (s Settings) TextureTiling() float32 {
	return s.StraightLegLength
}

// Snapshot is one complete, immutable generation result.
type Snapshot struct {
	Settings Settings
	Path     *Path
	Mesh     *Mesh
}

// Placement returns the snapshot's path in world space.
func (s *Snapshot) Placement() Placement {
	return NewPlacement(s.Path, s.Settings.Transform)
}

// Road owns the current generation result and rebuilds it on request.
// Regenerate calls are serialized; readers always see a complete snapshot.
type Road struct {
	log     *zap.Logger
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// New returns a road with an empty snapshot. A nil logger disables logging.
func New(log *zap.Logger) *Road {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Road{log: log}
	r.current.Store(&Snapshot{Path: &Path{}, Mesh: &Mesh{}})
	return r
}

// Snapshot returns the current generation result.
func (r *Road) Snapshot() *Snapshot {
	return r.current.Load()
}

// Settings returns the settings of the current snapshot.
func (r *Road) Settings() Settings {
	return r.current.Load().Settings
}

// Regenerate rebuilds the road for s. The path is resampled only when the
// generation parameters changed, and the mesh only when the path or the
// cross-section changed. On a configuration error the previous snapshot
// stays current and the error is returned.
func (r *Road) Regenerate(s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s = r.clamp(s)
	prev := r.current.Load()
	next := &Snapshot{Settings: s, Path: prev.Path, Mesh: prev.Mesh}

	resample := prev.Path.NumPoints() == 0 || s.Params != prev.Settings.Params
	if resample {
		path, err := Sample(s.Params)
		if err != nil {
			var cfgErr *ConfigError
			if errors.As(err, &cfgErr) {
				r.log.Error("road configuration rejected, keeping previous geometry",
					zap.String("field", cfgErr.Field),
					zap.Float64("value", cfgErr.Value),
					zap.Error(cfgErr.Err),
				)
			}
			return err
		}
		next.Path = path
		r.log.Debug("path sampled",
			zap.Int("points", path.NumPoints()),
			zap.Int("vertices_per_meter", path.Counts.VerticesPerMeter),
			zap.Float32("length", path.Length),
			zap.Bool("left_turn", s.LeftTurn),
		)
	}

	remesh := resample || s.Width != prev.Settings.Width ||
		s.Thickness != prev.Settings.Thickness || s.ClosedLoop != prev.Settings.ClosedLoop
	if remesh {
		if s.ClosedLoop {
			r.log.Warn("closed loop requested but the sampler never produces matching end points")
		}
		next.Mesh = BuildMesh(next.Path, s.Width, s.Thickness, s.ClosedLoop)
		tris := next.Mesh.Triangles()
		r.log.Debug("mesh built",
			zap.Int("vertices", len(next.Mesh.Vertices)),
			zap.Int("top_triangles", tris.Top),
			zap.Int("bottom_triangles", tris.Bottom),
			zap.Int("side_triangles", tris.Sides),
		)
	}

	r.current.Store(next)
	return nil
}

func (r *Road) clamp(s Settings) Settings {
	if s.Thickness < 0 || s.Thickness > MaxThickness {
		clamped := min(max(s.Thickness, 0), MaxThickness)
		r.log.Warn("thickness out of range, clamping",
			zap.Float32("thickness", s.Thickness),
			zap.Float32("clamped", clamped),
		)
		s.Thickness = clamped
	}
	return s
}
