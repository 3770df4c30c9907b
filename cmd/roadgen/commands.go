package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/road"
	"github.com/Faultbox/roadgen/pkg/formats"
)

// generate builds the configured road.
func generate(cfg *config.Config) (*road.Snapshot, error) {
	r := road.New(logger.Named("road"))
	if err := r.Regenerate(cfg.Road); err != nil {
		return nil, err
	}
	return r.Snapshot(), nil
}

func cmdInfo(cfg *config.Config, out io.Writer) error {
	snap, err := generate(cfg)
	if err != nil {
		return err
	}
	s, path, mesh := snap.Settings, snap.Path, snap.Mesh

	turn := "right"
	if s.LeftTurn {
		turn = "left"
	}

	fmt.Fprintf(out, "Road: %s turn\n", turn)
	fmt.Fprintf(out, "  Straight leg:  %.3f m\n", s.StraightLegLength)
	fmt.Fprintf(out, "  Arc:           %.3f m on radius %.3f m (%.2f°)\n",
		s.ArcLength, s.CircleRadius, s.TurnAngleDegrees())
	fmt.Fprintf(out, "  Total length:  %.3f m\n", path.Length)
	fmt.Fprintf(out, "  Cross-section: %.3f m half-width, %.3f m thick\n", s.Width, s.Thickness)
	fmt.Fprintf(out, "  Texture tiling: %.3f\n", s.TextureTiling())

	c := path.Counts
	fmt.Fprintf(out, "\nPath: %d points (%d/m)\n", path.NumPoints(), c.VerticesPerMeter)
	fmt.Fprintf(out, "  %-6s %d\n", road.SegmentEntry.String()+":", c.Leg)
	fmt.Fprintf(out, "  %-6s %d\n", road.SegmentArc.String()+":", c.Arc)
	fmt.Fprintf(out, "  %-6s %d\n", road.SegmentExit.String()+":", c.Exit)

	tris := mesh.Triangles()
	fmt.Fprintf(out, "\nMesh: %d vertices, %d triangles\n", len(mesh.Vertices), tris.Top+tris.Bottom+tris.Sides)
	fmt.Fprintf(out, "  top:    %d\n", tris.Top)
	fmt.Fprintf(out, "  bottom: %d\n", tris.Bottom)
	fmt.Fprintf(out, "  sides:  %d\n", tris.Sides)

	b := mesh.Bounds
	fmt.Fprintf(out, "  bounds: (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	return nil
}

// pathRecord is the YAML form of one path vertex.
type pathRecord struct {
	Index    int        `yaml:"index"`
	Segment  string     `yaml:"segment"`
	Position [3]float32 `yaml:"position,flow"`
	Tangent  [3]float32 `yaml:"tangent,flow"`
	Normal   [3]float32 `yaml:"normal,flow"`
	Distance float32    `yaml:"distance"`
	Time     float32    `yaml:"time"`
}

type pathDump struct {
	Length float32           `yaml:"length"`
	Counts road.VertexCounts `yaml:"counts"`
	Points []pathRecord      `yaml:"points"`
}

func cmdPath(cfg *config.Config, out io.Writer) error {
	snap, err := generate(cfg)
	if err != nil {
		return err
	}
	path := snap.Path

	dump := pathDump{
		Length: path.Length,
		Counts: path.Counts,
		Points: make([]pathRecord, path.NumPoints()),
	}
	for i := range dump.Points {
		s := path.At(i)
		dump.Points[i] = pathRecord{
			Index:    i,
			Segment:  path.Segment(i).String(),
			Position: s.Position.Array(),
			Tangent:  s.Tangent.Array(),
			Normal:   s.Normal.Array(),
			Distance: s.Distance,
			Time:     s.Time,
		}
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return fmt.Errorf("encoding path: %w", err)
	}
	return enc.Close()
}

func cmdExport(cfg *config.Config, args []string, out io.Writer) error {
	objPath := cfg.Export.OBJPath
	if len(args) > 0 {
		objPath = args[0]
	}

	snap, err := generate(cfg)
	if err != nil {
		return err
	}

	mtlPath, err := snap.Export(objPath, cfg.ExportOptions())
	if err != nil {
		return err
	}

	tris := snap.Mesh.Triangles()
	logger.Info("mesh exported",
		zap.String("obj", objPath),
		zap.String("mtl", mtlPath),
		zap.Int("vertices", len(snap.Mesh.Vertices)),
		zap.Int("triangles", tris.Top+tris.Bottom+tris.Sides),
	)
	fmt.Fprintf(out, "Wrote %s and %s\n", objPath, mtlPath)
	return nil
}

func cmdProbe(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: roadgen probe <distance>")
	}
	d, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return fmt.Errorf("invalid distance %q: %w", args[0], err)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("invalid distance %q: must be finite", args[0])
	}

	snap, err := generate(cfg)
	if err != nil {
		return err
	}

	// World space, so the numbers match what a host scene sees.
	s := snap.Placement().SampleAtDistance(float32(d))

	fmt.Fprintf(out, "distance: %.3f m (t = %.4f)\n", s.Distance, s.Time)
	fmt.Fprintf(out, "position: (%.4f, %.4f, %.4f)\n", s.Position.X, s.Position.Y, s.Position.Z)
	fmt.Fprintf(out, "tangent:  (%.4f, %.4f, %.4f)\n", s.Tangent.X, s.Tangent.Y, s.Tangent.Z)
	fmt.Fprintf(out, "normal:   (%.4f, %.4f, %.4f)\n", s.Normal.X, s.Normal.Y, s.Normal.Z)
	return nil
}

func cmdInspect(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: roadgen inspect <file.obj>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	fmt.Fprintf(out, "%s: object %q, %d vertices, %d triangles\n",
		args[0], obj.Name, len(obj.Positions), obj.Triangles())
	if obj.MaterialLib != "" {
		fmt.Fprintf(out, "  material library: %s\n", obj.MaterialLib)
	}
	for _, g := range obj.Groups {
		fmt.Fprintf(out, "  %-8s %6d triangles  material %s\n", g.Name, len(g.Indices)/3, g.Material)
	}
	return nil
}

func cmdConfig(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Saved config to %s\n", args[0])
		return nil
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
