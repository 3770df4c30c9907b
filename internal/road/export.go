package road

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/roadgen/pkg/formats"
)

// Group and material names used when exporting the three surfaces.
const (
	GroupTop    = "top"
	GroupBottom = "bottom"
	GroupSides  = "sides"
)

// OBJ converts the mesh into an exportable OBJ with one group per surface.
// Each group's material carries the group's name.
func (m *Mesh) OBJ(name, materialLib string) *formats.OBJ {
	return &formats.OBJ{
		Name:        name,
		MaterialLib: materialLib,
		Positions:   m.Vertices,
		TexCoords:   m.UVs,
		Normals:     m.Normals,
		Groups: []formats.OBJGroup{
			{Name: GroupTop, Material: GroupTop, Indices: m.Top},
			{Name: GroupBottom, Material: GroupBottom, Indices: m.Bottom},
			{Name: GroupSides, Material: GroupSides, Indices: m.Sides},
		},
	}
}

// SurfaceColors are diffuse colors for the three surfaces.
type SurfaceColors struct {
	Top, Bottom, Sides [3]float32
}

// Materials returns the material library matching Mesh.OBJ. The top
// material repeats its texture tiling times along the road.
func Materials(colors SurfaceColors, topTexture string, tiling float32) []formats.Material {
	return []formats.Material{
		{Name: GroupTop, Diffuse: colors.Top, Texture: topTexture, TileV: tiling},
		{Name: GroupBottom, Diffuse: colors.Bottom},
		{Name: GroupSides, Diffuse: colors.Sides},
	}
}

// ExportOptions controls how a snapshot is written to disk.
type ExportOptions struct {
	Name       string // OBJ object name
	Colors     SurfaceColors
	TopTexture string
}

// Export writes the snapshot's mesh to objPath and its material library
// next to it, with the extension replaced by .mtl. It returns the MTL path.
func (s *Snapshot) Export(objPath string, opts ExportOptions) (string, error) {
	if objPath == "" {
		return "", errors.New("no output file given")
	}
	if strings.EqualFold(filepath.Ext(objPath), ".mtl") {
		return "", fmt.Errorf("output file %s would be overwritten by its material library", objPath)
	}
	if opts.Name == "" {
		opts.Name = "road"
	}

	mtlPath := strings.TrimSuffix(objPath, filepath.Ext(objPath)) + ".mtl"
	if dir := filepath.Dir(objPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	obj := s.Mesh.OBJ(opts.Name, filepath.Base(mtlPath))
	if err := writeFile(objPath, func(w io.Writer) error { return formats.WriteOBJ(w, obj) }); err != nil {
		return "", err
	}

	mats := Materials(opts.Colors, opts.TopTexture, s.Settings.TextureTiling())
	if err := writeFile(mtlPath, func(w io.Writer) error { return formats.WriteMTL(w, mats) }); err != nil {
		return "", err
	}
	return mtlPath, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
