package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/roadgen/pkg/math"
)

// OBJ errors.
var (
	ErrOBJIndex  = errors.New("obj: face index out of range")
	ErrOBJSyntax = errors.New("obj: malformed record")
)

// OBJGroup is a named set of triangles drawn with one material.
type OBJGroup struct {
	Name     string
	Material string
	Indices  []uint32 // zero-based, three per triangle
}

// OBJ is an indexed triangle mesh whose positions, texture coordinates and
// normals share one index, as GPU meshes do.
type OBJ struct {
	Name        string
	MaterialLib string
	Positions   []math.Vec3
	TexCoords   []math.Vec2
	Normals     []math.Vec3
	Groups      []OBJGroup
}

// Triangles returns the total triangle count over all groups.
func (o *OBJ) Triangles() int {
	n := 0
	for _, g := range o.Groups {
		n += len(g.Indices) / 3
	}
	return n
}

// WriteOBJ writes o as Wavefront OBJ. Faces reference v/vt/vn with the same
// one-based index.
func WriteOBJ(w io.Writer, o *OBJ) error {
	if len(o.TexCoords) != len(o.Positions) || len(o.Normals) != len(o.Positions) {
		return fmt.Errorf("obj: attribute counts differ (%d positions, %d uvs, %d normals)",
			len(o.Positions), len(o.TexCoords), len(o.Normals))
	}

	bw := bufio.NewWriter(w)
	if o.MaterialLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", o.MaterialLib)
	}
	if o.Name != "" {
		fmt.Fprintf(bw, "o %s\n", o.Name)
	}

	for _, p := range o.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(p.X), ftoa(p.Y), ftoa(p.Z))
	}
	for _, t := range o.TexCoords {
		fmt.Fprintf(bw, "vt %s %s\n", ftoa(t.X), ftoa(t.Y))
	}
	for _, n := range o.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(n.X), ftoa(n.Y), ftoa(n.Z))
	}

	count := uint32(len(o.Positions))
	for _, g := range o.Groups {
		if len(g.Indices)%3 != 0 {
			return fmt.Errorf("obj: group %s has %d indices, not a multiple of 3", g.Name, len(g.Indices))
		}
		fmt.Fprintf(bw, "g %s\n", g.Name)
		if g.Material != "" {
			fmt.Fprintf(bw, "usemtl %s\n", g.Material)
		}
		for k := 0; k < len(g.Indices); k += 3 {
			a, b, c := g.Indices[k], g.Indices[k+1], g.Indices[k+2]
			if a >= count || b >= count || c >= count {
				return fmt.Errorf("%w: group %s triangle %d", ErrOBJIndex, g.Name, k/3)
			}
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a+1, a+1, a+1, b+1, b+1, b+1, c+1, c+1, c+1)
		}
	}

	return bw.Flush()
}

// ParseOBJ reads the subset of OBJ that WriteOBJ produces: triangles whose
// v/vt/vn indices agree. Comments and unknown records are skipped.
func ParseOBJ(data []byte) (*OBJ, error) {
	o := &OBJ{}
	var group *OBJGroup

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "mtllib":
			o.MaterialLib = strings.Join(fields[1:], " ")
		case "o":
			o.Name = strings.Join(fields[1:], " ")
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vec := math.Vec3{X: v[0], Y: v[1], Z: v[2]}
			if fields[0] == "v" {
				o.Positions = append(o.Positions, vec)
			} else {
				o.Normals = append(o.Normals, vec)
			}
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			o.TexCoords = append(o.TexCoords, math.Vec2{X: v[0], Y: v[1]})
		case "g":
			o.Groups = append(o.Groups, OBJGroup{Name: strings.Join(fields[1:], " ")})
			group = &o.Groups[len(o.Groups)-1]
		case "usemtl":
			if group == nil {
				o.Groups = append(o.Groups, OBJGroup{Name: "default"})
				group = &o.Groups[len(o.Groups)-1]
			}
			group.Material = strings.Join(fields[1:], " ")
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: %w: only triangles are supported", line, ErrOBJSyntax)
			}
			if group == nil {
				o.Groups = append(o.Groups, OBJGroup{Name: "default"})
				group = &o.Groups[len(o.Groups)-1]
			}
			for _, ref := range fields[1:] {
				idx, err := parseFaceRef(ref, len(o.Positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				group.Indices = append(group.Indices, idx)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

func parseFaceRef(ref string, count int) (uint32, error) {
	parts := strings.Split(ref, "/")
	first, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: face %q", ErrOBJSyntax, ref)
	}
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		if other, err := strconv.Atoi(p); err != nil || other != first {
			return 0, fmt.Errorf("%w: face %q does not share one index", ErrOBJSyntax, ref)
		}
	}
	if first < 1 || first > count {
		return 0, fmt.Errorf("%w: %d", ErrOBJIndex, first)
	}
	return uint32(first - 1), nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d values, got %d", ErrOBJSyntax, n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOBJSyntax, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// Material is one entry of an MTL library.
type Material struct {
	Name    string
	Diffuse [3]float32
	Texture string  // optional diffuse map
	TileV   float32 // texture repeat along V; 0 means 1
}

// WriteMTL writes a material library for the groups of an OBJ.
func WriteMTL(w io.Writer, materials []Material) error {
	bw := bufio.NewWriter(w)
	for i, m := range materials {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "newmtl %s\n", m.Name)
		fmt.Fprintf(bw, "Kd %s %s %s\n", ftoa(m.Diffuse[0]), ftoa(m.Diffuse[1]), ftoa(m.Diffuse[2]))
		if m.Texture != "" {
			tile := m.TileV
			if tile == 0 {
				tile = 1
			}
			fmt.Fprintf(bw, "map_Kd -s 1 %s 1 %s\n", ftoa(tile), m.Texture)
		}
	}
	return bw.Flush()
}
