package geometry

import (
	"fmt"
	"io"

	"github.com/hschendel/stl"
)

// LoadSTL reads a binary or ASCII STL file.
func LoadSTL(path string) (*Geometry, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL %s: %w", path, err)
	}
	return fromSolid(solid, path)
}

// ReadSTL parses STL data from r. source is recorded on the result.
func ReadSTL(r io.ReadSeeker, source string) (*Geometry, error) {
	solid, err := stl.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse STL: %w", err)
	}
	return fromSolid(solid, source)
}

func fromSolid(solid *stl.Solid, source string) (*Geometry, error) {
	tris := make([]Triangle, len(solid.Triangles))
	for i, t := range solid.Triangles {
		for j, v := range t.Vertices {
			tris[i][j] = Vec3{X: v[0], Y: v[1], Z: v[2]}
		}
	}
	return New(solid.Name, source, tris)
}

// WriteSTL writes g as a binary STL file. Used to export generated
// primitives so they can be reopened later.
func WriteSTL(path string, g *Geometry) error {
	solid := &stl.Solid{
		Name:      g.Name(),
		Triangles: make([]stl.Triangle, len(g.triangles)),
	}
	for i, t := range g.triangles {
		n := t.Normal()
		solid.Triangles[i].Normal = stl.Vec3{n.X, n.Y, n.Z}
		for j, v := range t {
			solid.Triangles[i].Vertices[j] = stl.Vec3{v.X, v.Y, v.Z}
		}
	}
	if err := solid.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write STL %s: %w", path, err)
	}
	return nil
}
