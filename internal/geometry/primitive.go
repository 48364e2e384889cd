package geometry

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PrimitiveKind selects the solid built by Primitive.
type PrimitiveKind string

const (
	PrimitiveBox      PrimitiveKind = "box"
	PrimitiveCylinder PrimitiveKind = "cylinder"
	PrimitiveSphere   PrimitiveKind = "sphere"
)

// PrimitiveKinds lists the kinds in menu order.
var PrimitiveKinds = []PrimitiveKind{PrimitiveBox, PrimitiveCylinder, PrimitiveSphere}

// defaultMeshCells is the marching cubes resolution along the longest axis.
const defaultMeshCells = 48

// Primitive tessellates a solid of the given kind whose bounding box is
// roughly size units along each axis. cells <= 0 uses the default resolution.
func Primitive(kind PrimitiveKind, size float64, cells int) (*Geometry, error) {
	if size <= 0 {
		return nil, fmt.Errorf("primitive size must be > 0, got %g", size)
	}
	if cells <= 0 {
		cells = defaultMeshCells
	}

	var (
		s   sdf.SDF3
		err error
	)
	switch kind {
	case PrimitiveBox:
		s, err = sdf.Box3D(v3.Vec{X: size, Y: size, Z: size}, 0)
	case PrimitiveCylinder:
		s, err = sdf.Cylinder3D(size, size/2, 0)
	case PrimitiveSphere:
		s, err = sdf.Sphere3D(size / 2)
	default:
		return nil, fmt.Errorf("unknown primitive %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", kind, err)
	}

	mesh := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	tris := make([]Triangle, 0, len(mesh))
	for _, t := range mesh {
		var tri Triangle
		for j := 0; j < 3; j++ {
			v := t[j]
			tri[j] = Vec3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
		}
		tris = append(tris, tri)
	}
	return New(string(kind), "", tris)
}
