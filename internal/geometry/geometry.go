// Package geometry holds the triangle-mesh geometry handles displayed by the
// viewer, together with the loaders that produce them from files.
package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrEmptyMesh is returned when a source yields no triangles.
var ErrEmptyMesh = errors.New("geometry contains no triangles")

// Vec3 is a point or direction in model space.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length, or the zero vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Triangle is a single facet; vertices are wound counter-clockwise when
// seen from outside.
type Triangle [3]Vec3

// Normal returns the unit facet normal computed from the winding.
func (t Triangle) Normal() Vec3 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Normalize()
}

// Geometry is an immutable triangle mesh. Once built it is shared by
// reference between a part, its drawables and any copies of them.
type Geometry struct {
	name      string
	source    string
	triangles []Triangle
	min, max  Vec3
}

// New builds a Geometry from triangles. The slice is retained.
func New(name, source string, triangles []Triangle) (*Geometry, error) {
	if len(triangles) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyMesh)
	}
	g := &Geometry{
		name:      name,
		source:    source,
		triangles: triangles,
	}
	g.computeBounds()
	return g, nil
}

func (g *Geometry) computeBounds() {
	g.min = g.triangles[0][0]
	g.max = g.triangles[0][0]
	for _, t := range g.triangles {
		for _, v := range t {
			g.min.X = math32.Min(g.min.X, v.X)
			g.min.Y = math32.Min(g.min.Y, v.Y)
			g.min.Z = math32.Min(g.min.Z, v.Z)
			g.max.X = math32.Max(g.max.X, v.X)
			g.max.Y = math32.Max(g.max.Y, v.Y)
			g.max.Z = math32.Max(g.max.Z, v.Z)
		}
	}
}

// Name returns the solid name recorded by the source, if any.
func (g *Geometry) Name() string { return g.name }

// Source returns the path the geometry was loaded from.
func (g *Geometry) Source() string { return g.source }

// Triangles returns the facets. Callers must not modify the slice.
func (g *Geometry) Triangles() []Triangle { return g.triangles }

// TriangleCount returns the number of facets.
func (g *Geometry) TriangleCount() int { return len(g.triangles) }

// Bounds returns the axis-aligned bounding box.
func (g *Geometry) Bounds() (min, max Vec3) { return g.min, g.max }

// Center returns the centre of the bounding box.
func (g *Geometry) Center() Vec3 {
	return g.min.Add(g.max).Scale(0.5)
}

// Radius returns half the bounding box diagonal.
func (g *Geometry) Radius() float32 {
	return g.max.Sub(g.min).Length() / 2
}
