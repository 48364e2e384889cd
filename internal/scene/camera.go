package scene

import (
	"github.com/chewxy/math32"

	"github.com/piwi3910/PartView/internal/geometry"
)

const (
	maxPitch    = math32.Pi/2 - 0.01
	nearPlane   = 1e-4
	minDistance = 1e-3
)

// Camera orbits a target point. The world is Z-up.
type Camera struct {
	Target   geometry.Vec3
	Distance float32
	Yaw      float32 // radians around Z
	Pitch    float32 // radians above the XY plane
	FOV      float32 // vertical field of view in radians
}

// DefaultCamera looks at the origin from an isometric-ish angle.
func DefaultCamera() Camera {
	return Camera{
		Distance: 10,
		Yaw:      math32.Pi / 4,
		Pitch:    math32.Pi / 6,
		FOV:      math32.Pi / 4,
	}
}

// Fit moves the camera so a sphere of the given radius around center fills
// the view. Orientation is kept.
func (c *Camera) Fit(center geometry.Vec3, radius float32) {
	if radius <= 0 {
		radius = 1
	}
	c.Target = center
	c.Distance = radius / math32.Sin(c.FOV/2) * 1.1
}

// Orbit rotates around the target. Pitch is clamped short of the poles.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch = math32.Max(-maxPitch, math32.Min(maxPitch, c.Pitch+dpitch))
}

// Zoom scales the distance to the target; factor < 1 moves closer.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance = math32.Max(minDistance, c.Distance*factor)
}

// Eye returns the camera position.
func (c *Camera) Eye() geometry.Vec3 {
	cp := math32.Cos(c.Pitch)
	dir := geometry.Vec3{
		X: cp * math32.Cos(c.Yaw),
		Y: cp * math32.Sin(c.Yaw),
		Z: math32.Sin(c.Pitch),
	}
	return c.Target.Add(dir.Scale(c.Distance))
}

// Project maps a world point to pixel coordinates in a width x height view.
// ok is false for points behind the near plane.
func (c *Camera) Project(p geometry.Vec3, width, height float32) (x, y float32, ok bool) {
	eye := c.Eye()
	forward := c.Target.Sub(eye).Normalize()
	right := forward.Cross(geometry.Vec3{Z: 1}).Normalize()
	up := right.Cross(forward)

	rel := p.Sub(eye)
	depth := rel.Dot(forward)
	if depth <= nearPlane {
		return 0, 0, false
	}
	scale := height / 2 / math32.Tan(c.FOV/2)
	x = width/2 + rel.Dot(right)/depth*scale
	y = height/2 - rel.Dot(up)/depth*scale
	return x, y, true
}
