package scene

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/piwi3910/PartView/internal/geometry"
)

// Renderer is the render list the part tree is mirrored into.
type Renderer interface {
	// Clear drops every registered drawable.
	Clear()
	// Add registers d. The renderer keeps a non-owning reference.
	Add(d *Drawable)
	// ResetCamera frames everything currently registered.
	ResetCamera()
	// Render repaints the view.
	Render()
}

// Segment is a projected, coloured edge ready to be drawn.
type Segment struct {
	X1, Y1, X2, Y2 float32
	Colour         color.NRGBA
	Width          float32
}

// maxSegments bounds the edges produced per frame; dense meshes are strided.
const maxSegments = 30000

// Scene is the in-memory Renderer. The viewport widget reads its
// wireframe; tests read its drawable list.
type Scene struct {
	drawables []*Drawable
	camera    Camera
	renders   int
	onRender  func()
}

// New returns an empty scene with the default camera.
func New() *Scene {
	return &Scene{camera: DefaultCamera()}
}

// OnRender registers fn to be called on every Render.
func (s *Scene) OnRender(fn func()) {
	s.onRender = fn
}

func (s *Scene) Clear() {
	for i := range s.drawables {
		s.drawables[i] = nil
	}
	s.drawables = s.drawables[:0]
}

func (s *Scene) Add(d *Drawable) {
	if d == nil {
		return
	}
	s.drawables = append(s.drawables, d)
}

// ResetCamera fits the bounds of the visible drawables, or all drawables
// when none is visible.
func (s *Scene) ResetCamera() {
	center, radius, ok := s.bounds(true)
	if !ok {
		center, radius, ok = s.bounds(false)
	}
	if !ok {
		s.camera = DefaultCamera()
		return
	}
	s.camera.Fit(center, radius)
}

func (s *Scene) Render() {
	s.renders++
	if s.onRender != nil {
		s.onRender()
	}
}

// Drawables returns the registered drawables in registration order.
func (s *Scene) Drawables() []*Drawable {
	out := make([]*Drawable, len(s.drawables))
	copy(out, s.drawables)
	return out
}

// Len returns the number of registered drawables.
func (s *Scene) Len() int { return len(s.drawables) }

// Renders returns how many times Render has run.
func (s *Scene) Renders() int { return s.renders }

// Camera exposes the camera for orbit/zoom handling.
func (s *Scene) Camera() *Camera { return &s.camera }

func (s *Scene) bounds(visibleOnly bool) (geometry.Vec3, float32, bool) {
	var min, max geometry.Vec3
	found := false
	for _, d := range s.drawables {
		if visibleOnly && !d.visible {
			continue
		}
		lo, hi := d.geometry.Bounds()
		if !found {
			min, max = lo, hi
			found = true
			continue
		}
		min = geometry.Vec3{X: math32.Min(min.X, lo.X), Y: math32.Min(min.Y, lo.Y), Z: math32.Min(min.Z, lo.Z)}
		max = geometry.Vec3{X: math32.Max(max.X, hi.X), Y: math32.Max(max.Y, hi.Y), Z: math32.Max(max.Z, hi.Z)}
	}
	if !found {
		return geometry.Vec3{}, 0, false
	}
	center := min.Add(max).Scale(0.5)
	return center, max.Sub(min).Length() / 2, true
}

// Wireframe projects the triangle edges of every visible drawable into a
// width x height view. Edges with an endpoint behind the camera are dropped.
func (s *Scene) Wireframe(width, height float32) []Segment {
	total := 0
	for _, d := range s.drawables {
		if d.visible {
			total += 3 * d.geometry.TriangleCount()
		}
	}
	stride := 1
	if total > maxSegments {
		stride = (total + maxSegments - 1) / maxSegments
	}

	segs := make([]Segment, 0, total/stride)
	for _, d := range s.drawables {
		if !d.visible {
			continue
		}
		col := d.material.Colour
		col.A = uint8(math32.Max(0, math32.Min(1, d.material.Opacity)) * 255)
		for i, tri := range d.geometry.Triangles() {
			if i%stride != 0 {
				continue
			}
			for j := 0; j < 3; j++ {
				x1, y1, ok1 := s.camera.Project(tri[j], width, height)
				x2, y2, ok2 := s.camera.Project(tri[(j+1)%3], width, height)
				if !ok1 || !ok2 {
					continue
				}
				seg := Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Colour: col, Width: d.material.LineWidth}
				segs = appendDashed(segs, seg, d.material.Dash)
			}
		}
	}
	return segs
}

// appendDashed appends seg split into the drawn runs of pattern. The
// pattern restarts at the first endpoint of every edge; an odd-length
// pattern is repeated once so runs keep alternating.
func appendDashed(segs []Segment, seg Segment, pattern []float32) []Segment {
	if len(pattern) == 0 {
		return append(segs, seg)
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float32(nil), pattern...), pattern...)
	}
	var period float32
	for _, l := range pattern {
		if l < 0 {
			return append(segs, seg)
		}
		period += l
	}
	if period == 0 {
		return append(segs, seg)
	}

	dx, dy := seg.X2-seg.X1, seg.Y2-seg.Y1
	length := math32.Hypot(dx, dy)
	if length == 0 {
		return segs
	}
	for pos, i := float32(0), 0; pos < length; i = (i + 1) % len(pattern) {
		end := math32.Min(pos+pattern[i], length)
		if i%2 == 0 && end > pos {
			piece := seg
			piece.X1, piece.Y1 = seg.X1+dx*pos/length, seg.Y1+dy*pos/length
			piece.X2, piece.Y2 = seg.X1+dx*end/length, seg.Y1+dy*end/length
			segs = append(segs, piece)
		}
		pos = end
	}
	return segs
}
