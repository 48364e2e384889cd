package geometry

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point2 is a profile vertex in drawing units.
type point2 struct {
	X, Y float64
}

// profile is a closed polygon; the last point connects back to the first.
type profile []point2

// segment is a loose edge waiting to be chained into a profile.
type segment struct {
	start, end point2
}

// DXFLoader reads the closed profiles of a 2D drawing and extrudes each one
// into a plate of the configured thickness.
type DXFLoader struct {
	Thickness   float64 // extrusion height in drawing units
	ArcSegments int     // segments used to approximate arcs and circles
}

// Load implements Loader.
func (l *DXFLoader) Load(path string) (*Geometry, error) {
	drawing, err := dxf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DXF %s: %w", path, err)
	}

	profiles := l.profiles(drawing.Entities())
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%s: no closed shapes: %w", filepath.Base(path), ErrEmptyMesh)
	}

	var tris []Triangle
	for _, p := range profiles {
		tris = append(tris, extrude(p, l.thickness())...)
	}
	return New(filepath.Base(path), path, tris)
}

func (l *DXFLoader) thickness() float64 {
	if l.Thickness <= 0 {
		return 1
	}
	return l.Thickness
}

func (l *DXFLoader) segments() int {
	if l.ArcSegments < 8 {
		return 8
	}
	return l.ArcSegments
}

// profiles collects closed outlines from LWPOLYLINE and CIRCLE entities and
// from chains of LINE/ARC entities.
func (l *DXFLoader) profiles(entities []entity.Entity) []profile {
	var out []profile
	var loose []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if p := l.lwPolylineProfile(e); len(p) >= 3 {
				out = append(out, p)
			}
		case *entity.Circle:
			out = append(out, circleProfile(e.Center[0], e.Center[1], e.Radius, 2*l.segments()))
		case *entity.Arc:
			pts := arcPoints(e, l.segments())
			for i := 0; i+1 < len(pts); i++ {
				loose = append(loose, segment{start: pts[i], end: pts[i+1]})
			}
		case *entity.Line:
			loose = append(loose, segment{
				start: point2{X: e.Start[0], Y: e.Start[1]},
				end:   point2{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	return append(out, chainSegments(loose, 0.01)...)
}

func (l *DXFLoader) lwPolylineProfile(lw *entity.LwPolyline) profile {
	var p profile
	for i, v := range lw.Vertices {
		current := point2{X: v[0], Y: v[1]}
		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) < 1e-9 {
			p = append(p, current)
			continue
		}
		next := lw.Vertices[(i+1)%len(lw.Vertices)]
		arc := bulgeArc(current, point2{X: next[0], Y: next[1]}, bulge, l.segments())
		p = append(p, arc[:len(arc)-1]...)
	}
	return p
}

// bulgeArc interpolates the arc between p1 and p2 described by a DXF bulge
// (the tangent of a quarter of the included angle).
func bulgeArc(p1, p2 point2, bulge float64, n int) []point2 {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []point2{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx := (p1.X+p2.X)/2 + perpX*dist
	cy := (p1.Y+p2.Y)/2 + perpY*dist

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	end := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	} else if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make([]point2, n+1)
	for i := range pts {
		a := start + float64(i)/float64(n)*(end-start)
		pts[i] = point2{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	return pts
}

func circleProfile(cx, cy, r float64, n int) profile {
	p := make(profile, n)
	for i := range p {
		a := 2 * math.Pi * float64(i) / float64(n)
		p[i] = point2{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return p
}

func arcPoints(a *entity.Arc, n int) []point2 {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}
	pts := make([]point2, n+1)
	for i := range pts {
		t := start + float64(i)/float64(n)*(end-start)
		pts[i] = point2{X: cx + r*math.Cos(t), Y: cy + r*math.Sin(t)}
	}
	return pts
}

// chainSegments joins loose segments whose endpoints lie within tolerance.
// Only chains that close on themselves become profiles, largest first.
func chainSegments(segs []segment, tolerance float64) []profile {
	used := make([]bool, len(segs))
	var out []profile

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := profile{segs[start].start, segs[start].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, s := range segs {
				if used[i] {
					continue
				}
				switch {
				case near(tail, s.start, tolerance):
					chain = append(chain, s.end)
				case near(tail, s.end, tolerance):
					chain = append(chain, s.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && near(chain[0], chain[len(chain)-1], tolerance) {
			out = append(out, chain[:len(chain)-1])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].signedArea()) > math.Abs(out[j].signedArea())
	})
	return out
}

func near(a, b point2, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// signedArea is positive for counter-clockwise profiles.
func (p profile) signedArea() float64 {
	var area float64
	for i := range p {
		j := (i + 1) % len(p)
		area += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return area / 2
}

func (p profile) centroid() point2 {
	var c point2
	for _, v := range p {
		c.X += v.X
		c.Y += v.Y
	}
	n := float64(len(p))
	return point2{X: c.X / n, Y: c.Y / n}
}

// extrude turns a closed profile into a closed plate: a bottom cap at z=0,
// a top cap at z=height and one quad per edge for the walls. Caps are fanned
// from the vertex centroid, which is exact for star-shaped profiles.
func extrude(p profile, height float64) []Triangle {
	if p.signedArea() < 0 {
		rev := make(profile, len(p))
		for i, v := range p {
			rev[len(p)-1-i] = v
		}
		p = rev
	}

	h := float32(height)
	at := func(v point2, z float32) Vec3 {
		return Vec3{X: float32(v.X), Y: float32(v.Y), Z: z}
	}
	c := p.centroid()

	tris := make([]Triangle, 0, 4*len(p))
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		tris = append(tris,
			Triangle{at(c, 0), at(b, 0), at(a, 0)},
			Triangle{at(c, h), at(a, h), at(b, h)},
			Triangle{at(a, 0), at(b, 0), at(b, h)},
			Triangle{at(a, 0), at(b, h), at(a, h)},
		)
	}
	return tris
}
