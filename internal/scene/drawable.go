// Package scene holds the renderer-side view of the part tree: drawables,
// their materials and the Renderer they are registered with.
package scene

import (
	"image/color"

	"github.com/jinzhu/copier"

	"github.com/piwi3910/PartView/internal/geometry"
)

// Material is the per-drawable appearance.
type Material struct {
	Colour    color.NRGBA
	Opacity   float32
	LineWidth float32

	// Dash alternates drawn and skipped edge lengths in view pixels.
	// Empty means solid edges.
	Dash []float32
}

// DefaultMaterial is opaque white with hairline edges.
func DefaultMaterial() Material {
	return Material{
		Colour:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Opacity:   1,
		LineWidth: 1,
	}
}

// Drawable is a geometry reference plus the state needed to draw it.
// The geometry is shared; material and visibility belong to the drawable.
type Drawable struct {
	geometry *geometry.Geometry
	material Material
	visible  bool
}

// NewDrawable returns a visible drawable for g.
func NewDrawable(g *geometry.Geometry, m Material) *Drawable {
	return &Drawable{geometry: g, material: m, visible: true}
}

func (d *Drawable) Geometry() *geometry.Geometry { return d.geometry }
func (d *Drawable) Material() Material { return d.material }
func (d *Drawable) Visible() bool { return d.visible }
func (d *Drawable) SetVisible(v bool) { d.visible = v }
func (d *Drawable) SetMaterial(m Material) { d.material = m }

// Colour returns the material colour.
func (d *Drawable) Colour() color.NRGBA { return d.material.Colour }

// SetColour replaces the material colour, keeping alpha opaque.
func (d *Drawable) SetColour(r, g, b uint8) {
	d.material.Colour = color.NRGBA{R: r, G: g, B: b, A: 255}
}

// SetDash replaces the edge dash pattern. A nil or empty pattern draws
// solid edges.
func (d *Drawable) SetDash(pattern []float32) {
	if len(pattern) == 0 {
		d.material.Dash = nil
		return
	}
	d.material.Dash = append([]float32(nil), pattern...)
}

// Clone returns a drawable that shares d's geometry but owns a deep copy of
// its material, so restyling the clone leaves d untouched.
func (d *Drawable) Clone() *Drawable {
	c := &Drawable{geometry: d.geometry, visible: d.visible}
	if err := copier.CopyWithOption(&c.material, &d.material, copier.Option{DeepCopy: true}); err != nil {
		c.material = d.material
	}
	return c
}
