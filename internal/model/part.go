package model

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/piwi3910/PartView/internal/geometry"
	"github.com/piwi3910/PartView/internal/scene"
)

// ErrCycle is returned when an append would make a part its own ancestor.
var ErrCycle = errors.New("part cannot become a child of itself or its descendants")

// Display columns.
const (
	ColumnName    = 0
	ColumnVisible = 1
	ColumnColour  = 2
	columnCount   = 3
)

// Part is a node of the part tree. A part owns its children; the parent
// link is a back-reference only.
type Part struct {
	id       string
	name     string
	visible  bool
	colour   Colour
	children []*Part
	parent   *Part

	geometry *geometry.Geometry
	drawable *scene.Drawable
	source   string
	loadErr  error
}

// NewPart creates a white placeholder part without geometry.
func NewPart(name string, visible bool) *Part {
	return &Part{
		id:      uuid.New().String()[:8],
		name:    name,
		visible: visible,
		colour:  White(),
	}
}

// RestorePart recreates a part with a known id, as read from a project
// file. An empty id gets a fresh one.
func RestorePart(id, name string, visible bool, colour Colour) *Part {
	p := NewPart(name, visible)
	if id != "" {
		p.id = id
	}
	p.colour = colour
	return p
}

func (p *Part) ID() string { return p.id }
func (p *Part) Name() string { return p.name }
func (p *Part) SetName(name string) { p.name = name }
func (p *Part) Parent() *Part { return p.parent }
func (p *Part) ChildCount() int { return len(p.children) }
func (p *Part) ColumnCount() int { return columnCount }
func (p *Part) Visible() bool { return p.visible }
func (p *Part) Colour() Colour { return p.colour }
func (p *Part) ColourR() uint8 { return p.colour.R }
func (p *Part) ColourG() uint8 { return p.colour.G }
func (p *Part) ColourB() uint8 { return p.colour.B }
func (p *Part) Source() string { return p.source }
func (p *Part) LoadErr() error { return p.loadErr }
func (p *Part) Actor() *scene.Drawable { return p.drawable }

// Geometry returns the loaded geometry, or nil.
func (p *Part) Geometry() *geometry.Geometry { return p.geometry }

// Child returns the child at row, or nil when row is out of range.
func (p *Part) Child(row int) *Part {
	if row < 0 || row >= len(p.children) {
		return nil
	}
	return p.children[row]
}

// Children returns a copy of the child list.
func (p *Part) Children() []*Part {
	out := make([]*Part, len(p.children))
	copy(out, p.children)
	return out
}

// Row is the position of p among its parent's children, 0 for the root.
func (p *Part) Row() int {
	if p.parent == nil {
		return 0
	}
	for i, c := range p.parent.children {
		if c == p {
			return i
		}
	}
	return 0
}

// IsAncestorOf reports whether p is a strict ancestor of other.
func (p *Part) IsAncestorOf(other *Part) bool {
	for a := other.parent; a != nil; a = a.parent {
		if a == p {
			return true
		}
	}
	return false
}

// AppendChild adds item as the last child. An item owned by another part is
// moved. Appending p itself or one of p's ancestors fails with ErrCycle.
func (p *Part) AppendChild(item *Part) error {
	if item == nil {
		return errors.New("cannot append nil part")
	}
	if item == p || item.IsAncestorOf(p) {
		return fmt.Errorf("append %q to %q: %w", item.name, p.name, ErrCycle)
	}
	if item.parent != nil {
		item.parent.RemoveChild(item)
	}
	item.parent = p
	p.children = append(p.children, item)
	return nil
}

// RemoveChild detaches item from p. It reports false if item is not a child.
func (p *Part) RemoveChild(item *Part) bool {
	for i, c := range p.children {
		if c == item {
			p.children = append(p.children[:i], p.children[i+1:]...)
			item.parent = nil
			return true
		}
	}
	return false
}

// Data returns the display text of column, empty for unknown columns.
func (p *Part) Data(column int) string {
	switch column {
	case ColumnName:
		return p.name
	case ColumnVisible:
		return strconv.FormatBool(p.visible)
	case ColumnColour:
		return p.colour.String()
	default:
		return ""
	}
}

// Set writes column from its display text. Unknown columns and values that
// do not parse are ignored; the result reports whether anything changed.
func (p *Part) Set(column int, value string) bool {
	switch column {
	case ColumnName:
		p.name = value
		return true
	case ColumnVisible:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return false
		}
		p.SetVisible(v)
		return true
	case ColumnColour:
		c, err := ParseColour(value)
		if err != nil {
			return false
		}
		p.SetColour(c.R, c.G, c.B)
		return true
	default:
		return false
	}
}

// SetColour changes the colour and rebuilds the drawable.
func (p *Part) SetColour(r, g, b uint8) {
	p.colour = Colour{R: r, G: g, B: b}
	p.rebuildDrawable()
}

// SetVisible toggles visibility on the part and its existing drawable.
func (p *Part) SetVisible(v bool) {
	p.visible = v
	if p.drawable != nil {
		p.drawable.SetVisible(v)
	}
}

// SetGeometry attaches g (loaded from source) and builds a fresh drawable.
func (p *Part) SetGeometry(g *geometry.Geometry, source string) {
	p.geometry = g
	p.source = source
	p.loadErr = nil
	p.rebuildDrawable()
}

// LoadSTL loads path through loader. On failure the part is left without
// geometry and the error is kept for LoadErr.
func (p *Part) LoadSTL(loader geometry.Loader, path string) error {
	g, err := loader.Load(path)
	if err != nil {
		p.geometry = nil
		p.drawable = nil
		p.source = path
		p.loadErr = err
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	p.SetGeometry(g, path)
	return nil
}

// NewActor returns an independent copy of the drawable sharing its
// geometry, or nil when the part has none.
func (p *Part) NewActor() *scene.Drawable {
	if p.drawable == nil {
		return nil
	}
	return p.drawable.Clone()
}

func (p *Part) rebuildDrawable() {
	if p.geometry == nil {
		p.drawable = nil
		return
	}
	m := scene.DefaultMaterial()
	m.Colour = p.colour.NRGBA()
	p.drawable = scene.NewDrawable(p.geometry, m)
	p.drawable.SetVisible(p.visible)
}

// Walk visits p and its descendants depth-first in pre-order. Returning
// false from fn skips that part's subtree.
func (p *Part) Walk(fn func(*Part) bool) {
	if !fn(p) {
		return
	}
	for _, c := range p.children {
		c.Walk(fn)
	}
}

// Clone copies the subtree rooted at p, keeping ids and sharing geometry.
// The copy has no parent.
func (p *Part) Clone() *Part {
	c := &Part{
		id:       p.id,
		name:     p.name,
		visible:  p.visible,
		colour:   p.colour,
		geometry: p.geometry,
		source:   p.source,
		loadErr:  p.loadErr,
	}
	c.rebuildDrawable()
	c.children = make([]*Part, len(p.children))
	for i, child := range p.children {
		cc := child.Clone()
		cc.parent = c
		c.children[i] = cc
	}
	return c
}
