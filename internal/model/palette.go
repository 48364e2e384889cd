package model

import (
	"strings"

	"github.com/google/uuid"
)

// ColourPreset is a named colour the user can pick in the item options
// dialog or refer to by name in an imported part list.
type ColourPreset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Colour Colour `json:"colour"`
}

// NewColourPreset creates a new ColourPreset with a generated ID.
func NewColourPreset(name string, c Colour) ColourPreset {
	return ColourPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Colour: c,
	}
}

// Palette holds the user's saved colour presets.
type Palette struct {
	Presets []ColourPreset `json:"presets"`
}

// DefaultPalette returns a palette populated with common part colours.
func DefaultPalette() Palette {
	return Palette{
		Presets: []ColourPreset{
			NewColourPreset("White", Colour{R: 255, G: 255, B: 255}),
			NewColourPreset("Red", Colour{R: 220, G: 50, B: 47}),
			NewColourPreset("Green", Colour{R: 133, G: 153, B: 0}),
			NewColourPreset("Blue", Colour{R: 38, G: 139, B: 210}),
			NewColourPreset("Yellow", Colour{R: 181, G: 137, B: 0}),
			NewColourPreset("Grey", Colour{R: 128, G: 128, B: 128}),
			NewColourPreset("Steel", Colour{R: 176, G: 196, B: 222}),
			NewColourPreset("Brass", Colour{R: 181, G: 166, B: 66}),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (p *Palette) FindByID(id string) *ColourPreset {
	for i := range p.Presets {
		if p.Presets[i].ID == id {
			return &p.Presets[i]
		}
	}
	return nil
}

// FindByName returns the first preset whose name matches case-insensitively,
// or nil.
func (p *Palette) FindByName(name string) *ColourPreset {
	for i := range p.Presets {
		if strings.EqualFold(p.Presets[i].Name, strings.TrimSpace(name)) {
			return &p.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names for UI dropdowns.
func (p *Palette) Names() []string {
	names := make([]string, len(p.Presets))
	for i, c := range p.Presets {
		names[i] = c.Name
	}
	return names
}

// Resolve turns either a preset name or an "R,G,B" string into a colour.
func (p *Palette) Resolve(s string) (Colour, bool) {
	if preset := p.FindByName(s); preset != nil {
		return preset.Colour, true
	}
	c, err := ParseColour(s)
	if err != nil {
		return Colour{}, false
	}
	return c, true
}

// Add appends a preset, replacing any existing preset with the same name.
func (p *Palette) Add(preset ColourPreset) {
	if existing := p.FindByName(preset.Name); existing != nil {
		existing.Colour = preset.Colour
		return
	}
	p.Presets = append(p.Presets, preset)
}

// Remove deletes the preset with id. It reports whether one was found.
func (p *Palette) Remove(id string) bool {
	for i := range p.Presets {
		if p.Presets[i].ID == id {
			p.Presets = append(p.Presets[:i], p.Presets[i+1:]...)
			return true
		}
	}
	return false
}
