package model

import "testing"

func TestDefaultPaletteHasUniqueIDs(t *testing.T) {
	p := DefaultPalette()
	if len(p.Presets) == 0 {
		t.Fatal("default palette is empty")
	}
	seen := map[string]bool{}
	for _, preset := range p.Presets {
		if seen[preset.ID] {
			t.Errorf("duplicate id %s", preset.ID)
		}
		seen[preset.ID] = true
	}
}

func TestPaletteLookups(t *testing.T) {
	p := DefaultPalette()
	red := p.FindByName(" red ")
	if red == nil {
		t.Fatal("expected Red preset")
	}
	if p.FindByID(red.ID) != red {
		t.Error("FindByID did not return the same preset")
	}
	if p.FindByName("Ultraviolet") != nil {
		t.Error("unexpected match")
	}
	if names := p.Names(); names[0] != "White" {
		t.Errorf("unexpected first name %s", names[0])
	}
}

func TestPaletteResolve(t *testing.T) {
	p := DefaultPalette()

	if c, ok := p.Resolve("Grey"); !ok || c != (Colour{R: 128, G: 128, B: 128}) {
		t.Errorf("Resolve(Grey) = %v, %v", c, ok)
	}
	if c, ok := p.Resolve("1,2,3"); !ok || c != (Colour{R: 1, G: 2, B: 3}) {
		t.Errorf("Resolve(1,2,3) = %v, %v", c, ok)
	}
	if _, ok := p.Resolve("nope"); ok {
		t.Error("expected unresolved")
	}
}

func TestPaletteAddReplacesByName(t *testing.T) {
	p := Palette{}
	p.Add(NewColourPreset("Mine", Colour{R: 1}))
	p.Add(NewColourPreset("mine", Colour{R: 2}))

	if len(p.Presets) != 1 || p.Presets[0].Colour.R != 2 {
		t.Errorf("expected single replaced preset, got %+v", p.Presets)
	}
}

func TestPaletteRemove(t *testing.T) {
	p := DefaultPalette()
	n := len(p.Presets)
	id := p.FindByName("Red").ID

	if !p.Remove(id) {
		t.Fatal("expected Remove to find Red")
	}
	if len(p.Presets) != n-1 || p.FindByName("Red") != nil {
		t.Error("expected Red to be gone")
	}
	if p.Remove(id) {
		t.Error("expected second Remove to report false")
	}
}
