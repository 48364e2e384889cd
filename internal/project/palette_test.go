package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PartView/internal/model"
)

func TestLoadPaletteCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")

	palette, err := LoadPalette(path)
	if err != nil {
		t.Fatalf("LoadPalette failed: %v", err)
	}
	if len(palette.Presets) != len(model.DefaultPalette().Presets) {
		t.Errorf("expected default presets, got %d", len(palette.Presets))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default palette was not saved: %v", err)
	}
}

func TestSaveAndLoadPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "palette.json")
	palette := model.Palette{Presets: []model.ColourPreset{
		model.NewColourPreset("Copper", model.Colour{R: 184, G: 115, B: 51}),
	}}

	if err := SavePalette(path, palette); err != nil {
		t.Fatalf("SavePalette failed: %v", err)
	}
	loaded, err := LoadPalette(path)
	if err != nil {
		t.Fatalf("LoadPalette failed: %v", err)
	}
	if len(loaded.Presets) != 1 || loaded.Presets[0] != palette.Presets[0] {
		t.Errorf("round trip mismatch: %+v", loaded.Presets)
	}
}

func TestLoadPaletteInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")
	if err := os.WriteFile(path, []byte("[[["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPalette(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportPaletteSkipsDuplicateIDs(t *testing.T) {
	existing := model.DefaultPalette()
	extra := model.NewColourPreset("Olive", model.Colour{R: 128, G: 128})
	imported := model.Palette{Presets: []model.ColourPreset{existing.Presets[0], extra}}

	path := filepath.Join(t.TempDir(), "import.json")
	if err := SavePalette(path, imported); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportPalette(path, existing)
	if err != nil {
		t.Fatalf("ImportPalette failed: %v", err)
	}
	if len(merged.Presets) != len(existing.Presets)+1 {
		t.Errorf("expected %d presets, got %d", len(existing.Presets)+1, len(merged.Presets))
	}
	if merged.FindByID(extra.ID) == nil {
		t.Error("imported preset missing")
	}
}

func TestImportPaletteMissingFile(t *testing.T) {
	existing := model.DefaultPalette()
	merged, err := ImportPalette(filepath.Join(t.TempDir(), "missing.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(merged.Presets) != len(existing.Presets) {
		t.Error("existing palette should be returned unchanged")
	}
}
