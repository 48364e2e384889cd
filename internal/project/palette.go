package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/PartView/internal/model"
)

// DefaultPalettePath returns ~/.partview/palette.json.
func DefaultPalettePath() string {
	return filepath.Join(DefaultConfigDir(), "palette.json")
}

// SavePalette writes the palette to the specified JSON file.
// It creates parent directories if they do not exist.
func SavePalette(path string, palette model.Palette) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(palette, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPalette reads the palette from the specified JSON file.
// If the file does not exist, it returns the default palette and saves it.
func LoadPalette(path string) (model.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			palette := model.DefaultPalette()
			return palette, SavePalette(path, palette)
		}
		return model.Palette{}, err
	}
	var palette model.Palette
	if err := json.Unmarshal(data, &palette); err != nil {
		return model.Palette{}, err
	}
	return palette, nil
}

// ImportPalette merges presets from a JSON file into existing. Presets with
// an id already present are skipped.
func ImportPalette(path string, existing model.Palette) (model.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Palette
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing.Presets))
	for _, p := range existing.Presets {
		ids[p.ID] = true
	}
	for _, p := range imported.Presets {
		if !ids[p.ID] {
			existing.Presets = append(existing.Presets, p)
			ids[p.ID] = true
		}
	}
	return existing, nil
}
