package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PartViewTheme wraps the default Fyne theme with compact sizing overrides.
// Without a fixed variant it follows the system light/dark setting.
type PartViewTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool
}

// NewPartViewTheme creates a theme that follows the system variant.
func NewPartViewTheme() *PartViewTheme {
	return &PartViewTheme{base: theme.DefaultTheme()}
}

// NewPartViewThemeWithVariant creates a theme pinned to a light/dark variant.
func NewPartViewThemeWithVariant(variant fyne.ThemeVariant) *PartViewTheme {
	return &PartViewTheme{base: theme.DefaultTheme(), variant: variant, fixed: true}
}

// NewPartViewThemeFor maps a config value ("light", "dark", "system") to a theme.
func NewPartViewThemeFor(name string) *PartViewTheme {
	t := NewPartViewTheme()
	t.SetMode(name)
	return t
}

// SetMode pins the variant for "light" and "dark"; anything else follows
// the system.
func (t *PartViewTheme) SetMode(name string) {
	switch strings.ToLower(name) {
	case "light":
		t.variant, t.fixed = theme.VariantLight, true
	case "dark":
		t.variant, t.fixed = theme.VariantDark, true
	default:
		t.fixed = false
	}
}

// Color delegates to the base theme, substituting the pinned variant.
func (t *PartViewTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.fixed {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *PartViewTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *PartViewTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *PartViewTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
