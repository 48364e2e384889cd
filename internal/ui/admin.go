package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PartView/internal/geometry"
	"github.com/piwi3910/PartView/internal/model"
	"github.com/piwi3910/PartView/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.1f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	levelSelect := widget.NewSelect([]string{"debug", "info", "warn", "error"}, func(selected string) {
		cfg.LogLevel = selected
	})
	levelSelect.SetSelected(cfg.LogLevel)

	formatSelect := widget.NewSelect([]string{"console", "json"}, func(selected string) {
		cfg.LogFormat = selected
	})
	formatSelect.SetSelected(cfg.LogFormat)

	colourEntry := widget.NewEntry()
	colourEntry.SetText(cfg.DefaultColour.String())
	colourEntry.SetPlaceHolder("R,G,B or palette name")
	colourEntry.Validator = func(text string) error {
		if _, ok := a.palette.Resolve(text); !ok {
			return fmt.Errorf("unknown colour %q", text)
		}
		return nil
	}

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("DXF Plate Thickness", floatEntry(&cfg.DXFThickness)),
		widget.NewFormItem("Primitive Size", floatEntry(&cfg.PrimitiveSize)),
		widget.NewFormItem("Primitive Mesh Cells", intEntry(&cfg.MeshCells)),
		widget.NewFormItem("Primitive Colour", colourEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Log Level (restart)", levelSelect),
		widget.NewFormItem("Log Format (restart)", formatSelect),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if c, ok := a.palette.Resolve(colourEntry.Text); ok {
				cfg.DefaultColour = c
			}
			a.applyConfig(cfg)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(460, 480))
	d.Show()
}

// applyConfig makes cfg current for the theme, the DXF loader and new
// primitives.
func (a *App) applyConfig(cfg model.AppConfig) {
	a.config = cfg
	a.theme.SetMode(cfg.Theme)
	a.app.Settings().SetTheme(a.theme)
	a.loader.Register(".dxf", &geometry.DXFLoader{Thickness: cfg.DXFThickness, ArcSegments: 32})
	a.viewer.SetPrimitiveDefaults(cfg.MeshCells, cfg.DefaultColour)
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.palette); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("partview-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings and colour palette.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.applyConfig(backup.Config)
					if len(backup.Palette.Presets) > 0 {
						a.palette = backup.Palette
						a.savePalette()
					}
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings, colour palette) to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	if a.configPath == "" {
		return nil
	}
	return project.SaveAppConfig(a.configPath, a.config)
}

// saveConfigQuietly saves the config after routine changes such as the
// recent file list, logging instead of interrupting the user.
func (a *App) saveConfigQuietly() {
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("config save failed", zap.String("path", a.configPath), zap.Error(err))
	}
}
