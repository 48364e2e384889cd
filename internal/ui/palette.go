package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PartView/internal/model"
	"github.com/piwi3910/PartView/internal/project"
)

// showPaletteDialog lists the named colour presets offered by the options
// dialog and the part list importer.
func (a *App) showPaletteDialog() {
	list := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()

		if len(a.palette.Presets) == 0 {
			list.Add(widget.NewLabel("No colour presets defined."))
			return
		}

		for i := range a.palette.Presets {
			preset := a.palette.Presets[i]
			swatch := canvas.NewRectangle(preset.Colour.NRGBA())
			swatch.SetMinSize(fyne.NewSize(24, 16))
			row := container.NewHBox(
				swatch,
				widget.NewLabel(preset.Name),
				widget.NewLabel(preset.Colour.String()),
				layout.NewSpacer(),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showPresetDialog(&preset, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.palette.Remove(preset.ID)
					a.savePalette()
					refreshList()
				}),
			)
			list.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Preset", theme.ContentAddIcon(), func() {
		a.showPresetDialog(nil, refreshList)
	})
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importPalette(refreshList)
	})
	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), a.exportPalette)

	content := container.NewBorder(
		container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn),
		nil, nil, nil,
		container.NewVScroll(list),
	)

	d := dialog.NewCustom("Colour Palette", "Close", content, a.window)
	d.Resize(fyne.NewSize(480, 420))
	d.Show()
}

// showPresetDialog adds a preset, or edits existing when it is non-nil.
func (a *App) showPresetDialog(existing *model.ColourPreset, onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Preset name")
	colourEntry := widget.NewEntry()
	colourEntry.SetPlaceHolder("R,G,B")

	title, confirm := "Add Colour Preset", "Add"
	if existing != nil {
		title, confirm = "Edit Colour Preset", "Save"
		nameEntry.SetText(existing.Name)
		colourEntry.SetText(existing.Colour.String())
	} else {
		nameEntry.SetText("New Colour")
		colourEntry.SetText(model.White().String())
	}

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Colour", colourEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("preset name must not be empty"), a.window)
				return
			}
			c, err := model.ParseColour(colourEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}

			if existing != nil {
				if p := a.palette.FindByID(existing.ID); p != nil {
					p.Name = name
					p.Colour = c
				}
			} else {
				a.palette.Add(model.NewColourPreset(name, c))
			}
			a.savePalette()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(360, 220))
	form.Show()
}

func (a *App) importPalette(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		merged, err := project.ImportPalette(path, a.palette)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.palette = merged
		a.savePalette()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Palette now contains %d presets.", len(a.palette.Presets)),
			a.window)
	}, a.window)
}

func (a *App) exportPalette() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := project.SavePalette(path, a.palette); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Palette exported to %s", path),
				a.window)
		}
	}, a.window)
	d.SetFileName("palette.json")
	d.Show()
}

// savePalette persists the current palette to disk.
func (a *App) savePalette() {
	if a.palettePath == "" {
		return
	}
	if err := project.SavePalette(a.palettePath, a.palette); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save palette: %w", err), a.window)
	}
}
