package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PartView/internal/model"
	"github.com/piwi3910/PartView/internal/viewer"
)

// optionsDialog is the Fyne form behind viewer.EditDialog: a name, three
// colour sliders with a palette shortcut, and a visibility check.
type optionsDialog struct {
	window  fyne.Window
	palette *model.Palette
}

func (d *optionsDialog) Show(initial viewer.EditValues, done func(viewer.EditValues, bool)) {
	form := newOptionsForm(initial, d.palette)
	dlg := dialog.NewForm("Item Options", "OK", "Cancel", form.items(), func(ok bool) {
		done(form.values(), ok)
	}, d.window)
	dlg.Resize(fyne.NewSize(420, 360))
	dlg.Show()
}

type optionsForm struct {
	name    *widget.Entry
	red     *widget.Slider
	green   *widget.Slider
	blue    *widget.Slider
	preset  *widget.Select
	swatch  *canvas.Rectangle
	visible *widget.Check
}

func newOptionsForm(initial viewer.EditValues, palette *model.Palette) *optionsForm {
	f := &optionsForm{
		name:    widget.NewEntry(),
		red:     colourSlider(),
		green:   colourSlider(),
		blue:    colourSlider(),
		swatch:  canvas.NewRectangle(initial.Colour.NRGBA()),
		visible: widget.NewCheck("Visible", nil),
	}
	f.swatch.SetMinSize(fyne.NewSize(48, 20))

	f.name.SetText(initial.Name)
	f.red.SetValue(float64(initial.Colour.R))
	f.green.SetValue(float64(initial.Colour.G))
	f.blue.SetValue(float64(initial.Colour.B))
	f.visible.SetChecked(initial.Visible)

	for _, s := range []*widget.Slider{f.red, f.green, f.blue} {
		s.OnChanged = func(float64) { f.refreshSwatch() }
	}

	var names []string
	if palette != nil {
		names = palette.Names()
	}
	f.preset = widget.NewSelect(names, func(name string) {
		if palette == nil {
			return
		}
		if c, ok := palette.Resolve(name); ok {
			f.setColour(c)
		}
	})
	f.preset.PlaceHolder = "(custom)"
	return f
}

func colourSlider() *widget.Slider {
	s := widget.NewSlider(0, 255)
	s.Step = 1
	return s
}

func (f *optionsForm) setColour(c model.Colour) {
	f.red.SetValue(float64(c.R))
	f.green.SetValue(float64(c.G))
	f.blue.SetValue(float64(c.B))
	f.refreshSwatch()
}

func (f *optionsForm) colour() model.Colour {
	return model.Colour{R: uint8(f.red.Value), G: uint8(f.green.Value), B: uint8(f.blue.Value)}
}

func (f *optionsForm) refreshSwatch() {
	f.swatch.FillColor = f.colour().NRGBA()
	f.swatch.Refresh()
}

func (f *optionsForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Name", f.name),
		widget.NewFormItem("Red", f.red),
		widget.NewFormItem("Green", f.green),
		widget.NewFormItem("Blue", f.blue),
		widget.NewFormItem("Preset", container.NewBorder(nil, nil, nil, f.swatch, f.preset)),
		widget.NewFormItem("", f.visible),
	}
}

func (f *optionsForm) values() viewer.EditValues {
	return viewer.EditValues{Name: f.name.Text, Colour: f.colour(), Visible: f.visible.Checked}
}

// showNewGroupDialog asks for a group name; an empty name creates nothing.
func (a *App) showNewGroupDialog() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Group name")
	dialog.ShowForm("New Group", "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(ok bool) {
			if ok {
				a.viewer.NewGroup(entry.Text)
			}
		},
		a.window,
	)
}
