package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PartView/internal/model"
)

// partRow shows one part's three columns. A secondary tap opens the
// context menu for that part.
type partRow struct {
	widget.BaseWidget

	id      string
	name    *widget.Label
	visible *widget.Check
	swatch  *canvas.Rectangle
	colour  *widget.Label
	onMenu  func(id string, pos fyne.Position)
}

func newPartRow(onMenu func(id string, pos fyne.Position)) *partRow {
	r := &partRow{
		name:    widget.NewLabel(""),
		visible: widget.NewCheck("", nil),
		swatch:  canvas.NewRectangle(color.White),
		colour:  widget.NewLabel(""),
		onMenu:  onMenu,
	}
	r.name.Truncation = fyne.TextTruncateEllipsis
	r.swatch.SetMinSize(fyne.NewSize(14, 14))
	r.swatch.StrokeColor = color.Gray{Y: 120}
	r.swatch.StrokeWidth = 1
	r.ExtendBaseWidget(r)
	return r
}

func (r *partRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewGridWithColumns(3,
		r.name,
		r.visible,
		container.NewHBox(container.NewCenter(r.swatch), r.colour),
	))
}

// update binds the row to the part at index, reading each column's text
// from tree. The visibility callback is detached while the check is set so
// a refresh never reports a toggle.
func (r *partRow) update(tree *model.PartTree, index model.Index, onToggle func(id string, visible bool)) {
	p := index.Part()
	r.id = p.ID()

	name := tree.Data(index.Sibling(model.ColumnName))
	if p.LoadErr() != nil {
		name += " (failed to load)"
	}
	r.name.SetText(name)

	r.visible.OnChanged = nil
	r.visible.SetChecked(p.Visible())
	r.visible.SetText(tree.Data(index.Sibling(model.ColumnVisible)))
	id := r.id
	r.visible.OnChanged = func(v bool) { onToggle(id, v) }

	r.swatch.FillColor = p.Colour().NRGBA()
	r.swatch.Refresh()
	r.colour.SetText(tree.Data(index.Sibling(model.ColumnColour)))
}

func (r *partRow) TappedSecondary(e *fyne.PointEvent) {
	if r.onMenu != nil {
		r.onMenu(r.id, e.AbsolutePosition)
	}
}
