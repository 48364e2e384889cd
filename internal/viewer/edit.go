package viewer

import (
	"fmt"

	"github.com/piwi3910/PartView/internal/model"
)

// EditValues are the fields of the item options dialog.
type EditValues struct {
	Name    string
	Colour  model.Colour
	Visible bool
}

// EditDialog collects EditValues from the user. Show must call done exactly
// once, with accepted false when the user cancels.
type EditDialog interface {
	Show(initial EditValues, done func(values EditValues, accepted bool))
}

// EditDialogFunc adapts a plain function to EditDialog.
type EditDialogFunc func(initial EditValues, done func(values EditValues, accepted bool))

// Show calls f(initial, done).
func (f EditDialogFunc) Show(initial EditValues, done func(values EditValues, accepted bool)) {
	f(initial, done)
}

// ValuesOf captures a part's editable fields.
func ValuesOf(p *model.Part) EditValues {
	return EditValues{Name: p.Name(), Colour: p.Colour(), Visible: p.Visible()}
}

// ApplyEdit writes values to p and cascades colour and visibility to every
// descendant. Descendant names are left alone.
func ApplyEdit(p *model.Part, values EditValues) {
	p.SetName(values.Name)
	p.Walk(func(d *model.Part) bool {
		d.SetColour(values.Colour.R, values.Colour.G, values.Colour.B)
		d.SetVisible(values.Visible)
		return true
	})
}

// EditSelected opens dialog prefilled with the selected part. Accepting
// applies the edit with its cascade; rejecting only reports on the status
// line. Without a selection nothing happens.
func (v *Viewer) EditSelected(dialog EditDialog) {
	p := v.Selected()
	if p == nil || p == v.tree.RootItem() {
		return
	}
	id := p.ID()
	dialog.Show(ValuesOf(p), func(values EditValues, accepted bool) {
		if !accepted {
			v.status(MsgDialogRejected, StatusSticky)
			return
		}
		target := v.tree.Find(id)
		if target == nil {
			return
		}
		v.history.Push(v.snapshot("Edit " + target.Name()))
		ApplyEdit(target, values)
		v.commit()
		v.status(MsgItemUpdated, StatusShort)
	})
}

// Button2 opens dialog with blank values and echoes the result on the
// status line without touching the tree.
func (v *Viewer) Button2(dialog EditDialog) {
	dialog.Show(EditValues{}, func(values EditValues, accepted bool) {
		if !accepted {
			v.status(MsgDialogRejected, StatusSticky)
			return
		}
		v.status(FormatOptions(values), StatusLong)
	})
}

// FormatOptions renders dialog values as a status line message.
func FormatOptions(values EditValues) string {
	visibility := "Not Visible"
	if values.Visible {
		visibility = "Visible"
	}
	return fmt.Sprintf("Name: %s, RGB: %d,%d,%d, Visibility: %s",
		values.Name, values.Colour.R, values.Colour.G, values.Colour.B, visibility)
}
