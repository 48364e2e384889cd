// Package viewer ties the part tree to its render list. Every mutating
// operation snapshots the tree for undo, applies the change, notifies
// observers and rebuilds the renderer in one step, so the scene never
// lags behind the tree.
package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/PartView/internal/geometry"
	"github.com/piwi3910/PartView/internal/model"
	"github.com/piwi3910/PartView/internal/scene"
)

// Status line durations in milliseconds. Zero keeps the message until it
// is replaced.
const (
	StatusShort  = 2000
	StatusLong   = 5000
	StatusSticky = 0
)

// Status line messages.
const (
	MsgDialogRejected = "Dialog rejected"
	MsgItemUpdated    = "Item updated."
	MsgButton1        = "Button 1 was clicked."
)

// StatusFunc shows msg on the status line for timeoutMs milliseconds.
type StatusFunc func(msg string, timeoutMs int)

// Options configures a Viewer. Zero fields get working defaults.
type Options struct {
	Logger    *zap.Logger
	Loader    geometry.Loader
	Renderer  scene.Renderer
	Metrics   *scene.Metrics
	Status    StatusFunc
	MeshCells int

	// PrimitiveColour colours parts made by AddPrimitive; nil means white.
	PrimitiveColour *model.Colour
}

// Viewer owns the part tree, the selection and the undo history.
// It is not safe for concurrent use; call it from the UI goroutine.
type Viewer struct {
	tree       *model.PartTree
	renderer   scene.Renderer
	loader     geometry.Loader
	logger     *zap.Logger
	metrics    *scene.Metrics
	status     StatusFunc
	history    *History
	meshCells  int
	primColour model.Colour

	selected  string
	dirty     bool
	observers []func()
}

// New creates a Viewer around an empty tree.
func New(opts Options) *Viewer {
	v := &Viewer{
		tree:       model.NewPartTree(),
		renderer:   opts.Renderer,
		loader:     opts.Loader,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		status:     opts.Status,
		history:    NewHistory(),
		meshCells:  opts.MeshCells,
		primColour: model.White(),
	}
	if opts.PrimitiveColour != nil {
		v.primColour = *opts.PrimitiveColour
	}
	if v.renderer == nil {
		v.renderer = scene.New()
	}
	if v.loader == nil {
		v.loader = geometry.NewRegistry(model.DefaultAppConfig().DXFThickness)
	}
	if v.logger == nil {
		v.logger = zap.NewNop()
	}
	if v.metrics == nil {
		v.metrics = scene.NewMetrics(nil)
	}
	if v.status == nil {
		v.status = func(string, int) {}
	}
	return v
}

func (v *Viewer) Tree() *model.PartTree { return v.tree }
func (v *Viewer) Renderer() scene.Renderer { return v.renderer }
func (v *Viewer) History() *History { return v.history }

// SetPrimitiveDefaults changes the mesh resolution and colour used by
// later AddPrimitive calls.
func (v *Viewer) SetPrimitiveDefaults(cells int, colour model.Colour) {
	v.meshCells = cells
	v.primColour = colour
}

// Dirty reports unsaved changes since the last MarkSaved or Replace.
func (v *Viewer) Dirty() bool { return v.dirty }

// MarkSaved clears the dirty flag.
func (v *Viewer) MarkSaved() { v.dirty = false }

// OnTreeChanged registers fn to run after every tree mutation.
func (v *Viewer) OnTreeChanged(fn func()) {
	v.observers = append(v.observers, fn)
}

func (v *Viewer) notify() {
	for _, fn := range v.observers {
		fn()
	}
}

// Selected returns the selected part, or nil.
func (v *Viewer) Selected() *model.Part {
	if v.selected == "" {
		return nil
	}
	return v.tree.Find(v.selected)
}

// Select makes the part with id current and reports it on the status line.
// An unknown or empty id clears the selection.
func (v *Viewer) Select(id string) {
	p := v.tree.Find(id)
	if id == "" || p == nil {
		v.ClearSelection()
		return
	}
	v.selected = id
	v.highlight()
	v.renderer.Render()
	v.status("The selected item is: "+p.Name(), StatusShort)
}

// ClearSelection drops the current selection silently.
func (v *Viewer) ClearSelection() {
	v.selected = ""
	v.highlight()
	v.renderer.Render()
}

// SelectionDash is the edge pattern of the selected part's drawable.
var SelectionDash = []float32{6, 4}

// highlight dashes the selected part's edges and makes every other
// drawable solid.
func (v *Viewer) highlight() {
	v.tree.Walk(func(p *model.Part) bool {
		if d := p.Actor(); d != nil {
			if p.ID() == v.selected {
				d.SetDash(SelectionDash)
			} else {
				d.SetDash(nil)
			}
		}
		return true
	})
}

// Button1 reports the click on the status line.
func (v *Viewer) Button1() {
	v.status(MsgButton1, StatusShort)
}

// Sync rebuilds the render list: clear, add every drawable in pre-order
// with its visibility forced to the part's and the selection dashed, reset
// the camera and repaint.
func (v *Viewer) Sync() {
	v.renderer.Clear()
	v.highlight()
	n := 0
	v.tree.Walk(func(p *model.Part) bool {
		if d := p.Actor(); d != nil {
			d.SetVisible(p.Visible())
			v.renderer.Add(d)
			n++
		}
		return true
	})
	v.renderer.ResetCamera()
	v.renderer.Render()
	v.metrics.RecordSync(n)
	v.logger.Debug("render sync", zap.Int("drawables", n), zap.Int("parts", v.tree.Len()))
}

func (v *Viewer) snapshot(label string) Snapshot {
	return Snapshot{Tree: v.tree.Clone(), Selected: v.selected, Label: label}
}

// commit finishes a mutation that was preceded by a history push.
func (v *Viewer) commit() {
	v.dirty = true
	v.notify()
	v.Sync()
}

// parentForInsert is the selection, or the root when nothing is selected.
func (v *Viewer) parentForInsert() *model.Part {
	if p := v.Selected(); p != nil {
		return p
	}
	return v.tree.RootItem()
}

// NewGroup adds an empty, visible, white part under the selection or the
// root. An empty name does nothing and returns nil.
func (v *Viewer) NewGroup(name string) *model.Part {
	if name == "" {
		return nil
	}
	v.history.Push(v.snapshot("New Group"))
	group := model.NewPart(name, true)
	// A fresh part cannot be an ancestor of anything.
	_ = v.parentForInsert().AppendChild(group)
	v.commit()
	v.status(fmt.Sprintf("Group %q created.", name), StatusShort)
	return group
}

// SetVisible toggles one part without touching its descendants. Only the
// drawable flag changes, so the render list is repainted, not rebuilt.
func (v *Viewer) SetVisible(id string, visible bool) {
	p := v.tree.Find(id)
	if p == nil || p == v.tree.RootItem() || p.Visible() == visible {
		return
	}
	v.history.Push(v.snapshot("Toggle Visibility"))
	p.SetVisible(visible)
	v.dirty = true
	v.notify()
	v.renderer.Render()
}

// RemoveSelected deletes the selected part and its subtree. The root and
// an empty selection are left alone.
func (v *Viewer) RemoveSelected() bool {
	p := v.Selected()
	if p == nil || p.Parent() == nil {
		return false
	}
	v.history.Push(v.snapshot("Remove " + p.Name()))
	p.Parent().RemoveChild(p)
	v.selected = ""
	v.commit()
	v.status(fmt.Sprintf("Removed %s.", p.Name()), StatusShort)
	return true
}

// AddPrimitive creates a part holding a generated solid under the
// selection or the root.
func (v *Viewer) AddPrimitive(kind geometry.PrimitiveKind, size float64) (*model.Part, error) {
	g, err := geometry.Primitive(kind, size, v.meshCells)
	if err != nil {
		v.logger.Error("primitive generation failed", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	v.history.Push(v.snapshot("Add " + string(kind)))
	p := model.NewPart(string(kind), true)
	p.SetGeometry(g, "")
	p.SetColour(v.primColour.R, v.primColour.G, v.primColour.B)
	_ = v.parentForInsert().AppendChild(p)
	v.commit()
	v.status(fmt.Sprintf("Added %s (%d triangles).", kind, g.TriangleCount()), StatusShort)
	return p, nil
}

// Replace swaps in a whole tree (for example a loaded project). History,
// selection and the dirty flag are reset.
func (v *Viewer) Replace(tree *model.PartTree) {
	v.tree = tree
	v.selected = ""
	v.history.Clear()
	v.dirty = false
	v.notify()
	v.Sync()
}

// Undo restores the state before the last mutation.
func (v *Viewer) Undo() bool {
	label := v.history.NextUndoLabel()
	s, ok := v.history.Undo(v.snapshot(label))
	if !ok {
		return false
	}
	v.restore(s)
	v.status("Undo "+label, StatusShort)
	return true
}

// Redo re-applies the last undone mutation.
func (v *Viewer) Redo() bool {
	label := v.history.NextRedoLabel()
	s, ok := v.history.Redo(v.snapshot(label))
	if !ok {
		return false
	}
	v.restore(s)
	v.status("Redo "+label, StatusShort)
	return true
}

func (v *Viewer) restore(s Snapshot) {
	v.tree.Restore(s.Tree)
	v.selected = s.Selected
	if v.tree.Find(v.selected) == nil {
		v.selected = ""
	}
	v.commit()
}
