package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PartView/internal/scene"
)

var (
	colorBackground = color.NRGBA{R: 40, G: 44, B: 52, A: 255}
	colorEmptyText  = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
)

// Radians of orbit per pixel dragged, and zoom factor per scroll notch.
const (
	orbitSpeed = 0.01
	zoomStep   = 1.1
)

// Viewport draws a scene as a wireframe and lets the user orbit with a drag
// and zoom with the scroll wheel. It repaints whenever the scene renders.
type Viewport struct {
	widget.BaseWidget
	scene *scene.Scene
}

// NewViewport creates a viewport bound to s and hooks s.OnRender.
func NewViewport(s *scene.Scene) *Viewport {
	v := &Viewport{scene: s}
	v.ExtendBaseWidget(v)
	s.OnRender(v.Refresh)
	return v
}

func (v *Viewport) CreateRenderer() fyne.WidgetRenderer {
	r := &viewportRenderer{
		vp:    v,
		bg:    canvas.NewRectangle(colorBackground),
		empty: canvas.NewText("Open a file to view parts", colorEmptyText),
	}
	r.empty.Alignment = fyne.TextAlignCenter
	return r
}

// MinSize keeps the viewport usable inside split containers.
func (v *Viewport) MinSize() fyne.Size {
	v.ExtendBaseWidget(v)
	return fyne.NewSize(320, 240)
}

// Dragged orbits the camera.
func (v *Viewport) Dragged(e *fyne.DragEvent) {
	v.scene.Camera().Orbit(-e.Dragged.DX*orbitSpeed, e.Dragged.DY*orbitSpeed)
	v.Refresh()
}

func (v *Viewport) DragEnd() {}

// Scrolled zooms the camera.
func (v *Viewport) Scrolled(e *fyne.ScrollEvent) {
	switch {
	case e.Scrolled.DY > 0:
		v.scene.Camera().Zoom(1 / zoomStep)
	case e.Scrolled.DY < 0:
		v.scene.Camera().Zoom(zoomStep)
	default:
		return
	}
	v.Refresh()
}

// DoubleTapped refits the camera to the scene.
func (v *Viewport) DoubleTapped(*fyne.PointEvent) {
	v.scene.ResetCamera()
	v.Refresh()
}

type viewportRenderer struct {
	vp    *Viewport
	bg    *canvas.Rectangle
	empty *canvas.Text
	lines []*canvas.Line
	used  int
	size  fyne.Size
}

func (r *viewportRenderer) Layout(size fyne.Size) {
	r.size = size
	r.bg.Resize(size)
	r.empty.Resize(size)
	r.empty.Move(fyne.NewPos(0, 0))
	r.rebuild()
}

func (r *viewportRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *viewportRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.vp)
}

// rebuild projects the scene at the current size, reusing line objects
// between frames.
func (r *viewportRenderer) rebuild() {
	if r.size.Width <= 0 || r.size.Height <= 0 {
		r.used = 0
		return
	}
	segs := r.vp.scene.Wireframe(r.size.Width, r.size.Height)
	for len(r.lines) < len(segs) {
		r.lines = append(r.lines, canvas.NewLine(color.White))
	}
	for i, seg := range segs {
		l := r.lines[i]
		l.StrokeColor = seg.Colour
		l.StrokeWidth = seg.Width
		l.Position1 = fyne.NewPos(seg.X1, seg.Y1)
		l.Position2 = fyne.NewPos(seg.X2, seg.Y2)
		l.Show()
	}
	for i := len(segs); i < len(r.lines); i++ {
		r.lines[i].Hide()
	}
	r.used = len(segs)
	if r.used == 0 {
		r.empty.Show()
	} else {
		r.empty.Hide()
	}
}

func (r *viewportRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, r.used+2)
	objs = append(objs, r.bg)
	for _, l := range r.lines[:r.used] {
		objs = append(objs, l)
	}
	objs = append(objs, r.empty)
	return objs
}

func (r *viewportRenderer) Destroy() {}
