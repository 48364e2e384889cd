package ui

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PartView/internal/model"
	"github.com/piwi3910/PartView/internal/viewer"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app := test.NewTempApp(t)
	w := app.NewWindow("test")
	a := NewApp(app, w, Options{Config: model.DefaultAppConfig(), Palette: model.DefaultPalette()})
	a.SetupMenus()
	w.SetContent(a.Build())
	return a
}

func TestOptionsFormKeepsInitialValues(t *testing.T) {
	test.NewTempApp(t)
	palette := model.DefaultPalette()
	initial := viewer.EditValues{Name: "Lid", Colour: model.Colour{R: 10, G: 20, B: 30}, Visible: true}

	f := newOptionsForm(initial, &palette)
	assert.Equal(t, initial, f.values())
	assert.Len(t, f.items(), 6)
}

func TestOptionsFormPresetSetsSliders(t *testing.T) {
	test.NewTempApp(t)
	palette := model.DefaultPalette()
	f := newOptionsForm(viewer.EditValues{}, &palette)

	f.preset.SetSelected("Steel")
	assert.Equal(t, palette.FindByName("Steel").Colour, f.values().Colour)
	assert.Equal(t, palette.FindByName("Steel").Colour.NRGBA(), f.swatch.FillColor)
}

func TestThemeModes(t *testing.T) {
	base := theme.DefaultTheme()

	light := NewPartViewThemeFor("light")
	assert.Equal(t, base.Color(theme.ColorNameBackground, theme.VariantLight),
		light.Color(theme.ColorNameBackground, theme.VariantDark))

	system := NewPartViewThemeFor("system")
	assert.Equal(t, base.Color(theme.ColorNameBackground, theme.VariantDark),
		system.Color(theme.ColorNameBackground, theme.VariantDark))

	system.SetMode("Dark")
	assert.Equal(t, base.Color(theme.ColorNameBackground, theme.VariantDark),
		system.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, float32(12), system.Size(theme.SizeNameText))
}

func TestPartRowUpdate(t *testing.T) {
	test.NewTempApp(t)
	var toggled []bool
	row := newPartRow(nil)
	tree := model.NewPartTree()
	p := model.NewPart("Lid", false)
	p.SetColour(1, 2, 3)
	require.NoError(t, tree.RootItem().AppendChild(p))

	row.update(tree, tree.IndexOf(p), func(id string, v bool) {
		assert.Equal(t, p.ID(), id)
		toggled = append(toggled, v)
	})
	assert.Equal(t, "Lid", row.name.Text)
	assert.False(t, row.visible.Checked)
	assert.Equal(t, "false", row.visible.Text)
	assert.Equal(t, "1,2,3", row.colour.Text)
	assert.Empty(t, toggled, "binding must not report a toggle")

	row.visible.SetChecked(true)
	assert.Equal(t, []bool{true}, toggled)
}

func TestAppStatusLine(t *testing.T) {
	a := newTestApp(t)

	a.viewer.Button1()
	assert.Equal(t, viewer.MsgButton1, a.status.Text)

	a.showStatus("sticky", viewer.StatusSticky)
	assert.Equal(t, "sticky", a.status.Text)
}

func TestAppTracksTreeChanges(t *testing.T) {
	a := newTestApp(t)
	assert.Equal(t, appTitle, a.window.Title())
	assert.True(t, a.undoItem.Disabled)

	g := a.viewer.NewGroup("Frame")
	require.NotNil(t, g)

	assert.Equal(t, appTitle+" *", a.window.Title())
	assert.False(t, a.undoItem.Disabled)
	assert.Equal(t, "Undo New Group", a.undoItem.Label)
	assert.Equal(t, []string{g.ID()}, a.tree.ChildUIDs(""))

	a.undo()
	assert.Equal(t, 0, a.viewer.Tree().Len())
	assert.Equal(t, "Redo New Group", a.redoItem.Label)
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t)
	cfg := model.DefaultAppConfig()
	cfg.DefaultColour = model.Colour{R: 200}
	cfg.Theme = "dark"

	a.applyConfig(cfg)
	p, err := a.viewer.AddPrimitive("box", 2)
	require.NoError(t, err)
	assert.Equal(t, model.Colour{R: 200}, p.Colour())
	assert.Equal(t, "dark", a.config.Theme)
}

const triangleSTL = `solid tri
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
endsolid tri
`

func TestOpenFolderOpensSupportedFiles(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	for _, name := range []string{"b.stl", "a.stl", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(triangleSTL), 0644))
	}

	a.OpenFolder(dir)

	root := a.viewer.Tree().RootItem()
	require.Equal(t, 2, root.ChildCount())
	assert.Equal(t, filepath.Join(dir, "a.stl"), root.Child(0).Source())
	assert.Equal(t, filepath.Join(dir, "b.stl"), root.Child(1).Source())
	assert.Equal(t, "Opened 2 files.", a.status.Text)
}

func TestOpenFolderWithoutSupportedFiles(t *testing.T) {
	a := newTestApp(t)

	a.OpenFolder(t.TempDir())

	assert.Equal(t, 0, a.viewer.Tree().Len())
	assert.Contains(t, a.status.Text, "No .dxf, .stl files")
}
