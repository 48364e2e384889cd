// Package ui provides the PartView application UI components.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"

	"github.com/piwi3910/PartView/internal/export"
	"github.com/piwi3910/PartView/internal/geometry"
	partimporter "github.com/piwi3910/PartView/internal/importer"
	"github.com/piwi3910/PartView/internal/model"
	"github.com/piwi3910/PartView/internal/project"
	"github.com/piwi3910/PartView/internal/scene"
	"github.com/piwi3910/PartView/internal/ui/widgets"
	"github.com/piwi3910/PartView/internal/viewer"
)

const appTitle = "PartView"

// Options configures the application shell.
type Options struct {
	Logger      *zap.Logger
	Metrics     *scene.Metrics
	Config      model.AppConfig
	ConfigPath  string
	Palette     model.Palette
	PalettePath string
}

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	logger *zap.Logger

	config      model.AppConfig
	configPath  string
	palette     model.Palette
	palettePath string
	theme       *PartViewTheme

	scene       *scene.Scene
	loader      *geometry.Registry
	viewer      *viewer.Viewer
	projectPath string

	// UI references for dynamic updates
	tree      *widget.Tree
	viewport  *widgets.Viewport
	status    *widget.Label
	statusGen int

	mainMenu *fyne.MainMenu
	undoItem *fyne.MenuItem
	redoItem *fyne.MenuItem
}

// NewApp wires the viewer core to a Fyne window.
func NewApp(application fyne.App, window fyne.Window, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		app:         application,
		window:      window,
		logger:      logger.Named("ui"),
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		palette:     opts.Palette,
		palettePath: opts.PalettePath,
		scene:       scene.New(),
		loader:      geometry.NewRegistry(opts.Config.DXFThickness),
		status:      widget.NewLabel(""),
	}

	colour := a.config.DefaultColour
	a.viewer = viewer.New(viewer.Options{
		Logger:          logger.Named("viewer"),
		Loader:          a.loader,
		Renderer:        a.scene,
		Metrics:         opts.Metrics,
		Status:          a.showStatus,
		MeshCells:       a.config.MeshCells,
		PrimitiveColour: &colour,
	})
	a.viewer.OnTreeChanged(a.onTreeChanged)

	a.theme = NewPartViewThemeFor(a.config.Theme)
	application.Settings().SetTheme(a.theme)
	return a
}

// Viewer exposes the toolkit-free core.
func (a *App) Viewer() *viewer.Viewer { return a.viewer }

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recentMenu := fyne.NewMenuItem("Open Recent", nil)
	recentMenu.ChildMenu = a.buildRecentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open File...", a.openFile),
		fyne.NewMenuItem("Open Folder...", a.openFolder),
		recentMenu,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("New Project", a.newProject),
		fyne.NewMenuItem("Open Project...", a.openProject),
		fyne.NewMenuItem("Save Project", a.saveProject),
		fyne.NewMenuItem("Save Project As...", a.saveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Part List...", a.importPartList),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Report (PDF)...", a.exportReport),
		fyne.NewMenuItem("Export Labels (PDF)...", a.exportLabels),
		fyne.NewMenuItem("Export Part Table (Excel)...", a.exportPartTable),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Colour Palette...", a.showPaletteDialog),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	a.undoItem = fyne.NewMenuItem("Undo", a.undo)
	a.undoItem.Shortcut = undoShortcut
	a.redoItem = fyne.NewMenuItem("Redo", a.redo)
	a.redoItem.Shortcut = redoShortcut
	editMenu := fyne.NewMenu("Edit",
		a.undoItem,
		a.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Item Options...", a.editSelected),
		fyne.NewMenuItem("New Group...", a.showNewGroupDialog),
		fyne.NewMenuItem("Remove", a.removeSelected),
	)

	var addItems []*fyne.MenuItem
	for _, kind := range geometry.PrimitiveKinds {
		kind := kind
		label := strings.ToUpper(string(kind[:1])) + string(kind[1:])
		addItems = append(addItems, fyne.NewMenuItem(label, func() { a.addPrimitive(kind) }))
	}
	addMenu := fyne.NewMenu("Add", addItems...)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reset Camera", func() {
			a.scene.ResetCamera()
			a.scene.Render()
		}),
		fyne.NewMenuItem("Camera Settings...", a.showCameraDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, addMenu, viewMenu, helpMenu)
	a.window.SetMainMenu(a.mainMenu)
	a.refreshHistoryMenu()
}

func (a *App) buildRecentMenu() *fyne.Menu {
	if len(a.config.RecentFiles) == 0 {
		item := fyne.NewMenuItem("(none)", nil)
		item.Disabled = true
		return fyne.NewMenu("", item)
	}
	var items []*fyne.MenuItem
	for _, path := range a.config.RecentFiles {
		path := path
		items = append(items, fyne.NewMenuItem(path, func() { a.OpenFiles([]string{path}) }))
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PartView",
		"PartView - Part Tree Viewer\n\n"+
			"Browse STL and DXF parts in a tree, colour and hide them,\n"+
			"and export reports, labels and part tables.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

var (
	undoShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redoShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}
)

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.tree = a.buildTree()

	treeToolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Item Options", a.editSelected),
		newIconButtonWithTooltip(theme.FolderNewIcon(), "New Group", a.showNewGroupDialog),
		newIconButtonWithTooltip(theme.DeleteIcon(), "Remove", a.removeSelected),
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo),
		newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo),
	)

	var headers []fyne.CanvasObject
	tree := a.viewer.Tree()
	for col := 0; col < tree.ColumnCount(model.Index{}); col++ {
		headers = append(headers, widget.NewLabelWithStyle(tree.HeaderData(col), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	}

	buttons := container.NewGridWithColumns(2,
		newButtonWithTooltip("Button 1", "Report the click on the status line", a.viewer.Button1),
		newButtonWithTooltip("Button 2", "Open the options dialog without a part", func() {
			a.viewer.Button2(a.optionsDialog())
		}),
	)

	left := container.NewBorder(
		container.NewVBox(treeToolbar, container.NewGridWithColumns(len(headers), headers...), widget.NewSeparator()),
		buttons,
		nil, nil,
		a.tree,
	)

	a.viewport = widgets.NewViewport(a.scene)
	split := container.NewHSplit(left, a.viewport)
	split.Offset = 0.35

	content := container.NewBorder(
		nil,
		container.NewVBox(widget.NewSeparator(), a.status),
		nil, nil,
		split,
	)

	a.window.Canvas().AddShortcut(undoShortcut, func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(redoShortcut, func(fyne.Shortcut) { a.redo() })
	a.updateTitle()

	return fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas())
}

// ─── Part Tree ─────────────────────────────────────────────

func (a *App) buildTree() *widget.Tree {
	t := widget.NewTree(
		func(id widget.TreeNodeID) []widget.TreeNodeID {
			return a.viewer.Tree().ChildIDs(id)
		},
		func(id widget.TreeNodeID) bool {
			tree := a.viewer.Tree()
			p := tree.Find(id)
			return p != nil && (p.Parent() == nil || tree.HasChildren(tree.IndexOf(p)))
		},
		func(bool) fyne.CanvasObject {
			return newPartRow(a.showRowMenu)
		},
		func(id widget.TreeNodeID, _ bool, obj fyne.CanvasObject) {
			tree := a.viewer.Tree()
			if idx := tree.IndexOf(tree.Find(id)); idx.IsValid() {
				obj.(*partRow).update(tree, idx, a.viewer.SetVisible)
			}
		},
	)
	t.OnSelected = func(id widget.TreeNodeID) {
		a.viewer.Select(id)
	}
	t.OnUnselected = func(id widget.TreeNodeID) {
		if sel := a.viewer.Selected(); sel != nil && sel.ID() == id {
			a.viewer.ClearSelection()
		}
	}
	return t
}

func (a *App) showRowMenu(id string, pos fyne.Position) {
	if id == "" {
		return
	}
	a.tree.Select(id)
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Item Options...", a.editSelected),
		fyne.NewMenuItem("New Group...", a.showNewGroupDialog),
		fyne.NewMenuItem("Remove", a.removeSelected),
	)
	widget.ShowPopUpMenuAtPosition(menu, a.window.Canvas(), pos)
}

func (a *App) onTreeChanged() {
	if a.tree != nil {
		if a.viewer.Selected() == nil {
			a.tree.UnselectAll()
		}
		a.tree.Refresh()
	}
	a.refreshHistoryMenu()
	a.updateTitle()
}

func (a *App) refreshHistoryMenu() {
	if a.undoItem == nil {
		return
	}
	h := a.viewer.History()
	a.undoItem.Label = strings.TrimSpace("Undo " + h.NextUndoLabel())
	a.undoItem.Disabled = !h.CanUndo()
	a.redoItem.Label = strings.TrimSpace("Redo " + h.NextRedoLabel())
	a.redoItem.Disabled = !h.CanRedo()
	a.mainMenu.Refresh()
}

func (a *App) updateTitle() {
	title := appTitle
	if a.projectPath != "" {
		title += " - " + filepath.Base(a.projectPath)
	}
	if a.viewer.Dirty() {
		title += " *"
	}
	a.window.SetTitle(title)
}

// ─── Status Line ───────────────────────────────────────────

// showStatus puts msg on the status line. A positive timeout clears it
// later unless another message replaced it first.
func (a *App) showStatus(msg string, timeoutMs int) {
	a.statusGen++
	gen := a.statusGen
	a.status.SetText(msg)
	if timeoutMs <= 0 {
		return
	}
	time.AfterFunc(time.Duration(timeoutMs)*time.Millisecond, func() {
		fyne.Do(func() {
			if a.statusGen == gen {
				a.status.SetText("")
			}
		})
	})
}

// ─── Edit Actions ──────────────────────────────────────────

func (a *App) optionsDialog() viewer.EditDialog {
	return &optionsDialog{window: a.window, palette: &a.palette}
}

func (a *App) editSelected() {
	a.viewer.EditSelected(a.optionsDialog())
}

func (a *App) removeSelected() {
	a.viewer.RemoveSelected()
}

func (a *App) undo() { a.viewer.Undo() }
func (a *App) redo() { a.viewer.Redo() }

func (a *App) addPrimitive(kind geometry.PrimitiveKind) {
	if _, err := a.viewer.AddPrimitive(kind, a.config.PrimitiveSize); err != nil {
		dialog.ShowError(fmt.Errorf("failed to add %s: %w", kind, err), a.window)
	}
}

// ─── File Actions ──────────────────────────────────────────

// OpenFiles loads geometry files as new parts and remembers them as recent.
func (a *App) OpenFiles(paths []string) {
	if len(paths) == 0 {
		return
	}
	err := a.viewer.OpenFiles(paths)
	for _, p := range paths {
		a.config.AddRecentFile(p)
	}
	a.saveConfigQuietly()
	if a.mainMenu != nil {
		a.SetupMenus()
	}
	if err != nil {
		dialog.ShowError(err, a.window)
	}
}

func (a *App) openFile() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.OpenFiles([]string{path})
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(a.loader.Extensions()))
	d.Show()
}

// openFolder opens every supported file directly inside a chosen folder
// as one batch. The Fyne file dialog picks a single file, so this is the
// multi-file path of Open File.
func (a *App) openFolder() {
	d := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		a.OpenFolder(dir.Path())
	}, a.window)
	d.Show()
}

// OpenFolder opens the supported files directly inside dir, sorted by name.
func (a *App) OpenFolder(dir string) {
	paths, err := a.loader.MatchingFiles(dir)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if len(paths) == 0 {
		a.showStatus(fmt.Sprintf("No %s files in %s", strings.Join(a.loader.Extensions(), ", "), dir), viewer.StatusLong)
		return
	}
	a.OpenFiles(paths)
}

func (a *App) newProject() {
	a.confirmDiscard(func() {
		a.projectPath = ""
		a.viewer.Replace(model.NewPartTree())
	})
}

// confirmDiscard runs fn straight away when nothing is unsaved, otherwise
// after the user agrees to drop the changes.
func (a *App) confirmDiscard(fn func()) {
	if !a.viewer.Dirty() {
		fn()
		return
	}
	dialog.ShowConfirm("Unsaved Changes", "Discard the unsaved changes?", func(ok bool) {
		if ok {
			fn()
		}
	}, a.window)
}

func (a *App) openProject() {
	a.confirmDiscard(func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()
			a.OpenProject(path)
		}, a.window)
		d.SetFilter(storage.NewExtensionFileFilter([]string{project.FileExtension}))
		d.Show()
	})
}

// OpenProject replaces the tree with the project at path.
func (a *App) OpenProject(path string) {
	result, err := project.LoadProject(path, a.loader)
	if err != nil {
		a.logger.Error("project load failed", zap.String("path", path), zap.Error(err))
		dialog.ShowError(err, a.window)
		return
	}
	a.projectPath = path
	a.viewer.Replace(result.Tree)
	a.config.AddRecentProject(path)
	a.saveConfigQuietly()
	a.showStatus(fmt.Sprintf("Opened project %s.", filepath.Base(path)), viewer.StatusLong)
	if result.LoadErrors != nil {
		dialog.ShowError(fmt.Errorf("some part geometry could not be loaded: %w", result.LoadErrors), a.window)
	}
}

func (a *App) saveProject() {
	if a.projectPath == "" {
		a.saveProjectAs()
		return
	}
	a.writeProject(a.projectPath)
}

func (a *App) saveProjectAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if !strings.EqualFold(filepath.Ext(path), project.FileExtension) {
			path += project.FileExtension
		}
		a.writeProject(path)
	}, a.window)
	d.SetFileName("untitled" + project.FileExtension)
	d.Show()
}

func (a *App) writeProject(path string) {
	if err := project.SaveProject(path, a.viewer.Tree()); err != nil {
		a.logger.Error("project save failed", zap.String("path", path), zap.Error(err))
		dialog.ShowError(err, a.window)
		return
	}
	a.projectPath = path
	a.viewer.MarkSaved()
	a.config.AddRecentProject(path)
	a.saveConfigQuietly()
	a.updateTitle()
	a.showStatus(fmt.Sprintf("Saved %s.", filepath.Base(path)), viewer.StatusShort)
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importPartList() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(partimporter.Import(path, partimporter.Options{Palette: &a.palette}))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".txt", ".xlsx", ".xlsm"}))
	d.Show()
}

func (a *App) handleImportResult(result partimporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.logger.Warn("part list import", zap.String("warning", w))
	}
	if len(result.Entries) == 0 {
		return
	}
	if err := a.viewer.ImportEntries(result.Entries); err != nil {
		dialog.ShowError(err, a.window)
	}
}

// saveFile asks for a destination and runs write on the chosen path.
func (a *App) saveFile(defaultName, what string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			a.logger.Error("export failed", zap.String("what", what), zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		a.showStatus(fmt.Sprintf("%s saved to %s", what, path), viewer.StatusLong)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportReport() {
	a.saveFile("parts-report.pdf", "Report", func(path string) error {
		return export.ExportReport(path, a.viewer.Tree(), a.scene)
	})
}

func (a *App) exportLabels() {
	a.saveFile("part-labels.pdf", "Labels", func(path string) error {
		return export.ExportLabels(path, a.viewer.Tree())
	})
}

func (a *App) exportPartTable() {
	a.saveFile("parts.xlsx", "Part table", func(path string) error {
		return export.ExportPartTable(path, a.viewer.Tree())
	})
}
