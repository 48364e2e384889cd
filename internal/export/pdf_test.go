package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PartView/internal/geometry"
	"github.com/piwi3910/PartView/internal/model"
	"github.com/piwi3910/PartView/internal/scene"
)

// buildTestTree creates an assembly with one nested box and a hidden
// top-level part without geometry.
func buildTestTree(t *testing.T) *model.PartTree {
	t.Helper()
	tree := model.NewPartTree()

	asm := model.NewPart("Assembly", true)
	if err := tree.RootItem().AppendChild(asm); err != nil {
		t.Fatal(err)
	}

	box := model.NewPart("Box", true)
	g, err := geometry.Primitive(geometry.PrimitiveBox, 10, 8)
	if err != nil {
		t.Fatal(err)
	}
	box.SetGeometry(g, "")
	box.SetColour(200, 30, 30)
	if err := asm.AppendChild(box); err != nil {
		t.Fatal(err)
	}

	hidden := model.NewPart("Hidden", false)
	if err := tree.RootItem().AppendChild(hidden); err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestCollectReportRows(t *testing.T) {
	rows := CollectReportRows(buildTestTree(t))
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []struct {
		name  string
		depth int
	}{{"Assembly", 0}, {"Box", 1}, {"Hidden", 0}}
	for i, w := range want {
		if rows[i].Name != w.name || rows[i].Depth != w.depth {
			t.Errorf("row %d: expected %s at depth %d, got %s at depth %d", i, w.name, w.depth, rows[i].Name, rows[i].Depth)
		}
	}
	if rows[1].Triangles == 0 {
		t.Error("expected box row to report triangles")
	}
	if rows[1].Colour != (model.Colour{R: 200, G: 30, B: 30}) {
		t.Errorf("unexpected box colour %v", rows[1].Colour)
	}
	if rows[2].Visible {
		t.Error("expected Hidden row to be not visible")
	}
}

func TestExportReport(t *testing.T) {
	tree := buildTestTree(t)
	path := filepath.Join(t.TempDir(), "report.pdf")

	if err := ExportReport(path, tree, nil); err != nil {
		t.Fatalf("ExportReport failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF file is empty")
	}
}

func TestExportReportWithView(t *testing.T) {
	tree := buildTestTree(t)
	view := scene.New()
	tree.Walk(func(p *model.Part) bool {
		view.Add(p.Actor())
		return true
	})
	view.ResetCamera()

	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.pdf")
	withView := filepath.Join(dir, "view.pdf")
	if err := ExportReport(plain, tree, nil); err != nil {
		t.Fatal(err)
	}
	if err := ExportReport(withView, tree, view); err != nil {
		t.Fatalf("ExportReport with view failed: %v", err)
	}

	a, _ := os.Stat(plain)
	b, _ := os.Stat(withView)
	if b.Size() <= a.Size() {
		t.Errorf("expected view page to grow the PDF: %d <= %d", b.Size(), a.Size())
	}
}

func TestExportReportManyRowsPaginates(t *testing.T) {
	tree := model.NewPartTree()
	for i := 0; i < 120; i++ {
		_ = tree.RootItem().AppendChild(model.NewPart("Part", true))
	}
	path := filepath.Join(t.TempDir(), "long.pdf")
	if err := ExportReport(path, tree, nil); err != nil {
		t.Fatalf("ExportReport failed: %v", err)
	}
}

func TestExportReportEmptyTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportReport(path, model.NewPartTree(), nil); err == nil {
		t.Error("expected error for empty tree")
	}
}
