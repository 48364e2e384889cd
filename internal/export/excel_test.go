package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/PartView/internal/importer"
	"github.com/piwi3910/PartView/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestCollectPartTableRowsSkipsGroups(t *testing.T) {
	rows := CollectPartTableRows(buildTestTree(t))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (Box, Hidden), got %d", len(rows))
	}
	if rows[0].Name != "Box" || rows[0].Group != "Assembly" {
		t.Errorf("expected Box in group Assembly, got %s in %q", rows[0].Name, rows[0].Group)
	}
	if rows[1].Name != "Hidden" || rows[1].Group != "" {
		t.Errorf("expected top-level Hidden, got %s in %q", rows[1].Name, rows[1].Group)
	}
}

func TestExportPartTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.xlsx")
	if err := ExportPartTable(path, buildTestTree(t)); err != nil {
		t.Fatalf("ExportPartTable failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(PartTableSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Part" || rows[0][2] != "Colour" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][2] != "200,30,30" {
		t.Errorf("expected colour 200,30,30, got %s", rows[1][2])
	}
	if rows[2][1] != "no" {
		t.Errorf("expected Hidden visibility 'no', got %s", rows[2][1])
	}
}

func TestExportPartTableReimports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.xlsx")
	if err := ExportPartTable(path, buildTestTree(t)); err != nil {
		t.Fatal(err)
	}

	palette := model.DefaultPalette()
	result := importer.Import(path, importer.Options{Palette: &palette})
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected import errors: %v", result.Errors)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	box := result.Entries[0]
	if box.Name != "Box" || box.Group != "Assembly" {
		t.Errorf("expected Box in Assembly, got %+v", box)
	}
	if box.Colour != (model.Colour{R: 200, G: 30, B: 30}) {
		t.Errorf("expected colour to survive reimport, got %v", box.Colour)
	}
	if result.Entries[1].Visible {
		t.Error("expected Hidden entry to be not visible")
	}
}

func TestExportPartTableEmptyTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.xlsx")
	if err := ExportPartTable(path, model.NewPartTree()); err == nil {
		t.Error("expected error for empty tree")
	}
}
