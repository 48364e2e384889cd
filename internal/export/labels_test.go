package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PartView/internal/model"
)

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestTree(t))
	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}

	box := labels[1]
	if box.Name != "Box" {
		t.Fatalf("expected second label Box, got %s", box.Name)
	}
	if box.Path != "Assembly / Box" {
		t.Errorf("expected path 'Assembly / Box', got %q", box.Path)
	}
	if box.Colour != "200,30,30" {
		t.Errorf("expected colour 200,30,30, got %s", box.Colour)
	}
	if box.ID == "" {
		t.Error("expected label to carry the part id")
	}
	if labels[2].Visible {
		t.Error("expected Hidden label to be not visible")
	}
}

func TestLabelInfoJSON(t *testing.T) {
	info := LabelInfo{ID: "abc12345", Name: "Box", Path: "Assembly / Box", Colour: "1,2,3", Visible: true}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatal(err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "name", "path", "colour", "visible"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("expected key %q in label JSON", key)
		}
	}
	if _, ok := fields["source"]; ok {
		t.Error("expected empty source to be omitted")
	}
}

func TestExportLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestTree(t)); err != nil {
		t.Fatalf("ExportLabels failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("labels PDF not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("labels PDF is empty")
	}
}

func TestExportLabelsMultiplePages(t *testing.T) {
	tree := model.NewPartTree()
	for i := 0; i < labelsPerPage+5; i++ {
		_ = tree.RootItem().AppendChild(model.NewPart("Part", true))
	}

	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := ExportLabels(path, tree); err != nil {
		t.Fatalf("ExportLabels failed: %v", err)
	}
}

func TestExportLabelsEmptyTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := ExportLabels(path, model.NewPartTree()); err == nil {
		t.Error("expected error for empty tree")
	}
}
