package model

import "testing"

func buildTree(t *testing.T) (*PartTree, *Part, *Part, *Part) {
	t.Helper()
	tree := NewPartTree()
	a, b, a1 := NewPart("a", true), NewPart("b", true), NewPart("a1", true)
	for _, step := range []struct{ parent, child *Part }{
		{tree.RootItem(), a}, {tree.RootItem(), b}, {a, a1},
	} {
		if err := step.parent.AppendChild(step.child); err != nil {
			t.Fatal(err)
		}
	}
	return tree, a, b, a1
}

func TestRowCountMatchesChildren(t *testing.T) {
	tree, a, b, _ := buildTree(t)

	if got := tree.RowCount(Index{}); got != 2 {
		t.Errorf("root row count = %d", got)
	}
	if got := tree.RowCount(tree.IndexOf(a)); got != a.ChildCount() {
		t.Errorf("a row count = %d", got)
	}
	if got := tree.RowCount(tree.IndexOf(b)); got != 0 {
		t.Errorf("b row count = %d", got)
	}
}

func TestIndexParentRoundTrip(t *testing.T) {
	tree, _, _, _ := buildTree(t)

	var check func(parent Index)
	check = func(parent Index) {
		for row := 0; row < tree.RowCount(parent); row++ {
			idx := tree.Index(row, 0, parent)
			if !idx.IsValid() {
				t.Fatalf("row %d invalid", row)
			}
			if got := tree.Parent(idx); got != parent {
				t.Errorf("Parent(Index(%d)) = %+v, want %+v", row, got, parent)
			}
			check(idx)
		}
	}
	check(Index{})
}

func TestIndexOutOfRange(t *testing.T) {
	tree, _, _, _ := buildTree(t)

	if tree.Index(5, 0, Index{}).IsValid() {
		t.Error("row out of range should be invalid")
	}
	if tree.Index(0, 3, Index{}).IsValid() {
		t.Error("column out of range should be invalid")
	}
	if tree.Parent(Index{}).IsValid() {
		t.Error("parent of root should be invalid")
	}
}

func TestDataAndSetData(t *testing.T) {
	tree, a, _, _ := buildTree(t)

	idx := tree.Index(0, ColumnColour, Index{})
	if !tree.SetData(idx, "1,2,3") {
		t.Fatal("SetData failed")
	}
	if tree.Data(idx) != "1,2,3" || a.Colour() != (Colour{R: 1, G: 2, B: 3}) {
		t.Errorf("colour not written, got %s", tree.Data(idx))
	}
	if tree.SetData(Index{}, "x") {
		t.Error("SetData on invalid index must fail")
	}
	if tree.Data(Index{}) != "" {
		t.Error("Data on invalid index must be empty")
	}
}

func TestSiblingAndHasChildren(t *testing.T) {
	tree, a, _, a1 := buildTree(t)

	idx := tree.IndexOf(a)
	colour := idx.Sibling(ColumnColour)
	if colour.Part() != a || colour.Column() != ColumnColour || colour.Row() != idx.Row() {
		t.Errorf("unexpected sibling %+v", colour)
	}
	if tree.Data(idx.Sibling(ColumnName)) != a.Name() {
		t.Errorf("expected name %q, got %q", a.Name(), tree.Data(idx.Sibling(ColumnName)))
	}
	if idx.Sibling(columnCount).IsValid() || (Index{}).Sibling(ColumnName).IsValid() {
		t.Error("out of range sibling must be invalid")
	}

	if !tree.HasChildren(Index{}) || !tree.HasChildren(idx) {
		t.Error("root and a have children")
	}
	if tree.HasChildren(tree.IndexOf(a1)) {
		t.Error("a1 is a leaf")
	}
}

func TestHeaderData(t *testing.T) {
	tree := NewPartTree()
	want := []string{"Part", "Visible", "Colour", ""}
	for col, w := range want {
		if got := tree.HeaderData(col); got != w {
			t.Errorf("HeaderData(%d) = %q, want %q", col, got, w)
		}
	}
	if tree.ColumnCount(Index{}) != 3 {
		t.Error("expected 3 columns")
	}
}

func TestFindAndChildIDs(t *testing.T) {
	tree, a, b, a1 := buildTree(t)

	if tree.Find(a1.ID()) != a1 {
		t.Error("Find did not locate nested part")
	}
	if tree.Find("") != tree.RootItem() {
		t.Error("empty id should be the root")
	}
	if tree.Find("missing") != nil {
		t.Error("unknown id should be nil")
	}

	ids := tree.ChildIDs("")
	if len(ids) != 2 || ids[0] != a.ID() || ids[1] != b.ID() {
		t.Errorf("root child ids = %v", ids)
	}
	if tree.ChildIDs("missing") != nil {
		t.Error("unknown id should have no children")
	}
}

func TestLenAndCloneRestore(t *testing.T) {
	tree, a, _, _ := buildTree(t)
	if tree.Len() != 3 {
		t.Errorf("Len = %d", tree.Len())
	}

	snap := tree.Clone()
	a.SetName("changed")
	_ = tree.RootItem().AppendChild(NewPart("extra", true))

	tree.Restore(snap)
	if tree.Len() != 3 {
		t.Errorf("restored Len = %d", tree.Len())
	}
	if tree.Find(a.ID()).Name() != "a" {
		t.Error("restore did not bring back the old name")
	}
}
