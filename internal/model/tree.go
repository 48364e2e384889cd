package model

// HeaderLabels are the column titles shown above the tree.
var HeaderLabels = [columnCount]string{"Part", "Visible", "Colour"}

// Index addresses one cell of the tree: a part and a column. The zero Index
// is invalid and stands for the (hidden) root.
type Index struct {
	row    int
	column int
	part   *Part
}

// IsValid reports whether the index points at a part.
func (i Index) IsValid() bool { return i.part != nil }

func (i Index) Row() int { return i.row }
func (i Index) Column() int { return i.column }
func (i Index) Part() *Part { return i.part }

// Sibling returns the cell of the same part in column, invalid when column
// is out of range.
func (i Index) Sibling(column int) Index {
	if !i.IsValid() || column < 0 || column >= columnCount {
		return Index{}
	}
	return Index{row: i.row, column: column, part: i.part}
}

// PartTree owns the root part and exposes row/column addressing for a tree
// view. The root itself is never shown; its children are the top level.
type PartTree struct {
	root *Part
}

// NewPartTree returns a tree with an empty, visible root.
func NewPartTree() *PartTree {
	return &PartTree{root: NewPart(HeaderLabels[ColumnName], true)}
}

// RootItem returns the root part.
func (t *PartTree) RootItem() *Part { return t.root }

func (t *PartTree) partFor(parent Index) *Part {
	if !parent.IsValid() {
		return t.root
	}
	return parent.part
}

// Index returns the cell at row/column under parent, or an invalid Index
// when out of range.
func (t *PartTree) Index(row, column int, parent Index) Index {
	p := t.partFor(parent)
	if column < 0 || column >= columnCount {
		return Index{}
	}
	child := p.Child(row)
	if child == nil {
		return Index{}
	}
	return Index{row: row, column: column, part: child}
}

// IndexOf returns the column-0 index of part, invalid for the root.
func (t *PartTree) IndexOf(part *Part) Index {
	if part == nil || part == t.root {
		return Index{}
	}
	return Index{row: part.Row(), part: part}
}

// RowCount returns the number of children under parent.
func (t *PartTree) RowCount(parent Index) int {
	return t.partFor(parent).ChildCount()
}

// ColumnCount is constant across the tree.
func (t *PartTree) ColumnCount(Index) int { return columnCount }

// Parent returns the index of the part owning index, invalid for top-level
// parts.
func (t *PartTree) Parent(index Index) Index {
	if !index.IsValid() {
		return Index{}
	}
	return t.IndexOf(index.part.parent)
}

// Data returns the display text at index.
func (t *PartTree) Data(index Index) string {
	if !index.IsValid() {
		return ""
	}
	return index.part.Data(index.column)
}

// SetData writes the display text at index and reports whether it applied.
func (t *PartTree) SetData(index Index, value string) bool {
	if !index.IsValid() {
		return false
	}
	return index.part.Set(index.column, value)
}

// HeaderData returns the column title, empty for unknown columns.
func (t *PartTree) HeaderData(column int) string {
	if column < 0 || column >= columnCount {
		return ""
	}
	return HeaderLabels[column]
}

// Find returns the part with the given id. The empty id names the root.
func (t *PartTree) Find(id string) *Part {
	if id == "" {
		return t.root
	}
	var found *Part
	t.root.Walk(func(p *Part) bool {
		if found != nil {
			return false
		}
		if p.id == id {
			found = p
			return false
		}
		return true
	})
	return found
}

// ChildIDs returns the ids of the children of the part with the given id.
func (t *PartTree) ChildIDs(id string) []string {
	p := t.Find(id)
	if p == nil {
		return nil
	}
	parent := t.IndexOf(p)
	ids := make([]string, t.RowCount(parent))
	for row := range ids {
		ids[row] = t.Index(row, ColumnName, parent).Part().ID()
	}
	return ids
}

// HasChildren reports whether the part at index has children. The invalid
// index stands for the root.
func (t *PartTree) HasChildren(index Index) bool {
	return t.RowCount(index) > 0
}

// Walk visits every part below the root in display order.
func (t *PartTree) Walk(fn func(*Part) bool) {
	for _, c := range t.root.children {
		c.Walk(fn)
	}
}

// Len counts the parts below the root.
func (t *PartTree) Len() int {
	n := 0
	t.Walk(func(*Part) bool {
		n++
		return true
	})
	return n
}

// Clone returns a deep copy sharing geometry with t.
func (t *PartTree) Clone() *PartTree {
	return &PartTree{root: t.root.Clone()}
}

// Restore replaces t's contents with a previously cloned tree.
func (t *PartTree) Restore(from *PartTree) {
	t.root = from.root
}
