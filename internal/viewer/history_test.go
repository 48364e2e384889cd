package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PartView/internal/model"
)

func treeWith(names ...string) *model.PartTree {
	tree := model.NewPartTree()
	for _, n := range names {
		_ = tree.RootItem().AppendChild(model.NewPart(n, true))
	}
	return tree
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, defaultMaxDepth, h.maxDepth)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Push(Snapshot{Tree: treeWith(), Label: "empty"})
	h.Push(Snapshot{Tree: treeWith("a"), Label: "one"})

	assert.Equal(t, "one", h.NextUndoLabel())
	restored, ok := h.Undo(Snapshot{Tree: treeWith("a", "b"), Label: "one"})
	require.True(t, ok)
	assert.Equal(t, 1, restored.Tree.Len())
	assert.True(t, h.CanRedo())
	assert.Equal(t, "one", h.NextRedoLabel())

	redone, ok := h.Redo(Snapshot{Tree: restored.Tree, Label: "one"})
	require.True(t, ok)
	assert.Equal(t, 2, redone.Tree.Len())
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(Snapshot{Label: "a"})
	_, _ = h.Undo(Snapshot{Label: "a"})
	require.True(t, h.CanRedo())

	h.Push(Snapshot{Label: "b"})
	assert.False(t, h.CanRedo())
}

func TestHistoryMaxDepth(t *testing.T) {
	h := NewHistory()
	for i := 0; i < defaultMaxDepth+10; i++ {
		h.Push(Snapshot{Label: string(rune('A' + i%26))})
	}
	assert.Len(t, h.undoStack, defaultMaxDepth)

	h.Clear()
	assert.False(t, h.CanUndo())
	_, ok := h.Undo(Snapshot{})
	assert.False(t, ok)
	_, ok = h.Redo(Snapshot{})
	assert.False(t, ok)
	assert.Equal(t, "", h.NextUndoLabel())
}
