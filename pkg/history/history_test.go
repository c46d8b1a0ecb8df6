package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/history"
)

func text(id, content string) document.Component {
	return document.Component{ID: id, Type: document.TypeText, Props: document.Props{"content": content}}
}

func tree(nodes ...document.Component) []document.Component {
	return nodes
}

func TestNew(t *testing.T) {
	t.Parallel()

	h := history.New(nil)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.NotNil(t, h.Current())
	assert.Empty(t, h.Current())
}

func TestCommit_SkipsEqualTrees(t *testing.T) {
	t.Parallel()

	e0 := tree(text("a", "x"))
	h := history.New(e0)

	assert.False(t, h.Commit(tree(text("a", "x"))), "structurally equal tree")
	assert.Equal(t, 1, h.Len())

	assert.True(t, h.Commit(tree(text("a", "y"))))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
}

func TestLinearity(t *testing.T) {
	t.Parallel()

	e0 := tree()
	e1 := tree(text("a", "1"))
	e2 := tree(text("a", "1"), text("b", "2"))
	e3 := tree(text("a", "1"), text("c", "3"))

	h := history.New(e0)
	require.True(t, h.Commit(e1))
	require.True(t, h.Commit(e2))

	cur, moved := h.Undo()
	require.True(t, moved)
	assert.True(t, document.Equal(e1, cur))

	require.True(t, h.Commit(e3))

	entries := h.Entries()
	require.Len(t, entries, 3)
	assert.True(t, document.Equal(e0, entries[0]))
	assert.True(t, document.Equal(e1, entries[1]))
	assert.True(t, document.Equal(e3, entries[2]))
	assert.False(t, h.CanRedo())
}

func TestUndoRedo_Boundaries(t *testing.T) {
	t.Parallel()

	e0 := tree(text("a", "0"))
	e1 := tree(text("a", "1"))
	h := history.New(e0)
	h.Commit(e1)

	cur, moved := h.Redo()
	assert.False(t, moved)
	assert.True(t, document.Equal(e1, cur))

	_, moved = h.Undo()
	assert.True(t, moved)
	cur, moved = h.Undo()
	assert.False(t, moved)
	assert.True(t, document.Equal(e0, cur))
	assert.Equal(t, 0, h.Cursor())

	cur, moved = h.Redo()
	assert.True(t, moved)
	assert.True(t, document.Equal(e1, cur))
}

func TestCommit_ComparesAgainstCursorEntry(t *testing.T) {
	t.Parallel()

	e0 := tree(text("a", "0"))
	e1 := tree(text("a", "1"))
	h := history.New(e0)
	h.Commit(e1)
	h.Undo()

	// Re-committing the tree under the cursor keeps the redo branch.
	assert.False(t, h.Commit(e0))
	assert.True(t, h.CanRedo())
}

func TestSnapshotsAreIsolated(t *testing.T) {
	t.Parallel()

	live := tree(text("a", "before"))
	h := history.New(live)

	live[0].Props["content"] = "mutated"
	assert.Equal(t, "before", h.Current()[0].Props["content"])

	cur := h.Current()
	cur[0].Props["content"] = "again"
	assert.Equal(t, "before", h.Current()[0].Props["content"])
}

func TestWithLimit(t *testing.T) {
	t.Parallel()

	h := history.New(tree(), history.WithLimit(3))
	for _, v := range []string{"1", "2", "3", "4"} {
		h.Commit(tree(text("a", v)))
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
	entries := h.Entries()
	assert.Equal(t, "2", entries[0][0].Props["content"])
	assert.Equal(t, "4", entries[2][0].Props["content"])
}

func TestReset(t *testing.T) {
	t.Parallel()

	h := history.New(tree())
	h.Commit(tree(text("a", "1")))
	h.Reset(tree(text("b", "2")))

	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
	assert.Equal(t, "b", h.Current()[0].ID)
}
