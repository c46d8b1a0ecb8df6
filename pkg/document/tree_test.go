package document_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

func leaf(id string, typ document.Type) document.Component {
	return document.Component{ID: id, Type: typ, Props: document.Props{"content": id}}
}

func box(id string, typ document.Type, children ...document.Component) document.Component {
	if children == nil {
		children = []document.Component{}
	}
	return document.Component{ID: id, Type: typ, Props: document.Props{"style": map[string]any{}}, Children: children}
}

// sample builds:
//
//	a (text)
//	s (section)
//	  s1 (text)
//	  c (container)
//	    c1 (button)
//	    c2 (image)
//	g (grid)
//	  col1 (container)
//	  col2 (container)
//	    x (text)
func sample() []document.Component {
	grid := box("g", document.TypeGrid,
		box("col1", document.TypeContainer),
		box("col2", document.TypeContainer, leaf("x", document.TypeText)),
	)
	grid.Props["columns"] = 2
	return []document.Component{
		leaf("a", document.TypeText),
		box("s", document.TypeSection,
			leaf("s1", document.TypeText),
			box("c", document.TypeContainer,
				leaf("c1", document.TypeButton),
				leaf("c2", document.TypeImage),
			),
		),
		grid,
	}
}

func rootIDs(nodes []document.Component) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	tree := sample()
	for _, id := range document.IDs(tree) {
		found, ok := document.FindByID(tree, id)
		require.True(t, ok, id)
		assert.Equal(t, id, found.ID)
	}

	_, ok := document.FindByID(tree, "missing")
	assert.False(t, ok)

	_, ok = document.FindByID(nil, "a")
	assert.False(t, ok)
}

func TestParentOf(t *testing.T) {
	t.Parallel()

	tree := sample()

	parent, ok := document.ParentOf(tree, "c2")
	require.True(t, ok)
	assert.Equal(t, "c", parent)

	parent, ok = document.ParentOf(tree, "a")
	require.True(t, ok)
	assert.Empty(t, parent)

	_, ok = document.ParentOf(tree, "nope")
	assert.False(t, ok)
}

func TestAppendRoot(t *testing.T) {
	t.Parallel()

	tree := sample()
	out := document.AppendRoot(tree, leaf("z", document.TypeText))

	assert.Equal(t, []string{"a", "s", "g", "z"}, rootIDs(out))
	assert.Equal(t, []string{"a", "s", "g"}, rootIDs(tree))

	empty := document.AppendRoot(nil, leaf("hello", document.TypeText))
	require.Len(t, empty, 1)
}

func TestAppendRoot_DoesNotWriteIntoSpareCapacity(t *testing.T) {
	t.Parallel()

	base := make([]document.Component, 1, 4)
	base[0] = leaf("a", document.TypeText)

	first := document.AppendRoot(base, leaf("b", document.TypeText))
	second := document.AppendRoot(base, leaf("c", document.TypeText))

	assert.Equal(t, []string{"a", "b"}, rootIDs(first))
	assert.Equal(t, []string{"a", "c"}, rootIDs(second))
}

func TestInsertChild(t *testing.T) {
	t.Parallel()

	t.Run("into nested container", func(t *testing.T) {
		t.Parallel()

		tree := sample()
		node := leaf("new", document.TypeButton)
		out := document.InsertChild(tree, "c", node)

		found, ok := document.FindByID(out, "new")
		require.True(t, ok)
		assert.Equal(t, node, found)

		parent, _ := document.ParentOf(out, "new")
		assert.Equal(t, "c", parent)

		c, _ := document.FindByID(out, "c")
		assert.Equal(t, []string{"c1", "c2", "new"}, rootIDs(c.Children))
	})

	t.Run("into grid column", func(t *testing.T) {
		t.Parallel()

		out := document.InsertChild(sample(), "col1", leaf("btn", document.TypeButton))
		col, ok := document.FindByID(out, "col1")
		require.True(t, ok)
		require.Len(t, col.Children, 1)
		assert.Equal(t, document.TypeButton, col.Children[0].Type)
	})

	t.Run("missing parent is a no-op", func(t *testing.T) {
		t.Parallel()

		tree := sample()
		out := document.InsertChild(tree, "missing", leaf("new", document.TypeText))
		assert.Equal(t, document.Serialize(tree), document.Serialize(out))
		assert.False(t, document.Contains(out, "new"))
	})

	t.Run("leaf parent is a no-op", func(t *testing.T) {
		t.Parallel()

		out := document.InsertChild(sample(), "a", leaf("new", document.TypeText))
		assert.False(t, document.Contains(out, "new"))
	})

	t.Run("grid itself does not accept blocks", func(t *testing.T) {
		t.Parallel()

		out := document.InsertChild(sample(), "g", leaf("new", document.TypeText))
		assert.False(t, document.Contains(out, "new"))
	})
}

func TestRemoveByID(t *testing.T) {
	t.Parallel()

	tree := sample()

	out, removed, ok := document.RemoveByID(tree, "c")
	require.True(t, ok)
	assert.Equal(t, "c", removed.ID)
	assert.Len(t, removed.Children, 2)
	assert.False(t, document.Contains(out, "c"))
	assert.False(t, document.Contains(out, "c1"))
	assert.True(t, document.Contains(tree, "c"), "input must stay intact")

	same, _, ok := document.RemoveByID(tree, "missing")
	assert.False(t, ok)
	assert.Equal(t, document.Serialize(tree), document.Serialize(same))
}

func TestDeleteByID(t *testing.T) {
	t.Parallel()

	tree := sample()
	out := document.DeleteByID(tree, "s")

	for _, id := range []string{"s", "s1", "c", "c1", "c2"} {
		assert.False(t, document.Contains(out, id), id)
	}
	assert.Equal(t, []string{"a", "g"}, rootIDs(out))
}

func TestMoveToParent(t *testing.T) {
	t.Parallel()

	t.Run("root node into column", func(t *testing.T) {
		t.Parallel()

		out := document.MoveToParent(sample(), "a", "col1")
		assert.Equal(t, []string{"s", "g"}, rootIDs(out))
		parent, _ := document.ParentOf(out, "a")
		assert.Equal(t, "col1", parent)
	})

	t.Run("nested node into root section", func(t *testing.T) {
		t.Parallel()

		out := document.MoveToParent(sample(), "x", "s")
		s, _ := document.FindByID(out, "s")
		assert.Equal(t, []string{"s1", "c", "x"}, rootIDs(s.Children))
		col2, _ := document.FindByID(out, "col2")
		assert.Empty(t, col2.Children)
		assert.NotNil(t, col2.Children)
	})

	t.Run("missing node", func(t *testing.T) {
		t.Parallel()

		tree := sample()
		out := document.MoveToParent(tree, "missing", "s")
		assert.Equal(t, document.Serialize(tree), document.Serialize(out))
	})

	t.Run("into own descendant", func(t *testing.T) {
		t.Parallel()

		tree := sample()
		out := document.MoveToParent(tree, "s", "c")
		assert.Equal(t, document.Serialize(tree), document.Serialize(out))
		out = document.MoveToParent(tree, "s", "s")
		assert.Equal(t, document.Serialize(tree), document.Serialize(out))
	})

	t.Run("into missing parent keeps the node", func(t *testing.T) {
		t.Parallel()

		tree := sample()
		out := document.MoveToParent(tree, "a", "missing")
		assert.True(t, document.Contains(out, "a"))
	})
}

func TestMoveToRoot(t *testing.T) {
	t.Parallel()

	out := document.MoveToRoot(sample(), "c1")
	assert.Equal(t, []string{"a", "s", "g", "c1"}, rootIDs(out))
	c, _ := document.FindByID(out, "c")
	assert.Equal(t, []string{"c2"}, rootIDs(c.Children))

	tree := sample()
	same := document.MoveToRoot(tree, "missing")
	assert.Equal(t, document.Serialize(tree), document.Serialize(same))
}

func TestReorder(t *testing.T) {
	t.Parallel()

	t.Run("root siblings", func(t *testing.T) {
		t.Parallel()

		tree := []document.Component{
			leaf("A", document.TypeText),
			leaf("B", document.TypeText),
			leaf("C", document.TypeText),
		}
		assert.Equal(t, []string{"C", "A", "B"}, rootIDs(document.Reorder(tree, "C", "A")))
		assert.Equal(t, []string{"B", "C", "A"}, rootIDs(document.Reorder(tree, "A", "C")))
		assert.Equal(t, []string{"A", "B", "C"}, rootIDs(tree))
	})

	t.Run("nested siblings", func(t *testing.T) {
		t.Parallel()

		out := document.Reorder(sample(), "c2", "c1")
		c, _ := document.FindByID(out, "c")
		assert.Equal(t, []string{"c2", "c1"}, rootIDs(c.Children))
	})

	t.Run("same id is unchanged", func(t *testing.T) {
		t.Parallel()

		tree := sample()
		for _, id := range append(document.IDs(tree), "missing") {
			out := document.Reorder(tree, id, id)
			assert.Equal(t, document.Serialize(tree), document.Serialize(out), id)
		}
	})

	t.Run("different levels are a no-op", func(t *testing.T) {
		t.Parallel()

		tree := sample()
		out := document.Reorder(tree, "a", "c1")
		assert.Equal(t, document.Serialize(tree), document.Serialize(out))
	})
}

func TestUpdateByID(t *testing.T) {
	t.Parallel()

	tree := sample()
	out := document.UpdateByID(tree, "c1", document.Update{
		Props: document.Props{"href": "https://example.com"},
	})

	c1, _ := document.FindByID(out, "c1")
	assert.Equal(t, "https://example.com", c1.Props["href"])
	assert.Equal(t, "c1", c1.Props["content"], "unspecified keys survive")

	orig, _ := document.FindByID(tree, "c1")
	assert.NotContains(t, orig.Props, "href")

	out = document.UpdateByID(out, "c1", document.Update{Props: document.Props{"href": nil}})
	c1, _ = document.FindByID(out, "c1")
	assert.NotContains(t, c1.Props, "href")

	out = document.UpdateByID(tree, "c", document.Update{SetChildren: true, Children: []document.Component{}})
	c, _ := document.FindByID(out, "c")
	assert.Empty(t, c.Children)
	assert.NotNil(t, c.Children)

	same := document.UpdateByID(tree, "missing", document.Update{Props: document.Props{"x": 1}})
	assert.Equal(t, document.Serialize(tree), document.Serialize(same))
}

func TestMutation_StructuralSharing(t *testing.T) {
	t.Parallel()

	tree := sample()
	before := document.Serialize(tree)

	out := document.InsertChild(tree, "c", leaf("new", document.TypeText))

	assert.Equal(t, before, document.Serialize(tree), "input tree must not change")
	// Untouched grid subtree keeps its backing storage.
	assert.Same(t, &tree[2].Children[0], &out[2].Children[0])
	// The edited path is copied.
	assert.NotSame(t, &tree[1].Children[1], &out[1].Children[1])
	// Siblings on the edited path are copied by value but keep their props.
	assert.Equal(t,
		reflect.ValueOf(tree[1].Children[0].Props).Pointer(),
		reflect.ValueOf(out[1].Children[0].Props).Pointer(),
	)
}

func TestMutation_NoOpReturnsInput(t *testing.T) {
	t.Parallel()

	tree := sample()
	assert.Same(t, &tree[0], &document.InsertChild(tree, "missing", leaf("n", document.TypeText))[0])
	assert.Same(t, &tree[0], &document.Reorder(tree, "a", "c1")[0])
	assert.Same(t, &tree[0], &document.MoveToRoot(tree, "missing")[0])
	assert.Same(t, &tree[0], &document.DeleteByID(tree, "missing")[0])
}

func TestWalk(t *testing.T) {
	t.Parallel()

	depths := map[string]int{}
	document.Walk(sample(), func(c document.Component, depth int) bool {
		depths[c.ID] = depth
		return c.ID != "c"
	})

	assert.Equal(t, 0, depths["a"])
	assert.Equal(t, 1, depths["s1"])
	assert.Equal(t, 2, depths["x"])
	assert.NotContains(t, depths, "c1", "subtree skipped")
}

func TestDeepTree(t *testing.T) {
	t.Parallel()

	node := leaf("bottom", document.TypeText)
	for i := 0; i < 200; i++ {
		node = box("lvl"+string(rune('a'+i%26))+string(rune('0'+i/26)), document.TypeContainer, node)
	}
	tree := []document.Component{node}

	_, ok := document.FindByID(tree, "bottom")
	require.True(t, ok)

	out := document.MoveToRoot(tree, "bottom")
	assert.Equal(t, "bottom", out[1].ID)
}
