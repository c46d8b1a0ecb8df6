package blocks_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/blocks"
	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/idgen"
)

func newFactory() *blocks.Factory {
	return blocks.NewFactory(blocks.WithGenerator(idgen.Sequence()))
}

func TestNew_AllTypes(t *testing.T) {
	t.Parallel()

	f := newFactory()
	for _, typ := range document.Types() {
		t.Run(string(typ), func(t *testing.T) {
			c := f.New(typ)
			assert.Equal(t, typ, c.Type)
			assert.True(t, strings.HasPrefix(c.ID, blocks.ComponentPrefix))
			assert.NotNil(t, c.Props)
			assert.Equal(t, typ.IsContainer(), c.HasChildren())
			require.NoError(t, document.Validate([]document.Component{c}))
		})
	}
}

func TestDefault_BaselineProps(t *testing.T) {
	t.Parallel()

	f := newFactory()
	tests := []struct {
		typ  document.Type
		key  string
		want string
	}{
		{document.TypeText, document.PropContent, "Your text here..."},
		{document.TypeHeading, document.PropContent, "Your Heading"},
		{document.TypeButton, document.PropContent, "Click me"},
		{document.TypeButton, document.PropHref, "#"},
		{document.TypeButton, document.PropBackgroundColor, "#3b82f6"},
		{document.TypeImage, document.PropSrc, "https://via.placeholder.com/600x300"},
		{document.TypeImage, document.PropAlt, "Image"},
		{document.TypeDivider, document.PropColor, "#e5e7eb"},
		{document.TypeSpacer, document.PropHeight, "24px"},
		{document.TypeContainer, document.PropPadding, "16px"},
		{document.TypeSection, document.PropBackgroundColor, "#f9fafb"},
		{document.TypeCodeBlock, document.PropLanguage, "javascript"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ)+"/"+tt.key, func(t *testing.T) {
			c := f.Default(tt.typ)
			assert.Equal(t, tt.want, c.Props.String(tt.key, ""))
		})
	}

	assert.Equal(t, 2, f.Default(document.TypeHeading).Props.Int(document.PropLevel, 0))
}

func TestDefault_ContainersStartEmpty(t *testing.T) {
	t.Parallel()

	f := newFactory()
	for _, typ := range []document.Type{document.TypeContainer, document.TypeSection} {
		c := f.Default(typ)
		require.NotNil(t, c.Children)
		assert.Empty(t, c.Children)
	}
	assert.Nil(t, f.Default(document.TypeText).Children)
}

func TestDefault_Grid(t *testing.T) {
	t.Parallel()

	grid := newFactory().New(document.TypeGrid)
	assert.Equal(t, 2, grid.Props.Int(document.PropColumns, 0))
	require.Len(t, grid.Children, 2)
	for _, col := range grid.Children {
		assert.Equal(t, document.TypeContainer, col.Type)
		assert.True(t, strings.HasPrefix(col.ID, "col-"))
		assert.NotNil(t, col.Children)
		assert.Empty(t, col.Children)
	}
}

func TestDefault_Composites(t *testing.T) {
	t.Parallel()

	f := newFactory()

	hero := f.New(document.TypeHero)
	require.Len(t, hero.Children, 4)
	assert.Equal(t, document.TypeHeading, hero.Children[0].Type)
	assert.Equal(t, 1, hero.Children[0].Props.Int(document.PropLevel, 0))
	assert.Equal(t, "Get Started", hero.Children[3].Props.String(document.PropContent, ""))

	header := f.New(document.TypeHeader)
	require.Len(t, header.Children, 2)
	assert.Equal(t, document.TypeImage, header.Children[0].Type)
	assert.Equal(t, "center", header.Children[0].Props.Style(document.PropContainerStyle).Value("textAlign"))

	footer := f.New(document.TypeFooter)
	require.Len(t, footer.Children, 3)
	assert.Equal(t, document.TypeSocial, footer.Children[0].Type)
	assert.Len(t, footer.Children[0].Props.Networks(), 3)

	features := f.New(document.TypeFeatures)
	require.Len(t, features.Children, 3)
	grid := features.Children[2]
	assert.Equal(t, document.TypeGrid, grid.Type)
	require.Len(t, grid.Children, 2)
	assert.Equal(t, "Feature 2", grid.Children[1].Children[0].Props.String(document.PropContent, ""))
}

func TestNew_FreshIDsPerCall(t *testing.T) {
	t.Parallel()

	f := blocks.NewFactory()
	a := f.New(document.TypeFeatures)
	b := f.New(document.TypeFeatures)

	tree := []document.Component{a, b}
	require.NoError(t, document.Validate(tree))

	seen := make(map[string]bool)
	for _, id := range document.IDs(tree) {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestDefault_IndependentProps(t *testing.T) {
	t.Parallel()

	f := newFactory()
	a := f.Default(document.TypeList)
	a.Props[document.PropItems].([]any)[0] = "changed"

	b := f.Default(document.TypeList)
	assert.Equal(t, []string{"Item 1", "Item 2", "Item 3"}, b.Props.Strings(document.PropItems))
}

func TestResize(t *testing.T) {
	t.Parallel()

	f := newFactory()
	grid := f.New(document.TypeGrid)
	first := grid.Children[0]
	grid.Children[1].Children = []document.Component{{ID: "x", Type: document.TypeText, Props: document.Props{}}}

	grown := f.Resize(grid, 3)
	require.Len(t, grown.Children, 3)
	assert.Equal(t, 3, grown.Props.Int(document.PropColumns, 0))
	assert.Equal(t, first.ID, grown.Children[0].ID)
	assert.Equal(t, "x", grown.Children[1].Children[0].ID)
	assert.Empty(t, grown.Children[2].Children)
	assert.Len(t, grid.Children, 2, "input untouched")

	shrunk := f.Resize(grown, 1)
	require.Len(t, shrunk.Children, 1)
	assert.Equal(t, first.ID, shrunk.Children[0].ID)
	assert.False(t, document.Contains(shrunk.Children, "x"))

	assert.Equal(t, grid, f.Resize(grid, 0))
	text := f.New(document.TypeText)
	assert.Equal(t, text, f.Resize(text, 3))
}

func TestResizeByID(t *testing.T) {
	t.Parallel()

	f := newFactory()
	grid := f.New(document.TypeGrid)
	section := f.New(document.TypeSection)
	section.Children = []document.Component{grid}
	tree := []document.Component{section}

	out := f.ResizeByID(tree, grid.ID, 4)
	got, ok := document.FindByID(out, grid.ID)
	require.True(t, ok)
	assert.Len(t, got.Children, 4)
	assert.Equal(t, 4, got.Props.Int(document.PropColumns, 0))

	orig, _ := document.FindByID(tree, grid.ID)
	assert.Len(t, orig.Children, 2)

	assert.Equal(t, tree, f.ResizeByID(tree, "missing", 3))
	assert.Equal(t, tree, f.ResizeByID(tree, section.ID, 3))
}

func TestPalette(t *testing.T) {
	t.Parallel()

	items := blocks.Palette()
	labels := make(map[document.Type]string)
	counts := make(map[blocks.Category]int)
	for _, it := range items {
		labels[it.Type] = it.Label
		counts[it.Category]++
	}

	assert.Equal(t, 7, counts[blocks.CategoryBasic])
	assert.Equal(t, 5, counts[blocks.CategoryLayout])
	assert.Equal(t, 5, counts[blocks.CategoryAdvanced])
	assert.Equal(t, 4, counts[blocks.CategoryBlocks])

	assert.Equal(t, "Text", labels[document.TypeText])
	assert.Equal(t, "Code", labels[document.TypeCodeInline])
	assert.Equal(t, "Code Block", labels[document.TypeCodeBlock])
	assert.Equal(t, "Hero Section", labels[document.TypeHero])
	assert.Equal(t, "Features Grid", labels[document.TypeFeatures])
	assert.Equal(t, "palette-grid", blocks.PaletteDragID(document.TypeGrid))

	for _, typ := range document.Types() {
		assert.Contains(t, labels, typ)
	}
}
