package blocks

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// Category groups palette items.
type Category string

const (
	CategoryBasic    Category = "basic"
	CategoryLayout   Category = "layout"
	CategoryAdvanced Category = "advanced"
	CategoryBlocks   Category = "blocks"
)

// PaletteItem is one draggable entry of the block palette.
type PaletteItem struct {
	Type     document.Type `json:"type" yaml:"type"`
	Label    string        `json:"label" yaml:"label"`
	Category Category      `json:"category" yaml:"category"`
}

// PaletteDragID is the drag identifier of a palette item.
func PaletteDragID(typ document.Type) string {
	return PalettePrefix + string(typ)
}

// PalettePrefix marks drag identifiers that originate from the palette.
const PalettePrefix = "palette-"

var paletteLayout = []struct {
	category Category
	types    []document.Type
}{
	{CategoryBasic, []document.Type{
		document.TypeText,
		document.TypeHeading,
		document.TypeButton,
		document.TypeLink,
		document.TypeImage,
		document.TypeDivider,
		document.TypeSpacer,
	}},
	{CategoryLayout, []document.Type{
		document.TypeContainer,
		document.TypeSection,
		document.TypeGrid,
		document.TypeHeader,
		document.TypeFooter,
	}},
	{CategoryAdvanced, []document.Type{
		document.TypeList,
		document.TypeSocial,
		document.TypeCodeInline,
		document.TypeCodeBlock,
		document.TypeMarkdown,
	}},
	{CategoryBlocks, []document.Type{
		document.TypeHero,
		document.TypeFeatures,
		document.TypeHeader,
		document.TypeFooter,
	}},
}

var labelOverrides = map[document.Type]string{
	document.TypeCodeInline: "Code",
	document.TypeHero:       "Hero Section",
	document.TypeFeatures:   "Features Grid",
}

// Label returns the human name of a block type.
func Label(typ document.Type) string {
	if l, ok := labelOverrides[typ]; ok {
		return l
	}
	words := strings.ReplaceAll(string(typ), "-", " ")
	return cases.Title(language.English).String(words)
}

// Palette lists the block palette grouped by category. Header and footer
// appear both as layout primitives and as ready-made blocks.
func Palette() []PaletteItem {
	var items []PaletteItem
	for _, group := range paletteLayout {
		for _, typ := range group.types {
			items = append(items, PaletteItem{Type: typ, Label: Label(typ), Category: group.category})
		}
	}
	return items
}
