// Package blocks produces the default content of every block type.
//
// Simple blocks get a fixed baseline prop set. Composite blocks (hero,
// features, header, footer) and grids come with a prebuilt subtree whose
// nodes receive fresh IDs from the factory's generator on every call, so two
// presets dropped into the same template never share an ID.
//
//	f := blocks.NewFactory()
//	hero := f.New(document.TypeHero)       // id "component-<uuid>", four children
//	grid := f.Resize(f.New(document.TypeGrid), 3)
package blocks

import (
	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/idgen"
)

// ComponentPrefix is prepended to the IDs of nodes created from the palette.
const ComponentPrefix = "component-"

// Factory builds default components.
type Factory struct {
	gen idgen.Generator
}

// Option configures a Factory.
type Option func(*Factory)

// WithGenerator sets the ID source. Nil generators are ignored.
func WithGenerator(gen idgen.Generator) Option {
	return func(f *Factory) {
		if gen != nil {
			f.gen = gen
		}
	}
}

// NewFactory returns a factory backed by idgen.Default unless overridden.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{gen: idgen.Default}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ID mints a fresh identifier with the given prefix.
func (f *Factory) ID(prefix string) string {
	return prefix + f.gen()
}

// New returns the default component for typ with a freshly minted ID.
func (f *Factory) New(typ document.Type) document.Component {
	c := f.Default(typ)
	c.ID = f.ID(ComponentPrefix)
	return c
}

// Default returns the baseline component for typ without an ID on the root
// node. Child nodes of composite presets already carry unique IDs. Container
// types always get a non-nil children list; leaves never do. Unknown types
// get an empty style and no children.
func (f *Factory) Default(typ document.Type) document.Component {
	c := document.Component{Type: typ}
	build, ok := defaults[typ]
	if ok {
		c.Props, c.Children = build(f)
	} else {
		c.Props = document.Props{document.PropStyle: style{}}
	}
	if typ.IsContainer() && c.Children == nil {
		c.Children = []document.Component{}
	}
	if !typ.IsContainer() {
		c.Children = nil
	}
	return c
}

// Column returns an empty grid column.
func (f *Factory) Column() document.Component {
	return document.Component{
		ID:       f.ID("col-"),
		Type:     document.TypeContainer,
		Props:    document.Props{document.PropStyle: style{}},
		Children: []document.Component{},
	}
}

// Resize sets a grid's column count. New columns are empty containers
// appended at the end; surplus columns are cut from the end together with
// their content. Surviving columns are not touched. Non-grid nodes and
// counts below one are returned unchanged.
func (f *Factory) Resize(grid document.Component, columns int) document.Component {
	if grid.Type != document.TypeGrid || columns < 1 {
		return grid
	}

	current := grid.Children
	next := make([]document.Component, 0, columns)
	if len(current) >= columns {
		next = append(next, current[:columns]...)
	} else {
		next = append(next, current...)
		for len(next) < columns {
			next = append(next, f.Column())
		}
	}

	grid.Props = grid.Props.Merge(document.Props{document.PropColumns: columns})
	grid.Children = next
	return grid
}

// ResizeByID applies Resize to the grid with the given id anywhere in the tree.
func (f *Factory) ResizeByID(nodes []document.Component, gridID string, columns int) []document.Component {
	grid, ok := document.FindByID(nodes, gridID)
	if !ok || grid.Type != document.TypeGrid || columns < 1 {
		return nodes
	}
	resized := f.Resize(grid, columns)
	return document.UpdateByID(nodes, gridID, document.Update{
		Props:       document.Props{document.PropColumns: columns},
		Children:    resized.Children,
		SetChildren: true,
	})
}
