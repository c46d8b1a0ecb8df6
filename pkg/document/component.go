package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
)

// Type identifies the kind of a block.
type Type string

const (
	TypeText       Type = "text"
	TypeHeading    Type = "heading"
	TypeImage      Type = "image"
	TypeButton     Type = "button"
	TypeLink       Type = "link"
	TypeDivider    Type = "divider"
	TypeSpacer     Type = "spacer"
	TypeContainer  Type = "container"
	TypeSection    Type = "section"
	TypeGrid       Type = "grid"
	TypeSocial     Type = "social"
	TypeList       Type = "list"
	TypeCodeInline Type = "code-inline"
	TypeCodeBlock  Type = "code-block"
	TypeMarkdown   Type = "markdown"
	TypeHeader     Type = "header"
	TypeFooter     Type = "footer"
	TypeHero       Type = "hero"
	TypeFeatures   Type = "features"
)

var allTypes = []Type{
	TypeText,
	TypeHeading,
	TypeImage,
	TypeButton,
	TypeLink,
	TypeDivider,
	TypeSpacer,
	TypeContainer,
	TypeSection,
	TypeGrid,
	TypeSocial,
	TypeList,
	TypeCodeInline,
	TypeCodeBlock,
	TypeMarkdown,
	TypeHeader,
	TypeFooter,
	TypeHero,
	TypeFeatures,
}

// Types returns every known block type in palette order.
func Types() []Type {
	return slices.Clone(allTypes)
}

// Valid reports whether t belongs to the closed set of block types.
func (t Type) Valid() bool {
	return slices.Contains(allTypes, t)
}

// IsContainer reports whether nodes of this type own a children list.
func (t Type) IsContainer() bool {
	switch t {
	case TypeContainer, TypeSection, TypeGrid, TypeHeader, TypeFooter, TypeHero, TypeFeatures:
		return true
	default:
		return false
	}
}

// AcceptsDrop reports whether arbitrary blocks may be appended to this type.
// Grids only hold columns, which are managed through column resizing.
func (t Type) AcceptsDrop() bool {
	return t.IsContainer() && t != TypeGrid
}

func (t Type) String() string { return string(t) }

// Component is one node of the template tree.
// Children is nil for leaf types and non-nil (possibly empty) for containers.
type Component struct {
	ID       string      `json:"id" yaml:"id"`
	Type     Type        `json:"type" yaml:"type"`
	Props    Props       `json:"props" yaml:"props"`
	Children []Component `json:"children,omitempty" yaml:"children,omitempty"`
}

// wireComponent keeps an empty but present children list on the wire.
type wireComponent struct {
	ID       string       `json:"id" yaml:"id"`
	Type     Type         `json:"type" yaml:"type"`
	Props    Props        `json:"props" yaml:"props"`
	Children *[]Component `json:"children,omitempty" yaml:"children,omitempty"`
}

func (c Component) wire() wireComponent {
	w := wireComponent{ID: c.ID, Type: c.Type, Props: c.Props}
	if w.Props == nil {
		w.Props = Props{}
	}
	if c.Children != nil {
		children := c.Children
		w.Children = &children
	}
	return w
}

// MarshalJSON writes children only for nodes that own a children list.
func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.wire())
}

// MarshalYAML mirrors MarshalJSON for YAML documents.
func (c Component) MarshalYAML() (any, error) {
	return c.wire(), nil
}

// HasChildren reports whether the node owns a children list, even an empty one.
func (c Component) HasChildren() bool {
	return c.Children != nil
}

// Clone returns a deep copy of the node, its props and its subtree.
func (c Component) Clone() Component {
	out := Component{ID: c.ID, Type: c.Type, Props: c.Props.Clone()}
	if c.Children != nil {
		out.Children = CloneAll(c.Children)
	}
	return out
}

// CloneAll deep-copies a list of nodes. A nil input stays nil.
func CloneAll(nodes []Component) []Component {
	if nodes == nil {
		return nil
	}
	out := make([]Component, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// Template is the root-level sequence exchanged with the host application.
type Template struct {
	Components []Component `json:"components" yaml:"components"`
}

// MarshalJSON always emits a components array, never null.
func (t Template) MarshalJSON() ([]byte, error) {
	components := t.Components
	if components == nil {
		components = []Component{}
	}
	return json.Marshal(struct {
		Components []Component `json:"components"`
	}{components})
}

// Marshal encodes a tree as compact JSON. Map keys are sorted, so equal
// trees always produce identical bytes. It fails for props JSON cannot
// represent, such as NaN or channels.
func Marshal(nodes []Component) ([]byte, error) {
	if nodes == nil {
		nodes = []Component{}
	}
	b, err := json.Marshal(nodes)
	if err != nil {
		return nil, errors.Join(ErrUnencodableProps, err)
	}
	return b, nil
}

// Serialize is Marshal for trees already known to encode. A tree that does
// not encode serializes to nil.
func Serialize(nodes []Component) []byte {
	b, _ := Marshal(nodes)
	return b
}

// Equal reports whether two trees serialize identically.
func Equal(a, b []Component) bool {
	return bytes.Equal(Serialize(a), Serialize(b))
}

// Decode parses a JSON template. Both the {"components": [...]} envelope and
// a bare array are accepted.
func Decode(data []byte) (Template, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var nodes []Component
		if err := json.Unmarshal(data, &nodes); err != nil {
			return Template{}, errors.Join(ErrMalformedTemplate, err)
		}
		return Template{Components: nodes}, nil
	}
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return Template{}, errors.Join(ErrMalformedTemplate, err)
	}
	return t, nil
}
