package blocks

import "github.com/dmitrymomot/mailforge/pkg/document"

type style = map[string]any

type builder func(f *Factory) (document.Props, []document.Component)

func leafProps(p document.Props) builder {
	return func(*Factory) (document.Props, []document.Component) {
		return p.Clone(), nil
	}
}

func networks(names ...string) []any {
	out := make([]any, len(names))
	for i, name := range names {
		out[i] = map[string]any{"name": name, "href": "#"}
	}
	return out
}

func node(id string, typ document.Type, props document.Props, children ...document.Component) document.Component {
	c := document.Component{ID: id, Type: typ, Props: props}
	if typ.IsContainer() {
		c.Children = append([]document.Component{}, children...)
	}
	return c
}

var defaults = map[document.Type]builder{
	document.TypeText: leafProps(document.Props{
		"content": "Your text here...",
		"style":   style{},
	}),
	document.TypeHeading: leafProps(document.Props{
		"content": "Your Heading",
		"level":   2,
		"style":   style{},
	}),
	document.TypeButton: leafProps(document.Props{
		"content":         "Click me",
		"href":            "#",
		"backgroundColor": "#3b82f6",
		"color":           "#ffffff",
		"style":           style{},
	}),
	document.TypeLink: leafProps(document.Props{
		"content": "Link",
		"href":    "#",
		"style":   style{"color": "#3b82f6", "textDecoration": "underline"},
	}),
	document.TypeImage: leafProps(document.Props{
		"src":   "https://via.placeholder.com/600x300",
		"alt":   "Image",
		"style": style{},
	}),
	document.TypeDivider: leafProps(document.Props{
		"color": "#e5e7eb",
		"style": style{},
	}),
	document.TypeSpacer: leafProps(document.Props{
		"height": "24px",
		"style":  style{},
	}),
	document.TypeList: leafProps(document.Props{
		"items":   []any{"Item 1", "Item 2", "Item 3"},
		"ordered": false,
		"style":   style{},
	}),
	document.TypeCodeInline: leafProps(document.Props{
		"content": "code",
		"style":   style{},
	}),
	document.TypeCodeBlock: leafProps(document.Props{
		"content":  `console.log("Hello")`,
		"language": "javascript",
		"style":    style{},
	}),
	document.TypeMarkdown: leafProps(document.Props{
		"content": "# Markdown content",
		"style":   style{},
	}),
	document.TypeSocial: func(*Factory) (document.Props, []document.Component) {
		return document.Props{
			"networks": networks("facebook", "twitter", "instagram"),
			"style":    style{"justifyContent": "center"},
		}, nil
	},
	document.TypeContainer: func(*Factory) (document.Props, []document.Component) {
		return document.Props{"padding": "16px", "style": style{}}, []document.Component{}
	},
	document.TypeSection: func(*Factory) (document.Props, []document.Component) {
		return document.Props{"padding": "16px", "backgroundColor": "#f9fafb", "style": style{}}, []document.Component{}
	},
	document.TypeGrid: func(f *Factory) (document.Props, []document.Component) {
		return document.Props{"columns": 2, "style": style{}},
			[]document.Component{f.Column(), f.Column()}
	},
	document.TypeHeader: func(f *Factory) (document.Props, []document.Component) {
		return document.Props{
				"style": style{"padding": "20px", "backgroundColor": "#ffffff", "textAlign": "center"},
			}, []document.Component{
				node(f.ID("header-img-"), document.TypeImage, document.Props{
					"src":            "https://via.placeholder.com/150x50?text=Logo",
					"alt":            "Company Logo",
					"style":          style{"margin": "0 auto 10px auto", "maxWidth": "150px"},
					"containerStyle": style{"textAlign": "center"},
				}),
				node(f.ID("header-h-"), document.TypeHeading, document.Props{
					"content": "Company Name",
					"level":   3,
					"style":   style{"margin": "0", "color": "#333333"},
				}),
			}
	},
	document.TypeFooter: func(f *Factory) (document.Props, []document.Component) {
		return document.Props{
				"style": style{"padding": "30px 20px", "backgroundColor": "#f3f4f6", "textAlign": "center"},
			}, []document.Component{
				node(f.ID("footer-soc-"), document.TypeSocial, document.Props{
					"networks": networks("twitter", "facebook", "instagram"),
					"style":    style{"justifyContent": "center", "marginBottom": "20px"},
				}),
				node(f.ID("footer-copy-"), document.TypeText, document.Props{
					"content": "© 2024 Company Name. All rights reserved.",
					"style":   style{"fontSize": "12px", "color": "#6b7280", "margin": "0 0 10px 0"},
				}),
				node(f.ID("footer-addr-"), document.TypeText, document.Props{
					"content": "123 Business Street, Suite 100<br>City, State 12345",
					"style":   style{"fontSize": "12px", "color": "#9ca3af", "margin": "0"},
				}),
			}
	},
	document.TypeHero: func(f *Factory) (document.Props, []document.Component) {
		return document.Props{
				"padding":         "40px 20px",
				"backgroundColor": "#f3f4f6",
				"style":           style{"textAlign": "center"},
			}, []document.Component{
				node(f.ID("hero-h-"), document.TypeHeading, document.Props{
					"level":   1,
					"content": "Welcome to Our Service",
					"style":   style{"textAlign": "center"},
				}),
				node(f.ID("hero-t-"), document.TypeText, document.Props{
					"content": "The best way to manage your emails.",
					"style":   style{"textAlign": "center", "fontSize": "18px", "color": "#4b5563"},
				}),
				node(f.ID("hero-s-"), document.TypeSpacer, document.Props{"height": "20px"}),
				node(f.ID("hero-b-"), document.TypeButton, document.Props{
					"content": "Get Started",
					"href":    "#",
					"style":   style{"display": "inline-block"},
				}),
			}
	},
	document.TypeFeatures: func(f *Factory) (document.Props, []document.Component) {
		feature := func(n string) document.Component {
			prefix := "feat-c" + n + "-"
			return node(f.ID(prefix), document.TypeContainer, document.Props{
				"style": style{"textAlign": "center"},
			},
				node(f.ID(prefix+"h-"), document.TypeHeading, document.Props{
					"level":   3,
					"content": "Feature " + n,
					"style":   style{"textAlign": "center"},
				}),
				node(f.ID(prefix+"t-"), document.TypeText, document.Props{
					"content": "Description of feature " + n + ".",
					"style":   style{"textAlign": "center"},
				}),
			)
		}
		return document.Props{
				"padding":         "40px 20px",
				"backgroundColor": "#ffffff",
				"style":           style{},
			}, []document.Component{
				node(f.ID("feat-h-"), document.TypeHeading, document.Props{
					"level":   2,
					"content": "Key Features",
					"style":   style{"textAlign": "center"},
				}),
				node(f.ID("feat-s-"), document.TypeSpacer, document.Props{"height": "30px"}),
				node(f.ID("feat-g-"), document.TypeGrid, document.Props{
					"columns": 2,
					"style":   style{},
				}, feature("1"), feature("2")),
			}
	},
}
