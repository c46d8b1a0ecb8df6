// Package htmlgen renders a template tree into a standalone, table-based HTML
// email document with inline styles.
//
// Rendering is a pure function of the tree: style declarations are emitted in
// sorted key order, so equal trees always produce byte-identical output.
// Unknown block types render as an empty string and never abort the document.
package htmlgen

import (
	"html"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

const documentHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Email</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td align="center" style="padding: 40px 0;">
                <table role="presentation" style="width: 600px; border-collapse: collapse;">
                    <tr>
                        <td style="padding: 40px;">
`

const documentTail = `
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`

var headingSizes = map[int]string{
	1: "32px",
	2: "24px",
	3: "20px",
	4: "18px",
	5: "16px",
	6: "14px",
}

// Render returns the complete HTML document for the tree.
func Render(nodes []document.Component) string {
	var b strings.Builder
	b.WriteString(documentHead)
	b.WriteString(Fragment(nodes))
	b.WriteString(documentTail)
	return b.String()
}

// Fragment renders the nodes without the surrounding document skeleton.
func Fragment(nodes []document.Component) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, Component(n))
	}
	return strings.Join(parts, "\n")
}

// Component renders a single node and its subtree.
func Component(c document.Component) string {
	p := c.Props
	style := StyleString(p.Style(document.PropStyle))

	switch c.Type {
	case document.TypeText:
		return `<p style="margin: 8px 0; direction: ltr; ` + attr(style) + `">` + p.String(document.PropContent, "") + `</p>`

	case document.TypeHeading:
		level := p.HeadingLevel()
		size := headingSizes[level]
		tag := "h" + strconv.Itoa(level)
		return `<` + tag + ` style="margin: 16px 0; font-size: ` + size + `; font-weight: bold; direction: ltr; ` + attr(style) + `">` +
			p.String(document.PropContent, "") + `</` + tag + `>`

	case document.TypeButton:
		align := p.Style(document.PropStyle).Get("textAlign", "left")
		return `<table role="presentation" style="margin: 16px 0;">
    <tr>
        <td style="text-align: ` + attr(align) + `;">
            <a href="` + attr(p.String(document.PropHref, "#")) + `" style="display: inline-block; padding: 12px 24px; background-color: ` +
			attr(p.String(document.PropBackgroundColor, "#3b82f6")) + `; color: ` + attr(p.String(document.PropColor, "#ffffff")) +
			`; text-decoration: none; border-radius: 6px; font-weight: 500; direction: ltr; ` + attr(style) + `">` +
			p.String(document.PropContent, "") + `</a>
        </td>
    </tr>
</table>`

	case document.TypeLink:
		return `<a href="` + attr(p.String(document.PropHref, "#")) + `" style="direction: ltr; ` + attr(style) + `">` +
			p.String(document.PropContent, "") + `</a>`

	case document.TypeImage:
		container := StyleString(p.Style(document.PropContainerStyle))
		return `<div style="margin: 16px 0; ` + attr(container) + `">
    <img src="` + attr(p.String(document.PropSrc, "")) + `" alt="` + attr(p.String(document.PropAlt, "")) +
			`" style="max-width: 100%; height: auto; ` + attr(style) + `" />
</div>`

	case document.TypeDivider:
		return `<hr style="margin: 24px 0; border: none; border-top: 1px solid ` + attr(p.String(document.PropColor, "#e5e7eb")) + `; ` + attr(style) + `" />`

	case document.TypeSpacer:
		return `<div style="height: ` + attr(p.String(document.PropHeight, "24px")) + `; ` + attr(style) + `"></div>`

	case document.TypeContainer:
		return block(`padding: `+attr(p.String(document.PropPadding, "16px"))+`; background-color: `+
			attr(p.String(document.PropBackgroundColor, "transparent"))+`; `+attr(style), c.Children)

	case document.TypeSection:
		return block(`margin: 24px 0; padding: `+attr(p.String(document.PropPadding, "16px"))+`; background-color: `+
			attr(p.String(document.PropBackgroundColor, "#f9fafb"))+`; border-radius: 8px; `+attr(style), c.Children)

	case document.TypeHero, document.TypeFeatures:
		return block(`padding: `+attr(p.String(document.PropPadding, "16px"))+`; background-color: `+
			attr(p.String(document.PropBackgroundColor, "transparent"))+`; `+attr(style), c.Children)

	case document.TypeHeader, document.TypeFooter:
		if len(c.Children) == 0 {
			return `<div style="` + attr(style) + `">` + p.String(document.PropContent, "") + `</div>`
		}
		return block(attr(style), c.Children)

	case document.TypeGrid:
		return grid(c, style)

	case document.TypeList:
		tag := "ul"
		if p.Bool(document.PropOrdered) {
			tag = "ol"
		}
		var b strings.Builder
		b.WriteString(`<` + tag + ` style="margin: 8px 0; padding-left: 24px; ` + attr(style) + `">`)
		for _, item := range p.Strings(document.PropItems) {
			b.WriteString("\n    <li>" + item + "</li>")
		}
		b.WriteString("\n</" + tag + ">")
		return b.String()

	case document.TypeCodeInline:
		return `<code style="font-family: monospace; background-color: #f3f4f6; padding: 2px 4px; border-radius: 4px; ` + attr(style) + `">` +
			html.EscapeString(p.String(document.PropContent, "")) + `</code>`

	case document.TypeCodeBlock:
		return `<pre style="margin: 16px 0; padding: 16px; background-color: #1f2937; color: #f9fafb; border-radius: 6px; overflow-x: auto; ` + attr(style) + `">` +
			`<code class="language-` + attr(p.String(document.PropLanguage, "javascript")) + `">` +
			html.EscapeString(p.String(document.PropContent, "")) + `</code></pre>`

	case document.TypeMarkdown:
		return `<div style="` + attr(style) + `">` + p.String(document.PropContent, "") + `</div>`

	case document.TypeSocial:
		return social(p, style)

	default:
		return ""
	}
}

func block(style string, children []document.Component) string {
	return `<div style="` + style + `">
` + Fragment(children) + `
</div>`
}

func grid(c document.Component, style string) string {
	var b strings.Builder
	b.WriteString(`<table role="presentation" style="width: 100%; border-collapse: collapse; ` + attr(style) + `">` + "\n    <tr>")
	width := ""
	if n := len(c.Children); n > 0 {
		width = "width: " + strconv.Itoa(100/n) + "%; "
	}
	for _, col := range c.Children {
		colStyle := StyleString(col.Props.Style(document.PropStyle))
		b.WriteString("\n        <td style=\"vertical-align: top; " + width + attr(colStyle) + "\">\n")
		b.WriteString(Fragment(col.Children))
		b.WriteString("\n        </td>")
	}
	b.WriteString("\n    </tr>\n</table>")
	return b.String()
}

func social(p document.Props, style string) string {
	var b strings.Builder
	align := p.Style(document.PropStyle).Get("justifyContent", "center")
	b.WriteString(`<div style="text-align: ` + attr(align) + `; ` + attr(style) + `">`)
	for _, n := range p.Networks() {
		href := n.Href
		if href == "" {
			href = "#"
		}
		b.WriteString("\n    <a href=\"" + attr(href) + "\" style=\"display: inline-block; margin: 0 8px; color: #3b82f6; text-decoration: none;\">" +
			html.EscapeString(n.Name) + "</a>")
	}
	b.WriteString("\n</div>")
	return b.String()
}

// StyleString formats a style map as CSS declarations, converting camelCase
// names to kebab-case. Keys are emitted in sorted order.
func StyleString(s document.Style) string {
	keys := s.Keys()
	decls := make([]string, 0, len(keys))
	for _, k := range keys {
		decls = append(decls, Kebab(k)+": "+s.Value(k))
	}
	return strings.Join(decls, "; ")
}

// Kebab converts a camelCase CSS property name to its kebab-case form.
func Kebab(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func attr(s string) string {
	return html.EscapeString(s)
}
