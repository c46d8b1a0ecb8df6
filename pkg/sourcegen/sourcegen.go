// Package sourcegen renders a template tree as a React Email component module.
//
// The output is a complete source file: a fixed import list from
// @react-email/components followed by a default-exported Email component.
// Nodes are indented two spaces per level, starting inside <Body>. Style
// objects are inlined as JSON literals with sorted keys, so equal trees
// produce identical source.
package sourcegen

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// BodyLevel is the indentation level of top-level nodes inside <Body>.
const BodyLevel = 3

const preamble = `import {
  Html,
  Head,
  Body,
  Container,
  Section,
  Text,
  Heading,
  Button,
  Link,
  Img,
  Hr,
  Row,
  Column,
  Code,
  CodeBlock,
  Markdown,
  SocialIcon,
} from '@react-email/components'

export default function Email() {
  return (
    <Html>
      <Head />
      <Body style={{ fontFamily: 'Arial, sans-serif', backgroundColor: '#f4f4f4' }}>
`

const epilogue = `
      </Body>
    </Html>
  )
}
`

// Render returns the full source module for the tree.
func Render(nodes []document.Component) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString(Nodes(nodes, BodyLevel))
	b.WriteString(epilogue)
	return b.String()
}

// Nodes renders sibling nodes at the given indentation level, one per line.
func Nodes(nodes []document.Component, level int) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, Component(n, level))
	}
	return strings.Join(parts, "\n")
}

// Component renders one node and its subtree at the given indentation level.
func Component(c document.Component, level int) string {
	p := c.Props
	ind := indent(level)
	style := styleLiteral(p.Style(document.PropStyle))
	content := p.String(document.PropContent, "")

	switch c.Type {
	case document.TypeText:
		return ind + "<Text style={{ margin: '8px 0', ..." + style + " }}>\n" +
			ind + "  " + content + "\n" +
			ind + "</Text>"

	case document.TypeHeading:
		return ind + `<Heading as="h` + strconv.Itoa(p.HeadingLevel()) + `" style={` + style + "}>\n" +
			ind + "  " + content + "\n" +
			ind + "</Heading>"

	case document.TypeButton:
		return ind + `<Button href="` + p.String(document.PropHref, "#") + `" style={{ backgroundColor: '` +
			p.String(document.PropBackgroundColor, "#3b82f6") + "', color: '" + p.String(document.PropColor, "#ffffff") +
			"', padding: '12px 24px', borderRadius: '4px', textDecoration: 'none', display: 'inline-block', ..." + style + " }}>\n" +
			ind + "  " + content + "\n" +
			ind + "</Button>"

	case document.TypeLink:
		return ind + `<Link href="` + p.String(document.PropHref, "#") + `" style={` + style + "}>\n" +
			ind + "  " + content + "\n" +
			ind + "</Link>"

	case document.TypeImage:
		return ind + `<Img src="` + p.String(document.PropSrc, "") + `" alt="` + p.String(document.PropAlt, "") +
			`" style={` + style + "} />"

	case document.TypeDivider:
		return ind + "<Hr style={{ borderColor: '" + p.String(document.PropColor, "#e5e7eb") + "', margin: '16px 0', ..." + style + " }} />"

	case document.TypeSpacer:
		return ind + "<div style={{ height: '" + p.String(document.PropHeight, "24px") + "' }} />"

	case document.TypeContainer, document.TypeSection, document.TypeHero, document.TypeFeatures:
		tag := "Section"
		background := "transparent"
		switch c.Type {
		case document.TypeContainer:
			tag = "Container"
		case document.TypeSection:
			background = "#f9fafb"
		}
		return ind + "<" + tag + " style={{ padding: '" + p.String(document.PropPadding, "16px") +
			"', backgroundColor: '" + p.String(document.PropBackgroundColor, background) + "', ..." + style + " }}>" +
			children(c.Children, level) + "</" + tag + ">"

	case document.TypeGrid:
		return ind + "<Row>" + columns(c.Children, level) + "</Row>"

	case document.TypeHeader, document.TypeFooter:
		inner := children(c.Children, level)
		if inner == "" {
			inner = "\n" + ind + "  " + content + "\n" + ind
		}
		return ind + "<Section style={" + style + "}>" + inner + "</Section>"

	case document.TypeList:
		tag := "ul"
		if p.Bool(document.PropOrdered) {
			tag = "ol"
		}
		items := p.Strings(document.PropItems)
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = indent(level+1) + "<li>" + item + "</li>"
		}
		return ind + "<" + tag + " style={" + style + "}>\n" +
			strings.Join(lines, "\n") + "\n" +
			ind + "</" + tag + ">"

	case document.TypeCodeInline:
		return ind + "<Code style={" + style + "}>" + content + "</Code>"

	case document.TypeCodeBlock:
		return ind + `<CodeBlock language="` + p.String(document.PropLanguage, "javascript") + `" style={` + style + "}>\n" +
			ind + "  " + content + "\n" +
			ind + "</CodeBlock>"

	case document.TypeMarkdown:
		return ind + "<Markdown style={" + style + "}>\n" +
			ind + "  " + content + "\n" +
			ind + "</Markdown>"

	case document.TypeSocial:
		networks := p.Networks()
		lines := make([]string, len(networks))
		for i, n := range networks {
			lines[i] = indent(level+1) + `<SocialIcon url="` + n.Href + `" network="` + n.Name + `" />`
		}
		return ind + "<Container style={" + style + "}>\n" +
			strings.Join(lines, "\n") + "\n" +
			ind + "</Container>"

	default:
		return ind + "<!-- Unknown component type: " + string(c.Type) + " -->"
	}
}

// children renders a container body one level deeper, or nothing when empty.
func children(nodes []document.Component, level int) string {
	if len(nodes) == 0 {
		return ""
	}
	return "\n" + Nodes(nodes, level+1) + "\n" + indent(level)
}

// columns renders grid columns one level deeper and their content two levels
// deeper. Empty columns get a placeholder comment.
func columns(cols []document.Component, level int) string {
	if len(cols) == 0 {
		return ""
	}
	lines := make([]string, len(cols))
	for i, col := range cols {
		var body string
		if len(col.Children) > 0 {
			body = "\n" + Nodes(col.Children, level+2) + "\n" + indent(level+1)
		} else {
			body = "\n" + indent(level+2) + "{/* Column " + strconv.Itoa(i+1) + " */}\n" + indent(level+1)
		}
		lines[i] = indent(level+1) + "<Column style={{ verticalAlign: 'top' }}>" + body + "</Column>"
	}
	return "\n" + strings.Join(lines, "\n") + "\n" + indent(level)
}

func indent(level int) string {
	return strings.Repeat("  ", level)
}

// styleLiteral encodes a style map as a compact JSON object. encoding/json
// sorts map keys; HTML escaping is disabled so values survive verbatim.
func styleLiteral(s document.Style) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(s)); err != nil {
		return "{}"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
