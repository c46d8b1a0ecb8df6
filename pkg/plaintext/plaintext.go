// Package plaintext derives the text/plain alternative of an email from its
// HTML rendering. Output is Markdown-flavoured text, which reads naturally in
// clients that do not display HTML.
package plaintext

import (
	"errors"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/htmlgen"
)

// ErrConvert is returned when the HTML cannot be converted.
var ErrConvert = errors.New("plaintext: conversion failed")

// Layout tables are left to the base plugin, which flattens them into their
// cell content; the table plugin would turn them into pipe tables.
var conv = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// Render converts an HTML string to text.
func Render(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	out, err := conv.ConvertString(html)
	if err != nil {
		return "", errors.Join(ErrConvert, err)
	}
	return strings.TrimSpace(out), nil
}

// FromTree renders the tree's HTML body and converts it to text.
func FromTree(nodes []document.Component) (string, error) {
	return Render(htmlgen.Fragment(nodes))
}
