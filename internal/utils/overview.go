package utils

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
)

// PlainOverview reduces a catalog synopsis to a single line of plain text.
// Mirrored catalogs sometimes carry markdown emphasis, links or inline HTML.
func PlainOverview(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if !strings.ContainsAny(text, "*_[]`<#") {
		return strings.Join(strings.Fields(text), " ")
	}

	doc := markdown.Parse([]byte(text), nil)

	var buf bytes.Buffer
	collectText(doc, &buf)

	return strings.Join(strings.Fields(buf.String()), " ")
}

func collectText(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Literal)
		return
	case *ast.Code:
		buf.Write(n.Literal)
		return
	case *ast.CodeBlock:
		buf.Write(n.Literal)
		return
	case *ast.Hardbreak, *ast.Softbreak:
		buf.WriteByte(' ')
		return
	case *ast.HTMLBlock, *ast.HTMLSpan:
		return
	}

	container := node.AsContainer()
	if container == nil {
		return
	}
	for _, child := range container.Children {
		collectText(child, buf)
	}

	switch node.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.ListItem:
		buf.WriteByte(' ')
	}
}
