// Package render turns synthesised markdown reports into HTML.
package render

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownToHTML renders LLM markdown output as an HTML fragment.
// Links open in a new tab; raw HTML in the input is skipped.
func MarkdownToHTML(md string) string {
	if md == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}
