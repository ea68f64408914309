package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name     string
		md       string
		contains []string
	}{
		{"heading", "# Tides", []string{"<h1", "Tides</h1>"}},
		{"list", "- one\n- two", []string{"<ul>", "<li>one</li>"}},
		{"emphasis", "**bold** text", []string{"<strong>bold</strong>"}},
		{"link opens new tab", "[src](https://example.com)", []string{`href="https://example.com"`, `target="_blank"`}},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<td>1</td>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToHTML(tt.md)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestMarkdownToHTML_SkipsRawHTML(t *testing.T) {
	got := MarkdownToHTML("hello <script>alert(1)</script>")
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "hello")
}

func TestMarkdownToHTML_Empty(t *testing.T) {
	assert.Equal(t, "", MarkdownToHTML(""))
}
