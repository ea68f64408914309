package html

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

// MinParagraphChars is the length paragraph text must exceed to be accepted.
const MinParagraphChars = 100

// noiseSelector matches elements that never carry article text.
const noiseSelector = "script, style, noscript, template, svg, iframe, head, header, footer, nav"

// contentMarkers are class or id values that commonly wrap the main text.
var contentMarkers = []string{
	"content",
	"article-body",
	"main-content",
	"post-content",
	"post-body",
	"entry-content",
	"page-content",
}

var contentSelector = buildContentSelector()

func buildContentSelector() string {
	parts := make([]string, 0, len(contentMarkers)*2)
	for _, m := range contentMarkers {
		parts = append(parts, "[class~='"+m+"']", "[id='"+m+"']")
	}
	return strings.Join(parts, ", ")
}

// Extract returns the readable text of an HTML document.
// It never fails: unparseable input yields an empty string.
func Extract(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	doc.Find(noiseSelector).Remove()

	if text := containerText(doc); text != "" {
		return text
	}

	if text := paragraphText(doc); utf8.RuneCountInString(text) > MinParagraphChars {
		return text
	}

	if body := doc.Find("body"); body.Length() > 0 {
		if text := visibleText(body); text != "" {
			return text
		}
	}

	return visibleText(doc.Selection)
}

// containerText joins the text of outermost content containers.
func containerText(doc *goquery.Document) string {
	containers := doc.Find(contentSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered(contentSelector).Length() == 0
	})

	var blocks []string
	containers.Each(func(_ int, s *goquery.Selection) {
		if text := visibleText(s); text != "" {
			blocks = append(blocks, text)
		}
	})
	return strings.Join(blocks, "\n\n")
}

func paragraphText(doc *goquery.Document) string {
	var blocks []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := visibleText(s); text != "" {
			blocks = append(blocks, text)
		}
	})
	return strings.Join(blocks, "\n\n")
}

// visibleText joins the non-blank text nodes under sel with newlines,
// collapsing runs of whitespace inside each node.
func visibleText(sel *goquery.Selection) string {
	var lines []string
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		switch n.Type {
		case xhtml.TextNode:
			if line := strings.Join(strings.Fields(n.Data), " "); line != "" {
				lines = append(lines, line)
			}
			return
		case xhtml.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(lines, "\n")
}
