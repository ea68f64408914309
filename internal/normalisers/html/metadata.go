package html

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a parsed document queried for metadata.
type Page struct {
	doc *goquery.Document
}

// Parse reads an HTML document for metadata lookups.
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Page{doc: doc}, nil
}

// Title returns the trimmed text of the first <title>, or "" when absent.
func (p *Page) Title() string {
	return strings.Join(strings.Fields(p.doc.Find("title").First().Text()), " ")
}

// iconRels lists favicon link relations in preference order.
var iconRels = []string{"icon", "shortcut icon", "apple-touch-icon"}

// IconHref returns the href of the preferred favicon link, or "" when none has one.
// A rel matches when it equals the wanted value ignoring case and spacing.
func (p *Page) IconHref() string {
	links := p.doc.Find("link[rel][href]")
	for _, want := range iconRels {
		var href string
		links.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			rel, _ := s.Attr("rel")
			if normaliseRel(rel) != want {
				return true
			}
			v, _ := s.Attr("href")
			href = strings.TrimSpace(v)
			return href == ""
		})
		if href != "" {
			return href
		}
	}
	return ""
}

func normaliseRel(rel string) string {
	return strings.ToLower(strings.Join(strings.Fields(rel), " "))
}
