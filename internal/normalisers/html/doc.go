// Package html extracts readable text and page metadata from HTML documents.
// Extraction is a cascade: a tagged content container, then paragraph text,
// then the body, then the whole document. The first usable result wins.
package html
