// Package parser handles HTML parsing and meta tag extraction.
package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/spider-crawler/seotags/internal/analyzer"
)

// Selectors used to locate each tag. Only the first match counts.
const (
	selTitle       = "title"
	selDescription = `meta[name="description"]`
	selCanonical   = `link[rel="canonical"]`
	selViewport    = `meta[name="viewport"]`
	selRobots      = `meta[name="robots"]`
	selHTML        = "html"
	selCharset     = "meta[charset]"
)

// Parse parses HTML content into a queryable document.
func Parse(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Extract pulls the raw value of every known tag out of doc.
//
// Values are returned as found: the canonical href is not resolved against
// the page URL and whitespace is kept.
func Extract(doc *goquery.Document) analyzer.PageValues {
	return analyzer.PageValues{
		Title:       analyzer.Some(doc.Find(selTitle).First().Text()),
		Description: attr(doc, selDescription, "content"),
		Canonical:   attr(doc, selCanonical, "href"),
		Viewport:    attr(doc, selViewport, "content"),
		Robots:      attr(doc, selRobots, "content"),
		Lang:        attr(doc, selHTML, "lang"),
		Charset:     attr(doc, selCharset, "charset"),
		OpenGraph: analyzer.OpenGraphValues{
			Title:       property(doc, "og:title"),
			Description: property(doc, "og:description"),
			Image:       property(doc, "og:image"),
			URL:         property(doc, "og:url"),
			Type:        property(doc, "og:type"),
		},
		Twitter: analyzer.TwitterValues{
			Card:        named(doc, "twitter:card"),
			Title:       named(doc, "twitter:title"),
			Description: named(doc, "twitter:description"),
			Image:       named(doc, "twitter:image"),
		},
	}
}

// ParseHTML is a convenience function to parse and extract from bytes.
func ParseHTML(content []byte) (analyzer.PageValues, error) {
	return ParseHTMLReader(bytes.NewReader(content))
}

// ParseHTMLReader parses and extracts from an io.Reader.
func ParseHTMLReader(r io.Reader) (analyzer.PageValues, error) {
	doc, err := Parse(r)
	if err != nil {
		return analyzer.PageValues{}, err
	}
	return Extract(doc), nil
}

// Helper functions

func attr(doc *goquery.Document, selector, name string) analyzer.Value {
	val, ok := doc.Find(selector).First().Attr(name)
	if !ok {
		return analyzer.None()
	}
	return analyzer.Some(val)
}

// property reads <meta property="..." content="...">, the Open Graph form.
func property(doc *goquery.Document, prop string) analyzer.Value {
	return attr(doc, fmt.Sprintf(`meta[property=%q]`, prop), "content")
}

// named reads <meta name="..." content="...">, the Twitter Card form.
func named(doc *goquery.Document, name string) analyzer.Value {
	return attr(doc, fmt.Sprintf(`meta[name=%q]`, name), "content")
}
