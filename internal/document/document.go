// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document parses HTML and queries it for elements by class or by
// CSS selector. Query results are returned in document order.
package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/pdiddy/getids/pkg/types"
)

var (
	// ErrEmptyClass is returned when a class query is given no class name.
	ErrEmptyClass = errors.New("class name is empty")

	// ErrInvalidClass is returned for class names containing whitespace.
	ErrInvalidClass = errors.New("class name contains whitespace")
)

// Document is a parsed HTML document.
type Document struct {
	doc    *goquery.Document
	quirks bool
}

// Parse reads an HTML document from r. The HTML parser is lenient, so
// malformed markup is repaired rather than rejected; errors come from the
// reader.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{doc: doc, quirks: quirksMode(doc)}, nil
}

// ParseString parses an HTML document held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Title returns the trimmed text of the document's <title>, if any.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Quirks reports whether the document is treated as quirks mode: it has no
// doctype, or a doctype other than "html".
func (d *Document) Quirks() bool {
	return d.quirks
}

// ByClass returns every element whose class list contains class. As in a
// browser, class names compare ASCII case-insensitively in quirks-mode
// documents and exactly otherwise.
func (d *Document) ByClass(class string) ([]types.Element, error) {
	if err := ValidateClass(class); err != nil {
		return nil, err
	}
	return elements(d.doc.FindMatcher(newClassMatcher(class, d.quirks))), nil
}

// Select returns every element matching the CSS selector. Selector matching
// is always case-sensitive for class and id names, whatever the document mode.
func (d *Document) Select(selector string) ([]types.Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", selector, err)
	}
	return elements(d.doc.FindMatcher(sel)), nil
}

// Query selects by selector when it is non-empty and by class otherwise,
// and reports the selector string that was applied.
func (d *Document) Query(class, selector string) ([]types.Element, string, error) {
	if selector != "" {
		els, err := d.Select(selector)
		return els, selector, err
	}
	els, err := d.ByClass(class)
	return els, "." + class, err
}

// ValidateClass checks that class is usable as a single class name.
func ValidateClass(class string) error {
	if class == "" {
		return ErrEmptyClass
	}
	if strings.IndexFunc(class, isHTMLSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidClass, class)
	}
	return nil
}

// quirksMode approximates the HTML parser's quirks-mode decision from the
// doctype alone; legacy public identifiers that also trigger quirks are not
// checked.
func quirksMode(doc *goquery.Document) bool {
	for _, root := range doc.Nodes {
		for n := root.FirstChild; n != nil; n = n.NextSibling {
			if n.Type == html.DoctypeNode {
				return !strings.EqualFold(n.Data, "html")
			}
		}
	}
	return true
}

func elements(sel *goquery.Selection) []types.Element {
	out := make([]types.Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		out = append(out, toElement(n))
	}
	return out
}

func toElement(n *html.Node) types.Element {
	e := types.Element{Tag: n.Data}
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		switch a.Key {
		case "id":
			if !e.HasID {
				e.ID = a.Val
				e.HasID = true
			}
		case "class":
			e.Classes = strings.FieldsFunc(a.Val, isHTMLSpace)
		}
	}
	return e
}

// isHTMLSpace matches the ASCII whitespace that separates class names.
func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
