// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"

	"golang.org/x/net/html"
)

// classMatcher matches element nodes whose class attribute contains the
// class name. It implements goquery.Matcher without going through CSS, so
// class names that would need escaping in a selector work as-is. With fold
// set, names compare ASCII case-insensitively, as browsers do for
// quirks-mode documents.
type classMatcher struct {
	name string
	fold bool
}

func newClassMatcher(name string, fold bool) classMatcher {
	return classMatcher{name: name, fold: fold}
}

func (c classMatcher) Match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != "class" {
			continue
		}
		for _, name := range strings.FieldsFunc(a.Val, isHTMLSpace) {
			if c.equal(name) {
				return true
			}
		}
		return false
	}
	return false
}

func (c classMatcher) equal(name string) bool {
	if !c.fold {
		return name == c.name
	}
	if len(name) != len(c.name) {
		return false
	}
	for i := 0; i < len(name); i++ {
		if lowerASCII(name[i]) != lowerASCII(c.name[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// MatchAll returns n and its descendants that match, in document order.
func (c classMatcher) MatchAll(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if c.Match(p) {
			out = append(out, p)
		}
		for child := p.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func (c classMatcher) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if c.Match(n) {
			out = append(out, n)
		}
	}
	return out
}
