package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads an HTML document and returns its root element. The HTML5
// parser fills in implied elements, so every table row ends up under a tbody.
func Parse(r io.Reader) (*Element, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return FromHTMLNode(root), nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

// FromHTMLNode converts an x/net/html tree. A DocumentNode becomes an
// element tagged "#document"; comments and doctypes are dropped.
func FromHTMLNode(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	tag := n.Data
	if n.Type == html.DocumentNode {
		tag = "#document"
	}

	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		if _, seen := attrs[a.Key]; !seen {
			attrs[a.Key] = a.Val
		}
	}

	var children []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			children = append(children, FromHTMLNode(c))
		case html.TextNode:
			children = append(children, Text{Content: c.Data})
		}
	}
	return &Element{tag: strings.ToLower(tag), attrs: attrs, children: children}
}
