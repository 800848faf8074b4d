// Package dom is a small, immutable document tree used by the menu
// extractor. A Node is either an *Element or a Text; absence is expressed by
// nil returns from the lookup methods rather than by existence checks.
package dom

import (
	"strings"

	"github.com/mpr1255/2025s1-mlci/pkg/textutil"
)

// Node is an *Element or a Text.
type Node interface {
	// TextContent returns the concatenated text of the node and its
	// descendants, without normalization.
	TextContent() string
	isNode()
}

// Text is a run of character data.
type Text struct {
	Content string
}

func (t Text) TextContent() string { return t.Content }
func (Text) isNode()               {}

// Element is a tagged node with attributes and ordered children.
type Element struct {
	tag      string
	attrs    map[string]string
	children []Node
}

// NewElement builds an element. Attribute keys are unique; tag names are
// lower-cased.
func NewElement(tag string, attrs map[string]string, children ...Node) *Element {
	copied := make(map[string]string, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return &Element{
		tag:      strings.ToLower(tag),
		attrs:    copied,
		children: children,
	}
}

func (*Element) isNode() {}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.tag }

// Attr returns the attribute value and whether it is set.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// AttrOr returns the attribute value or fallback when unset.
func (e *Element) AttrOr(key, fallback string) string {
	if v, ok := e.attrs[key]; ok {
		return v
	}
	return fallback
}

// HasClass reports whether the class attribute lists name.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.attrs["class"]) {
		if c == name {
			return true
		}
	}
	return false
}

// Children returns the direct child nodes.
func (e *Element) Children() []Node { return e.children }

// ChildElements returns the direct children that are elements and match pred.
// A nil predicate matches every element.
func (e *Element) ChildElements(pred Predicate) []*Element {
	var out []*Element
	for _, c := range e.children {
		if el, ok := c.(*Element); ok && (pred == nil || pred(el)) {
			out = append(out, el)
		}
	}
	return out
}

// FirstChildMatching returns the first direct child element matching pred, or nil.
func (e *Element) FirstChildMatching(pred Predicate) *Element {
	for _, c := range e.children {
		if el, ok := c.(*Element); ok && pred(el) {
			return el
		}
	}
	return nil
}

// FirstDescendant returns the first element below e, in document order,
// that matches pred, or nil.
func (e *Element) FirstDescendant(pred Predicate) *Element {
	for _, c := range e.children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if pred(el) {
			return el
		}
		if found := el.FirstDescendant(pred); found != nil {
			return found
		}
	}
	return nil
}

// Descendants returns every element below e that matches pred, in document
// order.
func (e *Element) Descendants(pred Predicate) []*Element {
	var out []*Element
	e.walk(func(el *Element) {
		if pred(el) {
			out = append(out, el)
		}
	})
	return out
}

func (e *Element) walk(fn func(*Element)) {
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			fn(el)
			el.walk(fn)
		}
	}
}

// TextContent concatenates all descendant text.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	for _, c := range e.children {
		switch n := c.(type) {
		case Text:
			b.WriteString(n.Content)
		case *Element:
			n.writeText(b)
		}
	}
}

// Text returns the normalized text content: trimmed, whitespace collapsed.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return textutil.Normalize(e.TextContent())
}
