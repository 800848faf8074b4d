package dom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// pupNode is one object of `pup '<selector> json{}'` output. Every key other
// than tag, text and children is an attribute.
type pupNode map[string]json.RawMessage

// ParsePupJSON converts pup JSON output (an array of nodes, or a single node)
// into a synthetic "#pup" element holding the converted nodes in order.
func ParsePupJSON(r io.Reader) (*Element, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pup json: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return NewElement("#pup", nil), nil
	}

	var nodes []pupNode
	if raw[0] == '{' {
		var single pupNode
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("failed to decode pup json: %w", err)
		}
		nodes = []pupNode{single}
	} else if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, fmt.Errorf("failed to decode pup json: %w", err)
	}

	children := make([]Node, 0, len(nodes))
	for i, n := range nodes {
		el, err := n.toElement()
		if err != nil {
			return nil, fmt.Errorf("failed to convert pup node %d: %w", i, err)
		}
		children = append(children, el)
	}
	return NewElement("#pup", nil, children...), nil
}

func (n pupNode) toElement() (*Element, error) {
	var tag string
	if rawTag, ok := n["tag"]; ok {
		if err := json.Unmarshal(rawTag, &tag); err != nil {
			return nil, fmt.Errorf("invalid tag: %w", err)
		}
	}
	if tag == "" {
		tag = "div"
	}

	attrs := make(map[string]string)
	var children []Node
	for key, val := range n {
		switch key {
		case "tag":
		case "text":
			var text string
			if err := json.Unmarshal(val, &text); err != nil {
				return nil, fmt.Errorf("invalid text: %w", err)
			}
			// pup puts an element's own text ahead of its children.
			children = append([]Node{Text{Content: text}}, children...)
		case "children":
			var kids []pupNode
			if err := json.Unmarshal(val, &kids); err != nil {
				return nil, fmt.Errorf("invalid children: %w", err)
			}
			for _, k := range kids {
				el, err := k.toElement()
				if err != nil {
					return nil, err
				}
				children = append(children, el)
			}
		default:
			attrs[key] = attrString(val)
		}
	}
	return NewElement(tag, attrs, children...), nil
}

func attrString(val json.RawMessage) string {
	var s string
	if err := json.Unmarshal(val, &s); err == nil {
		return s
	}
	return strings.Trim(string(val), `"`)
}

// WrapAsMenuTable places blocks into a one-column weekly-menu table whose
// header carries date, so table-shaped extraction applies to fragments that
// have no table of their own. A zero date yields an unresolvable header.
func WrapAsMenuTable(blocks []*Element, date time.Time) *Element {
	header := ""
	if !date.IsZero() {
		header = strconv.Itoa(date.Day()) + "." + strconv.Itoa(int(date.Month())) + "." + strconv.Itoa(date.Year())
	}

	cells := make([]Node, 0, len(blocks))
	for _, b := range blocks {
		cells = append(cells, b)
	}

	thead := NewElement("thead", nil,
		NewElement("tr", nil,
			NewElement("th", nil,
				NewElement("p", nil, Text{Content: header}))))
	tbody := NewElement("tbody", nil,
		NewElement("tr", nil,
			NewElement("td", nil, cells...)))
	table := NewElement("table", map[string]string{"class": "aw-weekly-menu"}, thead, tbody)
	return NewElement("#document", nil, table)
}
