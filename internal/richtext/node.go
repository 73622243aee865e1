// Package richtext flattens editor output (plain text, node trees, HTML) into
// newline-separated text for the structure parser.
package richtext

import (
	"bytes"
	"encoding/json"
)

// Node is one element of a rich-text editor document tree.
// A node carries either leaf text or an ordered list of children.
type Node struct {
	Type    string  `json:"type,omitempty"`
	Text    string  `json:"text,omitempty"`
	Content []*Node `json:"content,omitempty"`
}

// UnmarshalJSON decodes a node permissively. Fields of the wrong JSON type
// are ignored and a non-object value decodes to an empty node, so a
// malformed tree never fails to load; it only contributes less text.
func (n *Node) UnmarshalJSON(data []byte) error {
	*n = Node{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	if v, ok := raw["type"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			n.Type = s
		}
	}
	if v, ok := raw["text"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			n.Text = s
		}
	}
	if v, ok := raw["content"]; ok {
		var children []json.RawMessage
		if json.Unmarshal(v, &children) == nil {
			n.Content = make([]*Node, 0, len(children))
			for _, c := range children {
				if bytes.Equal(bytes.TrimSpace(c), []byte("null")) {
					n.Content = append(n.Content, nil)
					continue
				}
				child := &Node{}
				_ = child.UnmarshalJSON(c)
				n.Content = append(n.Content, child)
			}
		}
	}

	return nil
}
