package richtext

import (
	"bytes"
	"encoding/json"
)

// Kind identifies the shape of a Content value.
type Kind int

const (
	KindEmpty Kind = iota
	KindPlain
	KindTree
	KindHTML
)

// Content is a document body as the editor stores it.
type Content struct {
	Kind  Kind
	Plain string // KindPlain and KindHTML
	Tree  *Node  // KindTree
}

// FromString wraps plain text.
func FromString(s string) Content {
	return Content{Kind: KindPlain, Plain: s}
}

// FromTree wraps an editor node tree.
func FromTree(n *Node) Content {
	return Content{Kind: KindTree, Tree: n}
}

// FromHTML wraps editor HTML.
func FromHTML(s string) Content {
	return Content{Kind: KindHTML, Plain: s}
}

// IsEmpty reports whether the content carries nothing to parse.
func (c Content) IsEmpty() bool {
	switch c.Kind {
	case KindPlain, KindHTML:
		return c.Plain == ""
	case KindTree:
		return c.Tree == nil
	}
	return true
}

// Text flattens the content into newline-separated text. Plain strings
// are returned unchanged. HTML that cannot be parsed is returned raw.
func (c Content) Text() string {
	switch c.Kind {
	case KindPlain:
		return c.Plain
	case KindTree:
		return ExtractText(c.Tree)
	case KindHTML:
		text, err := ExtractHTML(c.Plain)
		if err != nil {
			return c.Plain
		}
		return text
	}
	return ""
}

// Parse sniffs raw document bytes: a JSON object is a node tree, a JSON
// string is plain text, markup starting with '<' is HTML, and anything
// else is plain text.
func Parse(data []byte) Content {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Content{}
	}

	switch trimmed[0] {
	case '{', '"':
		if json.Valid(trimmed) {
			var c Content
			_ = c.UnmarshalJSON(trimmed)
			return c
		}
	case '<':
		return FromHTML(string(data))
	}

	return FromString(string(data))
}

// UnmarshalJSON accepts a JSON string or a node object. Any other value
// decodes to empty content rather than an error.
func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Content{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if json.Unmarshal(trimmed, &s) == nil {
			*c = FromString(s)
		}
	case '{':
		n := &Node{}
		_ = n.UnmarshalJSON(trimmed)
		*c = FromTree(n)
	}

	return nil
}

// MarshalJSON writes plain and HTML content as a JSON string and trees as
// node objects.
func (c Content) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindPlain, KindHTML:
		return json.Marshal(c.Plain)
	case KindTree:
		return json.Marshal(c.Tree)
	}
	return []byte("null"), nil
}
