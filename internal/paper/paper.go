// Package paper parses free-form drafts into a typed IEEE paper model.
package paper

// DefaultTitle is used when neither the document nor the caller supplies a title.
const DefaultTitle = "Untitled Paper"

// Paper is the parsed structure of an IEEE paper draft.
type Paper struct {
	Title      string    `json:"title"`
	Abstract   string    `json:"abstract"`
	Keywords   []string  `json:"keywords"`
	Sections   []Section `json:"sections"`
	References []string  `json:"references"`
}

// Section is one numbered body section. Numbering is not stored; it is
// the section's index plus one, rendered with Roman.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// IsEmpty reports whether nothing was recognised besides the title.
// An empty paper is a valid result; renderers show a placeholder.
func (p *Paper) IsEmpty() bool {
	return p.Abstract == "" && len(p.Sections) == 0
}
