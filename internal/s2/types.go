// Package s2 provides a client for the Semantic Scholar Academic Graph API
// and maps its paper records onto reference list entries.
package s2

// Paper represents a paper from the Semantic Scholar API.
type Paper struct {
	PaperID     string      `json:"paperId"`
	ExternalIDs ExternalIDs `json:"externalIds,omitempty"`
	Title       string      `json:"title"`
	Authors     []Author    `json:"authors,omitempty"`
	Year        int         `json:"year,omitempty"`
	Venue       string      `json:"venue,omitempty"`
	Journal     *Journal    `json:"journal,omitempty"`
	URL         string      `json:"url,omitempty"`
	PubDate     string      `json:"publicationDate,omitempty"` // YYYY-MM-DD format
}

// ExternalIDs contains external identifiers for a paper.
type ExternalIDs struct {
	DOI   string `json:"DOI,omitempty"`
	ArXiv string `json:"ArXiv,omitempty"`
}

// Journal holds the journal block S2 returns for published papers.
// Pages arrive with surrounding whitespace more often than not.
type Journal struct {
	Name   string `json:"name,omitempty"`
	Volume string `json:"volume,omitempty"`
	Pages  string `json:"pages,omitempty"`
}

// Author represents an author from the Semantic Scholar API.
type Author struct {
	AuthorID string `json:"authorId,omitempty"`
	Name     string `json:"name"`
}

// SearchResponse is the response from the paper search endpoint.
type SearchResponse struct {
	Total  int     `json:"total"`
	Offset int     `json:"offset"`
	Next   int     `json:"next,omitempty"`
	Data   []Paper `json:"data"`
}

// PaperIdentifier represents a parsed paper identifier.
type PaperIdentifier struct {
	Type  string // DOI, ARXIV, PMID, CorpusId, URL, S2
	Value string
}

// String returns the S2 API format for the identifier.
func (p PaperIdentifier) String() string {
	if p.Type == IDTypeS2 {
		return p.Value
	}
	return p.Type + ":" + p.Value
}
