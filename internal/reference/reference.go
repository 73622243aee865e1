// Package reference defines bibliographic records of a document's
// reference list and renders them in IEEE citation style.
package reference

import (
	"errors"
	"fmt"
)

// Reference is one entry of a document's reference list.
type Reference struct {
	// Identity
	DocumentID     string `json:"document_id"`     // Owning document
	CitationNumber int    `json:"citation_number"` // Position [n], contiguous 1..N per document
	DOI            string `json:"doi,omitempty"`

	// Metadata
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Year      int      `json:"year,omitempty"` // 0 if unknown
	Journal   string   `json:"journal,omitempty"`
	Volume    string   `json:"volume,omitempty"`
	Issue     string   `json:"issue,omitempty"`
	Pages     string   `json:"pages,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	URL       string   `json:"url,omitempty"`

	// Provenance
	RawText        string `json:"raw_text,omitempty"`        // Citation text as pasted
	OriginalFormat string `json:"original_format,omitempty"` // APA, MLA, Harvard, Chicago, IEEE, Unknown
	Verified       bool   `json:"verified"`

	// FormattedIEEE caches FormatIEEE output. It is regenerated whenever a
	// field changes, but not when only the citation number shifts.
	FormattedIEEE string `json:"formatted_ieee"`
}

// Citation styles accepted in OriginalFormat.
const (
	StyleAPA     = "APA"
	StyleMLA     = "MLA"
	StyleHarvard = "Harvard"
	StyleChicago = "Chicago"
	StyleIEEE    = "IEEE"
	StyleUnknown = "Unknown"
)

// ValidStyles lists the supported OriginalFormat values.
var ValidStyles = []string{StyleAPA, StyleMLA, StyleHarvard, StyleChicago, StyleIEEE, StyleUnknown}

// ErrNotFound is returned when no reference has the requested number.
var ErrNotFound = errors.New("reference not found")

// ValidateFormat checks an OriginalFormat value. Empty means Unknown.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidStyles {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid original format: %s (valid: %v)", format, ValidStyles)
}
