package export

import (
	"fmt"
	"io"
	"slices"

	"github.com/matsen/ieeedraft/internal/reference"
)

// WriteIEEE writes refs as an IEEE reference list, one citation per line
// in citation-number order. Cached strings are used when present.
func WriteIEEE(w io.Writer, refs []reference.Reference) error {
	sorted := slices.Clone(refs)
	slices.SortStableFunc(sorted, func(a, b reference.Reference) int {
		return a.CitationNumber - b.CitationNumber
	})

	for _, ref := range sorted {
		line := ref.FormattedIEEE
		if line == "" {
			line = reference.FormatIEEE(ref)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing reference %d: %w", ref.CitationNumber, err)
		}
	}
	return nil
}
