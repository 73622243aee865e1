package reference

import (
	"fmt"
	"strings"
)

// FormatIEEE renders r as an IEEE numbered-bracket citation:
//
//	[1] J. Doe, and A. Smith, "Title", Journal, vol. 5, no. 2, pp. 10-20, 2024. doi: 10.1/xyz
//
// Absent fields are omitted. An empty title still yields well-formed output.
func FormatIEEE(r Reference) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%d] %s, \"%s\"", r.CitationNumber, JoinAuthors(r.Authors), r.Title)

	if r.Journal != "" {
		fmt.Fprintf(&b, ", %s", r.Journal)
	}
	if r.Volume != "" {
		fmt.Fprintf(&b, ", vol. %s", r.Volume)
	}
	if r.Issue != "" {
		fmt.Fprintf(&b, ", no. %s", r.Issue)
	}
	if r.Pages != "" {
		fmt.Fprintf(&b, ", pp. %s", r.Pages)
	}
	if r.Year != 0 {
		fmt.Fprintf(&b, ", %d", r.Year)
	}
	b.WriteString(".")

	if r.DOI != "" {
		fmt.Fprintf(&b, " doi: %s", r.DOI)
	}

	return b.String()
}
