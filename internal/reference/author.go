package reference

import "strings"

// UnknownAuthor is rendered for references without authors.
const UnknownAuthor = "Unknown Author"

// Common name suffixes to keep with the last name.
var nameSuffixes = map[string]bool{
	"jr":   true,
	"jr.":  true,
	"sr":   true,
	"sr.":  true,
	"ii":   true,
	"iii":  true,
	"iv":   true,
	"phd":  true,
	"ph.d": true,
	"md":   true,
	"m.d":  true,
}

// JoinAuthors renders an author list the IEEE way used here: all names
// joined with ", " and the last one prefixed with "and " when there is
// more than one, e.g. "A, and B" or "A, B, and C".
func JoinAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return UnknownAuthor
	case 1:
		return authors[0]
	}

	names := make([]string, len(authors))
	copy(names, authors)
	names[len(names)-1] = "and " + names[len(names)-1]
	return strings.Join(names, ", ")
}

// SplitName splits a display name into given and family names.
// "J. Doe" gives ("J.", "Doe"); a name already written "Doe, J." is
// split on the comma. Suffixes such as Jr. stay with the family name.
//
// Known limitations:
// - Multi-part surnames (von Neumann, van der Waals) split incorrectly
// - Non-Western name formats may not be handled correctly
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}

	if before, after, ok := strings.Cut(name, ","); ok {
		return strings.TrimSpace(after), strings.TrimSpace(before)
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return "", parts[0]
	}

	lastPart := strings.ToLower(parts[len(parts)-1])
	if nameSuffixes[lastPart] && len(parts) > 2 {
		last = parts[len(parts)-2] + " " + parts[len(parts)-1]
		first = strings.Join(parts[:len(parts)-2], " ")
	} else {
		last = parts[len(parts)-1]
		first = strings.Join(parts[:len(parts)-1], " ")
	}

	return first, last
}
