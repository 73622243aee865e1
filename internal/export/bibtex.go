// Package export renders reference lists as BibTeX or IEEE text and reads
// BibTeX back in.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/matsen/ieeedraft/internal/reference"
)

// ToBibTeX converts a reference to a BibTeX entry with the given key.
func ToBibTeX(ref reference.Reference, key string) string {
	entryType := determineEntryType(ref)
	var b strings.Builder

	fmt.Fprintf(&b, "@%s{%s,\n", entryType, key)

	if len(ref.Authors) > 0 {
		fmt.Fprintf(&b, "  author = {%s},\n", formatAuthors(ref.Authors))
	}

	fmt.Fprintf(&b, "  title = {%s},\n", escapeLatex(ref.Title))

	if ref.Journal != "" {
		fieldName := "journal"
		if entryType == "inproceedings" {
			fieldName = "booktitle"
		}
		fmt.Fprintf(&b, "  %s = {%s},\n", fieldName, escapeLatex(ref.Journal))
	}
	if ref.Volume != "" {
		fmt.Fprintf(&b, "  volume = {%s},\n", ref.Volume)
	}
	if ref.Issue != "" {
		fmt.Fprintf(&b, "  number = {%s},\n", ref.Issue)
	}
	if ref.Pages != "" {
		fmt.Fprintf(&b, "  pages = {%s},\n", bibtexPages(ref.Pages))
	}
	if ref.Year != 0 {
		fmt.Fprintf(&b, "  year = {%d},\n", ref.Year)
	}
	if ref.Publisher != "" {
		fmt.Fprintf(&b, "  publisher = {%s},\n", escapeLatex(ref.Publisher))
	}
	if ref.DOI != "" {
		fmt.Fprintf(&b, "  doi = {%s},\n", ref.DOI)
	}
	if ref.URL != "" {
		fmt.Fprintf(&b, "  url = {%s},\n", ref.URL)
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts references to BibTeX, assigning unique cite keys
// in list order.
func ToBibTeXList(refs []reference.Reference) string {
	seen := make(map[string]int)
	entries := make([]string, 0, len(refs))
	for _, ref := range refs {
		entries = append(entries, ToBibTeX(ref, uniqueKey(CiteKey(ref), seen)))
	}
	return strings.Join(entries, "\n")
}

// CiteKey builds a cite key from the first author's family name, the year
// and a short title suffix, e.g. "Doe2024-dl".
func CiteKey(ref reference.Reference) string {
	lastName := "Unknown"
	if len(ref.Authors) > 0 {
		_, last := reference.SplitName(ref.Authors[0])
		if s := sanitizeForCiteKey(last); s != "" {
			lastName = s
		}
	}

	year := "nd"
	if ref.Year != 0 {
		year = strconv.Itoa(ref.Year)
	}

	return fmt.Sprintf("%s%s-%s", lastName, year, titleSuffix(ref.Title))
}

// uniqueKey appends b, c, ... to repeated keys.
func uniqueKey(key string, seen map[string]int) string {
	n := seen[key]
	seen[key] = n + 1
	if n == 0 {
		return key
	}
	if n < 26 {
		return key + string(rune('a'+n))
	}
	return key + strconv.Itoa(n)
}

// determineEntryType returns the BibTeX entry type for a reference.
func determineEntryType(ref reference.Reference) string {
	venue := strings.ToLower(ref.Journal)

	if strings.Contains(venue, "proceedings") ||
		strings.Contains(venue, "conference") ||
		strings.Contains(venue, "workshop") ||
		strings.Contains(venue, "symposium") {
		return "inproceedings"
	}
	if venue == "" && ref.Publisher != "" {
		return "book"
	}
	if venue == "" {
		return "misc"
	}

	return "article"
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First"
func formatAuthors(authors []string) string {
	formatted := make([]string, 0, len(authors))
	for _, name := range authors {
		first, last := reference.SplitName(name)
		if first != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", escapeLatex(last), escapeLatex(first)))
		} else {
			formatted = append(formatted, escapeLatex(last))
		}
	}
	return strings.Join(formatted, " and ")
}

// bibtexPages uses the double hyphen BibTeX expects between page bounds.
func bibtexPages(pages string) string {
	if strings.Contains(pages, "--") {
		return pages
	}
	for _, sep := range []string{"–", "—", "-"} {
		if first, last, ok := strings.Cut(pages, sep); ok {
			return strings.TrimSpace(first) + "--" + strings.TrimSpace(last)
		}
	}
	return pages
}

// sanitizeForCiteKey removes non-alphanumeric characters.
func sanitizeForCiteKey(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

var stopWords = map[string]bool{"a": true, "an": true, "the": true, "of": true, "and": true, "in": true, "on": true, "for": true, "to": true, "with": true}

// titleSuffix takes the first letters of the first two significant words.
func titleSuffix(title string) string {
	var suffix strings.Builder
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if stopWords[word] {
			continue
		}
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				suffix.WriteRune(r)
				break
			}
		}
		if suffix.Len() >= 2 {
			break
		}
	}

	for suffix.Len() < 2 {
		suffix.WriteByte('x')
	}

	return suffix.String()
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
