package s2

import (
	"strconv"
	"strings"

	"github.com/matsen/ieeedraft/internal/reference"
)

// ToReference converts a Paper into an unnumbered reference for documentID.
// The caller numbers and formats it via reference.Add.
func ToReference(paper Paper, documentID string) reference.Reference {
	ref := reference.Reference{
		DocumentID:     documentID,
		DOI:            paper.ExternalIDs.DOI,
		Title:          strings.TrimSpace(paper.Title),
		Authors:        mapAuthors(paper.Authors),
		Year:           publicationYear(paper.Year, paper.PubDate),
		Journal:        strings.TrimSpace(paper.Venue),
		URL:            paper.URL,
		OriginalFormat: reference.StyleUnknown,
		Verified:       true,
	}

	if j := paper.Journal; j != nil {
		if name := strings.TrimSpace(j.Name); name != "" {
			ref.Journal = name
		}
		ref.Volume = strings.TrimSpace(j.Volume)
		ref.Pages = normalizePages(j.Pages)
	}

	if ref.DOI != "" {
		ref.URL = "https://doi.org/" + ref.DOI
	}

	return ref
}

// ToReferences maps a page of search results.
func ToReferences(papers []Paper, documentID string) []reference.Reference {
	refs := make([]reference.Reference, 0, len(papers))
	for _, p := range papers {
		refs = append(refs, ToReference(p, documentID))
	}
	return refs
}

// mapAuthors keeps S2 display names, dropping blanks.
func mapAuthors(s2Authors []Author) []string {
	authors := make([]string, 0, len(s2Authors))
	for _, a := range s2Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// publicationYear prefers the year field and falls back to the date.
func publicationYear(year int, dateStr string) int {
	if year != 0 || dateStr == "" {
		return year
	}
	head, _, _ := strings.Cut(dateStr, "-")
	if y, err := strconv.Atoi(head); err == nil {
		return y
	}
	return 0
}

// normalizePages trims S2's padded page ranges ("\n 37 - 46 ").
func normalizePages(pages string) string {
	pages = strings.TrimSpace(pages)
	if first, last, ok := strings.Cut(pages, "-"); ok {
		return strings.TrimSpace(first) + "-" + strings.TrimSpace(last)
	}
	return pages
}
