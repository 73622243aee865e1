// Package importer builds references from publisher landing pages.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/matsen/ieeedraft/internal/reference"
	"github.com/matsen/ieeedraft/internal/s2"
)

// metaFields maps each reference field to the meta names that carry it,
// in priority order. Highwire (citation_*) tags come first, then Dublin
// Core, then Open Graph.
var metaFields = map[string][]string{
	"title":     {"citation_title", "dc.title", "og:title"},
	"journal":   {"citation_journal_title", "citation_conference_title", "citation_inbook_title", "prism.publicationname"},
	"volume":    {"citation_volume", "prism.volume"},
	"issue":     {"citation_issue", "prism.number"},
	"firstpage": {"citation_firstpage", "prism.startingpage"},
	"lastpage":  {"citation_lastpage", "prism.endingpage"},
	"date":      {"citation_publication_date", "citation_date", "citation_online_date", "dc.date", "prism.publicationdate"},
	"publisher": {"citation_publisher", "dc.publisher", "og:site_name"},
	"doi":       {"citation_doi", "dc.identifier", "prism.doi"},
	"url":       {"citation_abstract_html_url", "citation_public_url", "og:url"},
}

// authorNames lists the repeatable author tags in priority order.
var authorNames = []string{"citation_author", "dc.creator"}

// FromHTML reads a landing page and returns an unnumbered reference for
// documentID. It fails when the page has no recognisable title.
func FromHTML(r io.Reader, documentID string) (reference.Reference, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return reference.Reference{}, fmt.Errorf("parsing HTML: %w", err)
	}

	meta := collectMeta(doc)
	first := func(field string) string {
		for _, name := range metaFields[field] {
			if vals := meta[name]; len(vals) > 0 {
				return vals[0]
			}
		}
		return ""
	}

	ref := reference.Reference{
		DocumentID:     documentID,
		Title:          first("title"),
		Authors:        []string{},
		Journal:        first("journal"),
		Volume:         first("volume"),
		Issue:          first("issue"),
		Publisher:      first("publisher"),
		DOI:            findDOI(meta),
		URL:            first("url"),
		Year:           parseYear(first("date")),
		OriginalFormat: reference.StyleUnknown,
	}

	if ref.Title == "" {
		ref.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if ref.Title == "" {
		return reference.Reference{}, fmt.Errorf("no citation title found in page")
	}

	for _, name := range authorNames {
		if vals := meta[name]; len(vals) > 0 {
			for _, v := range vals {
				ref.Authors = append(ref.Authors, normalizeAuthor(v))
			}
			break
		}
	}

	if fp := first("firstpage"); fp != "" {
		ref.Pages = fp
		if lp := first("lastpage"); lp != "" && lp != fp {
			ref.Pages = fp + "-" + lp
		}
	}

	return ref, nil
}

// collectMeta gathers meta content by lowercased name or property,
// preserving document order for repeated tags.
func collectMeta(doc *goquery.Document) map[string][]string {
	meta := make(map[string][]string)
	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok {
			name, ok = s.Attr("property")
		}
		if !ok {
			return
		}
		content := strings.Join(strings.Fields(s.AttrOr("content", "")), " ")
		if content == "" {
			return
		}
		key := strings.ToLower(strings.TrimSpace(name))
		meta[key] = append(meta[key], content)
	})
	return meta
}

// normalizeAuthor turns "Doe, Jane" into "Jane Doe".
func normalizeAuthor(name string) string {
	if last, first, ok := strings.Cut(name, ","); ok {
		if first = strings.TrimSpace(first); first != "" {
			return first + " " + strings.TrimSpace(last)
		}
		return strings.TrimSpace(last)
	}
	return name
}

// parseYear takes the leading four digits of 2019/03/01, 2019-03-01 or 2019.
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

// findDOI returns the first value among the DOI tags that normalizes to
// a DOI. dc.identifier is often repeated with ISSNs, ISBNs or URNs before
// the DOI, so every value is checked.
func findDOI(meta map[string][]string) string {
	for _, name := range metaFields["doi"] {
		for _, v := range meta[name] {
			doi := s2.NormalizeDOI(v)
			if strings.HasPrefix(doi, "10.") && strings.Contains(doi, "/") {
				return doi
			}
		}
	}
	return ""
}
