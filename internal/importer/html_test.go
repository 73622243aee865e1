package importer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/ieeedraft/internal/reference"
)

const ieeeLandingPage = `<!DOCTYPE html>
<html><head>
<title>IEEE Xplore Full-Text PDF</title>
<meta name="citation_title" content="Attention Is All
  You Need">
<meta name="citation_author" content="Vaswani, Ashish">
<meta name="citation_author" content="Noam Shazeer">
<meta name="citation_journal_title" content="Advances in Neural Information Processing Systems">
<meta name="citation_volume" content="30">
<meta name="citation_firstpage" content="5998">
<meta name="citation_lastpage" content="6008">
<meta name="citation_publication_date" content="2017/12/04">
<meta name="citation_publisher" content="Curran Associates">
<meta name="citation_doi" content="doi:10.5555/3295222.3295349">
<meta property="og:url" content="https://example.org/paper/1">
</head><body><p>Body</p></body></html>`

func TestFromHTML_Highwire(t *testing.T) {
	ref, err := FromHTML(strings.NewReader(ieeeLandingPage), "paper-1")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	want := reference.Reference{
		DocumentID:     "paper-1",
		Title:          "Attention Is All You Need",
		Authors:        []string{"Ashish Vaswani", "Noam Shazeer"},
		Journal:        "Advances in Neural Information Processing Systems",
		Volume:         "30",
		Pages:          "5998-6008",
		Year:           2017,
		Publisher:      "Curran Associates",
		DOI:            "10.5555/3295222.3295349",
		URL:            "https://example.org/paper/1",
		OriginalFormat: reference.StyleUnknown,
	}
	if !reflect.DeepEqual(ref, want) {
		t.Errorf("FromHTML() = %+v\nwant %+v", ref, want)
	}
}

func TestFromHTML_DublinCoreFallback(t *testing.T) {
	page := `<html><head>
<meta name="DC.title" content="A Dublin Core Paper">
<meta name="DC.creator" content="Ada Lovelace">
<meta name="DC.date" content="1843-09-01">
<meta name="DC.identifier" content="urn:isbn:123">
</head></html>`

	ref, err := FromHTML(strings.NewReader(page), "d")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if ref.Title != "A Dublin Core Paper" {
		t.Errorf("Title = %q", ref.Title)
	}
	if !reflect.DeepEqual(ref.Authors, []string{"Ada Lovelace"}) {
		t.Errorf("Authors = %v", ref.Authors)
	}
	if ref.Year != 1843 {
		t.Errorf("Year = %d", ref.Year)
	}
	if ref.DOI != "" {
		t.Errorf("DOI = %q, want non-DOI identifier dropped", ref.DOI)
	}
}

func TestFromHTML_DOIAfterOtherIdentifiers(t *testing.T) {
	page := `<html><head>
<meta name="DC.title" content="Repeated Identifiers">
<meta name="DC.identifier" content="ISSN 0028-0836">
<meta name="DC.identifier" content="urn:isbn:978-3-16-148410-0">
<meta name="DC.identifier" content="https://doi.org/10.1038/Nature12373">
</head></html>`

	ref, err := FromHTML(strings.NewReader(page), "d")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if ref.DOI != "10.1038/nature12373" {
		t.Errorf("DOI = %q, want 10.1038/nature12373", ref.DOI)
	}
}

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		meta map[string][]string
		want string
	}{
		{"none", map[string][]string{}, ""},
		{"citation_doi wins", map[string][]string{
			"citation_doi":  {"10.1/a"},
			"dc.identifier": {"10.1/b"},
		}, "10.1/a"},
		{"non-DOI citation_doi falls through", map[string][]string{
			"citation_doi":  {"n/a"},
			"dc.identifier": {"doi:10.1/b"},
		}, "10.1/b"},
		{"info uri", map[string][]string{"dc.identifier": {"info:doi/10.1/C"}}, "10.1/c"},
		{"prism", map[string][]string{"prism.doi": {"10.1/d"}}, "10.1/d"},
		{"prefix without suffix", map[string][]string{"dc.identifier": {"10.1234"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.meta); got != tt.want {
				t.Errorf("findDOI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromHTML_TitleElementFallback(t *testing.T) {
	ref, err := FromHTML(strings.NewReader(`<html><head><title> Plain Page </title></head></html>`), "d")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if ref.Title != "Plain Page" {
		t.Errorf("Title = %q", ref.Title)
	}
	if ref.Authors == nil {
		t.Error("Authors is nil, want empty slice")
	}
}

func TestFromHTML_NoTitle(t *testing.T) {
	if _, err := FromHTML(strings.NewReader(`<html><body>nothing</body></html>`), "d"); err == nil {
		t.Error("FromHTML() expected error without a title")
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2019/03/01", 2019},
		{"2019-03-01", 2019},
		{"2019", 2019},
		{"19", 0},
		{"March 2019", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := parseYear(tt.input); got != tt.want {
			t.Errorf("parseYear(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAuthor(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Doe, Jane", "Jane Doe"},
		{"Jane Doe", "Jane Doe"},
		{"Plato,", "Plato"},
	}

	for _, tt := range tests {
		if got := normalizeAuthor(tt.input); got != tt.want {
			t.Errorf("normalizeAuthor(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
