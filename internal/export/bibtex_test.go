package export

import (
	"strings"
	"testing"

	"github.com/matsen/ieeedraft/internal/reference"
)

func TestToBibTeX_BasicArticle(t *testing.T) {
	ref := reference.Reference{
		CitationNumber: 1,
		DOI:            "10.1234/test",
		Title:          "Test Paper Title",
		Authors:        []string{"John Smith", "Jane Doe"},
		Journal:        "IEEE Trans. Inf. Theory",
		Volume:         "12",
		Issue:          "3",
		Pages:          "100-110",
		Year:           2026,
	}

	got := ToBibTeX(ref, "Smith2026-tp")

	for _, want := range []string{
		"@article{Smith2026-tp,\n",
		"  author = {Smith, John and Doe, Jane},\n",
		"  title = {Test Paper Title},\n",
		"  journal = {IEEE Trans. Inf. Theory},\n",
		"  volume = {12},\n",
		"  number = {3},\n",
		"  pages = {100--110},\n",
		"  year = {2026},\n",
		"  doi = {10.1234/test},\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToBibTeX() missing %q, got:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("ToBibTeX() should end with closing brace, got:\n%s", got)
	}
}

func TestToBibTeX_Inproceedings(t *testing.T) {
	ref := reference.Reference{
		Title:   "Conference Paper",
		Authors: []string{"A. B"},
		Journal: "Proceedings of the IEEE Conference on Computer Vision",
		Year:    2020,
	}

	got := ToBibTeX(ref, "B2020-cp")

	if !strings.HasPrefix(got, "@inproceedings{B2020-cp,") {
		t.Errorf("ToBibTeX() should be inproceedings, got:\n%s", got)
	}
	if !strings.Contains(got, "booktitle = {Proceedings of the IEEE Conference on Computer Vision}") {
		t.Errorf("ToBibTeX() should use booktitle, got:\n%s", got)
	}
}

func TestToBibTeX_OptionalFieldsOmitted(t *testing.T) {
	got := ToBibTeX(reference.Reference{Title: "Minimal Paper", Authors: []string{}}, "k")

	for _, field := range []string{"author = ", "doi = ", "year = ", "journal = ", "volume = ", "pages = "} {
		if strings.Contains(got, field) {
			t.Errorf("ToBibTeX() should omit empty %q, got:\n%s", field, got)
		}
	}
	if !strings.HasPrefix(got, "@misc{k,") {
		t.Errorf("ToBibTeX() without venue should be misc, got:\n%s", got)
	}
}

func TestDetermineEntryType(t *testing.T) {
	tests := []struct {
		name string
		ref  reference.Reference
		want string
	}{
		{"journal", reference.Reference{Journal: "Nature"}, "article"},
		{"conference", reference.Reference{Journal: "Int. Conference on Learning Representations"}, "inproceedings"},
		{"workshop", reference.Reference{Journal: "NeurIPS Workshop"}, "inproceedings"},
		{"symposium", reference.Reference{Journal: "IEEE Symposium on Security"}, "inproceedings"},
		{"book", reference.Reference{Publisher: "Wiley"}, "book"},
		{"nothing", reference.Reference{}, "misc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineEntryType(tt.ref); got != tt.want {
				t.Errorf("determineEntryType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{"single", []string{"John Smith"}, "Smith, John"},
		{"two", []string{"John Smith", "Jane Doe"}, "Smith, John and Doe, Jane"},
		{"mononym", []string{"Plato"}, "Plato"},
		{"initials", []string{"J. R. Smith"}, "Smith, J. R."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAuthors(tt.authors); got != tt.want {
				t.Errorf("formatAuthors() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"100% effective", `100\% effective`},
		{"A & B", `A \& B`},
		{"$100 price", `\$100 price`},
		{"section #1", `section \#1`},
		{"under_score", `under\_score`},
		{"{braces}", `\{braces\}`},
		{"test~tilde", `test\textasciitilde{}tilde`},
		{"x^2", `x\textasciicircum{}2`},
		{`a\b`, `a\textbackslash{}b`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeLatex(tt.input); got != tt.want {
				t.Errorf("escapeLatex(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBibtexPages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10-20", "10--20"},
		{"10 – 20", "10--20"},
		{"10--20", "10--20"},
		{"e1234", "e1234"},
	}

	for _, tt := range tests {
		if got := bibtexPages(tt.input); got != tt.want {
			t.Errorf("bibtexPages(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCiteKey(t *testing.T) {
	tests := []struct {
		name string
		ref  reference.Reference
		want string
	}{
		{"typical", reference.Reference{Authors: []string{"J. Doe"}, Year: 2024, Title: "Deep Learning for Radar"}, "Doe2024-dl"},
		{"stop words skipped", reference.Reference{Authors: []string{"A. O'Brien"}, Year: 2019, Title: "The Art of Computing"}, "OBrien2019-ac"},
		{"no authors", reference.Reference{Year: 2020, Title: "Anonymous"}, "Unknown2020-ax"},
		{"no year", reference.Reference{Authors: []string{"A. Smith"}}, "Smithnd-xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CiteKey(tt.ref); got != tt.want {
				t.Errorf("CiteKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToBibTeXList_UniqueKeys(t *testing.T) {
	ref := reference.Reference{Authors: []string{"J. Doe"}, Year: 2024, Title: "Deep Learning"}
	got := ToBibTeXList([]reference.Reference{ref, ref, ref})

	for _, key := range []string{"{Doe2024-dl,", "{Doe2024-dlb,", "{Doe2024-dlc,"} {
		if !strings.Contains(got, key) {
			t.Errorf("ToBibTeXList() missing key %q, got:\n%s", key, got)
		}
	}
}

func TestToBibTeXList_Empty(t *testing.T) {
	if got := ToBibTeXList(nil); got != "" {
		t.Errorf("ToBibTeXList(nil) = %q, want empty", got)
	}
}
