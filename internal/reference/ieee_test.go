package reference

import (
	"strings"
	"testing"
)

func TestFormatIEEE(t *testing.T) {
	tests := []struct {
		name string
		ref  Reference
		want string
	}{
		{
			name: "full record",
			ref: Reference{
				CitationNumber: 1,
				Authors:        []string{"J. Doe", "A. Smith"},
				Title:          "Deep Learning",
				Journal:        "IEEE Trans. AI",
				Volume:         "5",
				Issue:          "2",
				Pages:          "10-20",
				Year:           2024,
				DOI:            "10.1/xyz",
			},
			want: `[1] J. Doe, and A. Smith, "Deep Learning", IEEE Trans. AI, vol. 5, no. 2, pp. 10-20, 2024. doi: 10.1/xyz`,
		},
		{
			name: "no authors",
			ref:  Reference{CitationNumber: 3, Title: "Anonymous Work"},
			want: `[3] Unknown Author, "Anonymous Work".`,
		},
		{
			name: "single author with year",
			ref:  Reference{CitationNumber: 2, Authors: []string{"K. He"}, Title: "ResNet", Year: 2016},
			want: `[2] K. He, "ResNet", 2016.`,
		},
		{
			name: "three authors",
			ref:  Reference{CitationNumber: 4, Authors: []string{"A", "B", "C"}, Title: "T"},
			want: `[4] A, B, and C, "T".`,
		},
		{
			name: "sparse fields keep order",
			ref:  Reference{CitationNumber: 5, Authors: []string{"A"}, Title: "T", Pages: "1-2", Volume: "9"},
			want: `[5] A, "T", vol. 9, pp. 1-2.`,
		},
		{
			name: "empty title",
			ref:  Reference{CitationNumber: 6},
			want: `[6] Unknown Author, "".`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatIEEE(tt.ref); got != tt.want {
				t.Errorf("FormatIEEE() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestFormatIEEE_NoAuthorsPrefix(t *testing.T) {
	got := FormatIEEE(Reference{CitationNumber: 7, Authors: []string{}, Title: "X", Year: 2020})
	if !strings.HasPrefix(got, "[7] Unknown Author, ") {
		t.Errorf("FormatIEEE() = %q, want Unknown Author prefix", got)
	}
}

func TestJoinAuthors_DoesNotMutateInput(t *testing.T) {
	authors := []string{"A", "B"}
	_ = JoinAuthors(authors)
	if authors[1] != "B" {
		t.Errorf("JoinAuthors mutated its input: %v", authors)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		wantFirst string
		wantLast  string
	}{
		{"J. Doe", "J.", "Doe"},
		{"Doe, Jane", "Jane", "Doe"},
		{"Madonna", "", "Madonna"},
		{"Martin Luther King Jr.", "Martin Luther", "King Jr."},
		{"  ", "", ""},
	}
	for _, tt := range tests {
		first, last := SplitName(tt.name)
		if first != tt.wantFirst || last != tt.wantLast {
			t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)", tt.name, first, last, tt.wantFirst, tt.wantLast)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range append(ValidStyles, "") {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", f, err)
		}
	}
	if err := ValidateFormat("Vancouver"); err == nil {
		t.Error("ValidateFormat(Vancouver) should fail")
	}
}

func TestStyleIEEEIsAcceptedOriginalFormat(t *testing.T) {
	if StyleIEEE != "IEEE" {
		t.Errorf("StyleIEEE = %q, want IEEE", StyleIEEE)
	}
	if err := ValidateFormat(StyleIEEE); err != nil {
		t.Errorf("ValidateFormat(StyleIEEE) error = %v", err)
	}

	// The style constant and the formatter live side by side.
	r := Reference{CitationNumber: 1, Title: "T", OriginalFormat: StyleIEEE}
	if got := FormatIEEE(r); got != `[1] Unknown Author, "T".` {
		t.Errorf("FormatIEEE() = %q", got)
	}
}
