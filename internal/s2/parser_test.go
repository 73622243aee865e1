package s2

import "testing"

func TestParsePaperID(t *testing.T) {
	tests := []struct {
		input string
		want  PaperIdentifier
	}{
		{"DOI:10.1109/5.771073", PaperIdentifier{"DOI", "10.1109/5.771073"}},
		{"doi:10.1109/5.771073", PaperIdentifier{"DOI", "10.1109/5.771073"}},
		{"ARXIV:2106.15928", PaperIdentifier{"ARXIV", "2106.15928"}},
		{"CorpusId:215416146", PaperIdentifier{"CorpusId", "215416146"}},
		{"649def34f8be52c8b66281af98ae884c09aef38b", PaperIdentifier{"S2", "649def34f8be52c8b66281af98ae884c09aef38b"}},
		{"https://doi.org/10.1109/5.771073", PaperIdentifier{"DOI", "10.1109/5.771073"}},
		{" 10.1109/JPROC.2019.1 ", PaperIdentifier{"DOI", "10.1109/jproc.2019.1"}},
		{"DOI:https://doi.org/10.1109/X", PaperIdentifier{"DOI", "10.1109/x"}},
		{"pmid:19872477", PaperIdentifier{"PMID", "19872477"}},
		{"2106.15928", PaperIdentifier{"ARXIV", "2106.15928"}},
		{"https://arxiv.org/abs/2106.15928v2", PaperIdentifier{"ARXIV", "2106.15928"}},
		{"https://arxiv.org/pdf/2106.15928.pdf", PaperIdentifier{"ARXIV", "2106.15928"}},
		{
			"https://www.semanticscholar.org/paper/Some-Title/649def34f8be52c8b66281af98ae884c09aef38b",
			PaperIdentifier{"S2", "649def34f8be52c8b66281af98ae884c09aef38b"},
		},
	}

	for _, tt := range tests {
		if got := ParsePaperID(tt.input); got != tt.want {
			t.Errorf("ParsePaperID(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestPaperIdentifierString(t *testing.T) {
	if got := (PaperIdentifier{"DOI", "10.1/x"}).String(); got != "DOI:10.1/x" {
		t.Errorf("String() = %q", got)
	}
	if got := (PaperIdentifier{"S2", "abc"}).String(); got != "abc" {
		t.Errorf("String() = %q", got)
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1038/Nature12373", "10.1038/nature12373"},
		{"https://doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"http://doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"https://dx.doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"DOI:10.1038/nature12373", "10.1038/nature12373"},
		{"doi: 10.1038/nature12373", "10.1038/nature12373"},
		{"HTTPS://DOI.ORG/10.1038/nature12373", "10.1038/nature12373"},
		{"info:doi/10.1038/nature12373", "10.1038/nature12373"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDOI(tt.input); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
