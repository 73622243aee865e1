package s2

import (
	"regexp"
	"strings"
)

// Identifier types sent to Semantic Scholar as "TYPE:value".
const (
	IDTypeDOI    = "DOI"
	IDTypeArXiv  = "ARXIV"
	IDTypePMID   = "PMID"
	IDTypeCorpus = "CorpusId"
	IDTypeURL    = "URL"
	IDTypeS2     = "S2"
)

var (
	s2IDPattern    = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
	arxivIDPattern = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)
	arxivURL       = regexp.MustCompile(`^https?://(?:www\.)?arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5})(?:v\d+)?(?:\.pdf)?$`)
	s2PaperURL     = regexp.MustCompile(`^https?://(?:www\.)?semanticscholar\.org/paper/(?:[^/]+/)?([0-9a-fA-F]{40})$`)
)

// ParsePaperID turns a command-line identifier into a lookup key.
//
// Explicit prefixes win (DOI:, ARXIV:, PMID:, CorpusId:, URL:, any case).
// Otherwise arXiv and semanticscholar.org links, bare arXiv IDs such as
// 2106.15928 and 40-character S2 IDs are recognised. Anything else is
// taken as a DOI, with or without a doi.org prefix.
func ParsePaperID(id string) PaperIdentifier {
	id = strings.TrimSpace(id)

	if typ, value, ok := strings.Cut(id, ":"); ok {
		for _, known := range []string{IDTypeDOI, IDTypeArXiv, IDTypePMID, IDTypeCorpus, IDTypeURL} {
			if strings.EqualFold(typ, known) {
				if known == IDTypeDOI {
					value = NormalizeDOI(value)
				}
				return PaperIdentifier{Type: known, Value: strings.TrimSpace(value)}
			}
		}
	}

	switch {
	case s2IDPattern.MatchString(id):
		return PaperIdentifier{Type: IDTypeS2, Value: id}
	case arxivIDPattern.MatchString(id):
		return PaperIdentifier{Type: IDTypeArXiv, Value: id}
	}
	if m := arxivURL.FindStringSubmatch(id); m != nil {
		return PaperIdentifier{Type: IDTypeArXiv, Value: m[1]}
	}
	if m := s2PaperURL.FindStringSubmatch(id); m != nil {
		return PaperIdentifier{Type: IDTypeS2, Value: m[1]}
	}

	return PaperIdentifier{Type: IDTypeDOI, Value: NormalizeDOI(id)}
}

// doiPrefixes are stripped by NormalizeDOI, longest first.
var doiPrefixes = []string{
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"https://doi.org/",
	"http://doi.org/",
	"doi.org/",
	"info:doi/",
	"doi:",
}

// NormalizeDOI lowercases a DOI and strips resolver URLs and a "doi:"
// label so that DOIs compare equal however they were pasted.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range doiPrefixes {
		if len(doi) >= len(prefix) && strings.EqualFold(doi[:len(prefix)], prefix) {
			doi = doi[len(prefix):]
			break
		}
	}
	return strings.ToLower(strings.TrimSpace(doi))
}
