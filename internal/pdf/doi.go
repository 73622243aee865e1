// Package pdf pulls text and DOIs out of PDF files.
package pdf

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DOIPages is how many leading pages ExtractDOI searches.
const DOIPages = 3

// DOI pattern: 10.XXXX/... where XXXX is 4-9 digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ExtractDOI returns the first DOI found on the leading pages of a PDF,
// or "" when there is none.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var doi string
	eachPage(r, DOIPages, func(text string) bool {
		doi = findDOI(text)
		return doi == ""
	})
	return doi, nil
}

// ExtractText extracts text from the first maxPages pages of a PDF.
// A non-positive maxPages reads every page.
func ExtractText(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	return collectText(r, maxPages), nil
}

// ExtractTextReader extracts text from a PDF held in r.
func ExtractTextReader(r io.ReaderAt, size int64, maxPages int) (string, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}
	return collectText(pdfReader, maxPages), nil
}

func collectText(r *pdf.Reader, maxPages int) string {
	var builder strings.Builder
	eachPage(r, maxPages, func(text string) bool {
		builder.WriteString(text)
		builder.WriteString("\n")
		return true
	})
	return builder.String()
}

// eachPage calls fn with the plain text of each readable page until fn
// returns false. Pages that fail to decode are skipped.
func eachPage(r *pdf.Reader, maxPages int, fn func(string) bool) {
	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if !fn(text) {
			return
		}
	}
}

// findDOI finds a DOI in text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}
