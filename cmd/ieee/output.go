package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/ieeedraft/internal/reference"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search commands
	ListTitleMaxLen    = 60 // Title truncation in list output
	AuthorsMaxCount    = 3  // Authors shown before "et al." in summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RefResponse wraps a single reference with the action taken.
type RefResponse struct {
	Status    string              `json:"status"`
	Reference reference.Reference `json:"reference"`
}

// RefListResponse is the response for list-style commands.
type RefListResponse struct {
	DocumentID string                `json:"document_id,omitempty"`
	Count      int                   `json:"count"`
	References []reference.Reference `json:"references"`
}

// printRefSummary prints one reference as a short human-readable block.
func printRefSummary(ref reference.Reference) {
	fmt.Printf("[%d] %s\n", ref.CitationNumber, truncateString(ref.Title, ListTitleMaxLen))
	if authors := formatAuthorsShort(ref.Authors, AuthorsMaxCount); authors != "" {
		if ref.Year != 0 {
			fmt.Printf("    %s (%d)\n", authors, ref.Year)
		} else {
			fmt.Printf("    %s\n", authors)
		}
	}
	if ref.DocumentID != "" {
		fmt.Printf("    doc: %s\n", ref.DocumentID)
	}
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatAuthorsShort lists up to maxCount family names, then "et al.".
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		_, last := reference.SplitName(a)
		names = append(names, last)
	}
	return strings.Join(names, ", ")
}

// outputJSONCompact writes a value as compact JSON to stdout.
func outputJSONCompact(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(v)
}
