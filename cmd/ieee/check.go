package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/reference"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify reference list integrity",
	Long: `Verify every document's reference list: numbering must run [1]..[N]
without gaps, a DOI must appear once per document, and cached IEEE strings
should match their fields (stale after deletions without --reformat).`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// Issue types reported by check.
const (
	IssueNumbering    = "numbering"
	IssueDuplicateDOI = "duplicate_doi"
	IssueStaleFormat  = "stale_format"
)

// CheckResult is the response for the check command.
type CheckResult struct {
	Status     string       `json:"status"`
	References int          `json:"references"`
	Documents  int          `json:"documents"`
	Issues     []CheckIssue `json:"issues"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type       string `json:"type"`
	DocumentID string `json:"document_id"`
	Numbers    []int  `json:"numbers,omitempty"`
	DOI        string `json:"doi,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// findIssues checks each document's list independently.
func findIssues(refs []reference.Reference) []CheckIssue {
	issues := []CheckIssue{}
	for _, doc := range reference.Documents(refs) {
		if err := reference.CheckContiguous(refs, doc); err != nil {
			issues = append(issues, CheckIssue{Type: IssueNumbering, DocumentID: doc, Detail: err.Error()})
		}

		list := reference.ForDocument(refs, doc)
		byDOI := make(map[string][]int)
		var dois []string
		var stale []int
		for _, ref := range list {
			if ref.DOI != "" {
				key := strings.ToLower(ref.DOI)
				if _, seen := byDOI[key]; !seen {
					dois = append(dois, key)
				}
				byDOI[key] = append(byDOI[key], ref.CitationNumber)
			}
			if ref.FormattedIEEE != reference.FormatIEEE(ref) {
				stale = append(stale, ref.CitationNumber)
			}
		}

		sort.Strings(dois)
		for _, doi := range dois {
			if nums := byDOI[doi]; len(nums) > 1 {
				issues = append(issues, CheckIssue{Type: IssueDuplicateDOI, DocumentID: doc, Numbers: nums, DOI: doi})
			}
		}
		if len(stale) > 0 {
			issues = append(issues, CheckIssue{
				Type:       IssueStaleFormat,
				DocumentID: doc,
				Numbers:    stale,
				Detail:     "run 'ieee ref format --all --doc " + doc + "'",
			})
		}
	}
	return issues
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	refs := mustReadRefs(root)

	issues := findIssues(refs)
	status := "ok"
	if len(issues) > 0 {
		status = "issues"
	}

	if humanOutput {
		if len(issues) == 0 {
			fmt.Printf("Reference check: OK\n\n%d references checked\n", len(refs))
			return nil
		}
		fmt.Printf("Reference check: %d issues found\n\n", len(issues))
		for _, issue := range issues {
			switch issue.Type {
			case IssueNumbering:
				fmt.Printf("  [ERROR] %s\n\n", issue.Detail)
			case IssueDuplicateDOI:
				fmt.Printf("  [WARN] Duplicate DOI %s in %s\n", issue.DOI, issue.DocumentID)
				fmt.Printf("         Found at: %s\n\n", formatNumberList(issue.Numbers))
			case IssueStaleFormat:
				fmt.Printf("  [WARN] Stale IEEE strings in %s: %s\n", issue.DocumentID, formatNumberList(issue.Numbers))
				fmt.Printf("         Fix: %s\n\n", issue.Detail)
			}
		}
		fmt.Printf("%d references checked\n", len(refs))
		return nil
	}

	outputJSON(CheckResult{
		Status:     status,
		References: len(refs),
		Documents:  len(reference.Documents(refs)),
		Issues:     issues,
	})
	return nil
}

// formatNumberList renders citation numbers as "[1], [4]".
func formatNumberList(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("[%d]", n)
	}
	return strings.Join(parts, ", ")
}
