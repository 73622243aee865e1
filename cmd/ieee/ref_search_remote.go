package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/s2"
)

var searchRemoteLimit int

func init() {
	refSearchRemoteCmd.Flags().IntVarP(&searchRemoteLimit, "limit", "n", s2.DefaultSearchLimit, "Maximum results (up to 100)")
	refCmd.AddCommand(refSearchRemoteCmd)
}

var refSearchRemoteCmd = &cobra.Command{
	Use:   "search-remote <query>",
	Short: "Search Semantic Scholar for papers",
	Long: `Search Semantic Scholar by keywords. Results are shown as unnumbered
references; add one with 'ieee ref lookup <doi> --add'.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefSearchRemote,
}

func runRefSearchRemote(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), S2Timeout)
	defer cancel()

	resp, err := newS2Client().Search(ctx, args[0], searchRemoteLimit)
	if err != nil {
		exitWithS2Error(err)
	}
	refs := s2.ToReferences(resp.Data, "")

	if humanOutput {
		if len(refs) == 0 {
			fmt.Println("No results")
			return nil
		}
		for i, ref := range refs {
			ref.CitationNumber = i + 1
			printRefSummary(ref)
			if ref.DOI != "" {
				fmt.Printf("    doi: %s\n", ref.DOI)
			}
		}
		return nil
	}

	outputJSON(RefListResponse{Count: len(refs), References: refs})
	return nil
}
