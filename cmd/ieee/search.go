package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/reference"
	"github.com/matsen/ieeedraft/internal/storage"
)

var (
	searchLimit int
	searchDoc   string
	searchYear  string
)

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", DefaultSearchLimit, "Maximum results")
	searchCmd.Flags().StringVar(&searchDoc, "doc", "", "Only search this document")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Year or range: 2020, 2020:2024, 2020:, :2024")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over stored references",
	Long: `Search titles, authors and journals of stored references.

Query syntax follows SQLite FTS5: words are ANDed, "quoted phrases" match
exactly, and a trailing * matches prefixes.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	from, to, err := parseYearRange(searchYear)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindWorkspace()
	db := mustOpenDatabase(root)
	defer db.Close()

	results, err := db.Search(args[0], storage.SearchFilters{
		DocumentID: searchDoc,
		YearFrom:   from,
		YearTo:     to,
	}, searchLimit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if results == nil {
		results = []reference.Reference{}
	}

	if humanOutput {
		if len(results) == 0 {
			fmt.Println("No matches")
			return nil
		}
		for _, ref := range results {
			printRefSummary(ref)
		}
		return nil
	}

	outputJSON(RefListResponse{DocumentID: searchDoc, Count: len(results), References: results})
	return nil
}

// parseYearRange parses "2024", "2020:2024", "2020:" or ":2024".
func parseYearRange(expr string) (from, to int, err error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, 0, nil
	}

	if start, end, ok := strings.Cut(expr, ":"); ok {
		if start != "" {
			if from, err = strconv.Atoi(start); err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", start)
			}
		}
		if end != "" {
			if to, err = strconv.Atoi(end); err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", end)
			}
		}
		return from, to, nil
	}

	year, err := strconv.Atoi(expr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", expr)
	}
	return year, year, nil
}
