package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/config"
	"github.com/matsen/ieeedraft/internal/reference"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search cache from refs.jsonl",
	Long: `Rebuild the SQLite search cache from the JSONL reference store.

The cache normally refreshes itself when refs.jsonl changes. Use this after
the database is deleted or corrupted. Numbering gaps are reported as warnings.`,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status     string   `json:"status"`
	References int      `json:"references"`
	Documents  int      `json:"documents"`
	Warnings   []string `json:"warnings,omitempty"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()

	db := mustOpenDatabase(root)
	defer db.Close()

	refsCount, err := db.RebuildFromJSONL(config.RefsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding refs database: %v", err)
	}

	refs := mustReadRefs(root)
	docs := reference.Documents(refs)
	var warnings []string
	for _, doc := range docs {
		if err := reference.CheckContiguous(refs, doc); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if humanOutput {
		fmt.Printf("Rebuilt search cache with %d references in %d documents\n", refsCount, len(docs))
		for _, w := range warnings {
			fmt.Printf("warning: %s\n", w)
		}
	} else {
		outputJSON(RebuildResult{
			Status:     "rebuilt",
			References: refsCount,
			Documents:  len(docs),
			Warnings:   warnings,
		})
	}

	return nil
}
