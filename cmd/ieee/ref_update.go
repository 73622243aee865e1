package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/reference"
)

var updateFields refFields

func init() {
	registerRefFieldFlags(refUpdateCmd, &updateFields)
	refCmd.AddCommand(refUpdateCmd)
}

var refUpdateCmd = &cobra.Command{
	Use:   "update <number>",
	Short: "Change fields of a reference",
	Long: `Change fields of a reference by citation number. Only the flags given are
changed; pass an empty value to clear a field. The IEEE string is regenerated.

Example:
  ieee ref update 3 --pages 101-110 --issue 4`,
	Args: cobra.ExactArgs(1),
	RunE: runRefUpdate,
}

// buildPatch turns the flags that were set into a patch.
func buildPatch(cmd *cobra.Command, f refFields) reference.Patch {
	var p reference.Patch
	changed := cmd.Flags().Changed

	if changed("title") {
		p.Title = &f.title
	}
	if changed("author") {
		authors := f.authors
		p.Authors = &authors
	}
	if changed("year") {
		p.Year = &f.year
	}
	if changed("journal") {
		p.Journal = &f.journal
	}
	if changed("volume") {
		p.Volume = &f.volume
	}
	if changed("issue") {
		p.Issue = &f.issue
	}
	if changed("pages") {
		p.Pages = &f.pages
	}
	if changed("doi") {
		p.DOI = &f.doi
	}
	if changed("url") {
		p.URL = &f.url
	}
	if changed("publisher") {
		p.Publisher = &f.publisher
	}
	return p
}

func runRefUpdate(cmd *cobra.Command, args []string) error {
	number := mustParseNumber(args[0])
	patch := buildPatch(cmd, updateFields)
	if patch.IsEmpty() {
		exitWithError(ExitError, "nothing to update (pass at least one field flag)")
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	docID := resolveDocument(cfg)
	refs := mustReadRefs(root)

	updated, err := reference.Update(refs, docID, number, patch)
	if err != nil {
		if errors.Is(err, reference.ErrNotFound) {
			exitWithError(ExitDataError, "no reference [%d] in %s", number, docID)
		}
		exitWithError(ExitError, "%v", err)
	}
	mustWriteRefs(root, refs)

	if humanOutput {
		fmt.Printf("Updated %s\n", updated.FormattedIEEE)
	} else {
		outputJSON(RefResponse{Status: "updated", Reference: updated})
	}
	return nil
}
