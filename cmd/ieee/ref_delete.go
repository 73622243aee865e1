package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/reference"
)

var deleteReformat bool

func init() {
	refDeleteCmd.Flags().BoolVar(&deleteReformat, "reformat", false, "Regenerate IEEE strings of renumbered references")
	refCmd.AddCommand(refDeleteCmd)
}

var refDeleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete a reference and renumber the rest",
	Long: `Delete a reference by citation number. References after it move up by one
so the list stays numbered [1]..[N].

Cached IEEE strings keep their old [n] prefix unless --reformat is given
(or 'ieee ref format --all' is run later).`,
	Args: cobra.ExactArgs(1),
	RunE: runRefDelete,
}

// DeleteResponse reports a deletion.
type DeleteResponse struct {
	Status      string              `json:"status"`
	DocumentID  string              `json:"document_id"`
	Deleted     reference.Reference `json:"deleted"`
	Renumbered  int                 `json:"renumbered"`
	Reformatted int                 `json:"reformatted"`
}

func runRefDelete(cmd *cobra.Command, args []string) error {
	number := mustParseNumber(args[0])

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	docID := resolveDocument(cfg)
	refs := mustReadRefs(root)

	idx, ok := reference.Find(refs, docID, number)
	if !ok {
		exitWithError(ExitDataError, "no reference [%d] in %s", number, docID)
	}
	deleted := refs[idx]
	renumbered := len(reference.ForDocument(refs, docID)) - number

	remaining, err := reference.Delete(refs, docID, number)
	if err != nil {
		if errors.Is(err, reference.ErrNotFound) {
			exitWithError(ExitDataError, "no reference [%d] in %s", number, docID)
		}
		exitWithError(ExitError, "%v", err)
	}

	reformatted := 0
	if deleteReformat {
		reformatted = reference.Reformat(remaining, docID)
	}
	if err := reference.CheckContiguous(remaining, docID); err != nil {
		exitWithError(ExitDataError, "refusing to save: %v", err)
	}
	mustWriteRefs(root, remaining)

	if humanOutput {
		fmt.Printf("Deleted [%d] %s\n", number, deleted.Title)
		if renumbered > 0 {
			fmt.Printf("Renumbered %d reference(s)\n", renumbered)
		}
	} else {
		outputJSON(DeleteResponse{
			Status:      "deleted",
			DocumentID:  docID,
			Deleted:     deleted,
			Renumbered:  renumbered,
			Reformatted: reformatted,
		})
	}
	return nil
}
