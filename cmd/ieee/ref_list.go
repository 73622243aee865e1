package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/reference"
)

var refListAll bool

func init() {
	refListCmd.Flags().BoolVar(&refListAll, "all", false, "List every document's references")
	refCmd.AddCommand(refListCmd)
}

var refListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a document's references in citation order",
	Args:  cobra.NoArgs,
	RunE:  runRefList,
}

func runRefList(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	docID := ""
	var list []reference.Reference
	if refListAll {
		refs := mustReadRefs(root)
		for _, doc := range reference.Documents(refs) {
			list = append(list, reference.ForDocument(refs, doc)...)
		}
	} else {
		docID = resolveDocument(cfg)
		db := mustOpenDatabase(root)
		defer db.Close()
		var err error
		if list, err = db.ListDocument(docID); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}
	if list == nil {
		list = []reference.Reference{}
	}

	if humanOutput {
		if len(list) == 0 {
			fmt.Println("No references")
			return nil
		}
		for _, ref := range list {
			printRefSummary(ref)
		}
		return nil
	}

	outputJSON(RefListResponse{DocumentID: docID, Count: len(list), References: list})
	return nil
}
