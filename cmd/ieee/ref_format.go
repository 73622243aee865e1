package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/reference"
)

var formatAll bool

func init() {
	refFormatCmd.Flags().BoolVar(&formatAll, "all", false, "Regenerate and save every IEEE string of the document")
	refCmd.AddCommand(refFormatCmd)
}

var refFormatCmd = &cobra.Command{
	Use:   "format [number]",
	Short: "Print a reference in IEEE style",
	Long: `Print the IEEE citation of one reference, freshly generated from its fields.

With --all, regenerate the cached IEEE string of every reference of the
document and save them, e.g. after deletions shifted numbers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefFormat,
}

// FormatResponse is the response for a single formatted reference.
type FormatResponse struct {
	CitationNumber int    `json:"citation_number"`
	FormattedIEEE  string `json:"formatted_ieee"`
}

func runRefFormat(cmd *cobra.Command, args []string) error {
	if formatAll == (len(args) == 1) {
		exitWithError(ExitError, "give either a citation number or --all")
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	docID := resolveDocument(cfg)
	if formatAll {
		refs := mustReadRefs(root)
		changed := reference.Reformat(refs, docID)
		if changed > 0 {
			mustWriteRefs(root, refs)
		}
		if humanOutput {
			fmt.Printf("Reformatted %d reference(s) in %s\n", changed, docID)
		} else {
			outputJSON(map[string]interface{}{"status": "reformatted", "document_id": docID, "changed": changed})
		}
		return nil
	}

	number := mustParseNumber(args[0])
	db := mustOpenDatabase(root)
	defer db.Close()
	ref, err := db.GetByNumber(docID, number)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if ref == nil {
		exitWithError(ExitDataError, "no reference [%d] in %s", number, docID)
	}
	formatted := reference.FormatIEEE(*ref)

	if humanOutput {
		fmt.Println(formatted)
	} else {
		outputJSON(FormatResponse{CitationNumber: number, FormattedIEEE: formatted})
	}
	return nil
}
