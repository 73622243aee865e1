package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/pdf"
	"github.com/matsen/ieeedraft/internal/s2"
)

var addPDFForce bool

func init() {
	refAddPDFCmd.Flags().BoolVar(&addPDFForce, "force", false, "Add even if the DOI is already present")
	refCmd.AddCommand(refAddPDFCmd)
}

var refAddPDFCmd = &cobra.Command{
	Use:   "add-pdf <file.pdf>",
	Short: "Add a reference from a paper's PDF",
	Long: `Find the DOI on the first pages of a PDF, look it up on Semantic Scholar
and add the result to the document's reference list.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefAddPDF,
}

func runRefAddPDF(cmd *cobra.Command, args []string) error {
	doi, err := pdf.ExtractDOI(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if doi == "" {
		exitWithError(ExitDataError, "no DOI found in the first %d pages of %s", pdf.DOIPages, args[0])
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	ctx, cancel := context.WithTimeout(context.Background(), S2Timeout)
	defer cancel()

	paper, err := newS2Client().LookupDOI(ctx, doi)
	if err != nil {
		exitWithS2Error(err)
	}

	added := mustAddReference(root, s2.ToReference(*paper, resolveDocument(cfg)), addPDFForce)

	if humanOutput {
		fmt.Printf("Found DOI %s\nAdded %s\n", doi, added.FormattedIEEE)
	} else {
		outputJSON(RefResponse{Status: "added", Reference: added})
	}
	return nil
}
