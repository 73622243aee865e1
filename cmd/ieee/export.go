package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/export"
	"github.com/matsen/ieeedraft/internal/reference"
)

var (
	exportBibTeX bool
	exportIEEE   bool
	exportDoc    string
	exportOutput string
	exportAppend bool
)

func init() {
	exportCmd.Flags().BoolVar(&exportBibTeX, "bibtex", false, "Export as BibTeX (default)")
	exportCmd.Flags().BoolVar(&exportIEEE, "ieee", false, "Export as an IEEE reference list")
	exportCmd.Flags().StringVar(&exportDoc, "doc", "", "Document ID (default from config)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().BoolVar(&exportAppend, "append", false, "With --bibtex -o, append only entries missing from the file")
	exportCmd.MarkFlagsMutuallyExclusive("bibtex", "ieee")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a document's references",
	Long: `Export a document's references in citation order as BibTeX or as an IEEE
reference list.

With --append, an existing .bib file is read first and entries already in
it (matched by DOI, then cite key) are left out.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// ExportResult is the JSON response when writing to a file.
type ExportResult struct {
	Status  string `json:"status"`
	Path    string `json:"path"`
	Format  string `json:"format"`
	Count   int    `json:"count"`
	Skipped int    `json:"skipped,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportAppend && (exportOutput == "" || exportIEEE) {
		exitWithError(ExitError, "--append requires --bibtex output to a file (-o)")
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	if exportDoc != "" {
		refDocument = exportDoc
	}
	docID := resolveDocument(cfg)
	refs := reference.ForDocument(mustReadRefs(root), docID)

	format := "bibtex"
	var buf bytes.Buffer
	skipped := 0

	switch {
	case exportIEEE:
		format = "ieee"
		if err := export.WriteIEEE(&buf, refs); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	case exportAppend:
		idx, err := export.ParseBibTeXFile(exportOutput)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		var fresh []reference.Reference
		for _, ref := range refs {
			if idx.HasEntry(export.CiteKey(ref), ref.DOI) {
				skipped++
				continue
			}
			fresh = append(fresh, ref)
		}
		refs = fresh
		buf.WriteString(export.ToBibTeXList(refs))
	default:
		buf.WriteString(export.ToBibTeXList(refs))
	}

	if exportOutput == "" {
		fmt.Print(buf.String())
		return nil
	}

	var err error
	if exportAppend {
		if len(refs) > 0 {
			err = export.AppendToBibFile(exportOutput, buf.String())
		}
	} else {
		err = os.WriteFile(exportOutput, buf.Bytes(), 0644)
	}
	if err != nil {
		exitWithError(ExitError, "writing %s: %v", exportOutput, err)
	}

	if humanOutput {
		fmt.Printf("Exported %d reference(s) from %s to %s\n", len(refs), docID, exportOutput)
		if skipped > 0 {
			fmt.Printf("Skipped %d already in %s\n", skipped, exportOutput)
		}
	} else {
		outputJSON(ExportResult{Status: "exported", Path: exportOutput, Format: format, Count: len(refs), Skipped: skipped})
	}
	return nil
}
