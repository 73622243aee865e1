package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/export"
	"github.com/matsen/ieeedraft/internal/importer"
	"github.com/matsen/ieeedraft/internal/reference"
	"github.com/matsen/ieeedraft/internal/storage"
)

var importDryRun bool

func init() {
	refImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without saving")
	refCmd.AddCommand(refImportCmd)
}

var refImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import references from BibTeX or a publisher page",
	Long: `Import references into the document's list.

  .bib             every entry, in file order
  .html, .htm      one reference from citation_* / Dublin Core meta tags

Entries whose DOI is already in the document are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefImport,
}

// ImportResult is the response for the import command.
type ImportResult struct {
	Status   string                `json:"status"`
	Imported []reference.Reference `json:"imported"`
	Skipped  []SkippedImport       `json:"skipped"`
}

// SkippedImport records an entry left out of an import.
type SkippedImport struct {
	Title  string `json:"title"`
	DOI    string `json:"doi,omitempty"`
	Reason string `json:"reason"`
}

// readImportFile parses path into unnumbered references for documentID.
func readImportFile(path, documentID string) ([]reference.Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".bib", ".bibtex":
		entries, err := export.ParseBibTeX(f)
		if err != nil {
			return nil, err
		}
		refs := make([]reference.Reference, 0, len(entries))
		for _, e := range entries {
			refs = append(refs, export.EntryToReference(e, documentID))
		}
		return refs, nil
	case ".html", ".htm":
		ref, err := importer.FromHTML(f, documentID)
		if err != nil {
			return nil, err
		}
		return []reference.Reference{ref}, nil
	default:
		return nil, fmt.Errorf("unsupported import format %q (want .bib or .html)", ext)
	}
}

// mergeImports adds incoming references after the existing ones, skipping
// entries without a title and DOIs already in the document.
func mergeImports(refs, incoming []reference.Reference) ([]reference.Reference, []reference.Reference, []SkippedImport) {
	imported := []reference.Reference{}
	skipped := []SkippedImport{}

	for _, ref := range incoming {
		if strings.TrimSpace(ref.Title) == "" {
			skipped = append(skipped, SkippedImport{DOI: ref.DOI, Reason: "no title"})
			continue
		}
		if i, ok := storage.FindByDOI(refs, ref.DocumentID, ref.DOI); ok {
			skipped = append(skipped, SkippedImport{
				Title:  ref.Title,
				DOI:    ref.DOI,
				Reason: fmt.Sprintf("duplicate of [%d]", refs[i].CitationNumber),
			})
			continue
		}
		refs = reference.Add(refs, ref)
		imported = append(imported, refs[len(refs)-1])
	}
	return refs, imported, skipped
}

func runRefImport(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	docID := resolveDocument(cfg)

	incoming, err := readImportFile(args[0], docID)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	refs, imported, skipped := mergeImports(mustReadRefs(root), incoming)
	slog.Debug("import", "file", args[0], "imported", len(imported), "skipped", len(skipped))

	status := "imported"
	if importDryRun {
		status = "dry-run"
	} else if len(imported) > 0 {
		mustWriteRefs(root, refs)
	}

	if humanOutput {
		verb := "Imported"
		if importDryRun {
			verb = "Would import"
		}
		fmt.Printf("%s %d reference(s) into %s\n", verb, len(imported), docID)
		for _, ref := range imported {
			fmt.Printf("  %s\n", ref.FormattedIEEE)
		}
		for _, s := range skipped {
			fmt.Printf("  skipped %q: %s\n", s.Title, s.Reason)
		}
		return nil
	}

	outputJSON(ImportResult{Status: status, Imported: imported, Skipped: skipped})
	return nil
}
