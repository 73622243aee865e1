package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/reference"
	"github.com/matsen/ieeedraft/internal/storage"
)

// refFields holds the metadata flags shared by add and update.
type refFields struct {
	title, journal, volume, issue, pages, doi, url, publisher string
	authors                                                   []string
	year                                                      int
}

var (
	addFields   refFields
	addRawText  string
	addFormat   string
	addVerified bool
	addForce    bool
)

func init() {
	registerRefFieldFlags(refAddCmd, &addFields)
	refAddCmd.Flags().StringVar(&addRawText, "raw", "", "Citation text as originally written")
	refAddCmd.Flags().StringVar(&addFormat, "format", "", "Style of the raw text (APA, MLA, Harvard, Chicago, IEEE, Unknown)")
	refAddCmd.Flags().BoolVar(&addVerified, "verified", false, "Mark the reference as checked against its source")
	refAddCmd.Flags().BoolVar(&addForce, "force", false, "Add even if the DOI is already in the document")
	refCmd.AddCommand(refAddCmd)
}

// registerRefFieldFlags binds the shared metadata flags to cmd.
func registerRefFieldFlags(cmd *cobra.Command, f *refFields) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringArrayVarP(&f.authors, "author", "a", nil, "Author display name (repeatable, in order)")
	cmd.Flags().IntVar(&f.year, "year", 0, "Publication year")
	cmd.Flags().StringVar(&f.journal, "journal", "", "Journal or proceedings name")
	cmd.Flags().StringVar(&f.volume, "volume", "", "Volume")
	cmd.Flags().StringVar(&f.issue, "issue", "", "Issue number")
	cmd.Flags().StringVar(&f.pages, "pages", "", "Page range, e.g. 10-20")
	cmd.Flags().StringVar(&f.doi, "doi", "", "DOI")
	cmd.Flags().StringVar(&f.url, "url", "", "URL")
	cmd.Flags().StringVar(&f.publisher, "publisher", "", "Publisher")
}

var refAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a reference to the end of a document's list",
	Long: `Add a reference from flags. It gets the next citation number and its
IEEE string is generated immediately.

Example:
  ieee ref add --title "Deep Learning" -a "Y. LeCun" -a "Y. Bengio" \
    --journal Nature --volume 521 --pages 436-444 --year 2015`,
	Args: cobra.NoArgs,
	RunE: runRefAdd,
}

func runRefAdd(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(addFields.title) == "" {
		exitWithError(ExitError, "--title is required")
	}
	if err := reference.ValidateFormat(addFormat); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	docID := resolveDocument(cfg)

	ref := reference.Reference{
		DocumentID:     docID,
		Title:          strings.TrimSpace(addFields.title),
		Authors:        addFields.authors,
		Year:           addFields.year,
		Journal:        addFields.journal,
		Volume:         addFields.volume,
		Issue:          addFields.issue,
		Pages:          addFields.pages,
		DOI:            addFields.doi,
		URL:            addFields.url,
		Publisher:      addFields.publisher,
		RawText:        addRawText,
		OriginalFormat: addFormat,
		Verified:       addVerified,
	}

	added := mustAddReference(root, ref, addForce)

	if humanOutput {
		fmt.Printf("Added %s\n", added.FormattedIEEE)
	} else {
		outputJSON(RefResponse{Status: "added", Reference: added})
	}
	return nil
}

// mustAddReference appends ref to its document and persists the list.
// A DOI already present in the document is a data error unless force is set.
func mustAddReference(root string, ref reference.Reference, force bool) reference.Reference {
	refs := mustReadRefs(root)

	if !force {
		if i, ok := storage.FindByDOI(refs, ref.DocumentID, ref.DOI); ok {
			exitWithError(ExitDataError, "DOI %s is already reference [%d] of %s (use --force to add anyway)",
				ref.DOI, refs[i].CitationNumber, ref.DocumentID)
		}
	}

	refs = reference.Add(refs, ref)
	mustWriteRefs(root, refs)
	return refs[len(refs)-1]
}
