package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/config"
	"github.com/matsen/ieeedraft/internal/reference"
	"github.com/matsen/ieeedraft/internal/s2"
)

// S2Timeout bounds a single Semantic Scholar command.
const S2Timeout = 60 * time.Second

var (
	lookupAdd   bool
	lookupForce bool
)

func init() {
	refLookupCmd.Flags().BoolVar(&lookupAdd, "add", false, "Add the result to the document's reference list")
	refLookupCmd.Flags().BoolVar(&lookupForce, "force", false, "With --add, add even if the DOI is already present")
	refCmd.AddCommand(refLookupCmd)
}

var refLookupCmd = &cobra.Command{
	Use:   "lookup <doi>",
	Short: "Look up a paper on Semantic Scholar",
	Long: `Look up a paper on Semantic Scholar and show it as a reference.

Accepts a DOI (with or without https://doi.org/), or a prefixed identifier
such as ARXIV:2106.15928 or CorpusId:215416146.

Set S2_API_KEY (environment, .env or global config) for higher rate limits.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefLookup,
}

// newS2Client builds a Semantic Scholar client with the configured key.
func newS2Client() *s2.Client {
	var opts []s2.ClientOption
	if key := config.GetS2APIKey(); key != "" {
		opts = append(opts, s2.WithAPIKey(key))
	}
	return s2.NewClient(opts...)
}

// exitWithS2Error maps Semantic Scholar errors onto exit codes.
func exitWithS2Error(err error) {
	switch {
	case s2.IsNotFound(err):
		exitWithError(ExitS2NotFound, "%v", err)
	case s2.IsAuthError(err):
		exitWithError(ExitS2AuthError, "%v\n\nCheck S2_API_KEY.", err)
	case s2.IsRateLimited(err):
		hint := "Set S2_API_KEY for a higher limit."
		if wait, ok := s2.RetryAfter(err); ok {
			hint = fmt.Sprintf("Retry in %s, or set S2_API_KEY for a higher limit.", wait)
		}
		exitWithError(ExitS2APIError, "%v\n\n%s", err, hint)
	default:
		exitWithError(ExitS2APIError, "%v", err)
	}
}

func runRefLookup(cmd *cobra.Command, args []string) error {
	id := s2.ParsePaperID(args[0])

	ctx, cancel := context.WithTimeout(context.Background(), S2Timeout)
	defer cancel()

	paper, err := newS2Client().GetPaper(ctx, id)
	if err != nil {
		exitWithS2Error(err)
	}

	if !lookupAdd {
		ref := s2.ToReference(*paper, "")
		ref.FormattedIEEE = reference.FormatIEEE(ref)
		if humanOutput {
			printRefSummary(ref)
			if ref.DOI != "" {
				fmt.Printf("    doi: %s\n", ref.DOI)
			}
		} else {
			outputJSON(RefResponse{Status: "found", Reference: ref})
		}
		return nil
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	added := mustAddReference(root, s2.ToReference(*paper, resolveDocument(cfg)), lookupForce)

	if humanOutput {
		fmt.Printf("Added %s\n", added.FormattedIEEE)
	} else {
		outputJSON(RefResponse{Status: "added", Reference: added})
	}
	return nil
}
