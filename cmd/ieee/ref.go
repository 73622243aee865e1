package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/config"
)

// DefaultDocumentID is used when neither --doc nor default-document is set.
const DefaultDocumentID = "default"

// refDocument is the --doc flag shared by ref subcommands.
var refDocument string

var refCmd = &cobra.Command{
	Use:   "ref",
	Short: "Manage a document's reference list",
	Long: `Manage the numbered reference list of a document.

Each document's references are numbered [1]..[N] without gaps. Deleting a
reference renumbers the ones after it. Every reference caches its IEEE
citation string, regenerated whenever its fields change.

Use --doc to pick the document; it defaults to the workspace's
default-document setting, then to "default".`,
}

func init() {
	refCmd.PersistentFlags().StringVar(&refDocument, "doc", "", "Document ID")
	rootCmd.AddCommand(refCmd)
}

// resolveDocument picks the document ID for a ref command.
func resolveDocument(cfg *config.Config) string {
	if refDocument != "" {
		return refDocument
	}
	if cfg != nil && cfg.DefaultDocument != "" {
		return cfg.DefaultDocument
	}
	return DefaultDocumentID
}

// mustParseNumber parses a citation number argument, exits on error.
func mustParseNumber(arg string) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		exitWithError(ExitError, "invalid citation number: %s", arg)
	}
	return n
}
