package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var parseFallbackTitle string

func init() {
	parseCmd.Flags().StringVar(&parseFallbackTitle, "fallback-title", "", "Title to use when the draft has none")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a draft into IEEE structure",
	Long: `Parse a draft into title, abstract, keywords, sections and references.

Accepts Markdown or plain text (.md, .txt), editor JSON (.json), HTML
(.html) and PDF (.pdf). Other files, and "-" for stdin, are detected from
their content.

Example:
  pdftk paper.pdf cat 1-3 output - | ieee parse -`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	s := resolveDraftSettings(parseFallbackTitle, 0)

	p, err := loadDraft(args[0], s)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if !humanOutput {
		outputJSON(p)
		return nil
	}

	fmt.Printf("Title:      %s\n", p.Title)
	if p.Abstract != "" {
		fmt.Printf("Abstract:   %s\n", truncateString(p.Abstract, ListTitleMaxLen))
	}
	if len(p.Keywords) > 0 {
		fmt.Printf("Keywords:   %s\n", strings.Join(p.Keywords, ", "))
	}
	fmt.Printf("Sections:   %d\n", len(p.Sections))
	for _, sec := range p.Sections {
		fmt.Printf("  - %s\n", sec.Title)
	}
	fmt.Printf("References: %d\n", len(p.References))
	return nil
}
