package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/paper"
)

var (
	previewFallbackTitle string
	previewWidth         int
)

func init() {
	previewCmd.Flags().StringVar(&previewFallbackTitle, "fallback-title", "", "Title to use when the draft has none")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "Column width (default from config, else 72)")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Render a plain-text IEEE preview of a draft",
	Long: `Render a plain-text IEEE preview: centered title, abstract and keywords,
Roman-numbered section headings and a bracket-numbered reference list.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

// PreviewResponse is the JSON form of a rendered preview.
type PreviewResponse struct {
	Title   string `json:"title"`
	Width   int    `json:"width"`
	Preview string `json:"preview"`
}

func runPreview(cmd *cobra.Command, args []string) error {
	s := resolveDraftSettings(previewFallbackTitle, previewWidth)

	text, p, err := renderPreview(args[0], s)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		fmt.Print(text)
	} else {
		width := s.WrapWidth
		if width <= 0 {
			width = paper.DefaultWrapWidth
		}
		outputJSON(PreviewResponse{Title: p.Title, Width: width, Preview: text})
	}
	return nil
}

// renderPreview parses a draft and renders it as text.
func renderPreview(path string, s draftSettings) (string, *paper.Paper, error) {
	p, err := loadDraft(path, s)
	if err != nil {
		return "", nil, err
	}
	var buf bytes.Buffer
	if err := paper.RenderText(&buf, p, s.WrapWidth); err != nil {
		return "", nil, fmt.Errorf("rendering preview: %w", err)
	}
	return buf.String(), p, nil
}
