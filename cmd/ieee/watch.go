package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/watch"
)

var (
	watchFallbackTitle string
	watchWidth         int
	watchDebounce      time.Duration
	watchJSON          bool
)

func init() {
	watchCmd.Flags().StringVar(&watchFallbackTitle, "fallback-title", "", "Title to use when the draft has none")
	watchCmd.Flags().IntVar(&watchWidth, "width", 0, "Column width (default from config, else 72)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before re-rendering")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Emit the parsed structure as one JSON line per change instead of the text preview")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-render a draft preview whenever the file changes",
	Long: `Watch a draft and print a fresh preview each time it is saved.

Bursts of writes are coalesced. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	s := resolveDraftSettings(watchFallbackTitle, watchWidth)

	render := func() error {
		text, p, err := renderPreview(path, s)
		if err != nil {
			return err
		}
		if watchJSON {
			return outputJSONCompact(p)
		}
		// Clear the terminal so the preview stays in place.
		fmt.Print("\033[H\033[2J")
		fmt.Print(text)
		return nil
	}

	if err := render(); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := watch.File(ctx, path, watch.Options{Debounce: watchDebounce, Logger: slog.Default()}, render)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return nil
}
