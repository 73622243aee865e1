package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a workspace for a paper",
	Long: `Create a .ieeedraft workspace in the given directory (default: current directory).

The workspace holds config.json, the refs.jsonl reference store and a
rebuildable SQLite cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = config.ExpandPath(args[0])
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		exitWithError(ExitError, "resolving directory: %v", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		exitWithError(ExitConfigError, "not a directory: %s", root)
	}

	if err := config.Init(root); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized workspace in %s\n", config.WorkspacePath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.WorkspacePath(root)})
	}
	return nil
}
