// Package main provides the ieee CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/config"
	"github.com/matsen/ieeedraft/internal/reference"
	"github.com/matsen/ieeedraft/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors (missing flags, bad args) are printed here.
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ieee",
	Short: "IEEE paper drafting CLI",
	Long: `ieee turns a paper draft into IEEE structure and manages its reference list.

Core features:
  - Parse Markdown, plain text, editor JSON, HTML or PDF drafts into
    title, abstract, keywords, sections and references
  - Render a plain-text IEEE preview, optionally live on every save
  - Keep numbered reference lists per document, formatted in IEEE style
  - Look references up on Semantic Scholar, import BibTeX or landing pages
  - Export reference lists as BibTeX or IEEE text

References live in git-versionable JSONL with an ephemeral SQLite cache for search.
All commands output JSON by default; use --human for text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

func init() {
	// Load .env if present (S2_API_KEY, LOG_LEVEL)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// setupLogger configures the default slog logger from LOG_LEVEL.
func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// findWorkspace locates the workspace from the current directory, then
// from workspace_path in the global config.
func findWorkspace() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	if root, err := config.FindWorkspace(cwd); err == nil {
		return root, nil
	}
	if root := config.GetWorkspacePath(); root != "" {
		return config.FindWorkspace(root)
	}
	return "", fmt.Errorf("no workspace found from %s", cwd)
}

// mustFindWorkspace finds the workspace, exits on error.
// Returns the workspace root path.
func mustFindWorkspace() string {
	root, err := findWorkspace()
	if err != nil {
		slog.Debug("workspace lookup failed", "error", err)
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the SQLite cache and refreshes it if refs.jsonl
// changed since the last rebuild. The caller must Close the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	rebuilt, err := db.EnsureFresh(config.RefsPath(root))
	if err != nil {
		db.Close()
		exitWithError(ExitDataError, "refreshing cache: %v", err)
	}
	if rebuilt {
		slog.Debug("cache rebuilt from refs.jsonl")
	}
	return db
}

// mustReadRefs loads every stored reference, exits on error.
func mustReadRefs(root string) []reference.Reference {
	refs, err := storage.ReadAll(config.RefsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "reading references: %v", err)
	}
	return refs
}

// mustWriteRefs replaces refs.jsonl and rebuilds the cache.
func mustWriteRefs(root string, refs []reference.Reference) {
	refsPath := config.RefsPath(root)
	if err := storage.WriteAll(refsPath, refs); err != nil {
		exitWithError(ExitError, "writing references: %v", err)
	}

	// Opening refreshes the cache against the new fingerprint.
	db := mustOpenDatabase(root)
	db.Close()
}
