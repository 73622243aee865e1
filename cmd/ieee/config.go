package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/ieeedraft/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set workspace configuration values.

Usage:
  ieee config                              # Show all config
  ieee config wrap-width                   # Get specific value
  ieee config wrap-width 80                # Set value
  ieee config default-document camera-ready

Keys:
  fallback-title    Title used when a draft has no "# " title line
  wrap-width        Preview column width (40-200, 0 for default)
  default-document  Document ID used by ref commands when --doc is omitted`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	FallbackTitle   string `json:"fallback_title"`
	WrapWidth       int    `json:"wrap_width"`
	DefaultDocument string `json:"default_document"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("fallback-title:   %s\n", cfg.FallbackTitle)
			fmt.Printf("wrap-width:       %d\n", cfg.WrapWidth)
			fmt.Printf("default-document: %s\n", cfg.DefaultDocument)
		} else {
			outputJSON(ConfigResponse{
				FallbackTitle:   cfg.FallbackTitle,
				WrapWidth:       cfg.WrapWidth,
				DefaultDocument: cfg.DefaultDocument,
			})
		}
		return nil
	}

	key := args[0]
	normalizedKey := normalizeKey(key)

	// One arg: get specific value
	if len(args) == 1 {
		var value string
		switch normalizedKey {
		case "fallback-title":
			value = cfg.FallbackTitle
		case "wrap-width":
			value = strconv.Itoa(cfg.WrapWidth)
		case "default-document":
			value = cfg.DefaultDocument
		default:
			exitWithError(ExitError, "unknown configuration key: %s", key)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(normalizedKey, "-", "_"): value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]

	switch normalizedKey {
	case "fallback-title":
		cfg.FallbackTitle = value

	case "wrap-width":
		width, err := strconv.Atoi(value)
		if err != nil {
			exitWithError(ExitConfigError, "wrap-width must be an integer: %s", value)
		}
		if err := config.ValidateWrapWidth(width); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.WrapWidth = width

	case "default-document":
		cfg.DefaultDocument = strings.TrimSpace(value)

	default:
		exitWithError(ExitError, "unknown configuration key: %s", key)
	}

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    normalizedKey,
			Value:  value,
		})
	}

	return nil
}

// normalizeKey converts key formats (wrap-width, wrap_width, WRAP_WIDTH) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
