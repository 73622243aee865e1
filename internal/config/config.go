// Package config handles workspace and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents workspace configuration stored in .ieeedraft/config.json.
type Config struct {
	FallbackTitle   string `json:"fallback_title,omitempty"`   // Title used when a draft has none
	WrapWidth       int    `json:"wrap_width,omitempty"`       // Preview column width
	DefaultDocument string `json:"default_document,omitempty"` // Document ID used when --doc is omitted
}

const (
	WorkspaceDir = ".ieeedraft"
	ConfigFile   = "config.json"
	RefsFile     = "refs.jsonl"
	CacheDir     = "cache"
	DBFile       = "refs.db"

	// MinWrapWidth and MaxWrapWidth bound the preview column width.
	MinWrapWidth = 40
	MaxWrapWidth = 200
)

// WorkspacePath returns the path to the .ieeedraft directory from a root path.
func WorkspacePath(root string) string {
	return filepath.Join(root, WorkspaceDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, WorkspaceDir, ConfigFile)
}

// RefsPath returns the path to refs.jsonl from a root path.
func RefsPath(root string) string {
	return filepath.Join(root, WorkspaceDir, RefsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir)
}

// DBPath returns the path to refs.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir, DBFile)
}

// IsWorkspace checks if the given path contains a workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(WorkspacePath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find a workspace.
// Returns the workspace root path or an error if not found.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in an ieeedraft workspace (no %s directory found)", WorkspaceDir)
		}
		abs = parent
	}
}

// Init creates the workspace layout under root with a default config.
// It fails if root is already a workspace.
func Init(root string) error {
	if IsWorkspace(root) {
		return fmt.Errorf("workspace already exists: %s", WorkspacePath(root))
	}
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}
	cfg := &Config{}
	return cfg.Save(root)
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateWrapWidth checks that a preview width is usable.
func ValidateWrapWidth(width int) error {
	if width == 0 {
		return nil // Zero means the renderer default
	}
	if width < MinWrapWidth || width > MaxWrapWidth {
		return fmt.Errorf("invalid wrap_width: %d (must be between %d and %d)", width, MinWrapWidth, MaxWrapWidth)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
