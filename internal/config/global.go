package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/ieee/config.yml.
type GlobalConfig struct {
	WorkspacePath string `yaml:"workspace_path,omitempty"`
	S2APIKey      string `yaml:"s2_api_key,omitempty"`
	FallbackTitle string `yaml:"fallback_title,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "ieee"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/ieee/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.WorkspacePath != "" {
		cfg.WorkspacePath = ExpandPath(cfg.WorkspacePath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetConfigValue returns the environment variable if set, otherwise the
// config value.
func GetConfigValue(envVar, configValue string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return configValue
}

// GetS2APIKey returns the Semantic Scholar API key. S2_API_KEY in the
// environment takes priority over the global config.
func GetS2APIKey() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return os.Getenv("S2_API_KEY")
	}
	return GetConfigValue("S2_API_KEY", cfg.S2APIKey)
}

// GetWorkspacePath returns the configured default workspace, if any.
func GetWorkspacePath() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.WorkspacePath
}

// ResolveFallbackTitle picks the fallback title: workspace config first,
// then global config, then empty (the parser default).
func ResolveFallbackTitle(ws *Config) string {
	if ws != nil && ws.FallbackTitle != "" {
		return ws.FallbackTitle
	}
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.FallbackTitle
}

// HelpfulConfigMessage returns a helpful message when no workspace is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No ieeedraft workspace found.

Run 'ieee init' in your paper directory, or create %s to set a default:
  mkdir -p %s
  echo 'workspace_path: /path/to/your/paper' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
