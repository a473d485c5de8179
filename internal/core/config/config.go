// Package config handles configuration loading and validation for brief.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Built-in action names for keybindings.
const (
	ActionPromote   = "promote"
	ActionRevert    = "revert"
	ActionRevertAll = "revert-all"
	ActionDismiss   = "dismiss"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"a": {
		Action: ActionPromote,
		Help:   "add selection to chat",
	},
	"u": {
		Action: ActionRevert,
		Help:   "revert patch",
	},
	"U": {
		Action:  ActionRevertAll,
		Help:    "revert all patches",
		Confirm: "Revert every applied patch from this turn?",
	},
	"x": {
		Action:  ActionDismiss,
		Help:    "dismiss patch set",
		Confirm: "Dismiss this patch set? Applied edits stay in the summary.",
	},
}

// Config holds the application configuration.
type Config struct {
	Theme       string                `yaml:"theme"`
	Documents   Documents             `yaml:"documents"`
	Assistant   Assistant             `yaml:"assistant"`
	Database    Database              `yaml:"database"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
	DataDir     string                `yaml:"-"` // set by caller, not from config file
}

// Documents controls which files in the case directory are offered for review.
type Documents struct {
	// Include lists doublestar glob patterns, relative to the case directory.
	Include []string `yaml:"include"`
	// Exclude lists patterns removed from the include results.
	Exclude []string `yaml:"exclude"`
}

// Assistant selects and configures the assistant backend.
type Assistant struct {
	// Profile names the backend. "scripted" replays canned exchanges and is
	// the only built-in.
	Profile string `yaml:"profile"`
	// Script points at a YAML exchange file for the scripted profile.
	// Relative paths resolve against the config file's directory.
	Script string `yaml:"script"`
}

// Database holds SQLite tuning options.
type Database struct {
	// Path overrides the database location. Empty means <data-dir>/brief.db.
	Path string `yaml:"path"`
	// BusyTimeout is the SQLite busy_timeout in milliseconds.
	BusyTimeout int `yaml:"busy_timeout"`
}

// Keybinding defines a TUI keybinding action.
type Keybinding struct {
	Action  string `yaml:"action"`  // built-in action name (promote, revert, revert-all, dismiss)
	Help    string `yaml:"help"`    // help text shown in TUI
	Sh      string `yaml:"sh"`      // shell command run with the document path as $1
	Confirm string `yaml:"confirm"` // confirmation prompt (empty = no confirm)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "tokyo-night",
		Documents: Documents{
			Include: []string{"**/*.md", "**/*.txt"},
			Exclude: []string{"**/node_modules/**", "**/.git/**"},
		},
		Assistant: Assistant{
			Profile: "scripted",
		},
		Database: Database{
			BusyTimeout: 5000,
		},
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if len(c.Documents.Include) == 0 {
		c.Documents.Include = defaults.Documents.Include
	}
	if c.Assistant.Profile == "" {
		c.Assistant.Profile = defaults.Assistant.Profile
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))

	// Copy defaults first
	for k, v := range defaults {
		result[k] = v
	}

	// Override with user config
	for k, v := range user {
		result[k] = v
	}

	return result
}

// DatabasePath returns the SQLite database location.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.DataDir, "brief.db")
}

// ExportsDir returns the path where checklist exports are written.
func (c *Config) ExportsDir() string {
	return filepath.Join(c.DataDir, "exports")
}
