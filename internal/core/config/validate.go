package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.Theme == "" {
		return fmt.Errorf("theme cannot be empty")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if len(c.Documents.Include) == 0 {
		return fmt.Errorf("documents.include must list at least one pattern")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	for key, kb := range c.Keybindings {
		if kb.Action == "" && kb.Sh == "" {
			return fmt.Errorf("keybinding %q must have either action or sh", key)
		}
		if kb.Action != "" && kb.Sh != "" {
			return fmt.Errorf("keybinding %q cannot have both action and sh", key)
		}
		if kb.Action != "" {
			if !isValidAction(kb.Action) {
				return fmt.Errorf("keybinding %q has invalid action %q", key, kb.Action)
			}
		}
	}

	return nil
}

// ValidateDeep performs comprehensive validation of the configuration including
// glob syntax and file accessibility. The configPath argument specifies the
// config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateGlobs(),
		c.validateAssistant(configPath),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Assistant.Profile == "scripted" && c.Assistant.Script == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Assistant",
			Message:  "scripted profile has no script file, replies will be canned placeholders",
		})
	}

	for key, kb := range c.Keybindings {
		if def, ok := defaultKeybindings[key]; ok && kb.Sh != "" && def.Action != "" {
			warnings = append(warnings, ValidationWarning{
				Category: "Keybindings",
				Item:     key,
				Message:  fmt.Sprintf("shell command shadows built-in action %q", def.Action),
			})
		}
	}

	return warnings
}

// validateFileAccess checks config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateGlobs checks document patterns are valid doublestar syntax.
func (c *Config) validateGlobs() error {
	var errs criterio.FieldErrorsBuilder

	for i, pattern := range c.Documents.Include {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("documents.include[%d]", i), fmt.Errorf("invalid pattern %q", pattern))
		}
	}
	for i, pattern := range c.Documents.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("documents.exclude[%d]", i), fmt.Errorf("invalid pattern %q", pattern))
		}
	}

	return errs.ToError()
}

// validateAssistant checks the assistant profile and its script file.
func (c *Config) validateAssistant(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if c.Assistant.Profile != "scripted" {
		errs = errs.Append("assistant.profile", fmt.Errorf("unknown profile %q", c.Assistant.Profile))
	}

	if c.Assistant.Script != "" {
		path := c.Assistant.Script
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(configPath), path)
		}
		if _, err := os.Stat(path); err != nil {
			errs = errs.Append("assistant.script", fmt.Errorf("file not found: %s", c.Assistant.Script))
		}
	}

	return errs.ToError()
}

func isValidAction(action string) bool {
	switch action {
	case ActionPromote, ActionRevert, ActionRevertAll, ActionDismiss:
		return true
	default:
		return false
	}
}
