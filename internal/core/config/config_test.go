package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoConfigFile(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, []string{"**/*.md", "**/*.txt"}, cfg.Documents.Include)
	assert.Equal(t, "scripted", cfg.Assistant.Profile)
	assert.Equal(t, 5000, cfg.Database.BusyTimeout)
}

func TestLoad_MissingPathUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "tokyo-night", cfg.Theme)
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.yml")
	content := `
theme: gruvbox
documents:
  include:
    - "exhibits/**/*.md"
  exclude:
    - "**/drafts/**"
database:
  busy_timeout: 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, []string{"exhibits/**/*.md"}, cfg.Documents.Include)
	assert.Equal(t, []string{"**/drafts/**"}, cfg.Documents.Exclude)
	assert.Equal(t, 250, cfg.Database.BusyTimeout)
	// Unset fields still pick up defaults.
	assert.Equal(t, "scripted", cfg.Assistant.Profile)
}

func TestLoad_MergesKeybindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.yml")
	content := `
keybindings:
  a:
    action: revert
    help: custom revert
  o:
    sh: "open $1"
    help: open document
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	// User override replaces the default for the same key.
	assert.Equal(t, ActionRevert, cfg.Keybindings["a"].Action)
	// New bindings are added alongside remaining defaults.
	assert.Equal(t, "open $1", cfg.Keybindings["o"].Sh)
	assert.Equal(t, ActionDismiss, cfg.Keybindings["x"].Action)
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.yml")
	content := `
keybindings:
  z:
    action: teleport
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid action")
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/var/lib/brief"
	assert.Equal(t, filepath.Join("/var/lib/brief", "brief.db"), cfg.DatabasePath())

	cfg.Database.Path = "/tmp/custom.db"
	assert.Equal(t, "/tmp/custom.db", cfg.DatabasePath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty theme",
			mutate:  func(c *Config) { c.Theme = "" },
			wantErr: "theme",
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: "data directory",
		},
		{
			name:    "no include patterns",
			mutate:  func(c *Config) { c.Documents.Include = nil },
			wantErr: "documents.include",
		},
		{
			name:    "negative busy timeout",
			mutate:  func(c *Config) { c.Database.BusyTimeout = -1 },
			wantErr: "busy_timeout",
		},
		{
			name: "keybinding with action and sh",
			mutate: func(c *Config) {
				c.Keybindings["q"] = Keybinding{Action: ActionPromote, Sh: "true"}
			},
			wantErr: "cannot have both",
		},
		{
			name: "keybinding with neither action nor sh",
			mutate: func(c *Config) {
				c.Keybindings["q"] = Keybinding{Help: "nothing"}
			},
			wantErr: "either action or sh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
