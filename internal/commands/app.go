// Package commands implements the brief CLI commands.
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/counselops/brief/internal/core/assistant"
	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/core/config"
	"github.com/counselops/brief/internal/core/logging"
	"github.com/counselops/brief/internal/data/db"
	"github.com/counselops/brief/internal/data/stores"
	"github.com/counselops/brief/internal/docload"
)

// App bundles the long-lived dependencies built in the root Before hook.
// Commands hold a pointer to a pre-allocated App that is populated before
// they run.
type App struct {
	Config    *config.Config
	DB        *db.DB
	Store     *stores.CaseStore
	Assistant assistant.Client
}

// OpenCase discovers the documents under dir and builds a workspace over
// them. Every command that touches a case starts here.
func (a *App) OpenCase(dir string) (*casefile.Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve case directory: %w", err)
	}

	docs, err := docload.Load(abs, docload.Options{
		Include: a.Config.Documents.Include,
		Exclude: a.Config.Documents.Exclude,
	}, logging.Component("docload"))
	if err != nil {
		return nil, fmt.Errorf("load case documents: %w", err)
	}

	return casefile.NewWorkspace(a.Store, a.Assistant, docs, logging.Component("workspace")), nil
}

// caseDir returns the case directory from the command's first positional
// argument, defaulting to the current directory.
func caseDir(first string) string {
	if first == "" {
		return "."
	}
	return first
}
