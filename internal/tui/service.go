package tui

import (
	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/tui/views/canvas"
	"github.com/counselops/brief/internal/tui/views/checklist"
)

// Service is everything the TUI needs from the case workspace.
type Service interface {
	canvas.Workspace
	checklist.Workspace
}

// Compile-time check that *casefile.Workspace satisfies Service.
var _ Service = (*casefile.Workspace)(nil)
