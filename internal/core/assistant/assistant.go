// Package assistant defines the assistant backend contract and ships a
// deterministic scripted implementation for tests and offline use.
package assistant

import "github.com/counselops/brief/internal/core/casefile"

// Client is the assistant backend contract consumed by the workspace.
type Client = casefile.Assistant
