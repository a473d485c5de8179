// Package logging hands out per-component child loggers. The engine
// pieces (highlight, patches, event bus) each tag their entries so a
// single log file stays greppable.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component derives a logger tagged with the component name under the
// "cmp" key.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
