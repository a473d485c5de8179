package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/counselops/brief/internal/core/eventbus"
	"github.com/counselops/brief/internal/core/logging"
	"github.com/counselops/brief/internal/engine/highlight"
	"github.com/counselops/brief/internal/tui"
	"github.com/counselops/brief/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags
	app   *App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("BRIEF_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as the default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	dir := caseDir(c.Args().First())

	ws, err := cmd.app.OpenCase(dir)
	if err != nil {
		return err
	}
	if len(ws.Documents()) == 0 {
		log.Warn().Str("dir", dir).Msg("no documents matched the configured patterns")
	}

	bus := eventbus.New(64)
	eventbus.NewNotificationRouter(bus).Register()
	eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))

	busCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	bus.Start(busCtx)

	coord := highlight.NewCoordinator(logging.Component("highlight"))

	m := tui.New(cmd.app.Config, dir, ws, coord, bus)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
