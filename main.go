package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/counselops/brief/internal/commands"
	"github.com/counselops/brief/internal/core/assistant"
	"github.com/counselops/brief/internal/core/config"
	"github.com/counselops/brief/internal/core/styles"
	"github.com/counselops/brief/internal/data/db"
	"github.com/counselops/brief/internal/data/stores"
	"github.com/counselops/brief/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		database  *db.DB
	)

	flags := &commands.Flags{}
	briefApp := &commands.App{}

	app := &cli.Command{
		Name:      "brief",
		Usage:     "Review case documents with a tracked summary and checklist",
		UsageText: "brief [global options] [command] [case-dir]",
		Description: `Brief opens the documents of a legal case alongside an assistant-drafted
summary. Assistant edits land as patches that survive manual rewrites
and can be reviewed, reverted, or dismissed one by one. Selections in the
summary or in a document become chat context or checklist evidence.

Run 'brief' with no command to open the review workspace on the current
directory.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("BRIEF_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/brief.log)",
				Sources:     cli.EnvVars("BRIEF_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("BRIEF_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("BRIEF_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/brief.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "brief.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			palette, ok := styles.GetPalette(cfg.Theme)
			if !ok {
				log.Warn().Str("theme", cfg.Theme).Msg("unknown theme, using default")
				palette, _ = styles.GetPalette(styles.DefaultTheme)
			}
			styles.SetTheme(palette)

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data directory: %w", err)
			}

			dbOpts := db.OpenOptions{
				BusyTimeout: cfg.Database.BusyTimeout,
			}
			database, err = db.Open(cfg.DatabasePath(), dbOpts)
			if err != nil && stores.IsCorruptionError(err) {
				// Move the corrupt file aside and start fresh rather than
				// refusing to run.
				log.Warn().Err(err).Msg("case database corrupt, recovering")
				if rerr := stores.RecoverFromCorruption(cfg.DataDir); rerr != nil {
					return ctx, fmt.Errorf("recover database: %w", rerr)
				}
				database, err = db.Open(cfg.DatabasePath(), dbOpts)
			}
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			client, err := buildAssistant(cfg, flags.ConfigPath)
			if err != nil {
				return ctx, err
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*briefApp = commands.App{
				Config:    cfg,
				DB:        database,
				Store:     stores.NewCaseStore(database),
				Assistant: client,
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, briefApp)

	app = commands.NewLsCmd(flags, briefApp).Register(app)
	app = commands.NewChecklistCmd(flags, briefApp).Register(app)
	app = commands.NewExportCmd(flags, briefApp).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Open the workspace when no subcommand is provided; an optional
	// positional argument names the case directory.
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 1 {
			return fmt.Errorf("unknown command %q. Run 'brief --help' for usage", c.Args().Get(1))
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

func buildAssistant(cfg *config.Config, configPath string) (assistant.Client, error) {
	switch cfg.Assistant.Profile {
	case "", "scripted":
		if cfg.Assistant.Script == "" {
			return assistant.NewScripted(), nil
		}
		script := cfg.Assistant.Script
		if !filepath.IsAbs(script) {
			script = filepath.Join(filepath.Dir(configPath), script)
		}
		client, err := assistant.LoadScript(script)
		if err != nil {
			return nil, fmt.Errorf("load assistant script: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown assistant profile %q", cfg.Assistant.Profile)
	}
}
