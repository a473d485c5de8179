package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/counselops/brief/internal/core/casefile"
)

type ExportCmd struct {
	flags *Flags
	app   *App

	// flags
	outDir string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write the summary and checklist as markdown",
		UsageText: "brief export [--out <dir>]",
		Description: `Writes summary.md and checklist.md to the exports directory under the
data directory. Use --out to write somewhere else.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Usage:       "directory to write exports to",
				Destination: &cmd.outDir,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	dir := cmd.outDir
	if dir == "" {
		dir = cmd.app.Config.ExportsDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create exports directory: %w", err)
	}

	summary, err := cmd.app.Store.Summary(ctx)
	if err != nil {
		return fmt.Errorf("load summary: %w", err)
	}
	categories, err := cmd.app.Store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load checklist: %w", err)
	}

	out := c.Root().Writer
	summaryPath := filepath.Join(dir, "summary.md")
	if err := os.WriteFile(summaryPath, []byte(summaryMarkdown(summary)), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	_, _ = fmt.Fprintln(out, summaryPath)

	checklistPath := filepath.Join(dir, "checklist.md")
	if err := os.WriteFile(checklistPath, []byte(checklistMarkdown(categories)), 0o644); err != nil {
		return fmt.Errorf("write checklist: %w", err)
	}
	_, _ = fmt.Fprintln(out, checklistPath)

	log.Info().Str("dir", dir).Msg("case exported")
	return nil
}

func summaryMarkdown(summary string) string {
	var b strings.Builder
	b.WriteString("# Case Summary\n\n")
	if summary == "" {
		b.WriteString("_No summary drafted yet._\n")
		return b.String()
	}
	b.WriteString(summary)
	if !strings.HasSuffix(summary, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func checklistMarkdown(categories []casefile.Category) string {
	var b strings.Builder
	b.WriteString("# Case Checklist\n")
	for _, cat := range categories {
		b.WriteString("\n## " + cat.Label + "\n\n")
		if len(cat.Values) == 0 {
			b.WriteString("_No items._\n")
			continue
		}
		for _, it := range cat.Values {
			b.WriteString(fmt.Sprintf("- %s %s", checkbox(it.Done), it.Text))
			if it.HasEvidence() {
				b.WriteString(fmt.Sprintf(" ([%s](%s))", it.DocumentID, it.DocumentID))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
