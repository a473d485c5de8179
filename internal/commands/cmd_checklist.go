package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/pkg/iojson"
)

type ChecklistCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
}

// NewChecklistCmd creates a new checklist command
func NewChecklistCmd(flags *Flags, app *App) *ChecklistCmd {
	return &ChecklistCmd{flags: flags, app: app}
}

// Register adds the checklist command to the application
func (cmd *ChecklistCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "checklist",
		Usage:     "Print the case checklist",
		UsageText: "brief checklist [--json]",
		Description: `Prints every checklist category with its items. Items backed by a
document span show the document id they cite.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ChecklistCmd) run(ctx context.Context, c *cli.Command) error {
	categories, err := cmd.app.Store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load checklist: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, categories)
	}

	if len(categories) == 0 {
		fmt.Fprintf(os.Stderr, "Checklist is empty\n")
		return nil
	}

	out := c.Root().Writer
	for i, cat := range categories {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		done := 0
		for _, it := range cat.Values {
			if it.Done {
				done++
			}
		}
		_, _ = fmt.Fprintf(out, "%s (%d/%d)\n", cat.Label, done, len(cat.Values))
		for _, it := range cat.Values {
			_, _ = fmt.Fprintf(out, "  %s %s%s\n", checkbox(it.Done), it.Text, citation(it))
		}
	}
	return nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func citation(it casefile.Item) string {
	if !it.HasEvidence() {
		return ""
	}
	return fmt.Sprintf("  (%s)", it.DocumentID)
}
