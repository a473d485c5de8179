package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/counselops/brief/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List case documents",
		UsageText: "brief ls [case-dir] [--json]",
		Description: `Displays a table of the documents discovered under the case directory
with their id, title, and size. The set is controlled by the documents
include and exclude patterns in the config file.`,
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

// documentInfo is the JSON output format for brief ls --json.
type documentInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Bytes int    `json:"bytes"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	ws, err := cmd.app.OpenCase(caseDir(c.Args().First()))
	if err != nil {
		return err
	}

	docs := ws.Documents()
	if len(docs) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No documents found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		infos := make([]documentInfo, 0, len(docs))
		for _, d := range docs {
			infos = append(infos, documentInfo{ID: d.ID, Title: d.Title, Bytes: len(d.Content)})
		}
		return iojson.WriteWith(out, os.Stderr, infos)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tBYTES")
	for _, d := range docs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", d.ID, d.Title, len(d.Content))
	}
	return w.Flush()
}
