package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/pipeline"
)

// UpdateNavCmd implements the 'update-nav' command.
type UpdateNavCmd struct {
	DryRun bool `short:"n" help:"Print the updated configuration instead of writing it"`
}

// Run executes the update-nav command.
func (u *UpdateNavCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	opts := root.PipelineOptions(g)
	opts.DryRun = u.DryRun

	report, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}
	if u.DryRun && report.Rendered != nil {
		_, err = g.Stdout.Write(report.Rendered)
		return err
	}
	if report.Changed {
		_, err = fmt.Fprintf(g.Stdout, "Updated navigation in %s (%d added, %d removed, %d renamed)\n",
			report.ConfigPath, report.Stats.Added, report.Stats.Removed, report.Stats.Renamed)
	}
	return err
}
