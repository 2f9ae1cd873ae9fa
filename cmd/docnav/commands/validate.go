package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/pipeline"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

// Run executes the validate command.
func (v *ValidateCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	report, err := pipeline.Validate(ctx, root.PipelineOptions(g))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Stdout, "%d pages valid\n", report.Pages)
	return err
}
