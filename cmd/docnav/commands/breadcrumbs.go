package commands

import (
	"context"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// BreadcrumbsCmd implements the 'breadcrumbs' command.
type BreadcrumbsCmd struct {
	Format string `short:"f" default:"yaml" help:"Output format (json or yaml)" enum:"json,yaml"`
}

// Run executes the breadcrumbs command.
func (b *BreadcrumbsCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	report, err := pipeline.Assemble(ctx, root.PipelineOptions(g))
	if err != nil {
		return err
	}
	built := report.Assembled
	if built == nil {
		built = []*site.Page{}
	}

	if b.Format == "json" {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(built)
	}
	enc := yaml.NewEncoder(g.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(built); err != nil {
		return err
	}
	return enc.Close()
}
