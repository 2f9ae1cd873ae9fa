package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docnav/internal/retry"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce   time.Duration `default:"300ms" help:"Quiet period after the last change before updating"`
	Retries    int           `default:"2" help:"Retries for updates that fail on a filesystem error"`
	RetryDelay time.Duration `default:"1s" help:"Initial delay between retries (grows linearly)"`
}

// Run executes the watch command until interrupted.
func (w *WatchCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	return watch.New(watch.Options{
		Pipeline: root.PipelineOptions(g),
		Debounce: w.Debounce,
		Retry:    retry.NewPolicy(retry.ModeLinear, w.RetryDelay, 0, w.Retries),
	}).Run(ctx)
}
