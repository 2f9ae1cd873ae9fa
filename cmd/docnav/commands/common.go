package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/version"
)

// Global carries state shared by all subcommands.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	recorder *metrics.PrometheusRecorder
}

// CLI definition & global flags.
type CLI struct {
	Site        string           `short:"s" help:"Site base directory" default:"." env:"DOCNAV_SITE" type:"path"`
	Config      string           `help:"Configuration file, relative to the site directory" default:"_config.yml" env:"DOCNAV_CONFIG"`
	PagesDir    string           `help:"Pages directory, relative to the site directory (default: _pages or pages)" env:"DOCNAV_PAGES_DIR"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `help:"Log output format" default:"text" enum:"text,json" env:"DOCNAV_LOG_FORMAT"`
	MetricsFile string           `help:"Write Prometheus metrics to this textfile after the command" env:"DOCNAV_METRICS_FILE"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	UpdateNav   UpdateNavCmd   `cmd:"" help:"Update the navigation section of the configuration from page front matter"`
	Validate    ValidateCmd    `cmd:"" help:"Validate page front matter without updating the configuration"`
	Breadcrumbs BreadcrumbsCmd `cmd:"" help:"Print every page with its breadcrumb trail"`
	Watch       WatchCmd       `cmd:"" help:"Keep the navigation in sync while pages change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(g.Stderr, opts)
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(g.Stderr, opts)
	}
	g.Logger = slog.New(handler)
	slog.SetDefault(g.Logger)

	if c.MetricsFile != "" {
		g.recorder = metrics.NewPrometheusRecorder(nil)
	}
	return nil
}

// PipelineOptions builds the pipeline options selected by the global flags.
func (c *CLI) PipelineOptions(g *Global) pipeline.Options {
	opts := pipeline.Options{
		SiteDir:    c.Site,
		ConfigFile: c.Config,
		PagesDir:   c.PagesDir,
		Logger:     g.Logger,
	}
	if g.recorder != nil {
		opts.Recorder = g.recorder
	}
	return opts
}

type exitCode int

// Execute parses args, runs the selected command and returns the process
// exit code.
func Execute(args []string, stdout, stderr io.Writer) (code int) {
	g := &Global{Stdout: stdout, Stderr: stderr, Logger: slog.Default()}
	var cli CLI

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	parser, err := kong.New(&cli,
		kong.Name("docnav"),
		kong.Description("Keep a documentation site's navigation menu in sync with its pages."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.Bind(g),
	)
	if err != nil {
		return derrors.NewCLIErrorAdapter(false, nil).Report(stderr, err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	err = kctx.Run()
	if g.recorder != nil {
		if werr := metrics.WriteTextfile(cli.MetricsFile, g.recorder.Registry()); werr != nil {
			g.Logger.Warn("Failed to write metrics", logfields.File(cli.MetricsFile), logfields.Error(werr))
		}
	}
	return derrors.NewCLIErrorAdapter(cli.Verbose, g.Logger).Report(stderr, err)
}
