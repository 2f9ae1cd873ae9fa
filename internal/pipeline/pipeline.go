// Package pipeline runs the navigation update of a site as a sequence of
// timed stages: every read and check happens before the single write of the
// configuration file.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/config"
	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/navsync"
	"git.home.luguber.info/inful/docnav/internal/pages"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// Options configures a pipeline run.
type Options struct {
	// SiteDir is the site's base directory.
	SiteDir string
	// ConfigFile is the configuration file, relative to SiteDir unless
	// absolute. Defaults to config.DefaultFile.
	ConfigFile string
	// PagesDir overrides the pages directory, relative to SiteDir.
	PagesDir string
	// DryRun renders the updated configuration without writing it.
	DryRun bool

	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// ConfigPath returns the configuration file location.
func (o Options) ConfigPath() string {
	file := o.ConfigFile
	if file == "" {
		file = config.DefaultFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(o.SiteDir, file)
}

// Report summarizes a pipeline run.
type Report struct {
	RunID      string
	ConfigPath string
	// Empty is set when the configuration file holds no document; nothing
	// past load_config runs.
	Empty  bool
	Pages  int
	Digest string
	Stats  navsync.Stats
	Tree   nav.Tree
	// Changed reports whether the configuration file was (or, in a dry
	// run, would be) rewritten.
	Changed bool
	// Rendered holds the updated configuration content of a dry run.
	Rendered []byte
	// Assembled holds the built pages of an Assemble run.
	Assembled []*site.Page

	StageDurations map[StageName]time.Duration
}

type runState struct {
	opts     Options
	logger   *slog.Logger
	recorder metrics.Recorder
	report   *Report

	site   *config.Site
	pages  *pages.Collection
	draft  navsync.Draft
	halted bool
}

func newRunState(opts Options) *runState {
	runID := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &runState{
		opts:     opts,
		logger:   logger.With(logfields.RunID(runID), logfields.Site(opts.SiteDir)),
		recorder: recorder,
		report: &Report{
			RunID:          runID,
			ConfigPath:     opts.ConfigPath(),
			StageDurations: map[StageName]time.Duration{},
		},
	}
}

// Run updates the navigation section of the site's configuration file from
// its pages' front matter.
func Run(ctx context.Context, opts Options) (*Report, error) {
	rs := newRunState(opts)
	err := runStages(ctx, rs, []stageDef{
		{StageLoadConfig, stageLoadConfig},
		{StageLoadPages, stageLoadPages},
		{StageValidate, stageValidate},
		{StageReconcile, stageReconcile},
		{StageResolveOrphans, stageResolveOrphans},
		{StageWriteConfig, stageWriteConfig},
	})
	rs.recordOutcome(err)
	if err != nil {
		return rs.report, err
	}
	if rs.report.Empty {
		rs.logger.Info("Configuration file is empty; navigation not updated", logfields.ConfigPath(rs.report.ConfigPath))
	} else {
		rs.logger.Info("Navigation synchronized",
			logfields.ConfigPath(rs.report.ConfigPath),
			logfields.Count(rs.report.Pages),
			slog.Bool("changed", rs.report.Changed),
			slog.Bool("dry_run", opts.DryRun))
	}
	return rs.report, nil
}

// Validate loads the site's pages and checks their front matter without
// touching the configuration file.
func Validate(ctx context.Context, opts Options) (*Report, error) {
	rs := newRunState(opts)
	err := runStages(ctx, rs, []stageDef{
		{StageLoadConfig, stageLoadConfig},
		{StageLoadPages, stageLoadPages},
		{StageValidate, stageValidate},
	})
	return rs.report, err
}

// Assemble builds the site's pages with their breadcrumbs, generated pages
// and flattened permalinks from the current configuration.
func Assemble(ctx context.Context, opts Options) (*Report, error) {
	rs := newRunState(opts)
	err := runStages(ctx, rs, []stageDef{
		{StageLoadConfig, stageLoadConfig},
		{StageLoadPages, stageLoadPages},
		{StageAssemble, stageAssemble},
	})
	return rs.report, err
}

func (rs *runState) recordOutcome(err error) {
	r := rs.report
	switch {
	case err != nil:
		rs.recorder.IncRunOutcome(metrics.RunFailed)
		return
	case r.Changed && !rs.opts.DryRun:
		rs.recorder.IncRunOutcome(metrics.RunUpdated)
	default:
		rs.recorder.IncRunOutcome(metrics.RunUnchanged)
	}
	s := r.Stats
	rs.recorder.AddNodeChanges(metrics.ChangeAdded, s.Added)
	rs.recorder.AddNodeChanges(metrics.ChangeRemoved, s.Removed)
	rs.recorder.AddNodeChanges(metrics.ChangeRenamed, s.Renamed)
	rs.recorder.AddNodeChanges(metrics.ChangeOrphaned, s.Orphans)
	rs.recorder.AddNodeChanges(metrics.ChangePlaceholderCreated, s.PlaceholdersCreated)
	rs.recorder.AddNodeChanges(metrics.ChangePlaceholderPruned, s.PlaceholdersPruned)
}

func stageLoadConfig(_ context.Context, rs *runState) error {
	cfg, err := config.LoadSite(rs.report.ConfigPath)
	if err != nil {
		return err
	}
	rs.site = cfg
	if cfg.Empty {
		rs.report.Empty = true
		rs.halted = true
	}
	return nil
}

func stageLoadPages(_ context.Context, rs *runState) error {
	col, err := pages.Load(rs.opts.SiteDir, pages.Options{
		PagesDir:   rs.opts.PagesDir,
		Collection: rs.site.HasPagesCollection(),
		Exclude:    rs.site.Exclude,
	})
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to load pages").
			WithContext("site", rs.opts.SiteDir).
			Build()
	}
	digest, err := col.Pages.Digest()
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to fingerprint pages").Build()
	}
	rs.pages = col
	rs.report.Pages = len(col.Pages)
	rs.report.Digest = digest
	rs.recorder.SetPageCount(len(col.Pages))
	rs.logger.Debug("Pages loaded", logfields.PagesDir(col.Dir), logfields.Count(len(col.Pages)))
	return nil
}

func stageValidate(_ context.Context, rs *runState) error {
	if err := rs.pages.Err(); err != nil {
		return rs.aborted(err)
	}
	return nil
}

func stageReconcile(_ context.Context, rs *runState) error {
	draft, stats, err := navsync.Reconcile(rs.site.Navigation, rs.pages.Pages.Records())
	if err != nil {
		return rs.aborted(err)
	}
	rs.draft = draft
	rs.report.Stats = stats
	for _, o := range draft.Orphans {
		rs.logger.Debug("Page parent not in navigation", logfields.URL(o.IntendedURL), logfields.Title(o.Node.Text))
	}
	return nil
}

func stageResolveOrphans(_ context.Context, rs *runState) error {
	tree, stats, err := navsync.Finalize(rs.draft, navsync.Options{Placeholder: rs.site.PlaceholderKind()})
	if err != nil {
		return rs.aborted(err)
	}
	rs.report.Tree = tree
	rs.report.Stats = rs.report.Stats.Merge(stats)
	return nil
}

func stageWriteConfig(_ context.Context, rs *runState) error {
	path := rs.report.ConfigPath
	if rs.opts.DryRun {
		out, changed, err := config.RenderNavigation(path, rs.report.Tree)
		if err != nil {
			return err
		}
		rs.report.Rendered = out
		rs.report.Changed = changed
		return nil
	}
	changed, err := config.WriteNavigation(path, rs.report.Tree)
	if err != nil {
		return err
	}
	rs.report.Changed = changed
	if !changed && rs.report.Stats.Changed() {
		rs.logger.Warn("Configuration file has no navigation section; navigation not written", logfields.ConfigPath(path))
	}
	return nil
}

func stageAssemble(_ context.Context, rs *runState) error {
	built, err := site.Assemble(rs.pages.Pages, rs.site)
	if err != nil {
		return err
	}
	rs.report.Tree = rs.site.Navigation
	rs.report.Assembled = built
	return nil
}

func (rs *runState) aborted(err error) error {
	return &UpdateAbortedError{Config: rs.report.ConfigPath, Err: err}
}
