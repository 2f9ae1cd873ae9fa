// Package watch keeps a site's navigation in sync while its pages are being
// edited.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/pages"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/retry"
)

// DefaultDebounce is the quiet period after the last change before a run.
const DefaultDebounce = 300 * time.Millisecond

// skipDirs are never watched: generated output and dependency trees.
var skipDirs = []string{"_site", "node_modules", "vendor"}

// Options configures a Watcher.
type Options struct {
	Pipeline pipeline.Options
	Debounce time.Duration
	// Retry governs re-running updates that failed on a filesystem error,
	// such as a page caught mid-save. Defaults to retry.DefaultPolicy.
	Retry retry.Policy
	// OnRun, when set, is called after every attempted update.
	OnRun func(*pipeline.Report, error)
}

// Watcher re-runs the navigation update whenever the navigation-relevant
// front matter of the site's pages changes. Runs are serialized on the
// event loop goroutine.
type Watcher struct {
	opts   Options
	logger *slog.Logger
	last   string
}

// New creates a Watcher.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Retry == (retry.Policy{}) {
		opts.Retry = retry.DefaultPolicy()
	}
	logger := opts.Pipeline.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{opts: opts, logger: logger.With(logfields.Site(opts.Pipeline.SiteDir))}
}

// Run performs an initial update, then watches the site until ctx is
// canceled. Failed updates are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	root := w.opts.Pipeline.SiteDir
	if root == "" {
		root = "."
	}
	if err := addDirsRecursive(fw, root, w.logger); err != nil {
		return err
	}

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	attempt := 0
	update := func() {
		err := w.sync(ctx)
		if err == nil || !derrors.HasCategory(err, derrors.CategoryFileSystem) || attempt >= w.opts.Retry.MaxRetries {
			attempt = 0
			return
		}
		attempt++
		delay := w.opts.Retry.Delay(attempt)
		w.logger.Warn("Retrying navigation update", slog.Int("attempt", attempt), slog.Duration("delay", delay))
		timer.Reset(delay)
	}

	w.logger.Info("Watching site for page changes", slog.Duration("debounce", w.opts.Debounce))
	update()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watcher")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(fw, ev) {
				attempt = 0
				timer.Reset(w.opts.Debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		case <-timer.C:
			update()
		}
	}
}

// handleEvent reports whether ev may affect navigation, and starts watching
// directories as they are created.
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || shouldIgnore(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := addDirsRecursive(fw, ev.Name, w.logger); err != nil {
				w.logger.Warn("Failed to watch new directory", logfields.File(ev.Name), logfields.Error(err))
			}
			return true
		}
	}
	if !pages.IsContentFile(ev.Name) && filepath.Ext(ev.Name) != "" {
		return false
	}
	w.logger.Debug("Page change detected", logfields.File(ev.Name), slog.String("op", ev.Op.String()))
	return true
}

// sync runs the update when the page digest differs from the last
// successful run.
func (w *Watcher) sync(ctx context.Context) error {
	check, err := pipeline.Validate(ctx, w.opts.Pipeline)
	if err != nil {
		w.report(nil, err)
		return err
	}
	if check.Digest == w.last {
		w.logger.Debug("Pages unchanged; skipping update")
		return nil
	}
	report, err := pipeline.Run(ctx, w.opts.Pipeline)
	if err == nil {
		w.last = report.Digest
	}
	w.report(report, err)
	return err
}

func (w *Watcher) report(r *pipeline.Report, err error) {
	if err != nil {
		w.logger.Error("Navigation update failed", logfields.Error(err))
	}
	if w.opts.OnRun != nil {
		w.opts.OnRun(r, err)
	}
}

func addDirsRecursive(fw *fsnotify.Watcher, root string, logger *slog.Logger) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (shouldIgnore(path) || slices.Contains(skipDirs, d.Name())) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			logger.Warn("Watch add failed", logfields.File(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnore reports whether path is hidden or an editor temporary file.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasPrefix(base, "#") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx")
}
