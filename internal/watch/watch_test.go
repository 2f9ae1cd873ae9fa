package watch

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/retry"
	"git.home.luguber.info/inful/docnav/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type runResult struct {
	report *pipeline.Report
	err    error
}

func startWatcher(t *testing.T, site *testutil.Site) <-chan runResult {
	t.Helper()
	return startWatcherWithRetry(t, site, retry.Policy{})
}

func startWatcherWithRetry(t *testing.T, site *testutil.Site, policy retry.Policy) <-chan runResult {
	t.Helper()
	runs := make(chan runResult, 16)
	w := New(Options{
		Pipeline: pipeline.Options{SiteDir: site.Dir},
		Debounce: 20 * time.Millisecond,
		Retry:    policy,
		OnRun:    func(r *pipeline.Report, err error) { runs <- runResult{r, err} },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	return runs
}

func nextRun(t *testing.T, runs <-chan runResult) runResult {
	t.Helper()
	select {
	case r := <-runs:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a navigation update")
		return runResult{}
	}
}

// nextSuccess skips failed runs, which a half-written page can cause.
func nextSuccess(t *testing.T, runs <-chan runResult) runResult {
	t.Helper()
	for {
		if r := nextRun(t, runs); r.err == nil {
			return r
		}
	}
}

func assertNoRun(t *testing.T, runs <-chan runResult) {
	t.Helper()
	select {
	case r := <-runs:
		t.Fatalf("unexpected navigation update: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func newSite(t *testing.T) *testutil.Site {
	return testutil.NewSite(t).
		WriteConfig("navigation:\n").
		WritePage("pages/index.md", "title", "Home", "permalink", "/")
}

func TestWatcher_UpdatesWhenPagesChange(t *testing.T) {
	site := newSite(t)
	runs := startWatcher(t, site)

	first := nextRun(t, runs)
	require.NoError(t, first.err)
	assert.True(t, first.report.Changed)
	site.AssertFileContains("_config.yml", "- text: Home\n")

	// The page lands in a directory created after watching started.
	site.WritePage("pages/guide/setup.md", "title", "Setup", "permalink", "/setup/")
	second := nextSuccess(t, runs)
	assert.NotEqual(t, first.report.Digest, second.report.Digest)
	site.AssertFileContains("_config.yml", "- text: Setup\n  url: setup/\n")
}

func TestWatcher_IgnoresChangesOutsideNavigation(t *testing.T) {
	site := newSite(t)
	runs := startWatcher(t, site)
	require.NoError(t, nextRun(t, runs).err)

	site.WriteFile("pages/index.md", "---\ntitle: Home\npermalink: /\n---\n\nNew body.\n")
	site.WriteFile("pages/logo.png", "\x89PNG")
	site.WriteFile("pages/.index.md.swp", "swap")
	assertNoRun(t, runs)
}

func TestWatcher_ContinuesAfterFailure(t *testing.T) {
	site := newSite(t)
	runs := startWatcher(t, site)
	require.NoError(t, nextRun(t, runs).err)
	content := site.ReadConfig()

	site.WritePage("pages/broken.md", "title", "Broken")
	failed := nextRun(t, runs)
	var aborted *pipeline.UpdateAbortedError
	require.ErrorAs(t, failed.err, &aborted)
	assert.Equal(t, content, site.ReadConfig())

	site.WritePage("pages/broken.md", "title", "Fixed", "permalink", "/fixed/")
	nextSuccess(t, runs)
	site.AssertFileContains("_config.yml", "- text: Fixed\n")
}

func TestWatcher_RetriesFilesystemFailures(t *testing.T) {
	site := testutil.NewSite(t).
		WriteConfig("navigation:\n").
		WriteFile("pages", "not a directory")
	runs := startWatcherWithRetry(t, site, retry.NewPolicy(retry.ModeFixed, 10*time.Millisecond, 10*time.Millisecond, 2))

	for range 3 {
		r := nextRun(t, runs)
		require.Error(t, r.err)
		assert.Equal(t, derrors.CategoryFileSystem, derrors.GetCategory(r.err))
	}
	assertNoRun(t, runs)

	require.NoError(t, os.Remove(site.Path("pages")))
	site.WritePage("pages/index.md", "title", "Home", "permalink", "/")
	require.Eventually(t, func() bool {
		return strings.Contains(site.ReadConfig(), "- text: Home\n")
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_MissingSiteDirectory(t *testing.T) {
	w := New(Options{Pipeline: pipeline.Options{SiteDir: t.TempDir() + "/missing"}})

	err := w.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShouldIgnore(t *testing.T) {
	tests := map[string]bool{
		"pages/index.md":      false,
		"pages/.index.md.swp": true,
		"pages/index.md~":     true,
		"pages/#index.md#":    true,
		"pages/.git":          true,
		"pages/guide":         false,
	}
	for path, want := range tests {
		assert.Equal(t, want, shouldIgnore(path), path)
	}
}
