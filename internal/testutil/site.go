// Package testutil provides on-disk site fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Site is a temporary documentation site: a base directory holding a
// `_config.yml` and content pages.
type Site struct {
	t   *testing.T
	Dir string
}

// NewSite creates an empty site in a fresh temporary directory.
func NewSite(t *testing.T) *Site {
	t.Helper()
	return &Site{t: t, Dir: t.TempDir()}
}

// Path joins a slash-separated relative path onto the site directory.
func (s *Site) Path(rel string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(rel))
}

// WriteFile writes content to rel, creating parent directories.
func (s *Site) WriteFile(rel, content string) *Site {
	s.t.Helper()
	full := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		s.t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		s.t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return s
}

// WritePage writes a page whose front matter consists of the given
// key/value pairs, in order.
func (s *Site) WritePage(rel string, kv ...string) *Site {
	s.t.Helper()
	if len(kv)%2 != 0 {
		s.t.Fatalf("WritePage(%s): odd number of front matter arguments", rel)
	}
	var b strings.Builder
	b.WriteString("---\n")
	for i := 0; i < len(kv); i += 2 {
		b.WriteString(kv[i] + ": " + kv[i+1] + "\n")
	}
	b.WriteString("---\n\nPage body.\n")
	return s.WriteFile(rel, b.String())
}

// WriteConfig writes the site's _config.yml.
func (s *Site) WriteConfig(content string) *Site {
	s.t.Helper()
	return s.WriteFile("_config.yml", content)
}

// ReadConfig returns the current content of _config.yml.
func (s *Site) ReadConfig() string {
	s.t.Helper()
	return s.ReadFile("_config.yml")
}

// ReadFile returns the content of rel.
func (s *Site) ReadFile(rel string) string {
	s.t.Helper()
	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(s.Path(rel))
	if err != nil {
		s.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(content)
}

// AssertFileContains validates that a file contains expected content.
func (s *Site) AssertFileContains(rel, expected string) *Site {
	s.t.Helper()
	if content := s.ReadFile(rel); !strings.Contains(content, expected) {
		s.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", rel, expected, content)
	}
	return s
}
