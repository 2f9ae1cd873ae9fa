package pages

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

const (
	// CollectionDir holds a `pages` collection; permalinks are auto-assigned.
	CollectionDir = "_pages"
	// PlainDir holds regular pages that must declare their permalinks.
	PlainDir = "pages"
)

// Extensions lists the file extensions treated as content pages.
var Extensions = []string{".md", ".html"}

var readFile = os.ReadFile

// Options controls where and how pages are loaded.
type Options struct {
	// PagesDir overrides the pages directory (relative to the base directory).
	PagesDir string
	// Collection forces auto-assigned permalinks even outside `_pages`.
	Collection bool
	// Exclude holds doublestar globs, relative to the base directory, of
	// files and directories to skip.
	Exclude []string
}

// Collection is the result of loading a site's pages.
type Collection struct {
	BaseDir string
	// Dir is the pages directory relative to BaseDir.
	Dir string
	// AutoPermalink is true when pages without a permalink get one derived
	// from their path.
	AutoPermalink bool
	Pages         Set
}

// Load scans the pages directory of basedir and returns every content
// file's front matter.
func Load(basedir string, opts Options) (*Collection, error) {
	c := &Collection{BaseDir: basedir, Pages: Set{}}
	c.Dir, c.AutoPermalink = resolveDir(basedir, opts)

	root := filepath.Join(basedir, filepath.FromSlash(c.Dir))
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		slog.Debug("Pages directory not found", logfields.PagesDir(c.Dir))
	case err != nil:
		return nil, fmt.Errorf("stat pages directory %s: %w", root, err)
	case !info.IsDir():
		return nil, fmt.Errorf("pages directory %s is not a directory", root)
	default:
		if err := c.walk(root, opts.Exclude); err != nil {
			return nil, err
		}
	}

	if !c.AutoPermalink {
		if err := c.loadHomePage(); err != nil {
			return nil, err
		}
	}

	slog.Debug("Pages loaded", logfields.PagesDir(c.Dir), logfields.Count(len(c.Pages)))
	return c, nil
}

func resolveDir(basedir string, opts Options) (string, bool) {
	if opts.PagesDir != "" {
		dir := filepath.ToSlash(filepath.Clean(opts.PagesDir))
		return dir, opts.Collection || path.Base(dir) == CollectionDir
	}
	if info, err := os.Stat(filepath.Join(basedir, CollectionDir)); err == nil && info.IsDir() {
		return CollectionDir, true
	}
	return PlainDir, opts.Collection
}

func (c *Collection) walk(root string, exclude []string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(c.BaseDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if p != root && (strings.HasPrefix(d.Name(), ".") || excluded(exclude, rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || !IsContentFile(rel) {
			return nil
		}

		rec, err := c.read(p, rel)
		if err != nil {
			return err
		}
		c.Pages[rel] = rec
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk pages directory %s: %w", root, err)
	}
	return nil
}

// loadHomePage picks up the site's index page outside the pages directory.
// It is optional, so a home page without front matter is simply ignored.
func (c *Collection) loadHomePage() error {
	for _, ext := range Extensions {
		name := "index" + ext
		p := filepath.Join(c.BaseDir, name)
		if info, err := os.Stat(p); err != nil || !info.Mode().IsRegular() {
			continue
		}
		rec, err := c.read(p, name)
		if err != nil {
			return err
		}
		if rec != nil {
			c.Pages[name] = rec
		}
		return nil
	}
	return nil
}

// read parses a single page. Any problem with the front matter yields a
// nil record; only a failure to read the file is an error.
func (c *Collection) read(p, rel string) (*Record, error) {
	content, err := readFile(p)
	if err != nil {
		return nil, derrors.FileSystemError("failed to read page").
			WithCause(err).
			WithContext("file", rel).
			Build()
	}
	raw, _, had, err := frontmatter.Split(content)
	if err != nil || !had {
		slog.Debug("Page has no front matter", logfields.File(rel), logfields.Error(err))
		return nil, nil
	}
	fields, err := frontmatter.ParseYAML(raw)
	if err != nil {
		slog.Debug("Page front matter is not valid YAML", logfields.File(rel), logfields.Error(err))
		return nil, nil
	}

	rec := recordFromFields(rel, fields)
	if rec.Permalink == "" && c.AutoPermalink {
		if inner, ok := c.withinDir(rel); ok {
			rec.Permalink = DefaultPermalink(inner)
		}
	}
	return rec, nil
}

func (c *Collection) withinDir(rel string) (string, bool) {
	if c.Dir == "." {
		return rel, true
	}
	inner, ok := strings.CutPrefix(rel, c.Dir+"/")
	return inner, ok
}

// IsContentFile reports whether name has a content page extension.
func IsContentFile(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(path.Ext(name)))
}

// DefaultPermalink derives a permalink from a page path relative to the
// pages directory: "a/b.md" becomes "/a/b/" and a trailing index page
// stands for its directory ("a/index.md" becomes "/a/").
func DefaultPermalink(rel string) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel == "index" {
		return "/"
	}
	rel = strings.TrimSuffix(rel, "/index")
	return "/" + rel + "/"
}

func excluded(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(pattern)), "/")
		if pattern == "" {
			continue
		}
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
