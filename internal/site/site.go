// Package site assembles the build-time view of a site's pages: each page
// with its breadcrumb trail, the pages generated for placeholder nodes, and
// optionally flattened permalinks.
package site

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/flatten"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/pages"
)

// Page is a page as the site generator renders it.
type Page struct {
	// Path is the source file, empty for generated pages.
	Path        string      `json:"path,omitempty" yaml:"path,omitempty"`
	Title       string      `json:"title" yaml:"title"`
	URL         string      `json:"permalink" yaml:"permalink"`
	Layout      string      `json:"layout,omitempty" yaml:"layout,omitempty"`
	Generated   bool        `json:"generated,omitempty" yaml:"generated,omitempty"`
	Breadcrumbs []nav.Crumb `json:"breadcrumbs" yaml:"breadcrumbs"`
}

// pageAdapter exposes a *Page to the flattener.
type pageAdapter struct{ p *Page }

var _ flatten.Page = pageAdapter{}

func (a pageAdapter) Permalink() string        { return a.p.URL }
func (a pageAdapter) SetPermalink(url string)  { a.p.URL = url }
func (a pageAdapter) Breadcrumbs() []nav.Crumb { return a.p.Breadcrumbs }

// Assemble builds the page list of a site from its page records and
// configuration. The configuration's navigation must already be in sync
// with the records.
func Assemble(set pages.Set, cfg *config.Site) ([]*Page, error) {
	if cfg == nil {
		cfg = &config.Site{}
	}
	crumbs := nav.BuildBreadcrumbs(cfg.Navigation)

	var out []*Page
	for _, rec := range set.Records() {
		out = append(out, &Page{
			Path:        rec.Path,
			Title:       rec.Title,
			URL:         rec.Permalink,
			Breadcrumbs: crumbs.Trail(rec.Permalink),
		})
	}
	if cfg.GenerateNodes.Enabled {
		for _, p := range GeneratedPages(cfg.Navigation, cfg.GenerateNodes.Layout) {
			p.Breadcrumbs = crumbs.Trail(p.URL)
			out = append(out, p)
		}
	}

	if cfg.FlatNamespace {
		targets := make([]flatten.Page, len(out))
		for i, p := range out {
			targets[i] = pageAdapter{p}
		}
		if err := flatten.Flatten(targets); err != nil {
			return nil, fmt.Errorf("flatten namespace: %w", err)
		}
	}
	return out, nil
}

// GeneratedPages returns a page for every `generated` placeholder that is
// reachable from the top level through generated placeholders only. Each
// page takes the node's text as title and is rendered with layout.
func GeneratedPages(tree nav.Tree, layout string) []*Page {
	if layout == "" {
		layout = config.DefaultLayout
	}
	var out []*Page
	var visit func(nodes []*nav.Node, parentURL string)
	visit = func(nodes []*nav.Node, parentURL string) {
		for _, n := range nodes {
			if n.Kind != nav.KindGenerated {
				continue
			}
			url := nav.JoinURL(parentURL, n.URL)
			out = append(out, &Page{Title: n.Text, URL: url, Layout: layout, Generated: true})
			visit(n.Children, url)
		}
	}
	visit(tree, "/")
	return out
}
