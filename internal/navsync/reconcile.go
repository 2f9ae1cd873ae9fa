package navsync

import (
	"cmp"
	"slices"

	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/pages"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// Orphan is a page entry whose parent URL has no node yet. It is held
// outside the tree until it is placed.
type Orphan struct {
	IntendedURL string
	Node        *nav.Node
}

// Draft is a reconciled tree together with the entries still waiting for
// a parent. Orphans are ordered by intended URL.
type Draft struct {
	Tree    nav.Tree
	Orphans []Orphan
}

// OrphanURLs returns the intended URL of every orphan.
func (d Draft) OrphanURLs() []string {
	urls := make([]string, len(d.Orphans))
	for i, o := range d.Orphans {
		urls[i] = o.IntendedURL
	}
	return urls
}

// Reconcile brings existing in line with the given pages without touching
// existing. Existing entries are matched to pages strictly by absolute URL:
// a match only has its text updated, internal entries without a page are
// removed with their subtrees, and new pages are appended under their
// parent. Pages whose parent cannot be found become orphans.
func Reconcile(existing nav.Tree, records []pages.Record) (Draft, Stats, error) {
	var stats Stats
	if err := checkParents(existing, records); err != nil {
		return Draft{}, stats, err
	}

	desired := slices.Clone(records)
	slices.SortStableFunc(desired, func(a, b pages.Record) int {
		return cmp.Or(cmp.Compare(a.Permalink, b.Permalink), cmp.Compare(a.Path, b.Path))
	})
	wanted := sets.New[string]()
	for _, rec := range desired {
		wanted.Add(rec.Permalink)
	}

	tree, removed := existing.Clone().Remove(func(url string, n *nav.Node) bool {
		return n.Internal && !n.IsPlaceholder() && !wanted.Has(url)
	})
	stats.Removed = removed

	// Rebuilt after removal so pages below a removed entry become orphans
	// rather than matching detached nodes.
	index := nav.MapByURL(tree)
	var orphans []Orphan

	for _, rec := range desired {
		text := rec.MenuText()
		if n, ok := index[rec.Permalink]; ok {
			if n.Text != text {
				n.Text = text
				stats.Renamed++
			}
			if n.IsPlaceholder() {
				n.Kind = nav.KindManual
				n.Internal = true
			}
			continue
		}

		entry := nav.NewPage(text, rec.Permalink)
		parentURL := nav.ParentURL(rec.Permalink)
		switch parent, ok := index[parentURL]; {
		case nav.IsRoot(parentURL):
			tree = append(tree, entry)
		case ok:
			parent.Children = append(parent.Children, entry)
		default:
			orphans = append(orphans, Orphan{IntendedURL: rec.Permalink, Node: entry})
			stats.Orphans++
			continue
		}
		index[rec.Permalink] = entry
		stats.Added++
	}

	return Draft{Tree: tree, Orphans: orphans}, stats, nil
}

// checkParents verifies that every declared parent names a page title, a
// page's menu title or the text of an existing navigation entry.
func checkParents(existing nav.Tree, records []pages.Record) error {
	known := sets.New[string]()
	for _, rec := range records {
		known.Add(rec.Title)
		if rec.NavTitle != "" {
			known.Add(rec.NavTitle)
		}
	}
	existing.Walk(func(_ string, n *nav.Node) bool {
		known.Add(n.Text)
		return true
	})

	for _, rec := range records {
		if rec.Parent != "" && !known.Has(rec.Parent) {
			return &MissingParentError{Parent: rec.Parent, Child: rec.Title}
		}
	}
	return nil
}
