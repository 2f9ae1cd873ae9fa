package navsync

import (
	"slices"

	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/pages"
)

// Options controls how orphans are finalized.
type Options struct {
	// Placeholder is the kind of node synthesized for missing parents.
	// KindManual disables placeholder generation, which makes any orphan
	// an error.
	Placeholder nav.Kind
}

// Finalize places the draft's orphans and prunes unused placeholders. With
// placeholder generation disabled any orphan yields *OrphanUnresolvedError.
func Finalize(draft Draft, opts Options) (nav.Tree, Stats, error) {
	if !opts.Placeholder.IsPlaceholder() && len(draft.Orphans) > 0 {
		return nil, Stats{}, &OrphanUnresolvedError{URLs: draft.OrphanURLs()}
	}
	tree, stats := ResolveOrphans(draft, opts.Placeholder)
	return tree, stats, nil
}

// ResolveOrphans nests every orphan under the chain of nodes named by its
// intended URL, reusing existing nodes and synthesizing placeholders of the
// given kind for the missing ones, then prunes childless placeholders.
// Each placed orphan is indexed, so later orphans nest beneath it.
func ResolveOrphans(draft Draft, kind nav.Kind) (nav.Tree, Stats) {
	var stats Stats
	tree := draft.Tree.Clone()
	index := nav.MapByURL(tree)

	for _, o := range draft.Orphans {
		segs := nav.Segments(o.IntendedURL)
		if len(segs) == 0 {
			continue
		}
		node := o.Node.Clone()
		node.URL = segs[len(segs)-1] + "/"

		var parent *nav.Node
		current := "/"
		for _, seg := range segs[:len(segs)-1] {
			current = nav.JoinURL(current, seg+"/")
			next, ok := index[current]
			if !ok {
				next = nav.NewPlaceholder(seg, kind)
				index[current] = next
				tree = attach(tree, parent, next)
				stats.PlaceholdersCreated++
			}
			parent = next
		}
		tree = attach(tree, parent, node)
		index[o.IntendedURL] = node
	}

	var pruned int
	tree, pruned = prune(tree)
	stats.PlaceholdersPruned = pruned
	return tree, stats
}

func attach(tree nav.Tree, parent, child *nav.Node) nav.Tree {
	if parent == nil {
		return append(tree, child)
	}
	parent.Children = append(parent.Children, child)
	return tree
}

// Prune returns a copy of t without placeholders that have no children
// once their own children are pruned, and the number of nodes removed.
func Prune(t nav.Tree) (nav.Tree, int) {
	return prune(t.Clone())
}

func prune(nodes []*nav.Node) ([]*nav.Node, int) {
	removed := 0
	for _, n := range nodes {
		var r int
		n.Children, r = prune(n.Children)
		removed += r
	}
	kept := slices.DeleteFunc(nodes, func(n *nav.Node) bool {
		if n.IsPlaceholder() && len(n.Children) == 0 {
			removed++
			return true
		}
		return false
	})
	if len(kept) == 0 {
		return nil, removed
	}
	return kept, removed
}

// Sync runs Reconcile followed by Finalize.
func Sync(existing nav.Tree, records []pages.Record, opts Options) (nav.Tree, Stats, error) {
	draft, stats, err := Reconcile(existing, records)
	if err != nil {
		return nil, stats, err
	}
	tree, resolved, err := Finalize(draft, opts)
	if err != nil {
		return nil, stats, err
	}
	return tree, stats.Merge(resolved), nil
}
