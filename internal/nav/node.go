package nav

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// Kind distinguishes hand-maintained entries from synthesized placeholders.
type Kind int

const (
	// KindManual is a plain link or an internal page link.
	KindManual Kind = iota
	// KindGenerated is a placeholder serialized with `generated: true`.
	KindGenerated
	// KindRedirect is a placeholder serialized with `redirect: true`.
	KindRedirect
)

func (k Kind) String() string {
	switch k {
	case KindGenerated:
		return "generated"
	case KindRedirect:
		return "redirect"
	default:
		return "manual"
	}
}

// IsPlaceholder reports whether k is one of the synthesized kinds.
func (k Kind) IsPlaceholder() bool {
	return k == KindGenerated || k == KindRedirect
}

// Node is a single navigation menu entry.
type Node struct {
	Text string
	// URL is the node's own path segment including the trailing slash
	// ("bar/"). It is empty for the implicit home entry and may be an
	// absolute URL for external links.
	URL      string
	Internal bool
	Kind     Kind
	Children []*Node

	// Extra holds keys this package does not interpret, such as manual
	// display metadata, so they survive a round trip.
	Extra map[string]*yaml.Node

	src *source
}

// IsPlaceholder reports whether the node was synthesized to host orphans.
func (n *Node) IsPlaceholder() bool {
	return n.Kind.IsPlaceholder()
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	if n.Extra != nil {
		c.Extra = make(map[string]*yaml.Node, len(n.Extra))
		for k, v := range n.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// NewPage returns the menu entry for an internal page whose permalink is
// url. The home page gets no URL segment.
func NewPage(text, url string) *Node {
	n := &Node{Text: text, Internal: true}
	if segs := Segments(url); len(segs) > 0 {
		n.URL = segs[len(segs)-1] + "/"
	}
	return n
}

// NewPlaceholder returns a synthesized entry of the given kind for one URL
// path segment.
func NewPlaceholder(segment string, kind Kind) *Node {
	return &Node{
		Text:     PlaceholderLabel(segment),
		URL:      segment + "/",
		Internal: true,
		Kind:     kind,
	}
}

// Tree is the ordered list of top-level navigation nodes.
type Tree []*Node

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i, n := range t {
		out[i] = n.Clone()
	}
	return out
}

// Len returns the total number of nodes in the tree.
func (t Tree) Len() int {
	total := 0
	for _, n := range t {
		total += 1 + Tree(n.Children).Len()
	}
	return total
}

// Walk visits every node in pre-order with its absolute URL. A parent is
// visited before its children. Returning false from fn skips the node's
// children.
func (t Tree) Walk(fn func(url string, n *Node) bool) {
	walk(t, "/", fn)
}

func walk(nodes []*Node, parentURL string, fn func(string, *Node) bool) {
	for _, n := range nodes {
		url := JoinURL(parentURL, n.URL)
		if fn(url, n) {
			walk(n.Children, url, fn)
		}
	}
}

// MapByURL indexes every node of the tree by absolute URL. When two nodes
// share a URL the later one in pre-order wins.
func MapByURL(t Tree) map[string]*Node {
	index := make(map[string]*Node)
	t.Walk(func(url string, n *Node) bool {
		index[url] = n
		return true
	})
	return index
}

// URLs returns the absolute URL of every node in pre-order.
func (t Tree) URLs() []string {
	var urls []string
	t.Walk(func(url string, _ *Node) bool {
		urls = append(urls, url)
		return true
	})
	return urls
}

// Remove deletes, at every level, the nodes for which drop returns true,
// together with their subtrees. It returns the pruned tree and the number
// of nodes removed, subtrees included. t is modified in place; Clone it
// first to keep the original.
func (t Tree) Remove(drop func(url string, n *Node) bool) (Tree, int) {
	kept, removed := remove(t, "/", drop)
	return Tree(kept), removed
}

func remove(nodes []*Node, parentURL string, drop func(string, *Node) bool) ([]*Node, int) {
	removed := 0
	kept := slices.DeleteFunc(nodes, func(n *Node) bool {
		if drop(JoinURL(parentURL, n.URL), n) {
			removed += 1 + Tree(n.Children).Len()
			return true
		}
		return false
	})
	for _, n := range kept {
		var r int
		n.Children, r = remove(n.Children, JoinURL(parentURL, n.URL), drop)
		if len(n.Children) == 0 {
			n.Children = nil
		}
		removed += r
	}
	return kept, removed
}
