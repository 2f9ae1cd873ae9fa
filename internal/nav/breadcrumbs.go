package nav

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	URL  string `json:"url" yaml:"url"`
	Text string `json:"text" yaml:"text"`
}

// Breadcrumbs maps an absolute URL to the trail from the first top-level
// ancestor down to the node itself.
type Breadcrumbs map[string][]Crumb

// BuildBreadcrumbs derives the breadcrumb trail of every node. The home
// entry, which has no URL segment, is keyed by "/". Trails never share
// backing arrays, so callers may modify them freely.
func BuildBreadcrumbs(t Tree) Breadcrumbs {
	crumbs := make(Breadcrumbs)
	buildCrumbs(crumbs, t, "/", nil)
	return crumbs
}

func buildCrumbs(out Breadcrumbs, nodes []*Node, parentURL string, parents []Crumb) {
	for _, n := range nodes {
		url := JoinURL(parentURL, n.URL)
		trail := make([]Crumb, len(parents), len(parents)+1)
		copy(trail, parents)
		trail = append(trail, Crumb{URL: url, Text: n.Text})
		out[url] = trail
		buildCrumbs(out, n.Children, url, trail)
	}
}

// Trail returns a copy of the trail for url, or nil when no node has it.
func (b Breadcrumbs) Trail(url string) []Crumb {
	trail, ok := b[url]
	if !ok {
		return nil
	}
	return append([]Crumb(nil), trail...)
}
