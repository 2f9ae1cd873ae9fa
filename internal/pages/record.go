package pages

import (
	"cmp"
	"fmt"
	"slices"
)

// Record is the navigation-relevant front matter of one content page.
type Record struct {
	Path      string // slash-separated, relative to the site base directory
	Title     string
	NavTitle  string // optional override for the menu label
	Permalink string // absolute URL starting and ending with '/'
	Parent    string // optional title of the page's menu parent
}

// MenuText returns the label the page should have in the navigation menu.
func (r Record) MenuText() string {
	if r.NavTitle != "" {
		return r.NavTitle
	}
	return r.Title
}

// Set maps a page path to its record. A nil record means the file has no
// usable front matter.
type Set map[string]*Record

// Paths returns every registered path in sorted order.
func (s Set) Paths() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Records returns copies of all non-nil records sorted by permalink, ties
// broken by path.
func (s Set) Records() []Record {
	out := make([]Record, 0, len(s))
	for _, p := range s.Paths() {
		if r := s[p]; r != nil {
			out = append(out, *r)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return cmp.Or(cmp.Compare(a.Permalink, b.Permalink), cmp.Compare(a.Path, b.Path))
	})
	return out
}

func recordFromFields(path string, fields map[string]any) *Record {
	return &Record{
		Path:      path,
		Title:     stringField(fields, "title"),
		NavTitle:  stringField(fields, "navtitle"),
		Permalink: stringField(fields, "permalink"),
		Parent:    stringField(fields, "parent"),
	}
}

// stringField coerces scalar front matter values to strings. Missing keys,
// nulls and non-scalar values yield "".
func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}
