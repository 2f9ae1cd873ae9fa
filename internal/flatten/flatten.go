// Package flatten collapses page URLs into a single-level namespace.
package flatten

import (
	"strings"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Page is a page whose permalink and breadcrumbs can be rewritten.
type Page interface {
	Permalink() string
	SetPermalink(url string)
	// Breadcrumbs returns the page's trail. Entries are rewritten in place.
	Breadcrumbs() []nav.Crumb
}

// FlatURL maps url to "/" plus its last path segment plus "/". The root
// maps to itself.
func FlatURL(url string) string {
	segs := nav.Segments(url)
	if len(segs) == 0 {
		return "/"
	}
	return "/" + segs[len(segs)-1] + "/"
}

// Collision is a flattened URL claimed by more than one page.
type Collision struct {
	Flat      string
	Originals []string
}

// CollisionError lists every flattened URL shared by several pages.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	lines := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		lines = append(lines, c.Flat+": "+strings.Join(c.Originals, ", "))
	}
	return "collisions in flattened namespace between\n  " + strings.Join(lines, "\n  ")
}

// Category classifies the error as a namespace failure.
func (e *CollisionError) Category() derrors.ErrorCategory {
	return derrors.CategoryNamespace
}

// Flatten rewrites the permalink and breadcrumb URLs of every page to
// their flattened form. If two pages would share a flattened URL it
// returns *CollisionError and leaves every page untouched.
func Flatten(pages []Page) error {
	if err := Check(pages); err != nil {
		return err
	}
	for _, p := range pages {
		p.SetPermalink(FlatURL(p.Permalink()))
		crumbs := p.Breadcrumbs()
		for i := range crumbs {
			crumbs[i].URL = FlatURL(crumbs[i].URL)
		}
	}
	return nil
}

// Check reports the collisions Flatten would hit without modifying pages.
// Collisions are ordered by the first page producing each flattened URL;
// originals keep page order.
func Check(pages []Page) error {
	var order []string
	groups := make(map[string][]string)
	for _, p := range pages {
		flat := FlatURL(p.Permalink())
		if _, seen := groups[flat]; !seen {
			order = append(order, flat)
		}
		groups[flat] = append(groups[flat], p.Permalink())
	}

	var collisions []Collision
	for _, flat := range order {
		if originals := groups[flat]; len(originals) > 1 {
			collisions = append(collisions, Collision{Flat: flat, Originals: originals})
		}
	}
	if len(collisions) > 0 {
		return &CollisionError{Collisions: collisions}
	}
	return nil
}
