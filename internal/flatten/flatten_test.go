package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

type fakePage struct {
	url    string
	crumbs []nav.Crumb
}

func (p *fakePage) Permalink() string        { return p.url }
func (p *fakePage) SetPermalink(url string)  { p.url = url }
func (p *fakePage) Breadcrumbs() []nav.Crumb { return p.crumbs }

func pagesFor(urls ...string) ([]Page, []*fakePage) {
	var ifaces []Page
	var fakes []*fakePage
	for _, u := range urls {
		p := &fakePage{url: u}
		for _, c := range nav.Segments(u) {
			prev := "/"
			if len(p.crumbs) > 0 {
				prev = p.crumbs[len(p.crumbs)-1].URL
			}
			p.crumbs = append(p.crumbs, nav.Crumb{URL: nav.JoinURL(prev, c+"/"), Text: c})
		}
		ifaces = append(ifaces, p)
		fakes = append(fakes, p)
	}
	return ifaces, fakes
}

func TestFlatURL(t *testing.T) {
	tests := map[string]string{
		"/":            "/",
		"/foo/":        "/foo/",
		"/foo/bar/":    "/bar/",
		"/a/b/c/":      "/c/",
		"/a/b/page/":   "/page/",
		"/trailing/x/": "/x/",
	}
	for in, want := range tests {
		assert.Equal(t, want, FlatURL(in), in)
	}
}

func TestFlatten(t *testing.T) {
	pages, fakes := pagesFor("/foo/", "/foo/bar/", "/foo/baz/", "/quux/", "/quux/xyzzy/", "/quux/xyzzy/plugh/")

	require.NoError(t, Flatten(pages))

	var got []string
	for _, p := range fakes {
		got = append(got, p.url)
	}
	assert.Equal(t, []string{"/foo/", "/bar/", "/baz/", "/quux/", "/xyzzy/", "/plugh/"}, got)
	assert.Equal(t, []nav.Crumb{
		{URL: "/quux/", Text: "quux"},
		{URL: "/xyzzy/", Text: "xyzzy"},
		{URL: "/plugh/", Text: "plugh"},
	}, fakes[5].crumbs)
}

func TestFlatten_RootStaysRoot(t *testing.T) {
	pages, fakes := pagesFor("/")
	require.NoError(t, Flatten(pages))
	assert.Equal(t, "/", fakes[0].url)
}

func TestFlatten_Collision(t *testing.T) {
	pages, fakes := pagesFor("/foo/", "/foo/bar/", "/bar/")

	err := Flatten(pages)
	require.Error(t, err)
	assert.Equal(t, "collisions in flattened namespace between\n  /bar/: /foo/bar/, /bar/", err.Error())
	assert.Equal(t, derrors.CategoryNamespace, derrors.GetCategory(err))

	// Nothing is rewritten when the namespace collides.
	assert.Equal(t, "/foo/bar/", fakes[1].url)
	assert.Equal(t, "/foo/bar/", fakes[1].crumbs[1].URL)
}

func TestFlatten_MultipleCollisionsInFirstAppearanceOrder(t *testing.T) {
	pages, _ := pagesFor("/z/b/", "/a/", "/y/a/", "/b/", "/x/a/")

	var collisionErr *CollisionError
	require.ErrorAs(t, Flatten(pages), &collisionErr)
	assert.Equal(t, []Collision{
		{Flat: "/b/", Originals: []string{"/z/b/", "/b/"}},
		{Flat: "/a/", Originals: []string{"/a/", "/y/a/", "/x/a/"}},
	}, collisionErr.Collisions)
	assert.Equal(t, "collisions in flattened namespace between\n  /b/: /z/b/, /b/\n  /a/: /a/, /y/a/, /x/a/", collisionErr.Error())
}

func TestCheck_NoPages(t *testing.T) {
	assert.NoError(t, Check(nil))
}
