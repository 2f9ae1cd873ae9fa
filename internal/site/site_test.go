package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/flatten"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/pages"
)

func testSet() pages.Set {
	return pages.Set{
		"pages/index.md":           {Path: "pages/index.md", Title: "Introduction", Permalink: "/"},
		"pages/foo.md":             {Path: "pages/foo.md", Title: "Foo info", Permalink: "/foo/"},
		"pages/foo/bar.md":         {Path: "pages/foo/bar.md", Title: "Bar info", Permalink: "/foo/bar/"},
		"pages/quux/xyzzy/pl.md":   {Path: "pages/quux/xyzzy/pl.md", Title: "Plugh info", Permalink: "/quux/xyzzy/plugh/"},
		"pages/no-front-matter.md": nil,
	}
}

func testTree() nav.Tree {
	return nav.Tree{
		{Text: "Introduction", Internal: true},
		{Text: "Foo info", URL: "foo/", Internal: true, Children: []*nav.Node{
			{Text: "Bar info", URL: "bar/", Internal: true},
		}},
		{Text: "Quux", URL: "quux/", Internal: true, Kind: nav.KindGenerated, Children: []*nav.Node{
			{Text: "Xyzzy", URL: "xyzzy/", Internal: true, Kind: nav.KindGenerated, Children: []*nav.Node{
				{Text: "Plugh info", URL: "plugh/", Internal: true},
			}},
		}},
	}
}

func byURL(out []*Page) map[string]*Page {
	m := make(map[string]*Page, len(out))
	for _, p := range out {
		m[p.URL] = p
	}
	return m
}

func TestAssemble_Breadcrumbs(t *testing.T) {
	out, err := Assemble(testSet(), &config.Site{Navigation: testTree()})
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, []string{"/", "/foo/", "/foo/bar/", "/quux/xyzzy/plugh/"}, []string{out[0].URL, out[1].URL, out[2].URL, out[3].URL})
	assert.Equal(t, []nav.Crumb{{URL: "/", Text: "Introduction"}}, out[0].Breadcrumbs)
	assert.Equal(t, []nav.Crumb{
		{URL: "/foo/", Text: "Foo info"},
		{URL: "/foo/bar/", Text: "Bar info"},
	}, out[2].Breadcrumbs)
	assert.Equal(t, []nav.Crumb{
		{URL: "/quux/", Text: "Quux"},
		{URL: "/quux/xyzzy/", Text: "Xyzzy"},
		{URL: "/quux/xyzzy/plugh/", Text: "Plugh info"},
	}, out[3].Breadcrumbs)
}

func TestAssemble_PageMissingFromNavigationHasNoTrail(t *testing.T) {
	out, err := Assemble(pages.Set{"pages/a.md": {Title: "A", Permalink: "/a/"}}, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].Breadcrumbs)
}

func TestAssemble_GeneratedPages(t *testing.T) {
	cfg := &config.Site{
		Navigation:    testTree(),
		GenerateNodes: config.GenerateNodes{Enabled: true, Layout: "section"},
	}
	out, err := Assemble(testSet(), cfg)
	require.NoError(t, err)
	require.Len(t, out, 6)

	pagesByURL := byURL(out)
	quux := pagesByURL["/quux/"]
	require.NotNil(t, quux)
	assert.Equal(t, &Page{
		Title:       "Quux",
		URL:         "/quux/",
		Layout:      "section",
		Generated:   true,
		Breadcrumbs: []nav.Crumb{{URL: "/quux/", Text: "Quux"}},
	}, quux)
	assert.Equal(t, "Xyzzy", pagesByURL["/quux/xyzzy/"].Title)
}

func TestGeneratedPages(t *testing.T) {
	tree := nav.Tree{
		{Text: "Manual", URL: "manual/", Internal: true, Children: []*nav.Node{
			{Text: "Hidden", URL: "hidden/", Kind: nav.KindGenerated},
		}},
		{Text: "Redirect", URL: "r/", Kind: nav.KindRedirect},
		{Text: "Gen", URL: "gen/", Kind: nav.KindGenerated, Children: []*nav.Node{
			{Text: "Page", URL: "page/"},
			{Text: "Nested", URL: "nested/", Kind: nav.KindGenerated},
		}},
	}

	got := GeneratedPages(tree, "")
	require.Len(t, got, 2)
	assert.Equal(t, "/gen/", got[0].URL)
	assert.Equal(t, config.DefaultLayout, got[0].Layout)
	assert.Equal(t, "/gen/nested/", got[1].URL)
}

func TestAssemble_FlatNamespace(t *testing.T) {
	cfg := &config.Site{Navigation: testTree(), FlatNamespace: true}
	out, err := Assemble(testSet(), cfg)
	require.NoError(t, err)

	plugh := byURL(out)["/plugh/"]
	require.NotNil(t, plugh)
	assert.Equal(t, []nav.Crumb{
		{URL: "/quux/", Text: "Quux"},
		{URL: "/xyzzy/", Text: "Xyzzy"},
		{URL: "/plugh/", Text: "Plugh info"},
	}, plugh.Breadcrumbs)
	assert.Contains(t, byURL(out), "/bar/")
	assert.Contains(t, byURL(out), "/")
}

func TestAssemble_FlatNamespaceCollision(t *testing.T) {
	set := testSet()
	set["pages/bar.md"] = &pages.Record{Path: "pages/bar.md", Title: "Other bar", Permalink: "/bar/"}

	_, err := Assemble(set, &config.Site{Navigation: testTree(), FlatNamespace: true})
	require.Error(t, err)

	var collision *flatten.CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, []flatten.Collision{{Flat: "/bar/", Originals: []string{"/bar/", "/foo/bar/"}}}, collision.Collisions)
}
