package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/testutil"
)

func TestParseSite(t *testing.T) {
	site, err := ParseSite([]byte(`
title: My Guide
navigation:
- text: Introduction
  internal: true
- text: Foo
  url: foo/
  internal: true
  generated: true
generate_nodes: true
flat_namespace: true
exclude:
- pages/drafts
- "**/*.tmp.md"
collections:
  pages:
    output: true
`))
	require.NoError(t, err)

	require.Len(t, site.Navigation, 2)
	assert.Equal(t, nav.KindGenerated, site.Navigation[1].Kind)
	assert.Equal(t, GenerateNodes{Enabled: true, Layout: DefaultLayout}, site.GenerateNodes)
	assert.True(t, site.FlatNamespace)
	assert.Equal(t, []string{"pages/drafts", "**/*.tmp.md"}, site.Exclude)
	assert.True(t, site.HasPagesCollection())
	assert.Equal(t, nav.KindGenerated, site.PlaceholderKind())
}

func TestParseSite_GenerateNodes(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want GenerateNodes
	}{
		{"absent", "title: x", GenerateNodes{}},
		{"false", "generate_nodes: false", GenerateNodes{}},
		{"true", "generate_nodes: true", GenerateNodes{Enabled: true, Layout: "home-redirect"}},
		{"layout", "generate_nodes: section-index", GenerateNodes{Enabled: true, Layout: "section-index"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site, err := ParseSite([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, site.GenerateNodes)
		})
	}

	_, err := ParseSite([]byte("generate_nodes: [a, b]"))
	assert.Error(t, err)
}

func TestPlaceholderKind(t *testing.T) {
	assert.Equal(t, nav.KindManual, (&Site{}).PlaceholderKind())
	assert.Equal(t, nav.KindRedirect, (&Site{GenerateRedirectNodes: true}).PlaceholderKind())
	assert.Equal(t, nav.KindRedirect, (&Site{
		GenerateRedirectNodes: true,
		GenerateNodes:         GenerateNodes{Enabled: true},
	}).PlaceholderKind())
}

func TestParseSite_InvalidExclude(t *testing.T) {
	_, err := ParseSite([]byte("exclude: ['pages/[unclosed']"))
	assert.ErrorContains(t, err, "invalid pattern")
}

func TestLoadSite(t *testing.T) {
	site := testutil.NewSite(t).WriteConfig("flat_namespace: true\n")

	got, err := LoadSite(site.Path(DefaultFile))
	require.NoError(t, err)
	assert.True(t, got.FlatNamespace)
	assert.False(t, got.HasPagesCollection())
}

func TestLoadSite_Empty(t *testing.T) {
	site := testutil.NewSite(t).WriteConfig("")

	got, err := LoadSite(site.Path(DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, &Site{Empty: true}, got)

	site.WriteConfig("# only a comment\n")
	got, err = LoadSite(site.Path(DefaultFile))
	require.NoError(t, err)
	assert.True(t, got.Empty)

	site.WriteConfig("title: x\n")
	got, err = LoadSite(site.Path(DefaultFile))
	require.NoError(t, err)
	assert.False(t, got.Empty)
}

func TestLoadSite_Errors(t *testing.T) {
	site := testutil.NewSite(t)

	_, err := LoadSite(site.Path(DefaultFile))
	require.Error(t, err)
	assert.Equal(t, derrors.CategoryConfig, derrors.GetCategory(err))
	assert.Contains(t, err.Error(), "configuration file not found")

	site.WriteConfig("navigation: {text: oops\n")
	_, err = LoadSite(site.Path(DefaultFile))
	require.Error(t, err)
	assert.Equal(t, derrors.CategoryConfig, derrors.GetCategory(err))
}
