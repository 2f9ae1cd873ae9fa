package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
)

func TestValidate(t *testing.T) {
	set := Set{
		"pages/ok.md":       {Title: "OK", Permalink: "/ok/"},
		"pages/none.md":     nil,
		"pages/untitled.md": {Permalink: "/untitled/"},
		"pages/nolink.md":   {Title: "No link"},
		"pages/slashes.md":  {Title: "Slashes", Permalink: "slashes"},
		"pages/dup.md":      {Title: "Dup", Permalink: "/ok/"},
		"pages/noboth.md":   {},
	}

	got := Validate(set, true)

	assert.Equal(t, map[string][]string{
		"pages/none.md":     {"no front matter defined"},
		"pages/untitled.md": {"no `title:` property"},
		"pages/nolink.md":   {"no `permalink:` property"},
		"pages/slashes.md": {
			"`permalink:` does not begin with '/'",
			"`permalink:` does not end with '/'",
		},
		"pages/ok.md":     {"`permalink:` /ok/ is also used by pages/dup.md"},
		"pages/noboth.md": {"no `title:` property", "no `permalink:` property"},
	}, got)
}

func TestValidate_AutoPermalinkDoesNotRequirePermalink(t *testing.T) {
	got := Validate(Set{"_pages/a.md": {Title: "A"}}, false)
	assert.Empty(t, got)
}

func TestFrontMatterErrorMessage(t *testing.T) {
	c := &Collection{Pages: Set{
		"pages/b.md": nil,
		"pages/a.md": {Permalink: "/a"},
	}}
	err := c.Err()
	require.Error(t, err)

	want := "The following files have errors in their front matter:\n" +
		"  pages/a.md:\n" +
		"    no `title:` property\n" +
		"    `permalink:` does not end with '/'\n" +
		"  pages/b.md:\n" +
		"    no front matter defined"
	assert.Equal(t, want, err.Error())
	assert.Equal(t, derrors.CategoryValidation, derrors.GetCategory(err))
}

func TestCollectionErrNilWhenValid(t *testing.T) {
	c := &Collection{Pages: Set{"pages/a.md": {Title: "A", Permalink: "/a/"}}}
	assert.NoError(t, c.Err())
}
