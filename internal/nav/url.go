package nav

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// JoinURL appends a node's URL segment to its parent's absolute URL,
// collapsing the slashes at the junction: JoinURL("/foo/", "bar/") is
// "/foo/bar/" and JoinURL("/", "") is "/".
func JoinURL(parent, segment string) string {
	return strings.TrimRight(parent, "/") + "/" + strings.TrimLeft(segment, "/")
}

// Segments returns the non-empty path components of url.
func Segments(url string) []string {
	return strings.FieldsFunc(url, func(r rune) bool { return r == '/' })
}

// ParentURL drops the last path component: "/a/b/" becomes "/a/" and
// "/a/" becomes "/".
func ParentURL(url string) string {
	segs := Segments(url)
	if len(segs) <= 1 {
		return "/"
	}
	return "/" + strings.Join(segs[:len(segs)-1], "/") + "/"
}

// IsRoot reports whether url is the site root.
func IsRoot(url string) bool {
	return len(Segments(url)) == 0
}

// PlaceholderLabel derives a menu label from a URL path segment: hyphens
// become spaces, the first letter is upper-cased and the rest lower-cased,
// so "foo-bar" becomes "Foo bar".
func PlaceholderLabel(segment string) string {
	// Casers are stateful and not safe for concurrent use.
	upper := cases.Upper(language.Und)
	s := cases.Lower(language.Und).String(strings.ReplaceAll(segment, "-", " "))
	for i := range s {
		if i > 0 {
			return upper.String(s[:i]) + s[i:]
		}
	}
	return upper.String(s)
}
