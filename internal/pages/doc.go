// Package pages loads and validates the front matter of a site's content
// pages.
//
// A site keeps its pages either in a `pages/` directory, where every page
// must declare its own permalink, or in a `_pages` collection, where a
// missing permalink defaults to the page's path. Every content file found
// is registered with a nil record first; a file whose front matter cannot
// be read keeps the nil record and fails validation with
// "no front matter defined".
package pages
