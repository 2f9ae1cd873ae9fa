package pages

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
)

const errNoFrontMatter = "no front matter defined"

// Validate returns the front matter errors of every file that has any.
// requirePermalink is false when the page collection auto-assigns permalinks.
func Validate(set Set, requirePermalink bool) map[string][]string {
	result := make(map[string][]string)
	owners := make(map[string]string) // permalink -> first path using it

	for _, p := range set.Paths() {
		rec := set[p]
		if rec == nil {
			result[p] = []string{errNoFrontMatter}
			continue
		}

		var errs []string
		if strings.TrimSpace(rec.Title) == "" {
			errs = append(errs, "no `title:` property")
		}
		switch {
		case rec.Permalink == "":
			if requirePermalink {
				errs = append(errs, "no `permalink:` property")
			}
		default:
			errs = append(errs, permalinkErrors(rec.Permalink)...)
			if owner, dup := owners[rec.Permalink]; dup {
				errs = append(errs, fmt.Sprintf("`permalink:` %s is also used by %s", rec.Permalink, owner))
			} else {
				owners[rec.Permalink] = p
			}
		}
		if len(errs) > 0 {
			result[p] = errs
		}
	}
	return result
}

func permalinkErrors(permalink string) []string {
	var errs []string
	if !strings.HasPrefix(permalink, "/") {
		errs = append(errs, "`permalink:` does not begin with '/'")
	}
	if !strings.HasSuffix(permalink, "/") {
		errs = append(errs, "`permalink:` does not end with '/'")
	}
	return errs
}

// Validate checks the collection's pages.
func (c *Collection) Validate() map[string][]string {
	return Validate(c.Pages, !c.AutoPermalink)
}

// Err returns a *FrontMatterError describing every invalid page, or nil.
func (c *Collection) Err() error {
	files := c.Validate()
	if len(files) == 0 {
		return nil
	}
	return &FrontMatterError{Files: files}
}

// FrontMatterError aggregates the validation errors of all pages. Any
// FrontMatterError blocks the configuration update.
type FrontMatterError struct {
	Files map[string][]string
}

func (e *FrontMatterError) Error() string {
	lines := []string{"The following files have errors in their front matter:"}
	for _, p := range slices.Sorted(maps.Keys(e.Files)) {
		lines = append(lines, "  "+p+":")
		for _, msg := range e.Files[p] {
			lines = append(lines, "    "+msg)
		}
	}
	return strings.Join(lines, "\n")
}

// Category classifies front matter failures as validation errors.
func (e *FrontMatterError) Category() derrors.ErrorCategory {
	return derrors.CategoryValidation
}
