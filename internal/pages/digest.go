package pages

import (
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
)

// Digest fingerprints the navigation-relevant content of every page so
// callers can tell whether a re-run could change the menu. Page bodies do
// not contribute.
func (s Set) Digest() (string, error) {
	fields := make(map[string]any, len(s))
	for p, rec := range s {
		if rec == nil {
			fields[p] = nil
			continue
		}
		fields[p] = map[string]any{
			"title":     rec.Title,
			"navtitle":  rec.NavTitle,
			"permalink": rec.Permalink,
			"parent":    rec.Parent,
		}
	}
	canonical, err := frontmatter.SerializeYAML(fields)
	if err != nil {
		return "", err
	}
	return mdfp.CalculateFingerprintFromParts(string(canonical), ""), nil
}
