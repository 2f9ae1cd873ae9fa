// Package nav models the site navigation menu: an ordered tree of menu
// nodes addressed by absolute URL, its YAML representation in _config.yml,
// and the breadcrumb trails derived from it.
package nav
