// Package config reads a site's _config.yml and writes its navigation
// section back.
//
// Only the keys the navigation tooling needs are interpreted. Writing
// replaces the lines of the `navigation:` section and copies every other
// line, comments and blank lines included, verbatim.
package config
