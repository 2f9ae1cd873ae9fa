package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// DefaultFile is the site configuration file name.
const DefaultFile = "_config.yml"

// DefaultLayout is the layout of pages generated for placeholder nodes when
// `generate_nodes: true` names none.
const DefaultLayout = "home-redirect"

// Site holds the navigation-related settings of _config.yml.
type Site struct {
	Navigation            nav.Tree       `yaml:"navigation"`
	GenerateNodes         GenerateNodes  `yaml:"generate_nodes"`
	GenerateRedirectNodes bool           `yaml:"generate_redirect_nodes"`
	FlatNamespace         bool           `yaml:"flat_namespace"`
	Exclude               []string       `yaml:"exclude"`
	Collections           map[string]any `yaml:"collections"`

	// Empty is set when the file holds no YAML document at all, such as
	// a blank or comment-only file.
	Empty bool `yaml:"-"`
}

// GenerateNodes is the `generate_nodes` setting: false, true, or the name
// of the layout used for generated pages.
type GenerateNodes struct {
	Enabled bool
	Layout  string
}

// UnmarshalYAML accepts a boolean or a layout name.
func (g *GenerateNodes) UnmarshalYAML(value *yaml.Node) error {
	var enabled bool
	if err := value.Decode(&enabled); err == nil {
		*g = GenerateNodes{Enabled: enabled}
		if enabled {
			g.Layout = DefaultLayout
		}
		return nil
	}
	var layout string
	if err := value.Decode(&layout); err != nil {
		return fmt.Errorf("generate_nodes must be a boolean or a layout name: %w", err)
	}
	*g = GenerateNodes{Enabled: layout != "", Layout: layout}
	return nil
}

// PlaceholderKind returns the kind of node synthesized for orphaned pages,
// or nav.KindManual when placeholder generation is disabled. Redirect
// nodes take precedence.
func (s *Site) PlaceholderKind() nav.Kind {
	switch {
	case s.GenerateRedirectNodes:
		return nav.KindRedirect
	case s.GenerateNodes.Enabled:
		return nav.KindGenerated
	default:
		return nav.KindManual
	}
}

// HasPagesCollection reports whether the site declares a `pages`
// collection, whose documents get their permalinks from their path.
func (s *Site) HasPagesCollection() bool {
	_, ok := s.Collections["pages"]
	return ok
}

// LoadSite reads and parses a site configuration file. An empty file
// yields a Site with Empty set.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.ConfigError(fmt.Sprintf("configuration file not found: %s", path)).
				WithContext("path", path).
				Build()
		}
		return nil, derrors.FileSystemError("failed to read config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	site, err := ParseSite(data)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to parse config file").Fatal().
			WithContext("path", path).
			Build()
	}
	return site, nil
}

// ParseSite parses site configuration content.
func ParseSite(data []byte) (*Site, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return &Site{Empty: true}, nil
	}

	var site Site
	if err := doc.Decode(&site); err != nil {
		return nil, err
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// Validate checks settings that cannot be expressed in the YAML schema.
func (s *Site) Validate() error {
	for _, pattern := range s.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("exclude: invalid pattern %q", pattern)
		}
	}
	return nil
}
