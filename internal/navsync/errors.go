package navsync

import (
	"fmt"
	"strings"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
)

// MissingParentError reports a page whose declared parent matches neither
// a page title nor an existing navigation entry.
type MissingParentError struct {
	Parent string
	Child  string
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("parent page %q of page %q not found", e.Parent, e.Child)
}

// Category classifies the error as a navigation failure.
func (e *MissingParentError) Category() derrors.ErrorCategory {
	return derrors.CategoryNavigation
}

// OrphanUnresolvedError lists pages whose menu parent is missing while
// placeholder generation is disabled.
type OrphanUnresolvedError struct {
	URLs []string
}

func (e *OrphanUnresolvedError) Error() string {
	return "Parent pages missing for the following:\n  " + strings.Join(e.URLs, "\n  ")
}

// Category classifies the error as a navigation failure.
func (e *OrphanUnresolvedError) Category() derrors.ErrorCategory {
	return derrors.CategoryNavigation
}
