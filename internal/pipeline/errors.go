package pipeline

import (
	"path/filepath"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
)

// UpdateAbortedError reports a failure that left the configuration file
// untouched.
type UpdateAbortedError struct {
	Config string
	Err    error
}

func (e *UpdateAbortedError) Error() string {
	return e.Err.Error() + "\n" + filepath.Base(e.Config) + " not updated"
}

func (e *UpdateAbortedError) Unwrap() error { return e.Err }

// Category reports the category of the underlying failure.
func (e *UpdateAbortedError) Category() derrors.ErrorCategory {
	return derrors.GetCategory(e.Err)
}
