// Package errors provides the classified error primitives used across docnav.
//
// Every failure that reaches the command line is either a ClassifiedError
// built through the fluent ErrorBuilder, or a domain error type that reports
// its own category through the Categorized interface. CLIErrorAdapter turns
// both into a user-facing message and a process exit code.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryFileSystem, "failed to read pages").
//		WithContext("path", dir).
//		WithCause(readErr).
//		Build()
package errors
